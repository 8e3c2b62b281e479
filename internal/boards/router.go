package boards

import (
	"github.com/gin-gonic/gin"
)

func SetupBoardRoutes(router *gin.RouterGroup, controller Controller) {
	boards := router.Group("/boards")
	{
		boards.GET("/categories", controller.ListCategories) // GET /api/v1/boards/categories
		boards.GET("", controller.ListPosts)                 // GET /api/v1/boards?category_id=
		boards.GET("/:id", controller.GetPost)               // GET /api/v1/boards/:id
		boards.POST("", controller.CreatePost)               // POST /api/v1/boards
	}
}
