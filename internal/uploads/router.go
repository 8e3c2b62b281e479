package uploads

import (
	"github.com/gin-gonic/gin"
)

func SetupUploadRoutes(router *gin.RouterGroup, controller Controller) {
	router.POST("/upload", controller.UploadImage) // POST /api/v1/upload
}
