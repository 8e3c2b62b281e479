package tags

import (
	"github.com/gin-gonic/gin"
)

func SetupTagRoutes(router *gin.RouterGroup, controller Controller) {
	// Crowd-facing workflow endpoints
	tags := router.Group("/tags")
	{
		tags.POST("/request", controller.RequestAddition)          // POST /api/v1/tags/request
		tags.POST("/request-deletion", controller.RequestDeletion) // POST /api/v1/tags/request-deletion
	}

	// Admin review of threshold-hidden tags
	adminTags := router.Group("/admin/tags")
	{
		adminTags.GET("/hidden", controller.ListHiddenRequests)  // GET /api/v1/admin/tags/hidden
		adminTags.DELETE("/:id", controller.PurgeHiddenRequest)  // DELETE /api/v1/admin/tags/:id
	}
}
