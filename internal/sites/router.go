package sites

import (
	"github.com/gin-gonic/gin"
)

func SetupSiteRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes - browsing and proposing sites
	publicSites := router.Group("/sites")
	{
		publicSites.GET("", controller.ListSites)             // GET /api/v1/sites?status=
		publicSites.GET("/public", controller.ListPublicSites) // GET /api/v1/sites/public - approved only, map consumer
		publicSites.GET("/:id", controller.GetSite)           // GET /api/v1/sites/:id
		publicSites.POST("", controller.Register)             // POST /api/v1/sites - propose a site
	}

	// Admin routes - approval workflow
	adminSites := router.Group("/admin/sites")
	{
		adminSites.PATCH("/:id/status", controller.SetStatus) // PATCH /api/v1/admin/sites/:id/status
	}
}
