package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"

	"mulnori/internal/boards"
	"mulnori/internal/notify"
	"mulnori/internal/shared/config"
	"mulnori/internal/shared/database"
	"mulnori/internal/sites"
	"mulnori/internal/tags"
	"mulnori/internal/uploads"
	"mulnori/pkg/cache"
)

// Router holds all route dependencies
type Router struct {
	config       *config.Config
	db           *database.DB
	cacheService cache.Service
	publisher    notify.Publisher
	minioClient  *minio.Client
}

// NewRouter creates a new router instance. publisher and minioClient may be
// nil when Kafka or object storage are not configured.
func NewRouter(cfg *config.Config, db *database.DB, cacheService cache.Service, publisher notify.Publisher, minioClient *minio.Client) *Router {
	return &Router{
		config:       cfg,
		db:           db,
		cacheService: cacheService,
		publisher:    publisher,
		minioClient:  minioClient,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupSiteRoutes(api)
		r.setupTagRoutes(api)
		r.setupBoardRoutes(api)
		r.setupUploadRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "mulnori-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "mulnori-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupSiteRoutes configures dive-site registry and approval routes
func (r *Router) setupSiteRoutes(rg *gin.RouterGroup) {
	siteRepo := sites.NewRepository(r.db.GetPostgreSQL())
	siteService := sites.NewService(siteRepo)

	if r.publisher != nil {
		siteService.SetPublisher(r.publisher)
	}
	if r.cacheService != nil {
		siteService.SetCacheService(r.cacheService)
	}

	siteController := sites.NewController(siteService)
	sites.SetupSiteRoutes(rg, siteController)
}

// setupTagRoutes configures the tag governance workflow routes
func (r *Router) setupTagRoutes(rg *gin.RouterGroup) {
	tagRepo := tags.NewRepository(r.db.GetPostgreSQL())
	tagService := tags.NewService(tagRepo, r.config.Governance.DeletionThreshold, r.config.Governance.MaxTagLength)

	if r.publisher != nil {
		tagService.SetPublisher(r.publisher)
	}
	if r.cacheService != nil {
		tagService.SetCacheService(r.cacheService)
	}

	tagController := tags.NewController(tagService)
	tags.SetupTagRoutes(rg, tagController)
}

// setupBoardRoutes configures community board routes
func (r *Router) setupBoardRoutes(rg *gin.RouterGroup) {
	boardRepo := boards.NewRepository(r.db.GetPostgreSQL())
	boardService := boards.NewService(boardRepo)

	if r.cacheService != nil {
		boardService.SetCacheService(r.cacheService)
	}

	boardController := boards.NewController(boardService)
	boards.SetupBoardRoutes(rg, boardController)
}

// setupUploadRoutes configures image upload routes
func (r *Router) setupUploadRoutes(rg *gin.RouterGroup) {
	uploadService := uploads.NewService(r.minioClient, r.config.Storage)
	uploadController := uploads.NewController(uploadService)
	uploads.SetupUploadRoutes(rg, uploadController)
}
