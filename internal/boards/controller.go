package boards

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mulnori/internal/shared/apperror"
	"mulnori/internal/shared/utils/response"
)

type Controller interface {
	ListCategories(c *gin.Context)
	ListPosts(c *gin.Context)
	CreatePost(c *gin.Context)
	GetPost(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) ListCategories(c *gin.Context) {
	categories, err := ctrl.service.ListCategories(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Categories retrieved", categories, nil)
}

func (ctrl *controller) ListPosts(c *gin.Context) {
	var categoryID *uint
	if raw := c.Query("category_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.RespondError(c, apperror.Validation("invalid category id"))
			return
		}
		id := uint(parsed)
		categoryID = &id
	}

	posts, err := ctrl.service.ListPosts(categoryID)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Posts retrieved", posts, nil)
}

func (ctrl *controller) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	post, err := ctrl.service.CreatePost(req)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Post created", post, nil)
}

func (ctrl *controller) GetPost(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.RespondError(c, apperror.Validation("invalid post id"))
		return
	}

	post, err := ctrl.service.GetPost(uint(id))
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Post retrieved", post, nil)
}
