package sites

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mulnori/internal/shared/apperror"
	"mulnori/internal/shared/utils/response"
)

type Controller interface {
	Register(c *gin.Context)
	GetSite(c *gin.Context)
	ListSites(c *gin.Context)
	ListPublicSites(c *gin.Context)
	SetStatus(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) Register(c *gin.Context) {
	var req RegisterSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	site, err := ctrl.service.Register(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Site registered; pending approval", site, nil)
}

func (ctrl *controller) GetSite(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	site, err := ctrl.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Site retrieved", site, nil)
}

func (ctrl *controller) ListSites(c *gin.Context) {
	sites, err := ctrl.service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Sites retrieved", sites, nil)
}

func (ctrl *controller) ListPublicSites(c *gin.Context) {
	sites, err := ctrl.service.ListPublic(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Approved sites retrieved", sites, nil)
}

func (ctrl *controller) SetStatus(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid or missing status", nil, err.Error())
		return
	}

	site, err := ctrl.service.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Site status updated", site, nil)
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperror.Validation("invalid site id")
	}
	return uint(id), nil
}
