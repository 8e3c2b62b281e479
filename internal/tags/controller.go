package tags

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mulnori/internal/shared/apperror"
	"mulnori/internal/shared/utils/response"
)

type Controller interface {
	RequestAddition(c *gin.Context)
	RequestDeletion(c *gin.Context)
	ListHiddenRequests(c *gin.Context)
	PurgeHiddenRequest(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) RequestAddition(c *gin.Context) {
	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	outcome, err := ctrl.service.RequestAddition(c.Request.Context(), req.SiteID, req.TagName)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated,
		"Tag addition requested; it will appear after moderator approval", outcome, nil)
}

func (ctrl *controller) RequestDeletion(c *gin.Context) {
	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	outcome, err := ctrl.service.RequestDeletion(c.Request.Context(), req.SiteID, req.TagName)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	message := "Tag deletion request recorded"
	if outcome.HiddenNow {
		message = "Tag deletion request recorded; threshold crossed, tag hidden"
	} else if outcome.Hidden {
		message = "Tag deletion request recorded; tag already hidden"
	}
	response.RespondJSON(c, "success", http.StatusOK, message, outcome, nil)
}

func (ctrl *controller) ListHiddenRequests(c *gin.Context) {
	hidden, err := ctrl.service.ListHiddenRequests(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Hidden deletion requests retrieved", hidden, nil)
}

func (ctrl *controller) PurgeHiddenRequest(c *gin.Context) {
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.RespondError(c, apperror.Validation("invalid request id"))
		return
	}

	if err := ctrl.service.PurgeHiddenRequest(c.Request.Context(), uint(requestID)); err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Hidden deletion request purged", nil, nil)
}
