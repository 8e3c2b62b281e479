package uploads

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mulnori/internal/shared/utils/response"
)

type Controller interface {
	UploadImage(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "No image file provided", nil, err.Error())
		return
	}

	result, err := ctrl.service.UploadImage(c.Request.Context(), file)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Image uploaded", result, nil)
}
