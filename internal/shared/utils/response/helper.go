package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mulnori/internal/shared/apperror"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondError translates a workflow error into the response envelope.
// Errors outside the apperror taxonomy are reported as 500s.
func RespondError(c *gin.Context, err error) {
	code := http.StatusInternalServerError
	switch apperror.KindOf(err) {
	case apperror.KindValidation:
		code = http.StatusBadRequest
	case apperror.KindNotFound:
		code = http.StatusNotFound
	case apperror.KindConflict:
		code = http.StatusConflict
	case apperror.KindStorage:
		code = http.StatusServiceUnavailable
	}
	RespondJSON(c, "error", code, err.Error(), nil, nil)
}
