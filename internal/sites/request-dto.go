package sites

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterSiteRequest proposes a new dive site. Lat/Lon are pointers so a
// missing coordinate is distinguishable from zero (0,0 is a real, if wet,
// location). Tags is an optional comma-joined initial list.
type RegisterSiteRequest struct {
	Name string   `json:"name" binding:"required,max=255"`
	Lat  *float64 `json:"lat" binding:"required"`
	Lon  *float64 `json:"lon" binding:"required"`
	Tags string   `json:"tags"`
}

// UpdateStatusRequest sets a site's approval status.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,sitestatus"`
}

// RegisterValidations installs the custom binding rules used by the DTOs
// above. Called once at startup.
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("sitestatus", func(fl validator.FieldLevel) bool {
			_, ok := ParseStatus(fl.Field().String())
			return ok
		})
	}
}
