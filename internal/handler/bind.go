package handler

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	apperrors "github.com/medvault/records-api/pkg/errors"
)

// BindStrict decodes the request body into obj rejecting unknown fields, then
// runs the binding validators. The first failing constraint is surfaced as a
// validation error.
func BindStrict(c *gin.Context, obj interface{}) error {
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(obj); err != nil {
		return apperrors.Validation(err.Error())
	}

	if err := binding.Validator.ValidateStruct(obj); err != nil {
		return apperrors.Validation(err.Error())
	}
	return nil
}

// Respond writes the standard success envelope.
func Respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, NewSuccessResponse(data))
}

// Error writes the standard error envelope using the taxonomy status.
func Error(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	c.JSON(appErr.StatusCode(), NewErrorResponse(appErr.Message))
}

// Filters collects single-valued query parameters for list endpoints,
// skipping any reserved names claimed by the route itself.
func Filters(c *gin.Context, reserved ...string) map[string]string {
	filters := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if len(values) == 0 {
			continue
		}
		skip := false
		for _, r := range reserved {
			if key == r {
				skip = true
				break
			}
		}
		if !skip {
			filters[key] = values[0]
		}
	}
	return filters
}
