package app

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"blogapi/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// bindJSON binds the request body and, on validation failure, answers with
// a field->message map instead of the raw validator error string.
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		fields := make(map[string]string, len(validationErr))
		for _, fieldErr := range validationErr {
			fields[strings.ToLower(fieldErr.Field())] = validationMessage(fieldErr)
		}
		util.ErrorResponse(c, http.StatusUnprocessableEntity, "Invalid data", fields)
		return false
	}

	util.BadRequest(c, err.Error())
	return false
}

func validationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fieldErr.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fieldErr.Param())
	case "uuid":
		return "must be a valid uuid"
	}
	return "is invalid"
}
