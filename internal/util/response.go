package util

import (
	"errors"
	"net/http"

	"blogapi/internal/exception"

	"github.com/gin-gonic/gin"
)

// Response is the envelope used by every handler
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func SuccessResponse(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, status int, message string, errs interface{}) {
	c.JSON(status, Response{
		Success: false,
		Message: message,
		Errors:  errs,
	})
}

func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, message, nil)
}

func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, message, nil)
}

func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, message, nil)
}

func Forbidden(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusForbidden, message, nil)
}

// DomainError translates a service-layer error into an HTTP response.
// Unclassified errors are reported as 500 without internal detail.
func DomainError(c *gin.Context, err error) {
	if errors.Is(err, exception.ErrAuthentication) {
		err = exception.Unauthorized("Authentication required")
	} else if errors.Is(err, exception.ErrAccessDenied) {
		err = exception.Forbidden("Access denied")
	}

	var de *exception.Error
	if !errors.As(err, &de) {
		ErrorResponse(c, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	switch de.Kind {
	case exception.KindNotFound:
		NotFound(c, de.Message)
	case exception.KindForbidden:
		Forbidden(c, de.Message)
	case exception.KindUnauthorized:
		Unauthorized(c, de.Message)
	case exception.KindInvalidData:
		ErrorResponse(c, http.StatusUnprocessableEntity, de.Message, de.Fields)
	case exception.KindBadRequest:
		BadRequest(c, de.Message)
	default:
		ErrorResponse(c, http.StatusInternalServerError, "internal server error", nil)
	}
}
