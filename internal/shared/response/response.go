package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the wire shape every failed request returns. Code is a
// machine-readable identifier the storefront switches on; it is omitted for
// plain validation failures.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// JSON writes data as-is. Success payloads carry no envelope so the
// storefront consumes fields directly.
func JSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

func Error(c *gin.Context, statusCode int, message, code string) {
	c.JSON(statusCode, ErrorBody{
		Error: message,
		Code:  code,
	})
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message, "")
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message, "")
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message, "")
}

func InternalServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message, "")
}

func BadGateway(c *gin.Context, message string) {
	Error(c, http.StatusBadGateway, message, "")
}
