package response

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody is the client-facing error shape. Handlers never leak internal
// error detail; the message comes from the code's fixed mapping.
type ErrorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Success sends payload as-is with the given status code.
func Success(c *gin.Context, statusCode int, payload interface{}) {
	c.JSON(statusCode, payload)
}

// Fail sends an {error} body for the given error code.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	c.JSON(statusCode, ErrorBody{Error: GetMessage(code)})
}

// FailWithFields sends an {error} body with field-level validation details.
func FailWithFields(c *gin.Context, statusCode int, code ErrCode, fields map[string]string) {
	c.JSON(statusCode, ErrorBody{Error: GetMessage(code), Fields: fields})
}

// AbortFail aborts the middleware chain and sends an {error} body.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.AbortWithStatusJSON(statusCode, ErrorBody{Error: GetMessage(code)})
}
