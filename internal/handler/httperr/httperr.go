package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the flat error body every endpoint returns.
type Response struct {
	Status int    `json:"-"`
	Error  string `json:"error"`
	Detail any    `json:"detail,omitempty"`
}

func New(status int, msg string) Response {
	return Response{Status: status, Error: msg}
}

// Abort writes the error body and records err on the context so the logging
// middleware sees the underlying cause, not just the user-facing message.
func Abort(c *gin.Context, status int, err error, msg string) {
	resp := New(status, msg)
	if err != nil {
		_ = c.Error(gin.Error{
			Err:  err,
			Type: gin.ErrorTypePublic,
			Meta: resp,
		})
	}
	c.AbortWithStatusJSON(status, resp)
}
