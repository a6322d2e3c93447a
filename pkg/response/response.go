package response

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody is the only error shape the API emits.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSON writes body as-is; successful responses are plain keyed objects
// such as {"house": ...}.
func JSON(ctx *gin.Context, status int, body any) {
	ctx.JSON(status, body)
}

// Error writes {"error": message} and aborts the handler chain.
func Error(ctx *gin.Context, status int, message string) {
	ctx.AbortWithStatusJSON(status, ErrorBody{Error: message})
}
