package router

import "github.com/gin-gonic/gin"

// Module owns a slice of the /api route table.
type Module interface {
	Register(rg *gin.RouterGroup)
}
