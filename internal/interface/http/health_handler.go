package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health reports liveness only; it does not touch the database.
func Health(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "service": service})
	}
}
