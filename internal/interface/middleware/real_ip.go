package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// CtxClientIPKey holds the resolved client address.
const CtxClientIPKey = "client_ip"

// DefaultIPHeaders are consulted in order before the socket peer.
var DefaultIPHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// RealIP stores the client address under CtxClientIPKey. The first header
// carrying a parseable address wins; for X-Forwarded-For that is the
// left-most entry.
func RealIP(headers ...string) gin.HandlerFunc {
	if len(headers) == 0 {
		headers = DefaultIPHeaders
	}
	return func(c *gin.Context) {
		ip := ""
		for _, h := range headers {
			if ip = firstIP(c.GetHeader(h)); ip != "" {
				break
			}
		}
		if ip == "" {
			ip = c.ClientIP()
		}
		c.Set(CtxClientIPKey, ip)
		c.Next()
	}
}

func firstIP(v string) string {
	if v == "" {
		return ""
	}
	head, _, _ := strings.Cut(v, ",")
	if ip := net.ParseIP(strings.TrimSpace(head)); ip != nil {
		return ip.String()
	}
	return ""
}

// ClientIP returns the address RealIP resolved, or gin's guess when the
// middleware is not installed.
func ClientIP(c *gin.Context) string {
	if ip := c.GetString(CtxClientIPKey); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}
