package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// RealIP stores the client IP in the Gin context under "real_ip".
// With trustHeaders the priority is CF-Connecting-IP, left-most X-Forwarded-For,
// X-Real-IP, then c.ClientIP(). Without it only c.ClientIP() is used, which
// honours forwarding headers from the engine's trusted proxies alone.
func RealIP(trustHeaders bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if trustHeaders {
			c.Set("real_ip", realIP(c))
		} else {
			c.Set("real_ip", c.ClientIP())
		}
		c.Next()
	}
}

func realIP(c *gin.Context) string {
	if ip := parseIP(c.GetHeader("CF-Connecting-IP")); ip != "" {
		return ip
	}
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := parseIP(first); ip != "" {
			return ip
		}
	}
	if ip := parseIP(c.GetHeader("X-Real-IP")); ip != "" {
		return ip
	}
	return c.ClientIP()
}

func parseIP(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}
