package middleware

import (
	"net/netip"
	"strings"

	"github.com/gin-gonic/gin"
)

// RealIPKey is the Gin context key holding the resolved client address.
const RealIPKey = "real_ip"

// proxyHeaders are checked in order; the first parseable address wins.
// X-Forwarded-For contributes its left-most entry.
var proxyHeaders = []string{"CF-Connecting-IP", "X-Real-IP", "X-Forwarded-For"}

// RealIP resolves the client address behind Cloudflare or a reverse proxy and
// stores it under RealIPKey. It falls back to c.ClientIP().
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(RealIPKey, resolveIP(c))
		c.Next()
	}
}

func resolveIP(c *gin.Context) string {
	for _, h := range proxyHeaders {
		v := c.GetHeader(h)
		if v == "" {
			continue
		}
		if first, _, found := strings.Cut(v, ","); found {
			v = first
		}
		if addr, err := netip.ParseAddr(strings.TrimSpace(v)); err == nil {
			return addr.Unmap().String()
		}
	}
	return c.ClientIP()
}
