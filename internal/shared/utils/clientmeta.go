package utils

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// ClientMeta is the request metadata captured on a session at creation
// time. It is immutable afterwards.
type ClientMeta struct {
	IPAddress string
	Device    string
	Browser   string
}

// ClientMetaFromRequest extracts client metadata from the inbound request.
func ClientMetaFromRequest(c *gin.Context) ClientMeta {
	ua := c.GetHeader("User-Agent")
	return ClientMeta{
		IPAddress: c.ClientIP(),
		Device:    DetectDevice(ua),
		Browser:   DetectBrowser(ua),
	}
}

// DetectDevice classifies the User-Agent into a coarse device type.
func DetectDevice(userAgent string) string {
	ua := strings.ToLower(userAgent)
	if strings.Contains(ua, "mobile") || strings.Contains(ua, "android") || strings.Contains(ua, "iphone") {
		return "mobile"
	}
	if strings.Contains(ua, "tablet") || strings.Contains(ua, "ipad") {
		return "tablet"
	}
	return "web"
}

// DetectBrowser extracts a coarse browser family from the User-Agent.
func DetectBrowser(userAgent string) string {
	ua := strings.ToLower(userAgent)
	switch {
	case strings.Contains(ua, "firefox"):
		return "firefox"
	case strings.Contains(ua, "edg"):
		return "edge"
	case strings.Contains(ua, "chrome"):
		return "chrome"
	case strings.Contains(ua, "safari"):
		return "safari"
	case ua == "":
		return "unknown"
	default:
		return "other"
	}
}
