package middleware

import (
	"bytes"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkowalski/codeplay/backend/pkg/logger"
)

const auditBodyLimit = 2000

// AuditLog records write operations (POST/PUT/DELETE) against the API,
// with a truncated body snippet so destructive actions like delete-all
// or a confirmed replace can be traced after the fact.
func AuditLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		if method != "POST" && method != "PUT" && method != "DELETE" {
			c.Next()
			return
		}

		var bodySnippet string
		if c.Request.Body != nil {
			bodyBytes, _ := io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			bodySnippet = string(bodyBytes)
			if len(bodySnippet) > auditBodyLimit {
				bodySnippet = bodySnippet[:auditBodyLimit] + "...[truncated]"
			}
		}

		c.Next()

		resource, action := parseRouteInfo(c.FullPath(), method)

		log := logger.Get()
		log.Info().
			Str("resource", resource).
			Str("action", action).
			Str("method", method).
			Str("path", c.Request.URL.Path).
			Str("ip", c.ClientIP()).
			Int("status", c.Writer.Status()).
			Str("body", bodySnippet).
			Msg("audit")
	}
}

// parseRouteInfo extracts resource and action from a Gin route pattern.
// e.g. "/api/projects/:index" + "DELETE" → resource="projects", action="delete"
func parseRouteInfo(fullPath, method string) (resource, action string) {
	path := strings.TrimPrefix(fullPath, "/api/")
	parts := strings.SplitN(path, "/", 2)
	resource = parts[0]
	if resource == "" {
		resource = "unknown"
	}

	switch method {
	case "POST":
		action = "create"
	case "PUT":
		action = "update"
	case "DELETE":
		action = "delete"
	default:
		action = strings.ToLower(method)
	}
	return resource, action
}
