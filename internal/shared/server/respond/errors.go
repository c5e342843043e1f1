package respond

import (
	"github.com/gin-gonic/gin"

	"job-catalog/internal/shared/telemetry"
)

// ErrorResponse is the error body returned by the catalog API. Detail is shown
// to end users verbatim by the web front end.
type ErrorResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
}

// Error sends a standardized error response.
func Error(c *gin.Context, status int, code, detail string) {
	fields := telemetry.Fields{
		"status":     status,
		"code":       code,
		"detail":     detail,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if resource := c.GetString("resource"); resource != "" {
		fields["resource"] = resource
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, ErrorResponse{
		Detail: detail,
		Code:   code,
	})
}
