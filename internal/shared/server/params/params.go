// Package params parses path and query parameters shared by the catalog handlers.
package params

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ErrInvalidID is returned when the :id path segment is not a positive integer.
var ErrInvalidID = errors.New("invalid id")

// ID parses the :id path parameter and records it for request logging.
func ID(c *gin.Context) (int64, error) {
	raw := strings.TrimSpace(c.Param("id"))
	c.Set("recordId", raw)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// Text returns the trimmed query value for key.
func Text(c *gin.Context, key string) string {
	return strings.TrimSpace(c.Query(key))
}

// OptionalFloat returns nil for a missing or blank query value.
func OptionalFloat(c *gin.Context, key string) (*float64, error) {
	raw := Text(c, key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", key)
	}
	return &v, nil
}

// Resource tags the request with the resource name for logs and error reports.
func Resource(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("resource", name)
		c.Next()
	}
}
