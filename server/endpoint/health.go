package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Check reports a named dependency's health; a nil error means healthy.
type Check func(ctx context.Context) (name string, err error)

// Health returns a handler that reports service health including check results.
func Health(serviceName string, checks ...Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "healthy"
		components := make(map[string]string, len(checks))

		for _, check := range checks {
			if check == nil {
				continue
			}
			name, err := check(c.Request.Context())
			if err != nil {
				status = "unhealthy"
				components[name] = err.Error()
				continue
			}
			components[name] = "healthy"
		}

		httpStatus := http.StatusOK
		if status == "unhealthy" {
			httpStatus = http.StatusServiceUnavailable
		}

		c.JSON(httpStatus, gin.H{
			"status":     status,
			"service":    serviceName,
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
			"components": components,
		})
	}
}
