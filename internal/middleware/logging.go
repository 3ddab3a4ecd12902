// internal/middleware/logging.go
package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/inventra/inventra-backend/internal/models"
	"github.com/inventra/inventra-backend/internal/services"
	"github.com/inventra/inventra-backend/internal/utils"
)

// RequestLogger assigns each request an id and logs it as a structured
// entry once the handler chain completes.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()
		duration := time.Since(start)

		entry := logrus.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   duration.Milliseconds(),
			"ip":         c.ClientIP(),
		})
		if userID, ok := utils.GetUserIDFromContext(c); ok {
			entry = entry.WithField("user_id", userID)
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			entry.Error("Request failed")
		case c.Writer.Status() >= http.StatusBadRequest:
			entry.Warn("Request rejected")
		default:
			entry.Info("Request processed")
		}
	}
}

// AuditLog records successful mutating requests to the activity feed.
// Reads and failed requests are skipped.
func AuditLog(analytics *services.AnalyticsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method == http.MethodGet || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		var userID *uint
		if id, ok := utils.GetUserIDFromContext(c); ok {
			userID = &id
		}

		action := actionForRequest(c.Request.Method, c.Request.URL.Path)
		description := fmt.Sprintf("%s %s", c.Request.Method, c.Request.URL.Path)

		// Persist outside the request path.
		go analytics.LogActivity(userID, action, description, c.ClientIP())
	}
}

func actionForRequest(method, path string) models.ActivityAction {
	if strings.Contains(path, "/import") {
		return models.ActivityActionImport
	}
	if strings.Contains(path, "/auth/login") {
		return models.ActivityActionLogin
	}
	switch method {
	case http.MethodPost:
		return models.ActivityActionCreate
	case http.MethodDelete:
		return models.ActivityActionDelete
	default:
		return models.ActivityActionUpdate
	}
}
