package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/incidentline/authcore/internal/constants"
	ctxutil "github.com/incidentline/authcore/pkg/context"
)

// RequestContextMiddleware tags every request with an id and the metadata
// that log lines carry. The id is taken from X-Request-ID when the caller
// supplies one, so traces line up across services.
func RequestContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(string(ctxutil.RequestIDKey), requestID)
		c.Header(constants.HeaderXRequestID, requestID)

		ctx := c.Request.Context()
		ctx = ctxutil.WithRequestID(ctx, requestID)
		ctx = ctxutil.WithStartTime(ctx, time.Now())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
