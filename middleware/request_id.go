package middleware

import (
	"ecommerce-backend/logging"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const RequestIDHeader = "X-Request-Id"

// RequestID tags the request with an id and attaches a logger carrying it.
func RequestID(base *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(reqID); err != nil {
			reqID = uuid.NewString()
		}
		c.Header(RequestIDHeader, reqID)

		l := base.With().Str("request_id", reqID).Logger()
		logging.With(c, l)
		c.Next()
	}
}
