package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID tags every request with an id so log lines can be correlated.
// An inbound X-Request-ID is trusted and passed through.
func RequestID(c *gin.Context) {
	id := c.Request.Header.Get("X-Request-ID")
	if id == "" {
		id = uuid.NewString()
	}
	c.Set("requestId", id)
	c.Writer.Header().Set("X-Request-ID", id)
	c.Next()
}
