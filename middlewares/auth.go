package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"eventapi/utils"
)

// Authenticate validates the bearer token and puts userId into the context.
// Both "Bearer <token>" and a bare token are accepted.
func Authenticate(c *gin.Context) {
	token := c.Request.Header.Get("Authorization")
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized."})
		return
	}
	if parts := strings.SplitN(token, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		token = strings.TrimSpace(parts[1])
	}

	userId, err := utils.VerifyToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized."})
		return
	}

	c.Set("userId", userId)
	c.Next()
}
