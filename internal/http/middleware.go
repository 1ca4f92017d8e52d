package http

import (
	"github.com/gin-gonic/gin"

	"expense-tracker-api/internal/auth"
)

// AuthMiddleware verifies the access token and attaches the caller's
// identity to the request context. Handlers read userID from there and never
// trust identity fields in a request body.
func AuthMiddleware(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := auth.ExtractBearer(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(401, gin.H{"success": false, "message": "Unauthorized"})
			return
		}

		payload, err := tokens.VerifyAccess(token)
		if err != nil {
			c.AbortWithStatusJSON(401, gin.H{"success": false, "message": "Invalid or expired token"})
			return
		}

		c.Set("userID", payload.UserID)
		c.Set("userEmail", payload.Email)
		c.Next()
	}
}
