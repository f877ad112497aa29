package session

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextUserID is the Gin context key the middleware sets for handlers
const ContextUserID = "user_id"

// AuthMiddleware validates the session cookie and injects the owning
// user ID into the Gin context. Requests without a valid, unexpired
// session are rejected with 401.
func AuthMiddleware(mgr Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(mgr.CookieName())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authentication required.",
			})
			return
		}

		sess, err := mgr.Get(c.Request.Context(), token)
		if err != nil {
			log.Printf("Rejected session %s: %v", token, err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authentication required.",
			})
			return
		}

		c.Set(ContextUserID, sess.UserID)
		c.Next()
	}
}

// UserID extracts the authenticated user ID from the Gin context
func UserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}
