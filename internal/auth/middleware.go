package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopfront/internal/session"
)

// RequireAdmin aborts requests from non-ADMIN users. It must run after
// the session middleware, which injects the authenticated user ID.
func RequireAdmin(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := session.UserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Success: false,
				Message: "Authentication required.",
			})
			return
		}

		profile, err := svc.ProfileByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Success: false,
				Message: "Authentication required.",
			})
			return
		}

		if profile.Role != RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, Response{
				Success: false,
				Message: "Administrator access required.",
			})
			return
		}

		c.Next()
	}
}
