package middleware

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"ecommerce_api/internal/domain"  // Importing domain models
	"ecommerce_api/internal/session" // Cookie sessions
	"ecommerce_api/internal/shop"    // Auth provider

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// principalKey holds the *domain.User set by SessionAuth
const principalKey = "principal"

// SessionAuth resolves the session cookie to a user and stores it in the context
func SessionAuth(sessions *session.Manager, auth shop.AuthProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, err := sessions.Current(c) // Read and verify the cookie
		if errors.Is(err, session.ErrNoSession) {
			// No cookie, bad signature or expired session
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{"error": err.Error()}).Error("Session lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
			return
		}
		user, err := auth.ResolvePrincipal(c.Request.Context(), userID) // Load the user behind the session
		if errors.Is(err, shop.ErrNotFound) {
			// Session outlived its user
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).Error("Principal lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
			return
		}
		c.Set(principalKey, user) // Store principal in context
		c.Next()                  // Proceed to the next handler
	}
}

// Principal returns the user stored by SessionAuth
func Principal(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}
