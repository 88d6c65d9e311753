package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"ecommerce_api/internal/middleware" // Principal accessor
	"ecommerce_api/internal/session"    // Cookie sessions
	"ecommerce_api/internal/shop"       // Auth provider and registration

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// Request struct for registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`       // Username must be provided
	Email    string `json:"email" binding:"required,email"`    // Email must be provided and well formed
	Password string `json:"password" binding:"required,min=8"` // Password must be provided
}

// Request struct for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// RegisterHandler creates a user account
func RegisterHandler(auth *shop.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := auth.Register(c.Request.Context(), shop.RegisterInput{
			Username: req.Username, // Requested username
			Email:    req.Email,    // Contact email
			Password: req.Password, // Plaintext, hashed by the service
		})
		if err != nil {
			respondError(c, err, logrus.Fields{"username": req.Username})
			return
		}
		logrus.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("User registered")
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user": user})
	}
}

// LoginHandler verifies credentials and opens a cookie session
func LoginHandler(auth shop.AuthProvider, sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := auth.Verify(c.Request.Context(), req.Username, req.Password)
		var authErr *shop.AuthError
		if errors.As(err, &authErr) {
			// The reason stays in the log; the client gets one answer for both cases
			logrus.WithFields(logrus.Fields{
				"username":   req.Username,            // Attempted username
				"reason":     authErr.Reason,          // no_such_user or bad_password
				"request_id": middleware.RequestID(c), // Correlates with the access log
			}).Warn("Login rejected")
		}
		if err != nil {
			respondError(c, err, logrus.Fields{"username": req.Username})
			return
		}
		// Persist only the serialized principal in the session
		if err := sessions.Start(c, auth.SerializeUser(user)); err != nil {
			respondError(c, err, logrus.Fields{"user_id": user.ID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Login successful", "user": user.Summary()})
	}
}

// LogoutHandler destroys the current session
func LogoutHandler(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := sessions.End(c); err != nil {
			respondError(c, err, nil)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
	}
}

// MeHandler returns the logged in user
func MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.Principal(c) // Set by SessionAuth
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}
