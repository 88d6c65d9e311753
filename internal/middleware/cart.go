package middleware

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"ecommerce_api/internal/shop" // Cart manager

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// CartOwner rejects access to a cart owned by someone else. Missing carts
// pass through so the handler can answer for them. It must run after SessionAuth.
func CartOwner(carts *shop.CartManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := Principal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		cartID, err := strconv.ParseUint(c.Param("cartId"), 10, 64) // Parse cart id from path
		if err != nil || cartID == 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid cart id"})
			return
		}
		cart, err := carts.GetCart(c.Request.Context(), uint(cartID))
		if errors.Is(err, shop.ErrNotFound) {
			c.Next() // Let the handler report the missing cart
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{"cart_id": cartID, "error": err.Error()}).Error("Cart lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
			return
		}
		if cart.UserID != user.ID && !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}
