package api

import (
	"net/http" // HTTP status codes

	"ecommerce_api/internal/middleware" // Principal accessor
	"ecommerce_api/internal/shop"       // Cart manager and checkout

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// CreateCartRequest represents a create cart request
type CreateCartRequest struct {
	UserID uint `json:"userId"` // Owner, defaults to the logged in user
}

// AddItemRequest represents an add to cart request
type AddItemRequest struct {
	ProductID uint `json:"productId" binding:"required"`     // Product to add
	Quantity  int  `json:"quantity" binding:"required,gt=0"` // Positive quantity
}

// CreateCartHandler opens a new cart
func CreateCartHandler(carts *shop.CartManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.Principal(c) // Set by SessionAuth
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req CreateCartRequest
		// An empty body is allowed
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
				return
			}
		}
		if req.UserID == 0 {
			req.UserID = user.ID // Default to the caller
		}
		// Only admins open carts on behalf of other users
		if req.UserID != user.ID && !user.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		cart, err := carts.CreateCart(c.Request.Context(), req.UserID)
		if err != nil {
			respondError(c, err, logrus.Fields{"user_id": req.UserID})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Cart created successfully", "cart": cart})
	}
}

// AddItemHandler adds a product line to a cart
func AddItemHandler(carts *shop.CartManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID, ok := pathID(c, "cartId")
		if !ok {
			return
		}
		var req AddItemRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		item, err := carts.AddItem(c.Request.Context(), cartID, req.ProductID, req.Quantity)
		if err != nil {
			respondError(c, err, logrus.Fields{"cart_id": cartID, "product_id": req.ProductID})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Product added to cart", "cartItem": item})
	}
}

// GetCartHandler returns the cart's lines joined with their products
func GetCartHandler(carts *shop.CartManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID, ok := pathID(c, "cartId")
		if !ok {
			return
		}
		lines, err := carts.ListItems(c.Request.Context(), cartID)
		if err != nil {
			respondError(c, err, logrus.Fields{"cart_id": cartID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cartItems": lines})
	}
}

// DeleteCartHandler deletes a cart and its items
func DeleteCartHandler(carts *shop.CartManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID, ok := pathID(c, "cartId")
		if !ok {
			return
		}
		if err := carts.DeleteCart(c.Request.Context(), cartID); err != nil {
			respondError(c, err, logrus.Fields{"cart_id": cartID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart deleted successfully"})
	}
}

// CheckoutHandler converts a cart into an order. Besides the mapped service
// errors, an existing cart without items answers 400 "Cart is empty".
func CheckoutHandler(checkout *shop.Checkout) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID, ok := pathID(c, "cartId")
		if !ok {
			return
		}
		order, err := checkout.Checkout(c.Request.Context(), cartID)
		if err != nil {
			respondError(c, err, logrus.Fields{"cart_id": cartID})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Checkout successful", "order": order})
	}
}
