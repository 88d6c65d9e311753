package api

import (
	"net/http" // HTTP status codes

	"ecommerce_api/internal/middleware" // Principal accessor
	"ecommerce_api/internal/shop"       // Orders service

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Decimal totals
	"github.com/sirupsen/logrus"    // Structured logging
)

// OrderRequest represents a manual order create or update request
type OrderRequest struct {
	UserID uint            `json:"user_id"` // Owner
	Total  decimal.Decimal `json:"total"`   // Order total
}

// ListOrdersHandler returns a page of orders visible to the caller
func ListOrdersHandler(orders *shop.Orders) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.Principal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		page := pageParams(c) // Pagination from query string
		list, total, err := orders.List(c.Request.Context(), user, page)
		if err != nil {
			respondError(c, err, logrus.Fields{"user_id": user.ID})
			return
		}
		// The total number of pages
		totalPages := (int(total) + page.PageSize - 1) / page.PageSize
		c.JSON(http.StatusOK, gin.H{
			"orders":      list,          // Orders on this page
			"page":        page.Page,     // Current page
			"page_size":   page.PageSize, // Page size
			"total":       total,         // Total number of orders
			"total_pages": totalPages,    // Total pages
		})
	}
}

// GetOrderHandler returns one order
func GetOrderHandler(orders *shop.Orders) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.Principal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		order, err := orders.Get(c.Request.Context(), user, id)
		if err != nil {
			respondError(c, err, logrus.Fields{"order_id": id, "user_id": user.ID})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// CreateOrderHandler records an order outside checkout
func CreateOrderHandler(orders *shop.Orders) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req OrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		order, err := orders.Create(c.Request.Context(), shop.OrderInput{UserID: req.UserID, Total: req.Total})
		if err != nil {
			respondError(c, err, logrus.Fields{"user_id": req.UserID})
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

// UpdateOrderHandler rewrites an order's owner and total
func UpdateOrderHandler(orders *shop.Orders) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var req OrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		order, err := orders.Update(c.Request.Context(), id, shop.OrderInput{UserID: req.UserID, Total: req.Total})
		if err != nil {
			respondError(c, err, logrus.Fields{"order_id": id})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// DeleteOrderHandler removes an order
func DeleteOrderHandler(orders *shop.Orders) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := orders.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err, logrus.Fields{"order_id": id})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}
