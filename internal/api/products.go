package api

import (
	"net/http" // HTTP status codes

	"ecommerce_api/internal/shop" // Catalog service

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Decimal prices
	"github.com/sirupsen/logrus"    // Structured logging
)

// ProductRequest represents a create or update product request
type ProductRequest struct {
	Name        string          `json:"name" binding:"required"` // Product name
	Description string          `json:"description"`             // Optional description
	Price       decimal.Decimal `json:"price"`                   // Unit price, number or string
	Stock       int             `json:"stock" binding:"gte=0"`   // Units in stock
}

func (r ProductRequest) input() shop.ProductInput {
	return shop.ProductInput{Name: r.Name, Description: r.Description, Price: r.Price, Stock: r.Stock}
}

// ListProductsHandler returns the whole catalogue
func ListProductsHandler(catalog *shop.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := catalog.List(c.Request.Context())
		if err != nil {
			respondError(c, err, nil)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GetProductHandler returns one product
func GetProductHandler(catalog *shop.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		product, err := catalog.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, logrus.Fields{"product_id": id})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// CreateProductHandler adds a product to the catalogue
func CreateProductHandler(catalog *shop.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		product, err := catalog.Create(c.Request.Context(), req.input())
		if err != nil {
			respondError(c, err, nil)
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

// UpdateProductHandler rewrites a product
func UpdateProductHandler(catalog *shop.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var req ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		product, err := catalog.Update(c.Request.Context(), id, req.input())
		if err != nil {
			respondError(c, err, logrus.Fields{"product_id": id})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// DeleteProductHandler removes a product
func DeleteProductHandler(catalog *shop.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := catalog.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err, logrus.Fields{"product_id": id})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
