package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"ecommerce_api/internal/middleware" // Request id
	"ecommerce_api/internal/shop"       // Error kinds

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// respondError maps a service error to its HTTP status. Store faults are
// logged with fields and answered with an opaque 500.
func respondError(c *gin.Context, err error, fields logrus.Fields) {
	var nf *shop.NotFoundError
	switch {
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"error": nf.Entity + " not found"}) // Named missing entity
	case errors.Is(err, shop.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, shop.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()}) // Message is client safe
	case errors.Is(err, shop.ErrAuthFailed):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password."})
	case errors.Is(err, shop.ErrPaymentFailed):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment failed"})
	case errors.Is(err, shop.ErrAlreadyCheckedOut):
		c.JSON(http.StatusConflict, gin.H{"error": "Cart already checked out"})
	case errors.Is(err, shop.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
	case errors.Is(err, shop.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	default:
		if fields == nil {
			fields = logrus.Fields{}
		}
		fields["error"] = err.Error()                  // Error message
		fields["route"] = c.FullPath()                 // Route template
		fields["request_id"] = middleware.RequestID(c) // Correlates with the access log
		// Internal detail goes to the log only
		logrus.WithFields(fields).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
	}
}

// pathID parses a positive integer path parameter, answering 400 when it is not one
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

// pageParams reads page and page_size from the query string
func pageParams(c *gin.Context) shop.Page {
	page := 1      // Default page number
	pageSize := 20 // Default page size
	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v // Set page if valid
		}
	}
	// Check and set page size within limits
	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v // Set page size if valid
		}
	}
	return shop.Page{Page: page, PageSize: pageSize}
}
