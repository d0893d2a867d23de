package api

import (
	"net/http"              // HTTP status codes
	"strconv"               // Path parameter conversion
	"eshop/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// WishlistRequest identifies a product to wishlist
type WishlistRequest struct {
	ProductID uint `json:"productId" binding:"required"` // Product ID must be provided
}

// ListWishlistHandler returns the authenticated user's wishlisted products
func ListWishlistHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var items []domain.WishlistItem // The user's wishlist pairs
		if err := db.Preload("Product").Where("user_id = ?", userID).Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}
		// The frontend wants the products, not the join rows
		products := make([]domain.Product, len(items))
		for i, item := range items {
			products[i] = item.Product // Unwrap the product
		}
		c.JSON(http.StatusOK, products) // The wishlisted products
	}
}

// AddWishlistHandler adds a product to the wishlist. Adding a product that is
// already wishlisted is a no-op, never a duplicate row.
func AddWishlistHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req WishlistRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
			return
		}
		// Idempotency: an existing pair short-circuits
		var existing domain.WishlistItem
		if err := db.Where("user_id = ? AND product_id = ?", userID, req.ProductID).First(&existing).Error; err == nil {
			c.JSON(http.StatusOK, gin.H{"message": "Item already in wishlist"})
			return
		}
		item := domain.WishlistItem{UserID: userID.(uint), ProductID: req.ProductID} // The new pair
		if err := db.Create(&item).Error; err != nil {
			// The unique pair index also catches concurrent double-adds
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to wishlist"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item added to wishlist successfully"})
	}
}

// RemoveWishlistHandler deletes one product from the wishlist
func RemoveWishlistHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		productID, err := strconv.Atoi(c.Param("productId")) // Product ID from the path
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
			return
		}
		// Delete the matching pair, if any
		res := db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&domain.WishlistItem{})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item from wishlist"})
			return
		}
		// Nothing deleted means the product was never wishlisted
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not in wishlist"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item removed from wishlist"})
	}
}
