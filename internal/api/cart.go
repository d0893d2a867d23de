package api

import (
	"net/http"              // HTTP status codes
	"strconv"               // Path parameter conversion
	"eshop/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// CartItemRequest identifies a product in the cart mutation endpoints
type CartItemRequest struct {
	ProductID uint `json:"productId" binding:"required"` // Product ID must be provided
}

// UpdateQuantityRequest sets an absolute quantity for a cart line
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,gte=1"` // Quantity must be at least 1
}

// GetCartHandler returns the authenticated user's cart items with product details
func GetCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var cart domain.Cart // The user's cart, if any
		err := db.Preload("Items.Product").Where("user_id = ?", userID).First(&cart).Error
		if err != nil {
			// No cart yet simply means an empty item list
			c.JSON(http.StatusOK, gin.H{"items": []domain.CartItem{}})
			return
		}
		// Never serialize a nil slice for an empty cart
		if cart.Items == nil {
			cart.Items = []domain.CartItem{}
		}
		c.JSON(http.StatusOK, gin.H{"items": cart.Items}) // The cart contents
	}
}

// IncrementCartHandler bumps a cart line by one. The cart is created lazily on
// the first add, and an absent line is created with quantity 1.
func IncrementCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req CartItemRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
			return
		}
		// The product must exist before it can be carted
		var product domain.Product
		if err := db.First(&product, req.ProductID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		// Find or lazily create the user's cart
		var cart domain.Cart
		if err := db.Where(domain.Cart{UserID: userID.(uint)}).FirstOrCreate(&cart).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to increment quantity"})
			return
		}
		var item domain.CartItem // The cart line for this product
		err := db.Where("cart_id = ? AND product_id = ?", cart.ID, req.ProductID).First(&item).Error
		if err != nil {
			// Absent line: create it with quantity 1
			item = domain.CartItem{CartID: cart.ID, ProductID: req.ProductID, Quantity: 1}
			if err := db.Create(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to increment quantity"})
				return
			}
		} else {
			// Present line: relative bump so concurrent requests don't lose updates
			if err := db.Model(&item).Update("quantity", gorm.Expr("quantity + ?", 1)).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to increment quantity"})
				return
			}
			item.Quantity++ // Reflect the bump in the response
		}
		// Return the updated line
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Quantity incremented", "cartItem": item})
	}
}

// DecrementCartHandler lowers a cart line by one. A line at quantity 1 is
// removed rather than going to zero.
func DecrementCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req CartItemRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
			return
		}
		var cart domain.Cart // The user's cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
			return
		}
		var item domain.CartItem // The cart line to decrement
		if err := db.Where("cart_id = ? AND product_id = ?", cart.ID, req.ProductID).First(&item).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in cart"})
			return
		}
		// At quantity 1 the line is deleted instead of decremented
		if item.Quantity <= 1 {
			if err := db.Delete(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decrement quantity"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item removed from cart"})
			return
		}
		// Relative decrement, mirroring the increment path
		if err := db.Model(&item).Update("quantity", gorm.Expr("quantity - ?", 1)).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decrement quantity"})
			return
		}
		item.Quantity-- // Reflect the decrement in the response
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Quantity decremented", "cartItem": item})
	}
}

// RemoveCartItemHandler deletes one line from the cart, identified in the body
func RemoveCartItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req CartItemRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
			return
		}
		removeCartItem(c, db, userID.(uint), req.ProductID) // Shared removal logic
	}
}

// DeleteCartItemHandler deletes one line from the cart, identified in the path
func DeleteCartItemHandler(db *gorm.DB) gin.HandlerFunc {
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
		removeCartItem(c, db, userID.(uint), uint(productID)) // Shared removal logic
	}
}

// removeCartItem is the shared body of the two removal endpoints
func removeCartItem(c *gin.Context, db *gorm.DB, userID, productID uint) {
	var cart domain.Cart // The user's cart
	if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
		return
	}
	// Delete the matching line, if any
	res := db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).Delete(&domain.CartItem{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item"})
		return
	}
	// Nothing deleted means the item was never in the cart
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item removed from cart"})
}

// UpdateCartItemHandler sets an absolute quantity for one cart line
func UpdateCartItemHandler(db *gorm.DB) gin.HandlerFunc {
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
		var req UpdateQuantityRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// Quantities below 1 are rejected; removal has its own endpoints
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
			return
		}
		var cart domain.Cart // The user's cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
			return
		}
		// Set the absolute quantity on the matching line
		res := db.Model(&domain.CartItem{}).
			Where("cart_id = ? AND product_id = ?", cart.ID, productID).
			Update("quantity", req.Quantity)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}
		// Nothing updated means the item was never in the cart
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart item updated successfully"})
	}
}
