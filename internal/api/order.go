package api

import (
	"context"               // Context for Redis operations
	"net/http"              // HTTP status codes
	"strconv"               // Query/path parameter conversion
	"time"                  // Timestamps for logging
	"eshop/internal/domain" // Importing domain models
	"eshop/internal/utils"  // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// OrderLineRequest is one checkout line item
type OrderLineRequest struct {
	ID       uint    `json:"id" binding:"required"`              // Product ID
	Quantity int     `json:"quantity" binding:"required,gte=1"`  // Quantity ordered
	Price    float64 `json:"price" binding:"required"`           // Unit price at checkout
}

// PlaceOrderRequest is the checkout payload: shipping details, a total and the cart lines
type PlaceOrderRequest struct {
	CartItems  []OrderLineRequest `json:"cartItems" binding:"required"` // Line items, must be non-empty
	Total      float64            `json:"total" binding:"required"`     // Total as computed at checkout
	FullName   string             `json:"fullName" binding:"required"`  // Recipient name
	Address    string             `json:"address" binding:"required"`   // Street address
	City       string             `json:"city" binding:"required"`      // City
	PostalCode string             `json:"postalCode"`                   // Postal code
	Phone      string             `json:"phone"`                        // Contact phone
}

// PlaceOrderHandler turns the submitted cart into an Order with nested Shipping
// and OrderItem snapshots, decrements each product's stock by the ordered
// quantity and clears the user's cart. The order create is one GORM insert with
// its associations; the stock decrements and the cart clear are separate writes
// afterwards, so a failure in between leaves partial state and a 500.
func PlaceOrderHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req PlaceOrderRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// An order needs at least one line item
		if len(req.CartItems) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}
		// The buyer must still exist
		var user domain.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		// Build the line item snapshots
		items := make([]domain.OrderItem, len(req.CartItems))
		for i, line := range req.CartItems {
			items[i] = domain.OrderItem{
				ProductID: line.ID,       // Product reference
				Quantity:  line.Quantity, // Quantity ordered
				Price:     line.Price,    // Price at purchase
			}
		}
		order := domain.Order{
			UserID: user.ID,             // Buyer
			Status: domain.OrderPending, // Orders start pending
			Total:  req.Total,           // Total as submitted
			Items:  items,               // Line snapshots
			Shipping: domain.Shipping{
				FullName:   req.FullName,        // Recipient name
				Address:    req.Address,         // Street address
				City:       req.City,            // City
				PostalCode: req.PostalCode,      // Postal code
				Phone:      req.Phone,           // Contact phone
				Status:     domain.OrderPending, // Mirrors the order status
			},
		}
		// One insert creates the order with its shipping and items
		if err := db.Create(&order).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,     // Buyer
				"error":   err.Error(), // Error message
			}).Error("Order creation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}
		// Decrement stock per line. Relative updates keep concurrent checkouts
		// from losing each other's decrements, but nothing guards against
		// stock going negative.
		for _, line := range req.CartItems {
			if err := db.Model(&domain.Product{}).Where("id = ?", line.ID).
				Update("stock", gorm.Expr("stock - ?", line.Quantity)).Error; err != nil {
				logrus.WithFields(logrus.Fields{
					"order_id":   order.ID,    // Already-created order
					"product_id": line.ID,     // Product that failed
					"error":      err.Error(), // Error message
				}).Error("Stock decrement failed")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
				return
			}
		}
		// Clear the user's cart items
		var cart domain.Cart
		if err := db.Where("user_id = ?", user.ID).First(&cart).Error; err == nil {
			if err := db.Where("cart_id = ?", cart.ID).Delete(&domain.CartItem{}).Error; err != nil {
				logrus.WithFields(logrus.Fields{
					"order_id": order.ID,    // Already-created order
					"error":    err.Error(), // Error message
				}).Error("Cart clear failed")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
				return
			}
		}
		// Log the placement
		logrus.WithFields(logrus.Fields{
			"order_id":  order.ID,                        // New order ID
			"user_id":   user.ID,                         // Buyer
			"total":     order.Total,                     // Order total
			"items":     len(order.Items),                // Line count
			"timestamp": time.Now().Format(time.RFC3339), // Current timestamp
		}).Info("Order placed")
		// Stock and revenue changed: drop the cached product listings and dashboard
		ctx := context.Background()
		_ = utils.DeleteCachePrefix(ctx, rdb, "products:")
		_ = utils.DeleteCache(ctx, rdb, "admin:dashboard")
		c.JSON(http.StatusOK, order) // The created order
	}
}

// ListOrdersHandler returns the authenticated user's orders, newest first,
// with item and shipping details. An optional limit caps the result.
func ListOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		query := db.Preload("Items.Product").Preload("Shipping").
			Where("user_id = ?", userID).Order("created_at desc") // Newest first
		// Optional limit from the query string
		if l := c.Query("limit"); l != "" {
			if v, err := strconv.Atoi(l); err == nil && v > 0 {
				query = query.Limit(v) // Cap the result
			}
		}
		var orders []domain.Order // The user's orders
		if err := query.Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		// Always return an array, never null
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, orders) // Order history
	}
}

// UpdateOrderStatusRequest sets a new status for an order
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"` // Target status
}

// validOrderStatus reports whether s is one of the order status values
func validOrderStatus(s string) bool {
	switch s {
	case domain.OrderPending, domain.OrderCompleted, domain.OrderDelivered, domain.OrderCancelled:
		return true // Known status
	}
	return false // Anything else is rejected
}

// UpdateOrderStatusHandler lets an admin move an order through its statuses.
// DELIVERED is mirrored onto the shipping record.
func UpdateOrderStatusHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.Atoi(c.Param("id")) // Order ID from the path
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}
		var req UpdateOrderStatusRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil || !validOrderStatus(req.Status) {
			// Unknown statuses are rejected
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		var order domain.Order // The order to update
		if err := db.First(&order, orderID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		// Apply the status change
		if err := db.Model(&order).Update("status", req.Status).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"order_id": order.ID,    // Order being updated
				"status":   req.Status,  // Target status
				"error":    err.Error(), // Error message
			}).Error("Order status update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			return
		}
		// A delivered order means the shipment arrived
		if req.Status == domain.OrderDelivered {
			_ = db.Model(&domain.Shipping{}).Where("order_id = ?", order.ID).
				Update("status", domain.OrderDelivered).Error
		}
		// Log the status change
		logrus.WithFields(logrus.Fields{
			"order_id": order.ID,   // Order ID
			"status":   req.Status, // New status
		}).Info("Order status updated")
		// Revenue may have changed: drop the cached dashboard
		_ = utils.DeleteCache(context.Background(), rdb, "admin:dashboard")
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order status updated"})
	}
}
