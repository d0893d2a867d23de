package api

import (
	"context"               // Context for Redis operations
	"net/http"              // HTTP status codes
	"strconv"               // Parameter conversion
	"eshop/internal/domain" // Importing domain models
	"eshop/internal/utils"  // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// dashboardCacheKey holds the cached admin dashboard payload
const dashboardCacheKey = "admin:dashboard"

// lowStockThreshold flags products that need restocking on the dashboard
const lowStockThreshold = 10

// LowStockProduct is the trimmed product view the dashboard shows
type LowStockProduct struct {
	ID    uint   `json:"id"`    // Product ID
	Name  string `json:"name"`  // Product name
	Stock int    `json:"stock"` // Units left
}

// RecentOrder is the trimmed order view the dashboard shows
type RecentOrder struct {
	ID        uint    `json:"id"`        // Order ID
	Status    string  `json:"status"`    // Current status
	Total     float64 `json:"total"`     // Order total
	UserName  string  `json:"userName"`  // Customer name
	CreatedAt string  `json:"createdAt"` // Placement time, RFC 3339
}

// DashboardResponse is the admin dashboard payload
type DashboardResponse struct {
	TotalRevenue     float64           `json:"totalRevenue"`     // Sum over completed orders
	TotalOrders      int64             `json:"totalOrders"`      // Orders ever placed
	TotalProducts    int64             `json:"totalProducts"`    // Catalog size
	LowStockProducts []LowStockProduct `json:"lowStockProducts"` // Products at or below the threshold
	RecentOrders     []RecentOrder     `json:"recentOrders"`     // Five newest orders
	UserCount        int64             `json:"userCount"`        // Registered accounts
}

// DashboardHandler returns the admin dashboard metrics, cached for a minute
// and invalidated by order placement and status changes.
func DashboardHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		var cached DashboardResponse
		// Try to get from cache
		found, err := utils.GetCache(ctx, rdb, dashboardCacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, cached) // Served from cache
			return
		}
		var resp DashboardResponse // Assemble the metrics
		// Revenue counts completed orders only
		if err := db.Model(&domain.Order{}).Where("status = ?", domain.OrderCompleted).
			Select("COALESCE(SUM(total), 0)").Scan(&resp.TotalRevenue).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard"})
			return
		}
		// Order, product and user counts
		if err := db.Model(&domain.Order{}).Count(&resp.TotalOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard"})
			return
		}
		if err := db.Model(&domain.Product{}).Count(&resp.TotalProducts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard"})
			return
		}
		if err := db.Model(&domain.User{}).Count(&resp.UserCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard"})
			return
		}
		// Products at or below the restock threshold
		var lowStock []domain.Product
		if err := db.Where("stock <= ?", lowStockThreshold).Find(&lowStock).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard"})
			return
		}
		resp.LowStockProducts = make([]LowStockProduct, len(lowStock))
		for i, p := range lowStock {
			resp.LowStockProducts[i] = LowStockProduct{ID: p.ID, Name: p.Name, Stock: p.Stock} // Trimmed view
		}
		// The five newest orders with the customer's name
		var recent []domain.Order
		if err := db.Preload("User").Order("created_at desc").Limit(5).Find(&recent).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard"})
			return
		}
		resp.RecentOrders = make([]RecentOrder, len(recent))
		for i, o := range recent {
			resp.RecentOrders[i] = RecentOrder{
				ID:        o.ID,                               // Order ID
				Status:    o.Status,                           // Current status
				Total:     o.Total,                            // Order total
				UserName:  o.User.Name,                        // Customer name
				CreatedAt: o.CreatedAt.Format("2006-01-02T15:04:05Z07:00"), // Placement time
			}
		}
		// Cache the assembled payload
		_ = utils.SetCache(ctx, rdb, dashboardCacheKey, resp, utils.CacheTTL)
		c.JSON(http.StatusOK, resp) // The dashboard metrics
	}
}

// UserAdminResponse represents the user data returned to admin
type UserAdminResponse struct {
	ID       uint   `json:"id"`       // User ID
	Name     string `json:"name"`     // Display name
	Email    string `json:"email"`    // Email
	Role     string `json:"role"`     // User role
	Verified bool   `json:"verified"` // Email verification state
}

// ListUsersHandler returns all users, paginated. Admin only.
func ListUsersHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Use background context for Redis
		// Create a cache key based on pagination parameters
		cacheKey := "admin:users:page=" + c.DefaultQuery("page", "1") + ":size=" + c.DefaultQuery("page_size", "20")
		var cached struct {
			Users      []UserAdminResponse `json:"users"`       // List of users
			Page       int                 `json:"page"`        // Current page
			PageSize   int                 `json:"page_size"`   // Page size
			Total      int64               `json:"total"`       // Total number of users
			TotalPages int                 `json:"total_pages"` // Total pages
		}
		// If cached data found, return it
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"users":       cached.Users,      // List of users
				"page":        cached.Page,       // Current page
				"page_size":   cached.PageSize,   // Page size
				"total":       cached.Total,      // Total number of users
				"total_pages": cached.TotalPages, // Total pages
				"cached":      true,              // Indicate response is from cache
			})
			return
		}
		page := 1      // Default page number
		pageSize := 20 // Default page size
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v // Set page if valid
			}
		}
		// Check and set page size within limits
		if ps := c.Query("page_size"); ps != "" {
			// If valid, set page size
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v // Set page size
			}
		}
		offset := (page - 1) * pageSize // Calculate offset for pagination
		var total int64                 // Total user count
		if err := db.Model(&domain.User{}).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"}) // Return on error
			return
		}
		var users []domain.User // Slice to hold users
		if err := db.Offset(offset).Limit(pageSize).Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"}) // Return on error
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize // Calculate total pages
		// Map users to response format
		resp := make([]UserAdminResponse, len(users))
		for i, u := range users {
			resp[i] = UserAdminResponse{
				ID:       u.ID,       // User ID
				Name:     u.Name,     // Display name
				Email:    u.Email,    // Email
				Role:     u.Role,     // User role
				Verified: u.Verified, // Verification state
			}
		}
		// Prepare final response data
		respData := gin.H{
			"users":       resp,       // List of users
			"page":        page,       // Current page
			"page_size":   pageSize,   // Page size
			"total":       total,      // Total number of users
			"total_pages": totalPages, // Total pages
			"cached":      false,      // Indicate response is not from cache
		}
		// Cache the response for future requests
		_ = utils.SetCache(ctx, rdb, cacheKey, respData, utils.CacheTTL)
		c.JSON(http.StatusOK, respData) // Return the response
	}
}
