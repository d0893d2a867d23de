package api

import (
	"net/http"              // HTTP status codes
	"strings"               // String manipulation
	"eshop/internal/domain" // Importing domain models
	"eshop/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// RegisterRequest is the payload for account creation
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`           // Display name must be provided
	Email    string `json:"email" binding:"required,email"`    // Valid email must be provided
	Password string `json:"password" binding:"required,min=8"` // Password of at least 8 characters
}

// LoginRequest is the payload for authentication
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// AuthResponse carries the session token
type AuthResponse struct {
	Token string `json:"token"` // JWT token
}

// RegisterHandler creates a new unverified customer account
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}
		email := strings.ToLower(strings.TrimSpace(req.Email)) // Normalize the email
		// Reject duplicate accounts up front for a friendlier message
		var existing domain.User
		if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists with this email"})
			return
		}
		// Hash the password and create the user
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		// New accounts start unverified; OTP verification flips the flag
		user := domain.User{Name: req.Name, Email: email, Password: string(hash), Role: domain.RoleCustomer}
		if err := db.Create(&user).Error; err != nil {
			// Unique index on email still catches races
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists with this email"})
			return
		}
		// Log the registration
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID, // New user ID
			"email":   email,   // Normalized email
		}).Info("User registered")
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "Registration successful. Please verify your email from your dashboard."})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
			// If user not found, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, AuthResponse{Token: token})
	}
}

// UpdateProfileHandler updates the authenticated user's name, email and avatar.
// The avatar arrives as an optional multipart file.
func UpdateProfileHandler(db *gorm.DB, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		name := c.PostForm("name")   // Display name from the form
		email := c.PostForm("email") // Email from the form
		// Both text fields are required
		if name == "" || email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name and email are required"})
			return
		}
		// Store the avatar if one was uploaded
		imagePath, err := utils.SaveUpload(c, "image", uploadDir)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // User being updated
				"error":   err.Error(), // Error message
			}).Error("Failed to store avatar")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
		updates := map[string]any{
			"name":  name,                                          // New display name
			"email": strings.ToLower(strings.TrimSpace(email)),     // Normalized email
		}
		// Only overwrite the avatar when a new file arrived
		if imagePath != "" {
			updates["image"] = imagePath
		}
		// Apply the update
		if err := db.Model(&domain.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
		var user domain.User // Return the refreshed record
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, user) // Updated profile
	}
}

// UserMetricsHandler returns the authenticated user's dashboard numbers
func UserMetricsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var totalOrders int64 // Count of the user's orders
		if err := db.Model(&domain.Order{}).Where("user_id = ?", userID).Count(&totalOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch metrics"})
			return
		}
		var totalSpent float64 // Sum over completed orders only
		if err := db.Model(&domain.Order{}).
			Where("user_id = ? AND status = ?", userID, domain.OrderCompleted).
			Select("COALESCE(SUM(total), 0)").Scan(&totalSpent).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch metrics"})
			return
		}
		var wishlistCount int64 // Count of wishlisted products
		if err := db.Model(&domain.WishlistItem{}).Where("user_id = ?", userID).Count(&wishlistCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch metrics"})
			return
		}
		// Return the metrics
		c.JSON(http.StatusOK, gin.H{
			"totalOrders":   totalOrders,   // Orders ever placed
			"totalSpent":    totalSpent,    // Revenue from this user
			"wishlistCount": wishlistCount, // Wishlist size
		})
	}
}
