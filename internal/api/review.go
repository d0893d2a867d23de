package api

import (
	"net/http"              // HTTP status codes
	"eshop/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// CreateReviewRequest submits a product review
type CreateReviewRequest struct {
	ProductID uint   `json:"productId" binding:"required"`         // Product being reviewed
	Rating    int    `json:"rating" binding:"required,gte=1,lte=5"` // Star rating 1-5
	Comment   string `json:"comment" binding:"required"`           // Review text
}

// ListReviewsHandler returns all reviews, latest first, with the reviewer's name
func ListReviewsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var reviews []domain.Review // All reviews
		if err := db.Preload("User").Order("created_at desc").Find(&reviews).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
			return
		}
		// Never serialize a nil slice
		if reviews == nil {
			reviews = []domain.Review{}
		}
		c.JSON(http.StatusOK, gin.H{"reviews": reviews}) // The review list
	}
}

// CreateReviewHandler stores a review from the authenticated user
func CreateReviewHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req CreateReviewRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}
		// The reviewed product must exist
		var product domain.Product
		if err := db.First(&product, req.ProductID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		review := domain.Review{
			ProductID: req.ProductID,  // Product reference
			UserID:    userID.(uint),  // Reviewer
			Rating:    req.Rating,     // Star rating
			Comment:   req.Comment,    // Review text
		}
		// Persist the review
		if err := db.Create(&review).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit review"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"review": review}) // The created review
	}
}
