package api

import (
	"net/http"              // HTTP status codes
	"eshop/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// CreateCategoryRequest names a new category
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"` // Category name must be provided
}

// ListCategoriesHandler returns every category
func ListCategoriesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []domain.Category // All categories
		if err := db.Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories", "categories": []domain.Category{}})
			return
		}
		// Never serialize a nil slice
		if categories == nil {
			categories = []domain.Category{}
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories}) // The category list
	}
}

// CreateCategoryHandler adds a category. Admin only.
func CreateCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCategoryRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "\"name\" is required"})
			return
		}
		category := domain.Category{Name: req.Name} // The new category
		if err := db.Create(&category).Error; err != nil {
			// The unique index rejects duplicate names
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category already exists"})
			return
		}
		c.JSON(http.StatusOK, category) // The created category
	}
}
