package api

import (
	"context"               // Context for Redis operations
	"net/http"              // HTTP status codes
	"strconv"               // Parameter conversion
	"eshop/internal/domain" // Importing domain models
	"eshop/internal/utils"  // Cache and upload helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// productCachePrefix keys the cached product listings; writes drop the whole family
const productCachePrefix = "products:"

// ListProductsHandler returns a paginated product listing with optional
// category and name-search filters, cached per page/filter combination.
func ListProductsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := 1      // Default page
		pageSize := 12 // Default page size, one storefront grid
		// If page exists in query
		if p := c.Query("page"); p != "" {
			// Convert page to integer
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v // Set page if valid
			}
		}
		// If page_size exists in query
		if ps := c.Query("page_size"); ps != "" {
			// Convert page_size to integer
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v // Set page size if valid
			}
		}
		category := c.Query("category") // Optional category filter
		search := c.Query("search")     // Optional name search
		// Cache key covers every parameter that shapes the result
		cacheKey := productCachePrefix + "page=" + strconv.Itoa(page) +
			":size=" + strconv.Itoa(pageSize) + ":category=" + category + ":search=" + search
		ctx := context.Background() // Context for Redis operations
		var cached struct {
			Products   []domain.Product `json:"products"`    // Listing page
			Page       int              `json:"page"`        // Current page
			PageSize   int              `json:"page_size"`   // Page size
			Total      int64            `json:"total"`       // Total products matching
			TotalPages int              `json:"total_pages"` // Total pages
		}
		// Try to get from cache
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"products":    cached.Products,   // Cached listing
				"page":        cached.Page,       // Current page
				"page_size":   cached.PageSize,   // Page size
				"total":       cached.Total,      // Total products
				"total_pages": cached.TotalPages, // Total pages
				"cached":      true,              // Served from cache
			})
			return
		}
		query := db.Model(&domain.Product{}) // Start building the query
		if category != "" {
			// Filter by category name through the relation
			query = query.Joins("JOIN categories ON categories.id = products.category_id").
				Where("categories.name = ?", category)
		}
		if search != "" {
			query = query.Where("products.name LIKE ?", "%"+search+"%") // Name substring match
		}
		var total int64 // Total count for pagination
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		var products []domain.Product // The listing page
		offset := (page - 1) * pageSize
		if err := query.Preload("Category").Offset(offset).Limit(pageSize).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		// Never serialize a nil slice
		if products == nil {
			products = []domain.Product{}
		}
		totalPages := (int(total) + pageSize - 1) / pageSize // Calculate total pages
		resp := gin.H{
			"products":    products,   // The listing page
			"page":        page,       // Current page
			"page_size":   pageSize,   // Page size
			"total":       total,      // Total products
			"total_pages": totalPages, // Total pages
			"cached":      false,      // Fresh from the database
		}
		// Cache the page for future requests
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, utils.CacheTTL)
		c.JSON(http.StatusOK, resp) // Return the listing
	}
}

// GetProductHandler returns one product by ID
func GetProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id")) // Product ID from the path
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		var product domain.Product // The requested product
		if err := db.Preload("Category").First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusOK, product) // The product
	}
}

// parseProductForm reads the shared multipart fields of the create/update endpoints
func parseProductForm(c *gin.Context) (name string, price float64, stock int, description string, ok bool) {
	name = c.PostForm("name")               // Product name
	description = c.PostForm("description") // Product description
	var err error
	price, err = strconv.ParseFloat(c.PostForm("price"), 64) // Unit price
	if err != nil || name == "" {
		return "", 0, 0, "", false // Name and a numeric price are required
	}
	stock, err = strconv.Atoi(c.PostForm("stock")) // Units on hand
	if err != nil {
		return "", 0, 0, "", false // Stock must be numeric
	}
	return name, price, stock, description, true // Parsed form
}

// CreateProductHandler adds a catalog item. Admin only; the image arrives as
// an optional multipart file stored under the uploads directory.
func CreateProductHandler(db *gorm.DB, rdb *redis.Client, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		name, price, stock, description, ok := parseProductForm(c) // Shared form fields
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product data"})
			return
		}
		// Store the image if one was uploaded
		imagePath, err := utils.SaveUpload(c, "image", uploadDir)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"name":  name,        // Product being created
				"error": err.Error(), // Error message
			}).Error("Failed to store product image")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		product := domain.Product{
			Name:        name,        // Product name
			Price:       price,       // Unit price
			Stock:       stock,       // Units on hand
			Description: description, // Product description
			Image:       imagePath,   // Stored image path, possibly empty
		}
		// Optional category assignment
		if cid := c.PostForm("categoryId"); cid != "" {
			if v, err := strconv.Atoi(cid); err == nil {
				id := uint(v)
				product.CategoryID = &id // Attach the category
			}
		}
		// Persist the product
		if err := db.Create(&product).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"name":  name,        // Product being created
				"error": err.Error(), // Error message
			}).Error("Failed to create product")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		// The catalog changed: drop the cached listings
		_ = utils.DeleteCachePrefix(context.Background(), rdb, productCachePrefix)
		c.JSON(http.StatusOK, product) // The created product
	}
}

// UpdateProductHandler edits a catalog item. Admin only; a missing image field
// leaves the stored image untouched.
func UpdateProductHandler(db *gorm.DB, rdb *redis.Client, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id")) // Product ID from the path
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		var product domain.Product // The product to edit
		if err := db.First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		name, price, stock, description, ok := parseProductForm(c) // Shared form fields
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product data"})
			return
		}
		// Store a replacement image if one was uploaded
		imagePath, err := utils.SaveUpload(c, "image", uploadDir)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		updates := map[string]any{
			"name":        name,        // New name
			"price":       price,       // New price
			"stock":       stock,       // New stock count
			"description": description, // New description
		}
		// Only overwrite the image when a new file arrived
		if imagePath != "" {
			updates["image"] = imagePath
		}
		// Apply the update
		if err := db.Model(&product).Updates(updates).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"product_id": product.ID,  // Product being edited
				"error":      err.Error(), // Error message
			}).Error("Failed to update product")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		// The catalog changed: drop the cached listings
		_ = utils.DeleteCachePrefix(context.Background(), rdb, productCachePrefix)
		c.JSON(http.StatusOK, product) // The updated product
	}
}

// DeleteProductHandler removes a catalog item. Admin only.
func DeleteProductHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id")) // Product ID from the path
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		var product domain.Product // The product to delete
		if err := db.First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		// Remove the record
		if err := db.Delete(&product).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"product_id": product.ID,  // Product being deleted
				"error":      err.Error(), // Error message
			}).Error("Failed to delete product")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		// The catalog changed: drop the cached listings
		_ = utils.DeleteCachePrefix(context.Background(), rdb, productCachePrefix)
		c.JSON(http.StatusOK, product) // The deleted product, as the original API did
	}
}
