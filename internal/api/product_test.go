package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eshop/internal/domain"
	"eshop/internal/middleware"
)

func TestListProducts_PaginationAndSearch(t *testing.T) {
	db := newTestDB(t)
	rdb := newTestRedis(t)
	for i := 1; i <= 15; i++ {
		seedProduct(t, db, fmt.Sprintf("Gadget %02d", i), float64(i), 5)
	}
	seedProduct(t, db, "Keyboard", 49.99, 5)

	r, _ := newRouter()
	r.GET("/products", ListProductsHandler(db, rdb))

	// Default page size is 12, so 16 products make two pages
	w := doJSON(r, http.MethodGet, "/products", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.EqualValues(t, 16, body["total"])
	assert.EqualValues(t, 2, body["total_pages"])
	assert.Len(t, body["products"], 12)

	// Search narrows by name substring
	w = doJSON(r, http.MethodGet, "/products?search=Keyboard", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.EqualValues(t, 1, body["total"])
}

func TestListProducts_ServedFromCache(t *testing.T) {
	db := newTestDB(t)
	rdb := newTestRedis(t)
	seedProduct(t, db, "Keyboard", 49.99, 5)

	r, _ := newRouter()
	r.GET("/products", ListProductsHandler(db, rdb))

	// First hit misses the cache, second is served from it
	w := doJSON(r, http.MethodGet, "/products", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["cached"])

	w = doJSON(r, http.MethodGet, "/products", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["cached"])
}

func TestListProducts_CategoryFilter(t *testing.T) {
	db := newTestDB(t)
	rdb := newTestRedis(t)
	cat := domain.Category{Name: "Audio"}
	require.NoError(t, db.Create(&cat).Error)
	p := domain.Product{Name: "Headphones", Price: 89.99, Stock: 3, CategoryID: &cat.ID}
	require.NoError(t, db.Create(&p).Error)
	seedProduct(t, db, "Keyboard", 49.99, 5) // uncategorized

	r, _ := newRouter()
	r.GET("/products", ListProductsHandler(db, rdb))

	w := doJSON(r, http.MethodGet, "/products?category=Audio", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decodeBody(t, w)["total"])
}

func TestGetProduct_NotFound(t *testing.T) {
	db := newTestDB(t)
	r, _ := newRouter()
	r.GET("/products/:id", GetProductHandler(db))

	w := doJSON(r, http.MethodGet, "/products/42", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProduct_AdminGate(t *testing.T) {
	db := newTestDB(t)
	rdb := newTestRedis(t)
	customer := newTestUser(t, db, "buyer@example.com", domain.RoleCustomer)
	admin := newTestUser(t, db, "admin@example.com", domain.RoleAdmin)
	product := seedProduct(t, db, "Keyboard", 49.99, 5)

	r, _ := newRouter()
	adminGroup := r.Group("")
	adminGroup.Use(middleware.JWTAuthMiddleware(testJWTSecret), middleware.AdminOnlyMiddleware(db))
	adminGroup.DELETE("/products/:id", DeleteProductHandler(db, rdb))

	// A customer is rejected before the handler runs
	w := doJSON(r, http.MethodDelete, "/products/1", authHeader(t, customer.ID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// An admin deletes the product
	w = doJSON(r, http.MethodDelete, "/products/1", authHeader(t, admin.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var count int64
	require.NoError(t, db.Model(&domain.Product{}).Where("id = ?", product.ID).Count(&count).Error)
	assert.Zero(t, count)
}
