package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eshop/internal/domain"
)

func TestCreateReview_RequiresExistingProduct(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "buyer@example.com", domain.RoleCustomer)

	r, authed := newRouter()
	authed.POST("/reviews", CreateReviewHandler(db))

	body := map[string]any{"productId": 99, "rating": 5, "comment": "Great"}
	w := doJSON(r, http.MethodPost, "/reviews", authHeader(t, user.ID), body)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateReview_RejectsOutOfRangeRating(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "buyer@example.com", domain.RoleCustomer)
	product := seedProduct(t, db, "Keyboard", 49.99, 5)

	r, authed := newRouter()
	authed.POST("/reviews", CreateReviewHandler(db))

	body := map[string]any{"productId": product.ID, "rating": 6, "comment": "Too good"}
	w := doJSON(r, http.MethodPost, "/reviews", authHeader(t, user.ID), body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReviews_CreateAndListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "buyer@example.com", domain.RoleCustomer)
	product := seedProduct(t, db, "Keyboard", 49.99, 5)

	r, authed := newRouter()
	authed.POST("/reviews", CreateReviewHandler(db))
	r.GET("/reviews", ListReviewsHandler(db))

	for _, comment := range []string{"first", "second"} {
		body := map[string]any{"productId": product.ID, "rating": 4, "comment": comment}
		w := doJSON(r, http.MethodPost, "/reviews", authHeader(t, user.ID), body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := doJSON(r, http.MethodGet, "/reviews", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Reviews []domain.Review `json:"reviews"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out.Reviews, 2)
	assert.Equal(t, "Test User", out.Reviews[0].User.Name) // reviewer name is preloaded
}
