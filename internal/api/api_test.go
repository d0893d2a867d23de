package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"eshop/internal/domain"
	"eshop/internal/middleware"
	"eshop/internal/utils"
)

// testJWTSecret signs the session tokens used in tests
const testJWTSecret = "test-secret"

// newTestDB opens an in-memory database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Category{},
		&domain.Product{},
		&domain.Review{},
		&domain.Cart{},
		&domain.CartItem{},
		&domain.Order{},
		&domain.OrderItem{},
		&domain.Shipping{},
		&domain.WishlistItem{},
		&domain.OtpRecord{},
		&domain.NewsletterSubscriber{},
	))
	return db
}

// newTestRedis starts a miniredis and returns a client bound to it
func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

// newTestUser inserts a user and returns it
func newTestUser(t *testing.T, db *gorm.DB, email, role string) domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := domain.User{Name: "Test User", Email: email, Password: string(hash), Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// authHeader builds a Bearer header for the given user
func authHeader(t *testing.T, userID uint) string {
	t.Helper()
	token, err := utils.GenerateJWT(userID, testJWTSecret)
	require.NoError(t, err)
	return "Bearer " + token
}

// newRouter returns a gin engine in test mode with the JWT middleware mounted
// on an authenticated group, mirroring the server wiring.
func newRouter() (*gin.Engine, *gin.RouterGroup) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	authed := r.Group("")
	authed.Use(middleware.JWTAuthMiddleware(testJWTSecret))
	return r, authed
}

// doJSON performs a request with a JSON body and returns the recorder
func doJSON(r *gin.Engine, method, path, auth string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a recorder body into a map for spot checks
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// fakeMailer records outbound messages instead of delivering them
type fakeMailer struct {
	sent []fakeMail
	err  error
}

// fakeMail is one recorded message
type fakeMail struct {
	to      string
	subject string
	body    string
}

func (f *fakeMailer) Send(to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, fakeMail{to: to, subject: subject, body: body})
	return nil
}

// seedProduct inserts a product with the given stock
func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) domain.Product {
	t.Helper()
	p := domain.Product{Name: name, Price: price, Stock: stock}
	require.NoError(t, db.Create(&p).Error)
	return p
}
