package main

import (
	"context"                    // context package is needed for Redis operations
	"log"                        // log package is needed for logging
	"eshop/internal/api"         // Custom package for API handlers
	"eshop/internal/config"      // Custom package for configuration
	"eshop/internal/mailer"      // Outbound email
	"eshop/internal/middleware"  // Custom package for middleware
	"eshop/internal/mpesa"       // Payment provider client

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	mpesaClient := mpesa.NewClient(cfg)                                                  // Payment provider client
	mail := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass) // Outbound email

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Uploaded images are served statically
	r.Static("/uploads", cfg.UploadDir)

	// Public routes
	r.POST("/auth/register", api.RegisterHandler(db))               // Registration endpoint
	r.POST("/auth/login", api.LoginHandler(db, cfg.JWTSecret))      // Login endpoint
	r.POST("/auth/send-otp", api.SendOtpHandler(db, mail))          // OTP issuance endpoint
	r.POST("/auth/verify-otp", api.VerifyOtpHandler(db))            // OTP verification endpoint
	r.GET("/products", api.ListProductsHandler(db, redisClient))    // Product listing endpoint
	r.GET("/products/:id", api.GetProductHandler(db))               // Product detail endpoint
	r.GET("/categories", api.ListCategoriesHandler(db))             // Category listing endpoint
	r.GET("/reviews", api.ListReviewsHandler(db))                   // Review listing endpoint
	r.POST("/newsletter", api.SubscribeNewsletterHandler(db))       // Newsletter subscription endpoint

	// Payment provider webhooks must stay reachable without a session
	r.POST("/mpesa/callback", api.MpesaCallbackHandler())            // STK push result endpoint
	r.POST("/payment/validation", api.PaymentValidationHandler())    // C2B validation endpoint
	r.POST("/payment/confirmation", api.PaymentConfirmationHandler()) // C2B confirmation endpoint

	// Authenticated routes (protected by JWT)
	userGroup := r.Group("")
	userGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret)) // Protect with JWT middleware
	userGroup.GET("/cart", api.GetCartHandler(db))                           // Cart contents endpoint
	userGroup.POST("/cart/increment", api.IncrementCartHandler(db))          // Cart increment endpoint
	userGroup.POST("/cart/decrement", api.DecrementCartHandler(db))          // Cart decrement endpoint
	userGroup.POST("/cart/delete", api.RemoveCartItemHandler(db))            // Cart item removal endpoint
	userGroup.PUT("/cart/:productId", api.UpdateCartItemHandler(db))         // Cart quantity update endpoint
	userGroup.DELETE("/cart/:productId", api.DeleteCartItemHandler(db))      // Cart item removal endpoint
	userGroup.POST("/orders", api.PlaceOrderHandler(db, redisClient))        // Order placement endpoint
	userGroup.GET("/orders", api.ListOrdersHandler(db))                      // Order history endpoint
	userGroup.GET("/wishlist", api.ListWishlistHandler(db))                  // Wishlist endpoint
	userGroup.POST("/wishlist", api.AddWishlistHandler(db))                  // Wishlist add endpoint
	userGroup.DELETE("/wishlist/:productId", api.RemoveWishlistHandler(db))  // Wishlist removal endpoint
	userGroup.POST("/reviews", api.CreateReviewHandler(db))                  // Review submission endpoint
	userGroup.PUT("/user/profile", api.UpdateProfileHandler(db, cfg.UploadDir)) // Profile update endpoint
	userGroup.GET("/user/metrics", api.UserMetricsHandler(db))               // User metrics endpoint
	userGroup.POST("/mpesa/stkpush", api.StkPushHandler(mpesaClient))        // Payment prompt endpoint

	// Admin routes (protected, admin only)
	adminGroup := r.Group("")
	// Protect admin routes with JWT and AdminOnly middleware
	adminGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware(db))
	adminGroup.POST("/products", api.CreateProductHandler(db, redisClient, cfg.UploadDir))   // Product creation endpoint
	adminGroup.PUT("/products/:id", api.UpdateProductHandler(db, redisClient, cfg.UploadDir)) // Product edit endpoint
	adminGroup.DELETE("/products/:id", api.DeleteProductHandler(db, redisClient))            // Product removal endpoint
	adminGroup.POST("/categories", api.CreateCategoryHandler(db))                            // Category creation endpoint
	adminGroup.GET("/admin/dashboard", api.DashboardHandler(db, redisClient))                // Dashboard metrics endpoint
	adminGroup.GET("/admin/users", api.ListUsersHandler(db, redisClient))                    // User listing endpoint
	adminGroup.PATCH("/admin/orders/:id", api.UpdateOrderStatusHandler(db, redisClient))     // Order status endpoint
	adminGroup.POST("/admin/send-newsletter", api.SendNewsletterHandler(db, mail))           // Newsletter broadcast endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
