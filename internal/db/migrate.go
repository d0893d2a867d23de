package db

import (
	"eshop/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Migrate performs automatic migration for the database schema
func Migrate(dsn string) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{}) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	err = db.AutoMigrate(
		&domain.User{},                 // Accounts
		&domain.Category{},             // Catalog categories
		&domain.Product{},              // Catalog items
		&domain.Review{},               // Product reviews
		&domain.Cart{},                 // One cart per user
		&domain.CartItem{},             // Cart line items
		&domain.Order{},                // Placed orders
		&domain.OrderItem{},            // Order line snapshots
		&domain.Shipping{},             // Shipping sub-records
		&domain.WishlistItem{},         // Wishlist pairs
		&domain.OtpRecord{},            // Pending verification codes
		&domain.NewsletterSubscriber{}, // Newsletter emails
	)
	if err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}
