package domain

import "time"

// Product Model
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`       // Primary key
	Name        string    `gorm:"not null" json:"name"`       // Product name
	Description string    `json:"description"`                // Product description
	Price       float64   `gorm:"not null" json:"price"`      // Unit price
	Stock       int       `gorm:"not null" json:"stock"`      // Units on hand, decremented by order placement
	Image       string    `json:"image"`                      // Image path under the uploads dir
	CategoryID  *uint     `json:"categoryId"`                 // Optional foreign key to Category
	Category    *Category `json:"category,omitempty"`         // Category relation
	CreatedAt   time.Time `json:"createdAt"`                  // Timestamp of creation
	UpdatedAt   time.Time `json:"updatedAt"`                  // Timestamp of last admin edit
}

// Category Model
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`         // Primary key
	Name string `gorm:"unique;not null" json:"name"`  // Unique category name
}

// Review Model
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`  // Primary key
	ProductID uint      `gorm:"not null" json:"productId"` // Foreign key to Product
	UserID    uint      `gorm:"not null" json:"userId"`    // Foreign key to the reviewer
	Rating    int       `gorm:"not null" json:"rating"`    // Star rating
	Comment   string    `gorm:"not null" json:"comment"`   // Review text
	CreatedAt time.Time `json:"createdAt"`                 // Timestamp of submission
	User      User      `json:"user"`                      // Reviewer relation, used for the display name
}
