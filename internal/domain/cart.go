package domain

// Cart Model, one per user, created lazily on the first add
type Cart struct {
	ID     uint       `gorm:"primaryKey" json:"id"`    // Primary key
	UserID uint       `gorm:"uniqueIndex" json:"userId"` // Foreign key to User, one cart each
	Items  []CartItem `json:"items"`                   // Line items in the cart
}

// CartItem Model
type CartItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`                             // Primary key
	CartID    uint    `gorm:"not null;uniqueIndex:idx_cart_product" json:"cartId"` // Foreign key to Cart
	ProductID uint    `gorm:"not null;uniqueIndex:idx_cart_product" json:"productId"` // Foreign key to Product, unique per cart
	Quantity  int     `gorm:"not null;default:1" json:"quantity"`               // Quantity, always >= 1
	Product   Product `json:"product"`                                          // Product relation
}
