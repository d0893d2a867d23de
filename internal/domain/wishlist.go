package domain

// WishlistItem Model, unique per user-product pair
type WishlistItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`                                     // Primary key
	UserID    uint    `gorm:"not null;uniqueIndex:idx_user_product" json:"userId"`      // Foreign key to User
	ProductID uint    `gorm:"not null;uniqueIndex:idx_user_product" json:"productId"`   // Foreign key to Product
	Product   Product `json:"product"`                                                  // Product relation
}
