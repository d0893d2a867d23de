package domain

import "time"

// Order statuses, set ad hoc by admin action after placement
const (
	OrderPending   = "PENDING"   // Initial status at placement
	OrderCompleted = "COMPLETED" // Paid, counts towards revenue
	OrderDelivered = "DELIVERED" // Shipped and received
	OrderCancelled = "CANCELLED" // Abandoned or refunded
)

// Order Model, immutable after placement except for Status
type Order struct {
	ID        uint        `gorm:"primaryKey" json:"id"`        // Primary key
	UserID    uint        `gorm:"not null" json:"userId"`      // Foreign key to the buyer
	Status    string      `gorm:"default:PENDING" json:"status"` // One of the order statuses above
	Total     float64     `gorm:"not null" json:"total"`       // Total as submitted at checkout
	Items     []OrderItem `json:"items"`                       // Line item snapshots
	Shipping  Shipping    `json:"shipping"`                    // Shipping sub-record
	CreatedAt time.Time   `json:"createdAt"`                   // Timestamp of placement
	User      User        `json:"-"`                           // Buyer relation, loaded for the admin views
}

// OrderItem Model, a snapshot of a cart line at purchase time
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`    // Primary key
	OrderID   uint    `gorm:"not null" json:"orderId"` // Foreign key to Order
	ProductID uint    `gorm:"not null" json:"productId"` // Foreign key to Product
	Quantity  int     `gorm:"not null" json:"quantity"`  // Quantity purchased
	Price     float64 `gorm:"not null" json:"price"`     // Unit price at purchase
	Product   Product `json:"product"`                   // Product relation
}

// Shipping Model, owned by Order
type Shipping struct {
	ID         uint   `gorm:"primaryKey" json:"id"`      // Primary key
	OrderID    uint   `gorm:"uniqueIndex" json:"orderId"` // Foreign key to Order, one per order
	FullName   string `gorm:"not null" json:"fullName"`   // Recipient name
	Address    string `gorm:"not null" json:"address"`    // Street address
	City       string `gorm:"not null" json:"city"`       // City
	PostalCode string `json:"postalCode"`                 // Postal code
	Phone      string `json:"phone"`                      // Contact phone
	Status     string `gorm:"default:PENDING" json:"status"` // Mirrors the order status for fulfilment
}
