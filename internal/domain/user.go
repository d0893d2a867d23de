package domain

import "time"

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`          // Primary key
	Name      string    `gorm:"not null" json:"name"`          // Display name
	Email     string    `gorm:"unique;not null" json:"email"`  // Unique email, stored lowercase
	Password  string    `gorm:"not null" json:"-"`             // Hashed password, never serialized
	Role      string    `gorm:"default:CUSTOMER" json:"role"`  // Role: CUSTOMER or ADMIN
	Verified  bool      `gorm:"default:false" json:"verified"` // Set only by a successful OTP check
	Image     string    `json:"image"`                         // Avatar path under the uploads dir
	CreatedAt time.Time `json:"createdAt"`                     // Timestamp of registration
	UpdatedAt time.Time `json:"updatedAt"`                     // Timestamp of last profile change
}

// Roles assignable to a User
const (
	RoleCustomer = "CUSTOMER" // Default role at registration
	RoleAdmin    = "ADMIN"    // Grants access to the admin routes
)
