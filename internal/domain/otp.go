package domain

import "time"

// OtpRecord Model, one pending code per email, consumed on successful verification
type OtpRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`        // Primary key
	Email     string    `gorm:"unique;not null" json:"email"` // Email the code was sent to
	Code      string    `gorm:"not null" json:"-"`            // SHA-256 hex of the 6-digit code
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`    // Codes are valid for 10 minutes
}
