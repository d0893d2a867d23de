package domain

import "time"

// NewsletterSubscriber Model
type NewsletterSubscriber struct {
	ID        uint      `gorm:"primaryKey" json:"id"`         // Primary key
	Email     string    `gorm:"unique;not null" json:"email"` // Subscriber email
	CreatedAt time.Time `json:"createdAt"`                    // Timestamp of subscription
}
