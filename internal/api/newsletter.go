package api

import (
	"net/http"              // HTTP status codes
	"strings"               // Email normalization
	"eshop/internal/domain" // Importing domain models
	"eshop/internal/mailer" // Outbound email

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// SubscribeRequest adds an email to the newsletter
type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email"` // Valid email must be provided
}

// SendNewsletterRequest is the admin broadcast payload
type SendNewsletterRequest struct {
	Subject string `json:"subject" binding:"required"` // Subject line must be provided
	Content string `json:"content" binding:"required"` // Body must be provided
}

// SubscribeNewsletterHandler records a newsletter subscription
func SubscribeNewsletterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SubscribeRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email is required"})
			return
		}
		subscriber := domain.NewsletterSubscriber{Email: strings.ToLower(strings.TrimSpace(req.Email))}
		// The unique index rejects duplicate subscriptions
		if err := db.Create(&subscriber).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to subscribe"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "subscriber": subscriber}) // The new subscriber
	}
}

// SendNewsletterHandler emails every subscriber. Admin only. Individual
// delivery failures are logged and skipped so one bad address cannot abort
// the whole broadcast.
func SendNewsletterHandler(db *gorm.DB, mail mailer.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SendNewsletterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Subject and content are required"})
			return
		}
		var subscribers []domain.NewsletterSubscriber // Every subscriber
		if err := db.Find(&subscribers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send newsletter"})
			return
		}
		sent := 0 // Successful deliveries
		for _, sub := range subscribers {
			// Best-effort per recipient
			if err := mail.Send(sub.Email, req.Subject, req.Content); err != nil {
				logrus.WithFields(logrus.Fields{
					"email": sub.Email,   // Failed recipient
					"error": err.Error(), // Error message
				}).Error("Newsletter delivery failed")
				continue // Keep going for the rest
			}
			sent++
		}
		// Log the broadcast summary
		logrus.WithFields(logrus.Fields{
			"subject":     req.Subject,      // Subject line
			"subscribers": len(subscribers), // Total recipients
			"sent":        sent,             // Successful deliveries
		}).Info("Newsletter sent")
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Newsletter sent successfully"})
	}
}
