package api

import (
	"fmt"                   // Message formatting
	"net/http"              // HTTP status codes
	"strings"               // Email normalization
	"time"                  // Expiry timestamps
	"eshop/internal/domain" // Importing domain models
	"eshop/internal/mailer" // Outbound email
	"eshop/internal/utils"  // OTP helpers

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/clause"        // Upsert support
)

// OtpTTL is how long an issued code stays valid
const OtpTTL = 10 * time.Minute

// SendOtpRequest asks for a verification code
type SendOtpRequest struct {
	Email string `json:"email" binding:"required"` // Email must be provided
}

// VerifyOtpRequest submits a code for verification
type VerifyOtpRequest struct {
	Email string `json:"email" binding:"required"` // Email must be provided
	Otp   string `json:"otp" binding:"required"`   // Code must be provided
}

// SendOtpHandler issues a 6-digit code, stores its hash with a 10-minute expiry
// and emails the plain code to the user. A prior pending code is replaced.
func SendOtpHandler(db *gorm.DB, mail mailer.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SendOtpRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
			return
		}
		email := strings.ToLower(strings.TrimSpace(req.Email)) // Normalize the email
		var user domain.User                                   // Look the account up
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			// If user not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		// Nothing to do for an already verified account
		if user.Verified {
			c.JSON(http.StatusOK, gin.H{"message": "Your account is already verified."})
			return
		}
		otp, err := utils.GenerateOTP() // Fresh 6-digit code
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate OTP"})
			return
		}
		record := domain.OtpRecord{
			Email:     email,               // One pending code per email
			Code:      utils.HashOTP(otp),  // Only the hash is stored
			ExpiresAt: time.Now().Add(OtpTTL), // 10-minute window
		}
		// Upsert: replace any prior pending code for this email
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},                    // Conflict on the unique email
			DoUpdates: clause.AssignmentColumns([]string{"code", "expires_at"}), // Overwrite code and expiry
		}).Create(&record).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"email": email,       // Target email
				"error": err.Error(), // Error message
			}).Error("Failed to store OTP")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP"})
			return
		}
		// Email the plain code
		body := fmt.Sprintf("Hello %s,\n\nHere is your OTP for account verification: %s\n\nThis OTP will expire in 10 minutes.", user.Name, otp)
		if err := mail.Send(email, "Your OTP for Account Verification", body); err != nil {
			logrus.WithFields(logrus.Fields{
				"email": email,       // Target email
				"error": err.Error(), // Error message
			}).Error("Failed to send OTP email")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP"})
			return
		}
		// Log the issuance without the code itself
		logrus.WithFields(logrus.Fields{
			"email": email, // Target email
		}).Info("OTP sent")
		c.JSON(http.StatusOK, gin.H{"message": "OTP sent to your email. Please check your inbox."})
	}
}

// VerifyOtpHandler checks a submitted code against the stored hash within the
// expiry window. On success the user is marked verified and the record is
// deleted, so a code can be used exactly once.
func VerifyOtpHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyOtpRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing OTP or email"})
			return
		}
		email := strings.ToLower(strings.TrimSpace(req.Email)) // Normalize the email
		var record domain.OtpRecord                            // Pending code for this email
		if err := db.Where("email = ?", email).First(&record).Error; err != nil {
			// No pending code, or it was already consumed
			c.JSON(http.StatusBadRequest, gin.H{"error": "No OTP found for this email"})
			return
		}
		// Reject stale codes
		if time.Now().After(record.ExpiresAt) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "OTP has expired"})
			return
		}
		// Compare the hash of the submitted code with the stored hash
		if !utils.VerifyOTP(req.Otp, record.Code) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OTP"})
			return
		}
		// Mark the account verified
		if err := db.Model(&domain.User{}).Where("email = ?", email).Update("verified", true).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"email": email,       // Target email
				"error": err.Error(), // Error message
			}).Error("Failed to mark user verified")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify OTP"})
			return
		}
		// Consume the code: a second attempt must fail
		if err := db.Delete(&record).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"email": email,       // Target email
				"error": err.Error(), // Error message
			}).Error("Failed to consume OTP record")
		}
		// Log the successful verification
		logrus.WithFields(logrus.Fields{
			"email": email, // Verified email
		}).Info("OTP verified")
		c.JSON(http.StatusOK, gin.H{"message": "OTP verified successfully!"})
	}
}
