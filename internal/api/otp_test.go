package api

import (
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eshop/internal/domain"
	"eshop/internal/utils"
)

// otpFromMail digs the 6-digit code out of the delivered message body
func otpFromMail(t *testing.T, body string) string {
	t.Helper()
	m := regexp.MustCompile(`\b(\d{6})\b`).FindStringSubmatch(body)
	require.NotNil(t, m, "no OTP in mail body: %s", body)
	return m[1]
}

func TestSendOtp_StoresHashAndMails(t *testing.T) {
	db := newTestDB(t)
	newTestUser(t, db, "new@example.com", domain.RoleCustomer)
	mail := &fakeMailer{}

	r, _ := newRouter()
	r.POST("/auth/send-otp", SendOtpHandler(db, mail))

	w := doJSON(r, http.MethodPost, "/auth/send-otp", "", map[string]any{"email": "new@example.com"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, mail.sent, 1)
	assert.Equal(t, "new@example.com", mail.sent[0].to)

	// The stored code is the hash of the mailed one, with a future expiry
	var record domain.OtpRecord
	require.NoError(t, db.Where("email = ?", "new@example.com").First(&record).Error)
	otp := otpFromMail(t, mail.sent[0].body)
	assert.Equal(t, utils.HashOTP(otp), record.Code)
	assert.True(t, record.ExpiresAt.After(time.Now()))
}

func TestSendOtp_ReplacesPriorCode(t *testing.T) {
	db := newTestDB(t)
	newTestUser(t, db, "new@example.com", domain.RoleCustomer)
	mail := &fakeMailer{}

	r, _ := newRouter()
	r.POST("/auth/send-otp", SendOtpHandler(db, mail))

	// Two requests leave exactly one pending record, for the second code
	for i := 0; i < 2; i++ {
		w := doJSON(r, http.MethodPost, "/auth/send-otp", "", map[string]any{"email": "new@example.com"})
		require.Equal(t, http.StatusOK, w.Code)
	}
	var count int64
	require.NoError(t, db.Model(&domain.OtpRecord{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var record domain.OtpRecord
	require.NoError(t, db.Where("email = ?", "new@example.com").First(&record).Error)
	assert.Equal(t, utils.HashOTP(otpFromMail(t, mail.sent[1].body)), record.Code)
}

func TestSendOtp_AlreadyVerified(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "done@example.com", domain.RoleCustomer)
	require.NoError(t, db.Model(&user).Update("verified", true).Error)
	mail := &fakeMailer{}

	r, _ := newRouter()
	r.POST("/auth/send-otp", SendOtpHandler(db, mail))

	w := doJSON(r, http.MethodPost, "/auth/send-otp", "", map[string]any{"email": "done@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, mail.sent) // nothing sent for a verified account
}

func TestSendOtp_UnknownUser(t *testing.T) {
	db := newTestDB(t)
	r, _ := newRouter()
	r.POST("/auth/send-otp", SendOtpHandler(db, &fakeMailer{}))

	w := doJSON(r, http.MethodPost, "/auth/send-otp", "", map[string]any{"email": "ghost@example.com"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVerifyOtp_ConsumesCode(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "new@example.com", domain.RoleCustomer)
	require.NoError(t, db.Create(&domain.OtpRecord{
		Email:     "new@example.com",
		Code:      utils.HashOTP("123456"),
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}).Error)

	r, _ := newRouter()
	r.POST("/auth/verify-otp", VerifyOtpHandler(db))

	// First attempt verifies the account
	w := doJSON(r, http.MethodPost, "/auth/verify-otp", "", map[string]any{"email": "new@example.com", "otp": "123456"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got domain.User
	require.NoError(t, db.First(&got, user.ID).Error)
	assert.True(t, got.Verified)

	// The record was consumed: the same code no longer works
	w = doJSON(r, http.MethodPost, "/auth/verify-otp", "", map[string]any{"email": "new@example.com", "otp": "123456"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyOtp_Expired(t *testing.T) {
	db := newTestDB(t)
	newTestUser(t, db, "late@example.com", domain.RoleCustomer)
	require.NoError(t, db.Create(&domain.OtpRecord{
		Email:     "late@example.com",
		Code:      utils.HashOTP("123456"),
		ExpiresAt: time.Now().Add(-time.Minute),
	}).Error)

	r, _ := newRouter()
	r.POST("/auth/verify-otp", VerifyOtpHandler(db))

	w := doJSON(r, http.MethodPost, "/auth/verify-otp", "", map[string]any{"email": "late@example.com", "otp": "123456"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestVerifyOtp_WrongCode(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "new@example.com", domain.RoleCustomer)
	require.NoError(t, db.Create(&domain.OtpRecord{
		Email:     "new@example.com",
		Code:      utils.HashOTP("123456"),
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}).Error)

	r, _ := newRouter()
	r.POST("/auth/verify-otp", VerifyOtpHandler(db))

	w := doJSON(r, http.MethodPost, "/auth/verify-otp", "", map[string]any{"email": "new@example.com", "otp": "654321"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// A failed attempt must not verify the user or consume the record
	var got domain.User
	require.NoError(t, db.First(&got, user.ID).Error)
	assert.False(t, got.Verified)
	var count int64
	require.NoError(t, db.Model(&domain.OtpRecord{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
