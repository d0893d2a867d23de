package utils

import (
	"crypto/rand"   // Cryptographically secure randomness
	"crypto/sha256" // Hashing for stored codes
	"encoding/hex"  // Hex encoding of the digest
	"math/big"      // Big integers for rand.Int
)

// GenerateOTP returns a random 6-digit numeric code
func GenerateOTP() (string, error) {
	// Random integer in [0, 900000), shifted into [100000, 999999]
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err // Return error if the randomness source fails
	}
	return big.NewInt(0).Add(n, big.NewInt(100000)).String(), nil // Shift into the 6-digit range
}

// HashOTP hashes a code with SHA-256 before storing it
func HashOTP(otp string) string {
	sum := sha256.Sum256([]byte(otp))  // Hash the plain code
	return hex.EncodeToString(sum[:]) // Hex encode the digest
}

// VerifyOTP checks an input code against the stored hash
func VerifyOTP(input, hashed string) bool {
	return HashOTP(input) == hashed // Compare hash of the input with the stored hash
}
