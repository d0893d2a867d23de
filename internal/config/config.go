package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort    string // Application port
	DBUser     string // Database user
	DBPassword string // Database password
	DBHost     string // Database host
	DBPort     string // Database port
	DBName     string // Database name
	JWTSecret  string // JWT secret key
	RedisAddr  string // Redis server address
	RedisPass  string // Redis password
	RedisDB    int    // Redis database number
	IsProd     bool   // Is production environment

	// M-Pesa (Daraja) credentials
	MpesaConsumerKey    string // OAuth consumer key
	MpesaConsumerSecret string // OAuth consumer secret
	MpesaShortCode      string // Business short code
	MpesaPassKey        string // STK push pass key
	MpesaCallbackURL    string // Public URL the provider posts results to
	MpesaBaseURL        string // API base URL, sandbox by default

	// Outbound email (SMTP)
	SMTPHost string // SMTP server host
	SMTPPort string // SMTP server port
	SMTPUser string // SMTP username, also the From address
	SMTPPass string // SMTP password

	UploadDir string // Directory for uploaded images
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:    os.Getenv("APP_PORT"),          // Application port
		DBUser:     os.Getenv("DB_USER"),           // Database user
		DBPassword: os.Getenv("DB_PASSWORD"),       // Database password
		DBHost:     os.Getenv("DB_HOST"),           // Database host
		DBPort:     os.Getenv("DB_PORT"),           // Database port
		DBName:     os.Getenv("DB_NAME"),           // Database name
		JWTSecret:  os.Getenv("JWT_SECRET"),        // JWT secret key
		RedisAddr:  os.Getenv("REDIS_ADDR"),        // Redis server address
		RedisPass:  os.Getenv("REDIS_PASS"),        // Redis password
		RedisDB:    redisDB,                        // Redis database number
		IsProd:     os.Getenv("IS_PROD") == "true", // Is production environment

		MpesaConsumerKey:    os.Getenv("MPESA_CONSUMER_KEY"),    // OAuth consumer key
		MpesaConsumerSecret: os.Getenv("MPESA_CONSUMER_SECRET"), // OAuth consumer secret
		MpesaShortCode:      os.Getenv("MPESA_SHORTCODE"),       // Business short code
		MpesaPassKey:        os.Getenv("MPESA_PASSKEY"),         // STK push pass key
		MpesaCallbackURL:    os.Getenv("MPESA_CALLBACK_URL"),    // Callback URL
		MpesaBaseURL:        getEnv("MPESA_BASE_URL", "https://sandbox.safaricom.co.ke"), // API base URL

		SMTPHost: os.Getenv("SMTP_HOST"), // SMTP server host
		SMTPPort: os.Getenv("SMTP_PORT"), // SMTP server port
		SMTPUser: os.Getenv("SMTP_USER"), // SMTP username
		SMTPPass: os.Getenv("SMTP_PASS"), // SMTP password

		UploadDir: getEnv("UPLOAD_DIR", "uploads"), // Directory for uploaded images
	}
}

// getEnv returns the value of the variable or a default when unset
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v // Value from the environment
	}
	return def // Fallback default
}
