package config

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config holds the project config values
type Config struct {
	URL          string
	DatabaseName string
	BaseURL      string
	Port         string
	Env          string

	// Store selects the registry backend: "mongo" or "memory"
	Store string

	InstitutionDomain string
	AdminEmail        string
	IdentitySecret    string

	SendGridAPIKey  string
	DigestFromEmail string

	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadPreset string

	RequestTimeout time.Duration
}

// New sets up all config related services
func New() *Config {
	envErr := godotenv.Load()

	env := getEnv("ENV", "local")
	logger, err := setLogger(env)
	if err != nil {
		logger = zap.NewExample()
	}
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	if envErr != nil {
		zap.S().Debugw("no .env file loaded", "error", envErr)
	}

	timeout, err := time.ParseDuration(getEnv("REQUEST_TIMEOUT", "30s"))
	if err != nil {
		zap.S().Warnw("invalid REQUEST_TIMEOUT, using default", "error", err)
		timeout = 30 * time.Second
	}

	return &Config{
		URL:                    os.Getenv("DB_URI"),
		DatabaseName:           os.Getenv("DB_NAME"),
		BaseURL:                os.Getenv("BASE_URL"),
		Port:                   getEnv("PORT", "8080"),
		Env:                    env,
		Store:                  strings.ToLower(getEnv("STORE", "mongo")),
		InstitutionDomain:      strings.ToLower(getEnv("INSTITUTION_DOMAIN", "sastra.ac.in")),
		AdminEmail:             strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))),
		IdentitySecret:         os.Getenv("IDENTITY_SECRET"),
		SendGridAPIKey:         os.Getenv("SENDGRID_API_KEY"),
		DigestFromEmail:        getEnv("DIGEST_FROM_EMAIL", "no-reply@lostfound.campus"),
		CloudinaryCloudName:    os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:       os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret:    os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryUploadPreset: os.Getenv("CLOUDINARY_UPLOAD_PRESET"),
		RequestTimeout:         timeout,
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	w.Write([]byte(fmt.Sprintf(`{"response": "%s, %v"}`, message, err)))
}
