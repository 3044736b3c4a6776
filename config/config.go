package config

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/landauthority/dispute-api/models"
)

// Config holds the project config values
type Config struct {
	URL          string
	DatabaseName string
	BaseURL      string
	FrontendURL  string
	Port         string
	Environment  string

	JWTSecret      string
	SessionTTL     time.Duration
	RequestTimeout time.Duration

	SendGridAPIKey string
	EmailFrom      string
	EmailFromName  string

	SMSGatewayURL   string
	SMSGatewayToken string
	SMSSenderID     string

	StorageDriver     string
	CloudinaryURL     string
	CloudinaryFolder  string
	BlobBucketURL     string
	BlobPublicBaseURL string

	DistrictThresholdDays int
	NLAThresholdDays      int

	NotifyWorkers   int
	NotifyQueueSize int

	CommitteeRoles   []string
	OverdueSweepCron string
}

// New sets up all config related services
func New() *Config {
	// a missing .env is fine, the platform injects real env vars
	_ = godotenv.Load()

	env := getEnv("ENVIRONMENT", "production")

	//setup zap logger and replace default logger
	logger, err := setLogger(env)
	if err != nil {
		logger = zap.NewExample()
	}
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		URL:          os.Getenv("DB_URI"),
		DatabaseName: os.Getenv("DB_NAME"),
		BaseURL:      os.Getenv("BASE_URL"),
		FrontendURL:  getEnv("FRONTEND_URL", "https://disputes.nla.gov.rw"),
		Port:         getEnv("PORT", "8080"),
		Environment:  env,

		JWTSecret:      os.Getenv("JWT_SECRET"),
		SessionTTL:     time.Duration(getEnvInt("SESSION_TTL_HOURS", 12)) * time.Hour,
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 60)) * time.Second,

		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		EmailFrom:      getEnv("EMAIL_FROM", "no-reply@nla.gov.rw"),
		EmailFromName:  getEnv("EMAIL_FROM_NAME", "Land Dispute Management"),

		SMSGatewayURL:   os.Getenv("SMS_GATEWAY_URL"),
		SMSGatewayToken: os.Getenv("SMS_GATEWAY_TOKEN"),
		SMSSenderID:     getEnv("SMS_SENDER_ID", "NLA"),

		StorageDriver:     getEnv("STORAGE_DRIVER", "cloudinary"),
		CloudinaryURL:     os.Getenv("CLOUDINARY_URL"),
		CloudinaryFolder:  getEnv("CLOUDINARY_FOLDER", "land-disputes"),
		BlobBucketURL:     os.Getenv("BLOB_BUCKET_URL"),
		BlobPublicBaseURL: os.Getenv("BLOB_PUBLIC_BASE_URL"),

		DistrictThresholdDays: getEnvInt("DISTRICT_THRESHOLD_DAYS", 30),
		NLAThresholdDays:      getEnvInt("NLA_THRESHOLD_DAYS", 45),

		NotifyWorkers:   getEnvInt("NOTIFY_WORKERS", 8),
		NotifyQueueSize: getEnvInt("NOTIFY_QUEUE_SIZE", 256),

		CommitteeRoles:   getEnvList("COMMITTEE_ROLES", []string{"manager", "admin"}),
		OverdueSweepCron: getEnv("OVERDUE_SWEEP_CRON", "0 6 * * *"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getEnvList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	ErrorKindStatus(message, "", httpStatusCode, w, err)
}

// ErrorKindStatus is ErrorStatus with a stable error kind the client can switch on
func ErrorKindStatus(message, kind string, httpStatusCode int, w http.ResponseWriter, err error) {
	errText := ""
	if err != nil {
		errText = err.Error()
	}
	zap.S().Errorw(message, "error", errText, "kind", kind, "status", httpStatusCode)

	body := models.ErrorMessageResponse{Response: models.MessageError{
		Message: message,
		Error:   errText,
		Kind:    kind,
	}}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	_ = json.NewEncoder(w).Encode(body)
}
