package config

import (
	"strconv"
)

// Config holds the process configuration, loaded from the environment.
type Config struct {
	ListenAddr string
	UploadDir  string
	// MaxBodyBytes caps incoming request bodies, multipart uploads included.
	MaxBodyBytes int64
	Email        EmailConfig
}

// EmailConfig carries SMTP credentials and the fixed operations recipient.
type EmailConfig struct {
	SMTPHost  string
	SMTPPort  int
	SMTPUser  string
	SMTPPass  string
	FromEmail string
	OpsEmail  string
}

// Load reads configuration from environment variables with defaults.
// InitDB must have run first so .env values are already in the environment.
func Load() *Config {
	return &Config{
		ListenAddr:   getEnv("LISTEN_ADDR", "0.0.0.0:8080"),
		UploadDir:    getEnv("UPLOAD_DIR", "./uploads"),
		MaxBodyBytes: getEnvInt64("MAX_BODY_BYTES", 10<<20),
		Email: EmailConfig{
			SMTPHost:  getEnv("SMTP_HOST", ""),
			SMTPPort:  int(getEnvInt64("SMTP_PORT", 587)),
			SMTPUser:  getEnv("SMTP_USER", ""),
			SMTPPass:  getEnv("SMTP_PASS", ""),
			FromEmail: getEnv("SMTP_FROM", "TakaTrack <noreply@takatrack.local>"),
			OpsEmail:  getEnv("OPS_EMAIL", ""),
		},
	}
}

// Configured reports whether SMTP transport can actually be used.
func (e *EmailConfig) Configured() bool {
	return e.SMTPHost != "" && e.FromEmail != ""
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if v := getEnv(key, ""); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}
