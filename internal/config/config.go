// Package config reads the site configuration from the environment, with an
// optional .env file layered underneath.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultAPIBaseURL points the contact form at the API served by `portfolio serve`
// on the default port.
const DefaultAPIBaseURL = "http://localhost:8080/api/v1"

// Config holds every setting the site and the CLI read at startup.
type Config struct {
	Port       string
	GinMode    string
	APIBaseURL string

	DatabasePath string
	ResumePath   string
	ThemeFile    string

	LogLevel  string
	LogFormat string

	AllowedOrigins []string

	Admin AdminConfig
	Mail  MailConfig
}

// AdminConfig holds the admin login credentials.
type AdminConfig struct {
	Username     string
	Password     string
	PasswordHash string
	// DefaultCredentials is true when neither a password nor a hash was supplied.
	DefaultCredentials bool
}

// MailConfig selects and configures the outgoing mail provider.
type MailConfig struct {
	Provider      string
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPass      string
	ResendAPIKey  string
	From          string
	ReceiverEmail string
}

// Load reads .env files (missing files are ignored) and then the process
// environment. Values already set in the environment win over .env values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:           getenv("PORT", "8080"),
		GinMode:        os.Getenv("GIN_MODE"),
		APIBaseURL:     strings.TrimRight(getenv("API_BASE_URL", DefaultAPIBaseURL), "/"),
		DatabasePath:   getenv("DATABASE_PATH", filepath.Join("data", "portfolio.db")),
		ResumePath:     getenv("RESUME_PATH", filepath.Join("static", "resume.pdf")),
		ThemeFile:      getenv("THEME_FILE", defaultThemeFile()),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		LogFormat:      getenv("LOG_FORMAT", "console"),
		AllowedOrigins: splitList(getenv("ALLOWED_ORIGINS", "http://localhost:5173")),
	}

	cfg.Admin = AdminConfig{
		Username:     getenv("ADMIN_USERNAME", "admin"),
		Password:     os.Getenv("ADMIN_PASSWORD"),
		PasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}
	if cfg.Admin.Password == "" && cfg.Admin.PasswordHash == "" {
		cfg.Admin.Password = "admin123"
		cfg.Admin.DefaultCredentials = true
	}

	port, err := strconv.Atoi(getenv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	cfg.Mail = MailConfig{
		Provider:      strings.ToLower(getenv("MAIL_PROVIDER", "log")),
		SMTPHost:      getenv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      port,
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPass:      os.Getenv("SMTP_PASS"),
		ResendAPIKey:  os.Getenv("RESEND_API_KEY"),
		From:          getenv("MAIL_FROM", "Portfolio <onboarding@resend.dev>"),
		ReceiverEmail: getenv("RECEIVER_EMAIL", "zachkordaspotter@gmail.com"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ContactsEndpoint is the URL the contact form posts to.
func (c *Config) ContactsEndpoint() string {
	return c.APIBaseURL + "/contacts/"
}

func (c *Config) validate() error {
	switch c.Mail.Provider {
	case "log", "smtp", "resend":
	default:
		return fmt.Errorf("unknown MAIL_PROVIDER %q", c.Mail.Provider)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("unknown LOG_FORMAT %q", c.LogFormat)
	}
	if c.Mail.Provider == "resend" && c.Mail.ResendAPIKey == "" {
		return errors.New("RESEND_API_KEY is required when MAIL_PROVIDER=resend")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func defaultThemeFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "portfolio", "preferences.yaml")
}
