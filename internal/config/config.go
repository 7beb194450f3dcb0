package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Page store backends.
const (
	StoreGorm = "gorm"
	StoreSQLX = "sqlx"
)

// DefaultImageURL is shown on listings for pages without a featured image.
const DefaultImageURL = "https://images.unsplash.com/photo-1551288049-bebda4e38f71?ixlib=rb-4.0.3&auto=format&fit=crop&w=2070&q=80"

// CategoryRule maps a category name to the title keywords that select it.
type CategoryRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// AppConfig holds everything the server and pagectl need at start-up.
type AppConfig struct {
	ListenAddr      string         `yaml:"listen_addr"`
	Port            string         `yaml:"port"`
	DatabasePath    string         `yaml:"database_path"`
	SessionSecret   string         `yaml:"session_secret"`
	GinMode         string         `yaml:"gin_mode"`
	UploadDir       string         `yaml:"upload_dir"`
	UploadURLPath   string         `yaml:"upload_url_path"`
	MaxUploadBytes  int64          `yaml:"max_upload_bytes"`
	SiteBaseURL     string         `yaml:"site_base_url"`
	SiteName        string         `yaml:"site_name"`
	AdminEmail      string         `yaml:"admin_email"`
	AdminPassword   string         `yaml:"admin_password"`
	LogLevel        string         `yaml:"log_level"`
	LogFormat       string         `yaml:"log_format"`
	PageStore       string         `yaml:"page_store"`
	DefaultImageURL string         `yaml:"default_image_url"`
	SanitizeContent bool           `yaml:"sanitize_content"`
	Categories      []CategoryRule `yaml:"categories"`
}

// Default returns the configuration used when nothing is set.
func Default() AppConfig {
	return AppConfig{
		Port:            "8080",
		DatabasePath:    "portfolio.db",
		SessionSecret:   "portfolio-dev-secret",
		GinMode:         "release",
		UploadDir:       "web/static/uploads",
		UploadURLPath:   "/static/uploads",
		MaxUploadBytes:  10 << 20,
		SiteBaseURL:     "http://localhost:8080",
		SiteName:        "Portfolio",
		LogLevel:        "info",
		LogFormat:       "console",
		PageStore:       StoreGorm,
		DefaultImageURL: DefaultImageURL,
	}
}

// Load reads the configuration. A YAML file named by CONFIG_FILE is applied
// first and environment variables override it.
func Load() (AppConfig, error) {
	cfg := Default()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return cfg, err
		}
	}

	applyEnv(&cfg)

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = fmt.Sprintf(":%s", cfg.Port)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports settings that cannot work together.
func (c AppConfig) Validate() error {
	switch c.PageStore {
	case StoreGorm, StoreSQLX:
	default:
		return fmt.Errorf("unsupported PAGE_STORE %q", c.PageStore)
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("MAX_UPLOAD_BYTES must be positive")
	}
	for _, rule := range c.Categories {
		if strings.TrimSpace(rule.Name) == "" || len(rule.Keywords) == 0 {
			return fmt.Errorf("category rule %q needs a name and keywords", rule.Name)
		}
	}
	return nil
}

func applyFile(cfg *AppConfig, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *AppConfig) {
	setString(&cfg.Port, "PORT")
	setString(&cfg.ListenAddr, "LISTEN_ADDR")
	setString(&cfg.DatabasePath, "DATABASE_PATH")
	setString(&cfg.SessionSecret, "SESSION_SECRET")
	setString(&cfg.GinMode, "GIN_MODE")
	setString(&cfg.UploadDir, "UPLOAD_DIR")
	setString(&cfg.UploadURLPath, "UPLOAD_URL_PATH")
	setString(&cfg.SiteBaseURL, "SITE_BASE_URL")
	setString(&cfg.SiteName, "SITE_NAME")
	setString(&cfg.AdminEmail, "ADMIN_EMAIL")
	setString(&cfg.AdminPassword, "ADMIN_PASSWORD")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.LogFormat, "LOG_FORMAT")
	setString(&cfg.DefaultImageURL, "DEFAULT_IMAGE_URL")

	if store := strings.ToLower(strings.TrimSpace(os.Getenv("PAGE_STORE"))); store != "" {
		cfg.PageStore = store
	}

	if raw := strings.TrimSpace(os.Getenv("MAX_UPLOAD_BYTES")); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			cfg.MaxUploadBytes = n
		}
	}

	if raw := strings.TrimSpace(os.Getenv("SANITIZE_CONTENT")); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			cfg.SanitizeContent = v
		}
	}
}

func setString(dst *string, key string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*dst = value
	}
}
