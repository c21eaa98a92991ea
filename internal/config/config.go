package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logger  LoggerConfig  `mapstructure:"logger"`
	Invoice InvoiceConfig `mapstructure:"invoice"`
	Session SessionConfig `mapstructure:"session"`
	Share   ShareConfig   `mapstructure:"share"`
	Capture CaptureConfig `mapstructure:"capture"`
	CORS    CORSConfig    `mapstructure:"cors"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// InvoiceConfig holds invoicing defaults and the issuer identity printed on every document
type InvoiceConfig struct {
	TaxRate         float64 `mapstructure:"tax_rate"`
	Currency        string  `mapstructure:"currency"`
	DefaultTemplate string  `mapstructure:"default_template"`
	CompanyName     string  `mapstructure:"company_name"`
	Tagline         string  `mapstructure:"tagline"`
	SupportEmail    string  `mapstructure:"support_email"`
	Phone           string  `mapstructure:"phone"`
	Address         string  `mapstructure:"address"`
	SenderName      string  `mapstructure:"sender_name"`
}

// SessionConfig holds draft session settings
type SessionConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// ShareConfig holds share link settings
type ShareConfig struct {
	WhatsAppBaseURL string `mapstructure:"whatsapp_base_url"`
}

// CaptureConfig holds image capture settings
type CaptureConfig struct {
	Enabled  bool `mapstructure:"enabled"`
	Padding  int  `mapstructure:"padding"`
	MaxLines int  `mapstructure:"max_lines"`
}

// CORSConfig holds cross-origin settings
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// TaxRateDecimal returns the configured tax rate as a decimal
func (c InvoiceConfig) TaxRateDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.TaxRate)
}

// Address returns host:port
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load loads configuration from file and environment variables.
// A missing config file is not an error; defaults and environment apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.format", "json")

	// Invoice defaults
	v.SetDefault("invoice.tax_rate", 0.20)
	v.SetDefault("invoice.currency", "GNF")
	v.SetDefault("invoice.default_template", "classic")
	v.SetDefault("invoice.company_name", "FACTURly")
	v.SetDefault("invoice.tagline", "Votre partenaire facturation")
	v.SetDefault("invoice.support_email", "support@facturly.com")
	v.SetDefault("invoice.phone", "+224 621 20 61 86")
	v.SetDefault("invoice.address", "123 Rue de la Facturation, R.G, conakry")
	v.SetDefault("invoice.sender_name", "Facturly")

	// Session defaults
	v.SetDefault("session.ttl", 2*time.Hour)
	v.SetDefault("session.cleanup_interval", 10*time.Minute)

	// Share defaults
	v.SetDefault("share.whatsapp_base_url", "https://wa.me/")

	// Capture defaults
	v.SetDefault("capture.enabled", true)
	v.SetDefault("capture.padding", 24)
	v.SetDefault("capture.max_lines", 2000)

	// CORS defaults
	v.SetDefault("cors.allowed_origins", []string{"*"})
}

// bindEnvVars binds environment variables to configuration
func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("server.port", "PORT")
	_ = v.BindEnv("logger.level", "LOG_LEVEL")
	_ = v.BindEnv("invoice.tax_rate", "INVOICE_TAX_RATE")
	_ = v.BindEnv("invoice.currency", "INVOICE_CURRENCY")
	_ = v.BindEnv("invoice.default_template", "INVOICE_DEFAULT_TEMPLATE")
	_ = v.BindEnv("invoice.company_name", "COMPANY_NAME")
	_ = v.BindEnv("invoice.support_email", "SUPPORT_EMAIL")
	_ = v.BindEnv("share.whatsapp_base_url", "WHATSAPP_BASE_URL")
}

// Validate validates the configuration.
// knownTemplates is the set of template ids the default must belong to; nil skips that check.
func (c *Config) Validate(knownTemplates ...string) error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Invoice.TaxRate < 0 || c.Invoice.TaxRate >= 1 {
		return fmt.Errorf("invoice.tax_rate must be in [0, 1), got %v", c.Invoice.TaxRate)
	}
	if c.Invoice.Currency == "" {
		return fmt.Errorf("invoice.currency is required")
	}
	if c.Invoice.DefaultTemplate == "" {
		return fmt.Errorf("invoice.default_template is required")
	}
	if len(knownTemplates) > 0 {
		if !lo.Contains(knownTemplates, c.Invoice.DefaultTemplate) {
			return fmt.Errorf("invoice.default_template %q is not a known template", c.Invoice.DefaultTemplate)
		}
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive")
	}
	if c.Share.WhatsAppBaseURL == "" {
		return fmt.Errorf("share.whatsapp_base_url is required")
	}

	return nil
}
