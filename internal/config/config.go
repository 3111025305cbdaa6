package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config holds the whole application configuration.
// Populated from environment variables (.env is loaded by main).
type Config struct {
	App      AppConfig
	Redis    RedisConfig
	JWT      JWTConfig
	SMTP     SMTPConfig
	MinIO    MinIOConfig
	Kafka    KafkaConfig
	Checkout CheckoutConfig
	Promo    PromoConfig
	Order    OrderConfig
	Contact  ContactConfig
	Jobs     JobConfig
	CORS     CORSConfig
	Admin    AdminBootstrapConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	AutoMigrate bool
	// file:// URL of the SQL migrations directory
	MigrationsURL string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret             string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
	// Storefront base URL used for links inside emails
	SiteURL string
}

type MinIOConfig struct {
	Endpoint  string // localhost:9000
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// Public base URL for object links, defaults to http(s)://endpoint/bucket
	PublicURL string
}

// =====================================================
// KAFKA (order events outbox)
// =====================================================

type KafkaConfig struct {
	Brokers      []string
	Topic        string
	PollInterval time.Duration
	BatchSize    int
}

// Enabled reports whether the outbox publisher should run
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// =====================================================
// BUSINESS RULES
// =====================================================

type CheckoutConfig struct {
	TaxRate     decimal.Decimal // 0.14
	ShippingFee decimal.Decimal // 50 EGP flat
}

type PromoConfig struct {
	EnforceMaxUses  bool
	OfflineFallback bool
	CacheTTL        time.Duration
}

type OrderConfig struct {
	StrictTransitions bool
	// Back-office inbox notified about new orders, optional
	NotifyEmail string
}

type ContactConfig struct {
	RateLimit  int
	RateWindow time.Duration
	// Inbox that receives a copy of every contact message, optional
	NotifyEmail string
}

type JobConfig struct {
	PromoExpirySpec string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type AdminBootstrapConfig struct {
	SuperAdminEmail    string
	SuperAdminPassword string
	SuperAdminName     string
}

// Load reads config from environment variables
func Load() (*Config, error) {
	taxRate, err := getEnvDecimal("CHECKOUT_TAX_RATE", "0.14")
	if err != nil {
		return nil, err
	}
	shippingFee, err := getEnvDecimal("CHECKOUT_SHIPPING_FEE", "50")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:          getEnv("APP_NAME", "AluPro API"),
			Environment:   getEnv("APP_ENV", "development"),
			Port:          getEnv("APP_PORT", "8080"),
			Version:       getEnv("APP_VERSION", "1.0.0"),
			AutoMigrate:   getEnvBool("DB_AUTO_MIGRATE", false),
			MigrationsURL: getEnv("DB_MIGRATIONS_URL", "file://migrations"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:             getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTokenExpiry:  getEnvDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshTokenExpiry: getEnvDuration("JWT_REFRESH_EXPIRY", 72*time.Hour),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "localhost"),
			Port:     getEnv("SMTP_PORT", "1025"),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "info@alupro.com"),
			FromName: getEnv("SMTP_FROM_NAME", "ألوميتال برو"),
			SiteURL:  getEnv("SITE_URL", "http://localhost:3000"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "alupro"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			PublicURL: getEnv("MINIO_PUBLIC_URL", ""),
		},
		Kafka: KafkaConfig{
			Brokers:      getEnvList("KAFKA_BROKERS"),
			Topic:        getEnv("KAFKA_ORDER_TOPIC", "order-events"),
			PollInterval: getEnvDuration("KAFKA_OUTBOX_POLL_INTERVAL", time.Second),
			BatchSize:    getEnvInt("KAFKA_OUTBOX_BATCH_SIZE", 100),
		},
		Checkout: CheckoutConfig{
			TaxRate:     taxRate,
			ShippingFee: shippingFee,
		},
		Promo: PromoConfig{
			EnforceMaxUses:  getEnvBool("PROMO_ENFORCE_MAX_USES", false),
			OfflineFallback: getEnvBool("PROMO_OFFLINE_FALLBACK", false),
			CacheTTL:        getEnvDuration("PROMO_CACHE_TTL", 5*time.Minute),
		},
		Order: OrderConfig{
			StrictTransitions: getEnvBool("ORDER_STRICT_TRANSITIONS", false),
			NotifyEmail:       getEnv("ORDER_NOTIFY_EMAIL", ""),
		},
		Contact: ContactConfig{
			RateLimit:   getEnvInt("CONTACT_RATE_LIMIT", 5),
			RateWindow:  getEnvDuration("CONTACT_RATE_WINDOW", time.Hour),
			NotifyEmail: getEnv("CONTACT_NOTIFY_EMAIL", ""),
		},
		Jobs: JobConfig{
			PromoExpirySpec: getEnv("JOB_PROMO_EXPIRY_SPEC", "0 * * * *"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS"),
		},
		Admin: AdminBootstrapConfig{
			SuperAdminEmail:    getEnv("SUPER_ADMIN_EMAIL", ""),
			SuperAdminPassword: getEnv("SUPER_ADMIN_PASSWORD", ""),
			SuperAdminName:     getEnv("SUPER_ADMIN_NAME", "Super Admin"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the invariants the services rely on
func (c *Config) Validate() error {
	if c.IsProduction() && c.JWT.Secret == defaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}

	if c.Checkout.TaxRate.IsNegative() || c.Checkout.TaxRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("CHECKOUT_TAX_RATE must be in [0, 1), got %s", c.Checkout.TaxRate)
	}
	if c.Checkout.ShippingFee.IsNegative() {
		return fmt.Errorf("CHECKOUT_SHIPPING_FEE must be >= 0, got %s", c.Checkout.ShippingFee)
	}

	if _, err := cron.ParseStandard(c.Jobs.PromoExpirySpec); err != nil {
		return fmt.Errorf("invalid JOB_PROMO_EXPIRY_SPEC %q: %w", c.Jobs.PromoExpirySpec, err)
	}

	if c.Contact.RateLimit < 0 {
		return fmt.Errorf("CONTACT_RATE_LIMIT must be >= 0 (0 disables the limit)")
	}

	if (c.Admin.SuperAdminEmail == "") != (c.Admin.SuperAdminPassword == "") {
		return fmt.Errorf("SUPER_ADMIN_EMAIL and SUPER_ADMIN_PASSWORD must be set together")
	}

	return nil
}

// IsProduction gates the production-only checks in Validate
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// =====================================================
// ENV HELPERS
// =====================================================

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvDecimal fails loudly: a silently defaulted tax rate is a pricing bug
func getEnvDecimal(key, defaultValue string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(getEnv(key, defaultValue))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

// getEnvList splits a comma separated variable, dropping blanks
func getEnvList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
