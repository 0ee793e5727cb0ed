package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// envString returns the variable's value, or def when it is unset or blank.
func envString(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

// envInt parses an integer variable, returning def when it is unset.
func envInt(name string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", name, err)
	}
	return n, nil
}

// PasswordConfig holds configuration for password hashing and verification.
type PasswordConfig struct {
	BcryptCost int
	Pepper     string // optional global secret appended before hashing
}

// NewPasswordConfig reads BCRYPT_COST (default 12) and PASSWORD_PEPPER.
func NewPasswordConfig() (*PasswordConfig, error) {
	cost, err := envInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, err
	}

	cfg := &PasswordConfig{
		BcryptCost: cost,
		Pepper:     os.Getenv("PASSWORD_PEPPER"),
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *PasswordConfig) normalize() error {
	if c.BcryptCost < 10 || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", c.BcryptCost)
	}
	return nil
}

// HashPassword hashes a password with bcrypt.
func (c *PasswordConfig) HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw+c.Pepper), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether pw matches storedHash.
func (c *PasswordConfig) VerifyPassword(pw, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(pw+c.Pepper)) == nil
}

// JWTConfig holds configuration for session tokens.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// NewJWTConfig reads JWT_SECRET (required) and JWT_EXPIRATION_HOURS (default 24).
func NewJWTConfig() (*JWTConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	hours, err := envInt("JWT_EXPIRATION_HOURS", 24)
	if err != nil {
		return nil, err
	}

	cfg := &JWTConfig{Secret: secret, ExpirationHours: hours}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT_SECRET cannot be empty")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}

// StorageConfig locates the R2 (S3 compatible) bucket holding uploaded resumes.
type StorageConfig struct {
	AccountID string
	Bucket    string
	AccessKey string
	SecretKey string
	Endpoint  string // overrides the account endpoint, e.g. for MinIO
	Region    string
}

// NewStorageConfig reads R2_ACCOUNT_ID, R2_BUCKET, R2_ACCESS_KEY, R2_SECRET_KEY and
// the optional R2_ENDPOINT and R2_REGION.
func NewStorageConfig() (*StorageConfig, error) {
	cfg := &StorageConfig{
		AccountID: envString("R2_ACCOUNT_ID", ""),
		Bucket:    envString("R2_BUCKET", ""),
		AccessKey: envString("R2_ACCESS_KEY", ""),
		SecretKey: envString("R2_SECRET_KEY", ""),
		Endpoint:  envString("R2_ENDPOINT", ""),
		Region:    envString("R2_REGION", "auto"),
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *StorageConfig) normalize() error {
	if c.Bucket == "" {
		return fmt.Errorf("R2_BUCKET is required but not set")
	}
	if c.AccessKey == "" || c.SecretKey == "" {
		return fmt.Errorf("R2_ACCESS_KEY and R2_SECRET_KEY are required")
	}
	if c.Endpoint == "" {
		if c.AccountID == "" {
			return fmt.Errorf("R2_ACCOUNT_ID is required when R2_ENDPOINT is not set")
		}
		c.Endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", c.AccountID)
	}
	return nil
}

// QueueConfig names the broker and routes used by the ranking worker.
type QueueConfig struct {
	URL      string
	Queue    string
	Exchange string
	Workers  int
}

// NewQueueConfig reads RABBITMQ_URL (required), RANK_QUEUE (default "rank_jobs"),
// RANK_EXCHANGE (default "rank_updates") and WORKER_COUNT (default 4).
func NewQueueConfig() (*QueueConfig, error) {
	workers, err := envInt("WORKER_COUNT", 4)
	if err != nil {
		return nil, err
	}

	cfg := &QueueConfig{
		URL:      envString("RABBITMQ_URL", ""),
		Queue:    envString("RANK_QUEUE", "rank_jobs"),
		Exchange: envString("RANK_EXCHANGE", "rank_updates"),
		Workers:  workers,
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *QueueConfig) normalize() error {
	if c.URL == "" {
		return fmt.Errorf("RABBITMQ_URL is required but not set")
	}
	if c.Workers < 1 {
		return fmt.Errorf("WORKER_COUNT must be at least 1, got: %d", c.Workers)
	}
	return nil
}

// RateLimitConfig sets the per client request budget for the HTTP API.
type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

// NewRateLimitConfig reads RATE_LIMIT_RPM (default 60) and RATE_LIMIT_BURST (default 10).
func NewRateLimitConfig() (*RateLimitConfig, error) {
	rpm, err := envInt("RATE_LIMIT_RPM", 60)
	if err != nil {
		return nil, err
	}
	burst, err := envInt("RATE_LIMIT_BURST", 10)
	if err != nil {
		return nil, err
	}

	cfg := &RateLimitConfig{RequestsPerMinute: rpm, Burst: burst}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *RateLimitConfig) normalize() error {
	if c.RequestsPerMinute < 1 {
		return fmt.Errorf("RATE_LIMIT_RPM must be at least 1, got: %d", c.RequestsPerMinute)
	}
	if c.Burst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least 1, got: %d", c.Burst)
	}
	return nil
}
