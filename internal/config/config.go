package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort          = "8000"
	defaultRegion        = "nyc3"
	defaultPresignExpiry = 60 * time.Second
	defaultMaxUpload     = 32 << 20
	defaultRateLimit     = 60

	maxPresignExpiry = 7 * 24 * time.Hour
)

// Config собирается один раз при старте и дальше только читается.
type Config struct {
	Port string

	Origin    string // DIGITAL_OCEAN_ORIGIN, например https://nyc3.digitaloceanspaces.com
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string

	AllowedOrigins []string
	PresignExpiry  time.Duration
	MaxUploadBytes int64
	// UploadRateLimit — запросов в минуту с одного IP, 0 отключает лимит
	UploadRateLimit int
}

// Load читает окружение. .env подгружается раньше, в main.
func Load() (*Config, error) {
	cfg := &Config{
		Port:      envOr("PORT", defaultPort),
		Origin:    strings.TrimRight(strings.TrimSpace(os.Getenv("DIGITAL_OCEAN_ORIGIN")), "/"),
		AccessKey: os.Getenv("DIGITAL_OCEAN_ACCESS_KEY"),
		SecretKey: os.Getenv("DIGITAL_OCEAN_SECRET_KEY"),
		Bucket:    os.Getenv("DIGITAL_OCEAN_BUCKET"),
		Region:    envOr("DIGITAL_OCEAN_REGION", defaultRegion),

		AllowedOrigins:  splitList(envOr("CORS_ALLOWED_ORIGINS", "*")),
		PresignExpiry:   defaultPresignExpiry,
		MaxUploadBytes:  defaultMaxUpload,
		UploadRateLimit: defaultRateLimit,
	}

	if v := os.Getenv("PRESIGN_EXPIRY_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("PRESIGN_EXPIRY_SECONDS: %w", err)
		}
		cfg.PresignExpiry = time.Duration(secs) * time.Second
	}

	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("MAX_UPLOAD_BYTES: %w", err)
		}
		cfg.MaxUploadBytes = n
	}

	if v := os.Getenv("UPLOAD_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("UPLOAD_RATE_LIMIT: %w", err)
		}
		cfg.UploadRateLimit = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет обязательные поля. Ключи доступа сюда не входят:
// их отсутствие отдаётся клиенту как ошибка учётных данных на каждом запросе.
func (c *Config) Validate() error {
	var errs []error

	if c.Origin == "" {
		errs = append(errs, errors.New("DIGITAL_OCEAN_ORIGIN is not set"))
	} else if u, err := url.Parse(c.Origin); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, fmt.Errorf("DIGITAL_OCEAN_ORIGIN must be an http(s) URL, got %q", c.Origin))
	}
	if c.Bucket == "" {
		errs = append(errs, errors.New("DIGITAL_OCEAN_BUCKET is not set"))
	}
	if c.Port == "" {
		errs = append(errs, errors.New("PORT is empty"))
	}
	if c.PresignExpiry < time.Second || c.PresignExpiry > maxPresignExpiry {
		errs = append(errs, fmt.Errorf("presign expiry must be between 1s and %s, got %s", maxPresignExpiry, c.PresignExpiry))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_BYTES must be positive"))
	}
	if c.UploadRateLimit < 0 {
		errs = append(errs, errors.New("UPLOAD_RATE_LIMIT must not be negative"))
	}
	if len(c.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS is empty"))
	}

	return errors.Join(errs...)
}

// HasCredentials — оба ключа заданы.
func (c *Config) HasCredentials() bool {
	return c.AccessKey != "" && c.SecretKey != ""
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
