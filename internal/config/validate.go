package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Storage.Enabled() {
		if err := c.Storage.validate(); err != nil {
			return fmt.Errorf("storage: %w", err)
		}
	}

	if err := c.Forms.validate(); err != nil {
		return fmt.Errorf("forms: %w", err)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with / (got %q)", c.Metrics.Path)
	}

	return nil
}

func (s *StorageConfig) validate() error {
	if s.Bucket == "" {
		return fmt.Errorf("bucket is required when endpoint is set")
	}
	if s.AccessKey == "" || s.SecretKey == "" {
		return fmt.Errorf("access_key and secret_key are required when endpoint is set")
	}
	return nil
}

func (f *FormsConfig) validate() error {
	if f.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be > 0 (got %v)", f.FetchTimeout)
	}
	if f.MaxUploadMB <= 0 {
		return fmt.Errorf("max_upload_mb must be > 0 (got %d)", f.MaxUploadMB)
	}
	f.BooleanFields = ParseList(f.BooleanFieldsRaw)
	return nil
}

// ParseList splits a comma-separated string into trimmed, non-empty items.
// An empty string returns a nil slice.
func ParseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		items = append(items, p)
	}
	return items
}
