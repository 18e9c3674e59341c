package vend

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config holds the POS tenant, credentials and client tuning.
type Config struct {
	// SiteID is the tenant prefix of the store URL ({site}.vendhq.com).
	SiteID string `mapstructure:"site_id" default:"" validate:"required"`
	// Token is the personal access token sent as a bearer token.
	Token string `mapstructure:"token" default:"" validate:"required"`
	// BaseURL overrides the tenant URL (used against proxies and test servers).
	BaseURL string `mapstructure:"base_url" default:"" validate:"omitempty,url"`
	// Register is the register name sales are recorded against.
	Register string `mapstructure:"register" default:""`
	// TimeoutSeconds bounds every remote call.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30" validate:"gte=0"`
	// RateLimitPerMinute caps outgoing calls; zero disables the limiter.
	RateLimitPerMinute int `mapstructure:"rate_limit_per_minute" default:"300" validate:"gte=0"`
	// Concurrency is the fan-out used for line-item batches, at most 3.
	Concurrency int `mapstructure:"concurrency" default:"3" validate:"gte=1,lte=3"`
	// PageSize is requested on listings that do not pin their own size.
	PageSize int `mapstructure:"page_size" default:"100" validate:"gte=1"`
	// BreakerFailures is how many consecutive transport failures open the
	// circuit breaker; zero disables it.
	BreakerFailures int `mapstructure:"breaker_failures" default:"5" validate:"gte=0"`
	// BreakerCooldownSeconds is how long the breaker stays open before
	// letting a probe request through.
	BreakerCooldownSeconds int `mapstructure:"breaker_cooldown_seconds" default:"30" validate:"gte=0"`
}

var configValidator = validator.New()

// Validate reports missing or malformed settings.
func (c Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("invalid vend configuration: %w", err)
	}
	return nil
}

// URL returns the API root for the configured tenant, without a trailing slash.
func (c Config) URL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	return fmt.Sprintf("https://%s.vendhq.com/api", c.SiteID)
}
