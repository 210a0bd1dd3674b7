package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"ENV" default:"development"`

	// Database
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// Embedding provider
	ProviderType string `envconfig:"PROVIDER_TYPE" default:"deepface"`
	DeepFaceURL  string `envconfig:"DEEPFACE_URL" default:"http://localhost:5005"`

	// Identity check
	IdentityPolicy     string  `envconfig:"IDENTITY_POLICY" default:"strict"`
	MatchMinConfidence float64 `envconfig:"MATCH_MIN_CONFIDENCE" default:"0.06"`

	// Registration
	MinDecodeRate float64 `envconfig:"REGISTRATION_MIN_DECODE_RATE" default:"0.6"`

	// Reference timezone for the one-event-per-day rule
	AttendanceTimezone string `envconfig:"ATTENDANCE_TIMEZONE" default:"UTC"`

	// Per-student limit on attendance submissions. Zero disables it.
	SubmitRateLimit  int           `envconfig:"SUBMIT_RATE_LIMIT" default:"10"`
	SubmitRateWindow time.Duration `envconfig:"SUBMIT_RATE_WINDOW" default:"1m"`

	// Auth
	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	JWTIssuer string        `envconfig:"JWT_ISSUER" default:"presensia"`
	JWTExpiry time.Duration `envconfig:"JWT_EXPIRY" default:"12h"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// Timezone resolves the reference timezone used to bucket attendance
// events into calendar days.
func (c *Config) Timezone() (*time.Location, error) {
	loc, err := time.LoadLocation(c.AttendanceTimezone)
	if err != nil {
		return nil, fmt.Errorf("load attendance timezone %q: %w", c.AttendanceTimezone, err)
	}
	return loc, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
