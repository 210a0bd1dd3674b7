package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr bool
		check   func(*Config) bool
	}{
		{
			name: "loads with all required vars",
			envVars: map[string]string{
				"PORT":         "8080",
				"ENV":          "production",
				"DATABASE_URL": "postgres://localhost/test",
				"JWT_SECRET":   "secret123",
			},
			wantErr: false,
			check: func(c *Config) bool {
				return c.Port == 8080 &&
					c.Environment == "production" &&
					c.DatabaseURL == "postgres://localhost/test" &&
					c.JWTSecret == "secret123"
			},
		},
		{
			name: "uses defaults when optional vars missing",
			envVars: map[string]string{
				"DATABASE_URL": "postgres://localhost/test",
				"JWT_SECRET":   "secret123",
			},
			wantErr: false,
			check: func(c *Config) bool {
				return c.Port == 3000 &&
					c.Environment == "development" &&
					c.ProviderType == "deepface" &&
					c.IdentityPolicy == "strict" &&
					c.MatchMinConfidence == 0.06 &&
					c.MinDecodeRate == 0.6 &&
					c.AttendanceTimezone == "UTC" &&
					c.SubmitRateLimit == 10
			},
		},
		{
			name: "fails when DATABASE_URL missing",
			envVars: map[string]string{
				"JWT_SECRET": "secret123",
			},
			wantErr: true,
			check:   nil,
		},
		{
			name: "fails when JWT_SECRET missing",
			envVars: map[string]string{
				"DATABASE_URL": "postgres://localhost/test",
			},
			wantErr: true,
			check:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()

			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}

			cfg, err := Load()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil && !tt.check(cfg) {
				t.Errorf("config check failed: %+v", cfg)
			}
		})
	}
}

func TestTimezone(t *testing.T) {
	cfg := &Config{AttendanceTimezone: "Asia/Jakarta"}
	loc, err := cfg.Timezone()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.String() != "Asia/Jakarta" {
		t.Errorf("got %s", loc)
	}

	cfg = &Config{AttendanceTimezone: "Not/AZone"}
	if _, err := cfg.Timezone(); err == nil {
		t.Error("expected error for bogus timezone")
	}
}
