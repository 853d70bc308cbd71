package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("STORE_DRIVER", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.App.Port)
	assert.Equal(t, StoreDriverMongo, cfg.Store.Driver)
	assert.Equal(t, "blooddonation", cfg.Mongo.Database)
	assert.Equal(t, "dev-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 30*24*time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, "admin@blood.com", cfg.Admin.Email)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoadProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadFallsBackToNodeEnvAndPort(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("NODE_ENV", "staging")
	t.Setenv("APP_PORT", "")
	t.Setenv("PORT", "8088")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.App.Env)
	assert.Equal(t, "0.0.0.0:8088", cfg.App.Addr())
	assert.False(t, cfg.App.IsProduction())
}

func TestValidateStoreDriver(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory", Config{Auth: AuthConfig{JWTSecret: "x"}, Store: StoreConfig{Driver: StoreDriverMemory}}, false},
		{"postgres without dsn", Config{Auth: AuthConfig{JWTSecret: "x"}, Store: StoreConfig{Driver: StoreDriverPostgres}}, true},
		{"postgres with dsn", Config{Auth: AuthConfig{JWTSecret: "x"}, Store: StoreConfig{Driver: StoreDriverPostgres}, Postgres: PostgresConfig{DSN: "postgres://localhost/db"}}, false},
		{"mongo without uri", Config{Auth: AuthConfig{JWTSecret: "x"}, Store: StoreConfig{Driver: StoreDriverMongo}}, true},
		{"unknown", Config{Auth: AuthConfig{JWTSecret: "x"}, Store: StoreConfig{Driver: "sqlite"}}, true},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCORSOrigins(t *testing.T) {
	c := CORSConfig{
		FrontendURL:    "https://blood.example.org/",
		AllowedOrigins: []string{"http://localhost:3000", " https://admin.example.org "},
	}
	assert.Equal(t, []string{
		"http://localhost:3000",
		"http://localhost:5000",
		"https://blood.example.org",
		"https://admin.example.org",
	}, c.Origins())
}

func TestRequestTimeout(t *testing.T) {
	assert.Equal(t, time.Duration(0), AppConfig{RequestTimeoutSeconds: 0}.RequestTimeout())
	assert.Equal(t, 5*time.Second, AppConfig{RequestTimeoutSeconds: 5}.RequestTimeout())
}
