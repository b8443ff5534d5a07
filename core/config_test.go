package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("ACADEMIA_SECRET_KEY", "s3cr3t")

	conf, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "TEST", conf.Env)
	assert.Equal(t, "Academia", conf.AppName)
	assert.True(t, conf.TestMode)
	assert.False(t, conf.Debug)
	assert.Equal(t, "s3cr3t", conf.SecretKey)
	assert.Equal(t, ":8000", conf.Server.Address())
	assert.Equal(t, []string{"*"}, conf.Server.AllowOrigins)
	assert.Equal(t, time.Hour, conf.Auth.TokenTTL)
	assert.Equal(t, 10, conf.Auth.HashCost)
	assert.Equal(t, "postgres", conf.Database.Engine)
	assert.Equal(t, "localhost:5432", conf.Database.Address())
	assert.True(t, conf.Database.DisableTLS)
}

func TestNewConfig_env(t *testing.T) {
	t.Setenv("ENV", "TEST")
	t.Setenv("ACADEMIA_SECRET_KEY", "s3cr3t")
	t.Setenv("ACADEMIA_SERVER_HOST", "127.0.0.1")
	t.Setenv("ACADEMIA_SERVER_PORT", "9000")
	t.Setenv("ACADEMIA_AUTH_TOKEN_TTL", "15m")
	t.Setenv("ACADEMIA_DATABASE_ENGINE", "memory")

	conf, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", conf.Server.Address())
	assert.Equal(t, 15*time.Minute, conf.Auth.TokenTTL)
	assert.Equal(t, "memory", conf.Database.Engine)
}

func TestNewConfig_aliases(t *testing.T) {
	t.Setenv("ENV", "TEST")
	t.Setenv("ACADEMIA_SECRET_KEY", "")
	t.Setenv("ACADEMIA_SERVER_PORT", "")
	t.Setenv("ACADEMIA_AUTH_HASH_COST", "")
	t.Setenv("JWT_SECRET", "from-alias")
	t.Setenv("PORT", "3000")
	t.Setenv("SALT_ROUNDS", "12")

	conf, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "from-alias", conf.SecretKey)
	assert.Equal(t, 3000, conf.Server.Port)
	assert.Equal(t, 12, conf.Auth.HashCost)
}

func TestNewConfig_invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing secret", env: map[string]string{"ACADEMIA_SECRET_KEY": "", "JWT_SECRET": ""}},
		{name: "unknown engine", env: map[string]string{"ACADEMIA_SECRET_KEY": "s", "ACADEMIA_DATABASE_ENGINE": "mongo"}},
		{name: "hash cost out of range", env: map[string]string{"ACADEMIA_SECRET_KEY": "s", "ACADEMIA_AUTH_HASH_COST": "99"}},
		{name: "port out of range", env: map[string]string{"ACADEMIA_SECRET_KEY": "s", "ACADEMIA_SERVER_PORT": "70000"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ENV", "TEST")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := NewConfig()
			assert.Error(t, err)
		})
	}
}
