package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL())
	assert.Equal(t, "booking.exchange", cfg.AMQP.Exchange)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadTOMLDoesNotOverrideEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "SERVER_PORT = \"9090\"\nJWT_SECRET = \"from-file\"\nSLOT_GENERATION_DAYS = 7\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("SERVER_PORT", "")
	os.Unsetenv("SERVER_PORT")
	t.Setenv("SLOT_GENERATION_DAYS", "")
	os.Unsetenv("SLOT_GENERATION_DAYS")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "from-env", cfg.JWTSecret)
	assert.Equal(t, 7, cfg.SlotGenerationDays)
}
