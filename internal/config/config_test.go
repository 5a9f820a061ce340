package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DETECT_WORKERS", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, 1, cfg.Detection.Workers)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://localhost/colguard")
	t.Setenv("DETECT_WORKERS", "4")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "postgres://localhost/colguard", cfg.Database.URL)
	assert.Equal(t, 4, cfg.Detection.Workers)
}

func TestLoadBadWorkerCount(t *testing.T) {
	t.Setenv("DETECT_WORKERS", "many")
	assert.Equal(t, 1, Load().Detection.Workers)
}
