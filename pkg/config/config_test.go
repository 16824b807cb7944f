package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, 4096, cfg.EmbeddingDimension)
	assert.Equal(t, 100, cfg.MaxTopK)
	assert.Equal(t, 5, cfg.DefaultTopK)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9100")
	t.Setenv("DATA_DIR", "/var/lib/reviewlens")
	t.Setenv("EMBEDDING_DIMENSION", "512")

	cfg := Load()

	assert.Equal(t, "9100", cfg.Port)
	assert.Equal(t, "/var/lib/reviewlens", cfg.DataDir)
	assert.Equal(t, 512, cfg.EmbeddingDimension)
}

func TestLoadIgnoresUnparsableInt(t *testing.T) {
	t.Setenv("EMBEDDING_DIMENSION", "not-a-number")

	cfg := Load()
	assert.Equal(t, 4096, cfg.EmbeddingDimension)
}
