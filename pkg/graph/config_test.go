package graph

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRunConfig(t *testing.T) {
	cfg := DefaultRunConfig()
	assert.Equal(t, "http://127.0.0.1:11434", cfg.Endpoint)
	assert.Equal(t, 0.5, cfg.Temperature)
	assert.Equal(t, 1024, cfg.SegmentSize)
	assert.Empty(t, cfg.Model)
	assert.NoError(t, cfg.Validate())
}

func TestRunConfigFromEnv(t *testing.T) {
	t.Setenv("OLLAMA_URL", "http://ollama:11434")
	t.Setenv("OLLAMA_MODEL", "llama3")
	t.Setenv("OLLAMA_TEMPERATURE", "0.2")
	t.Setenv("SEGMENT_SIZE", "256")
	t.Setenv("USER_PROMPT_TEMPLATE", "Text: {user_text}")

	cfg, err := RunConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "http://ollama:11434", cfg.Endpoint)
	assert.Equal(t, "llama3", cfg.Model)
	assert.Equal(t, 0.2, cfg.Temperature)
	assert.Equal(t, 256, cfg.SegmentSize)
	assert.Equal(t, DefaultSystemPrompt, cfg.SystemPrompt)
	assert.Equal(t, "Text: {user_text}", cfg.UserTemplate)
}

func TestRunConfigFromEnvInvalid(t *testing.T) {
	t.Setenv("SEGMENT_SIZE", "lots")
	_, err := RunConfigFromEnv()
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))
}

func TestRunConfigValidate(t *testing.T) {
	cfg := DefaultRunConfig()
	cfg.SegmentSize = 0
	assert.True(t, errors.Is(cfg.Validate(), ErrInvalidConfiguration))

	cfg = DefaultRunConfig()
	cfg.UserTemplate = "no placeholder"
	assert.True(t, errors.Is(cfg.Validate(), ErrInvalidConfiguration))
}
