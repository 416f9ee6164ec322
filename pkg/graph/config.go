package graph

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	DefaultEndpoint    = "http://127.0.0.1:11434"
	DefaultTemperature = 0.5
	DefaultSegmentSize = 1024

	// Placeholder is substituted with the segment text in the user template.
	Placeholder = "{user_text}"

	DefaultSystemPrompt = `You are a helpful assistant. Your task is to extract relationships from the provided text and format them as a list of connections. Respond ONLY with the connections within <nodes>...</nodes> tags, where each connection is inside a <node> tag like this: <node><from_node>ENTITY_A</from_node><relationship>RELATIONSHIP_TYPE</relationship><to_node>ENTITY_B</to_node></node>. Do not include explanations or any other text outside the <nodes> tags.`

	DefaultUserTemplate = "Extract the relationships from the following text:\n\n" + Placeholder
)

// RunConfig is the caller-supplied configuration of one run. It is read-only
// for the duration of the run.
type RunConfig struct {
	Endpoint     string  `json:"endpoint"`
	Model        string  `json:"model"`
	Temperature  float64 `json:"temperature"`
	SystemPrompt string  `json:"system_prompt"`
	UserTemplate string  `json:"user_template"`
	SegmentSize  int     `json:"segment_size"`
}

// DefaultRunConfig returns the configuration used when nothing is overridden.
// Model is left empty: it has to be selected from the endpoint's model list.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Endpoint:     DefaultEndpoint,
		Temperature:  DefaultTemperature,
		SystemPrompt: DefaultSystemPrompt,
		UserTemplate: DefaultUserTemplate,
		SegmentSize:  DefaultSegmentSize,
	}
}

// RunConfigFromEnv overlays OLLAMA_URL, OLLAMA_MODEL, OLLAMA_TEMPERATURE,
// SEGMENT_SIZE, SYSTEM_PROMPT and USER_PROMPT_TEMPLATE onto the defaults.
func RunConfigFromEnv() (RunConfig, error) {
	cfg := DefaultRunConfig()

	if v := os.Getenv("OLLAMA_URL"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("OLLAMA_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("OLLAMA_TEMPERATURE"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, errors.Wrapf(ErrInvalidConfiguration, "OLLAMA_TEMPERATURE %q", v)
		}
		cfg.Temperature = t
	}
	if v := os.Getenv("SEGMENT_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, errors.Wrapf(ErrInvalidConfiguration, "SEGMENT_SIZE %q", v)
		}
		cfg.SegmentSize = n
	}
	if v := os.Getenv("SYSTEM_PROMPT"); v != "" {
		cfg.SystemPrompt = v
	}
	if v := os.Getenv("USER_PROMPT_TEMPLATE"); v != "" {
		cfg.UserTemplate = v
	}
	return cfg, nil
}

// Validate checks the parts of the configuration that can be judged without
// contacting the model.
func (c RunConfig) Validate() error {
	if c.SegmentSize <= 0 {
		return errors.Wrapf(ErrInvalidConfiguration, "segment size must be positive, got %d", c.SegmentSize)
	}
	if !strings.Contains(c.UserTemplate, Placeholder) {
		return errors.Wrapf(ErrInvalidConfiguration, "user template has no %s placeholder", Placeholder)
	}
	return nil
}
