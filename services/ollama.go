package services

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"sync"

	"github.com/chigwell/graph-ui/pkg/graph"
	"github.com/chigwell/graph-ui/pkg/graph/metrics"
	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
)

// ClientKey identifies a configured chat client. Any change to one of its
// fields requires a new client.
type ClientKey struct {
	Endpoint    string
	Model       string
	Temperature float64
}

type chatClient struct {
	key    ClientKey
	client *openai.Client
}

// newChatClient talks to Ollama through its OpenAI compatible API.
func newChatClient(key ClientKey) *chatClient {
	config := openai.DefaultConfig("ollama")
	config.BaseURL = strings.TrimRight(key.Endpoint, "/") + "/v1"
	return &chatClient{key: key, client: openai.NewClientWithConfig(config)}
}

func (c *chatClient) chat(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.key.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: system,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: user,
			},
		},
		Temperature: requestTemperature(c.key.Temperature),
	})
	if err != nil {
		return "", classify(ctx, c.key, err)
	}

	// Anything other than plain text content counts as an empty answer.
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// requestTemperature keeps a zero temperature on the wire: go-openai omits a
// zero value, which would leave the server default in place.
func requestTemperature(t float64) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return float32(t)
}

// classify maps client errors onto the pipeline's error taxonomy.
func classify(ctx context.Context, key ClientKey, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return errors.Wrapf(ctxErr, "model call to %s interrupted", key.Endpoint)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return errors.Wrapf(graph.ErrModelError, "%s answered %d for model %q: %s",
			key.Endpoint, apiErr.HTTPStatusCode, key.Model, apiErr.Message)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return errors.Wrapf(graph.ErrModelError, "%s answered %d for model %q: %s",
			key.Endpoint, reqErr.HTTPStatusCode, key.Model, reqErr.Error())
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return errors.Wrapf(graph.ErrModelError, "%s sent an undecodable response: %v", key.Endpoint, err)
	}

	return errors.Wrapf(graph.ErrModelUnavailable, "%s: %v", key.Endpoint, err)
}

// ClientCache memoizes the chat client for the most recent ClientKey. The
// entry is replaced whenever the requested key differs from the cached one.
type ClientCache struct {
	mutex  sync.Mutex
	key    ClientKey
	client *chatClient
	build  func(ClientKey) *chatClient
}

func NewClientCache() *ClientCache {
	return &ClientCache{build: newChatClient}
}

func (c *ClientCache) get(key ClientKey) *chatClient {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.client != nil && c.key == key {
		metrics.CacheHits.WithLabelValues("chat_client").Inc()
		return c.client
	}

	metrics.CacheMisses.WithLabelValues("chat_client").Inc()
	c.key = key
	c.client = c.build(key)
	return c.client
}

// Key returns the key of the cached client, if any.
func (c *ClientCache) Key() (ClientKey, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.key, c.client != nil
}

// OllamaExtractor implements graph.Extractor against an Ollama server.
type OllamaExtractor struct {
	cache *ClientCache
}

func NewOllamaExtractor() *OllamaExtractor {
	return &OllamaExtractor{cache: NewClientCache()}
}

// DefaultOllamaExtractor returns a process-wide extractor so the client cache
// is shared between callers.
var DefaultOllamaExtractor = sync.OnceValue(func() *OllamaExtractor {
	return NewOllamaExtractor()
})

// Invoke sends the system and user instructions as two ordered turns using the
// endpoint, model and temperature of cfg.
func (o *OllamaExtractor) Invoke(ctx context.Context, req graph.ExtractionRequest, cfg graph.RunConfig) (string, error) {
	client := o.cache.get(ClientKey{
		Endpoint:    cfg.Endpoint,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
	})
	return client.chat(ctx, req.System, req.User)
}

// Cache exposes the memoized client entry.
func (o *OllamaExtractor) Cache() *ClientCache {
	return o.cache
}
