package services

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/chigwell/graph-ui/pkg/graph"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// ModelInfo is one selectable model. Name is shown to users, Alias is what
// gets sent as the model identifier.
type ModelInfo struct {
	Name  string `json:"name"`
	Alias string `json:"alias"`
}

var listClient = &http.Client{Timeout: 10 * time.Second}

// ListModels asks the Ollama server at endpoint for its installed models.
func ListModels(ctx context.Context, endpoint string) ([]ModelInfo, error) {
	if endpoint == "" {
		return nil, errors.Wrap(graph.ErrPreconditionNotMet, "model endpoint is not set")
	}

	url := strings.TrimRight(endpoint, "/") + "/api/tags"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(graph.ErrInvalidConfiguration, "endpoint %q: %v", endpoint, err)
	}

	resp, err := listClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(graph.ErrModelUnavailable, "fetching models from %s: %v", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(graph.ErrModelUnavailable, "reading models from %s: %v", endpoint, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(graph.ErrModelError, "fetching models from %s: status %d", endpoint, resp.StatusCode)
	}

	list := gjson.GetBytes(body, "models")
	if !gjson.ValidBytes(body) || !list.IsArray() {
		return nil, errors.Wrapf(graph.ErrModelError, "invalid response structure from %s", endpoint)
	}

	models := make([]ModelInfo, 0, len(list.Array()))
	list.ForEach(func(_, m gjson.Result) bool {
		name := m.Get("name").String()
		if name == "" {
			return true
		}
		alias := m.Get("model").String()
		if alias == "" {
			alias = name
		}
		models = append(models, ModelInfo{Name: name, Alias: alias})
		return true
	})
	return models, nil
}

// SelectModel keeps preferred when it is still listed and otherwise falls back
// to the first model. It reports false when models is empty.
func SelectModel(models []ModelInfo, preferred string) (ModelInfo, bool) {
	if len(models) == 0 {
		return ModelInfo{}, false
	}
	for _, m := range models {
		if m.Name == preferred || (preferred != "" && m.Alias == preferred) {
			return m, true
		}
	}
	return models[0], true
}
