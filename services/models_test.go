package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chigwell/graph-ui/pkg/graph"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tagsServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestListModels(t *testing.T) {
	srv := tagsServer(t, http.StatusOK, `{"models": [
		{"name": "llama3:8b", "model": "llama3:8b-instruct"},
		{"name": "mistral"},
		{"model": "nameless"}
	]}`)

	models, err := ListModels(context.Background(), srv.URL+"/")
	require.NoError(t, err)
	assert.Equal(t, []ModelInfo{
		{Name: "llama3:8b", Alias: "llama3:8b-instruct"},
		{Name: "mistral", Alias: "mistral"},
	}, models)
}

func TestListModelsEmpty(t *testing.T) {
	srv := tagsServer(t, http.StatusOK, `{"models": []}`)

	models, err := ListModels(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Empty(t, models)
}

func TestListModelsErrors(t *testing.T) {
	_, err := ListModels(context.Background(), "")
	assert.True(t, errors.Is(err, graph.ErrPreconditionNotMet))

	srv := tagsServer(t, http.StatusInternalServerError, `oops`)
	_, err = ListModels(context.Background(), srv.URL)
	assert.True(t, errors.Is(err, graph.ErrModelError))

	srv = tagsServer(t, http.StatusOK, `{"tags": []}`)
	_, err = ListModels(context.Background(), srv.URL)
	assert.True(t, errors.Is(err, graph.ErrModelError))

	closed := httptest.NewServer(http.NotFoundHandler())
	closed.Close()
	_, err = ListModels(context.Background(), closed.URL)
	assert.True(t, errors.Is(err, graph.ErrModelUnavailable))
}

func TestSelectModel(t *testing.T) {
	models := []ModelInfo{{Name: "a", Alias: "a-1"}, {Name: "b", Alias: "b-1"}}

	m, ok := SelectModel(models, "b")
	require.True(t, ok)
	assert.Equal(t, "b", m.Name)

	m, ok = SelectModel(models, "b-1")
	require.True(t, ok)
	assert.Equal(t, "b", m.Name)

	m, ok = SelectModel(models, "gone")
	require.True(t, ok)
	assert.Equal(t, "a", m.Name)

	_, ok = SelectModel(nil, "a")
	assert.False(t, ok)
}
