package tools

import (
	"sync"
	"time"

	"github.com/chigwell/graph-ui/pkg/graph"
)

const defaultHistoryLimit = 50

// RunSummary is what is kept about a finished extract_graph call.
type RunSummary struct {
	ID         string    `json:"id"`
	State      string    `json:"state"`
	Model      string    `json:"model"`
	Endpoint   string    `json:"endpoint"`
	Segments   int       `json:"segments"`
	Processed  int       `json:"processed"`
	Nodes      int       `json:"nodes"`
	Edges      int       `json:"edges"`
	Skipped    int       `json:"skipped"`
	Error      string    `json:"error,omitempty"`
	FinishedAt time.Time `json:"finishedAt"`
}

// RunHistory keeps the most recent run summaries, oldest first.
type RunHistory struct {
	mutex sync.Mutex
	runs  []RunSummary
	limit int
}

func NewRunHistory(limit int) *RunHistory {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return &RunHistory{
		runs:  make([]RunSummary, 0),
		limit: limit,
	}
}

// Record stores a summary of r. Once the limit is reached the oldest entry is
// dropped.
func (h *RunHistory) Record(r *graph.RunResult, cfg graph.RunConfig) {
	if r == nil {
		return
	}

	summary := RunSummary{
		ID:         r.ID,
		State:      r.State.String(),
		Model:      cfg.Model,
		Endpoint:   cfg.Endpoint,
		Segments:   r.Segments,
		Processed:  r.Processed,
		Nodes:      r.Graph.NodeCount(),
		Edges:      r.Graph.EdgeCount(),
		Skipped:    len(r.Skipped),
		FinishedAt: time.Now(),
	}
	if r.Err != nil {
		summary.Error = r.Err.Error()
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.runs = append(h.runs, summary)
	if len(h.runs) > h.limit {
		h.runs = h.runs[len(h.runs)-h.limit:]
	}
}

// Runs returns a copy of the stored summaries.
func (h *RunHistory) Runs() []RunSummary {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	out := make([]RunSummary, len(h.runs))
	copy(out, h.runs)
	return out
}

func (h *RunHistory) Find(id string) (RunSummary, bool) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for _, r := range h.runs {
		if r.ID == id {
			return r, true
		}
	}
	return RunSummary{}, false
}
