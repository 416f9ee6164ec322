package graph

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/chigwell/graph-ui/pkg/graph/metrics"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// State is the lifecycle state of a Pipeline.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// previewLength is how much of each segment is echoed into the run log.
const previewLength = 50

// LogEvent is one human-readable progress or diagnostic line of a run.
type LogEvent struct {
	Time    time.Time    `json:"time"`
	Level   logrus.Level `json:"level"`
	Message string       `json:"message"`
}

func (e LogEvent) String() string {
	return e.Message
}

// RunResult is everything a run produced. On failure Graph holds what the
// segments before the failing one contributed.
type RunResult struct {
	ID        string
	State     State
	Graph     GraphState
	Logs      []LogEvent
	Skipped   []SkipEvent
	Segments  int
	Processed int
	Err       error
}

// Messages returns the log lines of the run in order.
func (r *RunResult) Messages() []string {
	out := make([]string, len(r.Logs))
	for i, e := range r.Logs {
		out[i] = e.Message
	}
	return out
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger replaces the default JSON logrus logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// WithEventSink registers a callback that receives every LogEvent as it is
// recorded. It is called on the goroutine running the pipeline.
func WithEventSink(sink func(LogEvent)) Option {
	return func(p *Pipeline) { p.sink = sink }
}

// WithAggregator replaces the default aggregator.
func WithAggregator(a *Aggregator) Option {
	return func(p *Pipeline) { p.aggregator = a }
}

// Pipeline drives segments through prompt building, model invocation,
// parsing and aggregation, one segment at a time.
type Pipeline struct {
	extractor  Extractor
	aggregator *Aggregator
	logger     *logrus.Logger
	sink       func(LogEvent)

	mutex sync.Mutex
	state State
	last  *RunResult
}

// NewPipeline creates a pipeline backed by extractor. A nil extractor is
// accepted; runs will then fail their preconditions.
func NewPipeline(extractor Extractor, opts ...Option) *Pipeline {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	p := &Pipeline{
		extractor:  extractor,
		aggregator: NewAggregator(),
		logger:     logger,
		state:      StateIdle,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns the current lifecycle state.
func (p *Pipeline) State() State {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.state
}

// Last returns the result of the most recent finished run, or nil.
func (p *Pipeline) Last() *RunResult {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.last
}

// Run processes text with cfg and blocks until the run reaches a terminal
// state. The returned result is never nil; the error is the result's Err.
//
// Precondition and configuration failures leave the pipeline in its previous
// state. Cancelling ctx stops the run before the next segment, and also
// interrupts the in-flight model call when the extractor honours ctx.
func (p *Pipeline) Run(ctx context.Context, text string, cfg RunConfig) (*RunResult, error) {
	r := &run{
		p:      p,
		result: &RunResult{ID: uuid.NewString(), Graph: NewGraphState()},
	}
	r.entry = p.logger.WithField("run_id", r.result.ID)

	p.mutex.Lock()
	if p.state == StateRunning {
		p.mutex.Unlock()
		r.result.State = StateRunning
		return r.reject(errors.Wrap(ErrRunInProgress, "run request rejected"))
	}
	r.result.State = p.state
	if err := p.checkPreconditions(text, cfg); err != nil {
		p.mutex.Unlock()
		return r.reject(err)
	}
	p.state = StateRunning
	p.mutex.Unlock()

	r.result.State = StateRunning
	r.execute(ctx, text, cfg)

	p.mutex.Lock()
	p.state = r.result.State
	p.last = r.result
	p.mutex.Unlock()

	metrics.RunsTotal.WithLabelValues(r.result.State.String()).Inc()
	metrics.GraphNodeCount.Set(float64(r.result.Graph.NodeCount()))
	metrics.GraphEdgeCount.Set(float64(r.result.Graph.EdgeCount()))
	return r.result, r.result.Err
}

func (p *Pipeline) checkPreconditions(text string, cfg RunConfig) error {
	switch {
	case strings.TrimSpace(text) == "":
		return errors.Wrap(ErrPreconditionNotMet, "input text is empty")
	case p.extractor == nil:
		return errors.Wrap(ErrPreconditionNotMet, "model is not initialized")
	case cfg.Model == "":
		return errors.Wrap(ErrPreconditionNotMet, "no model selected")
	case cfg.Endpoint == "":
		return errors.Wrap(ErrPreconditionNotMet, "model endpoint is not set")
	}
	return cfg.Validate()
}

// run holds the mutable bookkeeping of a single Run call.
type run struct {
	p      *Pipeline
	result *RunResult
	entry  *logrus.Entry
}

func (r *run) log(level logrus.Level, format string, args ...interface{}) {
	event := LogEvent{Time: time.Now(), Level: level, Message: fmt.Sprintf(format, args...)}
	r.result.Logs = append(r.result.Logs, event)
	r.entry.Log(level, event.Message)
	if r.p.sink != nil {
		r.p.sink(event)
	}
}

func (r *run) reject(err error) (*RunResult, error) {
	r.result.Err = err
	r.log(logrus.ErrorLevel, "Error: %v", err)
	return r.result, err
}

func (r *run) fail(err error) {
	r.result.Err = err
	r.result.State = StateFailed
	r.log(logrus.ErrorLevel, "Error during generation: %v", err)
}

func (r *run) execute(ctx context.Context, text string, cfg RunConfig) {
	r.log(logrus.InfoLevel, "Starting graph generation with model %s at %s...", cfg.Model, cfg.Endpoint)
	r.log(logrus.InfoLevel, "Parameters: temperature=%g, segment size=%d", cfg.Temperature, cfg.SegmentSize)

	segments, err := SegmentText(text, cfg.SegmentSize)
	if err != nil {
		r.fail(err)
		return
	}
	r.result.Segments = len(segments)

	length := utf8.RuneCountInString(text)
	if len(segments) > 1 {
		r.log(logrus.InfoLevel, "Text length (%d) > segment size (%d). Split into %d segments.",
			length, cfg.SegmentSize, len(segments))
	} else {
		r.log(logrus.InfoLevel, "Text length (%d) <= segment size (%d). Processing as 1 segment.",
			length, cfg.SegmentSize)
	}

	for _, seg := range segments {
		if err := ctx.Err(); err != nil {
			r.fail(errors.Wrapf(err, "run cancelled before segment %d", seg.Index+1))
			return
		}

		r.log(logrus.InfoLevel, "--- Processing segment %d of %d ---", seg.Index+1, len(segments))
		r.log(logrus.DebugLevel, "Segment content (first %d chars): %s...", previewLength, preview(seg.Text))

		next, skipped, err := r.processSegment(ctx, seg, cfg)
		if err != nil {
			metrics.SegmentsProcessed.WithLabelValues("error").Inc()
			r.log(logrus.ErrorLevel, "Error processing segment %d: %v", seg.Index+1, err)
			r.result.Err = err
			r.result.State = StateFailed
			r.log(logrus.ErrorLevel, "Run failed at segment %d of %d", seg.Index+1, len(segments))
			return
		}
		metrics.SegmentsProcessed.WithLabelValues("success").Inc()

		for _, s := range skipped {
			metrics.TriplesSkipped.WithLabelValues(string(s.Reason)).Inc()
			r.log(logrus.InfoLevel, "%s", s)
		}
		accepted := next.EdgeCount() - r.result.Graph.EdgeCount()
		metrics.TriplesAccepted.Add(float64(accepted))

		r.result.Graph = next
		r.result.Skipped = append(r.result.Skipped, skipped...)
		r.result.Processed++
		r.log(logrus.InfoLevel, "Extracted %d valid edges from segment %d. Total edges so far: %d",
			accepted, seg.Index+1, next.EdgeCount())
	}

	r.log(logrus.InfoLevel, "--- Aggregating results ---")
	r.log(logrus.InfoLevel, "Total unique nodes found: %d", r.result.Graph.NodeCount())
	r.log(logrus.InfoLevel, "Total valid edges found: %d", r.result.Graph.EdgeCount())
	r.result.State = StateCompleted
	r.log(logrus.InfoLevel, "Graph data processed. Generation complete!")
}

// processSegment runs one segment through every stage. Panics in a stage are
// turned into ErrStageFailure so one bad segment cannot take the host down.
func (r *run) processSegment(ctx context.Context, seg Segment, cfg RunConfig) (next GraphState, skipped []SkipEvent, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.Wrapf(ErrStageFailure, "segment %d: %v", seg.Index+1, rec)
		}
	}()

	req, err := BuildRequest(seg, cfg)
	if err != nil {
		return GraphState{}, nil, err
	}

	start := time.Now()
	raw, err := r.p.extractor.Invoke(ctx, req, cfg)
	if err != nil {
		metrics.ModelCallDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return GraphState{}, nil, err
	}
	metrics.ModelCallDuration.WithLabelValues("success").Observe(time.Since(start).Seconds())
	r.log(logrus.DebugLevel, "Raw model response (segment %d): %s", seg.Index+1, raw)

	next, skipped = r.p.aggregator.Apply(r.result.Graph, Parse(raw), seg.Index)
	return next, skipped, nil
}

func preview(s string) string {
	if utf8.RuneCountInString(s) <= previewLength {
		return s
	}
	n := 0
	for i := range s {
		if n == previewLength {
			return s[:i]
		}
		n++
	}
	return s
}
