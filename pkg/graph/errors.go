package graph

import "github.com/pkg/errors"

var (
	// ErrInvalidConfiguration is returned for a bad segment size or a prompt
	// template without the substitution placeholder. No model call is made.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrPreconditionNotMet is returned when a run is requested without input
	// text, a model, or an endpoint. The pipeline state is left untouched.
	ErrPreconditionNotMet = errors.New("precondition not met")

	// ErrModelUnavailable is returned when the model endpoint cannot be reached.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrModelError is returned when the endpoint answered with a failure,
	// e.g. an unknown model identifier.
	ErrModelError = errors.New("model error")

	// ErrRunInProgress is returned when a run is requested while another run
	// on the same pipeline is still going.
	ErrRunInProgress = errors.New("run already in progress")

	// ErrStageFailure wraps unexpected failures inside a segment stage.
	ErrStageFailure = errors.New("stage failure")
)

// IsModelFailure reports whether err came from the model endpoint rather than
// from parsing or configuration.
func IsModelFailure(err error) bool {
	return errors.Is(err, ErrModelUnavailable) || errors.Is(err, ErrModelError)
}
