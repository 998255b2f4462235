package search

import (
	"errors"
	"fmt"
)

// ErrNoPath is returned when the frontier is exhausted without reaching a goal.
var ErrNoPath = errors.New("no path found")

// ConfigError reports a search invoked with unusable arguments.
type ConfigError struct {
	Message string
	Cause   error
}

// NewConfigError builds a ConfigError; cause may be nil.
func NewConfigError(message string, cause error) *ConfigError {
	return &ConfigError{Message: message, Cause: cause}
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("search configuration error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("search configuration error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error { return e.Cause }

// CostError reports a negative or non-numeric cost met during best-first
// search, either from an edge or from the heuristic.
type CostError struct {
	Source string // "edge" or "heuristic"
	State  any
	Value  float64
}

func (e *CostError) Error() string {
	return fmt.Sprintf("invalid %s cost %v at state %v", e.Source, e.Value, e.State)
}
