package mindmap

import (
	"fmt"
	"strings"
)

// Violation is a single failed rule at a JSON field path.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	if v.Field == "" {
		return v.Message
	}
	return v.Field + " " + v.Message
}

// ValidationError reports every violation found in a malformed request.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

// Fields returns the violated field paths in report order.
func (e *ValidationError) Fields() []string {
	out := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		out = append(out, v.Field)
	}
	return out
}

// FileSystemError wraps a failure to prepare or write the output location.
type FileSystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileSystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileSystemError) Unwrap() error { return e.Err }

// DependencyUnavailableError means the serialization backend could not be
// set up at startup. Every request fails with it until restart.
type DependencyUnavailableError struct {
	Dependency string
	Err        error
}

func (e *DependencyUnavailableError) Error() string {
	return fmt.Sprintf("%s is unavailable: %v", e.Dependency, e.Err)
}

func (e *DependencyUnavailableError) Unwrap() error { return e.Err }

// BuildError is an unexpected structural anomaly found while building the graph.
type BuildError struct {
	Path   string
	Reason string
}

func (e *BuildError) Error() string {
	if e.Path == "" {
		return "build: " + e.Reason
	}
	return fmt.Sprintf("build: %s: %s", e.Path, e.Reason)
}
