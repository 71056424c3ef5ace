package types

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// NotFoundError reports that a resource name could not be resolved
// against the configured search paths. For dependency-closure queries it
// additionally carries the best-effort partial closure and the set of
// names that could not be resolved, so callers can pattern-match with
// errors.As and still use the partial result.
type NotFoundError struct {
	Name        string
	SearchPaths []string

	// Partial is the best-effort transitive closure accumulated before
	// the failure. Nil for plain path lookups.
	Partial []string

	// Unavailable lists the dependency names that could not be resolved.
	Unavailable []string

	err error
}

// NewNotFound builds a NotFoundError for a plain path lookup miss.
func NewNotFound(name string, searchPaths []string) *NotFoundError {
	return &NotFoundError{
		Name:        name,
		SearchPaths: searchPaths,
		err: errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("resource %q not found on search paths [%s]", name, strings.Join(searchPaths, ", "))),
	}
}

// NewDependsNotFound builds a NotFoundError for a dependency closure that
// could not be fully resolved. partial and unavailable are retained for
// callers that want the best-effort result.
func NewDependsNotFound(name string, searchPaths, partial, unavailable []string) *NotFoundError {
	return &NotFoundError{
		Name:        name,
		SearchPaths: searchPaths,
		Partial:     partial,
		Unavailable: unavailable,
		err: errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("dependencies %v of %q not available on search paths [%s]",
				unavailable, name, strings.Join(searchPaths, ", "))),
	}
}

func (e *NotFoundError) Error() string { return e.err.Error() }

// Unwrap exposes the underlying coded error so errbuilder.CodeOf keeps
// classifying NotFoundError as CodeNotFound.
func (e *NotFoundError) Unwrap() error { return e.err }

// AddUnavailable records another unresolved name, suppressing duplicates.
func (e *NotFoundError) AddUnavailable(name string) {
	for _, existing := range e.Unavailable {
		if existing == name {
			return
		}
	}
	e.Unavailable = append(e.Unavailable, name)
}

// InvalidManifest wraps a manifest parse failure with the offending path.
func InvalidManifest(path string, cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("invalid manifest %s", path)).
		WithCause(cause)
}
