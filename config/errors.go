package config

import (
	"fmt"
	"strings"
)

// ResolutionError reports a reference that matched no filesystem path, no
// registered alias, and no module on the search paths.
type ResolutionError struct {
	Ref   string
	Group string

	// Reason carries detail when an alias dereferenced to a missing target.
	Reason string
}

func (e *ResolutionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot resolve %q: %s", e.Ref, e.Reason)
	}
	if e.Group != "" {
		return fmt.Sprintf("cannot resolve %q: not a file, not an alias in group %q, and not a module on the search paths", e.Ref, e.Group)
	}
	return fmt.Sprintf("cannot resolve %q: not a file and not a module on the search paths", e.Ref)
}

// LoadError reports that a resolved source failed to compile or execute. It
// wraps the underlying Lua error and carries the source label for diagnostics.
type LoadError struct {
	Label string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Label, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// AttributeNotFoundError reports that a requested attribute projection is
// absent from the merged namespace.
type AttributeNotFoundError struct {
	Name    string
	Sources []string
}

func (e *AttributeNotFoundError) Error() string {
	if len(e.Sources) == 0 {
		return fmt.Sprintf("variable %q requested but no configuration sources were given", e.Name)
	}
	return fmt.Sprintf("variable %q is not defined by any of the loaded sources: %s", e.Name, strings.Join(e.Sources, ", "))
}
