package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Target is what an alias points at: a filesystem path, a dotted module name
// resolved against the loader's search paths, or inline script source (used
// for configurations embedded in a binary). Exactly one of Path, Module, and
// Source must be set for loading; Module may additionally accompany Source as
// a display origin.
type Target struct {
	// Path is a filesystem path to a Lua file.
	Path string

	// Module is a dotted module name (a.b.c), resolved against the loader's
	// search paths. When Source is set, Module is informational only and is
	// used to group the alias in listings.
	Module string

	// Attr names the variable this alias is expected to define. It is the
	// default attribute projection when the alias is loaded through
	// [Loader.LoadAttribute].
	Attr string

	// Source is inline Lua script text executed directly.
	Source string

	// Doc is a one-line description shown by listings.
	Doc string
}

// Origin returns the grouping label for listings: the module prefix for
// module targets, the containing directory for path targets, or "<embedded>".
func (t Target) Origin() string {
	switch {
	case t.Module != "":
		if i := strings.LastIndex(t.Module, "."); i > 0 {
			return t.Module[:i]
		}
		return t.Module
	case t.Path != "":
		return filepath.Dir(t.Path)
	default:
		return "<embedded>"
	}
}

// Registry holds explicit alias tables: group name to alias name to target.
// It replaces any ambient plugin discovery; embedding applications construct
// one and register the configurations they ship.
type Registry struct {
	groups map[string]map[string]Target
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{groups: make(map[string]map[string]Target)}
}

// Register adds an alias under the given group, replacing any previous
// registration of the same name. The target must carry a Path, Module, or
// Source.
func (r *Registry) Register(group, name string, target Target) error {
	if group == "" || name == "" {
		return fmt.Errorf("registering %q/%q: group and name must be non-empty", group, name)
	}
	if target.Path == "" && target.Module == "" && target.Source == "" {
		return fmt.Errorf("registering %q/%q: target has no path, module, or source", group, name)
	}
	aliases := r.groups[group]
	if aliases == nil {
		aliases = make(map[string]Target)
		r.groups[group] = aliases
	}
	aliases[name] = target
	return nil
}

// Lookup returns the target registered under group for name.
func (r *Registry) Lookup(group, name string) (Target, bool) {
	t, ok := r.groups[group][name]
	return t, ok
}

// Names returns the alias names registered under group, sorted.
func (r *Registry) Names(group string) []string {
	aliases := r.groups[group]
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NamesUnder returns the sorted alias names under group whose target origin
// (module name or path) starts with prefix. An empty prefix matches all.
func (r *Registry) NamesUnder(group, prefix string) []string {
	if prefix == "" {
		return r.Names(group)
	}
	var names []string
	for name, t := range r.groups[group] {
		if strings.HasPrefix(t.Module, prefix) || strings.HasPrefix(t.Path, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
