package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Resolved is the outcome of resolving a reference: a concrete loadable
// (file path or inline source) plus a display label used in diagnostics.
type Resolved struct {
	// Path is the file to execute. Empty when Source is set.
	Path string

	// Source is inline script text to execute, for aliases registered with
	// embedded source.
	Source string

	// Label identifies the source in diagnostics and error messages.
	Label string

	// Attr is the attribute name this resolution projects, from a ":attr"
	// reference suffix or the alias's declared attribute. Empty when neither
	// applies.
	Attr string

	// cacheable marks module and alias resolutions, whose namespaces are
	// loaded at most once per process. Direct file paths always re-execute.
	cacheable bool
	cacheKey  string
}

// Resolve determines what a reference names, trying in order: an existing
// filesystem path, an alias registered under group (when group is non-empty),
// and a dotted module name against the loader's search paths. A ":attr"
// suffix naming a valid identifier is split off and carried as the attribute
// override.
func (l *Loader) Resolve(ref, group string) (Resolved, error) {
	base, attr := splitAttr(ref)

	if isFile(base) {
		return Resolved{Path: base, Label: base, Attr: attr}, nil
	}

	if group != "" {
		if target, ok := l.registry.Lookup(group, base); ok {
			return l.resolveTarget(base, group, target, attr)
		}
	}

	if path, ok := l.findModule(base); ok {
		return Resolved{
			Path:      path,
			Label:     base,
			Attr:      attr,
			cacheable: true,
			cacheKey:  path,
		}, nil
	}

	return Resolved{}, &ResolutionError{Ref: ref, Group: group}
}

// resolveTarget dereferences a registered alias. The reference's own ":attr"
// suffix wins over the alias's declared attribute.
func (l *Loader) resolveTarget(name, group string, target Target, attr string) (Resolved, error) {
	if attr == "" {
		attr = target.Attr
	}
	r := Resolved{
		Label:     name,
		Attr:      attr,
		cacheable: true,
	}

	switch {
	case target.Source != "":
		r.Source = target.Source
		r.cacheKey = "alias:" + group + "/" + name
	case target.Path != "":
		if !isFile(target.Path) {
			return Resolved{}, &ResolutionError{
				Ref:    name,
				Group:  group,
				Reason: "alias points to " + target.Path + ", which does not exist",
			}
		}
		r.Path = target.Path
		r.cacheKey = target.Path
	default:
		path, ok := l.findModule(target.Module)
		if !ok {
			return Resolved{}, &ResolutionError{
				Ref:    name,
				Group:  group,
				Reason: "alias points to module " + target.Module + ", which is not on the search paths",
			}
		}
		r.Path = path
		r.cacheKey = path
	}
	return r, nil
}

// findModule maps a dotted module name to a file on the search paths:
// a.b.c resolves to <searchpath>/a/b/c.lua, first hit wins.
func (l *Loader) findModule(name string) (string, bool) {
	if name == "" || !isModuleName(name) {
		return "", false
	}
	rel := filepath.FromSlash(strings.ReplaceAll(name, ".", "/")) + ".lua"
	for _, dir := range l.searchPaths {
		path := filepath.Join(dir, rel)
		if isFile(path) {
			return path, true
		}
	}
	return "", false
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// splitAttr splits a trailing ":attr" suffix off a reference. The suffix is
// only honored when it is a plain identifier, so Windows drive letters and
// paths with colons pass through untouched.
func splitAttr(ref string) (base, attr string) {
	i := strings.LastIndex(ref, ":")
	if i <= 0 || i == len(ref)-1 {
		return ref, ""
	}
	if !isIdentifier(ref[i+1:]) {
		return ref, ""
	}
	return ref[:i], ref[i+1:]
}

func isIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return s != ""
}

func isModuleName(s string) bool {
	for _, part := range strings.Split(s, ".") {
		if !isIdentifier(part) {
			return false
		}
	}
	return true
}
