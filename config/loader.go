package config

import (
	"fmt"
	"log/slog"
	"maps"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// Loader resolves configuration references and chain-loads them into merged
// namespaces. It is not safe for concurrent use: the module cache is a plain
// map and loading is a synchronous, single-threaded affair.
type Loader struct {
	registry    *Registry
	searchPaths []string
	exclude     func(name string) bool
	log         *slog.Logger
	cache       map[string]Namespace
}

// Option configures a Loader.
type Option func(*Loader)

// WithRegistry sets the alias registry consulted during resolution.
func WithRegistry(r *Registry) Option {
	return func(l *Loader) {
		l.registry = r
	}
}

// WithSearchPaths sets the directories dotted module names resolve against.
func WithSearchPaths(dirs ...string) Option {
	return func(l *Loader) {
		l.searchPaths = append(l.searchPaths, dirs...)
	}
}

// WithExclusion replaces the predicate deciding which captured names are
// dropped from a namespace. The default drops names starting with an
// underscore.
func WithExclusion(exclude func(name string) bool) Option {
	return func(l *Loader) {
		l.exclude = exclude
	}
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(l *Loader) {
		l.log = log
	}
}

// NewLoader returns a Loader with an empty registry, no search paths, and the
// default underscore exclusion.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		registry: NewRegistry(),
		exclude:  func(name string) bool { return strings.HasPrefix(name, "_") },
		log:      slog.Default(),
		cache:    make(map[string]Namespace),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Registry returns the loader's alias registry.
func (l *Loader) Registry() *Registry { return l.registry }

// LoadOption configures a single Load call.
type LoadOption func(*loadSettings)

type loadSettings struct {
	group string
	seed  Namespace
}

// WithGroup scopes alias resolution to the named registry group for this
// call. Without it, references resolve only as paths or module names.
func WithGroup(group string) LoadOption {
	return func(s *loadSettings) {
		s.group = group
	}
}

// WithInitialContext seeds the accumulator before any source is merged.
// Sources still execute isolated; the seed only participates in the merge.
func WithInitialContext(ns Namespace) LoadOption {
	return func(s *loadSettings) {
		s.seed = ns
	}
}

// Load resolves and loads each reference in order, merging the resulting
// namespaces with strict last-write-wins override. It fails on the first
// reference that cannot be resolved or loaded; there are no partial results.
// An empty reference list yields an empty (or seed-only) namespace.
func (l *Loader) Load(refs []string, opts ...LoadOption) (Namespace, error) {
	acc, _, _, err := l.loadChain(refs, opts)
	return acc, err
}

// LoadAttribute loads the chain like [Loader.Load] and returns the named
// variable from the merged result. A ":attr" suffix on a reference overrides
// the name, the last reference's suffix winning. A missing variable (or an
// empty chain) yields an AttributeNotFoundError.
func (l *Loader) LoadAttribute(refs []string, name string, opts ...LoadOption) (any, error) {
	acc, labels, override, err := l.loadChain(refs, opts)
	if err != nil {
		return nil, err
	}
	if override != "" {
		name = override
	}
	v, ok := acc[name]
	if !ok {
		return nil, &AttributeNotFoundError{Name: name, Sources: labels}
	}
	return v, nil
}

func (l *Loader) loadChain(refs []string, opts []LoadOption) (Namespace, []string, string, error) {
	var settings loadSettings
	for _, opt := range opts {
		opt(&settings)
	}

	acc := make(Namespace)
	maps.Copy(acc, settings.seed)

	var labels []string
	var attr string
	for _, ref := range refs {
		resolved, err := l.Resolve(ref, settings.group)
		if err != nil {
			return nil, nil, "", err
		}
		if resolved.Attr != "" {
			attr = resolved.Attr
		}
		ns, err := l.loadOne(resolved)
		if err != nil {
			return nil, nil, "", err
		}
		for k, v := range ns {
			acc[k] = v
		}
		labels = append(labels, resolved.Label)
	}
	return acc, labels, attr, nil
}

// loadOne executes a resolved source in a fresh, isolated state and captures
// its namespace. Module and alias targets are cached by resolved identity, so
// repeated loads do not re-execute; direct file paths always run again.
func (l *Loader) loadOne(r Resolved) (Namespace, error) {
	if r.cacheable {
		if ns, ok := l.cache[r.cacheKey]; ok {
			l.log.Debug("configuration source already loaded", "label", r.Label)
			return maps.Clone(ns), nil
		}
	}

	l.log.Debug("loading configuration source", "label", r.Label)

	L := newState()
	defer L.Close()

	if err := execute(L, r); err != nil {
		return nil, &LoadError{Label: r.Label, Err: err}
	}

	ns := captureGlobals(L, l.exclude)
	if r.cacheable {
		l.cache[r.cacheKey] = maps.Clone(ns)
	}
	return ns, nil
}

// execute runs the source with panic recovery; gopher-lua raises some
// internal failures as panics rather than errors.
func execute(L *lua.LState, r Resolved) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("lua panic: %v", rec)
		}
	}()
	if r.Source != "" {
		return L.DoString(r.Source)
	}
	return L.DoFile(r.Path)
}
