package settings

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// KeyNotFoundError reports a get or delete of a key (or dotted path) that is
// not present in the store.
type KeyNotFoundError struct {
	Key  string
	Path string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("no key %q in settings file %s", e.Key, e.Path)
}

// Store is a nested key/value mapping backed by one TOML file. It is mutated
// in place by callers and persisted only by an explicit Write. Not safe for
// concurrent use.
type Store struct {
	path string
	data map[string]any
	log  *slog.Logger
}

// Option configures Open.
type Option func(*openSettings)

type openSettings struct {
	envVar string
	log    *slog.Logger
}

// WithEnvOverride names an environment variable that, when set and non-empty,
// supplies the backing file path instead of the one given to Open.
func WithEnvOverride(name string) Option {
	return func(s *openSettings) {
		s.envVar = name
	}
}

// WithLogger sets the logger used for store diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(s *openSettings) {
		s.log = log
	}
}

// Open creates a Store for the given path and loads the backing file if it
// exists. A relative path resolves under os.UserConfigDir; a leading ~
// expands to the user home. A missing file is not an error.
func Open(path string, opts ...Option) (*Store, error) {
	settings := openSettings{log: slog.Default()}
	for _, opt := range opts {
		opt(&settings)
	}

	if settings.envVar != "" {
		if override := os.Getenv(settings.envVar); override != "" {
			path = override
		}
	}

	resolved, err := resolvePath(path)
	if err != nil {
		return nil, err
	}

	s := &Store{
		path: resolved,
		data: make(map[string]any),
		log:  settings.log,
	}
	s.log.Debug("settings file", "path", resolved)

	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

func resolvePath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(dir, path), nil
}

// Path returns the resolved backing file path.
func (s *Store) Path() string { return s.path }

// Reload re-reads the backing file, replacing all in-memory values. A missing
// file resets the store to empty.
func (s *Store) Reload() error {
	s.data = make(map[string]any)

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Debug("settings file does not exist, starting empty", "path", s.path)
			return nil
		}
		return fmt.Errorf("reading settings file: %w", err)
	}
	if err := toml.Unmarshal(raw, &s.data); err != nil {
		return fmt.Errorf("parsing %s: %w", s.path, err)
	}
	return nil
}

// Get returns the value at key. A key containing dots is first tried
// literally at the top level, then traversed through nested sections.
func (s *Store) Get(key string) (any, error) {
	if v, ok := s.data[key]; ok {
		return v, nil
	}
	parts := strings.Split(key, ".")
	if len(parts) == 1 {
		return nil, &KeyNotFoundError{Key: key, Path: s.path}
	}
	section, ok := s.section(parts[:len(parts)-1])
	if !ok {
		return nil, &KeyNotFoundError{Key: key, Path: s.path}
	}
	v, ok := section[parts[len(parts)-1]]
	if !ok {
		return nil, &KeyNotFoundError{Key: key, Path: s.path}
	}
	return v, nil
}

// Set stores a value at key, creating intermediate sections for each dotted
// component. Setting through an existing non-section value is an error.
func (s *Store) Set(key string, value any) error {
	parts := strings.Split(key, ".")
	section := s.data
	for i, part := range parts[:len(parts)-1] {
		existing, ok := section[part]
		if !ok {
			next := make(map[string]any)
			section[part] = next
			section = next
			continue
		}
		next, ok := existing.(map[string]any)
		if !ok {
			return fmt.Errorf("cannot set %q: %q is a value, not a section",
				key, strings.Join(parts[:i+1], "."))
		}
		section = next
	}
	section[parts[len(parts)-1]] = value
	return nil
}

// Delete removes the value or section at key. Like Get, a dotted key is
// tried literally before being traversed.
func (s *Store) Delete(key string) error {
	if _, ok := s.data[key]; ok {
		delete(s.data, key)
		return nil
	}
	parts := strings.Split(key, ".")
	if len(parts) == 1 {
		return &KeyNotFoundError{Key: key, Path: s.path}
	}
	section, ok := s.section(parts[:len(parts)-1])
	if !ok {
		return &KeyNotFoundError{Key: key, Path: s.path}
	}
	last := parts[len(parts)-1]
	if _, ok := section[last]; !ok {
		return &KeyNotFoundError{Key: key, Path: s.path}
	}
	delete(section, last)
	return nil
}

func (s *Store) section(parts []string) (map[string]any, bool) {
	cur := s.data
	for _, part := range parts {
		next, ok := cur[part].(map[string]any)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Len returns the number of top-level keys and sections.
func (s *Store) Len() int { return len(s.data) }

// Keys returns the top-level keys and section names, sorted.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String renders the current in-memory mapping as TOML.
func (s *Store) String() string {
	raw, err := toml.Marshal(s.data)
	if err != nil {
		return fmt.Sprintf("<unserializable settings: %v>", err)
	}
	return string(raw)
}

// Write serializes the in-memory mapping over the backing file,
// unconditionally. Any existing file is first renamed to a "~" backup.
// Parent directories are created as needed.
func (s *Store) Write() error {
	raw, err := toml.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("serializing settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		backup := s.path + "~"
		s.log.Debug("backing up settings file", "from", s.path, "to", backup)
		if err := os.Rename(s.path, backup); err != nil {
			return fmt.Errorf("backing up settings file: %w", err)
		}
	}

	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}
	s.log.Info("wrote settings", "path", s.path)
	return nil
}
