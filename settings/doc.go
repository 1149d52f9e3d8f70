// Package settings implements a persistent per-user key/value store backed by
// a single TOML file.
//
// A [Store] loads its backing file eagerly on [Open] (a missing file yields an
// empty store), exposes get/set/delete access with dotted-path traversal into
// nested sections, and only touches disk again on an explicit [Store.Write].
// Relative paths resolve under the platform config directory
// (os.UserConfigDir), a leading ~ expands to the user home, and an optional
// environment variable can override the path entirely.
//
// There is no file locking and no merging with concurrent external edits:
// Write replaces the file unconditionally, after renaming any existing file
// to a "~" backup.
package settings
