// Package config resolves and chain-loads Lua configuration sources into a
// merged variable namespace.
//
// A reference names a configuration source in one of three forms, tried in
// order: an existing filesystem path, an alias registered under a named group
// in a [Registry], or a dotted module name resolved against the loader's
// search paths (a.b.c maps to a/b/c.lua). Each resolved source is executed in
// a fresh, isolated Lua state and its top-level bindings are captured into a
// [Namespace]. Loading a chain of references merges the namespaces in input
// order with strict last-write-wins override.
//
// Use [NewLoader] to build a [Loader], [Loader.Load] to merge a chain, and
// [Loader.LoadAttribute] to project a single variable out of the merge.
package config
