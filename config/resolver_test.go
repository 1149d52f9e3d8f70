package config

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestSplitAttr(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		base string
		attr string
	}{
		{"no suffix", "configs/model.lua", "configs/model.lua", ""},
		{"simple suffix", "configs/model.lua:model", "configs/model.lua", "model"},
		{"module suffix", "jobs.train:epochs", "jobs.train", "epochs"},
		{"non-identifier suffix", "host:8080/path", "host:8080/path", ""},
		{"trailing colon", "model.lua:", "model.lua:", ""},
		{"leading colon", ":attr", ":attr", ""},
		{"windows drive", `C:\configs\model.lua`, `C:\configs\model.lua`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, attr := splitAttr(tt.ref)
			if base != tt.base || attr != tt.attr {
				t.Errorf("splitAttr(%q) = (%q, %q), want (%q, %q)",
					tt.ref, base, attr, tt.base, tt.attr)
			}
		})
	}
}

func TestResolve_PathBeatsAlias(t *testing.T) {
	dir := t.TempDir()
	onDisk := writeScript(t, dir, "shared", "from_file = true\n")
	aliased := writeScript(t, dir, "aliased.lua", "from_alias = true\n")

	reg := NewRegistry()
	if err := reg.Register("g", onDisk, Target{Path: aliased}); err != nil {
		t.Fatal(err)
	}
	loader := NewLoader(WithRegistry(reg))

	r, err := loader.Resolve(onDisk, "g")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if r.Path != onDisk {
		t.Errorf("resolved path = %q, want the filesystem path %q", r.Path, onDisk)
	}
}

func TestResolve_AliasBeatsModule(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "shared.lua", "from_module = true\n")
	aliased := writeScript(t, dir, "aliased.lua", "from_alias = true\n")

	reg := NewRegistry()
	if err := reg.Register("g", "shared", Target{Path: aliased}); err != nil {
		t.Fatal(err)
	}
	loader := NewLoader(WithRegistry(reg), WithSearchPaths(dir))

	r, err := loader.Resolve("shared", "g")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if r.Path != aliased {
		t.Errorf("resolved path = %q, want the alias target %q", r.Path, aliased)
	}
}

func TestResolve_AliasAttrDefault(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "model.lua", "model = 1\nother = 2\n")

	reg := NewRegistry()
	if err := reg.Register("g", "lenet", Target{Path: path, Attr: "model"}); err != nil {
		t.Fatal(err)
	}
	loader := NewLoader(WithRegistry(reg))

	r, err := loader.Resolve("lenet", "g")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if r.Attr != "model" {
		t.Errorf("Attr = %q, want %q (alias default)", r.Attr, "model")
	}

	// A reference suffix wins over the alias default.
	r, err = loader.Resolve("lenet:other", "g")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if r.Attr != "other" {
		t.Errorf("Attr = %q, want %q (suffix override)", r.Attr, "other")
	}
}

func TestResolve_AliasToMissingFile(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register("g", "gone", Target{Path: "/nonexistent/gone.lua"}); err != nil {
		t.Fatal(err)
	}
	loader := NewLoader(WithRegistry(reg))

	_, err := loader.Resolve("gone", "g")
	var re *ResolutionError
	if !errors.As(err, &re) {
		t.Fatalf("error = %v, want ResolutionError", err)
	}
	if re.Reason == "" {
		t.Error("ResolutionError for a dangling alias should carry a reason")
	}
}

func TestResolve_ModuleLabel(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, filepath.Join("pkg", "sub.lua"), "x = 1\n")

	loader := NewLoader(WithSearchPaths(dir))
	r, err := loader.Resolve("pkg.sub", "")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if r.Label != "pkg.sub" {
		t.Errorf("Label = %q, want %q", r.Label, "pkg.sub")
	}
	if r.Path != filepath.Join(dir, "pkg", "sub.lua") {
		t.Errorf("Path = %q, want %q", r.Path, filepath.Join(dir, "pkg", "sub.lua"))
	}
}

func TestResolve_SearchPathOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	wantPath := writeScript(t, first, "mod.lua", "x = 1\n")
	writeScript(t, second, "mod.lua", "x = 2\n")

	loader := NewLoader(WithSearchPaths(first, second))
	r, err := loader.Resolve("mod", "")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if r.Path != wantPath {
		t.Errorf("Path = %q, want first search path hit %q", r.Path, wantPath)
	}
}

func TestResolve_Unknown(t *testing.T) {
	loader := NewLoader()
	_, err := loader.Resolve("does.not.exist", "nogroup")
	var re *ResolutionError
	if !errors.As(err, &re) {
		t.Fatalf("error = %v, want ResolutionError", err)
	}
	if re.Ref != "does.not.exist" || re.Group != "nogroup" {
		t.Errorf("ResolutionError = %+v, want ref and group preserved", re)
	}
}
