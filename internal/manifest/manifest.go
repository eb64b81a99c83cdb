// Package manifest describes the external dependency contract of network-monitor:
// its package identity, the generator used for dependency discovery, the pinned
// requirements and the default build options.
//
// The manifest is static data. It is never mutated at run time; Default returns a
// fresh copy on every call so callers may modify what they get.
package manifest

import (
	"errors"
	"fmt"
	"strings"

	version "github.com/hashicorp/go-version"
)

// Requirement is a single pinned dependency, written as "name/version".
type Requirement struct {
	Name    string `json:"name" yaml:"name" toml:"name"`
	Version string `json:"version" yaml:"version" toml:"version"`
}

func (r Requirement) String() string { return r.Name + "/" + r.Version }

// Option is a default build option for one dependency, written as "package:key=value".
type Option struct {
	Package string `json:"package" yaml:"package" toml:"package"`
	Key     string `json:"key" yaml:"key" toml:"key"`
	Value   string `json:"value" yaml:"value" toml:"value"`
}

func (o Option) String() string { return o.Package + ":" + o.Key + "=" + o.Value }

// Manifest is the declarative package description consumed at build-configuration time.
type Manifest struct {
	Name           string        `json:"name" yaml:"name" toml:"name"`
	Version        string        `json:"version" yaml:"version" toml:"version"`
	Generators     []string      `json:"generators" yaml:"generators" toml:"generators"`
	Requires       []Requirement `json:"requires" yaml:"requires" toml:"requires"`
	DefaultOptions []Option      `json:"default_options" yaml:"default_options" toml:"default_options"`
}

var (
	ErrEmptyName       = errors.New("manifest: empty package name")
	ErrEmptyVersion    = errors.New("manifest: empty package version")
	ErrNoGenerator     = errors.New("manifest: no generator declared")
	ErrNotPinned       = errors.New("manifest: requirement is not pinned to an exact version")
	ErrDuplicate       = errors.New("manifest: duplicate requirement")
	ErrUnknownPackage  = errors.New("manifest: option names a package that is not required")
	ErrMalformedOption = errors.New("manifest: malformed option")
	ErrMalformedReq    = errors.New("manifest: malformed requirement")
)

// Default returns the network-monitor manifest.
func Default() Manifest {
	return Manifest{
		Name:       "network-monitor",
		Version:    "0.1.0",
		Generators: []string{"cmake_find_package"},
		Requires: []Requirement{
			{Name: "boost", Version: "1.74.0"},
			{Name: "openssl", Version: "1.1.1i"},
			{Name: "libcurl", Version: "7.74.0"},
			{Name: "nlohmann_json", Version: "3.9.1"},
			{Name: "spdlog", Version: "1.8.5"},
		},
		DefaultOptions: []Option{
			{Package: "boost", Key: "shared", Value: "False"},
		},
	}
}

// ParseRequirement parses "name/version".
func ParseRequirement(s string) (Requirement, error) {
	name, ver, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || name == "" || ver == "" {
		return Requirement{}, fmt.Errorf("%w: %q", ErrMalformedReq, s)
	}
	return Requirement{Name: name, Version: ver}, nil
}

// ParseOption parses "package:key=value".
func ParseOption(s string) (Option, error) {
	pkg, rest, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || pkg == "" {
		return Option{}, fmt.Errorf("%w: %q", ErrMalformedOption, s)
	}
	key, val, ok := strings.Cut(rest, "=")
	if !ok || key == "" || val == "" {
		return Option{}, fmt.Errorf("%w: %q", ErrMalformedOption, s)
	}
	return Option{Package: pkg, Key: key, Value: val}, nil
}

// Validate checks the structural invariants of the manifest.
func (m Manifest) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(m.Version) == "" {
		return ErrEmptyVersion
	}
	if len(m.Generators) == 0 {
		return ErrNoGenerator
	}
	seen := make(map[string]bool, len(m.Requires))
	for _, r := range m.Requires {
		if r.Name == "" {
			return fmt.Errorf("%w: %q", ErrMalformedReq, r.String())
		}
		if seen[r.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicate, r.Name)
		}
		seen[r.Name] = true
		if !isPinned(r.Version) {
			return fmt.Errorf("%w: %s", ErrNotPinned, r.String())
		}
	}
	for _, o := range m.DefaultOptions {
		if o.Package == "" || o.Key == "" || o.Value == "" {
			return fmt.Errorf("%w: %q", ErrMalformedOption, o.String())
		}
		if !seen[o.Package] {
			return fmt.Errorf("%w: %s", ErrUnknownPackage, o.Package)
		}
	}
	return nil
}

// isPinned reports whether v is one exact version rather than a range or constraint.
func isPinned(v string) bool {
	if v == "" || strings.ContainsAny(v, "<>=~^*[], ") {
		return false
	}
	parsed, err := version.NewVersion(v)
	if err != nil {
		return false
	}
	return parsed.Original() == v
}

// Requirement returns the requirement with the given package name.
func (m Manifest) Requirement(name string) (Requirement, bool) {
	for _, r := range m.Requires {
		if r.Name == name {
			return r, true
		}
	}
	return Requirement{}, false
}

// Option returns the default option set for pkg and key.
func (m Manifest) Option(pkg, key string) (Option, bool) {
	for _, o := range m.DefaultOptions {
		if o.Package == pkg && o.Key == key {
			return o, true
		}
	}
	return Option{}, false
}

// IsStatic reports whether pkg is forced to build as a static (non-shared) artifact.
func (m Manifest) IsStatic(pkg string) bool {
	o, ok := m.Option(pkg, "shared")
	return ok && strings.EqualFold(o.Value, "false")
}
