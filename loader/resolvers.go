package loader

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/fixturekit/fixturekit/fixture"
	"github.com/fixturekit/fixturekit/registry"
)

// GlobResolver resolves shell-style glob patterns against the file system.
// Matches for each pattern are sorted, so resolution order is deterministic
// for a given set of inputs.
type GlobResolver struct{}

func (GlobResolver) Resolve(patterns []string) ([]string, error) {
	var paths []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad path pattern %q: %w", pattern, err)
		}
		sort.Strings(matches)
		paths = append(paths, matches...)
	}
	return paths, nil
}

// BuildFunc constructs one module, attaching its metadata to the given
// registry as it goes. Returning an error marks the module as failed to
// load.
type BuildFunc func(reg *registry.Registry) (*fixture.Module, error)

// StaticLoader is a ModuleLoader backed by an in-memory path-to-builder
// table. Test packages register their modules at init time; Load then runs
// the builder on first request. Unknown paths fail with ErrNotFound, and a
// builder error is reported as a distinct load-time failure.
type StaticLoader struct {
	reg     *registry.Registry
	entries map[string]BuildFunc
	order   []string
}

func NewStaticLoader(reg *registry.Registry) *StaticLoader {
	return &StaticLoader{reg: reg, entries: make(map[string]BuildFunc)}
}

// Register associates a path with a module builder. Registering the same
// path again replaces the builder.
func (s *StaticLoader) Register(path string, build BuildFunc) {
	if _, ok := s.entries[path]; !ok {
		s.order = append(s.order, path)
	}
	s.entries[path] = build
}

// Paths returns every registered path in registration order.
func (s *StaticLoader) Paths() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s *StaticLoader) Load(path string) (*fixture.Module, error) {
	build, ok := s.entries[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	mod, err := build(s.reg)
	if err != nil {
		return nil, fmt.Errorf("module init failed: %w", err)
	}
	if mod.Path == "" {
		mod.Path = path
	}
	return mod, nil
}

// Resolve makes a StaticLoader usable as its own PathResolver: each pattern
// is matched against registered paths with the same syntax as filepath.Match,
// in registration order. A bare "*" selects every registered path; other
// patterns follow filepath.Match rules, so their wildcards do not cross path
// separators.
func (s *StaticLoader) Resolve(patterns []string) ([]string, error) {
	var paths []string
	for _, pattern := range patterns {
		if pattern == "*" {
			paths = append(paths, s.order...)
			continue
		}
		for _, path := range s.order {
			ok, err := filepath.Match(pattern, path)
			if err != nil {
				return nil, fmt.Errorf("bad path pattern %q: %w", pattern, err)
			}
			if ok || pattern == path {
				paths = append(paths, path)
			}
		}
	}
	return paths, nil
}

// Default is the loader that init-time module registration writes to, wired
// to the default registry.
var Default = NewStaticLoader(registry.Default)

// Register adds a module builder to the default loader.
func Register(path string, build BuildFunc) {
	Default.Register(path, build)
}
