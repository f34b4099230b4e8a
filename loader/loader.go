// Package loader resolves file-path patterns into loaded test modules.
//
// Pattern resolution and module loading are both collaborator interfaces so
// that the framework core stays independent of how test files reach it;
// GlobResolver and StaticLoader are the stock implementations.
package loader

import (
	"errors"
	"fmt"

	"github.com/fixturekit/fixturekit/fixture"
)

// PathResolver resolves path patterns to file paths, in deterministic order.
type PathResolver interface {
	Resolve(patterns []string) ([]string, error)
}

// ModuleLoader loads one test file by path. Implementations must distinguish
// an unknown path (an error wrapping ErrNotFound) from a failure inside the
// module itself (any other error).
type ModuleLoader interface {
	Load(path string) (*fixture.Module, error)
}

// ErrNotFound means a resolved path has no module behind it.
var ErrNotFound = errors.New("module not found")

// LoadError reports a failure to load one resolved path. One file failing to
// load never aborts the rest of the load pass.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s: %s", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Loader feeds resolved, de-duplicated paths through a ModuleLoader.
type Loader struct {
	resolver PathResolver
	modules  ModuleLoader
}

func New(resolver PathResolver, modules ModuleLoader) *Loader {
	return &Loader{resolver: resolver, modules: modules}
}

// LoadAll resolves the patterns and loads every resulting path once,
// preserving resolution order. Duplicate resolved paths are dropped before
// loading so a file matched by two patterns registers only once. Each path
// that fails to load contributes one *LoadError to the returned list, and
// loading continues with the remaining paths.
func (l *Loader) LoadAll(patterns []string) ([]*fixture.Module, []error) {
	paths, err := l.resolver.Resolve(patterns)
	if err != nil {
		return nil, []error{err}
	}
	seen := make(map[string]bool, len(paths))
	var modules []*fixture.Module
	var failures []error
	for _, path := range paths {
		if seen[path] {
			continue
		}
		seen[path] = true
		mod, err := l.modules.Load(path)
		if err != nil {
			failures = append(failures, &LoadError{Path: path, Err: err})
			continue
		}
		modules = append(modules, mod)
	}
	return modules, failures
}
