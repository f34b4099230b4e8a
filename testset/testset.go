// Package testset turns loaded modules plus registry metadata into an
// ordered, immutable collection of runnable test cases.
package testset

import (
	"fmt"
	"strings"
	"time"

	"github.com/fixturekit/fixturekit/fixture"
	"github.com/fixturekit/fixturekit/registry"
)

// TestID identifies one test case as a path of name components: fixture,
// method, and for parameterized cases the parameter-set index.
type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// Case is one concrete, runnable invocation of a test method with a specific
// argument tuple. Cases are created by Build and are immutable; the flags
// already include anything inherited from the fixture.
type Case struct {
	ID          TestID
	Description string
	New         func() interface{}
	Method      fixture.Method
	Args        []interface{}
	Ignored     bool
	Focused     bool
	Timeout     time.Duration // zero means no watchdog
}

// Set is an ordered sequence of Cases. Insertion order is discovery order:
// module order, then declaration order within each module, then parameter-set
// order. The set is immutable once built.
type Set struct {
	cases []Case
}

func (s *Set) Len() int { return len(s.cases) }

// Cases returns the cases in discovery order. The returned slice is a copy.
func (s *Set) Cases() []Case {
	out := make([]Case, len(s.cases))
	copy(out, s.cases)
	return out
}

// AnyFocused reports whether any case in the set is focused, which switches
// the effective run set to the focused subset.
func (s *Set) AnyFocused() bool {
	for _, c := range s.cases {
		if c.Focused {
			return true
		}
	}
	return false
}

// Build walks every module's exports in order, recognizes fixtures that have
// registry metadata, and expands each annotated method into cases: one per
// parameter set, or a single no-argument case when the method has none.
// Ignored and focused flags propagate from fixture to case by logical OR.
func Build(modules []*fixture.Module, reg *registry.Registry) *Set {
	set := &Set{}
	for _, mod := range modules {
		for _, exp := range mod.Exports {
			fx, ok := exp.Value.(*fixture.Fixture)
			if !ok {
				continue
			}
			fxMeta, ok := reg.Fixture(fx)
			if !ok {
				continue
			}
			for _, method := range fx.Methods {
				mMeta, ok := reg.Method(fx, method.Name)
				if !ok {
					continue
				}
				set.cases = append(set.cases, expand(fx, fxMeta, method, mMeta)...)
			}
		}
	}
	return set
}

func expand(
	fx *fixture.Fixture,
	fxMeta registry.FixtureMeta,
	method fixture.Method,
	mMeta registry.MethodMeta,
) []Case {
	base := Case{
		Description: mMeta.Description.StringValue(),
		New:         fx.New,
		Method:      method,
		Ignored:     fxMeta.Ignored || mMeta.Ignored,
		Focused:     fxMeta.Focused || mMeta.Focused,
		Timeout:     time.Duration(mMeta.TimeoutMS.IntValue()) * time.Millisecond,
	}
	if len(mMeta.ParamSets) == 0 {
		base.ID = TestID{Path: []string{fx.Name, method.Name}}
		return []Case{base}
	}
	cases := make([]Case, 0, len(mMeta.ParamSets))
	for i, params := range mMeta.ParamSets {
		c := base
		c.Args = params
		c.ID = TestID{Path: []string{fx.Name, method.Name, fmt.Sprintf("#%d", i)}}
		cases = append(cases, c)
	}
	return cases
}
