// Package registry stores test metadata out-of-band, keyed by fixture and
// method identity. Test files attach metadata at load time with explicit
// registration calls; discovery reads it back when walking module exports.
// Nothing here mutates the fixture declarations themselves.
package registry

import (
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/fixturekit/fixturekit/fixture"
)

// FixtureMeta marks a fixture as a test fixture. At most one FixtureMeta is
// held per fixture; attaching again overwrites the previous flags.
type FixtureMeta struct {
	Description ldvalue.OptionalString
	Ignored     bool
	Focused     bool
}

// MethodMeta marks a method as a test method. Scalar fields follow last-write
// semantics across repeated attachments, but ParamSets accumulate, so a
// method can gain one parameter set per attachment call.
type MethodMeta struct {
	Description ldvalue.OptionalString
	TimeoutMS   ldvalue.OptionalInt
	ParamSets   [][]interface{}
	Ignored     bool
	Focused     bool
}

type methodKey struct {
	fixture *fixture.Fixture
	method  string
}

// Registry is the metadata store. It is written only while modules load and
// is read-only afterwards, so discovery and execution never need to lock it.
type Registry struct {
	fixtures map[*fixture.Fixture]FixtureMeta
	methods  map[methodKey]MethodMeta
}

// Default is the registry that init-time registration calls write to when no
// explicit registry is in play, in the manner of flag.CommandLine.
var Default = New()

func New() *Registry {
	return &Registry{
		fixtures: make(map[*fixture.Fixture]FixtureMeta),
		methods:  make(map[methodKey]MethodMeta),
	}
}

// AttachFixture records fixture-level metadata. Repeated attachment replaces
// the stored flags (last write wins).
func (r *Registry) AttachFixture(fx *fixture.Fixture, meta FixtureMeta) {
	prev, ok := r.fixtures[fx]
	if ok && !meta.Description.IsDefined() {
		meta.Description = prev.Description
	}
	r.fixtures[fx] = meta
}

// AttachMethod records method-level metadata. Scalar flags and defined
// optionals replace previous values; parameter sets are appended to the
// stored sequence, preserving attachment order.
func (r *Registry) AttachMethod(fx *fixture.Fixture, method string, meta MethodMeta) {
	key := methodKey{fixture: fx, method: method}
	prev, ok := r.methods[key]
	if ok {
		meta.ParamSets = append(prev.ParamSets, meta.ParamSets...)
		if !meta.Description.IsDefined() {
			meta.Description = prev.Description
		}
		if !meta.TimeoutMS.IsDefined() {
			meta.TimeoutMS = prev.TimeoutMS
		}
	}
	r.methods[key] = meta
}

// Fixture returns the metadata attached to a fixture, if any.
func (r *Registry) Fixture(fx *fixture.Fixture) (FixtureMeta, bool) {
	meta, ok := r.fixtures[fx]
	return meta, ok
}

// Method returns the metadata attached to a method, if any.
func (r *Registry) Method(fx *fixture.Fixture, method string) (MethodMeta, bool) {
	meta, ok := r.methods[methodKey{fixture: fx, method: method}]
	return meta, ok
}
