package runner

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/fixturekit/fixturekit/fixture"
	"github.com/fixturekit/fixturekit/match"
	"github.com/fixturekit/fixturekit/registry"
	"github.com/fixturekit/fixturekit/testset"
)

// testFixture builds a one-fixture set whose method bodies are supplied by
// the caller, in declaration order.
type setBuilder struct {
	reg     *registry.Registry
	fx      *fixture.Fixture
	fxMeta  registry.FixtureMeta
	methods []fixture.Method
	meta    map[string]registry.MethodMeta
}

func newSetBuilder(name string) *setBuilder {
	return &setBuilder{
		reg:  registry.New(),
		fx:   &fixture.Fixture{Name: name, New: func() interface{} { return &struct{}{} }},
		meta: map[string]registry.MethodMeta{},
	}
}

func (b *setBuilder) method(name string, body func(args []interface{}), meta registry.MethodMeta) *setBuilder {
	b.methods = append(b.methods, fixture.Method{
		Name: name,
		Func: func(instance interface{}, args []interface{}) { body(args) },
	})
	b.meta[name] = meta
	return b
}

func (b *setBuilder) build() *testset.Set {
	b.fx.Methods = b.methods
	b.reg.AttachFixture(b.fx, b.fxMeta)
	for name, meta := range b.meta {
		b.reg.AttachMethod(b.fx, name, meta)
	}
	mod := &fixture.Module{
		Path:    "test",
		Exports: []fixture.Export{{Name: b.fx.Name, Value: b.fx}},
	}
	return testset.Build([]*fixture.Module{mod}, b.reg)
}

func states(results Results) []State {
	var out []State
	for _, o := range results.Outcomes {
		out = append(out, o.State)
	}
	return out
}

func TestOutcomeClassification(t *testing.T) {
	set := newSetBuilder("Fx").
		method("passes", func(args []interface{}) {}, registry.MethodMeta{}).
		method("fails", func(args []interface{}) { match.Expect(1).ToBe(2) }, registry.MethodMeta{}).
		method("errors", func(args []interface{}) { panic(errors.New("boom")) }, registry.MethodMeta{}).
		method("misuses matcher", func(args []interface{}) { match.Expect(42).ToThrow() }, registry.MethodMeta{}).
		build()

	results := Run(set, Options{})
	require.Equal(t, []State{Passed, Failed, Errored, Errored}, states(results))
	assert.False(t, results.OK())

	failed := results.Outcomes[1]
	require.NotNil(t, failed.Failure)
	assert.Equal(t, match.KindToBe, failed.Failure.Kind)
	assert.Equal(t, 1, failed.Failure.Actual)
	assert.Equal(t, 2, failed.Failure.Expected)
	assert.Nil(t, failed.Err)

	errored := results.Outcomes[2]
	require.Nil(t, errored.Failure)
	require.Error(t, errored.Err)
	assert.Contains(t, errored.Err.Error(), "boom")

	misused := results.Outcomes[3]
	var usage *match.UsageError
	require.True(t, errors.As(misused.Err, &usage), "matcher misuse is an error, not a failure")
}

func TestResultOrderEqualsSetOrderAndRunContinuesPastFailures(t *testing.T) {
	var invoked []string
	set := newSetBuilder("Fx").
		method("first", func(args []interface{}) {
			invoked = append(invoked, "first")
			panic("unexpected")
		}, registry.MethodMeta{}).
		method("second", func(args []interface{}) {
			invoked = append(invoked, "second")
			match.Expect(true).ToBe(false)
		}, registry.MethodMeta{}).
		method("third", func(args []interface{}) {
			invoked = append(invoked, "third")
		}, registry.MethodMeta{}).
		build()

	results := Run(set, Options{})
	assert.Equal(t, []string{"first", "second", "third"}, invoked)
	assert.Equal(t, []State{Errored, Failed, Passed}, states(results))
	assert.Equal(t, "Fx/first", results.Outcomes[0].ID.String())
	assert.Equal(t, "Fx/second", results.Outcomes[1].ID.String())
	assert.Equal(t, "Fx/third", results.Outcomes[2].ID.String())
}

func TestIgnoredFixtureCasesAreNeverInvoked(t *testing.T) {
	invoked := false
	b := newSetBuilder("Fx")
	b.fxMeta = registry.FixtureMeta{Ignored: true}
	set := b.
		method("never runs", func(args []interface{}) { invoked = true }, registry.MethodMeta{}).
		method("never runs either", func(args []interface{}) { invoked = true }, registry.MethodMeta{}).
		build()

	results := Run(set, Options{})
	assert.False(t, invoked)
	assert.Equal(t, []State{Ignored, Ignored}, states(results))
	assert.True(t, results.OK(), "ignored cases do not fail the run")
}

func TestFocusNarrowsTheRunToFocusedCases(t *testing.T) {
	var invoked []string
	set := newSetBuilder("Fx").
		method("unfocused", func(args []interface{}) { invoked = append(invoked, "unfocused") }, registry.MethodMeta{}).
		method("focused", func(args []interface{}) { invoked = append(invoked, "focused") },
			registry.MethodMeta{Focused: true}).
		method("ignored and focused", func(args []interface{}) { invoked = append(invoked, "both") },
			registry.MethodMeta{Focused: true, Ignored: true}).
		build()

	results := Run(set, Options{})
	assert.Equal(t, []string{"focused", "both"}, invoked,
		"focus wins over ignore when both are set")
	assert.Equal(t, []State{Ignored, Passed, Passed}, states(results))
}

func TestFilterExcludedCasesAreIgnoredButStillReported(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustNotMatch.Set("second"))

	set := newSetBuilder("Fx").
		method("first", func(args []interface{}) {}, registry.MethodMeta{}).
		method("second", func(args []interface{}) { t.Error("should not run") }, registry.MethodMeta{}).
		build()

	results := Run(set, Options{Filter: filters.AsFilter})
	assert.Equal(t, []State{Passed, Ignored}, states(results))
}

type hookedFixture struct {
	events *[]string
}

func (f *hookedFixture) SetUp()    { *f.events = append(*f.events, "setup") }
func (f *hookedFixture) TearDown() { *f.events = append(*f.events, "teardown") }

func hookedSet(events *[]string, body func()) *testset.Set {
	reg := registry.New()
	fx := &fixture.Fixture{
		Name: "Hooked",
		New:  func() interface{} { return &hookedFixture{events: events} },
		Methods: []fixture.Method{{
			Name: "method",
			Func: func(instance interface{}, args []interface{}) {
				*events = append(*events, "method")
				body()
			},
		}},
	}
	reg.AttachFixture(fx, registry.FixtureMeta{})
	reg.AttachMethod(fx, "method", registry.MethodMeta{})
	mod := &fixture.Module{Path: "test", Exports: []fixture.Export{{Name: "Hooked", Value: fx}}}
	return testset.Build([]*fixture.Module{mod}, reg)
}

func TestSetupAndTeardownWrapTheMethod(t *testing.T) {
	var events []string
	results := Run(hookedSet(&events, func() {}), Options{})
	assert.Equal(t, []string{"setup", "method", "teardown"}, events)
	assert.Equal(t, []State{Passed}, states(results))
}

func TestTeardownRunsEvenWhenTheMethodFails(t *testing.T) {
	var events []string
	results := Run(hookedSet(&events, func() { match.Expect(1).ToBe(2) }), Options{})
	assert.Equal(t, []string{"setup", "method", "teardown"}, events)
	assert.Equal(t, []State{Failed}, states(results))
}

func TestTimeoutOverrunBecomesErroredAndRunProceeds(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	set := newSetBuilder("Fx").
		method("hangs", func(args []interface{}) { <-block },
			registry.MethodMeta{TimeoutMS: ldvalue.NewOptionalInt(20)}).
		method("still runs", func(args []interface{}) {}, registry.MethodMeta{}).
		build()

	results := Run(set, Options{})
	require.Equal(t, []State{Errored, Passed}, states(results))
	assert.Contains(t, results.Outcomes[0].Err.Error(), "timed out")
}

func TestElapsedTimeIsRecorded(t *testing.T) {
	set := newSetBuilder("Fx").
		method("sleeps", func(args []interface{}) { time.Sleep(10 * time.Millisecond) }, registry.MethodMeta{}).
		build()

	results := Run(set, Options{})
	require.Len(t, results.Outcomes, 1)
	assert.GreaterOrEqual(t, results.Outcomes[0].Elapsed.Milliseconds(), int64(10))
}

type recordingLogger struct {
	events []string
}

func (l *recordingLogger) TestStarted(id testset.TestID) {
	l.events = append(l.events, "started "+id.String())
}

func (l *recordingLogger) TestError(id testset.TestID, err error) {
	l.events = append(l.events, "error "+id.String())
}

func (l *recordingLogger) TestFinished(outcome Outcome) {
	l.events = append(l.events, "finished "+outcome.ID.String()+" "+outcome.State.String())
}

func (l *recordingLogger) TestSkipped(id testset.TestID, reason string) {
	l.events = append(l.events, "skipped "+id.String()+" ("+reason+")")
}

func TestLoggerReceivesProgressEvents(t *testing.T) {
	set := newSetBuilder("Fx").
		method("passes", func(args []interface{}) {}, registry.MethodMeta{}).
		method("fails", func(args []interface{}) { match.Expect(1).ToBe(2) }, registry.MethodMeta{}).
		method("skipped", func(args []interface{}) {}, registry.MethodMeta{Ignored: true}).
		build()

	logger := &recordingLogger{}
	Run(set, Options{Logger: logger})
	assert.Equal(t, []string{
		"started Fx/passes",
		"finished Fx/passes passed",
		"started Fx/fails",
		"error Fx/fails",
		"finished Fx/fails failed",
		"started Fx/skipped",
		"skipped Fx/skipped (ignored)",
	}, logger.events)
}

func TestResultsAggregation(t *testing.T) {
	set := newSetBuilder("Fx").
		method("passes", func(args []interface{}) {}, registry.MethodMeta{}).
		method("fails", func(args []interface{}) { match.Expect(1).ToBe(2) }, registry.MethodMeta{}).
		method("skipped", func(args []interface{}) {}, registry.MethodMeta{Ignored: true}).
		build()

	results := Run(set, Options{})
	assert.Equal(t, 1, results.Count(Passed))
	assert.Equal(t, 1, results.Count(Failed))
	assert.Equal(t, 1, results.Count(Ignored))
	require.Len(t, results.Failures(), 1)
	assert.Equal(t, "Fx/fails", results.Failures()[0].ID.String())

	ok := Results{Outcomes: []Outcome{{State: Passed}}}
	assert.True(t, ok.OK())
	ok.LoadFailures = []error{errors.New("file missing")}
	assert.False(t, ok.OK(), "load failures fail the run even when every case passed")
}
