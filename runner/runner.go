// Package runner executes a test set sequentially and aggregates one outcome
// per case.
//
// Each case moves Pending → Running → Passed, Failed, Errored, or Ignored.
// The matcher engine signals an assertion failure by panicking with a
// *match.MatchError; the runner recovers it and marks the case Failed. Any
// other panic, a matcher usage error, or a timeout marks the case Errored.
// One case's outcome never stops the rest of the set from running.
package runner

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/fixturekit/fixturekit/fixture"
	"github.com/fixturekit/fixturekit/logging"
	"github.com/fixturekit/fixturekit/match"
	"github.com/fixturekit/fixturekit/testset"
)

// Options configures one run. A nil Filter runs everything the focus/ignore
// rules allow; a nil Logger discards progress events.
type Options struct {
	Filter Filter
	Logger TestLogger
}

// Run executes the set's cases strictly in order, one at a time. Cases never
// run concurrently, so fixture state and spies are never observed
// mid-mutation by another case.
//
// The effective run set follows the focus rule: if any case in the set is
// focused, exactly the focused cases run; otherwise every case that is not
// ignored runs. Cases outside the effective set, and cases excluded by the
// filter, still get an Ignored outcome so that result order always equals
// set order.
func Run(set *testset.Set, opts Options) Results {
	logger := opts.Logger
	if logger == nil {
		logger = nullTestLogger{}
	}
	anyFocused := set.AnyFocused()

	var results Results
	for _, c := range set.Cases() {
		logger.TestStarted(c.ID)

		if reason, skip := excluded(c, anyFocused, opts.Filter); skip {
			logger.TestSkipped(c.ID, reason)
			results.Outcomes = append(results.Outcomes, Outcome{ID: c.ID, State: Ignored})
			continue
		}

		outcome := runCase(c)
		if outcome.State == Failed {
			logger.TestError(c.ID, outcome.Failure)
		} else if outcome.State == Errored {
			logger.TestError(c.ID, outcome.Err)
		}
		logger.TestFinished(outcome)
		results.Outcomes = append(results.Outcomes, outcome)
	}
	return results
}

func excluded(c testset.Case, anyFocused bool, filter Filter) (string, bool) {
	if anyFocused && !c.Focused {
		return "not focused", true
	}
	if !anyFocused && c.Ignored {
		return "ignored", true
	}
	if filter != nil && !filter(c.ID) {
		return "excluded by filter parameters", true
	}
	return "", false
}

func runCase(c testset.Case) Outcome {
	outcome := Outcome{ID: c.ID, State: Running}
	debugLog := &logging.CapturingLogger{}
	started := time.Now()

	failure, err := invoke(c, debugLog)

	outcome.Elapsed = time.Since(started)
	outcome.DebugOutput = debugLog.Output()
	switch {
	case failure != nil:
		outcome.State = Failed
		outcome.Failure = failure
	case err != nil:
		outcome.State = Errored
		outcome.Err = err
	default:
		outcome.State = Passed
	}
	return outcome
}

// invoke runs one case's full lifecycle. With a timeout configured, the
// lifecycle runs on its own goroutine under a watchdog; an overrun yields an
// error outcome and the run moves on, abandoning the stuck goroutine (there
// is no cancellation primitive).
func invoke(c testset.Case, debugLog logging.Logger) (*match.MatchError, error) {
	if c.Timeout <= 0 {
		return invokeLifecycle(c, debugLog)
	}

	type invocationResult struct {
		failure *match.MatchError
		err     error
	}
	done := make(chan invocationResult, 1)
	go func() {
		failure, err := invokeLifecycle(c, debugLog)
		done <- invocationResult{failure: failure, err: err}
	}()
	select {
	case r := <-done:
		return r.failure, r.err
	case <-time.After(c.Timeout):
		return nil, fmt.Errorf("test timed out after %s", c.Timeout)
	}
}

func invokeLifecycle(c testset.Case, debugLog logging.Logger) (failure *match.MatchError, err error) {
	defer func() {
		if r := recover(); r != nil {
			switch e := r.(type) {
			case *match.MatchError:
				failure = e
			case *match.UsageError:
				err = e
			case error:
				err = fmt.Errorf("unexpected panic in test: %w\n%s", e, string(debug.Stack()))
			default:
				err = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
			}
		}
	}()

	debugLog.Printf("creating %s instance", c.ID.Path[0])
	instance := c.New()

	// Teardown is registered before setup runs so that it fires even when
	// the setup hook or the method panics.
	defer func() {
		if td, ok := instance.(fixture.TearDowner); ok {
			debugLog.Printf("running teardown")
			td.TearDown()
		}
	}()
	if su, ok := instance.(fixture.SetUpper); ok {
		debugLog.Printf("running setup")
		su.SetUp()
	}

	debugLog.Printf("invoking %s with args %v", c.Method.Name, c.Args)
	c.Method.Func(instance, c.Args)
	return nil, nil
}
