package runner

import (
	"time"

	"github.com/fixturekit/fixturekit/logging"
	"github.com/fixturekit/fixturekit/match"
	"github.com/fixturekit/fixturekit/testset"
)

// State is the terminal state of one test case.
type State int

const (
	Pending State = iota
	Running
	Passed
	Failed  // an assertion raised a MatchError
	Errored // anything else went wrong, including timeouts and panics
	Ignored // excluded from the effective run set; never invoked
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	case Errored:
		return "errored"
	case Ignored:
		return "ignored"
	}
	return "unknown"
}

// Outcome is the result record for one case. Failure is set only for Failed,
// Err only for Errored.
type Outcome struct {
	ID          testset.TestID
	State       State
	Elapsed     time.Duration
	Failure     *match.MatchError
	Err         error
	DebugOutput logging.CapturedOutput
}

// Results aggregates one Outcome per case, in set order, plus any load
// failures reported against their files rather than against cases.
type Results struct {
	Outcomes     []Outcome
	LoadFailures []error
}

func (r Results) OK() bool {
	for _, o := range r.Outcomes {
		if o.State == Failed || o.State == Errored {
			return false
		}
	}
	return len(r.LoadFailures) == 0
}

// Count returns how many outcomes are in the given state.
func (r Results) Count(state State) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.State == state {
			n++
		}
	}
	return n
}

// Failures returns the outcomes that ended Failed or Errored, in set order.
func (r Results) Failures() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.State == Failed || o.State == Errored {
			out = append(out, o)
		}
	}
	return out
}
