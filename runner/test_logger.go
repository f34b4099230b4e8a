package runner

import (
	"github.com/fixturekit/fixturekit/testset"
)

// TestLogger receives progress events as the runner works through a set.
type TestLogger interface {
	TestStarted(id testset.TestID)
	TestError(id testset.TestID, err error)
	TestFinished(outcome Outcome)
	TestSkipped(id testset.TestID, reason string)
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(testset.TestID)         {}
func (n nullTestLogger) TestError(testset.TestID, error)    {}
func (n nullTestLogger) TestFinished(Outcome)               {}
func (n nullTestLogger) TestSkipped(testset.TestID, string) {}
