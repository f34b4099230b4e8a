package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/fixturekit/fixturekit/runner"
	"github.com/fixturekit/fixturekit/testset"
)

var (
	passColor  = color.New(color.FgGreen)
	failColor  = color.New(color.FgRed)
	errorColor = color.New(color.FgHiRed)
	skipColor  = color.New(color.FgYellow)
)

type ConsoleTestLogger struct {
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleTestLogger) TestStarted(id testset.TestID) {
	fmt.Printf("[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id testset.TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Printf("  %s\n", line)
	}
}

func (c *ConsoleTestLogger) TestFinished(outcome runner.Outcome) {
	switch outcome.State {
	case runner.Passed:
		passColor.Printf("  PASSED: %s (%s)\n", outcome.ID, outcome.Elapsed)
	case runner.Failed:
		failColor.Printf("  FAILED: %s (%s)\n", outcome.ID, outcome.Elapsed)
	case runner.Errored:
		errorColor.Printf("  ERROR: %s (%s)\n", outcome.ID, outcome.Elapsed)
	}
	failed := outcome.State != runner.Passed
	if len(outcome.DebugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		outcome.DebugOutput.Dump(os.Stdout, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id testset.TestID, reason string) {
	if reason == "" {
		skipColor.Printf("  SKIPPED: %s\n", id)
	} else {
		skipColor.Printf("  SKIPPED: %s (%s)\n", id, reason)
	}
}

func printResults(results runner.Results, patterns []string) {
	reportLoadFailures(results.LoadFailures)

	failures := results.Failures()
	fmt.Printf("%d passed, %d failed, %d errored, %d ignored\n",
		results.Count(runner.Passed),
		results.Count(runner.Failed),
		results.Count(runner.Errored),
		results.Count(runner.Ignored),
	)
	if len(failures) == 0 && len(results.LoadFailures) == 0 {
		passColor.Println("All tests passed")
		return
	}
	for _, outcome := range failures {
		fmt.Println()
		switch outcome.State {
		case runner.Failed:
			failColor.Printf("FAILED: %s\n", outcome.ID)
			fmt.Printf("  %s\n", outcome.Failure)
		case runner.Errored:
			errorColor.Printf("ERROR: %s\n", outcome.ID)
			for _, line := range strings.Split(outcome.Err.Error(), "\n") {
				fmt.Printf("  %s\n", line)
			}
		}
		fmt.Printf("  to rerun: %s\n", rerunCommand(outcome.ID, patterns))
	}
}

func reportLoadFailures(loadFailures []error) {
	for _, err := range loadFailures {
		errorColor.Printf("LOAD ERROR: %s\n", err)
	}
}
