// Command fixturekit discovers the test modules registered with the default
// loader, expands them into a test set, runs it, and prints the results.
// Test packages link themselves in with blank imports and register their
// modules at init time via loader.Register.
package main

import (
	"fmt"
	"os"

	"github.com/fixturekit/fixturekit/loader"
	"github.com/fixturekit/fixturekit/registry"
	"github.com/fixturekit/fixturekit/runner"
	"github.com/fixturekit/fixturekit/testset"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	modules, loadFailures := loader.New(loader.Default, loader.Default).LoadAll(params.patterns)
	set := testset.Build(modules, registry.Default)

	if params.list {
		for _, c := range set.Cases() {
			fmt.Println(c.ID)
		}
		reportLoadFailures(loadFailures)
		if len(loadFailures) > 0 {
			os.Exit(1)
		}
		return
	}

	if params.filters.IsDefined() {
		printFilterDescription(params.filters)
	}
	fmt.Printf("Running %d test cases\n\n", set.Len())

	testLogger := &ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}
	results := runner.Run(set, runner.Options{
		Filter: params.filters.AsFilter,
		Logger: testLogger,
	})
	results.LoadFailures = loadFailures

	fmt.Println()
	printResults(results, params.patterns)
	if !results.OK() {
		os.Exit(1)
	}
}

func printFilterDescription(filters runner.RegexFilters) {
	fmt.Println("Some tests will be skipped based on the filter criteria for this test run:")
	if filters.MustMatch.IsDefined() {
		fmt.Printf("  skip any not matching %s\n", filters.MustMatch)
	}
	if filters.MustNotMatch.IsDefined() {
		fmt.Printf("  skip any matching %s\n", filters.MustNotMatch)
	}
	fmt.Println()
}
