// Package match implements the assertion DSL used inside test method bodies.
//
// Expect wraps a value in a Matcher. Each comparison method on the Matcher
// evaluates a predicate against the wrapped value and fails exactly when the
// predicate disagrees with the matcher's current polarity, so every operation
// has a working negated form via Not. Failures are raised by panicking with a
// *MatchError, which the runner recognizes as an assertion failure (as
// opposed to an unexpected error); misusing a matcher (for instance calling
// ToMatch on a non-string) raises a *UsageError instead, which the runner
// reports as an error rather than a failure.
//
// The package also provides the call-recording Spy and property-recording
// PropertySpy types that the ToHaveBeenCalled/ToHaveBeenSet family of
// operations inspect.
package match
