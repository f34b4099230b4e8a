package match

import (
	"fmt"
	"strings"
)

// Kind identifies which matcher operation produced a MatchError.
type Kind string

const (
	KindToBe                 Kind = "ToBe"
	KindToEqual              Kind = "ToEqual"
	KindToMatch              Kind = "ToMatch"
	KindToBeDefined          Kind = "ToBeDefined"
	KindToBeNil              Kind = "ToBeNil"
	KindToBeTruthy           Kind = "ToBeTruthy"
	KindToContain            Kind = "ToContain"
	KindToBeLessThan         Kind = "ToBeLessThan"
	KindToBeGreaterThan      Kind = "ToBeGreaterThan"
	KindToThrow              Kind = "ToThrow"
	KindToThrowError         Kind = "ToThrowError"
	KindToHaveBeenCalled     Kind = "ToHaveBeenCalled"
	KindToHaveBeenCalledWith Kind = "ToHaveBeenCalledWith"
	KindToHaveBeenSet        Kind = "ToHaveBeenSet"
	KindToHaveBeenSetTo      Kind = "ToHaveBeenSetTo"
)

// MatchError is the failure value raised by a matcher operation whose
// predicate contradicted the matcher's polarity. It carries enough structured
// data for a reporter to render a readable diff. It is transient: the runner
// attaches it to the failed case's outcome and nothing persists it.
type MatchError struct {
	Kind        Kind
	Actual      interface{}
	Expected    interface{} // expected value, limit, regex source, or content, depending on Kind
	ShouldMatch bool        // polarity at the time of the failure
	Thrown      interface{} // value raised by the callable, for the ToThrow family
	Calls       [][]interface{}
}

func (e *MatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "expected %s", formatValue(e.Actual))
	if !e.ShouldMatch {
		b.WriteString(" not")
	}
	switch e.Kind {
	case KindToBe:
		fmt.Fprintf(&b, " to be %s", formatValue(e.Expected))
	case KindToEqual:
		fmt.Fprintf(&b, " to equal %s", formatValue(e.Expected))
	case KindToMatch:
		fmt.Fprintf(&b, " to match /%v/", e.Expected)
	case KindToBeDefined:
		b.WriteString(" to be defined")
	case KindToBeNil:
		b.WriteString(" to be nil")
	case KindToBeTruthy:
		b.WriteString(" to be truthy")
	case KindToContain:
		fmt.Fprintf(&b, " to contain %s", formatValue(e.Expected))
	case KindToBeLessThan:
		fmt.Fprintf(&b, " to be less than %s", formatValue(e.Expected))
	case KindToBeGreaterThan:
		fmt.Fprintf(&b, " to be greater than %s", formatValue(e.Expected))
	case KindToThrow:
		b.WriteString(" to throw")
		if e.ShouldMatch {
			b.WriteString(" an error")
		} else {
			fmt.Fprintf(&b, "; it threw %s", formatValue(e.Thrown))
		}
	case KindToThrowError:
		fmt.Fprintf(&b, " to throw %s", formatValue(e.Expected))
		if e.Thrown != nil {
			fmt.Fprintf(&b, "; it threw %s", formatValue(e.Thrown))
		}
	case KindToHaveBeenCalled:
		b.WriteString(" to have been called")
	case KindToHaveBeenCalledWith:
		fmt.Fprintf(&b, " to have been called with %s", formatValue(e.Expected))
		if len(e.Calls) > 0 {
			fmt.Fprintf(&b, "; recorded calls: %s", formatValue(e.Calls))
		}
	case KindToHaveBeenSet:
		b.WriteString(" to have been set")
	case KindToHaveBeenSetTo:
		fmt.Fprintf(&b, " to have been set to %s", formatValue(e.Expected))
	default:
		fmt.Fprintf(&b, " to satisfy %s", string(e.Kind))
	}
	return b.String()
}

// UsageError indicates that a matcher operation was applied to a value it
// cannot work on. It is distinct from MatchError: the runner classifies it
// as an error, not an assertion failure.
type UsageError struct {
	Op      Kind
	Message string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func usageErrorf(op Kind, format string, args ...interface{}) {
	panic(&UsageError{Op: op, Message: fmt.Sprintf(format, args...)})
}

func formatValue(v interface{}) string {
	if v == nil {
		return "<nil>"
	}
	if v == Undefined {
		return "<undefined>"
	}
	switch v.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	}
	return fmt.Sprintf("%+v", v)
}
