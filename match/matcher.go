package match

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
)

// Matcher holds one value under test and the current negation polarity for
// the lifetime of a single assertion chain. Do not keep a Matcher across
// statements; the polarity set by Not would leak into the next assertion.
type Matcher struct {
	actual      interface{}
	shouldMatch bool
}

// Expect is the assertion entry point: it wraps a value in a Matcher for one
// assertion statement.
func Expect(actual interface{}) *Matcher {
	return &Matcher{actual: actual, shouldMatch: true}
}

// Not inverts the polarity of every subsequent operation on this matcher and
// returns the same matcher, so a chain reads Expect(x).Not().ToBe(y).
func (m *Matcher) Not() *Matcher {
	m.shouldMatch = !m.shouldMatch
	return m
}

// verify applies the uniform rule shared by every operation: fail exactly
// when the predicate outcome disagrees with the polarity.
func (m *Matcher) verify(matched bool, err *MatchError) {
	if matched == m.shouldMatch {
		return
	}
	err.Actual = m.actual
	err.ShouldMatch = m.shouldMatch
	panic(err)
}

// ToBe asserts strict identity equality: value equality for comparable
// values, reference identity for slices, maps and funcs.
func (m *Matcher) ToBe(expected interface{}) {
	m.verify(strictEquals(m.actual, expected), &MatchError{Kind: KindToBe, Expected: expected})
}

// ToEqual asserts loose equality, falling back to recursive structural
// equality when the expected value is composite. The structural walk has no
// cycle guard; see deepEquals.
func (m *Matcher) ToEqual(expected interface{}) {
	var matched bool
	if isComposite(expected) {
		matched = deepEquals(m.actual, expected)
	} else {
		matched = looseEquals(m.actual, expected)
	}
	m.verify(matched, &MatchError{Kind: KindToEqual, Expected: expected})
}

// ToMatch asserts that the wrapped string matches the regular expression.
// Applying it to a non-string value, or passing a nil regexp, is a usage
// error rather than a match failure.
func (m *Matcher) ToMatch(rx *regexp.Regexp) {
	if rx == nil {
		usageErrorf(KindToMatch, "no regular expression given")
	}
	s, ok := m.actual.(string)
	if !ok {
		usageErrorf(KindToMatch, "actual value %s is not a string", formatValue(m.actual))
	}
	m.verify(rx.MatchString(s), &MatchError{Kind: KindToMatch, Expected: rx.String()})
}

// ToBeDefined asserts that the wrapped value is not the Undefined sentinel.
func (m *Matcher) ToBeDefined() {
	m.verify(m.actual != Undefined, &MatchError{Kind: KindToBeDefined})
}

// ToBeNil asserts that the wrapped value is nil, including typed nils.
func (m *Matcher) ToBeNil() {
	m.verify(isNil(m.actual), &MatchError{Kind: KindToBeNil})
}

// ToBeTruthy asserts that the wrapped value coerces to boolean true.
func (m *Matcher) ToBeTruthy() {
	m.verify(isTruthy(m.actual), &MatchError{Kind: KindToBeTruthy})
}

// ToContain asserts substring containment for a string actual, or element
// membership (by strict equality) for a slice or array actual.
func (m *Matcher) ToContain(content interface{}) {
	err := &MatchError{Kind: KindToContain, Expected: content}
	if s, ok := m.actual.(string); ok {
		sub, ok := content.(string)
		if !ok {
			usageErrorf(KindToContain, "cannot search a string for %s", formatValue(content))
		}
		m.verify(strings.Contains(s, sub), err)
		return
	}
	rv := reflect.ValueOf(m.actual)
	if m.actual == nil || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		usageErrorf(KindToContain, "actual value %s is not a string, slice, or array", formatValue(m.actual))
	}
	found := false
	for i := 0; i < rv.Len(); i++ {
		if strictEquals(rv.Index(i).Interface(), content) {
			found = true
			break
		}
	}
	m.verify(found, err)
}

// ToBeLessThan asserts numeric ordering. Non-numeric operands are a usage
// error.
func (m *Matcher) ToBeLessThan(limit interface{}) {
	m.verify(m.compare(KindToBeLessThan, limit) < 0,
		&MatchError{Kind: KindToBeLessThan, Expected: limit})
}

// ToBeGreaterThan asserts numeric ordering. Non-numeric operands are a usage
// error.
func (m *Matcher) ToBeGreaterThan(limit interface{}) {
	m.verify(m.compare(KindToBeGreaterThan, limit) > 0,
		&MatchError{Kind: KindToBeGreaterThan, Expected: limit})
}

func (m *Matcher) compare(op Kind, limit interface{}) int {
	a, ok := toFloat(m.actual)
	if !ok {
		usageErrorf(op, "actual value %s is not numeric", formatValue(m.actual))
	}
	b, ok := toFloat(limit)
	if !ok {
		usageErrorf(op, "limit %s is not numeric", formatValue(limit))
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// ToThrow asserts that invoking the wrapped callable raises an error. The
// callable must be a func() (raising by panic) or a func() error (raising by
// returning non-nil); it is invoked synchronously exactly once, and whatever
// it raises is captured, never rethrown to the caller.
func (m *Matcher) ToThrow() {
	thrown, raised := m.invoke(KindToThrow)
	m.verify(raised, &MatchError{Kind: KindToThrow, Thrown: thrown})
}

// ToThrowError asserts that invoking the wrapped callable raises a value
// whose dynamic type equals sample's dynamic type and whose message equals
// message.
func (m *Matcher) ToThrowError(sample error, message string) {
	if sample == nil {
		usageErrorf(KindToThrowError, "no error type given")
	}
	thrown, raised := m.invoke(KindToThrowError)
	matched := false
	if raised {
		if err, ok := thrown.(error); ok {
			matched = reflect.TypeOf(err) == reflect.TypeOf(sample) && err.Error() == message
		}
	}
	m.verify(matched, &MatchError{
		Kind:     KindToThrowError,
		Expected: fmt.Sprintf("%T with message %q", sample, message),
		Thrown:   thrown,
	})
}

// invoke runs the wrapped callable inside a scoped panic-capturing region.
func (m *Matcher) invoke(op Kind) (thrown interface{}, raised bool) {
	switch fn := m.actual.(type) {
	case func():
		func() {
			defer func() {
				if r := recover(); r != nil {
					thrown = r
					raised = true
				}
			}()
			fn()
		}()
	case func() error:
		func() {
			defer func() {
				if r := recover(); r != nil {
					thrown = r
					raised = true
				}
			}()
			if err := fn(); err != nil {
				thrown = err
				raised = true
			}
		}()
	default:
		usageErrorf(op, "actual value %s is not callable", formatValue(m.actual))
	}
	return thrown, raised
}

// ToHaveBeenCalled asserts that the wrapped Spy's call log is non-empty.
func (m *Matcher) ToHaveBeenCalled() {
	spy := m.spy(KindToHaveBeenCalled)
	m.verify(len(spy.Calls()) > 0, &MatchError{Kind: KindToHaveBeenCalled})
}

// ToHaveBeenCalledWith asserts that the wrapped Spy recorded at least one
// call whose arguments equal the given list, position by position.
func (m *Matcher) ToHaveBeenCalledWith(args ...interface{}) {
	spy := m.spy(KindToHaveBeenCalledWith)
	calls := spy.Calls()
	found := false
	for _, call := range calls {
		if argsEqual(call, args) {
			found = true
			break
		}
	}
	m.verify(found, &MatchError{Kind: KindToHaveBeenCalledWith, Expected: args, Calls: calls})
}

// ToHaveBeenSet asserts that the wrapped PropertySpy's set log is non-empty.
func (m *Matcher) ToHaveBeenSet() {
	ps := m.propertySpy(KindToHaveBeenSet)
	m.verify(len(ps.SetCalls()) > 0, &MatchError{Kind: KindToHaveBeenSet})
}

// ToHaveBeenSetTo asserts that the wrapped PropertySpy recorded a set whose
// value strictly equals the given value.
func (m *Matcher) ToHaveBeenSetTo(value interface{}) {
	ps := m.propertySpy(KindToHaveBeenSetTo)
	calls := ps.SetCalls()
	found := false
	for _, v := range calls {
		if strictEquals(v, value) {
			found = true
			break
		}
	}
	m.verify(found, &MatchError{Kind: KindToHaveBeenSetTo, Expected: value})
}

func (m *Matcher) spy(op Kind) *Spy {
	spy, ok := m.actual.(*Spy)
	if !ok {
		usageErrorf(op, "actual value %s is not a call-recording spy", formatValue(m.actual))
	}
	return spy
}

func (m *Matcher) propertySpy(op Kind) *PropertySpy {
	ps, ok := m.actual.(*PropertySpy)
	if !ok {
		usageErrorf(op, "actual value %s is not a property-recording spy", formatValue(m.actual))
	}
	return ps
}

func argsEqual(call, want []interface{}) bool {
	if len(call) != len(want) {
		return false
	}
	for i := range call {
		if !strictEquals(call[i], want[i]) {
			return false
		}
	}
	return true
}
