package match

import "sync"

// Spy is a call-recording stand-in for a function dependency. Every Call is
// appended to an internal log that the ToHaveBeenCalled family of matcher
// operations inspects. An optional stub supplies return values.
type Spy struct {
	name  string
	stub  func(args ...interface{}) interface{}
	calls [][]interface{}
	lock  sync.Mutex
}

// NewSpy creates a call-recording spy. The name only appears in failure
// output.
func NewSpy(name string) *Spy {
	return &Spy{name: name}
}

// Stub installs a function to be invoked on each Call; its return value
// becomes Call's return value. Returns the same spy for chaining.
func (s *Spy) Stub(fn func(args ...interface{}) interface{}) *Spy {
	s.stub = fn
	return s
}

// Call records the argument tuple and invokes the stub, if any.
func (s *Spy) Call(args ...interface{}) interface{} {
	s.lock.Lock()
	recorded := make([]interface{}, len(args))
	copy(recorded, args)
	s.calls = append(s.calls, recorded)
	s.lock.Unlock()
	if s.stub != nil {
		return s.stub(args...)
	}
	return nil
}

// Calls returns a copy of the recorded call log, oldest first. The copy is
// deep enough that mutating it cannot corrupt the log.
func (s *Spy) Calls() [][]interface{} {
	s.lock.Lock()
	defer s.lock.Unlock()
	out := make([][]interface{}, len(s.calls))
	for i, call := range s.calls {
		out[i] = append([]interface{}(nil), call...)
	}
	return out
}

// Reset clears the call log.
func (s *Spy) Reset() {
	s.lock.Lock()
	s.calls = nil
	s.lock.Unlock()
}

func (s *Spy) String() string { return "spy(" + s.name + ")" }

// PropertySpy records writes to a property. Set appends to a log that the
// ToHaveBeenSet family of matcher operations inspects; Get returns the most
// recently set value.
type PropertySpy struct {
	name     string
	value    interface{}
	setCalls []interface{}
	lock     sync.Mutex
}

// NewPropertySpy creates a property-recording spy with an initial value.
func NewPropertySpy(name string, initial interface{}) *PropertySpy {
	return &PropertySpy{name: name, value: initial}
}

// Set records the value and makes it current.
func (p *PropertySpy) Set(value interface{}) {
	p.lock.Lock()
	p.value = value
	p.setCalls = append(p.setCalls, value)
	p.lock.Unlock()
}

// Get returns the current value.
func (p *PropertySpy) Get() interface{} {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.value
}

// SetCalls returns a copy of the recorded set log, oldest first.
func (p *PropertySpy) SetCalls() []interface{} {
	p.lock.Lock()
	defer p.lock.Unlock()
	out := make([]interface{}, len(p.setCalls))
	copy(out, p.setCalls)
	return out
}

func (p *PropertySpy) String() string { return "propertySpy(" + p.name + ")" }
