package fixture

// Module is the loaded form of one test file: its path plus every exported
// member, in declaration order. Discovery depends on that order being stable
// so that test reports are reproducible across runs of the same input set.
type Module struct {
	Path    string
	Exports []Export
}

// Export is one exported member of a Module. Values that are not *Fixture
// are ignored by discovery.
type Export struct {
	Name  string
	Value interface{}
}

// Fixture is a group of related test methods sharing an instance factory.
// Instances are created fresh for every test case; a fixture value itself is
// immutable after construction and serves as the identity key for metadata
// lookups in the registry.
type Fixture struct {
	Name    string
	New     func() interface{}
	Methods []Method
}

// Method is one declared method of a Fixture. Func receives the fixture
// instance produced by New and the argument tuple of the test case being run.
type Method struct {
	Name string
	Func func(instance interface{}, args []interface{})
}

// Method returns the declared method with the given name, if any.
func (f *Fixture) Method(name string) (Method, bool) {
	for _, m := range f.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return Method{}, false
}

// SetUpper is implemented by fixture instances that want a hook run before
// each test method.
type SetUpper interface {
	SetUp()
}

// TearDowner is implemented by fixture instances that want a hook run after
// each test method. The hook runs even if the method failed.
type TearDowner interface {
	TearDown()
}
