// Package fixture defines the declaration types that test files are made of.
//
// A test file, once loaded, is represented as a Module: an ordered list of
// exported members. A member that is a *Fixture is a candidate test fixture;
// whether it actually is one is decided by the annotation registry, which
// stores metadata out-of-band (see the registry package). The fixture itself
// only knows how to create instances and which methods it declares, in
// declaration order.
package fixture
