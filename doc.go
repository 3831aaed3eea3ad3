// Package inject calls a function using values from a map as its arguments.
//
// Given a function and a context map, inject determines which map entries the
// function's parameters can accept and invokes the function with exactly
// those. Map entries with no matching parameter are dropped silently, which
// is the main difference from building the argument list by hand:
//
//	sum := func(in struct {
//		Struct
//
//		One, Two int
//	}) int {
//		return in.One + in.Two
//	}
//
//	result, err := inject.Inject(sum, map[string]interface{}{
//		"one": 1, "two": 2, "three": 3, // "three" is ignored
//	})
//
// Go reflection does not expose the names of flat function parameters, so
// named matching requires declaring the names. There are two ways:
//
// A struct parameter that embeds the Struct type treats every exported field
// as a named parameter. Field names are matched lowercased. The `inject:`
// struct tag renames a field, and the "optional" tag option makes an absent
// context entry leave the field's zero value instead of failing the call.
//
// A flat parameter list is named with the Params option, one name per
// parameter in declaration order:
//
//	result, err := inject.Inject(func(one, two int) int {
//		return one + two
//	}, ctx, inject.Params("one", "two"))
//
// A variadic function acts as a catch-all positional slot: the context entry
// matching the slot's declared name (the last Params name, "args" when not
// declared) must be a slice or array and its elements are passed as the
// variadic arguments. An absent entry means zero variadic arguments.
//
// A catch-all keyword slot is expressed as a map parameter marked optional:
// the whole map is injected from the context entry matching its declared
// name (conventionally "kwargs"), and an absent entry yields a nil map.
// Context entries are never merged into it.
//
// Parameters that are declared but missing from the context fail the call
// with ErrParameterUnsatisfied unless marked optional. The wrapped
// function's own results, including a trailing error, are returned
// unchanged.
package inject
