package inject

import (
	"fmt"
	"reflect"
	"runtime"
)

// Func represents a target function you want to call with values drawn
// from a context map.
//
// A Func can take any number of arguments and return any number of values.
// Arguments are matched by name against the context entries. Go reflection
// doesn't enable accessing direct function parameter names, so names are
// declared either with the Params option or with a struct parameter that
// embeds the Struct type (see Struct). See the package docs for the
// matching rules.
type Func struct {
	fn       reflect.Value
	params   *paramSet
	callOpts []Arg
	name     string
}

// NewFunc creates a new Func from the given input function f.
//
// Additional opts can be provided. These will always be set when calling
// Call. Any conflicting arguments given on Call will override these args.
// This can be used to declare parameter names once, provide some initial
// context values, etc.
func NewFunc(f interface{}, opts ...Arg) (*Func, error) {
	args, err := newArgBuilder(opts...)
	if err != nil {
		return nil, err
	}

	fv := reflect.ValueOf(f)
	ft := fv.Type()
	if k := ft.Kind(); k != reflect.Func {
		return nil, fmt.Errorf("fn should be a function, got %s", k)
	}

	params, err := newParamSet(ft, args)
	if err != nil {
		return nil, err
	}

	return &Func{
		fn:       fv,
		params:   params,
		callOpts: opts,
		name:     args.funcName,
	}, nil
}

// Params returns the declared parameters of this function, in declaration
// order, with the catch-all positional slot last if one exists.
func (f *Func) Params() []Param {
	return f.params.export()
}

// Func returns the function pointer that this Func is built around.
func (f *Func) Func() interface{} {
	return f.fn.Interface()
}

// Name returns the name of the function.
//
// This will return the configured name if one was given on NewFunc. If not,
// this will attempt to look up the function name using the pointer. If
// no friendly name can be found, then this will default to the function
// type signature.
func (f *Func) Name() string {
	// Use our set name first, if we have one
	name := f.name

	// Fall back to inspecting the program counter
	if name == "" {
		if rfunc := runtime.FuncForPC(f.fn.Pointer()); rfunc != nil {
			name = rfunc.Name()
		}

		// Final fallback is our type signature
		if name == "" {
			name = f.fn.String()
		}
	}

	return name
}

// String returns the name for this function. See Name.
func (f *Func) String() string {
	return f.Name()
}

// argBuilder returns the instantiated argBuilder based on the opts provided
// as well as the default opts attached to the func.
func (f *Func) argBuilder(opts ...Arg) (*argBuilder, error) {
	if len(f.callOpts) > 0 {
		optsCopy := make([]Arg, len(opts)+len(f.callOpts))
		copy(optsCopy, f.callOpts)
		copy(optsCopy[len(f.callOpts):], opts)
		opts = optsCopy
	}

	return newArgBuilder(opts...)
}

// errType is used to detect a trailing error return.
var errType = reflect.TypeOf((*error)(nil)).Elem()
