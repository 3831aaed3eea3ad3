package inject

import (
	"fmt"
	"reflect"

	"github.com/gburgyan/go-timing"
	"github.com/hashicorp/go-multierror"
)

// Call calls the function. Use the various Arg functions to set the
// context entries for the call: typically FromMap, or Named for single
// entries.
//
// Context entries whose name matches no declared parameter are dropped
// silently. Declared parameters with no matching entry fail the call with
// ErrParameterUnsatisfied unless they are optional or the catch-all
// positional slot, which both fall back to their zero value.
func (f *Func) Call(opts ...Arg) Result {
	// Build up our args
	builder, buildErr := f.argBuilder(opts...)
	if buildErr != nil {
		return resultError(buildErr)
	}

	// Parameter declarations may arrive on Call as well as NewFunc, so
	// rebuild the set when new opts were given.
	params := f.params
	if len(opts) > 0 {
		var err error
		params, err = newParamSet(f.fn.Type(), builder)
		if err != nil {
			return resultError(err)
		}
	}

	return f.callDirect(params, builder)
}

// callDirect assembles the argument list from the builder's context
// entries and invokes the function.
func (f *Func) callDirect(params *paramSet, builder *argBuilder) Result {
	log := builder.logger

	var missing []*param
	var buildErr error

	var in []reflect.Value
	if params.structType != nil {
		// Struct form: populate a new struct value field by field.
		st := params.structType
		if params.structPtr {
			st = st.Elem()
		}

		structVal := reflect.New(st).Elem()
		for _, p := range params.params {
			v, ok, err := builder.paramValue(p)
			if err != nil {
				buildErr = multierror.Append(buildErr, err)
				continue
			}
			if !ok {
				missing = append(missing, p)
				continue
			}

			structVal.Field(p.index).Set(v)
		}

		if params.structPtr {
			in = []reflect.Value{structVal.Addr()}
		} else {
			in = []reflect.Value{structVal}
		}
	} else {
		for _, p := range params.params {
			v, ok, err := builder.paramValue(p)
			if err != nil {
				buildErr = multierror.Append(buildErr, err)
				continue
			}
			if !ok {
				missing = append(missing, p)
				continue
			}

			in = append(in, v)
		}

		if params.variadic != nil {
			vs, err := builder.variadicValues(params.variadic)
			if err != nil {
				buildErr = multierror.Append(buildErr, err)
			}

			in = append(in, vs...)
		}
	}

	// Missing required parameters get the verbose diagnostic error.
	if len(missing) > 0 {
		unsatisfied := make([]Param, len(missing))
		for i, p := range missing {
			unsatisfied[i] = Param{Name: p.name, Type: p.typ}
		}

		buildErr = multierror.Append(buildErr, &ErrParameterUnsatisfied{
			Func:   f,
			Params: unsatisfied,
			Keys:   builder.keys(),
		})
	}

	// If there was an error assembling the arguments, report that and
	// never invoke the function.
	if buildErr != nil {
		return resultError(buildErr)
	}

	for i, arg := range in {
		log.Trace("argument", "func", f.Name(), "idx", i, "value", arg.Interface())
	}

	// Record the invocation on the timing context when one was given.
	if builder.timeCtx != nil {
		_, complete := timing.Start(builder.timeCtx, f.Name())
		defer complete()
	}

	out := f.fn.Call(in)

	// A trailing error return is folded into the Result's error.
	var callErr error
	ft := f.fn.Type()
	if n := ft.NumOut(); n >= 1 && ft.Out(n-1) == errType {
		if v := out[n-1].Interface(); v != nil {
			callErr = v.(error)
		}

		out = out[:n-1]
	}

	return Result{out: out, callErr: callErr}
}

// paramValue resolves the context entry for p. The second return is false
// when the entry is absent and the parameter is required.
func (b *argBuilder) paramValue(p *param) (reflect.Value, bool, error) {
	v, ok := b.values[p.name]
	if !ok {
		if p.optional {
			return reflect.Zero(p.typ), true, nil
		}

		return reflect.Value{}, false, nil
	}

	// A nil entry has no type. It can stand in for any nilable parameter.
	if !v.IsValid() {
		if !nilable(p.typ) {
			return reflect.Value{}, true, fmt.Errorf(
				"parameter %s: cannot use nil as %s", p.name, p.typ)
		}

		return reflect.Zero(p.typ), true, nil
	}

	if !v.Type().AssignableTo(p.typ) {
		return reflect.Value{}, true, fmt.Errorf(
			"parameter %s: cannot use %s as %s", p.name, v.Type(), p.typ)
	}

	return v, true, nil
}

// variadicValues resolves the context entry feeding the catch-all
// positional slot, unpacking it into one value per element. An absent
// entry yields no values; a present entry must be a slice or array.
func (b *argBuilder) variadicValues(p *param) ([]reflect.Value, error) {
	v, ok := b.values[p.name]
	if !ok {
		return nil, nil
	}

	if !v.IsValid() {
		return nil, fmt.Errorf("catch-all parameter %s: nil is not a sequence", p.name)
	}

	if k := v.Kind(); k != reflect.Slice && k != reflect.Array {
		return nil, fmt.Errorf(
			"catch-all parameter %s: %s is not a sequence", p.name, v.Type())
	}

	result := make([]reflect.Value, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		ev := v.Index(i)

		// Sequences of interface type hold the concrete values we want.
		if ev.Kind() == reflect.Interface {
			ev = ev.Elem()
		}

		if !ev.IsValid() {
			if !nilable(p.typ) {
				return nil, fmt.Errorf(
					"catch-all parameter %s: element %d: cannot use nil as %s",
					p.name, i, p.typ)
			}

			ev = reflect.Zero(p.typ)
		}

		if !ev.Type().AssignableTo(p.typ) {
			return nil, fmt.Errorf(
				"catch-all parameter %s: element %d: cannot use %s as %s",
				p.name, i, ev.Type(), p.typ)
		}

		result = append(result, ev)
	}

	return result, nil
}

// nilable returns true for types whose zero value is nil.
func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface,
		reflect.Map, reflect.Ptr, reflect.Slice:
		return true
	}

	return false
}
