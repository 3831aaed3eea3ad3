package inject

// Inject calls f using values from ctx as its arguments and returns the
// result. It is shorthand for building a Func and calling it with the map
// as the context:
//
//	result, err := inject.Inject(func(one, two int) int {
//		return one + two
//	}, ctx, inject.Params("one", "two"))
//
// A single result is returned directly; multiple results are returned as
// a []interface{}; no results yield nil. A trailing error return of f is
// returned as the error, as is any failure to satisfy f's parameters.
func Inject(f interface{}, ctx map[string]interface{}, opts ...Arg) (interface{}, error) {
	fn, err := NewFunc(f, opts...)
	if err != nil {
		return nil, err
	}

	result := fn.Call(FromMap(ctx))
	if err := result.Err(); err != nil {
		return nil, err
	}

	switch result.Len() {
	case 0:
		return nil, nil

	case 1:
		return result.Out(0), nil

	default:
		out := make([]interface{}, result.Len())
		for i := range out {
			out[i] = result.Out(i)
		}

		return out, nil
	}
}
