package inject

import "reflect"

// Result is returned from a Call with the results of the function call.
// This structure lets you access multiple results.
type Result struct {
	out      []reflect.Value
	callErr  error
	buildErr error
}

// resultError returns a Result with an error.
func resultError(err error) Result {
	return Result{buildErr: err}
}

// Err returns any error that occurred as part of the call. This can be an
// error assembling the arguments (such as an unsatisfied parameter) or the
// error returned by the function itself: a trailing error return value is
// detected automatically and never counted among the outputs.
func (r *Result) Err() error {
	if r.buildErr != nil {
		return r.buildErr
	}

	return r.callErr
}

// Out returns the i'th result (zero-indexed) of the function. This will
// panic if i >= Len so for safety all calls to Out should check Len.
func (r *Result) Out(i int) interface{} {
	return r.out[i].Interface()
}

// Len returns the number of outputs, not counting a trailing error return.
func (r *Result) Len() int {
	return len(r.out)
}
