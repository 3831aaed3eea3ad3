package inject

import (
	"context"
	"reflect"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
)

// Arg is an option to NewFunc or Func.Call that sets the state for the
// function call: the context entries, the declared parameter names, and
// so on.
type Arg func(*argBuilder) error

type argBuilder struct {
	logger   hclog.Logger
	values   map[string]reflect.Value
	params   []string
	optional map[string]struct{}
	funcName string
	timeCtx  context.Context
}

func newArgBuilder(opts ...Arg) (*argBuilder, error) {
	builder := &argBuilder{
		logger:   hclog.L(),
		values:   make(map[string]reflect.Value),
		optional: make(map[string]struct{}),
	}

	var buildErr error
	for _, opt := range opts {
		if err := opt(builder); err != nil {
			buildErr = multierror.Append(buildErr, err)
		}
	}

	return builder, buildErr
}

// set records a context entry. The value may be the zero Value, which is
// how a nil entry is represented; presence of the key still matters.
func (b *argBuilder) set(name string, v reflect.Value) {
	b.values[strings.ToLower(name)] = v
}

// keys returns the context keys currently set, sorted for stable output.
func (b *argBuilder) keys() []string {
	result := make([]string, 0, len(b.values))
	for k := range b.values {
		result = append(result, k)
	}

	sort.Strings(result)
	return result
}

// FromMap adds every entry of m as a context entry. Keys are matched
// against parameter names lowercased. Entries whose name matches no
// parameter are ignored.
func FromMap(m map[string]interface{}) Arg {
	return func(a *argBuilder) error {
		for k, v := range m {
			a.set(k, reflect.ValueOf(v))
		}

		return nil
	}
}

// Named adds a single context entry with the given name and value.
func Named(n string, v interface{}) Arg {
	return func(a *argBuilder) error {
		a.set(n, reflect.ValueOf(v))
		return nil
	}
}

// Params declares the names of a flat parameter list, one per parameter
// in declaration order. For a variadic function the final name names the
// catch-all slot; when omitted it defaults to "args".
//
// Params is not used with a Struct-marked struct parameter, where the
// field names already carry the declaration.
func Params(names ...string) Arg {
	return func(a *argBuilder) error {
		a.params = append(a.params, names...)
		return nil
	}
}

// Optional marks the given declared parameter names as optional: an
// absent context entry supplies the zero value instead of failing the
// call. For struct parameters this is equivalent to the "optional" tag
// option.
func Optional(names ...string) Arg {
	return func(a *argBuilder) error {
		for _, n := range names {
			a.optional[strings.ToLower(n)] = struct{}{}
		}

		return nil
	}
}

// FuncName sets a friendly name for the function, used in logs and error
// messages.
func FuncName(n string) Arg {
	return func(a *argBuilder) error {
		a.funcName = n
		return nil
	}
}

// Logger sets the logger used to trace argument assembly. Defaults to
// hclog.L().
func Logger(l hclog.Logger) Arg {
	return func(a *argBuilder) error {
		a.logger = l
		return nil
	}
}

// Timed records the invocation duration on the given timing context
// (see github.com/gburgyan/go-timing), under the function's name.
func Timed(ctx context.Context) Arg {
	return func(a *argBuilder) error {
		a.timeCtx = ctx
		return nil
	}
}
