package inject

import (
	"errors"
	"fmt"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
)

func init() {
	hclog.L().SetLevel(hclog.Trace)
}

func TestFuncCall(t *testing.T) {
	// Used in some test cases.
	errSentinel := errors.New("error")

	cases := []struct {
		Name     string
		Callback interface{}
		Opts     []Arg
		Args     []Arg
		Out      []interface{}
		Err      string
	}{
		{
			"basic named matching",
			func(in struct {
				Struct

				One, Two int
			}) int {
				return in.One + in.Two
			},
			nil,
			[]Arg{
				Named("one", 12),
				Named("two", 24),
			},
			[]interface{}{
				36,
			},
			"",
		},

		{
			"basic named matching (pointer struct)",
			func(in *struct {
				Struct

				One, Two int
			}) int {
				return in.One + in.Two
			},
			nil,
			[]Arg{
				Named("one", 12),
				Named("two", 24),
			},
			[]interface{}{
				36,
			},
			"",
		},

		{
			"extra entries are dropped silently",
			func(in struct {
				Struct

				One, Two int
			}) (int, int) {
				return in.One, in.Two
			},
			nil,
			[]Arg{
				FromMap(map[string]interface{}{
					"one":   1,
					"two":   2,
					"three": 3,
				}),
			},
			[]interface{}{
				1, 2,
			},
			"",
		},

		{
			"flat parameters named with Params",
			func(one, two int) (int, int) {
				return one, two
			},
			[]Arg{Params("one", "two")},
			[]Arg{
				FromMap(map[string]interface{}{
					"one":   1,
					"two":   2,
					"three": 3,
				}),
			},
			[]interface{}{
				1, 2,
			},
			"",
		},

		{
			"missing parameter",
			func(in struct {
				Struct

				A, B int
			}) int {
				return in.A + in.B
			},
			nil,
			[]Arg{Named("a", 12)},
			nil,
			"could not be satisfied",
		},

		{
			"missing parameter with extra entries present",
			func(first, second int) int {
				return second
			},
			[]Arg{Params("first", "second")},
			[]Arg{
				FromMap(map[string]interface{}{
					"first": 1,
					"other": 2,
				}),
			},
			nil,
			`"second"`,
		},

		{
			"unexported field ignored",
			func(in struct {
				Struct

				A int
				b int
			}) int {
				return in.A
			},
			nil,
			[]Arg{Named("a", 12)},
			[]interface{}{12},
			"",
		},

		{
			"renamed field",
			func(in struct {
				Struct

				A int `inject:"c"`
				B int
			}) int {
				return in.A + in.B
			},
			nil,
			[]Arg{
				Named("b", 12),
				Named("c", 24),
			},
			[]interface{}{36},
			"",
		},

		{
			"optional field keeps the zero value",
			func(in struct {
				Struct

				A int
				B int `inject:",optional"`
			}) (int, int) {
				return in.A, in.B
			},
			nil,
			[]Arg{Named("a", 12)},
			[]interface{}{12, 0},
			"",
		},

		{
			"optional flat parameter keeps the zero value",
			func(a, b int) (int, int) {
				return a, b
			},
			[]Arg{Params("a", "b"), Optional("b")},
			[]Arg{Named("a", 3)},
			[]interface{}{3, 0},
			"",
		},

		{
			"optional parameter still takes a provided value",
			func(a, b int) (int, int) {
				return a, b
			},
			[]Arg{Params("a", "b"), Optional("b")},
			[]Arg{
				Named("a", 3),
				Named("b", 4),
			},
			[]interface{}{3, 4},
			"",
		},

		{
			"catch-all positional",
			func(args ...int) []int {
				return args
			},
			nil,
			[]Arg{
				FromMap(map[string]interface{}{
					"args":  []int{1, 3, 5},
					"extra": nil,
				}),
			},
			[]interface{}{
				[]int{1, 3, 5},
			},
			"",
		},

		{
			"catch-all positional with no entry",
			func(args ...int) int {
				return len(args)
			},
			nil,
			nil,
			[]interface{}{0},
			"",
		},

		{
			"catch-all positional under a declared name",
			func(a int, rest ...int) (int, int) {
				return a, len(rest)
			},
			[]Arg{Params("a", "varargs")},
			[]Arg{
				Named("a", 3),
				Named("varargs", []int{4}),
			},
			[]interface{}{3, 1},
			"",
		},

		{
			"catch-all positional ignores entries under other names",
			func(a int, rest ...int) (int, int) {
				return a, len(rest)
			},
			[]Arg{Params("a")},
			[]Arg{
				Named("a", 3),
				Named("c", 4),
			},
			[]interface{}{3, 0},
			"",
		},

		{
			"catch-all positional from an interface sequence",
			func(args ...int) []int {
				return args
			},
			nil,
			[]Arg{
				Named("args", []interface{}{1, 3, 5}),
			},
			[]interface{}{
				[]int{1, 3, 5},
			},
			"",
		},

		{
			"catch-all positional rejects nil",
			func(args ...int) []int {
				return args
			},
			nil,
			[]Arg{Named("args", nil)},
			nil,
			"nil is not a sequence",
		},

		{
			"catch-all positional rejects a non-sequence",
			func(args ...int) []int {
				return args
			},
			nil,
			[]Arg{Named("args", 42)},
			nil,
			"is not a sequence",
		},

		{
			"catch-all positional rejects mismatched elements",
			func(args ...int) []int {
				return args
			},
			nil,
			[]Arg{Named("args", []string{"x"})},
			nil,
			"element 0",
		},

		{
			"catch-all keyword as an optional map",
			func(kwargs map[string][]int) map[string][]int {
				return kwargs
			},
			[]Arg{Params("kwargs"), Optional("kwargs")},
			[]Arg{
				FromMap(map[string]interface{}{
					"args": nil,
					"kwargs": map[string][]int{
						"a": {1, 2},
						"b": {5, 7},
					},
				}),
			},
			[]interface{}{
				map[string][]int{
					"a": {1, 2},
					"b": {5, 7},
				},
			},
			"",
		},

		{
			"catch-all keyword with no entry is a nil map",
			func(kwargs map[string][]int) int {
				return len(kwargs)
			},
			[]Arg{Params("kwargs"), Optional("kwargs")},
			nil,
			[]interface{}{0},
			"",
		},

		{
			"nil entry for a nilable parameter",
			func(in struct {
				Struct

				M map[string]int
			}) int {
				return len(in.M)
			},
			nil,
			[]Arg{Named("m", nil)},
			[]interface{}{0},
			"",
		},

		{
			"nil entry for a non-nilable parameter",
			func(in struct {
				Struct

				A int
			}) int {
				return in.A
			},
			nil,
			[]Arg{Named("a", nil)},
			nil,
			"cannot use nil",
		},

		{
			"type mismatch",
			func(in struct {
				Struct

				A int
			}) int {
				return in.A
			},
			nil,
			[]Arg{Named("a", "twelve")},
			nil,
			"cannot use string as int",
		},

		{
			"interface parameter takes an implementation",
			func(in struct {
				Struct

				Err error
			}) string {
				return in.Err.Error()
			},
			nil,
			[]Arg{Named("err", fmt.Errorf("42"))},
			[]interface{}{"42"},
			"",
		},

		{
			"matching is case-insensitive on the entry key",
			func(in struct {
				Struct

				One int
			}) int {
				return in.One
			},
			nil,
			[]Arg{Named("ONE", 12)},
			[]interface{}{12},
			"",
		},

		{
			"no return values, only errors",
			func(in struct {
				Struct

				A, B int
			}) error {
				if in.A != 12 || in.B != 24 {
					// We panic to signal failure here instead of using
					// t but this should never happen.
					panic("failure")
				}

				return errSentinel
			},
			nil,
			[]Arg{
				Named("a", 12),
				Named("b", 24),
			},
			[]interface{}{},
			errSentinel.Error(),
		},

		{
			"value and trailing error",
			func(in struct {
				Struct

				A int
			}) (int, error) {
				return in.A, nil
			},
			nil,
			[]Arg{Named("a", 12)},
			[]interface{}{12},
			"",
		},

		{
			"no parameters at all",
			func() int { return 42 },
			nil,
			[]Arg{Named("extra", 1)},
			[]interface{}{42},
			"",
		},
	}

	for _, tt := range cases {
		t.Run(tt.Name, func(t *testing.T) {
			require := require.New(t)

			f, err := NewFunc(tt.Callback, tt.Opts...)
			require.NoError(err)
			result := f.Call(tt.Args...)

			// If we expect an error, check that
			if tt.Err == "" {
				require.NoError(result.Err())
			} else {
				require.Error(result.Err())
				t.Logf("err: %s", result.Err().Error())
				require.Contains(result.Err().Error(), tt.Err)
			}

			// Verify outputs
			require.Equal(len(tt.Out), result.Len())
			for i, out := range tt.Out {
				require.Equal(out, result.Out(i))
			}
		})
	}
}

func TestNewFunc(t *testing.T) {
	cases := []struct {
		Name     string
		Callback interface{}
		Opts     []Arg
		Err      string
	}{
		{
			"not a function",
			42,
			nil,
			"should be a function",
		},

		{
			"flat parameters without names",
			func(a, b int) int { return a + b },
			nil,
			"Params declared 0 names",
		},

		{
			"too many names",
			func(a int) int { return a },
			[]Arg{Params("a", "b")},
			"Params declared 2 names",
		},

		{
			"too many names for a variadic function",
			func(a int, rest ...int) int { return a },
			[]Arg{Params("a", "rest", "more")},
			"Params declared 3 names",
		},

		{
			"duplicate names",
			func(a, b int) int { return a + b },
			[]Arg{Params("a", "a")},
			"duplicate parameter name",
		},

		{
			"name collides with the default catch-all name",
			func(a int, rest ...int) int { return a },
			[]Arg{Params("args")},
			"duplicate parameter name",
		},

		{
			"Params with a struct parameter",
			func(in struct {
				Struct

				A int
			}) int {
				return in.A
			},
			[]Arg{Params("a")},
			"cannot use Params",
		},

		{
			"duplicate field names after renaming",
			func(in struct {
				Struct

				A int `inject:"b"`
				B int
			}) int {
				return in.A
			},
			nil,
			"duplicate parameter name",
		},

		{
			"unknown tag option",
			func(in struct {
				Struct

				A int `inject:",sometimes"`
			}) int {
				return in.A
			},
			nil,
			"unknown tag option",
		},

		{
			"Optional with an undeclared name",
			func(a int) int { return a },
			[]Arg{Params("a"), Optional("b")},
			"not a declared parameter",
		},
	}

	for _, tt := range cases {
		t.Run(tt.Name, func(t *testing.T) {
			require := require.New(t)

			_, err := NewFunc(tt.Callback, tt.Opts...)
			require.Error(err)
			require.Contains(err.Error(), tt.Err)
		})
	}
}

func TestFunc_defaultOpts(t *testing.T) {
	require := require.New(t)

	// Options given on NewFunc apply to every Call.
	f, err := NewFunc(func(a, b int) int {
		return a + b
	}, Params("a", "b"), Named("a", 1))
	require.NoError(err)

	result := f.Call(Named("b", 2))
	require.NoError(result.Err())
	require.Equal(3, result.Out(0))

	// Call arguments override the defaults.
	result = f.Call(Named("a", 10), Named("b", 2))
	require.NoError(result.Err())
	require.Equal(12, result.Out(0))
}

func TestFunc_Name(t *testing.T) {
	require := require.New(t)

	f, err := NewFunc(func() {}, FuncName("tick"))
	require.NoError(err)
	require.Equal("tick", f.Name())
	require.Equal("tick", f.String())

	// Without a configured name we fall back to the runtime name.
	f, err = NewFunc(func() {})
	require.NoError(err)
	require.Contains(f.Name(), "TestFunc_Name")
}

func TestFunc_Params(t *testing.T) {
	require := require.New(t)

	f, err := NewFunc(func(a string, rest ...int) {},
		Params("a"), Optional("a"))
	require.NoError(err)

	params := f.Params()
	require.Len(params, 2)
	require.Equal("a", params[0].Name)
	require.True(params[0].Optional)
	require.False(params[0].Variadic)
	require.Equal("args", params[1].Name)
	require.True(params[1].Variadic)
}

func TestFuncCall_panicPropagates(t *testing.T) {
	require := require.New(t)

	f, err := NewFunc(func(in struct {
		Struct

		A int
	}) int {
		panic("boom")
	})
	require.NoError(err)

	require.Panics(func() {
		f.Call(Named("a", 1))
	})
}
