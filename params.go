package inject

import (
	"fmt"
	"reflect"
	"strings"
)

// varargsName is the default name of the catch-all positional slot when
// Params does not declare one.
const varargsName = "args"

// paramSet describes the declared parameters of a target function: every
// named parameter in declaration order plus the catch-all positional slot
// of a variadic function, if any.
//
// The set is built from one of two declarations. A function taking a
// single struct that embeds Struct declares a parameter per exported
// field. Any other function declares its names with the Params option,
// since Go reflection cannot recover flat parameter names.
type paramSet struct {
	// structType is non-nil when the function takes a single marked
	// struct; params then index fields of this struct rather than
	// function arguments. structPtr is set when the parameter is a
	// pointer to that struct.
	structType reflect.Type
	structPtr  bool

	params   []*param
	variadic *param
}

// param is a single declared parameter. For the variadic slot, typ is the
// element type, not the slice type.
type param struct {
	index    int
	name     string
	typ      reflect.Type
	optional bool
}

func newParamSet(ft reflect.Type, b *argBuilder) (*paramSet, error) {
	if ft.NumIn() == 1 && !ft.IsVariadic() && isStruct(ft.In(0)) {
		if len(b.params) > 0 {
			return nil, fmt.Errorf(
				"cannot use Params with a struct parameter: field names are the declaration")
		}

		return newParamSetFromStruct(ft.In(0), b)
	}

	return newParamSetFromNames(ft, b)
}

// newParamSetFromStruct builds the set from the fields of a marked struct.
// Unexported fields and the Struct marker itself are ignored.
func newParamSetFromStruct(typ reflect.Type, b *argBuilder) (*paramSet, error) {
	result := &paramSet{
		structType: typ,
		structPtr:  typ.Kind() == reflect.Ptr,
	}

	st := typ
	if result.structPtr {
		st = typ.Elem()
	}

	seen := map[string]struct{}{}
	for i := 0; i < st.NumField(); i++ {
		sf := st.Field(i)
		if sf.PkgPath != "" || isStructField(sf) {
			continue
		}

		// name is the name of the value to inject.
		name := sf.Name

		// Parse out the tag if there is one
		var optional bool
		if tag := sf.Tag.Get("inject"); tag != "" {
			parts := strings.Split(tag, ",")

			// If we have a name set, then override the name
			if parts[0] != "" {
				name = parts[0]
			}

			for _, opt := range parts[1:] {
				switch opt {
				case "optional":
					optional = true

				case "":
					// Allow a trailing comma

				default:
					return nil, fmt.Errorf(
						"field %s: unknown tag option %q", sf.Name, opt)
				}
			}
		}

		// Name is always lowercase
		name = strings.ToLower(name)

		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("duplicate parameter name %q", name)
		}
		seen[name] = struct{}{}

		if _, ok := b.optional[name]; ok {
			optional = true
		}

		result.params = append(result.params, &param{
			index:    i,
			name:     name,
			typ:      sf.Type,
			optional: optional,
		})
	}

	return result, checkOptionalNames(b, seen)
}

// newParamSetFromNames builds the set for a flat parameter list from the
// names declared with Params.
func newParamSetFromNames(ft reflect.Type, b *argBuilder) (*paramSet, error) {
	numIn := ft.NumIn()
	named := numIn

	result := &paramSet{}
	seen := map[string]struct{}{}

	if ft.IsVariadic() {
		named = numIn - 1

		// The final Params name, if given, names the catch-all slot.
		name := varargsName
		if len(b.params) == numIn {
			name = strings.ToLower(b.params[named])
		}

		seen[name] = struct{}{}
		result.variadic = &param{
			index: named,
			name:  name,
			typ:   ft.In(named).Elem(),
		}
	}

	if len(b.params) < named {
		return nil, fmt.Errorf(
			"function takes %d named parameters but Params declared %d names",
			named, len(b.params))
	}
	if len(b.params) > named && (!ft.IsVariadic() || len(b.params) > numIn) {
		return nil, fmt.Errorf(
			"Params declared %d names for a function taking %d parameters",
			len(b.params), numIn)
	}

	for i := 0; i < named; i++ {
		name := strings.ToLower(b.params[i])
		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("duplicate parameter name %q", name)
		}
		seen[name] = struct{}{}

		_, optional := b.optional[name]
		result.params = append(result.params, &param{
			index:    i,
			name:     name,
			typ:      ft.In(i),
			optional: optional,
		})
	}

	return result, checkOptionalNames(b, seen)
}

// checkOptionalNames errors on Optional names that match no declared
// parameter, since a typo there would silently change call semantics.
func checkOptionalNames(b *argBuilder, declared map[string]struct{}) error {
	for n := range b.optional {
		if _, ok := declared[n]; !ok {
			return fmt.Errorf("Optional name %q is not a declared parameter", n)
		}
	}

	return nil
}

// Param describes a single declared parameter of a Func.
type Param struct {
	// Name is the lowercased name the context is matched against.
	Name string

	// Type is the parameter type. For the catch-all positional slot this
	// is the element type.
	Type reflect.Type

	// Optional is true if an absent context entry supplies the zero value
	// instead of failing the call.
	Optional bool

	// Variadic is true for the catch-all positional slot.
	Variadic bool
}

func (p Param) String() string {
	s := fmt.Sprintf("%q (%s)", p.Name, p.Type)
	if p.Variadic {
		s += " (catch-all)"
	}
	if p.Optional {
		s += " (optional)"
	}

	return s
}

// export converts the internal parameter list to the public view.
func (t *paramSet) export() []Param {
	result := make([]Param, 0, len(t.params)+1)
	for _, p := range t.params {
		result = append(result, Param{
			Name:     p.name,
			Type:     p.typ,
			Optional: p.optional,
		})
	}

	if p := t.variadic; p != nil {
		result = append(result, Param{
			Name:     p.name,
			Type:     p.typ,
			Variadic: true,
		})
	}

	return result
}
