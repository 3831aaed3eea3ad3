package inject

import "reflect"

// Struct is embedded into a struct to mark it as a named-parameter set.
// A function that takes a single struct with this marker has each exported
// field treated as a named parameter. See the package docs for details on
// field naming and the `inject:` struct tag.
type Struct struct{}

var structMarkerType = reflect.TypeOf(Struct{})

// isStruct returns true if t is a struct (or pointer to struct) that
// embeds the Struct marker.
func isStruct(t reflect.Type) bool {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return false
	}

	for i := 0; i < t.NumField(); i++ {
		if isStructField(t.Field(i)) {
			return true
		}
	}

	return false
}

// isStructField returns true if the field is the embedded Struct marker.
func isStructField(f reflect.StructField) bool {
	return f.Anonymous && f.Type == structMarkerType
}

// structValueOf unwraps rv to a struct value, dereferencing a pointer if
// necessary. It returns the zero Value if rv is not a struct or pointer
// to struct.
func structValueOf(rv reflect.Value) reflect.Value {
	if k := rv.Kind(); k != reflect.Struct && k != reflect.Ptr {
		return reflect.Value{}
	}

	sv := rv
	if sv.Kind() == reflect.Ptr {
		sv = sv.Elem()
		if sv.Kind() != reflect.Struct {
			return reflect.Value{}
		}
	}

	return sv
}
