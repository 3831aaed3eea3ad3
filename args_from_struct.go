package inject

import (
	"fmt"
	"reflect"
	"strings"
)

// FromStruct adds a context entry for each exported field of v, which
// must be a struct or pointer to struct. Entry names are the lowercased
// field names; the `inject:` tag renames a field the same way it does on
// a parameter struct. The Struct marker and unexported fields are
// skipped.
//
// This is a convenience for callers that already carry their values in a
// struct rather than a map.
func FromStruct(v interface{}) Arg {
	return func(a *argBuilder) error {
		sv := structValueOf(reflect.ValueOf(v))
		if sv.Kind() == reflect.Invalid {
			return fmt.Errorf(
				"only struct or pointer to struct types are supported in FromStruct, got %T", v)
		}

		st := sv.Type()
		for i := 0; i < st.NumField(); i++ {
			sf := st.Field(i)
			if sf.PkgPath != "" || isStructField(sf) {
				continue
			}

			name := sf.Name
			if tag := sf.Tag.Get("inject"); tag != "" {
				if parts := strings.Split(tag, ","); parts[0] != "" {
					name = parts[0]
				}
			}

			a.set(name, sv.Field(i))
		}

		return nil
	}
}
