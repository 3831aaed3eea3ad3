package inject

import (
	"bytes"
	"fmt"
	"strings"
)

// ErrParameterUnsatisfied is the value returned when a required parameter
// of the target function has no matching entry in the context.
type ErrParameterUnsatisfied struct {
	// Func is the target function call that was attempted.
	Func *Func

	// Params are the parameters that aren't satisfied.
	Params []Param

	// Keys is the list of context keys that were provided for the call.
	// None of these matched the parameters above.
	Keys []string
}

func (e *ErrParameterUnsatisfied) Error() string {
	// Build our list of missing parameters
	missing := new(bytes.Buffer)
	for _, p := range e.Params {
		fmt.Fprintf(missing, "    - %s\n", p.String())
	}

	// Build our list of parameters the function declares
	declared := new(bytes.Buffer)
	for _, p := range e.Func.Params() {
		fmt.Fprintf(declared, "    - %s\n", p.String())
	}

	// Build our list of provided context keys
	keys := new(bytes.Buffer)
	if len(e.Keys) == 0 {
		fmt.Fprintf(keys, "    No context entries!\n")
	}
	for _, k := range e.Keys {
		fmt.Fprintf(keys, "    - %q\n", k)
	}

	return fmt.Sprintf(`
Parameter to function %q could not be satisfied!

This means that one (or more) of the parameters of the function has no
context entry matching its name. A complete error description is below
for debugging.

==> Unsatisfied parameters
    This is a list of the parameters that no context entry matched.

%s

==> Full list of declared parameters
    This is a list of the parameters the function declares. Matching is
    by exact lowercased name.

%s

==> Full list of context keys
    This is a list of the context keys that were provided. None of these
    matched the unsatisfied parameters; keys matching no parameter at all
    are dropped silently.

%s
`,
		e.Func.Name(),
		strings.TrimSuffix(missing.String(), "\n"),
		strings.TrimSuffix(declared.String(), "\n"),
		strings.TrimSuffix(keys.String(), "\n"),
	)
}

var _ error = (*ErrParameterUnsatisfied)(nil)
