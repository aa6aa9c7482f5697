package template

import (
	"maps"
	"slices"
)

// PropertyNames returns the context property names available to templates
// of the given kind, sorted.
func PropertyNames(kind ContextKind) []string {
	return slices.Sorted(maps.Keys(contextProperties(kind)))
}

// BuiltinNames returns the global template function names, sorted.
func BuiltinNames() []string {
	return slices.Sorted(maps.Keys(builtins))
}

// MethodNames returns every method name across all value types, sorted and
// deduplicated.
func MethodNames() []string {
	var names []string

	for _, methods := range valueMethods {
		names = append(names, slices.Collect(maps.Keys(methods))...)
	}

	slices.Sort(names)

	return slices.Compact(names)
}
