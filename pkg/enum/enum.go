package enum

import (
	"fmt"
	"reflect"
)

// enumManager is only written during package initialization.
var enumManager = map[reflect.Type]any{}

type enum[T comparable] struct {
	toEnum   map[string]T
	toString map[T]string
}

// New registers value under the given wire name and returns value, so that it
// can be used directly in a var block.
func New[T comparable](value T, name string) T {
	t := reflect.TypeOf(value)
	if _, ok := enumManager[t]; !ok {
		enumManager[t] = enum[T]{toEnum: make(map[string]T), toString: make(map[T]string)}
	}

	e := enumManager[t].(enum[T])
	e.toEnum[name] = value
	e.toString[value] = name
	return value
}

func ToEnum[T comparable](s string) (T, error) {
	var defaultT T
	e, ok := enumManager[reflect.TypeOf(defaultT)]
	if !ok {
		return defaultT, fmt.Errorf("not found enum type %T", defaultT)
	}

	t, ok := e.(enum[T]).toEnum[s]
	if !ok {
		return defaultT, fmt.Errorf("not found value %s in enum %T", s, defaultT)
	}

	return t, nil
}

// ToString returns the wire name of v, or an empty string if v was never
// registered.
func ToString[T comparable](v T) string {
	e, ok := enumManager[reflect.TypeOf(v)]
	if !ok {
		return ""
	}

	return e.(enum[T]).toString[v]
}

// Values returns every registered value of T.
func Values[T comparable]() []T {
	var defaultT T
	e, ok := enumManager[reflect.TypeOf(defaultT)]
	if !ok {
		return nil
	}

	result := make([]T, 0, len(e.(enum[T]).toString))
	for v := range e.(enum[T]).toString {
		result = append(result, v)
	}
	return result
}
