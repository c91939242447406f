package enum

import (
	"fmt"
	"reflect"
	"sync"
)

var (
	enumManager = map[reflect.Type]any{}
	mutex       sync.RWMutex
)

type enum[T ~string] struct {
	toEnum map[string]T
}

// New registers value as a valid member of its enum type and returns it
// unchanged. It is meant to be used in package level var blocks.
func New[T ~string](value T) T {
	mutex.Lock()
	defer mutex.Unlock()

	t := reflect.TypeOf(value)
	if _, ok := enumManager[t]; !ok {
		enumManager[t] = enum[T]{toEnum: make(map[string]T)}
	}

	enumManager[t].(enum[T]).toEnum[string(value)] = value
	return value
}

// ToEnum converts s to a registered member of T.
func ToEnum[T ~string](s string) (T, error) {
	mutex.RLock()
	defer mutex.RUnlock()

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
