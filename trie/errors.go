package trie

import "github.com/pkg/errors"

// ErrNoKey is wrapped and panicked from Add when a value's key cannot be
// extracted. This and the other failure modes below are programmer errors,
// not recoverable conditions: they are raised immediately rather than
// threaded through an error return.
var ErrNoKey = errors.New("triekv: value has no extractable key")

// mustKey extracts value's key or panics with ErrNoKey, wrapped with the
// offending value for diagnostics.
func mustKey[K, V any](getKey func(V) (K, bool), value V) K {
	key, ok := getKey(value)
	if !ok {
		panic(errors.Wrapf(ErrNoKey, "%+v", value))
	}
	return key
}

// errorf builds a fatal configuration error, raised immediately via panic by
// the option that detects it: misconfiguration is treated the same as any
// other programmer error.
func errorf(format string, args ...any) error {
	return errors.Errorf(format, args...)
}
