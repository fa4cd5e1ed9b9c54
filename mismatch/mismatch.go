// Package mismatch provides a small generic container for carrying both
// sides of a failed comparison (what was expected, what was actually found)
// through the error taxonomy returned by the verifier package.
package mismatch

import "fmt"

// Mismatch pairs the expected and found values of a failed comparison.
type Mismatch[T any] struct {
	Expected T
	Found    T
}

// New constructs a Mismatch from an expected/found pair.
func New[T any](expected, found T) Mismatch[T] {
	return Mismatch[T]{Expected: expected, Found: found}
}

// String renders the mismatch for inclusion in error messages.
func (m Mismatch[T]) String() string {
	return fmt.Sprintf("expected=%v found=%v", m.Expected, m.Found)
}
