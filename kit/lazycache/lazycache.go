// Package lazycache lazily initializes derived values exactly once, no
// matter how many goroutines ask for them. Add a private Value[T] field to
// your struct and return it from a getter via Get or GetErr.
package lazycache

import "sync"

type Value[T any] struct {
	val  T
	err  error
	init sync.Once
}

func Get[T any](v *Value[T], initFunc func() T) T {
	v.init.Do(func() { v.val = initFunc() })
	return v.val
}

// GetErr memoizes both the value and the error: a failed init is not
// retried.
func GetErr[T any](v *Value[T], initFunc func() (T, error)) (T, error) {
	v.init.Do(func() { v.val, v.err = initFunc() })
	return v.val, v.err
}
