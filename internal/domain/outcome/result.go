// Package outcome carries the success or failure of an operation that can fail
// for business reasons without turning that failure into a Go error return.
package outcome

import (
	"errors"
	"reflect"
	"strings"
)

// Result holds either a value or a failure.
type Result[T any] struct {
	value T
	err   error
	ok    bool
}

// Success wraps a value. It panics when value is a nil pointer, map, slice,
// interface, channel or func.
func Success[T any](value T) Result[T] {
	if isNil(value) {
		panic("outcome: success result must have a value")
	}
	return Result[T]{value: value, ok: true}
}

// Failure wraps a failure message. It panics when message is blank.
func Failure[T any](message string) Result[T] {
	if strings.TrimSpace(message) == "" {
		panic("outcome: failure result must have an error")
	}
	return Result[T]{err: errors.New(message)}
}

// Fail wraps a failure error, keeping it available to errors.Is and errors.As.
// It panics when err is nil or carries a blank message.
func Fail[T any](err error) Result[T] {
	if err == nil || strings.TrimSpace(err.Error()) == "" {
		panic("outcome: failure result must have an error")
	}
	return Result[T]{err: err}
}

// IsSuccess reports whether the result carries a value.
func (r Result[T]) IsSuccess() bool { return r.ok }

// Value returns the carried value, or the zero value on failure.
func (r Result[T]) Value() T { return r.value }

// Error returns the failure message, or "" on success.
func (r Result[T]) Error() string {
	if r.err == nil {
		return ""
	}
	return r.err.Error()
}

// Err returns the failure as an error, or nil on success.
func (r Result[T]) Err() error { return r.err }

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan, reflect.Func:
		return rv.IsNil()
	}
	return false
}
