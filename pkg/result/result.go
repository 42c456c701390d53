// Package result provides a two-variant outcome type used by every
// authorization request validation step.
package result

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-training/oauth-authorize/pkg/oautherr"
)

type state uint8

const (
	stateUnset state = iota
	stateSuccess
	stateFailure
)

// Result holds either a value or an OAuth error, never both.
// The zero value is unset; reading it panics.
type Result[T any] struct {
	state state
	value T
	err   *oautherr.Error
}

// Success wraps value. It panics when value is a nil pointer, map, slice,
// func, chan or interface.
func Success[T any](value T) Result[T] {
	if isNil(value) {
		panic(fmt.Sprintf("result: Success called with nil %T", value))
	}
	return Result[T]{state: stateSuccess, value: value}
}

// Failure wraps err. It panics on nil or oautherr.None.
func Failure[T any](err *oautherr.Error) Result[T] {
	if err.IsNone() {
		panic("result: Failure called without an error")
	}
	return Result[T]{state: stateFailure, err: err}
}

// FromError converts an error carrying an *oautherr.Error into a failure.
// It panics when err holds no OAuth error.
func FromError[T any](err error) Result[T] {
	var oerr *oautherr.Error
	if !errors.As(err, &oerr) {
		panic(fmt.Sprintf("result: FromError called with non-OAuth error %v", err))
	}
	return Failure[T](oerr)
}

// IsSuccess reports whether r carries a value.
func (r Result[T]) IsSuccess() bool {
	return r.state == stateSuccess
}

// IsFailure reports whether r carries an error.
func (r Result[T]) IsFailure() bool {
	return r.state == stateFailure
}

// Value returns the wrapped value and whether r is a success.
func (r Result[T]) Value() (T, bool) {
	return r.value, r.state == stateSuccess
}

// MustValue returns the wrapped value or panics.
func (r Result[T]) MustValue() T {
	r.mustBeSet()
	if r.state != stateSuccess {
		panic(fmt.Sprintf("result: MustValue on failure %v", r.err))
	}
	return r.value
}

// Err returns the failure, or nil for a success.
func (r Result[T]) Err() *oautherr.Error {
	r.mustBeSet()
	return r.err
}

func (r Result[T]) mustBeSet() {
	if r.state == stateUnset {
		panic("result: use of unset Result")
	}
}

// Then calls next with the value of r when r is a success. A failure is
// carried through unchanged and next is not called.
func Then[T, U any](r Result[T], next func(T) Result[U]) Result[U] {
	r.mustBeSet()
	if r.state == stateFailure {
		return Failure[U](r.err)
	}
	return next(r.value)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
