// Package feeder defines the boundary of the sorter: a Feeder produces the
// sequence to sort, a Sink consumes the sorted one. Both speak the text format
// read by Decode and written by Encode.
package feeder

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput is returned when the input is not a count N followed by exactly N integers.
	ErrMalformedInput = errors.New("malformed input")
	// ErrIOFailure is returned when a source or a sink cannot be read from or written to.
	ErrIOFailure = errors.New("i/o failure")
)

// Feeder produces a sequence of integers.
type Feeder interface {
	GetFeed() ([]int, error)
	Stop() error
}

// Sink consumes a sorted sequence of integers.
type Sink interface {
	Put([]int) error
	Stop() error
}

// IOError records a failed operation on a source or a sink, it matches ErrIOFailure.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s: %v", ErrIOFailure, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s %s: %v", ErrIOFailure, e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func (e *IOError) Is(target error) bool {
	return target == ErrIOFailure
}
