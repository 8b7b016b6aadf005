package handler

import (
	"errors"
	"fmt"
)

var (
	// ErrHalt is returned by a before-stage that deliberately stops the
	// pipeline after writing its own response.
	ErrHalt = errors.New("pipeline halted")

	// ErrNoContinuation is captured when a before-stage returns without
	// calling next, without an error and without sending a response.
	ErrNoContinuation = errors.New("before stage neither continued nor responded")

	// ErrResponseSent is returned by the reply writer on a second send.
	ErrResponseSent = errors.New("response already sent")
)

// StageError carries an error raised by a pipeline stage into the finally-chain.
type StageError struct {
	Stage Stage
	Index int // position within the chain; 0 for the handler
	Err   error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage %d: %v", e.Stage, e.Index, e.Err)
}

// Unwrap allows errors.Is/As to reach the original error.
func (e *StageError) Unwrap() error {
	return e.Err
}

// PanicError wraps a value recovered from a panicking stage.
type PanicError struct {
	Value any
	Stack []byte
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
