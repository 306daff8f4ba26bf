package logtree

import (
	"errors"
	"strconv"
	"strings"
)

// Validation errors. Each aborts the call that triggered it before any
// writer runs.
var (
	ErrInvalidAcceptMode = errors.New("invalid accept mode")
	ErrInvalidWriter     = errors.New("invalid writer")
)

// WriterFault records one writer failure during delivery.
type WriterFault struct {
	// Module is the logger the writer is attached to.
	Module string
	// Index is the writer's position in that logger's writer list.
	Index int
	Err   error
}

func (f WriterFault) Error() string {
	module := f.Module
	if module == "" {
		module = "<root>"
	}
	return "writer " + strconv.Itoa(f.Index) + " on " + module + ": " + f.Err.Error()
}

func (f WriterFault) Unwrap() error {
	return f.Err
}

// WriteError collects the writer faults of a single Log call.
// Delivery continues past a failed writer, so a WriteError never means the
// record was lost everywhere.
type WriteError struct {
	Faults []WriterFault
}

// Error returns a string representation of all faults.
func (e *WriteError) Error() string {
	if len(e.Faults) == 1 {
		return e.Faults[0].Error()
	}

	var b strings.Builder
	b.WriteString("multiple writer errors:")
	for _, f := range e.Faults {
		b.WriteString("\n  - ")
		b.WriteString(f.Error())
	}
	return b.String()
}

// Unwrap returns the underlying errors for use with errors.Is/As.
func (e *WriteError) Unwrap() []error {
	errs := make([]error, len(e.Faults))
	for i, f := range e.Faults {
		errs[i] = f
	}
	return errs
}

func (e *WriteError) add(module string, index int, err error) *WriteError {
	if e == nil {
		e = &WriteError{}
	}
	e.Faults = append(e.Faults, WriterFault{Module: module, Index: index, Err: err})
	return e
}

// errOrNil avoids returning a typed nil inside an error interface.
func (e *WriteError) errOrNil() error {
	if e == nil {
		return nil
	}
	return e
}
