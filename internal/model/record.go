package model

import "github.com/google/uuid"

// Record is anything a collection can hold: one persisted item with a
// stable, unique id assigned at creation and never reused.
type Record interface {
	RecordID() string
}

// NewID returns a fresh opaque record id.
func NewID() string {
	return uuid.NewString()
}

// ValidationError is a user-input failure. Its message names the first
// unmet condition and is safe to show verbatim.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(msg string) error { return &ValidationError{Msg: msg} }
