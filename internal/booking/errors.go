package booking

import (
	"errors"
	"fmt"
)

var (
	ErrSessionNotFound  = errors.New("booking session not found")
	ErrLoginRequired    = errors.New("login required to book an appointment")
	ErrAlreadyConfirmed = errors.New("booking already confirmed")
	ErrUnknownSubject   = errors.New("unknown subject type")
	ErrWizardBusy       = errors.New("booking session is being updated")
)

// ValidationError reports a missing or invalid wizard field.
type ValidationError struct {
	Step   Step
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("step %d (%s): %s %s", e.Step, e.Step, e.Field, e.Reason)
}
