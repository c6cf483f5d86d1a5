// Package contactform implements the contact form: field state, validation,
// and a single-flight submission with an idle/submitting/success/error lifecycle.
package contactform

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Zachkp/portfolio/internal/logger"
)

var (
	// ErrSubmitInProgress is returned when Submit is called while a request is in flight.
	ErrSubmitInProgress = errors.New("contact form submission already in progress")
	// ErrNotTerminal is returned by Reset outside the success and error states.
	ErrNotTerminal = errors.New("contact form is not in a terminal state")

	errSubmissionAborted = errors.New("contact form submission aborted")
)

// State is the lifecycle position of a form.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Status is the current State plus, for StateError, the cause.
type Status struct {
	State State
	Err   error
}

// Terminal reports whether the user has to acknowledge the outcome before
// editing the form again.
func (s Status) Terminal() bool {
	return s.State == StateSuccess || s.State == StateError
}

// ValidationError is returned by Submit when the fields did not pass Validate.
type ValidationError struct {
	Errors FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("contact form invalid: %v", e.Errors.Map())
}

// Submitter delivers a validated form.
type Submitter interface {
	Submit(ctx context.Context, payload Payload) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, payload Payload) error

func (f SubmitterFunc) Submit(ctx context.Context, payload Payload) error {
	return f(ctx, payload)
}

// Snapshot is a consistent copy of the form for rendering.
type Snapshot struct {
	Fields FormFields
	Errors FieldErrors
	Status Status
}

// Submitting reports whether the submit control should be disabled.
func (s Snapshot) Submitting() bool {
	return s.Status.State == StateSubmitting
}

// Workflow owns one form instance.
type Workflow struct {
	mu        sync.Mutex
	fields    FormFields
	errs      FieldErrors
	status    Status
	submitter Submitter
	log       *logger.Logger
}

// New returns an idle, empty form that delivers through submitter.
func New(submitter Submitter, log *logger.Logger) *Workflow {
	return &Workflow{
		submitter: submitter,
		log:       log.WithFields(map[string]any{"component": "contactform"}),
	}
}

// Update overwrites one field and clears that field's error, if any.
// No validation runs here.
func (w *Workflow) Update(field Field, value string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.fields.Set(field, value)
	if w.errs.Get(field) != "" {
		w.errs.Set(field, "")
	}
}

// Fields returns the current field values.
func (w *Workflow) Fields() FormFields {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fields
}

// Errors returns the current per-field errors.
func (w *Workflow) Errors() FieldErrors {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.errs
}

// Status returns the current lifecycle status.
func (w *Workflow) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// Snapshot returns fields, errors and status read under one lock.
func (w *Workflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Snapshot{Fields: w.fields, Errors: w.errs, Status: w.status}
}

// Submit validates the form and, if valid, delivers it exactly once.
//
// Invalid input returns a *ValidationError, leaves the errors populated and
// does not touch the status. While a submission is in flight further calls
// return ErrSubmitInProgress. A delivery failure moves the form to StateError,
// keeps the fields and is returned; success moves it to StateSuccess and
// clears the fields. The call blocks until the submitter returns; ctx is
// handed to the submitter untouched.
func (w *Workflow) Submit(ctx context.Context) error {
	w.mu.Lock()
	if w.status.State == StateSubmitting {
		w.mu.Unlock()
		return ErrSubmitInProgress
	}

	errs, ok := Validate(w.fields)
	w.errs = errs
	if !ok {
		w.mu.Unlock()
		return &ValidationError{Errors: errs}
	}

	payload := NewPayload(w.fields)
	w.status = Status{State: StateSubmitting}
	w.mu.Unlock()

	err := errSubmissionAborted
	defer func() { w.finish(err) }()

	err = w.submitter.Submit(ctx, payload)
	return err
}

func (w *Workflow) finish(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err != nil {
		w.log.Error(err, "contact form submission failed")
		w.status = Status{State: StateError, Err: err}
		return
	}
	w.log.Info("contact form submitted")
	w.status = Status{State: StateSuccess}
	w.fields = FormFields{}
}

// Reset returns a finished form to StateIdle with no errors. It never resubmits.
func (w *Workflow) Reset() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.status.Terminal() {
		return ErrNotTerminal
	}
	w.status = Status{State: StateIdle}
	w.errs = FieldErrors{}
	return nil
}
