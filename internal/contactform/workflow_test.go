package contactform

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSubmitter struct {
	mu       sync.Mutex
	payloads []Payload
	err      error
}

func (r *recordingSubmitter) Submit(_ context.Context, p Payload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payloads = append(r.payloads, p)
	return r.err
}

func fill(w *Workflow, f FormFields) {
	for _, field := range AllFields {
		w.Update(field, f.Get(field))
	}
}

func TestWorkflowStartsIdleAndEmpty(t *testing.T) {
	w := New(&recordingSubmitter{}, nil)
	snap := w.Snapshot()
	assert.Equal(t, StateIdle, snap.Status.State)
	assert.Equal(t, FormFields{}, snap.Fields)
	assert.False(t, snap.Errors.Any())
	assert.False(t, snap.Submitting())
}

func TestSubmitInvalidDoesNotCallSubmitter(t *testing.T) {
	sub := &recordingSubmitter{}
	w := New(sub, nil)
	w.Update(FirstName, "John")

	err := w.Submit(context.Background())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, sub.payloads)
	assert.Equal(t, StateIdle, w.Status().State)
	assert.Empty(t, w.Errors().FirstName)
	assert.Equal(t, MsgLastNameRequired, w.Errors().LastName)
	assert.Equal(t, verr.Errors, w.Errors())
}

func TestUpdateClearsOnlyThatFieldsError(t *testing.T) {
	w := New(&recordingSubmitter{}, nil)
	require.Error(t, w.Submit(context.Background()))
	require.NotEmpty(t, w.Errors().Email)

	w.Update(Email, "not-an-email")

	errs := w.Errors()
	assert.Empty(t, errs.Email, "edited field error cleared without revalidation")
	assert.Equal(t, MsgFirstNameRequired, errs.FirstName)
	assert.Equal(t, MsgLastNameRequired, errs.LastName)
	assert.Equal(t, MsgMessageRequired, errs.Message)
}

func TestSubmitSuccessPostsPayloadAndClearsFields(t *testing.T) {
	sub := &recordingSubmitter{}
	w := New(sub, nil)
	fill(w, validFields())

	require.NoError(t, w.Submit(context.Background()))

	require.Len(t, sub.payloads, 1)
	assert.Equal(t, Payload{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@example.com",
		Message:   "Hello, this is a test.",
	}, sub.payloads[0])
	assert.Equal(t, StateSuccess, w.Status().State)
	assert.Equal(t, FormFields{}, w.Fields())
}

func TestSubmitFailureKeepsFields(t *testing.T) {
	boom := errors.New("503")
	sub := &recordingSubmitter{err: boom}
	w := New(sub, nil)
	fill(w, validFields())

	err := w.Submit(context.Background())

	require.ErrorIs(t, err, boom)
	status := w.Status()
	assert.Equal(t, StateError, status.State)
	assert.ErrorIs(t, status.Err, boom)
	assert.Equal(t, validFields(), w.Fields())
	assert.Len(t, sub.payloads, 1)
}

func TestSubmitRejectsConcurrentSubmission(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	w := New(SubmitterFunc(func(context.Context, Payload) error {
		calls.Add(1)
		<-release
		return nil
	}), nil)
	fill(w, validFields())

	done := make(chan error, 1)
	go func() { done <- w.Submit(context.Background()) }()

	require.Eventually(t, func() bool { return w.Snapshot().Submitting() }, time.Second, time.Millisecond)

	for i := 0; i < 5; i++ {
		require.ErrorIs(t, w.Submit(context.Background()), ErrSubmitInProgress)
	}

	close(release)
	require.NoError(t, <-done)
	assert.EqualValues(t, 1, calls.Load())
	assert.Equal(t, StateSuccess, w.Status().State)
}

func TestSubmitClearsSubmittingWhenSubmitterPanics(t *testing.T) {
	w := New(SubmitterFunc(func(context.Context, Payload) error {
		panic("transport exploded")
	}), nil)
	fill(w, validFields())

	require.Panics(t, func() { _ = w.Submit(context.Background()) })

	status := w.Status()
	assert.Equal(t, StateError, status.State)
	assert.ErrorIs(t, status.Err, errSubmissionAborted)
}

func TestResetOnlyFromTerminalStates(t *testing.T) {
	sub := &recordingSubmitter{err: errors.New("down")}
	w := New(sub, nil)

	require.ErrorIs(t, w.Reset(), ErrNotTerminal)

	fill(w, validFields())
	require.Error(t, w.Submit(context.Background()))
	require.Equal(t, StateError, w.Status().State)

	require.NoError(t, w.Reset())
	assert.Equal(t, StateIdle, w.Status().State)
	assert.False(t, w.Errors().Any())
	assert.Len(t, sub.payloads, 1, "reset never resubmits")
	assert.Equal(t, validFields(), w.Fields(), "try again keeps what was typed")

	require.ErrorIs(t, w.Reset(), ErrNotTerminal)
}

func TestSendAnotherMessageAfterSuccess(t *testing.T) {
	sub := &recordingSubmitter{}
	w := New(sub, nil)
	fill(w, validFields())
	require.NoError(t, w.Submit(context.Background()))

	require.NoError(t, w.Reset())
	fill(w, FormFields{FirstName: "Jane", LastName: "Roe", Email: "jane@example.org", Message: "Second message here"})
	require.NoError(t, w.Submit(context.Background()))

	require.Len(t, sub.payloads, 2)
	assert.Equal(t, "Jane", sub.payloads[1].FirstName)
}

func TestSubmitFromErrorStateClearsPriorStatus(t *testing.T) {
	sub := &recordingSubmitter{err: errors.New("down")}
	w := New(sub, nil)
	fill(w, validFields())
	require.Error(t, w.Submit(context.Background()))

	sub.mu.Lock()
	sub.err = nil
	sub.mu.Unlock()

	require.NoError(t, w.Submit(context.Background()))
	status := w.Status()
	assert.Equal(t, StateSuccess, status.State)
	assert.NoError(t, status.Err)
}

func TestStateStringAndTerminal(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "submitting", StateSubmitting.String())
	assert.Equal(t, "success", StateSuccess.String())
	assert.Equal(t, "error", StateError.String())
	assert.False(t, Status{State: StateSubmitting}.Terminal())
	assert.True(t, Status{State: StateError}.Terminal())
}
