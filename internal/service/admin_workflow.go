package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// WorkflowState is the state of one admin screen.
type WorkflowState int

const (
	StateIdle WorkflowState = iota
	StateValidating
	StateSubmitting
	StateValidationFailed
)

func (s WorkflowState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateValidationFailed:
		return "validation_failed"
	default:
		return fmt.Sprintf("WorkflowState(%d)", int(s))
	}
}

var (
	ErrSubmitInProgress     = errors.New("submission already in progress")
	ErrConfirmationRequired = errors.New("delete requires explicit confirmation")
	ErrRefreshFailed        = errors.New("saved, but the list could not be refreshed")
)

// FieldError is one invalid form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every invalid field of a submitted form. No write is
// attempted when a form fails validation.
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + " " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// CRUD is what an admin screen needs from its repository.
type CRUD[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, rec *T) error
	Update(ctx context.Context, rec *T) error
	Delete(ctx context.Context, id string) error
}

// Form turns submitted form fields into a record. An empty id builds a new
// record. Build returns a *ValidationError for bad input.
type Form[T any] interface {
	Build(id string) (T, error)
}

// Workflow is the in-memory state of one entity admin screen: the list it
// shows and the submit state machine
//
//	Idle -> Validating -> Submitting -> Idle
//	Idle -> Validating -> ValidationFailed -> Idle
//
// Submissions are not reentrant: a submit or delete while another is in
// flight fails with ErrSubmitInProgress. A successful write re-fetches the
// whole list; a failed one leaves the list untouched.
type Workflow[T any] struct {
	entity string
	store  CRUD[T]

	mu      sync.Mutex
	state   WorkflowState
	items   []T
	lastErr string
}

// NewWorkflow creates the workflow of one admin screen.
func NewWorkflow[T any](entity string, store CRUD[T]) *Workflow[T] {
	return &Workflow[T]{entity: entity, store: store}
}

func (w *Workflow[T]) Entity() string { return w.entity }

// State returns the current state.
func (w *Workflow[T]) State() WorkflowState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// LastError is the message of the most recent failure, cleared on success.
func (w *Workflow[T]) LastError() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

// Items returns a copy of the displayed list.
func (w *Workflow[T]) Items() []T {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]T, len(w.items))
	copy(out, w.items)
	return out
}

// Load fetches the list. On failure the previous list is kept.
func (w *Workflow[T]) Load(ctx context.Context) ([]T, error) {
	if err := w.refresh(ctx); err != nil {
		w.fail(err)
		return nil, err
	}
	return w.Items(), nil
}

// Submit validates the form and creates (empty id) or updates the record.
func (w *Workflow[T]) Submit(ctx context.Context, id string, form Form[T]) (*T, error) {
	if !w.begin() {
		return nil, ErrSubmitInProgress
	}
	defer w.transition(StateIdle)

	rec, err := form.Build(id)
	if err != nil {
		w.transition(StateValidationFailed)
		w.fail(err)
		return nil, err
	}

	w.transition(StateSubmitting)
	if id == "" {
		err = w.store.Create(ctx, &rec)
	} else {
		err = w.store.Update(ctx, &rec)
	}
	if err != nil {
		w.fail(err)
		return nil, err
	}

	if err := w.refresh(ctx); err != nil {
		w.fail(err)
		return &rec, fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}
	return &rec, nil
}

// Delete removes a record. Nothing is written unless confirmed is true.
func (w *Workflow[T]) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	if !w.begin() {
		return ErrSubmitInProgress
	}
	defer w.transition(StateIdle)

	w.transition(StateSubmitting)
	if err := w.store.Delete(ctx, id); err != nil {
		w.fail(err)
		return err
	}
	if err := w.refresh(ctx); err != nil {
		w.fail(err)
		return fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}
	return nil
}

// begin moves Idle to Validating, or reports that a submission is in flight.
func (w *Workflow[T]) begin() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateIdle {
		return false
	}
	w.state = StateValidating
	return true
}

func (w *Workflow[T]) transition(s WorkflowState) {
	w.mu.Lock()
	w.state = s
	w.mu.Unlock()
}

func (w *Workflow[T]) fail(err error) {
	w.mu.Lock()
	w.lastErr = err.Error()
	w.mu.Unlock()
}

// refresh replaces the list only after a successful fetch. The lock is not
// held across the store call.
func (w *Workflow[T]) refresh(ctx context.Context) error {
	items, err := w.store.List(ctx)
	if err != nil {
		return err
	}
	if items == nil {
		items = []T{}
	}
	w.mu.Lock()
	w.items = items
	w.lastErr = ""
	w.mu.Unlock()
	return nil
}
