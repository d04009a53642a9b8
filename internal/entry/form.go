package entry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
)

// State is the submission state of a Form.
type State int

const (
	StateIdle State = iota
	StateSubmitting
)

func (s State) String() string {
	if s == StateSubmitting {
		return "submitting"
	}
	return "idle"
}

var (
	ErrSubmissionInFlight = errors.New("entry: submission already in flight")
	ErrDraftConsumed      = errors.New("entry: draft already submitted")
)

// PersistenceError wraps a failed create-transaction call.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("entry: create transaction: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Notification is a modal acknowledgment shown to the user.
type Notification struct {
	Title     string
	Message   string
	OnDismiss func()
}

// SessionProvider exposes the current user, or nil when nobody is logged in.
type SessionProvider interface {
	CurrentUser(ctx context.Context) *Session
}

// TransactionCreator persists one transaction for a user.
type TransactionCreator interface {
	CreateTransaction(ctx context.Context, userID string, payload Payload) error
}

type Notifier interface {
	Notify(ctx context.Context, notification Notification)
}

type Navigator interface {
	GoBack(ctx context.Context)
}

// Dependencies are the collaborators a Form talks to.
type Dependencies struct {
	Sessions  SessionProvider
	Creator   TransactionCreator
	Notifier  Notifier
	Navigator Navigator
	Logger    logrus.FieldLogger
}

// Form drives one entry screen: it owns a private draft and submits it at
// most once at a time.
type Form struct {
	cfg  KindConfig
	deps Dependencies

	mu       sync.Mutex
	draft    Draft
	state    State
	consumed bool
}

// NewForm mounts a form for cfg with a draft dated openedAt.
func NewForm(cfg KindConfig, deps Dependencies, openedAt time.Time) *Form {
	if deps.Logger == nil {
		deps.Logger = logrus.StandardLogger()
	}
	return &Form{
		cfg:   cfg,
		deps:  deps,
		draft: NewDraft(cfg.Kind, openedAt),
	}
}

func (f *Form) Config() KindConfig {
	return f.cfg
}

// Draft returns a copy of the current draft.
func (f *Form) Draft() Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Edit applies a field change. Edits are refused while a submission is in
// flight and after the draft has been consumed.
func (f *Form) Edit(edit func(d *Draft)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateSubmitting {
		return ErrSubmissionInFlight
	}
	if f.consumed {
		return ErrDraftConsumed
	}
	edit(&f.draft)
	f.draft.Kind = f.cfg.Kind
	return nil
}

// Submit validates the draft and, when it passes, calls the transaction
// creator exactly once. Every outcome is reported through the Notifier; a
// successful acknowledgment navigates back when dismissed. Failures leave
// the draft as it was so the user can retry.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.state == StateSubmitting {
		f.mu.Unlock()
		return ErrSubmissionInFlight
	}
	if f.consumed {
		f.mu.Unlock()
		return ErrDraftConsumed
	}

	session := f.deps.Sessions.CurrentUser(ctx)
	payload, err := Validate(f.cfg, f.draft, session)
	if err != nil {
		f.mu.Unlock()
		var verr *ValidationError
		message := err.Error()
		if errors.As(err, &verr) {
			message = verr.Message
		}
		f.notify(ctx, Notification{Title: "Error", Message: message})
		return err
	}
	f.state = StateSubmitting
	f.mu.Unlock()

	logger := f.deps.Logger.WithFields(logrus.Fields{
		"kind":   f.cfg.Kind,
		"userID": session.UserID,
	})
	if e, ok := logger.(*logrus.Entry); ok && e.Logger.IsLevelEnabled(logrus.DebugLevel) {
		e.Debugf("Form.Submit.payload %s", spew.Sdump(payload))
	}

	err = f.create(ctx, session.UserID, payload)

	f.mu.Lock()
	f.state = StateIdle
	if err == nil {
		f.consumed = true
	}
	f.mu.Unlock()

	if err != nil {
		logger.WithError(err).Error("Form.Submit.createTransaction")
		f.notify(ctx, Notification{Title: "Error", Message: f.cfg.FailureMessage})
		return &PersistenceError{Err: err}
	}

	f.notify(ctx, Notification{
		Title:   "Success",
		Message: f.cfg.SuccessMessage,
		OnDismiss: func() {
			if f.deps.Navigator != nil {
				f.deps.Navigator.GoBack(ctx)
			}
		},
	})
	return nil
}

func (f *Form) create(ctx context.Context, userID string, payload Payload) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	// a sent submission runs to completion even if the caller goes away
	return f.deps.Creator.CreateTransaction(context.WithoutCancel(ctx), userID, payload)
}

func (f *Form) notify(ctx context.Context, notification Notification) {
	if f.deps.Notifier != nil {
		f.deps.Notifier.Notify(ctx, notification)
	}
}
