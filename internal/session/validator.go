// Package session validates provider credentials and tracks the current
// authenticated session.
package session

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"beyondbridge/internal/dndbeyond"
)

// Session is the outcome of the most recent credential validation.
// Authenticated implies Profile is non-nil and Credential is the value that
// was last successfully validated.
type Session struct {
	Credential    string
	Authenticated bool
	Profile       json.RawMessage
}

// Notifier receives human-readable validation outcomes for display.
type Notifier interface {
	Info(msg string)
	Error(msg string)
}

// LogNotifier writes notifications to the process log.
type LogNotifier struct{}

func (LogNotifier) Info(msg string)  { log.Printf("Notification: %s", msg) }
func (LogNotifier) Error(msg string) { log.Printf("Notification (error): %s", msg) }

// Prober issues a single authenticated probe request against the provider.
type Prober interface {
	Probe(ctx context.Context, cookie string) (json.RawMessage, error)
}

// Validator performs credential validation and holds the current session.
type Validator struct {
	prober   Prober
	notifier Notifier

	mu      sync.RWMutex
	current Session
}

// NewValidator creates a validator. A nil notifier falls back to the log.
func NewValidator(prober Prober, notifier Notifier) *Validator {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &Validator{prober: prober, notifier: notifier}
}

// Validate issues one probe request with the given credential. A missing
// credential fails without touching the network. A single failed probe is a
// definitive "not authenticated" result for that call; the session is cleared
// and the caller may re-invoke with a corrected credential.
func (v *Validator) Validate(ctx context.Context, credential string) (Session, error) {
	if credential == "" {
		v.clear()
		return Session{}, dndbeyond.ErrMissingCredential
	}

	profile, err := v.prober.Probe(ctx, credential)
	if err != nil {
		v.clear()
		v.notifier.Error("D&D Beyond authentication failed. Please check your Cobalt cookie.")
		return Session{}, err
	}

	sess := Session{
		Credential:    credential,
		Authenticated: true,
		Profile:       profile,
	}

	v.mu.Lock()
	v.current = sess
	v.mu.Unlock()

	v.notifier.Info("D&D Beyond authentication successful!")
	return sess, nil
}

// Current returns the most recent session state.
func (v *Validator) Current() Session {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

func (v *Validator) clear() {
	v.mu.Lock()
	v.current = Session{}
	v.mu.Unlock()
}
