package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beyondbridge/internal/dndbeyond"
)

type fakeProber struct {
	profile json.RawMessage
	err     error
	cookies []string
}

func (p *fakeProber) Probe(_ context.Context, cookie string) (json.RawMessage, error) {
	p.cookies = append(p.cookies, cookie)
	if p.err != nil {
		return nil, p.err
	}
	return p.profile, nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	infos  []string
	errors []string
}

func (n *fakeNotifier) Info(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.infos = append(n.infos, msg)
}

func (n *fakeNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func TestValidator_Validate(t *testing.T) {
	t.Run("successful probe establishes the session", func(t *testing.T) {
		prober := &fakeProber{profile: json.RawMessage(`{"username":"gm"}`)}
		notifier := &fakeNotifier{}
		v := NewValidator(prober, notifier)

		sess, err := v.Validate(context.Background(), "cookie-value")
		require.NoError(t, err)

		assert.True(t, sess.Authenticated)
		assert.Equal(t, "cookie-value", sess.Credential)
		assert.JSONEq(t, `{"username":"gm"}`, string(sess.Profile))
		assert.Equal(t, sess, v.Current())
		assert.Equal(t, []string{"D&D Beyond authentication successful!"}, notifier.infos)
	})

	t.Run("missing credential fails without probing", func(t *testing.T) {
		prober := &fakeProber{}
		v := NewValidator(prober, &fakeNotifier{})

		_, err := v.Validate(context.Background(), "")
		assert.ErrorIs(t, err, dndbeyond.ErrMissingCredential)
		assert.Empty(t, prober.cookies)
		assert.False(t, v.Current().Authenticated)
	})

	t.Run("failed probe clears a previously valid session", func(t *testing.T) {
		prober := &fakeProber{profile: json.RawMessage(`{}`)}
		notifier := &fakeNotifier{}
		v := NewValidator(prober, notifier)

		_, err := v.Validate(context.Background(), "good")
		require.NoError(t, err)
		require.True(t, v.Current().Authenticated)

		prober.err = dndbeyond.ErrInvalidCookie
		_, err = v.Validate(context.Background(), "bad")
		assert.ErrorIs(t, err, dndbeyond.ErrInvalidCookie)

		assert.False(t, v.Current().Authenticated)
		assert.Equal(t, []string{"D&D Beyond authentication failed. Please check your Cobalt cookie."}, notifier.errors)
	})

	t.Run("failure is definitive for the call but retryable", func(t *testing.T) {
		prober := &fakeProber{err: errors.New("network down")}
		v := NewValidator(prober, &fakeNotifier{})

		_, err := v.Validate(context.Background(), "cookie")
		require.Error(t, err)

		prober.err = nil
		prober.profile = json.RawMessage(`{}`)
		sess, err := v.Validate(context.Background(), "cookie")
		require.NoError(t, err)
		assert.True(t, sess.Authenticated)
	})
}
