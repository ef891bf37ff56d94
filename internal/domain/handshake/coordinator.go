package handshake

import (
	"context"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync"
	"github.com/questdrop/backend/pkg/crypto"
	"github.com/questdrop/backend/pkg/errorx"
	"github.com/questdrop/backend/pkg/xcontext"
)

const (
	MessageTypeSuccess = "DISCORD_OAUTH_SUCCESS"
	MessageTypeError   = "DISCORD_OAUTH_ERROR"
)

// Message is what the popup callback page posts back to its opener.
type Message struct {
	Type     string `json:"type"`
	State    string `json:"state,omitempty"`
	UserID   string `json:"userId,omitempty"`
	Username string `json:"username,omitempty"`
	Error    string `json:"error,omitempty"`
}

type Result struct {
	Message Message
	Err     error
}

// Coordinator tracks in-flight popup handshakes. Each attempt is keyed by a
// random state nonce and resolves exactly once: by a delivered message, by
// the popup closing, or by timeout.
type Coordinator struct {
	origin   string
	timeout  time.Duration
	attempts *xsync.MapOf[string, *attempt]
}

type attempt struct {
	once   sync.Once
	result chan Result
	timer  *time.Timer
}

func NewCoordinator(origin string, timeout time.Duration) *Coordinator {
	return &Coordinator{
		origin:   origin,
		timeout:  timeout,
		attempts: xsync.NewMapOf[*attempt](),
	}
}

// Begin registers a new handshake attempt and returns its state nonce.
func (c *Coordinator) Begin(ctx context.Context) (string, error) {
	state, err := crypto.GenerateRandomString()
	if err != nil {
		return "", err
	}

	a := &attempt{result: make(chan Result, 1)}
	a.timer = time.AfterFunc(c.timeout, func() {
		c.resolve(state, Result{Err: errorx.New(errorx.Unavailable, "Authorization timed out")})
	})

	c.attempts.Store(state, a)
	return state, nil
}

// Deliver hands a callback message to the waiting attempt. Messages from an
// unexpected origin or with an unknown state are dropped, the attempt keeps
// waiting.
func (c *Coordinator) Deliver(ctx context.Context, state, origin string, msg Message) {
	if origin != c.origin {
		xcontext.Logger(ctx).Warnf("Dropped a handshake message from origin %s", origin)
		return
	}

	if msg.Type != MessageTypeSuccess && msg.Type != MessageTypeError {
		return
	}

	c.resolve(state, Result{Message: msg})
}

// PopupClosed reports that the user closed the popup before it delivered a
// message.
func (c *Coordinator) PopupClosed(state string) {
	c.resolve(state, Result{Err: errorx.New(errorx.Unavailable, "Authorization cancelled")})
}

// Wait blocks until the attempt resolves or the context is cancelled. The
// attempt is consumed either way.
func (c *Coordinator) Wait(ctx context.Context, state string) (Message, error) {
	a, ok := c.attempts.Load(state)
	if !ok {
		return Message{}, errorx.New(errorx.NotFound, "Unknown authorization attempt")
	}

	select {
	case result := <-a.result:
		c.attempts.Delete(state)
		if result.Err != nil {
			return Message{}, result.Err
		}
		return result.Message, nil

	case <-ctx.Done():
		c.resolve(state, Result{Err: errorx.New(errorx.Unavailable, "Authorization cancelled")})
		return Message{}, errorx.New(errorx.Unavailable, "Authorization cancelled")
	}
}

func (c *Coordinator) resolve(state string, result Result) {
	a, ok := c.attempts.Load(state)
	if !ok {
		return
	}

	a.once.Do(func() {
		a.timer.Stop()
		a.result <- result

		// A resolved attempt nobody waits on must not live forever.
		time.AfterFunc(c.timeout, func() { c.attempts.Delete(state) })
	})
}
