package handshake

import (
	"context"
	"testing"
	"time"

	"github.com/questdrop/backend/pkg/errorx"
	"github.com/questdrop/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

const testOrigin = "http://localhost:3000"

func Test_Coordinator_DeliverResolvesWait(t *testing.T) {
	ctx := testutil.MockContext()
	c := NewCoordinator(testOrigin, time.Minute)

	state, err := c.Begin(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, state)

	c.Deliver(ctx, state, testOrigin, Message{
		Type:   MessageTypeSuccess,
		State:  state,
		UserID: "111",
	})

	msg, err := c.Wait(ctx, state)
	require.NoError(t, err)
	require.Equal(t, MessageTypeSuccess, msg.Type)
	require.Equal(t, "111", msg.UserID)
}

func Test_Coordinator_WrongOriginIsIgnored(t *testing.T) {
	ctx := testutil.MockContext()
	c := NewCoordinator(testOrigin, time.Minute)

	state, err := c.Begin(ctx)
	require.NoError(t, err)

	c.Deliver(ctx, state, "http://evil.example.com", Message{
		Type:   MessageTypeSuccess,
		State:  state,
		UserID: "111",
	})

	// The attempt is still pending, a matching origin resolves it.
	c.Deliver(ctx, state, testOrigin, Message{
		Type:   MessageTypeSuccess,
		State:  state,
		UserID: "222",
	})

	msg, err := c.Wait(ctx, state)
	require.NoError(t, err)
	require.Equal(t, "222", msg.UserID)
}

func Test_Coordinator_UnknownMessageTypeIsIgnored(t *testing.T) {
	ctx := testutil.MockContext()
	c := NewCoordinator(testOrigin, time.Minute)

	state, err := c.Begin(ctx)
	require.NoError(t, err)

	c.Deliver(ctx, state, testOrigin, Message{Type: "SOMETHING_ELSE", State: state})
	c.PopupClosed(state)

	_, err = c.Wait(ctx, state)
	require.Equal(t, errorx.New(errorx.Unavailable, "Authorization cancelled"), err)
}

func Test_Coordinator_FirstResolutionWins(t *testing.T) {
	ctx := testutil.MockContext()
	c := NewCoordinator(testOrigin, time.Minute)

	state, err := c.Begin(ctx)
	require.NoError(t, err)

	c.Deliver(ctx, state, testOrigin, Message{Type: MessageTypeSuccess, State: state, UserID: "111"})
	c.PopupClosed(state)
	c.Deliver(ctx, state, testOrigin, Message{Type: MessageTypeError, State: state, Error: "late"})

	msg, err := c.Wait(ctx, state)
	require.NoError(t, err)
	require.Equal(t, MessageTypeSuccess, msg.Type)
	require.Equal(t, "111", msg.UserID)
}

func Test_Coordinator_Timeout(t *testing.T) {
	ctx := testutil.MockContext()
	c := NewCoordinator(testOrigin, 20*time.Millisecond)

	state, err := c.Begin(ctx)
	require.NoError(t, err)

	_, err = c.Wait(ctx, state)
	require.Equal(t, errorx.New(errorx.Unavailable, "Authorization timed out"), err)
}

func Test_Coordinator_WaitCancelled(t *testing.T) {
	ctx := testutil.MockContext()
	c := NewCoordinator(testOrigin, time.Minute)

	state, err := c.Begin(ctx)
	require.NoError(t, err)

	cancelCtx, cancel := context.WithCancel(ctx)
	cancel()

	_, err = c.Wait(cancelCtx, state)
	require.Equal(t, errorx.New(errorx.Unavailable, "Authorization cancelled"), err)
}

func Test_Coordinator_UnknownState(t *testing.T) {
	ctx := testutil.MockContext()
	c := NewCoordinator(testOrigin, time.Minute)

	_, err := c.Wait(ctx, "never-begun")
	require.Equal(t, errorx.New(errorx.NotFound, "Unknown authorization attempt"), err)
}
