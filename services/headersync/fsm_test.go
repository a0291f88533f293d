package headersync

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiniteStateMachine(t *testing.T) {
	ctx := context.Background()

	t.Run("sync and resolve", func(t *testing.T) {
		fsm := NewFiniteStateMachine()
		assert.Equal(t, StateIdle, fsm.Current())

		assert.False(t, fsm.Can(EventDone))

		require.NoError(t, fsm.Event(ctx, EventSync))
		assert.Equal(t, StateSyncing, fsm.Current())

		require.NoError(t, fsm.Event(ctx, EventResolve))
		assert.Equal(t, StateResolving, fsm.Current())

		// back to syncing after a resolve in the middle of a batch
		require.NoError(t, fsm.Event(ctx, EventSync))
		assert.Equal(t, StateSyncing, fsm.Current())

		require.NoError(t, fsm.Event(ctx, EventDone))
		assert.Equal(t, StateIdle, fsm.Current())
	})

	t.Run("flush resolves from idle", func(t *testing.T) {
		fsm := NewFiniteStateMachine()

		require.NoError(t, fsm.Event(ctx, EventResolve))
		assert.Equal(t, StateResolving, fsm.Current())

		require.NoError(t, fsm.Event(ctx, EventDone))
		assert.Equal(t, StateIdle, fsm.Current())
	})

	t.Run("sync without resolve", func(t *testing.T) {
		fsm := NewFiniteStateMachine()

		require.NoError(t, fsm.Event(ctx, EventSync))
		require.NoError(t, fsm.Event(ctx, EventDone))
		assert.Equal(t, StateIdle, fsm.Current())
	})

	t.Run("stop from any state", func(t *testing.T) {
		for _, events := range [][]string{{}, {EventSync}, {EventSync, EventResolve}} {
			fsm := NewFiniteStateMachine()

			for _, event := range events {
				require.NoError(t, fsm.Event(ctx, event))
			}

			require.NoError(t, fsm.Event(ctx, EventStop))
			assert.Equal(t, StateStopped, fsm.Current())
			assert.False(t, fsm.Can(EventSync))
		}
	})

	t.Run("sync while syncing is refused", func(t *testing.T) {
		fsm := NewFiniteStateMachine()

		require.NoError(t, fsm.Event(ctx, EventSync))
		require.Error(t, fsm.Event(ctx, EventSync))
	})
}
