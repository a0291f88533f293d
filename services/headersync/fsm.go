package headersync

import (
	"github.com/looplab/fsm"
)

// NewFiniteStateMachine creates the state machine of a Syncer.
// The finite state machine has the following states:
// - IDLE
// - SYNCING
// - RESOLVING
// - STOPPED
// The finite state machine has the following events:
// - SYNC
// - RESOLVE
// - DONE
// - STOP
func NewFiniteStateMachine(opts ...func(*fsm.FSM)) *fsm.FSM {
	finiteStateMachine := fsm.NewFSM(
		StateIdle,
		fsm.Events{
			{
				Name: EventSync,
				Src: []string{
					StateIdle,
					StateResolving,
				},
				Dst: StateSyncing,
			},
			{
				Name: EventResolve,
				Src: []string{
					StateIdle,
					StateSyncing,
				},
				Dst: StateResolving,
			},
			{
				Name: EventDone,
				Src: []string{
					StateSyncing,
					StateResolving,
				},
				Dst: StateIdle,
			},
			{
				Name: EventStop,
				Src: []string{
					StateIdle,
					StateSyncing,
					StateResolving,
				},
				Dst: StateStopped,
			},
		},
		fsm.Callbacks{},
	)

	// apply options
	for _, opt := range opts {
		opt(finiteStateMachine)
	}

	return finiteStateMachine
}
