package headersync

const (
	StateIdle      = "IDLE"
	StateSyncing   = "SYNCING"
	StateResolving = "RESOLVING"
	StateStopped   = "STOPPED"
)

const (
	EventSync    = "SYNC"
	EventResolve = "RESOLVE"
	EventDone    = "DONE"
	EventStop    = "STOP"
)
