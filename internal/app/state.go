package app

import "fmt"

// state tracks the orchestrator's position in the lifecycle. Transitions
// move strictly forward within one invocation; no state is revisited.
type state int

const (
	stateCreated state = iota
	stateDiscovering
	stateBuildingArgs
	stateParsingArgs
	stateLoadingConfig
	stateInitializingRuntime
	stateDispatching
	stateDone
	stateFailed
)

// String returns the state's name for logs.
func (s state) String() string {
	switch s {
	case stateCreated:
		return "Created"
	case stateDiscovering:
		return "Discovering"
	case stateBuildingArgs:
		return "BuildingArgs"
	case stateParsingArgs:
		return "ParsingArgs"
	case stateLoadingConfig:
		return "LoadingConfig"
	case stateInitializingRuntime:
		return "InitializingRuntime"
	case stateDispatching:
		return "Dispatching"
	case stateDone:
		return "Done"
	case stateFailed:
		return "Failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// terminal reports whether no further transition may leave s.
func (s state) terminal() bool {
	return s == stateDone || s == stateFailed
}

// advance moves the orchestrator forward to next. Moving backwards, or out
// of a terminal state, is a programmer error in the phase driver.
func (a *App) advance(next state) {
	if a.state.terminal() || next <= a.state {
		panic(fmt.Sprintf("invalid lifecycle transition %s -> %s", a.state, next))
	}
	a.logger.Debug("Lifecycle phase entered.", "from", a.state.String(), "to", next.String())
	a.state = next
}

// fail moves the orchestrator to the Failed terminal state. Reachable from
// any non-terminal state.
func (a *App) fail() {
	if a.state.terminal() {
		return
	}
	a.logger.Debug("Lifecycle failed.", "from", a.state.String())
	a.state = stateFailed
}
