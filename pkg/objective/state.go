package objective

import "fmt"

// AGVState is what an AGV is doing during a recorded interval.
type AGVState int

const (
	stateInvalid AGVState = iota
	StateIdle
	StateMovingEmpty
	StateMovingLoaded
	StateLoading
	StateUnloading
	StateCharging
	StateWaiting
	StateBlocked
)

// AGVStates lists every declared state in declaration order.
var AGVStates = []AGVState{
	StateIdle, StateMovingEmpty, StateMovingLoaded, StateLoading,
	StateUnloading, StateCharging, StateWaiting, StateBlocked,
}

func (s AGVState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMovingEmpty:
		return "moving_empty"
	case StateMovingLoaded:
		return "moving_loaded"
	case StateLoading:
		return "loading"
	case StateUnloading:
		return "unloading"
	case StateCharging:
		return "charging"
	case StateWaiting:
		return "waiting"
	case StateBlocked:
		return "blocked"
	case stateInvalid:
		return "unknown"
	}
	return "unknown"
}

// Valid reports whether s is a declared state.
func (s AGVState) Valid() bool {
	return s >= StateIdle && s <= StateBlocked
}

// Busy reports whether the AGV is doing task work, loaded or not.
func (s AGVState) Busy() bool {
	switch s {
	case StateMovingEmpty, StateMovingLoaded, StateLoading, StateUnloading:
		return true
	}
	return false
}

// Productive reports whether the AGV is moving goods.
func (s AGVState) Productive() bool {
	switch s {
	case StateMovingLoaded, StateLoading, StateUnloading:
		return true
	}
	return false
}

// ParseAGVState parses the lowercase name of a state.
func ParseAGVState(str string) (AGVState, error) {
	for _, s := range AGVStates {
		if s.String() == str {
			return s, nil
		}
	}
	return stateInvalid, fmt.Errorf("%w: %q", ErrInvalidState, str)
}

func (s AGVState) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidState, int(s))
	}
	return []byte(s.String()), nil
}

func (s *AGVState) UnmarshalText(text []byte) error {
	parsed, err := ParseAGVState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
