package checkout

import (
	"errors"
	"fmt"
)

// State is the checkout session's position in the flow
// Loading -> {Empty, Reviewing} -> AwaitingIntent -> Paying -> Succeeded.
type State int

const (
	StateLoading State = iota
	StateEmpty
	StateReviewing
	StateAwaitingIntent
	StatePaying
	StateSucceeded
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateEmpty:
		return "empty"
	case StateReviewing:
		return "reviewing"
	case StateAwaitingIntent:
		return "awaiting_intent"
	case StatePaying:
		return "paying"
	case StateSucceeded:
		return "succeeded"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

var ErrInvalidTransition = errors.New("checkout: invalid transition")

var transitions = map[State][]State{
	StateLoading:        {StateEmpty, StateReviewing},
	StateEmpty:          {StateReviewing},
	StateReviewing:      {StateEmpty, StateAwaitingIntent},
	StateAwaitingIntent: {StateAwaitingIntent, StatePaying, StateReviewing, StateEmpty},
	StatePaying:         {StatePaying, StateReviewing, StateEmpty, StateSucceeded},
	StateSucceeded:      {},
}

func canTransition(from, to State) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}
