package encounter

import "errors"

// State is the encounter state machine discriminant.
type State int

const (
	StateInit State = iota
	StateRoundStart
	StateTurnStart
	StateAwaitIntent
	StateValidateIntent
	StateExecuteAction
	StateCheckDeaths
	StateCheckMorale
	StateCheckVictory
	StateEnded
)

// String returns the symbolic name of the State.
func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateRoundStart:
		return "ROUND_START"
	case StateTurnStart:
		return "TURN_START"
	case StateAwaitIntent:
		return "AWAIT_INTENT"
	case StateValidateIntent:
		return "VALIDATE_INTENT"
	case StateExecuteAction:
		return "EXECUTE_ACTION"
	case StateCheckDeaths:
		return "CHECK_DEATHS"
	case StateCheckMorale:
		return "CHECK_MORALE"
	case StateCheckVictory:
		return "CHECK_VICTORY"
	case StateEnded:
		return "ENDED"
	default:
		return "UNKNOWN"
	}
}

// Outcome is the terminal result of an encounter.
type Outcome int

const (
	OutcomeUndecided Outcome = iota
	OutcomePartyVictory
	OutcomeOppositionVictory
	OutcomeFaulted
)

// String returns the symbolic name of the Outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeUndecided:
		return "UNDECIDED"
	case OutcomePartyVictory:
		return "PARTY_VICTORY"
	case OutcomeOppositionVictory:
		return "OPPOSITION_VICTORY"
	case OutcomeFaulted:
		return "FAULTED"
	default:
		return "UNKNOWN"
	}
}

// ErrEnded is returned when stepping an encounter that has already reached a
// terminal state.
var ErrEnded = errors.New("encounter: already ended")

// ErrLoopBudget is returned when StepUntilDecision exhausts its step budget
// without reaching a decision point. It marks a stuck or faulty encounter, not
// a slow one; the encounter outcome is set to FAULTED.
var ErrLoopBudget = errors.New("encounter: step budget exhausted")
