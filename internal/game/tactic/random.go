package tactic

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/action"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// Random is the default AI provider: it selects uniformly at random among the
// offered choices via the dice service, so it is deterministic under a
// scripted service and unpredictable in production.
type Random struct {
	svc    dice.Service
	logger *zap.Logger
}

// NewRandom creates a Random provider.
//
// Precondition: svc must be non-nil. A nil logger defaults to a no-op logger.
func NewRandom(svc dice.Service, logger *zap.Logger) *Random {
	if svc == nil {
		panic("tactic: NewRandom called with nil dice service")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Random{svc: svc, logger: logger}
}

// ChooseIntent picks one choice uniformly at random.
func (r *Random) ChooseIntent(combatantID string, choices []Choice) (action.Intent, error) {
	if len(choices) == 0 {
		return nil, errNoChoices(combatantID)
	}
	chosen := dice.Choice(r.svc, choices)
	r.logger.Debug("random tactic chose intent",
		zap.String("combatant", combatantID),
		zap.String("choice", chosen.Label),
	)
	return chosen.Intent, nil
}
