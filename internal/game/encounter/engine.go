package encounter

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/action"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/modifier"
	"github.com/cory-johannsen/skirmish/internal/game/spell"
	"github.com/cory-johannsen/skirmish/internal/game/tactic"
)

// Turn-order policies.
const (
	TurnOrderRoster     = "roster"     // stable roster order each round
	TurnOrderInitiative = "initiative" // per-round d20, descending, roster order breaks ties
)

// Policy holds the engine's tunable rule parameters.
type Policy struct {
	// TurnOrder selects the per-round ordering policy.
	TurnOrder string
	// MoraleThreshold is the 2d6 morale check target: a roll greater than the
	// threshold breaks the monster's nerve.
	MoraleThreshold int
	// MoraleDice is the morale roll expression.
	MoraleDice string
}

// DefaultPolicy returns the standard rule parameters.
func DefaultPolicy() Policy {
	return Policy{
		TurnOrder:       TurnOrderRoster,
		MoraleThreshold: 8,
		MoraleDice:      "2d6",
	}
}

// Options configures engine construction. Zero-value fields fall back to the
// compiled-in catalogs, default policy, and a no-op logger.
type Options struct {
	Spells     *spell.Registry
	Conditions *spell.ConditionRegistry
	// Providers maps combatant id to its tactical provider. Combatants
	// without a provider are externally controlled via SubmitIntent.
	Providers map[string]tactic.Provider
	Policy    Policy
	Logger    *zap.Logger
}

// Engine drives a single encounter from INIT to ENDED. It is a cooperative
// state machine: one logical thread of control at a time, no internal
// concurrency, no blocking I/O. Suspension at AWAIT_INTENT returns control to
// the caller rather than blocking.
type Engine struct {
	id         string
	logger     *zap.Logger
	svc        dice.Service
	spells     *spell.Registry
	conditions *spell.ConditionRegistry
	policy     Policy
	providers  map[string]tactic.Provider

	roster  []*Combatant
	byID    map[string]*Combatant
	tracker *modifier.Tracker

	state   State
	outcome Outcome
	round   int

	order     []string
	turnIdx   int
	currentID string
	choices   []tactic.Choice

	pending          action.Intent
	awaitingExternal bool

	announcedDeaths map[string]struct{}
	moraleTested    map[string]struct{}

	events []Event
}

// New creates an Engine for the given roster. The roster is deep-copied and
// frozen: no combatants may join mid-encounter, and callers retain no aliases
// into engine-owned state.
//
// Precondition: svc must be non-nil; roster needs at least one combatant per
// side with unique non-empty ids; every known spell must exist in the
// catalog.
// Postcondition: Returns an Engine in StateInit, or a construction error.
func New(roster []*Combatant, svc dice.Service, opts Options) (*Engine, error) {
	if svc == nil {
		return nil, fmt.Errorf("encounter: dice service must not be nil")
	}
	if opts.Spells == nil {
		opts.Spells = spell.Defaults()
	}
	if opts.Conditions == nil {
		opts.Conditions = spell.DefaultConditions()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Policy.TurnOrder == "" {
		opts.Policy.TurnOrder = TurnOrderRoster
	}
	if opts.Policy.TurnOrder != TurnOrderRoster && opts.Policy.TurnOrder != TurnOrderInitiative {
		return nil, fmt.Errorf("encounter: unknown turn order policy %q", opts.Policy.TurnOrder)
	}
	if opts.Policy.MoraleDice == "" {
		opts.Policy.MoraleDice = "2d6"
	}
	if _, err := dice.Parse(opts.Policy.MoraleDice); err != nil {
		return nil, fmt.Errorf("encounter: invalid morale dice: %w", err)
	}
	if opts.Policy.MoraleThreshold == 0 {
		opts.Policy.MoraleThreshold = 8
	}

	e := &Engine{
		id:              uuid.NewString(),
		logger:          opts.Logger,
		svc:             svc,
		spells:          opts.Spells,
		conditions:      opts.Conditions,
		policy:          opts.Policy,
		providers:       opts.Providers,
		byID:            make(map[string]*Combatant),
		tracker:         modifier.NewTracker(),
		state:           StateInit,
		outcome:         OutcomeUndecided,
		announcedDeaths: make(map[string]struct{}),
		moraleTested:    make(map[string]struct{}),
	}

	sides := map[Side]int{}
	for _, c := range roster {
		if c == nil {
			return nil, fmt.Errorf("encounter: roster contains nil combatant")
		}
		if c.ID == "" {
			return nil, fmt.Errorf("encounter: combatant %q has empty id", c.Name)
		}
		if _, dup := e.byID[c.ID]; dup {
			return nil, fmt.Errorf("encounter: duplicate combatant id %q", c.ID)
		}
		if c.DamageDice != "" {
			if _, err := dice.Parse(c.DamageDice); err != nil {
				return nil, fmt.Errorf("encounter: combatant %q has invalid damage dice: %w", c.ID, err)
			}
		}
		if c.RangedDice != "" {
			if _, err := dice.Parse(c.RangedDice); err != nil {
				return nil, fmt.Errorf("encounter: combatant %q has invalid ranged dice: %w", c.ID, err)
			}
		}
		for _, spellID := range c.Spells {
			def, ok := opts.Spells.Get(spellID)
			if !ok {
				return nil, fmt.Errorf("encounter: combatant %q knows unknown spell %q", c.ID, spellID)
			}
			if def.ConditionID != "" {
				if _, ok := opts.Conditions.Get(def.ConditionID); !ok {
					return nil, fmt.Errorf("encounter: spell %q applies unknown condition %q", spellID, def.ConditionID)
				}
			}
		}
		for _, item := range c.Items {
			if _, ok := itemCatalog[item]; !ok {
				return nil, fmt.Errorf("encounter: combatant %q carries unknown item %q", c.ID, item)
			}
		}
		cp := c.clone()
		e.roster = append(e.roster, cp)
		e.byID[cp.ID] = cp
		sides[cp.Side]++
	}
	if sides[SideParty] == 0 || sides[SideMonster] == 0 {
		return nil, fmt.Errorf("encounter: roster must include both sides (party=%d, monster=%d)",
			sides[SideParty], sides[SideMonster])
	}

	return e, nil
}

// ID returns the encounter's unique identifier.
func (e *Engine) ID() string { return e.id }

// State returns the current machine state.
func (e *Engine) State() State { return e.state }

// Outcome returns the terminal outcome, or OutcomeUndecided before ENDED.
func (e *Engine) Outcome() Outcome { return e.outcome }

// Round returns the current round number, starting at 1 after the first
// ROUND_START.
func (e *Engine) Round() int { return e.round }

// CurrentTurn returns the id of the combatant whose turn is being processed,
// or "" outside a turn.
func (e *Engine) CurrentTurn() string { return e.currentID }

// AwaitingExternal reports whether the engine is suspended waiting for
// SubmitIntent.
func (e *Engine) AwaitingExternal() bool {
	return e.state == StateAwaitIntent && e.awaitingExternal
}

// DrainEvents returns all events emitted since the previous drain, in order,
// and clears the internal buffer.
func (e *Engine) DrainEvents() []Event {
	out := e.events
	e.events = nil
	return out
}

// Step advances the state machine by one transition.
//
// Postcondition: Returns ErrEnded when called on a terminal encounter; any
// other error marks an unrecoverable internal inconsistency.
func (e *Engine) Step() error {
	switch e.state {
	case StateEnded:
		return ErrEnded
	case StateInit:
		// Roster is frozen from this point; construction already copied it.
		e.state = StateRoundStart
	case StateRoundStart:
		e.beginRound()
	case StateTurnStart:
		e.beginTurn()
	case StateAwaitIntent:
		return e.awaitIntent()
	case StateValidateIntent:
		e.validatePending()
	case StateExecuteAction:
		return e.executePending()
	case StateCheckDeaths:
		e.checkDeaths()
	case StateCheckMorale:
		return e.checkMorale()
	case StateCheckVictory:
		e.checkVictory()
	default:
		return fmt.Errorf("encounter: invalid state %v", e.state)
	}
	return nil
}

// StepUntilDecision drives the machine until the encounter ends or an
// externally controlled combatant must act. Exhausting maxSteps marks the
// encounter FAULTED and returns ErrLoopBudget: a stuck engine is a defect,
// not a normal outcome.
//
// Precondition: maxSteps > 0.
func (e *Engine) StepUntilDecision(maxSteps int) error {
	if maxSteps <= 0 {
		return fmt.Errorf("encounter: maxSteps must be > 0, got %d", maxSteps)
	}
	for i := 0; i < maxSteps; i++ {
		if e.state == StateEnded {
			return nil
		}
		if e.AwaitingExternal() {
			return nil
		}
		if err := e.Step(); err != nil {
			return err
		}
	}
	// A decision point reached on the final step is still a decision point.
	if e.state == StateEnded || e.AwaitingExternal() {
		return nil
	}
	e.outcome = OutcomeFaulted
	e.state = StateEnded
	e.emit(EventEncounterEnded{Outcome: e.outcome, Rounds: e.round})
	e.logger.Error("encounter loop budget exhausted",
		zap.String("encounter", e.id),
		zap.Int("max_steps", maxSteps),
	)
	return ErrLoopBudget
}

// SubmitIntent answers a NeedAction suspension for an externally controlled
// combatant. Submitting when the engine is not awaiting an intent, or for the
// wrong combatant, is a usage error. A well-formed but illegal intent is
// rejected: the engine emits the rejection, re-prompts, and stays suspended.
func (e *Engine) SubmitIntent(combatantID string, in action.Intent) error {
	if !e.AwaitingExternal() {
		return fmt.Errorf("encounter: not awaiting an intent (state %v)", e.state)
	}
	if combatantID != e.currentID {
		return fmt.Errorf("encounter: intent submitted for %q but the turn belongs to %q",
			combatantID, e.currentID)
	}
	if in == nil {
		return fmt.Errorf("encounter: intent must not be nil")
	}
	if actor := action.ActorID(in); actor != combatantID {
		return fmt.Errorf("encounter: intent actor %q does not match submitting combatant %q",
			actor, combatantID)
	}
	if err := e.validateIntent(in); err != nil {
		e.emit(EventIntentRejected{CombatantID: combatantID, Reason: err.Error()})
		e.emit(EventNeedAction{CombatantID: e.currentID, Choices: e.cloneChoices()})
		return fmt.Errorf("encounter: intent rejected: %w", err)
	}
	e.pending = in
	e.awaitingExternal = false
	e.state = StateValidateIntent
	return nil
}

// emit appends ev to the pending event buffer.
func (e *Engine) emit(ev Event) {
	e.events = append(e.events, ev)
}

// beginRound advances the round counter, determines turn order, and hands
// control to the first turn.
func (e *Engine) beginRound() {
	e.round++
	e.emit(EventRoundStarted{Round: e.round})
	e.order = e.computeOrder()
	e.turnIdx = 0
	e.state = StateTurnStart
	e.logger.Debug("round started",
		zap.String("encounter", e.id),
		zap.Int("round", e.round),
		zap.Strings("order", e.order),
	)
}

// computeOrder builds this round's turn order over living, non-fled
// combatants according to the configured policy.
func (e *Engine) computeOrder() []string {
	var ids []string
	for _, c := range e.roster {
		if c.Active() {
			ids = append(ids, c.ID)
		}
	}
	if e.policy.TurnOrder == TurnOrderInitiative {
		rolls := make(map[string]int, len(ids))
		for _, id := range ids {
			rolls[id] = e.svc.D20()
		}
		sort.SliceStable(ids, func(i, j int) bool {
			return rolls[ids[i]] > rolls[ids[j]]
		})
	}
	return ids
}

// beginTurn selects the next living, non-fled combatant in the round order
// and computes its legal choices. When the order is exhausted the round ends.
func (e *Engine) beginTurn() {
	for e.turnIdx < len(e.order) {
		c := e.byID[e.order[e.turnIdx]]
		if c.Active() {
			e.currentID = c.ID
			e.emit(EventTurnStarted{CombatantID: c.ID, Round: e.round})
			e.choices = e.computeChoices(c)
			e.pending = nil
			e.awaitingExternal = false
			e.state = StateAwaitIntent
			return
		}
		e.turnIdx++
	}
	e.endRound()
}

// endRound ticks the modifier tracker exactly once per completed round
// boundary and loops back to the next round.
func (e *Engine) endRound() {
	e.currentID = ""
	for _, exp := range e.tracker.TickRound() {
		e.emit(EventModifierExpired{CombatantID: exp.CombatantID, ModifierID: exp.ModifierID})
	}
	e.state = StateRoundStart
}

// awaitIntent obtains the current combatant's intent from its tactical
// provider, or suspends for external submission when it has none.
func (e *Engine) awaitIntent() error {
	if e.pending != nil {
		e.state = StateValidateIntent
		return nil
	}
	if p, ok := e.providers[e.currentID]; ok {
		in, err := p.ChooseIntent(e.currentID, e.cloneChoices())
		if err != nil {
			return fmt.Errorf("encounter: provider for %q: %w", e.currentID, err)
		}
		e.pending = in
		e.state = StateValidateIntent
		return nil
	}
	if !e.awaitingExternal {
		e.awaitingExternal = true
		e.emit(EventNeedAction{CombatantID: e.currentID, Choices: e.cloneChoices()})
	}
	return nil
}

// validatePending rejects an illegal pending intent back to AWAIT_INTENT with
// a re-prompt, or releases it for execution.
func (e *Engine) validatePending() {
	if err := e.validateIntent(e.pending); err != nil {
		e.emit(EventIntentRejected{CombatantID: e.currentID, Reason: err.Error()})
		e.pending = nil
		e.state = StateAwaitIntent
		if _, ok := e.providers[e.currentID]; !ok {
			e.awaitingExternal = true
			e.emit(EventNeedAction{CombatantID: e.currentID, Choices: e.cloneChoices()})
		}
		return
	}
	e.state = StateExecuteAction
}

// checkDeaths marks combatants at or below zero HP dead and announces each
// death exactly once.
func (e *Engine) checkDeaths() {
	for _, c := range e.roster {
		if c.HP <= 0 && !c.Dead {
			c.Dead = true
		}
		if c.Dead {
			if _, done := e.announcedDeaths[c.ID]; !done {
				e.announcedDeaths[c.ID] = struct{}{}
				e.emit(EventDeath{CombatantID: c.ID})
				e.logger.Info("combatant died",
					zap.String("encounter", e.id),
					zap.String("combatant", c.ID),
				)
			}
		}
	}
	e.state = StateCheckMorale
}

// checkMorale tests monster-side morale once the monster side has suffered a
// death. Each monster rolls the morale dice at most once per encounter; a
// roll above the threshold breaks and the monster flees.
func (e *Engine) checkMorale() error {
	defer func() { e.state = StateCheckVictory }()

	monsterDeath := false
	for _, c := range e.roster {
		if c.Side == SideMonster && c.Dead {
			monsterDeath = true
			break
		}
	}
	if !monsterDeath {
		return nil
	}
	for _, c := range e.roster {
		if c.Side != SideMonster || !c.Active() {
			continue
		}
		if _, tested := e.moraleTested[c.ID]; tested {
			continue
		}
		e.moraleTested[c.ID] = struct{}{}
		roll, err := e.svc.Roll(e.policy.MoraleDice)
		if err != nil {
			return fmt.Errorf("encounter: morale roll: %w", err)
		}
		if roll.Total() > e.policy.MoraleThreshold {
			c.Fled = true
			e.emit(EventFled{CombatantID: c.ID, Voluntary: false})
			e.logger.Info("morale broke",
				zap.String("encounter", e.id),
				zap.String("combatant", c.ID),
				zap.Int("roll", roll.Total()),
			)
		}
	}
	return nil
}

// checkVictory ends the encounter when one side has no active combatants
// left, or advances to the next turn / round.
func (e *Engine) checkVictory() {
	partyStanding := e.anyActive(SideParty)
	monsterStanding := e.anyActive(SideMonster)

	// A wiped-out party loses even on mutual destruction.
	switch {
	case !partyStanding:
		e.end(OutcomeOppositionVictory)
		return
	case !monsterStanding:
		e.end(OutcomePartyVictory)
		return
	}

	e.turnIdx++
	if e.turnIdx >= len(e.order) {
		e.endRound()
		return
	}
	e.state = StateTurnStart
}

// end records the terminal outcome.
func (e *Engine) end(outcome Outcome) {
	e.outcome = outcome
	e.state = StateEnded
	e.currentID = ""
	e.emit(EventEncounterEnded{Outcome: outcome, Rounds: e.round})
	e.logger.Info("encounter ended",
		zap.String("encounter", e.id),
		zap.String("outcome", outcome.String()),
		zap.Int("rounds", e.round),
	)
}

// anyActive reports whether side has at least one living, non-fled combatant.
func (e *Engine) anyActive(side Side) bool {
	for _, c := range e.roster {
		if c.Side == side && c.Active() {
			return true
		}
	}
	return false
}

// activeOpponents returns side's living, non-fled opponents in roster order.
func (e *Engine) activeOpponents(side Side) []*Combatant {
	var out []*Combatant
	for _, c := range e.roster {
		if c.Side == side.Opposing() && c.Active() {
			out = append(out, c)
		}
	}
	return out
}

// activeAllies returns side's living, non-fled members in roster order.
func (e *Engine) activeAllies(side Side) []*Combatant {
	var out []*Combatant
	for _, c := range e.roster {
		if c.Side == side && c.Active() {
			out = append(out, c)
		}
	}
	return out
}

// cloneChoices returns a caller-owned copy of the current choice list.
func (e *Engine) cloneChoices() []tactic.Choice {
	cp := make([]tactic.Choice, len(e.choices))
	copy(cp, e.choices)
	return cp
}
