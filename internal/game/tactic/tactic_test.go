package tactic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/skirmish/internal/game/action"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/tactic"
)

func choices() []tactic.Choice {
	return []tactic.Choice{
		{Intent: action.MeleeAttack{Actor: "orc", Target: "fighter"}, Label: "attack fighter"},
		{Intent: action.MeleeAttack{Actor: "orc", Target: "cleric"}, Label: "attack cleric"},
		{Intent: action.Flee{Actor: "orc"}, Label: "flee"},
	}
}

// TestRandom_DeterministicUnderScriptedDice verifies the random provider
// replays exactly under a scripted dice service.
func TestRandom_DeterministicUnderScriptedDice(t *testing.T) {
	svc, err := dice.NewScripted(2, 0, 1)
	require.NoError(t, err)
	p := tactic.NewRandom(svc, nil)

	in, err := p.ChooseIntent("orc", choices())
	require.NoError(t, err)
	assert.Equal(t, action.Flee{Actor: "orc"}, in)

	in, err = p.ChooseIntent("orc", choices())
	require.NoError(t, err)
	assert.Equal(t, action.MeleeAttack{Actor: "orc", Target: "fighter"}, in)
}

// TestRandom_EmptyChoicesFails verifies the provider contract.
func TestRandom_EmptyChoicesFails(t *testing.T) {
	p := tactic.NewRandom(dice.NewCryptoService(), nil)
	_, err := p.ChooseIntent("orc", nil)
	assert.Error(t, err)
}

// TestRandom_AlwaysPicksAnOfferedChoice verifies membership under production
// randomness.
func TestRandom_AlwaysPicksAnOfferedChoice(t *testing.T) {
	p := tactic.NewRandom(dice.NewCryptoService(), nil)
	offered := choices()
	for i := 0; i < 100; i++ {
		in, err := p.ChooseIntent("orc", offered)
		require.NoError(t, err)
		found := false
		for _, c := range offered {
			if assert.ObjectsAreEqual(c.Intent, in) {
				found = true
				break
			}
		}
		assert.True(t, found, "chosen intent must be among offered choices")
	}
}

// TestScripted_FollowsPlan verifies label matching in order.
func TestScripted_FollowsPlan(t *testing.T) {
	p, err := tactic.NewScriptedPlan("attack cleric", "flee")
	require.NoError(t, err)

	in, err := p.ChooseIntent("orc", choices())
	require.NoError(t, err)
	assert.Equal(t, action.MeleeAttack{Actor: "orc", Target: "cleric"}, in)

	in, err = p.ChooseIntent("orc", choices())
	require.NoError(t, err)
	assert.Equal(t, action.Flee{Actor: "orc"}, in)
}

// TestScripted_ExhaustedPlanFails verifies running past the plan is an error.
func TestScripted_ExhaustedPlanFails(t *testing.T) {
	p, err := tactic.NewScriptedPlan("flee")
	require.NoError(t, err)

	_, err = p.ChooseIntent("orc", choices())
	require.NoError(t, err)
	_, err = p.ChooseIntent("orc", choices())
	assert.Error(t, err)
}

// TestScripted_UnknownLabelFails verifies a diverging plan is an error.
func TestScripted_UnknownLabelFails(t *testing.T) {
	p, err := tactic.NewScriptedPlan("cast wish")
	require.NoError(t, err)
	_, err = p.ChooseIntent("orc", choices())
	assert.Error(t, err)
}

// TestScripted_EmptyPlanFails verifies the construction error.
func TestScripted_EmptyPlanFails(t *testing.T) {
	_, err := tactic.NewScriptedPlan()
	assert.Error(t, err)
}
