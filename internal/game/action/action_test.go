package action_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/skirmish/internal/game/action"
)

// TestNewCastSpell_NilTargetsNormalized verifies that a nil target list is
// stored as an empty, iterable slice.
func TestNewCastSpell_NilTargetsNormalized(t *testing.T) {
	in := action.NewCastSpell("wizard", "sleep", 1, nil)
	require.NotNil(t, in.Targets, "Targets must never be nil")
	assert.Empty(t, in.Targets)
}

// TestNewUseItem_CopiesTargets verifies the intent owns its target slice.
func TestNewUseItem_CopiesTargets(t *testing.T) {
	targets := []string{"goblin-1"}
	in := action.NewUseItem("fighter", "oil_flask", targets)

	targets[0] = "mutated"
	assert.Equal(t, []string{"goblin-1"}, in.Targets, "intent must not alias caller's slice")
}

// TestActorID_AllVariants verifies ActorID handles every intent variant.
func TestActorID_AllVariants(t *testing.T) {
	cases := []struct {
		name   string
		intent action.Intent
	}{
		{"melee", action.MeleeAttack{Actor: "a", Target: "b"}},
		{"ranged", action.RangedAttack{Actor: "a", Target: "b"}},
		{"cast", action.NewCastSpell("a", "magic_missile", 1, []string{"b"})},
		{"item", action.NewUseItem("a", "healing_potion", nil)},
		{"flee", action.Flee{Actor: "a"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, "a", action.ActorID(tc.intent))
		})
	}
}

// TestIntent_ValueEquality verifies intents compare by field values.
func TestIntent_ValueEquality(t *testing.T) {
	a := action.MeleeAttack{Actor: "x", Target: "y"}
	b := action.MeleeAttack{Actor: "x", Target: "y"}
	assert.Equal(t, a, b)
	assert.True(t, a == b)
}

// TestEffect_ValueEquality verifies effects compare by field values.
func TestEffect_ValueEquality(t *testing.T) {
	a := action.Damage{Source: "x", Target: "y", Amount: 5}
	b := action.Damage{Source: "x", Target: "y", Amount: 5}
	assert.True(t, a == b)
	assert.NotEqual(t, a, action.Damage{Source: "x", Target: "y", Amount: 4})
}
