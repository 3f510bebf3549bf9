// Package dice provides the randomness abstraction for the Skirmish
// encounter engine. Every random decision the engine makes flows through a
// Service, which is the mechanism that keeps encounter resolution fully
// deterministic under test.
package dice

import "fmt"

// RollResult holds the full audit trail for a single dice roll evaluation.
//
// Postcondition: Total() == sum(Dice) + Modifier.
type RollResult struct {
	Expression string // original expression string, e.g. "2d6+3"
	Dice       []int  // individual die results before modifier
	Modifier   int    // flat modifier (may be negative)
}

// Total returns the sum of all die results plus the modifier.
//
// Postcondition: return value == sum(r.Dice) + r.Modifier.
func (r RollResult) Total() int {
	total := r.Modifier
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// String returns a human-readable audit string in the format:
//
//	"2d6+3 → [4 5] +3 = 12"
//
// Precondition: r.Expression is non-empty.
func (r RollResult) String() string {
	if r.Expression == "" {
		panic("dice: RollResult.String() precondition violated: Expression must be non-empty")
	}
	return fmt.Sprintf("%s → %v %+d = %d", r.Expression, r.Dice, r.Modifier, r.Total())
}

// Source is the low-level randomness provider backing the production Service.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Service is the randomness boundary used by the encounter engine.
// Two implementations exist: the production crypto-backed service
// (NewCryptoService) and the replayable Scripted service (NewScripted).
type Service interface {
	// Roll evaluates a dice expression ("NdM", "dM", "NdM+K", "NdM-K")
	// and returns the full result. Malformed notation is an error, never
	// a silent zero.
	Roll(expr string) (RollResult, error)

	// D20 returns a single unmodified d20 result in [1, 20].
	D20() int

	// Intn returns an int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Choice returns one element of items chosen via svc.
//
// Precondition: items must be non-empty; svc must be non-nil.
func Choice[T any](svc Service, items []T) T {
	if len(items) == 0 {
		panic("dice: Choice called with empty items")
	}
	return items[svc.Intn(len(items))]
}
