// Package target provides pure targeting resolution functions: hit-dice-pool
// selection for area effects and random group sampling. Neither function
// holds state; randomness comes only from an injected dice.Service.
package target

import (
	"sort"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// Candidate pairs a combatant id with its effective hit dice for pool-based
// selection.
type Candidate struct {
	ID      string
	HitDice int
}

// Kind classifies an entity for hit-dice lookup.
type Kind int

const (
	KindUnknown Kind = iota
	KindPlayer
	KindMonster
)

// EffectiveHitDice computes the hit dice used for pool-based targeting:
// monsters use their hit dice, players use character level, unknown kinds
// default to 1. The result is always floored at 1 so zero or negative inputs
// cannot produce zero-cost targets.
//
// Postcondition: Returns >= 1.
func EffectiveHitDice(kind Kind, hitDice, level int) int {
	var hd int
	switch kind {
	case KindMonster:
		hd = hitDice
	case KindPlayer:
		hd = level
	default:
		hd = 1
	}
	if hd < 1 {
		hd = 1
	}
	return hd
}

// ResolveHDPool selects targets for an effect whose strength is bounded by a
// total hit-dice budget, consuming weakest candidates first. Candidates are
// sorted ascending by hit dice (stable, input order breaks ties) and selected
// greedily while each candidate's cost (hit dice floored at 1) fits the
// remaining budget; selection stops at the first candidate that would exceed
// it.
//
// Postcondition: the summed cost of selected candidates never exceeds
// poolTotal; an empty slice is returned for poolTotal <= 0 or no candidates.
func ResolveHDPool(candidates []Candidate, poolTotal int) []string {
	selected := []string{}
	if poolTotal <= 0 || len(candidates) == 0 {
		return selected
	}

	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].HitDice < sorted[j].HitDice
	})

	remaining := poolTotal
	for _, c := range sorted {
		cost := c.HitDice
		if cost < 1 {
			cost = 1
		}
		if cost > remaining {
			break
		}
		selected = append(selected, c.ID)
		remaining -= cost
	}
	return selected
}

// ResolveRandomGroup returns a uniform random sample, without replacement, of
// min(count, len(candidates)) ids. The order of returned ids is unspecified.
//
// Precondition: svc must be non-nil when count > 0 and candidates is non-empty.
// Postcondition: returned ids are distinct members of candidates; an empty
// slice is returned for count <= 0 or no candidates.
func ResolveRandomGroup(candidates []string, count int, svc dice.Service) []string {
	if count <= 0 || len(candidates) == 0 {
		return []string{}
	}
	if count > len(candidates) {
		count = len(candidates)
	}

	// Partial Fisher-Yates: the first count slots become the sample.
	pool := make([]string, len(candidates))
	copy(pool, candidates)
	for i := 0; i < count; i++ {
		j := i + svc.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:count]
}
