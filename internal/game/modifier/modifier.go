// Package modifier tracks temporary numeric combat stat modifiers per
// combatant with round-based expiry.
package modifier

import "fmt"

// Stat identifies which combat statistic a modifier adjusts.
type Stat int

const (
	Attack Stat = iota
	Damage
	ArmorClass
	SavingThrow
)

// String returns the symbolic name of the Stat.
func (s Stat) String() string {
	switch s {
	case Attack:
		return "ATTACK"
	case Damage:
		return "DAMAGE"
	case ArmorClass:
		return "ARMOR_CLASS"
	case SavingThrow:
		return "SAVING_THROW"
	default:
		return "UNKNOWN"
	}
}

// ParseStat converts a symbolic stat name (as used in YAML catalogs) to a Stat.
//
// Postcondition: Returns a valid Stat or a descriptive error.
func ParseStat(s string) (Stat, error) {
	switch s {
	case "attack", "ATTACK":
		return Attack, nil
	case "damage", "DAMAGE":
		return Damage, nil
	case "armor_class", "ARMOR_CLASS":
		return ArmorClass, nil
	case "saving_throw", "SAVING_THROW":
		return SavingThrow, nil
	default:
		return Attack, fmt.Errorf("modifier: unknown stat %q", s)
	}
}

// Permanent marks a modifier that is never auto-expired by round ticks; only
// explicit removal can clear it.
const Permanent = -1

// Active is one temporary modifier applied to a combatant.
type Active struct {
	// ID uniquely identifies this modifier instance for removal and expiry
	// reporting.
	ID string
	// SourceID names what created the modifier (a condition id, spell id, or
	// item name).
	SourceID string
	Stat     Stat
	Value    int
	// Rounds is the remaining duration in rounds; Permanent (-1) means the
	// modifier never expires on its own.
	Rounds int
}
