// Package spell holds the static spell and condition catalogs. Definitions
// are read-only reference data: loaded once from YAML (or the compiled-in
// defaults) and never mutated at runtime.
package spell

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// AllOpposing marks a spell that affects every living opposing combatant.
const AllOpposing = -1

// Definition is the static catalog entry for one spell.
type Definition struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
	// Damage is the damage die expression; empty means the spell deals no
	// direct damage.
	Damage string `yaml:"damage"`
	// Healing inverts Damage: the rolled amount restores hit points instead.
	Healing bool `yaml:"healing"`
	// Targets is the target count convention: 1 = single target, N > 1 = up
	// to N randomly selected opposing combatants, AllOpposing = every living
	// opposing combatant.
	Targets int `yaml:"targets"`
	// AutoHit skips the saving throw: the spell's payload lands
	// unconditionally. When false, each target rolls a save that negates the
	// payload on success.
	AutoHit bool `yaml:"auto_hit"`
	// ConditionID names a condition applied to each affected target; empty
	// means none.
	ConditionID string `yaml:"condition"`
	// PoolDice, when non-empty, makes the spell HD-pool-targeted: the
	// expression is rolled and the result bounds the total hit dice of
	// affected creatures, weakest first.
	PoolDice string `yaml:"pool_dice"`
	// Classes lists the classes able to cast this spell.
	Classes []string `yaml:"classes"`
}

// Validate checks the catalog entry's invariants.
//
// Postcondition: nil return guarantees a non-empty ID and Name, Level >= 1,
// parseable dice expressions, and a valid Targets convention.
func (d *Definition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("spell: definition has empty id")
	}
	if d.Name == "" {
		return fmt.Errorf("spell %q: name must not be empty", d.ID)
	}
	if d.Level < 1 {
		return fmt.Errorf("spell %q: level must be >= 1, got %d", d.ID, d.Level)
	}
	if d.Targets < 1 && d.Targets != AllOpposing {
		return fmt.Errorf("spell %q: targets must be >= 1 or %d, got %d", d.ID, AllOpposing, d.Targets)
	}
	if d.Damage != "" {
		if _, err := dice.Parse(d.Damage); err != nil {
			return fmt.Errorf("spell %q: invalid damage expression: %w", d.ID, err)
		}
	}
	if d.PoolDice != "" {
		if _, err := dice.Parse(d.PoolDice); err != nil {
			return fmt.Errorf("spell %q: invalid pool expression: %w", d.ID, err)
		}
	}
	if d.Damage == "" && d.ConditionID == "" {
		return fmt.Errorf("spell %q: must deal damage or apply a condition", d.ID)
	}
	return nil
}

// UsableBy reports whether class may cast this spell. An empty Classes list
// means any class.
func (d *Definition) UsableBy(class string) bool {
	if len(d.Classes) == 0 {
		return true
	}
	for _, c := range d.Classes {
		if strings.EqualFold(c, class) {
			return true
		}
	}
	return false
}

// Registry holds all known spell Definitions keyed by ID.
type Registry struct {
	defs map[string]*Definition
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Register adds def to the registry, overwriting any existing entry with the
// same ID.
//
// Precondition: def must not be nil and must pass Validate.
func (r *Registry) Register(def *Definition) error {
	if def == nil {
		return fmt.Errorf("spell: Register called with nil definition")
	}
	if err := def.Validate(); err != nil {
		return err
	}
	r.defs[def.ID] = def
	return nil
}

// Get returns the Definition for id, or (nil, false) if not found.
func (r *Registry) Get(id string) (*Definition, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// All returns a snapshot slice of all registered Definitions.
func (r *Registry) All() []*Definition {
	out := make([]*Definition, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	return out
}

// LoadDirectory reads every *.yaml file in dir, parses each as a Definition,
// and returns a populated Registry.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns a non-nil Registry, or an error if any file fails to
// parse or validate.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading spell dir %q: %w", dir, err)
	}
	reg := NewRegistry()
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var def Definition
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		if err := reg.Register(&def); err != nil {
			return nil, fmt.Errorf("registering %q: %w", path, err)
		}
	}
	return reg, nil
}

// Defaults returns the compiled-in spell catalog, used when no content
// directory is configured.
func Defaults() *Registry {
	reg := NewRegistry()
	for _, def := range []*Definition{
		{
			ID:      "magic_missile",
			Name:    "Magic Missile",
			Level:   1,
			Damage:  "1d4+1",
			Targets: 1,
			AutoHit: true,
			Classes: []string{"magic-user"},
		},
		{
			ID:          "sleep",
			Name:        "Sleep",
			Level:       1,
			Targets:     AllOpposing,
			AutoHit:     true,
			ConditionID: "asleep",
			PoolDice:    "2d4",
			Classes:     []string{"magic-user"},
		},
		{
			ID:          "shield",
			Name:        "Shield",
			Level:       1,
			Targets:     1,
			AutoHit:     true,
			ConditionID: "shielded",
			Classes:     []string{"magic-user"},
		},
		{
			ID:          "hold_person",
			Name:        "Hold Person",
			Level:       2,
			Targets:     3,
			ConditionID: "held",
			Classes:     []string{"cleric"},
		},
		{
			ID:          "curse",
			Name:        "Curse",
			Level:       1,
			Targets:     1,
			ConditionID: "cursed",
			Classes:     []string{"cleric"},
		},
		{
			ID:          "bless",
			Name:        "Bless",
			Level:       1,
			Targets:     1,
			AutoHit:     true,
			ConditionID: "blessed",
			Classes:     []string{"cleric"},
		},
		{
			ID:      "cure_light_wounds",
			Name:    "Cure Light Wounds",
			Level:   1,
			Damage:  "1d6+1",
			Healing: true,
			Targets: 1,
			AutoHit: true,
			Classes: []string{"cleric"},
		},
	} {
		// Defaults are compile-time constants; a validation failure here is
		// a programming error.
		if err := reg.Register(def); err != nil {
			panic("spell: invalid default definition: " + err.Error())
		}
	}
	return reg
}
