package spell

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/skirmish/internal/game/modifier"
)

// ConditionDef maps a condition id onto the single stat modifier it applies
// and a default duration in rounds. Rounds of modifier.Permanent (-1) means
// the condition lasts until explicitly removed.
type ConditionDef struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Stat   string `yaml:"stat"` // attack | damage | armor_class | saving_throw
	Value  int    `yaml:"value"`
	Rounds int    `yaml:"rounds"`
}

// Validate checks the condition entry's invariants.
func (d *ConditionDef) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("condition: definition has empty id")
	}
	if d.Name == "" {
		return fmt.Errorf("condition %q: name must not be empty", d.ID)
	}
	if _, err := modifier.ParseStat(d.Stat); err != nil {
		return fmt.Errorf("condition %q: %w", d.ID, err)
	}
	if d.Value == 0 {
		return fmt.Errorf("condition %q: value must not be zero", d.ID)
	}
	if d.Rounds == 0 || d.Rounds < modifier.Permanent {
		return fmt.Errorf("condition %q: rounds must be positive or %d (permanent), got %d",
			d.ID, modifier.Permanent, d.Rounds)
	}
	return nil
}

// ModifierStat returns the parsed Stat for this condition.
//
// Precondition: the definition has passed Validate.
func (d *ConditionDef) ModifierStat() modifier.Stat {
	stat, err := modifier.ParseStat(d.Stat)
	if err != nil {
		panic("spell: ModifierStat on unvalidated condition " + d.ID + ": " + err.Error())
	}
	return stat
}

// ConditionRegistry holds all known ConditionDefs keyed by ID.
type ConditionRegistry struct {
	defs map[string]*ConditionDef
}

// NewConditionRegistry creates an empty ConditionRegistry.
func NewConditionRegistry() *ConditionRegistry {
	return &ConditionRegistry{defs: make(map[string]*ConditionDef)}
}

// Register adds def to the registry, overwriting any existing entry with the
// same ID.
func (r *ConditionRegistry) Register(def *ConditionDef) error {
	if def == nil {
		return fmt.Errorf("condition: Register called with nil definition")
	}
	if err := def.Validate(); err != nil {
		return err
	}
	r.defs[def.ID] = def
	return nil
}

// Get returns the ConditionDef for id, or (nil, false) if not found.
func (r *ConditionRegistry) Get(id string) (*ConditionDef, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// LoadConditionDirectory reads every *.yaml file in dir, parses each as a
// ConditionDef, and returns a populated ConditionRegistry.
func LoadConditionDirectory(dir string) (*ConditionRegistry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading condition dir %q: %w", dir, err)
	}
	reg := NewConditionRegistry()
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var def ConditionDef
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

// DefaultConditions returns the compiled-in condition catalog.
func DefaultConditions() *ConditionRegistry {
	reg := NewConditionRegistry()
	for _, def := range []*ConditionDef{
		{ID: "asleep", Name: "Asleep", Stat: "armor_class", Value: -4, Rounds: 5},
		{ID: "shielded", Name: "Shielded", Stat: "armor_class", Value: 4, Rounds: 10},
		{ID: "blessed", Name: "Blessed", Stat: "attack", Value: 1, Rounds: 6},
		{ID: "held", Name: "Held", Stat: "armor_class", Value: -4, Rounds: 9},
		{ID: "cursed", Name: "Cursed", Stat: "saving_throw", Value: -2, Rounds: 6},
	} {
		if err := reg.Register(def); err != nil {
			panic("spell: invalid default condition: " + err.Error())
		}
	}
	return reg
}
