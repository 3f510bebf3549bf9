// Package main provides the skirmish binary: it assembles a sample
// encounter, drives it to completion, and prints each event as a JSON line.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/config"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/encounter"
	"github.com/cory-johannsen/skirmish/internal/game/spell"
	"github.com/cory-johannsen/skirmish/internal/game/tactic"
	"github.com/cory-johannsen/skirmish/internal/observability"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file; empty = built-in defaults")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
		cfg = loaded
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	svc := dice.NewLogged(dice.NewCryptoService(), logger)

	spells := spell.Defaults()
	if cfg.Content.SpellsDir != "" {
		loaded, err := spell.LoadDirectory(cfg.Content.SpellsDir)
		if err != nil {
			logger.Fatal("loading spells", zap.Error(err))
		}
		spells = loaded
	}
	conditions := spell.DefaultConditions()
	if cfg.Content.ConditionsDir != "" {
		loaded, err := spell.LoadConditionDirectory(cfg.Content.ConditionsDir)
		if err != nil {
			logger.Fatal("loading conditions", zap.Error(err))
		}
		conditions = loaded
	}

	roster := sampleRoster()
	providers := make(map[string]tactic.Provider, len(roster))
	for _, c := range roster {
		providers[c.ID] = tactic.NewRandom(svc, logger)
	}

	e, err := encounter.New(roster, svc, encounter.Options{
		Spells:     spells,
		Conditions: conditions,
		Providers:  providers,
		Policy: encounter.Policy{
			TurnOrder:       cfg.Encounter.TurnOrder,
			MoraleThreshold: cfg.Encounter.MoraleThreshold,
			MoraleDice:      cfg.Encounter.MoraleDice,
		},
		Logger: logger,
	})
	if err != nil {
		logger.Fatal("creating encounter", zap.Error(err))
	}

	enc := json.NewEncoder(os.Stdout)
	for {
		err := e.StepUntilDecision(cfg.Encounter.MaxSteps)
		for _, ev := range e.DrainEvents() {
			if encodeErr := enc.Encode(encounter.Serialize(ev)); encodeErr != nil {
				logger.Fatal("encoding event", zap.Error(encodeErr))
			}
		}
		if err != nil {
			logger.Fatal("driving encounter", zap.Error(err))
		}
		if e.State() == encounter.StateEnded {
			break
		}
		// Every combatant has a provider, so a suspension here is a defect.
		if e.AwaitingExternal() {
			logger.Fatal("unexpected suspension", zap.String("combatant", e.CurrentTurn()))
		}
	}

	view := e.View()
	fmt.Fprintf(os.Stderr, "encounter %s ended: %s after %d rounds\n",
		view.EncounterID, view.Outcome, view.Round)
}

// sampleRoster builds the demo encounter: a small adventuring party against a
// goblin warband.
func sampleRoster() []*encounter.Combatant {
	return []*encounter.Combatant{
		{
			ID: "brynn", Name: "Brynn", Side: encounter.SideParty,
			HP: 12, MaxHP: 12, ArmorClass: 16, AttackBonus: 3,
			DamageDice: "1d8", Level: 3, Class: "fighter",
			Items: []string{"healing_potion"},
		},
		{
			ID: "imrae", Name: "Imrae", Side: encounter.SideParty,
			HP: 6, MaxHP: 6, ArmorClass: 11, AttackBonus: 0,
			DamageDice: "1d4", RangedDice: "1d4", Level: 2, Class: "magic-user",
			Slots:  map[int]int{1: 2},
			Spells: []string{"magic_missile", "sleep"},
		},
		{
			ID: "ansel", Name: "Ansel", Side: encounter.SideParty,
			HP: 9, MaxHP: 9, ArmorClass: 15, AttackBonus: 1,
			DamageDice: "1d6", Level: 2, Class: "cleric",
			Slots:  map[int]int{1: 1, 2: 1},
			Spells: []string{"cure_light_wounds", "bless", "hold_person"},
		},
		{
			ID: "gob1", Name: "Snik", Side: encounter.SideMonster,
			HP: 5, MaxHP: 5, ArmorClass: 13, AttackBonus: 1,
			DamageDice: "1d6", HitDice: 1,
		},
		{
			ID: "gob2", Name: "Snak", Side: encounter.SideMonster,
			HP: 5, MaxHP: 5, ArmorClass: 13, AttackBonus: 1,
			DamageDice: "1d6", HitDice: 1,
		},
		{
			ID: "urzag", Name: "Urzag", Side: encounter.SideMonster,
			HP: 14, MaxHP: 14, ArmorClass: 14, AttackBonus: 3,
			DamageDice: "1d8", HitDice: 3,
		},
	}
}
