// Package combat holds the rule constants and the pure rule functions used to
// resolve attacks and heals.
package combat

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cory-johannsen/skirmish/internal/config"
	"github.com/cory-johannsen/skirmish/internal/game/weapon"
)

// Default rule constants.
const (
	DefaultMaxHealth      = 1000
	DefaultLevelGap       = 5
	DefaultDamageModifier = 0.5
)

// Rules bundles every tunable combat constant.
//
// Invariant (after Validate succeeds): MaxHealth >= 1, LevelGap >= 1,
// 0 <= DamageModifier <= 1, and every weapon kind has a positive range.
type Rules struct {
	// MaxHealth is the starting and maximum health of a character.
	MaxHealth int
	// LevelGap is the level difference at which damage is scaled.
	LevelGap int
	// DamageModifier is the fraction of raw damage added or removed when scaling.
	DamageModifier float64
	// Ranges maps each weapon kind to its maximum attack distance.
	Ranges map[weapon.Kind]float64
}

// DefaultRules returns the standard rule set: 1000 health, a 5 level gap,
// a 50% modifier, melee range 2 and ranged range 20.
//
// Postcondition: The returned Rules pass Validate and own a fresh Ranges map.
func DefaultRules() Rules {
	ranges := make(map[weapon.Kind]float64, len(weapon.Kinds()))
	for _, k := range weapon.Kinds() {
		ranges[k] = k.Range()
	}
	return Rules{
		MaxHealth:      DefaultMaxHealth,
		LevelGap:       DefaultLevelGap,
		DamageModifier: DefaultDamageModifier,
		Ranges:         ranges,
	}
}

// RulesFromConfig converts validated rule configuration into Rules.
//
// Postcondition: Returns valid Rules, or a non-nil error describing every violation.
func RulesFromConfig(cfg config.RulesConfig) (Rules, error) {
	r := Rules{
		MaxHealth:      cfg.MaxHealth,
		LevelGap:       cfg.LevelGap,
		DamageModifier: cfg.DamageModifier,
		Ranges: map[weapon.Kind]float64{
			weapon.Melee:  cfg.MeleeRange,
			weapon.Ranged: cfg.RangedRange,
		},
	}
	if err := r.Validate(); err != nil {
		return Rules{}, err
	}
	return r, nil
}

// Validate checks the Rules invariants.
//
// Postcondition: Returns nil iff all constants are in range.
func (r Rules) Validate() error {
	var errs []string
	if r.MaxHealth < 1 {
		errs = append(errs, fmt.Sprintf("max health must be >= 1, got %d", r.MaxHealth))
	}
	if r.LevelGap < 1 {
		errs = append(errs, fmt.Sprintf("level gap must be >= 1, got %d", r.LevelGap))
	}
	if r.DamageModifier < 0 || r.DamageModifier > 1 || math.IsNaN(r.DamageModifier) {
		errs = append(errs, fmt.Sprintf("damage modifier must be in [0, 1], got %g", r.DamageModifier))
	}
	for _, k := range weapon.Kinds() {
		rng, ok := r.Ranges[k]
		if !ok {
			errs = append(errs, fmt.Sprintf("no range for weapon %s", k))
			continue
		}
		if rng <= 0 {
			errs = append(errs, fmt.Sprintf("%s range must be > 0, got %g", k, rng))
		}
	}
	if len(errs) > 0 {
		return errors.New("invalid combat rules: " + strings.Join(errs, "; "))
	}
	return nil
}

// Range returns the maximum attack distance for k.
//
// Postcondition: Returns the configured range, or a non-nil error for an unknown kind.
func (r Rules) Range(k weapon.Kind) (float64, error) {
	rng, ok := r.Ranges[k]
	if !ok {
		return 0, fmt.Errorf("no range configured for weapon kind %s", k)
	}
	return rng, nil
}

// InRange reports whether an attack with k may reach distance. The boundary is inclusive.
//
// Postcondition: Returns false for an unknown kind.
func (r Rules) InRange(k weapon.Kind, distance float64) bool {
	rng, err := r.Range(k)
	if err != nil {
		return false
	}
	return distance <= rng
}

// ScaleDamage adjusts raw damage for the level gap between attacker and target.
// An attacker LevelGap or more levels above deals raw*(1+DamageModifier); an
// attacker LevelGap or more levels below deals raw*(1-DamageModifier); anything
// closer leaves raw unchanged. Scaled values are rounded half away from zero
// and saturate at math.MaxInt.
//
// Precondition: raw >= 0.
// Postcondition: Returns a value in [0, math.MaxInt].
func (r Rules) ScaleDamage(raw, attackerLevel, targetLevel int) int {
	gap := attackerLevel - targetLevel
	switch {
	case gap >= r.LevelGap:
		return scale(raw, 1+r.DamageModifier)
	case -gap >= r.LevelGap:
		return scale(raw, 1-r.DamageModifier)
	default:
		return raw
	}
}

func scale(raw int, factor float64) int {
	f := math.Round(float64(raw) * factor)
	if f >= math.MaxInt {
		return math.MaxInt
	}
	return int(f)
}
