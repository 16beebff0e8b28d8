// Package character implements characters: props that wield a weapon, gain
// levels, join factions, and attack or heal other entities.
package character

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/entity"
	"github.com/cory-johannsen/skirmish/internal/game/faction"
	"github.com/cory-johannsen/skirmish/internal/game/weapon"
)

// Character is a Prop with combat agency. Its Prop is never exposed; the
// Character itself is the only Target for its health.
//
// Invariant: level >= 1 and only increases.
// Invariant: weapon is always a valid weapon.Kind.
// Callers must serialize access; a Character performs no internal locking.
type Character struct {
	prop *entity.Prop

	name     string
	level    int
	weapon   weapon.Kind
	factions faction.Set
	rules    combat.Rules
}

var _ entity.Target = (*Character)(nil)

type options struct {
	name   string
	level  int
	weapon weapon.Kind
	pos    entity.Position
	rules  combat.Rules
}

// Option configures a Character at construction.
type Option func(*options)

// WithWeapon sets the wielded weapon kind. Default: weapon.Melee.
func WithWeapon(k weapon.Kind) Option {
	return func(o *options) { o.weapon = k }
}

// WithPosition sets the starting position. Default: (0, 0).
func WithPosition(x, y float64) Option {
	return func(o *options) { o.pos = entity.Position{X: x, Y: y} }
}

// WithRules sets the combat rules. Default: combat.DefaultRules().
func WithRules(r combat.Rules) Option {
	return func(o *options) { o.rules = r }
}

// WithLevel sets the starting level. Default: 1.
func WithLevel(level int) Option {
	return func(o *options) { o.level = level }
}

// WithName sets a display name.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// New creates a Character at full health with no factions.
//
// Postcondition: Returns a living Character with Health() == rules.MaxHealth,
// or a non-nil error if the level, weapon kind or rules are invalid.
func New(opts ...Option) (*Character, error) {
	o := options{level: 1, weapon: weapon.Melee, rules: combat.DefaultRules()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.level < 1 {
		return nil, fmt.Errorf("creating character: level must be >= 1, got %d", o.level)
	}
	if !o.weapon.Valid() {
		return nil, fmt.Errorf("creating character: unknown weapon kind %d", int(o.weapon))
	}
	if err := o.rules.Validate(); err != nil {
		return nil, fmt.Errorf("creating character: %w", err)
	}
	prop, err := entity.NewProp(o.rules.MaxHealth, o.pos)
	if err != nil {
		return nil, fmt.Errorf("creating character: %w", err)
	}
	return &Character{
		prop:   prop,
		name:   o.name,
		level:  o.level,
		weapon: o.weapon,
		rules:  o.rules,
	}, nil
}

// Health returns the current health.
func (c *Character) Health() int { return c.prop.Health() }

// MaxHealth returns the health cap.
func (c *Character) MaxHealth() int { return c.prop.MaxHealth() }

// Alive reports whether the character still has health.
func (c *Character) Alive() bool { return c.prop.Alive() }

// Position returns the current position.
func (c *Character) Position() entity.Position { return c.prop.Position() }

// SetPosition moves the character to (x, y).
func (c *Character) SetPosition(x, y float64) { c.prop.SetPosition(x, y) }

// DistanceTo returns the Euclidean distance from c to other.
func (c *Character) DistanceTo(other entity.Locatable) float64 { return c.prop.DistanceTo(other) }

// ApplyDamage is the raw damage primitive. It bypasses every combat gate;
// use Attack to resolve an attack.
//
// Precondition: amount >= 0.
func (c *Character) ApplyDamage(amount int) error { return c.prop.ApplyDamage(amount) }

// Name returns the display name, which may be empty.
func (c *Character) Name() string { return c.name }

// Level returns the current level.
func (c *Character) Level() int { return c.level }

// LevelUp raises the level by exactly one.
func (c *Character) LevelUp() { c.level++ }

// Weapon returns the wielded weapon kind.
func (c *Character) Weapon() weapon.Kind { return c.weapon }

// SetWeapon replaces the wielded weapon.
//
// Postcondition: Weapon() == k, or a non-nil error and no change if k is invalid.
func (c *Character) SetWeapon(k weapon.Kind) error {
	if !k.Valid() {
		return fmt.Errorf("unknown weapon kind %d", int(k))
	}
	c.weapon = k
	return nil
}

// Factions returns the joined faction IDs in lexicographic order.
//
// Postcondition: The slice is a copy; mutating it does not affect c.
func (c *Character) Factions() []string { return c.factions.Members() }

// JoinFaction adds c to faction id. Joining twice is a no-op.
//
// Precondition: id must be non-empty.
func (c *Character) JoinFaction(id string) error { return c.factions.Join(id) }

// LeaveFaction removes c from faction id. Leaving a faction c is not in is a no-op.
func (c *Character) LeaveFaction(id string) { c.factions.Leave(id) }

// SharesFaction reports whether c and other belong to at least one common faction.
//
// Postcondition: Returns false if either character has no factions.
func (c *Character) SharesFaction(other *Character) bool {
	if other == nil {
		return false
	}
	return c.factions.Shares(&other.factions)
}

// Attack resolves an attack of damage against target.
//
// A *Character target goes through the self, faction, level-scaling, and
// range gates in that order. Any other target only goes through the range
// gate. A rejected attack is a silent no-op reported through Result.Outcome.
//
// Precondition: target must be non-nil; damage >= 0.
// Postcondition: Returns an error and changes nothing on a precondition violation;
// otherwise the target's health drops by Result.Amount iff Result.Outcome == combat.Applied.
func (c *Character) Attack(target entity.Target, damage int) (combat.Result, error) {
	if target == nil {
		return combat.Result{}, errors.New("attack target must not be nil")
	}
	if damage < 0 {
		return combat.Result{}, fmt.Errorf("attack damage %d: %w", damage, entity.ErrNegativeAmount)
	}
	if tc, ok := target.(*Character); ok {
		return c.attackCharacter(tc, damage)
	}
	return c.strike(target, damage)
}

func (c *Character) attackCharacter(target *Character, damage int) (combat.Result, error) {
	if target == c {
		return combat.Result{Outcome: combat.SelfTarget}, nil
	}
	if c.SharesFaction(target) {
		return combat.Result{Outcome: combat.FriendlyFire}, nil
	}
	scaled := c.rules.ScaleDamage(damage, c.level, target.level)
	return c.strike(target, scaled)
}

// strike is the range-gate and damage step shared by every target kind.
func (c *Character) strike(target entity.Target, damage int) (combat.Result, error) {
	if !target.Alive() {
		return combat.Result{Outcome: combat.TargetDead}, nil
	}
	dist := c.DistanceTo(target)
	if !c.rules.InRange(c.weapon, dist) {
		return combat.Result{Outcome: combat.OutOfRange, Distance: dist}, nil
	}
	if err := target.ApplyDamage(damage); err != nil {
		return combat.Result{}, err
	}
	return combat.Result{Outcome: combat.Applied, Amount: damage, Distance: dist}, nil
}

// HealSelf restores amount health to c, capped at the maximum. It ignores factions.
//
// Precondition: amount >= 0.
// Postcondition: Health() <= MaxHealth(); a dead character stays dead.
func (c *Character) HealSelf(amount int) (combat.Result, error) {
	return c.restore(c, amount)
}

// Heal restores amount health to target. Healing oneself is always allowed;
// healing anyone else requires a shared faction.
//
// Precondition: target must be non-nil; amount >= 0.
// Postcondition: target.Health() <= target.MaxHealth(); the target's health
// changes only if Result.Outcome == combat.Applied.
func (c *Character) Heal(target *Character, amount int) (combat.Result, error) {
	if target == nil {
		return combat.Result{}, errors.New("heal target must not be nil")
	}
	if amount < 0 {
		return combat.Result{}, fmt.Errorf("heal %d: %w", amount, entity.ErrNegativeAmount)
	}
	if target != c && !c.SharesFaction(target) {
		return combat.Result{Outcome: combat.NotAlly}, nil
	}
	return c.restore(target, amount)
}

// restore is the heal step shared by HealSelf and Heal.
func (c *Character) restore(target *Character, amount int) (combat.Result, error) {
	if amount < 0 {
		return combat.Result{}, fmt.Errorf("heal %d: %w", amount, entity.ErrNegativeAmount)
	}
	if !target.Alive() {
		return combat.Result{Outcome: combat.TargetDead}, nil
	}
	restored, err := target.prop.Restore(amount)
	if err != nil {
		return combat.Result{}, err
	}
	return combat.Result{Outcome: combat.Applied, Amount: restored}, nil
}
