// Package entity defines the damageable, positioned world objects that combat
// acts upon.
package entity

import (
	"errors"
	"fmt"
)

// ErrNegativeAmount is returned when a damage or heal magnitude is below zero.
var ErrNegativeAmount = errors.New("amount must not be negative")

// Locatable is anything with a position on the play field.
type Locatable interface {
	Position() Position
}

// Target is anything an attack can be aimed at.
type Target interface {
	Locatable
	Alive() bool
	ApplyDamage(amount int) error
}

// Prop is a damageable world object with no combat agency.
//
// Invariant: 0 <= health <= maxHealth.
// Invariant: alive == (health > 0); once false it never becomes true again.
type Prop struct {
	health    int
	maxHealth int
	alive     bool
	pos       Position
}

// NewProp creates a Prop at pos with health as both its starting and maximum health.
//
// Precondition: health >= 1.
// Postcondition: Returns a living Prop, or a non-nil error if health < 1.
func NewProp(health int, pos Position) (*Prop, error) {
	if health < 1 {
		return nil, fmt.Errorf("prop health must be >= 1, got %d", health)
	}
	return &Prop{
		health:    health,
		maxHealth: health,
		alive:     true,
		pos:       pos,
	}, nil
}

// Health returns the current health.
func (p *Prop) Health() int { return p.health }

// MaxHealth returns the health cap.
func (p *Prop) MaxHealth() int { return p.maxHealth }

// Alive reports whether the prop still has health.
func (p *Prop) Alive() bool { return p.alive }

// Position returns the current position.
func (p *Prop) Position() Position { return p.pos }

// SetPosition moves the prop to (x, y).
func (p *Prop) SetPosition(x, y float64) {
	p.pos = Position{X: x, Y: y}
}

// DistanceTo returns the Euclidean distance from p to other.
//
// Precondition: other must be non-nil.
func (p *Prop) DistanceTo(other Locatable) float64 {
	return p.pos.DistanceTo(other.Position())
}

// ApplyDamage reduces health by amount, flooring at zero. Reaching zero
// permanently clears the alive flag.
//
// Precondition: amount >= 0.
// Postcondition: Returns ErrNegativeAmount and leaves state unchanged if amount < 0;
// otherwise health >= 0 and alive == (health > 0).
func (p *Prop) ApplyDamage(amount int) error {
	if amount < 0 {
		return fmt.Errorf("damage %d: %w", amount, ErrNegativeAmount)
	}
	if amount >= p.health {
		p.health = 0
		p.alive = false
		return nil
	}
	p.health -= amount
	return nil
}

// Restore raises health by amount, capped at MaxHealth. A dead prop stays dead.
//
// Precondition: amount >= 0.
// Postcondition: Returns the health actually restored; health <= MaxHealth.
func (p *Prop) Restore(amount int) (int, error) {
	if amount < 0 {
		return 0, fmt.Errorf("heal %d: %w", amount, ErrNegativeAmount)
	}
	if !p.alive {
		return 0, nil
	}
	before := p.health
	if amount >= p.maxHealth-p.health {
		p.health = p.maxHealth
	} else {
		p.health += amount
	}
	return p.health - before, nil
}
