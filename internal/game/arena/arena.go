// Package arena hosts a set of characters and props and serializes every
// combat action against them.
package arena

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/character"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/entity"
	"github.com/cory-johannsen/skirmish/internal/game/weapon"
)

// Kind distinguishes characters from plain props.
type Kind int

const (
	KindCharacter Kind = iota
	KindProp
)

// String returns "character" or "prop".
func (k Kind) String() string {
	if k == KindProp {
		return "prop"
	}
	return "character"
}

// CharacterSpec describes a character to spawn.
type CharacterSpec struct {
	Name     string
	Weapon   weapon.Kind
	Level    int
	Position entity.Position
	Factions []string
}

// PropSpec describes a prop to spawn.
type PropSpec struct {
	Name     string
	Health   int
	Position entity.Position
}

// Status is a point-in-time snapshot of one entity.
type Status struct {
	ID        string
	Name      string
	Kind      Kind
	Health    int
	MaxHealth int
	Alive     bool
	Position  entity.Position
	// Level, Weapon, and Factions are zero for props.
	Level    int
	Weapon   weapon.Kind
	Factions []string
}

type member struct {
	id   string
	name string
	char *character.Character
	prop *entity.Prop
}

func (m *member) target() entity.Target {
	if m.char != nil {
		return m.char
	}
	return m.prop
}

func (m *member) status() Status {
	if m.char != nil {
		return Status{
			ID:        m.id,
			Name:      m.name,
			Kind:      KindCharacter,
			Health:    m.char.Health(),
			MaxHealth: m.char.MaxHealth(),
			Alive:     m.char.Alive(),
			Position:  m.char.Position(),
			Level:     m.char.Level(),
			Weapon:    m.char.Weapon(),
			Factions:  m.char.Factions(),
		}
	}
	return Status{
		ID:        m.id,
		Name:      m.name,
		Kind:      KindProp,
		Health:    m.prop.Health(),
		MaxHealth: m.prop.MaxHealth(),
		Alive:     m.prop.Alive(),
		Position:  m.prop.Position(),
	}
}

// Arena owns every entity in a skirmish. A single lock makes each action's
// check-then-mutate sequence atomic. All methods are safe for concurrent use.
type Arena struct {
	mu      sync.Mutex
	members map[string]*member
	byName  map[string]string // name → ID
	rules   combat.Rules
	logger  *zap.Logger
	newID   func() string
}

// New creates an empty Arena that builds characters with rules.
//
// Precondition: rules must pass Validate; logger must be non-nil.
// Postcondition: Returns a non-nil Arena ready for use.
func New(rules combat.Rules, logger *zap.Logger) *Arena {
	return &Arena{
		members: make(map[string]*member),
		byName:  make(map[string]string),
		rules:   rules,
		logger:  logger,
		newID:   func() string { return uuid.New().String() },
	}
}

// SpawnCharacter creates a character from spec and registers it.
//
// Precondition: spec.Name must be non-empty and unused; spec.Weapon must be valid;
// spec.Level must be 0 (meaning 1) or >= 1.
// Postcondition: Returns the new entity ID, or a non-nil error and no change.
func (a *Arena) SpawnCharacter(spec CharacterSpec) (string, error) {
	if spec.Weapon == weapon.KindUnknown {
		spec.Weapon = weapon.Melee
	}
	if spec.Level == 0 {
		spec.Level = 1
	}
	c, err := character.New(
		character.WithName(spec.Name),
		character.WithLevel(spec.Level),
		character.WithWeapon(spec.Weapon),
		character.WithPosition(spec.Position.X, spec.Position.Y),
		character.WithRules(a.rules),
	)
	if err != nil {
		return "", fmt.Errorf("spawning %q: %w", spec.Name, err)
	}
	for _, f := range spec.Factions {
		if err := c.JoinFaction(f); err != nil {
			return "", fmt.Errorf("spawning %q: %w", spec.Name, err)
		}
	}
	return a.register(&member{name: spec.Name, char: c})
}

// SpawnProp creates a prop from spec and registers it.
//
// Precondition: spec.Name must be non-empty and unused; spec.Health >= 1.
// Postcondition: Returns the new entity ID, or a non-nil error and no change.
func (a *Arena) SpawnProp(spec PropSpec) (string, error) {
	p, err := entity.NewProp(spec.Health, spec.Position)
	if err != nil {
		return "", fmt.Errorf("spawning %q: %w", spec.Name, err)
	}
	return a.register(&member{name: spec.Name, prop: p})
}

func (a *Arena) register(m *member) (string, error) {
	if m.name == "" {
		return "", fmt.Errorf("entity name must not be empty")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.byName[m.name]; exists {
		return "", fmt.Errorf("entity named %q already exists", m.name)
	}
	m.id = a.newID()
	a.members[m.id] = m
	a.byName[m.name] = m.id

	st := m.status()
	a.logger.Info("entity spawned",
		zap.String("id", m.id),
		zap.String("name", m.name),
		zap.Stringer("kind", st.Kind),
		zap.Int("health", st.Health),
		zap.Float64("x", st.Position.X),
		zap.Float64("y", st.Position.Y),
	)
	return m.id, nil
}

// Lookup returns the ID of the entity called name.
//
// Postcondition: Returns (id, true) if found, or ("", false) otherwise.
func (a *Arena) Lookup(name string) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	id, ok := a.byName[name]
	return id, ok
}

// Len returns the number of registered entities.
func (a *Arena) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.members)
}

// get returns the member for id. Caller must hold a.mu.
func (a *Arena) get(id string) (*member, error) {
	m, ok := a.members[id]
	if !ok {
		return nil, fmt.Errorf("entity %q not found", id)
	}
	return m, nil
}

// getCharacter returns the character for id. Caller must hold a.mu.
func (a *Arena) getCharacter(id string) (*member, error) {
	m, err := a.get(id)
	if err != nil {
		return nil, err
	}
	if m.char == nil {
		return nil, fmt.Errorf("entity %q (%s) is a prop, not a character", m.name, id)
	}
	return m, nil
}

// Attack has the character attackerID attack the entity targetID for damage.
//
// Precondition: attackerID must be a character; targetID must exist; damage >= 0.
// Postcondition: Returns the combat.Result, or a non-nil error and no change.
func (a *Arena) Attack(attackerID, targetID string, damage int) (combat.Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	attacker, err := a.getCharacter(attackerID)
	if err != nil {
		return combat.Result{}, fmt.Errorf("attack: %w", err)
	}
	target, err := a.get(targetID)
	if err != nil {
		return combat.Result{}, fmt.Errorf("attack: %w", err)
	}

	res, err := attacker.char.Attack(target.target(), damage)
	if err != nil {
		return combat.Result{}, fmt.Errorf("attack by %q on %q: %w", attacker.name, target.name, err)
	}
	st := target.status()
	a.logger.Info("attack resolved",
		zap.String("attacker", attacker.name),
		zap.String("target", target.name),
		zap.Int("requested", damage),
		zap.Stringer("outcome", res.Outcome),
		zap.Int("damage", res.Amount),
		zap.Float64("distance", res.Distance),
		zap.Int("health", st.Health),
		zap.Bool("alive", st.Alive),
	)
	return res, nil
}

// Heal has the character healerID heal the character targetID for amount.
// A healer healing its own ID always succeeds regardless of factions.
//
// Precondition: healerID and targetID must be characters; amount >= 0.
// Postcondition: Returns the combat.Result, or a non-nil error and no change.
func (a *Arena) Heal(healerID, targetID string, amount int) (combat.Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	healer, err := a.getCharacter(healerID)
	if err != nil {
		return combat.Result{}, fmt.Errorf("heal: %w", err)
	}
	target, err := a.getCharacter(targetID)
	if err != nil {
		return combat.Result{}, fmt.Errorf("heal: %w", err)
	}

	res, err := healer.char.Heal(target.char, amount)
	if err != nil {
		return combat.Result{}, fmt.Errorf("heal by %q on %q: %w", healer.name, target.name, err)
	}
	a.logger.Info("heal resolved",
		zap.String("healer", healer.name),
		zap.String("target", target.name),
		zap.Int("requested", amount),
		zap.Stringer("outcome", res.Outcome),
		zap.Int("restored", res.Amount),
		zap.Int("health", target.char.Health()),
	)
	return res, nil
}

// Move places the entity id at (x, y).
//
// Postcondition: Returns an error if id is not found.
func (a *Arena) Move(id string, x, y float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	m, err := a.get(id)
	if err != nil {
		return fmt.Errorf("move: %w", err)
	}
	if m.char != nil {
		m.char.SetPosition(x, y)
	} else {
		m.prop.SetPosition(x, y)
	}
	a.logger.Debug("entity moved",
		zap.String("name", m.name),
		zap.Float64("x", x),
		zap.Float64("y", y),
	)
	return nil
}

// JoinFaction adds the character id to faction.
//
// Postcondition: Returns an error if id is not a character or faction is empty.
func (a *Arena) JoinFaction(id, faction string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	m, err := a.getCharacter(id)
	if err != nil {
		return fmt.Errorf("join faction: %w", err)
	}
	if err := m.char.JoinFaction(faction); err != nil {
		return fmt.Errorf("join faction: %w", err)
	}
	a.logger.Debug("faction joined", zap.String("name", m.name), zap.String("faction", faction))
	return nil
}

// LeaveFaction removes the character id from faction.
//
// Postcondition: Returns an error if id is not a character.
func (a *Arena) LeaveFaction(id, faction string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	m, err := a.getCharacter(id)
	if err != nil {
		return fmt.Errorf("leave faction: %w", err)
	}
	m.char.LeaveFaction(faction)
	a.logger.Debug("faction left", zap.String("name", m.name), zap.String("faction", faction))
	return nil
}

// LevelUp raises the character id by one level and returns the new level.
//
// Postcondition: Returns an error if id is not a character.
func (a *Arena) LevelUp(id string) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	m, err := a.getCharacter(id)
	if err != nil {
		return 0, fmt.Errorf("level up: %w", err)
	}
	m.char.LevelUp()
	a.logger.Debug("level up", zap.String("name", m.name), zap.Int("level", m.char.Level()))
	return m.char.Level(), nil
}

// Status returns a snapshot of the entity id.
//
// Postcondition: Returns an error if id is not found.
func (a *Arena) Status(id string) (Status, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	m, err := a.get(id)
	if err != nil {
		return Status{}, err
	}
	return m.status(), nil
}

// Statuses returns snapshots of every entity ordered by name.
//
// Postcondition: Returns a non-nil slice (may be empty).
func (a *Arena) Statuses() []Status {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]Status, 0, len(a.members))
	for _, m := range a.members {
		out = append(out, m.status())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
