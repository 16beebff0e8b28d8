// Package roster loads the starting line-up of a skirmish from YAML.
package roster

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/skirmish/internal/game/arena"
	"github.com/cory-johannsen/skirmish/internal/game/entity"
	"github.com/cory-johannsen/skirmish/internal/game/weapon"
)

// Position is a YAML point.
type Position struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// CharacterDef is one character entry.
type CharacterDef struct {
	Name     string   `yaml:"name"`
	Weapon   string   `yaml:"weapon"` // "melee" or "ranged"; empty = melee
	Level    int      `yaml:"level"`  // 0 = 1
	Position Position `yaml:"position"`
	Factions []string `yaml:"factions"`
}

// PropDef is one prop entry.
type PropDef struct {
	Name     string   `yaml:"name"`
	Health   int      `yaml:"health"`
	Position Position `yaml:"position"`
}

// Roster is the full set of entities to spawn.
type Roster struct {
	Characters []CharacterDef `yaml:"characters"`
	Props      []PropDef      `yaml:"props"`
}

// Validate checks that every entry is well formed and every name is unique.
//
// Postcondition: Returns nil iff the roster can be applied to an empty arena.
func (r *Roster) Validate() error {
	var errs []error
	seen := make(map[string]bool)
	checkName := func(kind string, i int, name string) {
		switch {
		case name == "":
			errs = append(errs, fmt.Errorf("%s[%d]: name must not be empty", kind, i))
		case seen[name]:
			errs = append(errs, fmt.Errorf("%s[%d]: duplicate name %q", kind, i, name))
		}
		seen[name] = true
	}
	for i, c := range r.Characters {
		checkName("characters", i, c.Name)
		if c.Weapon != "" {
			if _, err := weapon.ParseKind(c.Weapon); err != nil {
				errs = append(errs, fmt.Errorf("characters[%d]: %w", i, err))
			}
		}
		if c.Level < 0 {
			errs = append(errs, fmt.Errorf("characters[%d]: level must be >= 1, got %d", i, c.Level))
		}
		for _, f := range c.Factions {
			if f == "" {
				errs = append(errs, fmt.Errorf("characters[%d]: faction must not be empty", i))
			}
		}
	}
	for i, p := range r.Props {
		checkName("props", i, p.Name)
		if p.Health < 1 {
			errs = append(errs, fmt.Errorf("props[%d]: health must be >= 1, got %d", i, p.Health))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("roster validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// Parse decodes and validates a roster document.
//
// Postcondition: Returns a valid Roster or a non-nil error.
func Parse(data []byte) (*Roster, error) {
	var r Roster
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing roster: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Load reads and parses the roster file at path.
//
// Precondition: path must be a readable YAML file.
// Postcondition: Returns a valid Roster or a non-nil error.
func Load(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster %q: %w", path, err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("roster %q: %w", path, err)
	}
	return r, nil
}

// Apply spawns every roster entry into a, characters first.
//
// Precondition: r must have passed Validate; a must be non-nil.
// Postcondition: Returns a name → entity ID map, or the first spawn error.
// Entities spawned before the error remain in a.
func (r *Roster) Apply(a *arena.Arena) (map[string]string, error) {
	ids := make(map[string]string, len(r.Characters)+len(r.Props))
	for _, c := range r.Characters {
		kind := weapon.Melee
		if c.Weapon != "" {
			k, err := weapon.ParseKind(c.Weapon)
			if err != nil {
				return ids, fmt.Errorf("character %q: %w", c.Name, err)
			}
			kind = k
		}
		id, err := a.SpawnCharacter(arena.CharacterSpec{
			Name:     c.Name,
			Weapon:   kind,
			Level:    c.Level,
			Position: entity.Position{X: c.Position.X, Y: c.Position.Y},
			Factions: c.Factions,
		})
		if err != nil {
			return ids, err
		}
		ids[c.Name] = id
	}
	for _, p := range r.Props {
		id, err := a.SpawnProp(arena.PropSpec{
			Name:     p.Name,
			Health:   p.Health,
			Position: entity.Position{X: p.Position.X, Y: p.Position.Y},
		})
		if err != nil {
			return ids, err
		}
		ids[p.Name] = id
	}
	return ids, nil
}
