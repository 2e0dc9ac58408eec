package model

import (
	"fmt"
	"strings"
)

// DefaultDecayTurns is how many turns a granted status lasts
const DefaultDecayTurns = 3

// StatusEffect names a temporary effect a player can be under
type StatusEffect int

const (
	StatusMirror   StatusEffect = iota // Placements are repeated on the opposite side
	StatusDiagonal                     // Only diagonal moves are legal
	StatusOrdered                      // Replacement tiles follow alphabet order
	StatusWildcard                     // Any letter may be placed
	StatusJump                         // Tiles may be placed on any cell
	StatusBlind                        // The current tile is hidden
	StatusErase                        // Placement overwrites existing letters
	numStatusEffects
)

var statusNames = [numStatusEffects]string{
	StatusMirror:   "mirror",
	StatusDiagonal: "diagonal",
	StatusOrdered:  "ordered",
	StatusWildcard: "wildcard",
	StatusJump:     "jump",
	StatusBlind:    "blind",
	StatusErase:    "erase",
}

// AllStatusEffects returns every effect in declaration order
func AllStatusEffects() []StatusEffect {
	effects := make([]StatusEffect, 0, numStatusEffects)
	for e := StatusEffect(0); e < numStatusEffects; e++ {
		effects = append(effects, e)
	}
	return effects
}

// Valid returns true if the effect is one of the known effects
func (e StatusEffect) Valid() bool {
	return e >= 0 && e < numStatusEffects
}

// String returns the configuration name of the effect
func (e StatusEffect) String() string {
	if !e.Valid() {
		return fmt.Sprintf("StatusEffect(%d)", int(e))
	}
	return statusNames[e]
}

// ParseStatusEffect looks up an effect by name, case-insensitively
func ParseStatusEffect(name string) (StatusEffect, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for e, n := range statusNames {
		if n == name {
			return StatusEffect(e), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStatus, name)
}

// MarshalText implements encoding.TextMarshaler
func (e StatusEffect) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStatus, int(e))
	}
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (e *StatusEffect) UnmarshalText(text []byte) error {
	parsed, err := ParseStatusEffect(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// StatusEntry is one effect with its remaining turns
type StatusEntry struct {
	Effect StatusEffect `json:"effect"`
	Turns  int          `json:"turns"`
}

// StatusTable tracks remaining turns for every effect
type StatusTable struct {
	turns [numStatusEffects]int
}

// Grant adds amount turns to the effect
func (t *StatusTable) Grant(effect StatusEffect, amount int) error {
	if !effect.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownStatus, int(effect))
	}
	t.turns[effect] += amount
	if t.turns[effect] < 0 {
		t.turns[effect] = 0
	}
	return nil
}

// DecayAll removes one turn from every effect, never going below zero
func (t *StatusTable) DecayAll() {
	for i := range t.turns {
		if t.turns[i] > 0 {
			t.turns[i]--
		}
	}
}

// IsAffected returns true if the effect has turns remaining
func (t *StatusTable) IsAffected(effect StatusEffect) bool {
	return t.Turns(effect) > 0
}

// Turns returns the remaining turns for the effect
func (t *StatusTable) Turns(effect StatusEffect) int {
	if !effect.Valid() {
		return 0
	}
	return t.turns[effect]
}

// Active returns every effect with turns remaining, in declaration order
func (t *StatusTable) Active() []StatusEntry {
	var active []StatusEntry
	for e := StatusEffect(0); e < numStatusEffects; e++ {
		if t.turns[e] > 0 {
			active = append(active, StatusEntry{Effect: e, Turns: t.turns[e]})
		}
	}
	return active
}
