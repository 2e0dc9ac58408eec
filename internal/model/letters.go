package model

import (
	"fmt"
	"unicode"
)

// WildcardLetter is the blank tile that can stand in for any letter
const WildcardLetter = '*'

// LetterDef describes one letter of the tile set
type LetterDef struct {
	Count            int `json:"count" yaml:"count"`
	Score            int `json:"score" yaml:"score"`
	MovementDistance int `json:"movement_distance" yaml:"-"`
}

// LetterEntry pairs a letter with its definition
type LetterEntry struct {
	Letter rune
	Def    LetterDef
}

// LetterTable is the ordered tile set. Order matters: it drives movement
// distances and the ordered-draw alphabet.
type LetterTable struct {
	entries []LetterEntry
	index   map[rune]int
}

// NewLetterTable builds a table from entries in configuration order and
// derives movement distances for a board of the given size
func NewLetterTable(entries []LetterEntry, boardSize int) (*LetterTable, error) {
	t := &LetterTable{
		entries: make([]LetterEntry, 0, len(entries)),
		index:   make(map[rune]int, len(entries)),
	}
	for _, e := range entries {
		letter := unicode.ToUpper(e.Letter)
		if letter != WildcardLetter && !unicode.IsLetter(letter) {
			return nil, fmt.Errorf("%w: %q is not a letter", ErrInvalidConfig, e.Letter)
		}
		if _, dup := t.index[letter]; dup {
			return nil, fmt.Errorf("%w: duplicate letter %q", ErrInvalidConfig, letter)
		}
		if e.Def.Count < 0 || e.Def.Score < 0 {
			return nil, fmt.Errorf("%w: letter %q has a negative count or score", ErrInvalidConfig, letter)
		}
		t.index[letter] = len(t.entries)
		t.entries = append(t.entries, LetterEntry{Letter: letter, Def: e.Def})
	}
	if len(t.entries) == 0 {
		return nil, fmt.Errorf("%w: letter table is empty", ErrInvalidConfig)
	}
	t.deriveMovement(boardSize)
	return t, nil
}

// deriveMovement assigns each letter its 1-based position as a distance.
// The wildcard and the letter whose index equals the board size get 0, the
// latter because moving a full board length lands back on the same cell.
func (t *LetterTable) deriveMovement(boardSize int) {
	for i := range t.entries {
		distance := i + 1
		if t.entries[i].Letter == WildcardLetter || distance == boardSize {
			distance = 0
		}
		t.entries[i].Def.MovementDistance = distance
	}
}

// Get returns the definition for a letter
func (t *LetterTable) Get(letter rune) (LetterDef, bool) {
	i, ok := t.index[unicode.ToUpper(letter)]
	if !ok {
		return LetterDef{}, false
	}
	return t.entries[i].Def, true
}

// Has returns true if the letter is part of the tile set
func (t *LetterTable) Has(letter rune) bool {
	_, ok := t.index[unicode.ToUpper(letter)]
	return ok
}

// Score returns the point value of a letter, 0 if unknown
func (t *LetterTable) Score(letter rune) int {
	def, _ := t.Get(letter)
	return def.Score
}

// Distance returns the movement distance of a letter, 0 if unknown
func (t *LetterTable) Distance(letter rune) int {
	def, _ := t.Get(letter)
	return def.MovementDistance
}

// Alphabet returns every letter in configuration order
func (t *LetterTable) Alphabet() []rune {
	alphabet := make([]rune, len(t.entries))
	for i, e := range t.entries {
		alphabet[i] = e.Letter
	}
	return alphabet
}

// Entries returns a copy of the table in configuration order
func (t *LetterTable) Entries() []LetterEntry {
	result := make([]LetterEntry, len(t.entries))
	copy(result, t.entries)
	return result
}

// TotalTiles returns the number of tiles the full set contains
func (t *LetterTable) TotalTiles() int {
	total := 0
	for _, e := range t.entries {
		total += e.Def.Count
	}
	return total
}

// EffectWeight is one entry of a special-tile effect distribution
type EffectWeight struct {
	Effect StatusEffect `json:"effect"`
	Weight float64      `json:"weight"`
}

// EffectDistribution holds relative weights for the effects special tiles
// can grant, in configuration order
type EffectDistribution []EffectWeight

// Total returns the sum of all positive weights
func (d EffectDistribution) Total() float64 {
	total := 0.0
	for _, w := range d {
		if w.Weight > 0 {
			total += w.Weight
		}
	}
	return total
}

// Validate checks that every effect is known and at least one weight is positive
func (d EffectDistribution) Validate() error {
	for _, w := range d {
		if !w.Effect.Valid() {
			return fmt.Errorf("%w: %d", ErrUnknownStatus, int(w.Effect))
		}
		if w.Weight < 0 {
			return fmt.Errorf("%w: effect %s has negative weight", ErrInvalidConfig, w.Effect)
		}
	}
	if d.Total() <= 0 {
		return fmt.Errorf("%w: special tile distribution has no positive weight", ErrInvalidConfig)
	}
	return nil
}
