package model

import (
	"fmt"
	"strings"
	"time"
)

// GameID uniquely identifies a game session
type GameID string

// GameState represents the current phase of a game
type GameState string

const (
	GameStatePlaying  GameState = "playing"   // Moves are accepted
	GameStateGameOver GameState = "game_over" // Hand and bag are exhausted
)

// Direction is one of the eight compass moves
type Direction string

const (
	DirNone      Direction = ""
	DirUp        Direction = "up"
	DirDown      Direction = "down"
	DirLeft      Direction = "left"
	DirRight     Direction = "right"
	DirUpLeft    Direction = "up_left"
	DirUpRight   Direction = "up_right"
	DirDownLeft  Direction = "down_left"
	DirDownRight Direction = "down_right"
)

var directionDeltas = map[Direction]Delta{
	DirUp:        {DX: 0, DY: -1},
	DirDown:      {DX: 0, DY: 1},
	DirLeft:      {DX: -1, DY: 0},
	DirRight:     {DX: 1, DY: 0},
	DirUpLeft:    {DX: -1, DY: -1},
	DirUpRight:   {DX: 1, DY: -1},
	DirDownLeft:  {DX: -1, DY: 1},
	DirDownRight: {DX: 1, DY: 1},
}

// AllDirections returns the eight directions, orthogonal first
func AllDirections() []Direction {
	return []Direction{
		DirUp, DirDown, DirLeft, DirRight,
		DirUpLeft, DirUpRight, DirDownLeft, DirDownRight,
	}
}

// DiagonalDirections returns the four diagonal directions
func DiagonalDirections() []Direction {
	return []Direction{DirUpLeft, DirUpRight, DirDownLeft, DirDownRight}
}

// ParseDirection accepts names like "up", "down-right" or "DOWN_RIGHT"
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if _, ok := directionDeltas[d]; !ok {
		return DirNone, fmt.Errorf("%w: unknown direction %q", ErrIllegalDirection, s)
	}
	return d, nil
}

// Unit returns the one-step offset for the direction
func (d Direction) Unit() (Delta, bool) {
	delta, ok := directionDeltas[d]
	return delta, ok
}

// IsDiagonal returns true for the four diagonal directions
func (d Direction) IsDiagonal() bool {
	delta, ok := directionDeltas[d]
	return ok && delta.DX != 0 && delta.DY != 0
}

// MoveIntent is a decoded player input. Exactly one of Direction or Target
// is expected to be set; Substitute is only used for wildcard placements.
type MoveIntent struct {
	HandIndex  int       `json:"hand_index"`
	Direction  Direction `json:"direction,omitempty"`
	Target     *Position `json:"target,omitempty"`
	Substitute rune      `json:"substitute,omitempty"`
}

// WordRecord is a run of letters found on the board
type WordRecord struct {
	Word      string     `json:"word"`
	Positions []Position `json:"positions"`
}

// ScoredWord is a word accepted by the dictionary and the points it earned
type ScoredWord struct {
	WordRecord
	Score int `json:"score"`
}

// Placement describes one attempt to put a letter on the board
type Placement struct {
	Position Position      `json:"position"`
	Letter   rune          `json:"letter"`
	Placed   bool          `json:"placed"` // False when an occupied cell dropped the tile
	Mirrored bool          `json:"mirrored"`
	Granted  *StatusEffect `json:"granted,omitempty"`
}

// MoveResult summarizes everything one resolved move changed
type MoveResult struct {
	Turn        int          `json:"turn"`
	Played      rune         `json:"played"`
	Replacement *rune        `json:"replacement,omitempty"` // Nil when the bag was empty
	Placements  []Placement  `json:"placements"`
	Words       []ScoredWord `json:"words,omitempty"`
	Events      []Event      `json:"events"`
	GameOver    bool         `json:"game_over"`
}

// Snapshot is the observable state of a game for presentation layers
type Snapshot struct {
	ID          GameID        `json:"id"`
	State       GameState     `json:"state"`
	Turn        int           `json:"turn"`
	Board       *Board        `json:"-"`
	Rows        []string      `json:"rows"`
	Position    Position      `json:"position"`
	Score       int           `json:"score"`
	Level       int           `json:"level"`
	Hand        Hand          `json:"-"`
	HandLetters []string      `json:"hand"`
	Distances   []int         `json:"hand_distances"` // Movement distance of each hand tile
	Alphabet    string        `json:"alphabet"`       // Letters a wildcard may stand for
	BagSize     int           `json:"bag_size"`
	Statuses    []StatusEntry `json:"statuses"`
	Highlighted []Position    `json:"highlighted"`
	ScoredWords []string      `json:"scored_words"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// IsAffected reports whether the snapshot lists the effect as active
func (s *Snapshot) IsAffected(effect StatusEffect) bool {
	for _, st := range s.Statuses {
		if st.Effect == effect && st.Turns > 0 {
			return true
		}
	}
	return false
}

// RequiresTarget reports whether playing the tile at index i needs an
// absolute target instead of a direction
func (s *Snapshot) RequiresTarget(i int) bool {
	if s.IsAffected(StatusJump) || s.IsAffected(StatusWildcard) {
		return true
	}
	return i >= 0 && i < len(s.Distances) && s.Distances[i] == 0
}

// RequiresSubstitute reports whether the tile at index i must be played as
// another letter
func (s *Snapshot) RequiresSubstitute(i int) bool {
	return i >= 0 && i < len(s.Hand) && s.Hand[i] == WildcardLetter
}

// LegalDirections returns the directions a relative move may use
func (s *Snapshot) LegalDirections() []Direction {
	if s.IsAffected(StatusDiagonal) {
		return DiagonalDirections()
	}
	return AllDirections()
}

// HiddenLetter stands in for every hand tile while blind is active
const HiddenLetter = "?"

// VisibleHand returns the hand as shown to the player; blind hides every
// tile
func (s *Snapshot) VisibleHand() []string {
	blind := s.IsAffected(StatusBlind)
	visible := make([]string, len(s.Hand))
	for i, letter := range s.Hand {
		visible[i] = string(letter)
		if blind {
			visible[i] = HiddenLetter
		}
	}
	return visible
}
