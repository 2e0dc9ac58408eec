package response

import (
	"time"

	"github.com/mcoot/jumpbble/internal/model"
)

// Status is an active status effect
type Status struct {
	Effect string `json:"effect"`
	Turns  int    `json:"turns"`
}

// HandTile is one tile in the player's hand
type HandTile struct {
	Letter          string `json:"letter"`
	Distance        int    `json:"distance"`
	NeedsTarget     bool   `json:"needs_target"`
	NeedsSubstitute bool   `json:"needs_substitute"`
}

// Game represents a game in API responses
type Game struct {
	ID          string           `json:"id"`
	State       string           `json:"state"`
	Turn        int              `json:"turn"`
	Board       Board            `json:"board"`
	Position    model.Position   `json:"position"`
	Score       int              `json:"score"`
	Level       int              `json:"level"`
	Hand        []HandTile       `json:"hand"`
	Directions  []string         `json:"directions"`
	BagSize     int              `json:"bag_size"`
	Statuses    []Status         `json:"statuses"`
	Highlighted []model.Position `json:"highlighted"`
	ScoredWords []string         `json:"scored_words"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// GameFromSnapshot converts a model.Snapshot. Blind hides the hand: only
// whether a tile needs an absolute target is shown, since distance and the
// substitute flag identify the letter.
func GameFromSnapshot(s *model.Snapshot) Game {
	blind := s.IsAffected(model.StatusBlind)
	visible := s.VisibleHand()
	hand := make([]HandTile, len(s.Hand))
	for i := range s.Hand {
		hand[i] = HandTile{
			Letter:      visible[i],
			NeedsTarget: s.RequiresTarget(i),
		}
		if !blind {
			hand[i].Distance = s.Distances[i]
			hand[i].NeedsSubstitute = s.RequiresSubstitute(i)
		}
	}

	dirs := s.LegalDirections()
	directions := make([]string, len(dirs))
	for i, d := range dirs {
		directions[i] = string(d)
	}

	statuses := make([]Status, len(s.Statuses))
	for i, st := range s.Statuses {
		statuses[i] = Status{Effect: st.Effect.String(), Turns: st.Turns}
	}

	return Game{
		ID:          string(s.ID),
		State:       string(s.State),
		Turn:        s.Turn,
		Board:       BoardFromModel(s.Board),
		Position:    s.Position,
		Score:       s.Score,
		Level:       s.Level,
		Hand:        hand,
		Directions:  directions,
		BagSize:     s.BagSize,
		Statuses:    statuses,
		Highlighted: s.Highlighted,
		ScoredWords: s.ScoredWords,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// Board represents a game board
type Board struct {
	Size  int        `json:"size"`
	Cells [][]string `json:"cells"`
}

// BoardFromModel converts model.Board to response Board
// Empty cells are "", special cells are "?" and the start marker is "@"
func BoardFromModel(b *model.Board) Board {
	cells := make([][]string, b.Size)
	for y := 0; y < b.Size; y++ {
		cells[y] = make([]string, b.Size)
		for x := 0; x < b.Size; x++ {
			cell := b.Cells[y][x]
			switch cell.Kind {
			case model.CellEmpty:
				cells[y][x] = ""
			case model.CellSpecial:
				cells[y][x] = "?"
			default:
				cells[y][x] = string(cell.Letter)
			}
		}
	}
	return Board{Size: b.Size, Cells: cells}
}

// Placement is one attempt to put a letter on the board
type Placement struct {
	Position model.Position `json:"position"`
	Letter   string         `json:"letter"`
	Placed   bool           `json:"placed"`
	Mirrored bool           `json:"mirrored"`
	Granted  string         `json:"granted,omitempty"`
}

// Word is a newly scored word
type Word struct {
	Word      string           `json:"word"`
	Score     int              `json:"score"`
	Positions []model.Position `json:"positions"`
}

// MoveResult describes what one move changed
type MoveResult struct {
	Turn        int           `json:"turn"`
	Played      string        `json:"played"`
	Replacement *string       `json:"replacement"`
	Placements  []Placement   `json:"placements"`
	Words       []Word        `json:"words"`
	Events      []model.Event `json:"events"`
	GameOver    bool          `json:"game_over"`
}

// MoveResultFromModel converts a model.MoveResult
func MoveResultFromModel(r *model.MoveResult) MoveResult {
	placements := make([]Placement, len(r.Placements))
	for i, p := range r.Placements {
		placements[i] = Placement{
			Position: p.Position,
			Letter:   string(p.Letter),
			Placed:   p.Placed,
			Mirrored: p.Mirrored,
		}
		if p.Granted != nil {
			placements[i].Granted = p.Granted.String()
		}
	}

	words := make([]Word, len(r.Words))
	for i, w := range r.Words {
		words[i] = Word{Word: w.Word, Score: w.Score, Positions: w.Positions}
	}

	var replacement *string
	if r.Replacement != nil {
		s := string(*r.Replacement)
		replacement = &s
	}

	return MoveResult{
		Turn:        r.Turn,
		Played:      string(r.Played),
		Replacement: replacement,
		Placements:  placements,
		Words:       words,
		Events:      r.Events,
		GameOver:    r.GameOver,
	}
}

// MoveResultForGame converts a model.MoveResult as the player of s may see
// it. While blind the drawn replacement is hidden like the rest of the hand.
func MoveResultForGame(r *model.MoveResult, s *model.Snapshot) MoveResult {
	result := MoveResultFromModel(r)
	if !s.IsAffected(model.StatusBlind) {
		return result
	}

	if result.Replacement != nil {
		hidden := model.HiddenLetter
		result.Replacement = &hidden
	}
	events := make([]model.Event, len(result.Events))
	for i, ev := range result.Events {
		if drawn, ok := ev.Payload.(model.TileDrawnPayload); ok {
			drawn.Letter = model.HiddenLetter
			ev.Payload = drawn
		}
		events[i] = ev
	}
	result.Events = events
	return result
}

// MoveResponse is the response for a played move
type MoveResponse struct {
	Result MoveResult `json:"result"`
	Game   Game       `json:"game"`
}

// BotMoveResponse is the response for moves a bot played
type BotMoveResponse struct {
	Strategy string       `json:"strategy"`
	Moves    []MoveResult `json:"moves"`
	Game     Game         `json:"game"`
}

// Health is the response for the health check
type Health struct {
	Status      string `json:"status"`
	ActiveGames int    `json:"active_games"`
	Dictionary  bool   `json:"dictionary_loaded"`
}
