package bot

import (
	"github.com/mcoot/jumpbble/internal/dependencies/random"
	"github.com/mcoot/jumpbble/internal/model"
)

// RandomStrategy plays a random tile in a random legal way
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// ChooseIntent picks a random hand slot, then a random legal direction or,
// when the tile needs one, a random free cell as target
func (s *RandomStrategy) ChooseIntent(snap *model.Snapshot) model.MoveIntent {
	intent := model.MoveIntent{HandIndex: s.random.Intn(len(snap.Hand))}

	if snap.RequiresTarget(intent.HandIndex) {
		target := s.chooseTarget(snap.Board)
		intent.Target = &target
	} else {
		dirs := snap.LegalDirections()
		intent.Direction = dirs[s.random.Intn(len(dirs))]
	}

	if snap.RequiresSubstitute(intent.HandIndex) {
		intent.Substitute = chooseSubstitute(s.random, snap)
	}

	return intent
}

// chooseTarget picks a random cell that is not occupied, or any cell on a
// full board
func (s *RandomStrategy) chooseTarget(board *model.Board) model.Position {
	var free []model.Position
	for y := 0; y < board.Size; y++ {
		for x := 0; x < board.Size; x++ {
			if board.Cells[y][x].Kind != model.CellOccupied {
				free = append(free, model.Position{X: x, Y: y})
			}
		}
	}
	if len(free) == 0 {
		return model.Position{X: s.random.Intn(board.Size), Y: s.random.Intn(board.Size)}
	}
	return free[s.random.Intn(len(free))]
}

func chooseSubstitute(rnd random.Random, snap *model.Snapshot) rune {
	alphabet := []rune(snap.Alphabet)
	if len(alphabet) == 0 {
		return 0
	}
	return alphabet[rnd.Intn(len(alphabet))]
}
