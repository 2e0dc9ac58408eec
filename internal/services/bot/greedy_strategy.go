package bot

import (
	"github.com/mcoot/jumpbble/internal/dependencies/random"
	"github.com/mcoot/jumpbble/internal/model"
)

// GreedyStrategy prefers moves that land on special cells, then on empty
// cells, so tiles are rarely wasted on occupied squares
type GreedyStrategy struct {
	random random.Random
}

// NewGreedyStrategy creates a new GreedyStrategy
func NewGreedyStrategy(rnd random.Random) *GreedyStrategy {
	return &GreedyStrategy{random: rnd}
}

// candidate is a move with the cell it would land on
type candidate struct {
	intent model.MoveIntent
	rank   int
}

func rankCell(cell model.Cell) int {
	switch cell.Kind {
	case model.CellSpecial:
		return 2
	case model.CellEmpty:
		return 1
	default:
		return 0
	}
}

// ChooseIntent ranks every directional move and the best target for each
// tile, then picks randomly among the best ranked
func (s *GreedyStrategy) ChooseIntent(snap *model.Snapshot) model.MoveIntent {
	board := snap.Board
	var best []candidate
	bestRank := -1

	consider := func(c candidate) {
		switch {
		case c.rank > bestRank:
			bestRank = c.rank
			best = []candidate{c}
		case c.rank == bestRank:
			best = append(best, c)
		}
	}

	for i := range snap.Hand {
		if snap.RequiresTarget(i) {
			target, rank := bestTarget(board)
			consider(candidate{intent: model.MoveIntent{HandIndex: i, Target: &target}, rank: rank})
			continue
		}
		for _, dir := range snap.LegalDirections() {
			unit, _ := dir.Unit()
			dest := board.ToroidalOffset(snap.Position, unit.Scale(snap.Distances[i]))
			consider(candidate{
				intent: model.MoveIntent{HandIndex: i, Direction: dir},
				rank:   rankCell(board.Get(dest)),
			})
		}
	}

	intent := best[s.random.Intn(len(best))].intent
	if snap.RequiresSubstitute(intent.HandIndex) {
		intent.Substitute = chooseSubstitute(s.random, snap)
	}
	return intent
}

// bestTarget returns the first special cell in row-major order, else the
// first empty cell, else the origin
func bestTarget(board *model.Board) (model.Position, int) {
	var firstEmpty *model.Position
	for y := 0; y < board.Size; y++ {
		for x := 0; x < board.Size; x++ {
			pos := model.Position{X: x, Y: y}
			switch board.Cells[y][x].Kind {
			case model.CellSpecial:
				return pos, 2
			case model.CellEmpty:
				if firstEmpty == nil {
					firstEmpty = &pos
				}
			}
		}
	}
	if firstEmpty != nil {
		return *firstEmpty, 1
	}
	return model.Position{}, 0
}
