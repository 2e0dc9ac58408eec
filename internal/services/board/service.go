package board

import (
	"fmt"
	"log/slog"

	"github.com/mcoot/jumpbble/internal/dependencies/random"
	"github.com/mcoot/jumpbble/internal/model"
)

// PlaceOptions modifies how PlacePiece treats the player
type PlaceOptions struct {
	// KeepPosition leaves the player where they are (mirrored placements)
	KeepPosition bool
	// Mirrored marks the placement as the mirror copy in the result
	Mirrored bool
}

// Service provides board operations
type Service struct {
	random       random.Random
	distribution model.EffectDistribution
	decayTurns   int
	logger       *slog.Logger
}

// New creates a new BoardService. Effects rolled on special tiles are drawn
// from distribution and granted for decayTurns turns.
func New(rnd random.Random, distribution model.EffectDistribution, decayTurns int, logger *slog.Logger) *Service {
	return &Service{
		random:       rnd,
		distribution: distribution,
		decayTurns:   decayTurns,
		logger:       logger,
	}
}

// NewBoard creates a board with the player marker on start and
// floor(size²/10) special cells chosen uniformly among the other cells
func (s *Service) NewBoard(size int, start model.Position) (*model.Board, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: board size must be positive, got %d", model.ErrInvalidConfig, size)
	}
	if start.X < 0 || start.X >= size || start.Y < 0 || start.Y >= size {
		return nil, fmt.Errorf("%w: start %v outside %dx%d board", model.ErrInvalidPosition, start, size, size)
	}
	board := model.NewBoard(size, start)

	candidates := make([]model.Position, 0, size*size-1)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			pos := model.Position{X: x, Y: y}
			if pos != start {
				candidates = append(candidates, pos)
			}
		}
	}

	// Partial Fisher-Yates: the first n candidates become a uniform sample
	n := min(model.SpecialTileCount(size), len(candidates))
	for i := 0; i < n; i++ {
		j := i + s.random.Intn(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
		board.Set(candidates[i], model.SpecialCell())
	}

	return board, nil
}

// RollEffect picks an effect with probability proportional to its weight
func (s *Service) RollEffect(distribution model.EffectDistribution) (model.StatusEffect, error) {
	total := distribution.Total()
	if total <= 0 {
		return 0, fmt.Errorf("%w: special tile distribution has no positive weight", model.ErrInvalidConfig)
	}

	r := s.random.Float64() * total
	var last model.StatusEffect
	for _, w := range distribution {
		if w.Weight <= 0 {
			continue
		}
		if r < w.Weight {
			return w.Effect, nil
		}
		r -= w.Weight
		last = w.Effect
	}
	// Only reachable through floating point rounding on the last bucket
	return last, nil
}

// PlacePiece puts letter on dest. Special cells always accept the letter and
// grant a rolled effect; empty cells accept it; occupied cells only accept it
// while the player is under erase, otherwise the tile is dropped and the cell
// is left as it was.
func (s *Service) PlacePiece(board *model.Board, player *model.Player, dest model.Position, letter rune, opts PlaceOptions) (model.Placement, error) {
	dest = board.Wrap(dest)
	placement := model.Placement{
		Position: dest,
		Letter:   letter,
		Mirrored: opts.Mirrored,
	}

	cell := board.Get(dest)
	switch {
	case cell.Kind == model.CellSpecial:
		effect, err := s.RollEffect(s.distribution)
		if err != nil {
			return placement, err
		}
		if err := player.Status.Grant(effect, s.decayTurns); err != nil {
			return placement, err
		}
		placement.Granted = &effect
		board.Set(dest, model.OccupiedCell(letter))
		placement.Placed = true

		s.logger.Debug("special tile effect granted",
			slog.String("effect", effect.String()),
			slog.Int("x", dest.X),
			slog.Int("y", dest.Y),
		)

	case cell.Kind == model.CellEmpty || player.Status.IsAffected(model.StatusErase):
		board.Set(dest, model.OccupiedCell(letter))
		placement.Placed = true

	default:
		s.logger.Debug("placement dropped on occupied cell",
			slog.String("letter", string(letter)),
			slog.Int("x", dest.X),
			slog.Int("y", dest.Y),
		)
	}

	if !opts.KeepPosition {
		player.Position = dest
	}

	return placement, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	NewBoard(size int, start model.Position) (*model.Board, error)
	RollEffect(distribution model.EffectDistribution) (model.StatusEffect, error)
	PlacePiece(board *model.Board, player *model.Player, dest model.Position, letter rune, opts PlaceOptions) (model.Placement, error)
}

var _ ServiceInterface = (*Service)(nil)
