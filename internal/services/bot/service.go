package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/mcoot/jumpbble/internal/model"
	"github.com/mcoot/jumpbble/internal/services/game"
)

// MaxBotIterations is a safety limit for the PlayToEnd loop
const MaxBotIterations = 1000

// ErrUnknownStrategy is returned for a strategy name that is not registered
var ErrUnknownStrategy = errors.New("unknown bot strategy")

// BotAction records one move a bot made
type BotAction struct {
	Intent model.MoveIntent  `json:"intent"`
	Result *model.MoveResult `json:"result"`
	After  *model.Snapshot   `json:"-"`
}

// Service drives games with a Strategy
type Service struct {
	gameController game.ControllerInterface
	strategies     map[string]Strategy
	logger         *slog.Logger
}

// NewService creates a new bot Service
func NewService(
	gameController game.ControllerInterface,
	strategies map[string]Strategy,
	logger *slog.Logger,
) *Service {
	return &Service{
		gameController: gameController,
		strategies:     strategies,
		logger:         logger.With(slog.String("component", "bot-service")),
	}
}

// Strategies returns the registered strategy names, sorted
func (s *Service) Strategies() []string {
	names := make([]string, 0, len(s.strategies))
	for name := range s.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Service) strategy(name string) (Strategy, error) {
	st, ok := s.strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, name)
	}
	return st, nil
}

// PlayMove asks the strategy for one move and plays it
func (s *Service) PlayMove(ctx context.Context, gameID model.GameID, strategy string) (*BotAction, error) {
	st, err := s.strategy(strategy)
	if err != nil {
		return nil, err
	}

	snap, err := s.gameController.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if snap.State == model.GameStateGameOver {
		return nil, model.ErrGameOver
	}

	intent := st.ChooseIntent(snap)
	result, after, err := s.gameController.ResolveMove(ctx, gameID, intent)
	if err != nil {
		s.logger.Warn("bot move rejected",
			slog.String("game_id", string(gameID)),
			slog.String("strategy", strategy),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	return &BotAction{Intent: intent, Result: result, After: after}, nil
}

// PlayToEnd plays moves until the game is over. onMove, when set, is called
// after every move.
func (s *Service) PlayToEnd(ctx context.Context, gameID model.GameID, strategy string, onMove func(*BotAction)) ([]BotAction, error) {
	var actions []BotAction

	for range MaxBotIterations {
		if err := ctx.Err(); err != nil {
			return actions, err
		}

		action, err := s.PlayMove(ctx, gameID, strategy)
		if err != nil {
			return actions, err
		}
		actions = append(actions, *action)
		if onMove != nil {
			onMove(action)
		}

		if action.Result.GameOver {
			s.logger.Info("bot finished game",
				slog.String("game_id", string(gameID)),
				slog.Int("moves", len(actions)),
				slog.Int("score", action.After.Score),
			)
			return actions, nil
		}
	}

	return actions, fmt.Errorf("bot did not finish game %s within %d moves", gameID, MaxBotIterations)
}
