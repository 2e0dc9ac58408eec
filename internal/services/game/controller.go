package game

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/jumpbble/internal/dependencies/clock"
	"github.com/mcoot/jumpbble/internal/dependencies/random"
	"github.com/mcoot/jumpbble/internal/model"
	"github.com/mcoot/jumpbble/internal/services/scoring"
)

// MaxGridSize bounds the board side accepted for new games
const MaxGridSize = 64

// NewGameOptions customizes a single game. Zero values use the controller
// defaults.
type NewGameOptions struct {
	Seed     *uint64 // Deterministic board and bag when set
	GridSize int
}

// session is one in-memory game. mu serializes moves so the engine only ever
// sees one caller.
type session struct {
	mu        sync.Mutex
	id        model.GameID
	engine    *Engine
	createdAt time.Time
	updatedAt time.Time
}

func (s *session) snapshot() *model.Snapshot {
	snap := s.engine.Snapshot()
	snap.ID = s.id
	snap.CreatedAt = s.createdAt
	snap.UpdatedAt = s.updatedAt
	return snap
}

// Controller manages the running games. Games are never persisted; they live
// until abandoned or the process exits.
type Controller struct {
	defaults   EngineConfig
	dictionary scoring.WordValidator
	clock      clock.Clock
	random     random.Random
	logger     *slog.Logger

	mu       sync.RWMutex
	sessions map[model.GameID]*session
}

// NewController creates a new GameController. rnd seeds the games created
// without a seed.
func NewController(
	defaults EngineConfig,
	dictionary scoring.WordValidator,
	clock clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		defaults:   defaults,
		dictionary: dictionary,
		clock:      clock,
		random:     rnd,
		logger:     logger,
		sessions:   make(map[model.GameID]*session),
	}
}

// NewGame starts a game and returns its opening snapshot
func (c *Controller) NewGame(ctx context.Context, opts NewGameOptions) (*model.Snapshot, error) {
	cfg := c.defaults
	if opts.GridSize != 0 {
		if opts.GridSize < 0 || opts.GridSize > MaxGridSize {
			return nil, fmt.Errorf("%w: grid size must be between 1 and %d", model.ErrInvalidConfig, MaxGridSize)
		}
		cfg.GridSize = opts.GridSize
		cfg.Start = nil
	}

	engine, err := NewEngine(cfg, c.gameRandom(opts), c.dictionary, c.logger)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	sess := &session{
		id:        model.GameID(uuid.NewString()),
		engine:    engine,
		createdAt: now,
		updatedAt: now,
	}

	c.mu.Lock()
	c.sessions[sess.id] = sess
	c.mu.Unlock()

	c.logger.Info("game created",
		slog.String("game_id", string(sess.id)),
		slog.Int("grid_size", cfg.GridSize),
		slog.Bool("seeded", opts.Seed != nil),
	)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshot(), nil
}

// gameRandom returns the source owned by one new game. Unseeded games are
// seeded from the controller's source so no two engines share a stream.
func (c *Controller) gameRandom(opts NewGameOptions) random.Random {
	if opts.Seed != nil {
		return random.NewSeeded(*opts.Seed)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return random.NewSeeded(uint64(c.random.Intn(math.MaxInt)))
}

func (c *Controller) session(id model.GameID) (*session, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sess, ok := c.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrGameNotFound, id)
	}
	return sess, nil
}

// GetGame returns the current snapshot of a game
func (c *Controller) GetGame(ctx context.Context, id model.GameID) (*model.Snapshot, error) {
	sess, err := c.session(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshot(), nil
}

// ResolveMove plays one move in a game and returns what happened along with
// the new snapshot
func (c *Controller) ResolveMove(ctx context.Context, id model.GameID, intent model.MoveIntent) (*model.MoveResult, *model.Snapshot, error) {
	sess, err := c.session(id)
	if err != nil {
		return nil, nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	result, err := sess.engine.ResolveMove(ctx, intent)
	if err != nil {
		c.logger.Debug("move rejected",
			slog.String("game_id", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, nil, err
	}
	sess.updatedAt = c.clock.Now()

	if result.GameOver {
		c.logger.Info("game finished",
			slog.String("game_id", string(id)),
			slog.Int("turns", result.Turn),
		)
	}

	return result, sess.snapshot(), nil
}

// Rescan re-runs word scoring on a game without playing a tile
func (c *Controller) Rescan(ctx context.Context, id model.GameID) ([]model.ScoredWord, error) {
	sess, err := c.session(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.engine.Rescan(ctx), nil
}

// AbandonGame discards a game
func (c *Controller) AbandonGame(ctx context.Context, id model.GameID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", model.ErrGameNotFound, id)
	}
	delete(c.sessions, id)

	c.logger.Info("game abandoned",
		slog.String("game_id", string(id)),
	)
	return nil
}

// ExpireIdle abandons games that have not changed for longer than maxIdle and
// returns how many were removed. Games busy with a move are skipped.
func (c *Controller) ExpireIdle(ctx context.Context, maxIdle time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	expired := 0
	for id, sess := range c.sessions {
		if !sess.mu.TryLock() {
			continue
		}
		idle := c.clock.Since(sess.updatedAt)
		sess.mu.Unlock()

		if idle > maxIdle {
			delete(c.sessions, id)
			expired++
			c.logger.Info("game expired",
				slog.String("game_id", string(id)),
				slog.Duration("idle", idle),
			)
		}
	}
	return expired
}

// ActiveGames returns the number of games in memory
func (c *Controller) ActiveGames() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sessions)
}

// Interface for dependency injection
type ControllerInterface interface {
	NewGame(ctx context.Context, opts NewGameOptions) (*model.Snapshot, error)
	GetGame(ctx context.Context, id model.GameID) (*model.Snapshot, error)
	ResolveMove(ctx context.Context, id model.GameID, intent model.MoveIntent) (*model.MoveResult, *model.Snapshot, error)
	Rescan(ctx context.Context, id model.GameID) ([]model.ScoredWord, error)
	AbandonGame(ctx context.Context, id model.GameID) error
	ExpireIdle(ctx context.Context, maxIdle time.Duration) int
	ActiveGames() int
}

var _ ControllerInterface = (*Controller)(nil)
