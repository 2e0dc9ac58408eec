package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/jumpbble/internal/config"
	"github.com/mcoot/jumpbble/internal/dependencies/clock"
	"github.com/mcoot/jumpbble/internal/dependencies/random"
	"github.com/mcoot/jumpbble/internal/model"
	"github.com/mcoot/jumpbble/internal/services/bot"
	"github.com/mcoot/jumpbble/internal/services/dictionary"
	"github.com/mcoot/jumpbble/internal/services/game"
	"github.com/mcoot/jumpbble/internal/storage"
	"github.com/mcoot/jumpbble/internal/storage/memory"
	redisstorage "github.com/mcoot/jumpbble/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Game tables in effect
	Tables *config.Tables

	// Services
	DictionaryService *dictionary.Service
	GameController    *game.Controller
	BotService        *bot.Service

	Logger *slog.Logger
}

// Config holds configuration for the application factory
type Config struct {
	// ConfigDir is the directory holding letters.yaml and special_tiles.yaml
	// If empty, ./config and then the embedded defaults are used
	ConfigDir string
	// DictionaryPath is the path to the dictionary file (optional)
	// If empty, the dictionary is read from storage when present
	DictionaryPath string
	// GridSize overrides the configured board size when non-zero
	GridSize int
	// Seed makes every game and bot deterministic when set
	Seed *uint64
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	tables, err := config.Load(cfg.ConfigDir)
	if err != nil {
		return nil, err
	}
	if cfg.GridSize != 0 {
		tables.Settings.GridSize = cfg.GridSize
		if err := tables.Validate(); err != nil {
			return nil, err
		}
	}

	store, err := NewStorage(cfg.StorageType, cfg.RedisConfig)
	if err != nil {
		return nil, err
	}

	// Create external dependencies
	clk := clock.New()
	var rnd random.Random = random.New()
	if cfg.Seed != nil {
		rnd = random.NewSeeded(*cfg.Seed)
	}

	app := newWithDependencies(store, tables, clk, rnd, logger)

	switch {
	case cfg.DictionaryPath != "":
		err = app.DictionaryService.LoadFromFile(ctx, cfg.DictionaryPath)
	default:
		err = app.DictionaryService.LoadFromStorage(ctx)
		if errors.Is(err, model.ErrDictionaryNotLoaded) {
			// Fine for commands that import the dictionary themselves
			logger.Warn("no dictionary loaded; every word will be rejected")
			err = nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}

	logger.Debug("application wired",
		slog.String("tables", tables.Source),
		slog.Int("grid_size", tables.Settings.GridSize),
	)

	return app, nil
}

// NewStorage creates the storage backend named by storageType
func NewStorage(storageType string, redisCfg *redisstorage.Config) (storage.Storage, error) {
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if redisCfg == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*redisCfg)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}
}

// EngineConfig converts the loaded tables into the defaults for new games
func EngineConfig(tables *config.Tables) game.EngineConfig {
	return game.EngineConfig{
		GridSize:     tables.Settings.GridSize,
		Letters:      tables.Letters,
		Distribution: tables.Distribution,
		DecayTurns:   tables.Settings.DecayTurns,
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, tables *config.Tables, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	dictService := dictionary.New(store, logger)
	gameController := game.NewController(EngineConfig(tables), dictService, clk, rnd, logger)
	botService := bot.NewService(gameController, map[string]bot.Strategy{
		bot.StrategyRandom: bot.NewRandomStrategy(rnd),
		bot.StrategyGreedy: bot.NewGreedyStrategy(rnd),
	}, logger)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		Tables:            tables,
		DictionaryService: dictService,
		GameController:    gameController,
		BotService:        botService,
		Logger:            logger,
	}
}

// Close releases storage connections
func (a *App) Close() error {
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
