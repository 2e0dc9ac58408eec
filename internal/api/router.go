package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/jumpbble/internal/api/apierr"
	"github.com/mcoot/jumpbble/internal/api/handler"
	"github.com/mcoot/jumpbble/internal/middleware"
	"github.com/mcoot/jumpbble/internal/services/bot"
	"github.com/mcoot/jumpbble/internal/services/dictionary"
	"github.com/mcoot/jumpbble/internal/services/game"
	"github.com/mcoot/jumpbble/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	GameController    game.ControllerInterface
	BotService        *bot.Service
	DictionaryService *dictionary.Service
	Storage           storage.Storage
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	var dict handler.DictionaryStatus
	if cfg.DictionaryService != nil {
		dict = cfg.DictionaryService
	}
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.BotService)
	healthHandler := handler.NewHealthHandler(cfg.GameController, cfg.Storage, dict)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.RequestID)
	api.Use(middleware.Recovery(cfg.Logger, writePanic))
	api.Use(middleware.Logging(cfg.Logger))

	api.HandleFunc("/health", healthHandler.Get).Methods(http.MethodGet)

	games := api.PathPrefix("/games").Subrouter()
	games.HandleFunc("", gameHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("/{id}", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/{id}", gameHandler.Abandon).Methods(http.MethodDelete)
	games.HandleFunc("/{id}/moves", gameHandler.Move).Methods(http.MethodPost)
	games.HandleFunc("/{id}/bot-moves", gameHandler.BotMove).Methods(http.MethodPost)

	return r
}

func writePanic(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
