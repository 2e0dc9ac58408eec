package handler

import (
	"context"
	"net/http"

	"github.com/mcoot/jumpbble/internal/api/apierr"
	"github.com/mcoot/jumpbble/internal/api/response"
	"github.com/mcoot/jumpbble/internal/services/game"
)

// Pinger reports whether a backend is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// DictionaryStatus reports whether the dictionary is ready
type DictionaryStatus interface {
	IsLoaded() bool
}

// HealthHandler handles the health check
type HealthHandler struct {
	gameController game.ControllerInterface
	storage        Pinger
	dictionary     DictionaryStatus
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(gameController game.ControllerInterface, storage Pinger, dictionary DictionaryStatus) *HealthHandler {
	return &HealthHandler{
		gameController: gameController,
		storage:        storage,
		dictionary:     dictionary,
	}
}

// Get handles GET /api/v1/health
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.storage != nil {
		if err := h.storage.Ping(r.Context()); err != nil {
			apierr.WriteError(w, apierr.NewUnavailableError("storage unreachable"))
			return
		}
	}

	response.JSON(w, http.StatusOK, response.Health{
		Status:      "ok",
		ActiveGames: h.gameController.ActiveGames(),
		Dictionary:  h.dictionary != nil && h.dictionary.IsLoaded(),
	})
}
