package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/gorilla/mux"

	"github.com/mcoot/jumpbble/internal/api/apierr"
	"github.com/mcoot/jumpbble/internal/api/request"
	"github.com/mcoot/jumpbble/internal/api/response"
	"github.com/mcoot/jumpbble/internal/model"
	"github.com/mcoot/jumpbble/internal/services/bot"
	"github.com/mcoot/jumpbble/internal/services/game"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	gameController game.ControllerInterface
	botService     *bot.Service
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController game.ControllerInterface, botService *bot.Service) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		botService:     botService,
	}
}

// decode reads a JSON body. An empty body leaves dst untouched.
func decode(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		return apierr.NewInvalidRequestError("Invalid request body")
	}
	return nil
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	snap, err := h.gameController.NewGame(r.Context(), game.NewGameOptions{
		Seed:     req.Seed,
		GridSize: req.GridSize,
	})
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.Created(w, response.GameFromSnapshot(snap))
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.gameController.GetGame(r.Context(), gameID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromSnapshot(snap))
}

// Abandon handles DELETE /api/v1/games/{id}
func (h *GameHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	if err := h.gameController.AbandonGame(r.Context(), gameID(r)); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Move handles POST /api/v1/games/{id}/moves
func (h *GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req request.MoveRequest
	if err := decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	intent, err := intentFromRequest(req)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	result, snap, err := h.gameController.ResolveMove(r.Context(), gameID(r), intent)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MoveResponse{
		Result: response.MoveResultForGame(result, snap),
		Game:   response.GameFromSnapshot(snap),
	})
}

func intentFromRequest(req request.MoveRequest) (model.MoveIntent, error) {
	if req.HandIndex == nil {
		return model.MoveIntent{}, apierr.NewInvalidRequestError("hand_index is required")
	}
	intent := model.MoveIntent{HandIndex: *req.HandIndex}

	if req.Direction != "" {
		dir, err := model.ParseDirection(req.Direction)
		if err != nil {
			return model.MoveIntent{}, err
		}
		intent.Direction = dir
	}

	if req.Target != nil {
		intent.Target = &model.Position{X: req.Target.X, Y: req.Target.Y}
	}

	if req.Substitute != "" {
		if utf8.RuneCountInString(req.Substitute) != 1 {
			return model.MoveIntent{}, apierr.NewInvalidRequestError("substitute must be a single letter")
		}
		intent.Substitute, _ = utf8.DecodeRuneInString(req.Substitute)
	}

	return intent, nil
}

// BotMove handles POST /api/v1/games/{id}/bot-moves
func (h *GameHandler) BotMove(w http.ResponseWriter, r *http.Request) {
	req := request.BotMoveRequest{Strategy: bot.StrategyRandom}
	if err := decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}
	if req.Strategy == "" {
		req.Strategy = bot.StrategyRandom
	}

	var actions []bot.BotAction
	if req.ToEnd {
		played, err := h.botService.PlayToEnd(r.Context(), gameID(r), req.Strategy, nil)
		if err != nil {
			apierr.WriteError(w, err)
			return
		}
		actions = played
	} else {
		action, err := h.botService.PlayMove(r.Context(), gameID(r), req.Strategy)
		if err != nil {
			apierr.WriteError(w, err)
			return
		}
		actions = []bot.BotAction{*action}
	}

	moves := make([]response.MoveResult, len(actions))
	for i, action := range actions {
		moves[i] = response.MoveResultForGame(action.Result, action.After)
	}

	response.JSON(w, http.StatusOK, response.BotMoveResponse{
		Strategy: req.Strategy,
		Moves:    moves,
		Game:     response.GameFromSnapshot(actions[len(actions)-1].After),
	})
}
