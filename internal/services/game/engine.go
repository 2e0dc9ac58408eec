package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode"

	"github.com/mcoot/jumpbble/internal/dependencies/random"
	"github.com/mcoot/jumpbble/internal/model"
	"github.com/mcoot/jumpbble/internal/services/bag"
	"github.com/mcoot/jumpbble/internal/services/board"
	"github.com/mcoot/jumpbble/internal/services/scanner"
	"github.com/mcoot/jumpbble/internal/services/scoring"
)

// scoreRewardTurns is the jump bonus granted for every newly scored word
const scoreRewardTurns = 1

// EngineConfig holds the tables and options one game is built from
type EngineConfig struct {
	GridSize     int
	Start        *model.Position // Defaults to the board centre
	Letters      []model.LetterEntry
	Distribution model.EffectDistribution
	DecayTurns   int
}

// Engine owns the state of one game and resolves moves against it. It is not
// safe for concurrent use.
type Engine struct {
	board   *model.Board
	player  *model.Player
	bag     *bag.Bag
	hand    model.Hand
	letters *model.LetterTable

	boardService   board.ServiceInterface
	scoringService scoring.ServiceInterface
	logger         *slog.Logger

	state        model.GameState
	turn         int
	initialTiles int
	tilesPlayed  int

	scored      map[string]struct{}
	scoredOrder []string
	highlighted map[model.Position]struct{}
	highlights  []model.Position
}

// NewEngine builds the board, shuffles the bag and deals the opening hand.
// The random source is consumed for special cell selection first and the
// bag shuffle second.
func NewEngine(cfg EngineConfig, rnd random.Random, dictionary scoring.WordValidator, logger *slog.Logger) (*Engine, error) {
	letters, err := model.NewLetterTable(cfg.Letters, cfg.GridSize)
	if err != nil {
		return nil, err
	}
	if err := cfg.Distribution.Validate(); err != nil {
		return nil, err
	}
	if cfg.DecayTurns < 0 {
		return nil, fmt.Errorf("%w: decay turns must not be negative", model.ErrInvalidConfig)
	}

	start := model.Position{X: cfg.GridSize / 2, Y: cfg.GridSize / 2}
	if cfg.Start != nil {
		start = *cfg.Start
	}

	boardService := board.New(rnd, cfg.Distribution, cfg.DecayTurns, logger)
	b, err := boardService.NewBoard(cfg.GridSize, start)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		board:          b,
		player:         model.NewPlayer(start),
		bag:            bag.New(letters, rnd),
		letters:        letters,
		boardService:   boardService,
		scoringService: scoring.New(dictionary, letters, logger),
		logger:         logger,
		state:          model.GameStatePlaying,
		scored:         make(map[string]struct{}),
		highlighted:    make(map[model.Position]struct{}),
	}
	e.initialTiles = e.bag.Len()

	e.hand = make(model.Hand, 0, model.HandSize)
	for len(e.hand) < model.HandSize {
		letter, err := e.bag.DrawNext()
		if err != nil {
			break
		}
		e.hand = append(e.hand, letter)
	}
	if len(e.hand) == 0 {
		e.state = model.GameStateGameOver
	}

	return e, nil
}

// RequiresTarget reports whether the tile at handIndex must be played with an
// absolute target
func (e *Engine) RequiresTarget(handIndex int) (bool, error) {
	if handIndex < 0 || handIndex >= len(e.hand) {
		return false, fmt.Errorf("%w: %d", model.ErrInvalidHandIndex, handIndex)
	}
	return e.requiresTarget(e.hand[handIndex]), nil
}

func (e *Engine) requiresTarget(letter rune) bool {
	status := &e.player.Status
	return status.IsAffected(model.StatusJump) ||
		status.IsAffected(model.StatusWildcard) ||
		e.letters.Distance(letter) == 0
}

// plannedMove is a validated intent, ready to apply
type plannedMove struct {
	letter rune // Tile as held in the hand
	placed rune // Letter written to the board
	dest   model.Position
	delta  model.Delta
}

// plan validates the intent against the current state without mutating it
func (e *Engine) plan(intent model.MoveIntent) (plannedMove, error) {
	if e.state == model.GameStateGameOver {
		return plannedMove{}, model.ErrGameOver
	}
	if intent.HandIndex < 0 || intent.HandIndex >= len(e.hand) {
		return plannedMove{}, fmt.Errorf("%w: %d (hand has %d tiles)", model.ErrInvalidHandIndex, intent.HandIndex, len(e.hand))
	}

	mv := plannedMove{letter: e.hand[intent.HandIndex]}
	pos := e.player.Position

	if e.requiresTarget(mv.letter) {
		if intent.Target == nil {
			return plannedMove{}, fmt.Errorf("%w: an absolute target is required", model.ErrIllegalDirection)
		}
		if intent.Direction != model.DirNone {
			return plannedMove{}, fmt.Errorf("%w: give a target or a direction, not both", model.ErrIllegalDirection)
		}
		if !e.board.IsValidPosition(*intent.Target) {
			return plannedMove{}, fmt.Errorf("%w: %d,%d", model.ErrInvalidPosition, intent.Target.X, intent.Target.Y)
		}
		mv.dest = *intent.Target
		mv.delta = model.Delta{DX: mv.dest.X - pos.X, DY: mv.dest.Y - pos.Y}
	} else {
		if intent.Target != nil {
			return plannedMove{}, fmt.Errorf("%w: %q moves by direction", model.ErrIllegalDirection, mv.letter)
		}
		unit, ok := intent.Direction.Unit()
		if !ok {
			return plannedMove{}, fmt.Errorf("%w: %q", model.ErrIllegalDirection, intent.Direction)
		}
		if e.player.Status.IsAffected(model.StatusDiagonal) && !intent.Direction.IsDiagonal() {
			return plannedMove{}, fmt.Errorf("%w: only diagonal moves are allowed", model.ErrIllegalDirection)
		}
		mv.delta = unit.Scale(e.letters.Distance(mv.letter))
		mv.dest = e.board.ToroidalOffset(pos, mv.delta)
	}

	placed, err := e.placedLetter(mv.letter, intent.Substitute)
	if err != nil {
		return plannedMove{}, err
	}
	mv.placed = placed

	return mv, nil
}

// placedLetter applies the wildcard rules: the blank tile must be played as a
// substitute, wildcard status allows one, otherwise none may be given
func (e *Engine) placedLetter(letter, substitute rune) (rune, error) {
	isBlank := letter == model.WildcardLetter
	if substitute == 0 {
		if isBlank {
			return 0, fmt.Errorf("%w: the blank tile needs a substitute letter", model.ErrInvalidLetter)
		}
		return letter, nil
	}

	if !isBlank && !e.player.Status.IsAffected(model.StatusWildcard) {
		return 0, fmt.Errorf("%w: substitute %q given for %q without wildcard", model.ErrInvalidLetter, substitute, letter)
	}
	substitute = unicode.ToUpper(substitute)
	if substitute == model.WildcardLetter || !e.letters.Has(substitute) {
		return 0, fmt.Errorf("%w: %q is not in the alphabet", model.ErrInvalidLetter, substitute)
	}
	return substitute, nil
}

// ResolveMove plays one tile. An intent that fails validation returns an
// error and leaves the game untouched.
func (e *Engine) ResolveMove(ctx context.Context, intent model.MoveIntent) (*model.MoveResult, error) {
	mv, err := e.plan(intent)
	if err != nil {
		return nil, err
	}

	e.turn++
	result := &model.MoveResult{Turn: e.turn, Played: mv.letter}
	status := &e.player.Status
	origin := e.player.Position

	// Hand and replacement draw
	_, e.hand = e.hand.Remove(intent.HandIndex)
	e.tilesPlayed++
	ordered := status.IsAffected(model.StatusOrdered)
	var replacement rune
	if ordered {
		replacement, err = e.bag.DrawOrderedAfter(mv.letter, e.letters.Alphabet())
	} else {
		replacement, err = e.bag.DrawNext()
	}
	switch {
	case err == nil:
		e.hand = e.hand.Insert(intent.HandIndex, replacement)
		result.Replacement = &replacement
		result.Events = append(result.Events, model.Event{
			Type:    model.EventTileDrawn,
			Payload: model.TileDrawnPayload{Letter: string(replacement), Ordered: ordered},
		})
	case errors.Is(err, model.ErrEmptyBag):
		result.Events = append(result.Events, model.Event{Type: model.EventBagEmpty})
	default:
		return nil, err
	}

	// Placements: the mirror copy goes first and leaves the player in place
	if status.IsAffected(model.StatusMirror) {
		mirrorDest := e.board.ToroidalOffset(origin, mv.delta.Neg())
		if err := e.place(result, mirrorDest, mv.placed, board.PlaceOptions{KeepPosition: true, Mirrored: true}); err != nil {
			return nil, err
		}
	}
	if err := e.place(result, mv.dest, mv.placed, board.PlaceOptions{}); err != nil {
		return nil, err
	}

	status.DecayAll()

	result.Words = e.scoreBoard(ctx, result)

	if len(e.hand) == 0 {
		e.state = model.GameStateGameOver
		result.GameOver = true
		result.Events = append(result.Events, model.Event{
			Type:    model.EventGameOver,
			Payload: model.GameOverPayload{FinalScore: e.player.Score, Level: e.player.Level()},
		})
		e.logger.Info("game over",
			slog.Int("turns", e.turn),
			slog.Int("score", e.player.Score),
		)
	}

	e.logger.Debug("move resolved",
		slog.Int("turn", e.turn),
		slog.String("letter", string(mv.letter)),
		slog.Int("x", e.player.Position.X),
		slog.Int("y", e.player.Position.Y),
		slog.Int("words", len(result.Words)),
	)

	return result, nil
}

func (e *Engine) place(result *model.MoveResult, dest model.Position, letter rune, opts board.PlaceOptions) error {
	placement, err := e.boardService.PlacePiece(e.board, e.player, dest, letter, opts)
	if err != nil {
		return err
	}
	result.Placements = append(result.Placements, placement)

	eventType := model.EventTilePlaced
	if !placement.Placed {
		eventType = model.EventPlacementDropped
	}
	result.Events = append(result.Events, model.Event{
		Type: eventType,
		Payload: model.TilePlacedPayload{
			Position: placement.Position,
			Letter:   string(placement.Letter),
			Mirrored: placement.Mirrored,
		},
	})
	if placement.Granted != nil {
		result.Events = append(result.Events, model.Event{
			Type: model.EventEffectGranted,
			Payload: model.EffectGrantedPayload{
				Effect: *placement.Granted,
				Turns:  e.player.Status.Turns(*placement.Granted),
			},
		})
	}
	return nil
}

// Rescan scores any valid words on the board that have not been scored yet.
// It changes nothing if the board has not changed since the last scan.
func (e *Engine) Rescan(ctx context.Context) []model.ScoredWord {
	return e.scoreBoard(ctx, nil)
}

func (e *Engine) scoreBoard(ctx context.Context, result *model.MoveResult) []model.ScoredWord {
	words := e.scoringService.ScoreNewWords(ctx, scanner.Scan(e.board), e.scored)

	for _, w := range words {
		e.player.AddScore(w.Score)
		// Grant only fails for unknown effects
		_ = e.player.Status.Grant(model.StatusJump, scoreRewardTurns)
		e.scoredOrder = append(e.scoredOrder, w.Word)
		for _, pos := range w.Positions {
			if _, ok := e.highlighted[pos]; !ok {
				e.highlighted[pos] = struct{}{}
				e.highlights = append(e.highlights, pos)
			}
		}

		if result != nil {
			result.Events = append(result.Events, model.Event{
				Type:    model.EventWordScored,
				Payload: model.WordScoredPayload{Word: w.Word, Score: w.Score},
			})
		}
		e.logger.Info("word scored",
			slog.String("word", w.Word),
			slog.Int("score", w.Score),
			slog.Int("total", e.player.Score),
		)
	}

	return words
}

// State returns the current phase of the game
func (e *Engine) State() model.GameState {
	return e.state
}

// Snapshot captures the observable state. The board and hand are copies.
func (e *Engine) Snapshot() *model.Snapshot {
	hand := make(model.Hand, len(e.hand))
	copy(hand, e.hand)

	handLetters := make([]string, len(hand))
	distances := make([]int, len(hand))
	for i, letter := range hand {
		handLetters[i] = string(letter)
		distances[i] = e.letters.Distance(letter)
	}

	alphabet := make([]rune, 0, len(e.letters.Alphabet()))
	for _, letter := range e.letters.Alphabet() {
		if letter != model.WildcardLetter {
			alphabet = append(alphabet, letter)
		}
	}

	statuses := e.player.Status.Active()
	if statuses == nil {
		statuses = []model.StatusEntry{}
	}

	return &model.Snapshot{
		State:       e.state,
		Turn:        e.turn,
		Board:       e.board.Clone(),
		Rows:        e.board.Rows(),
		Position:    e.player.Position,
		Score:       e.player.Score,
		Level:       e.player.Level(),
		Hand:        hand,
		HandLetters: handLetters,
		Distances:   distances,
		Alphabet:    string(alphabet),
		BagSize:     e.bag.Len(),
		Statuses:    statuses,
		Highlighted: append([]model.Position{}, e.highlights...),
		ScoredWords: append([]string{}, e.scoredOrder...),
	}
}
