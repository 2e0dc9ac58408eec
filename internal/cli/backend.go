package cli

import (
	"context"

	"github.com/mcoot/jumpbble/internal/api/response"
	"github.com/mcoot/jumpbble/internal/factory"
	"github.com/mcoot/jumpbble/internal/model"
	"github.com/mcoot/jumpbble/internal/services/game"
)

// backend runs games either in-process or on a server. Both speak the API
// response types so rendering does not care which one is in use.
type backend interface {
	NewGame(ctx context.Context, opts game.NewGameOptions) (*response.Game, error)
	GetGame(ctx context.Context, id string) (*response.Game, error)
	Move(ctx context.Context, id string, intent model.MoveIntent) (*response.MoveResponse, error)
	Abandon(ctx context.Context, id string) error
	Close() error
}

// localBackend plays games against an in-process controller
type localBackend struct {
	app *factory.App
}

var _ backend = (*localBackend)(nil)

func (b *localBackend) NewGame(ctx context.Context, opts game.NewGameOptions) (*response.Game, error) {
	snap, err := b.app.GameController.NewGame(ctx, opts)
	if err != nil {
		return nil, err
	}
	g := response.GameFromSnapshot(snap)
	return &g, nil
}

func (b *localBackend) GetGame(ctx context.Context, id string) (*response.Game, error) {
	snap, err := b.app.GameController.GetGame(ctx, model.GameID(id))
	if err != nil {
		return nil, err
	}
	g := response.GameFromSnapshot(snap)
	return &g, nil
}

func (b *localBackend) Move(ctx context.Context, id string, intent model.MoveIntent) (*response.MoveResponse, error) {
	result, snap, err := b.app.GameController.ResolveMove(ctx, model.GameID(id), intent)
	if err != nil {
		return nil, err
	}
	return &response.MoveResponse{
		Result: response.MoveResultForGame(result, snap),
		Game:   response.GameFromSnapshot(snap),
	}, nil
}

func (b *localBackend) Abandon(ctx context.Context, id string) error {
	return b.app.GameController.AbandonGame(ctx, model.GameID(id))
}

func (b *localBackend) Close() error {
	return b.app.Close()
}
