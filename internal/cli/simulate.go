package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/jumpbble/internal/api/response"
	"github.com/mcoot/jumpbble/internal/services/bot"
	"github.com/mcoot/jumpbble/internal/services/game"
)

// SimulationSummary is the outcome of one bot-played game
type SimulationSummary struct {
	GameID   string                `json:"game_id"`
	Strategy string                `json:"strategy"`
	Moves    int                   `json:"moves"`
	Score    int                   `json:"score"`
	Level    int                   `json:"level"`
	Words    []string              `json:"words"`
	Log      []response.MoveResult `json:"log,omitempty"`
}

func newSimulateCmd(cfg *Config) *cobra.Command {
	var (
		strategy  string
		games     int
		showMoves bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Let a bot play complete games",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			out := newOutput(cmd, cfg)
			for range games {
				summary, err := simulateGame(cmd, app.GameController, app.BotService, strategy, cfg, showMoves, out)
				if err != nil {
					return err
				}
				out.Print(summary)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", bot.StrategyRandom, "Bot strategy: random, greedy")
	cmd.Flags().IntVar(&games, "games", 1, "Number of games to play")
	cmd.Flags().BoolVar(&showMoves, "show-moves", false, "Print every move")

	return cmd
}

func simulateGame(
	cmd *cobra.Command,
	controller game.ControllerInterface,
	bots *bot.Service,
	strategy string,
	cfg *Config,
	showMoves bool,
	out *Output,
) (*SimulationSummary, error) {
	ctx := cmd.Context()
	snap, err := controller.NewGame(ctx, game.NewGameOptions{GridSize: cfg.Size})
	if err != nil {
		return nil, err
	}

	summary := &SimulationSummary{GameID: string(snap.ID), Strategy: strategy}
	actions, err := bots.PlayToEnd(ctx, snap.ID, strategy, func(action *bot.BotAction) {
		if !showMoves {
			return
		}
		move := response.MoveResultFromModel(action.Result)
		if out.JSON() {
			summary.Log = append(summary.Log, move)
			return
		}
		out.printMove(&move)
	})
	if err != nil {
		return nil, err
	}

	final := actions[len(actions)-1].After
	summary.Moves = len(actions)
	summary.Score = final.Score
	summary.Level = final.Level
	summary.Words = final.ScoredWords

	if showMoves && !out.JSON() {
		g := response.GameFromSnapshot(final)
		out.Print(&g)
	}

	return summary, nil
}
