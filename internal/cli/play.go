package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/mcoot/jumpbble/internal/model"
	"github.com/mcoot/jumpbble/internal/services/game"
)

const playHelp = `Moves:
  <slot> <direction> [letter]   play a hand tile in a direction (u d l r ul ur dl dr)
  <slot> <x> <y> [letter]       play a hand tile onto an absolute cell
The optional letter is what a blank (*) or a wildcard tile is played as.
Slots are numbered from 1. Tiles shown with (x,y) need an absolute cell.

Commands: board, help, quit`

var directionAliases = map[string]model.Direction{
	"u":  model.DirUp,
	"d":  model.DirDown,
	"l":  model.DirLeft,
	"r":  model.DirRight,
	"ul": model.DirUpLeft,
	"ur": model.DirUpRight,
	"dl": model.DirDownLeft,
	"dr": model.DirDownRight,
}

func newPlayCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game interactively",
		Long:  "Play a game one line at a time.\n\n" + playHelp,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBackend(cmd, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = b.Close() }()

			opts := game.NewGameOptions{Seed: cfg.SeedPtr(), GridSize: cfg.Size}
			return runPlay(cmd.Context(), b, cmd.InOrStdin(), newOutput(cmd, cfg), opts)
		},
	}

	cmd.Flags().StringVar(&cfg.Server, "server", cfg.Server, "Play on a running server instead of in-process (env: JUMPBBLE_SERVER)")

	return cmd
}

func openBackend(cmd *cobra.Command, cfg *Config) (backend, error) {
	if cfg.Server != "" {
		return &remoteBackend{client: NewClient(cfg.Server)}, nil
	}
	app, err := newApp(cmd, cfg)
	if err != nil {
		return nil, err
	}
	return &localBackend{app: app}, nil
}

// runPlay reads moves from in until the game ends, the input ends or the
// player quits. Rejected moves are reported and the prompt repeats.
func runPlay(ctx context.Context, b backend, in io.Reader, out *Output, opts game.NewGameOptions) error {
	g, err := b.NewGame(ctx, opts)
	if err != nil {
		return err
	}
	out.Print(g)
	if !out.JSON() {
		out.PrintMessage("Type help for the move format.")
	}

	scanner := bufio.NewScanner(in)
	for g.State != string(model.GameStateGameOver) {
		if !out.JSON() {
			fmt.Fprint(out.out, "> ")
		}
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "help", "?":
			out.PrintMessage(playHelp)
			continue
		case "board", "b":
			if g, err = b.GetGame(ctx, g.ID); err != nil {
				return err
			}
			out.Print(g)
			continue
		case "quit", "q", "exit":
			out.PrintMessage(fmt.Sprintf("Quit with score %d", g.Score))
			return b.Abandon(ctx, g.ID)
		}

		intent, err := ParseMove(line)
		if err != nil {
			out.PrintError(err)
			continue
		}

		resp, err := b.Move(ctx, g.ID, intent)
		if err != nil {
			out.PrintError(err)
			continue
		}
		out.Print(resp)
		g = &resp.Game
	}

	return scanner.Err()
}

// ParseMove decodes one line of player input into a move intent
func ParseMove(line string) (model.MoveIntent, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return model.MoveIntent{}, errors.New("expected a slot followed by a direction or x y")
	}

	slot, err := strconv.Atoi(fields[0])
	if err != nil {
		return model.MoveIntent{}, fmt.Errorf("invalid slot %q", fields[0])
	}
	intent := model.MoveIntent{HandIndex: slot - 1}
	rest := fields[1:]

	if len(rest) >= 2 {
		x, errX := strconv.Atoi(rest[0])
		y, errY := strconv.Atoi(rest[1])
		if errX == nil && errY == nil {
			intent.Target = &model.Position{X: x, Y: y}
			rest = rest[2:]
		}
	}

	if intent.Target == nil {
		dir, ok := directionAliases[strings.ToLower(rest[0])]
		if !ok {
			dir, err = model.ParseDirection(rest[0])
			if err != nil {
				return model.MoveIntent{}, err
			}
		}
		intent.Direction = dir
		rest = rest[1:]
	}

	switch len(rest) {
	case 0:
	case 1:
		if utf8.RuneCountInString(rest[0]) != 1 {
			return model.MoveIntent{}, fmt.Errorf("%w: %q is not a single letter", model.ErrInvalidLetter, rest[0])
		}
		r, _ := utf8.DecodeRuneInString(rest[0])
		intent.Substitute = unicode.ToUpper(r)
	default:
		return model.MoveIntent{}, fmt.Errorf("unexpected input %q", strings.Join(rest[1:], " "))
	}

	return intent, nil
}
