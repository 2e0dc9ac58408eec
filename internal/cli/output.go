package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mcoot/jumpbble/internal/api/response"
	"github.com/mcoot/jumpbble/internal/model"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true)
	emptyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	specialStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	markerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	letterStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	playerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
	wordStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	out    io.Writer
	errOut io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, out, errOut io.Writer) *Output {
	return &Output{format: format, out: out, errOut: errOut}
}

// JSON reports whether output is machine readable
func (o *Output) JSON() bool {
	return o.format == "json"
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.JSON() {
		o.printJSON(data)
		return
	}

	switch v := data.(type) {
	case *response.Game:
		o.printGame(v)
	case *response.MoveResponse:
		o.printMove(&v.Result)
		o.printGame(&v.Game)
	case *SimulationSummary:
		o.printSummary(v)
	case *response.Health:
		o.printHealth(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.JSON() {
		data, _ := json.Marshal(map[string]any{
			"error": map[string]string{"message": err.Error()},
		})
		fmt.Fprintln(o.errOut, string(data))
		return
	}
	fmt.Fprintln(o.errOut, errorStyle.Render("Error: "+err.Error()))
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.JSON() {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.out, string(data))
		return
	}
	fmt.Fprintln(o.out, msg)
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printGame(g *response.Game) {
	fmt.Fprintln(o.out, headerStyle.Render(fmt.Sprintf(
		"Turn %d   Score %d   Level %d   Bag %d", g.Turn, g.Score, g.Level, g.BagSize)))

	if len(g.Statuses) > 0 {
		parts := make([]string, len(g.Statuses))
		for i, st := range g.Statuses {
			parts[i] = fmt.Sprintf("%s(%d)", st.Effect, st.Turns)
		}
		fmt.Fprintln(o.out, statusStyle.Render("Status: "+strings.Join(parts, " ")))
	}

	fmt.Fprint(o.out, RenderBoard(g))

	if len(g.Hand) > 0 {
		tiles := make([]string, len(g.Hand))
		for i, tile := range g.Hand {
			hint := fmt.Sprintf("%d", tile.Distance)
			switch {
			case tile.NeedsTarget:
				hint = "x,y"
			case tile.Letter == model.HiddenLetter:
				hint = "?"
			}
			tiles[i] = fmt.Sprintf("%d:%s(%s)", i+1, tile.Letter, hint)
		}
		fmt.Fprintf(o.out, "Hand: %s\n", strings.Join(tiles, " "))
	}

	if len(g.ScoredWords) > 0 {
		fmt.Fprintf(o.out, "Words: %s\n", wordStyle.Render(strings.Join(g.ScoredWords, " ")))
	}

	if g.State == string(model.GameStateGameOver) {
		fmt.Fprintln(o.out, headerStyle.Render(fmt.Sprintf("Game over! Final score %d", g.Score)))
	}
}

// RenderBoard draws the board with coordinates. The player's cell is
// bracketed so it stays visible without colour.
func RenderBoard(g *response.Game) string {
	var sb strings.Builder
	size := g.Board.Size

	highlighted := make(map[model.Position]bool, len(g.Highlighted))
	for _, pos := range g.Highlighted {
		highlighted[pos] = true
	}

	sb.WriteString("    ")
	for x := 0; x < size; x++ {
		fmt.Fprintf(&sb, "%3d", x)
	}
	sb.WriteString("\n")

	for y := 0; y < size; y++ {
		fmt.Fprintf(&sb, "%3d ", y)
		for x := 0; x < size; x++ {
			pos := model.Position{X: x, Y: y}
			sb.WriteString(renderCell(g.Board.Cells[y][x], pos == g.Position, highlighted[pos]))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func renderCell(cell string, isPlayer, isHighlighted bool) string {
	text := cell
	style := letterStyle
	switch {
	case cell == "":
		text = "."
		style = emptyStyle
	case cell == "?":
		style = specialStyle
	case cell == string(model.PlayerMarker):
		style = markerStyle
	case isHighlighted:
		style = highlightStyle
	}

	if isPlayer {
		return playerStyle.Render("[" + text + "]")
	}
	return " " + style.Render(text) + " "
}

func (o *Output) printMove(r *response.MoveResult) {
	fmt.Fprintf(o.out, "Played %s\n", r.Played)
	for _, p := range r.Placements {
		kind := "placed"
		if p.Mirrored {
			kind = "mirrored"
		}
		if !p.Placed {
			kind += " (dropped, cell occupied)"
		}
		line := fmt.Sprintf("  %s %s at %d,%d", p.Letter, kind, p.Position.X, p.Position.Y)
		if p.Granted != "" {
			line += statusStyle.Render(" +" + p.Granted)
		}
		fmt.Fprintln(o.out, line)
	}
	for _, w := range r.Words {
		fmt.Fprintln(o.out, wordStyle.Render(fmt.Sprintf("  %s +%d", w.Word, w.Score)))
	}
	if r.Replacement == nil && !r.GameOver {
		fmt.Fprintln(o.out, "  Bag is empty")
	}
}

func (o *Output) printSummary(s *SimulationSummary) {
	fmt.Fprintln(o.out, headerStyle.Render(fmt.Sprintf(
		"%s bot finished in %d moves: score %d, level %d", s.Strategy, s.Moves, s.Score, s.Level)))
	if len(s.Words) > 0 {
		fmt.Fprintf(o.out, "Words: %s\n", wordStyle.Render(strings.Join(s.Words, " ")))
	}
}

func (o *Output) printHealth(h *response.Health) {
	fmt.Fprintf(o.out, "Status: %s\n", h.Status)
	fmt.Fprintf(o.out, "Active games: %d\n", h.ActiveGames)
	fmt.Fprintf(o.out, "Dictionary loaded: %t\n", h.Dictionary)
}
