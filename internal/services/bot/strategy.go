package bot

import "github.com/mcoot/jumpbble/internal/model"

// Strategy decides the next move from what a player can see
type Strategy interface {
	// ChooseIntent returns a move that is legal for the snapshot
	ChooseIntent(snap *model.Snapshot) model.MoveIntent
}

// Strategy names
const (
	StrategyRandom = "random"
	StrategyGreedy = "greedy"
)
