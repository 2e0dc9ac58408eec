package scanner

import (
	"github.com/mcoot/jumpbble/internal/model"
)

// Scan finds every maximal run of two or more letters on the board, reading
// rows top to bottom and then columns left to right. Empty cells, special
// cells and the player marker break runs. Words wrap at neither edge.
func Scan(board *model.Board) []model.WordRecord {
	var words []model.WordRecord

	for y := 0; y < board.Size; y++ {
		words = append(words, scanLine(board.GetRow(y), func(i int) model.Position {
			return model.Position{X: i, Y: y}
		})...)
	}

	for x := 0; x < board.Size; x++ {
		words = append(words, scanLine(board.GetCol(x), func(i int) model.Position {
			return model.Position{X: x, Y: i}
		})...)
	}

	return words
}

// scanLine splits one row or column into runs. at maps a line index back to
// its board position.
func scanLine(cells []model.Cell, at func(i int) model.Position) []model.WordRecord {
	if allSeparators(cells) {
		return nil
	}

	var words []model.WordRecord
	start := -1
	flush := func(end int) {
		if start >= 0 && end-start >= 2 {
			words = append(words, buildRecord(cells[start:end], start, at))
		}
		start = -1
	}

	for i, cell := range cells {
		if cell.IsSeparator() {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(cells))

	return words
}

func buildRecord(run []model.Cell, offset int, at func(i int) model.Position) model.WordRecord {
	letters := make([]rune, len(run))
	positions := make([]model.Position, len(run))
	for i, cell := range run {
		letters[i] = cell.Letter
		positions[i] = at(offset + i)
	}
	return model.WordRecord{Word: string(letters), Positions: positions}
}

func allSeparators(cells []model.Cell) bool {
	for _, cell := range cells {
		if !cell.IsSeparator() {
			return false
		}
	}
	return true
}
