package scanner

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/jumpbble/internal/model"
)

type ScannerSuite struct {
	suite.Suite
}

func TestScannerSuite(t *testing.T) {
	suite.Run(t, new(ScannerSuite))
}

// createBoard builds a board from row strings: '.' is empty, '?' special,
// '@' the start marker, anything else a letter
func (s *ScannerSuite) createBoard(rows ...string) *model.Board {
	size := len(rows)
	board := model.NewBoard(size, model.Position{X: size - 1, Y: size - 1})
	board.Set(board.Start, model.EmptyCell())
	for y, row := range rows {
		for x, ch := range row {
			pos := model.Position{X: x, Y: y}
			switch ch {
			case '.':
				board.Set(pos, model.EmptyCell())
			case '?':
				board.Set(pos, model.SpecialCell())
			default:
				board.Set(pos, model.OccupiedCell(ch))
			}
		}
	}
	return board
}

func (s *ScannerSuite) words(records []model.WordRecord) []string {
	result := make([]string, len(records))
	for i, r := range records {
		result[i] = r.Word
	}
	return result
}

func (s *ScannerSuite) TestEmptyBoard() {
	board := s.createBoard("...", "...", "...")
	s.Empty(Scan(board))
}

func (s *ScannerSuite) TestSingleLettersAreNotWords() {
	board := s.createBoard("A.B", "...", "C..")
	s.Empty(Scan(board))
}

func (s *ScannerSuite) TestHorizontalRun() {
	board := s.createBoard(
		".AB.",
		"....",
		"....",
		"....",
	)

	records := Scan(board)
	s.Require().Len(records, 1)
	s.Equal("AB", records[0].Word)
	s.Equal([]model.Position{{X: 1, Y: 0}, {X: 2, Y: 0}}, records[0].Positions)
}

func (s *ScannerSuite) TestVerticalRun() {
	board := s.createBoard(
		"C..",
		"A..",
		"T..",
	)

	records := Scan(board)
	s.Require().Len(records, 1)
	s.Equal("CAT", records[0].Word)
	s.Equal([]model.Position{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}}, records[0].Positions)
}

func (s *ScannerSuite) TestRowsBeforeColumns() {
	board := s.createBoard(
		"GO.",
		"O..",
		"...",
	)

	s.Equal([]string{"GO", "GO"}, s.words(Scan(board)))
}

func (s *ScannerSuite) TestSeparatorsSplitRuns() {
	board := s.createBoard(
		"AB?CD@EF.GH",
		"...........",
		"...........",
		"...........",
		"...........",
		"...........",
		"...........",
		"...........",
		"...........",
		"...........",
		"...........",
	)

	s.Equal([]string{"AB", "CD", "EF", "GH"}, s.words(Scan(board)))
}

func (s *ScannerSuite) TestRunsDoNotWrap() {
	board := s.createBoard(
		"A..B",
		"....",
		"....",
		"....",
	)

	s.Empty(Scan(board))
}

func (s *ScannerSuite) TestFullLine() {
	board := s.createBoard(
		"ABC",
		"...",
		"...",
	)

	records := Scan(board)
	s.Require().Len(records, 1)
	s.Equal("ABC", records[0].Word)
}

func (s *ScannerSuite) TestRescanIsPure() {
	board := s.createBoard(
		"HI.",
		"...",
		"...",
	)

	s.Equal(Scan(board), Scan(board))
}
