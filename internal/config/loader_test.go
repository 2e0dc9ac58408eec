package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/jumpbble/internal/model"
)

type LoaderSuite struct {
	suite.Suite
	dir string
}

func TestLoaderSuite(t *testing.T) {
	suite.Run(t, new(LoaderSuite))
}

func (s *LoaderSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func (s *LoaderSuite) write(name, content string) {
	s.Require().NoError(os.WriteFile(filepath.Join(s.dir, name), []byte(content), 0o644))
}

func (s *LoaderSuite) TestDefaults() {
	tables, err := Defaults()
	s.Require().NoError(err)

	s.Equal("embedded", tables.Source)
	s.Len(tables.Letters, 27)
	s.Equal('A', tables.Letters[0].Letter)
	s.Equal(model.WildcardLetter, tables.Letters[26].Letter)
	s.Len(tables.Distribution, len(model.AllStatusEffects()))
	s.Equal(DefaultSettings(), tables.Settings)

	letters, err := tables.LetterTable(tables.Settings.GridSize)
	s.Require().NoError(err)
	s.Equal(100, letters.TotalTiles())
	s.Equal(0, letters.Distance('O'), "15th letter on a 15 board")
	s.Equal(16, letters.Distance('P'))
}

func (s *LoaderSuite) TestLoadYAMLKeepsOrder() {
	s.write("letters.yaml", "B: {count: 2, score: 3}\nA: {count: 5, score: 1}\n\"*\": {count: 2, score: 0}\n")
	s.write("special_tiles.yaml", "jump: 1.0\nerase: 0\n")

	tables, err := Load(s.dir)
	s.Require().NoError(err)

	s.Equal(s.dir, tables.Source)
	s.Equal([]model.LetterEntry{
		{Letter: 'B', Def: model.LetterDef{Count: 2, Score: 3}},
		{Letter: 'A', Def: model.LetterDef{Count: 5, Score: 1}},
		{Letter: '*', Def: model.LetterDef{Count: 2, Score: 0}},
	}, tables.Letters)
	s.Equal(model.EffectDistribution{
		{Effect: model.StatusJump, Weight: 1.0},
		{Effect: model.StatusErase, Weight: 0},
	}, tables.Distribution)
}

func (s *LoaderSuite) TestLoadJSON() {
	s.write("letters.json", `{"A": {"count": 5, "score": 1}, "B": {"count": 2, "score": 3}, "*": {"count": 2, "score": 0}}`)
	s.write("special_tiles.json", `{"jump": 1.0}`)
	s.write("game.json", `{"grid_size": 9, "decay_turns": 2}`)

	tables, err := Load(s.dir)
	s.Require().NoError(err)

	s.Equal([]rune{'A', 'B', '*'}, []rune{tables.Letters[0].Letter, tables.Letters[1].Letter, tables.Letters[2].Letter})
	s.Equal(Settings{GridSize: 9, DecayTurns: 2}, tables.Settings)
}

func (s *LoaderSuite) TestUnknownEffectFailsAtLoad() {
	s.write("letters.yaml", "A: {count: 1, score: 1}\n")
	s.write("special_tiles.yaml", "teleport: 1.0\n")

	_, err := Load(s.dir)
	s.ErrorIs(err, model.ErrUnknownStatus)
}

func (s *LoaderSuite) TestInvalidTables() {
	tests := []struct {
		name     string
		letters  string
		special  string
		expected error
	}{
		{"multi-char letter", "AB: {count: 1, score: 1}\n", "jump: 1\n", model.ErrInvalidConfig},
		{"duplicate letter", "A: {count: 1, score: 1}\na: {count: 1, score: 1}\n", "jump: 1\n", model.ErrInvalidConfig},
		{"not a mapping", "- A\n- B\n", "jump: 1\n", model.ErrInvalidConfig},
		{"no positive weight", "A: {count: 1, score: 1}\n", "jump: 0\n", model.ErrInvalidConfig},
		{"duplicate effect", "A: {count: 1, score: 1}\n", "jump: 1\njump: 2\n", model.ErrInvalidConfig},
		{"bad weight", "A: {count: 1, score: 1}\n", "jump: lots\n", model.ErrInvalidConfig},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.dir = s.T().TempDir()
			s.write("letters.yaml", tt.letters)
			s.write("special_tiles.yaml", tt.special)

			_, err := Load(s.dir)
			s.ErrorIs(err, tt.expected)
		})
	}
}

func (s *LoaderSuite) TestMissingTable() {
	s.write("letters.yaml", "A: {count: 1, score: 1}\n")

	_, err := Load(s.dir)
	s.ErrorIs(err, os.ErrNotExist)
}

func (s *LoaderSuite) TestInvalidSettings() {
	s.write("letters.yaml", "A: {count: 1, score: 1}\n")
	s.write("special_tiles.yaml", "jump: 1\n")
	s.write("game.yaml", "grid_size: 0\n")

	_, err := Load(s.dir)
	s.ErrorIs(err, model.ErrInvalidConfig)
}
