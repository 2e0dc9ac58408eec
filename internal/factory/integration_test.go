package factory

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/jumpbble/internal/model"
	"github.com/mcoot/jumpbble/internal/services/bot"
	"github.com/mcoot/jumpbble/internal/services/game"
	redisstorage "github.com/mcoot/jumpbble/internal/storage/redis"
	"github.com/mcoot/jumpbble/internal/testutil"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	app, err := NewTestApp()
	s.Require().NoError(err)
	s.app = app
	s.ctx = context.Background()
	s.Require().NoError(s.app.LoadTestDictionary())
}

// Test: a bot plays a full default game and every tile is accounted for
func (s *IntegrationSuite) TestBotPlaysCompleteGame() {
	for _, strategy := range s.app.BotService.Strategies() {
		s.Run(strategy, func() {
			opening, err := s.app.GameController.NewGame(s.ctx, game.NewGameOptions{})
			s.Require().NoError(err)
			s.Equal(15, opening.Board.Size)
			s.Equal(22, opening.Board.CountKind(model.CellSpecial))
			s.Len(opening.Hand, model.HandSize)
			s.Equal(100-model.HandSize, opening.BagSize)

			total := 0
			var words []string
			actions, err := s.app.BotService.PlayToEnd(s.ctx, opening.ID, strategy, func(action *bot.BotAction) {
				s.Equal(action.After.BagSize+len(action.After.Hand)+action.Result.Turn, 100)
				for _, w := range action.Result.Words {
					total += w.Score
					words = append(words, w.Word)
				}
			})
			s.Require().NoError(err)
			s.Len(actions, 100)

			final := actions[len(actions)-1].After
			s.Equal(model.GameStateGameOver, final.State)
			s.Equal(0, final.BagSize)
			s.Empty(final.Hand)
			s.Equal(total, final.Score)
			s.ElementsMatch(words, final.ScoredWords)
			for _, w := range final.ScoredWords {
				s.Equal(strings.ToUpper(w), w)
			}

			// Nothing new is found once the game is over
			rescored, err := s.app.GameController.Rescan(s.ctx, opening.ID)
			s.Require().NoError(err)
			s.Empty(rescored)
		})
	}
}

// Test: the player always starts in the centre and leaves the marker behind
func (s *IntegrationSuite) TestMarkerStaysOnStart() {
	opening, err := s.app.GameController.NewGame(s.ctx, game.NewGameOptions{})
	s.Require().NoError(err)
	start := model.Position{X: 7, Y: 7}
	s.Equal(start, opening.Position)

	action, err := s.app.BotService.PlayMove(s.ctx, opening.ID, bot.StrategyGreedy)
	s.Require().NoError(err)
	s.Equal(model.OccupiedCell(model.PlayerMarker), action.After.Board.Get(start))
}

// Test: a redis-backed app imports the dictionary file and serves lookups
// from storage on the next start
func (s *IntegrationSuite) TestRedisDictionaryRoundTrip() {
	mr := miniredis.RunT(s.T())
	redisCfg := redisstorage.DefaultConfig()
	redisCfg.URL = "redis://" + mr.Addr()

	path := filepath.Join(s.T().TempDir(), "words.txt")
	s.Require().NoError(os.WriteFile(path, []byte("# words\nab\nBA\n\nab\n"), 0o644))

	first, err := New(s.ctx, Config{
		DictionaryPath: path,
		StorageType:    StorageTypeRedis,
		RedisConfig:    &redisCfg,
		Logger:         testutil.NopLogger(),
	})
	s.Require().NoError(err)
	s.Require().NoError(first.Close())

	members, err := mr.Members("jumpbble:dictionary")
	s.Require().NoError(err)
	s.ElementsMatch([]string{"AB", "BA"}, members)

	second, err := New(s.ctx, Config{
		StorageType: StorageTypeRedis,
		RedisConfig: &redisCfg,
		Logger:      testutil.NopLogger(),
	})
	s.Require().NoError(err)
	defer func() { _ = second.Close() }()

	valid, err := second.DictionaryService.WordIsValid(s.ctx, "ba")
	s.Require().NoError(err)
	s.True(valid)

	count, err := second.DictionaryService.WordCount(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, count)
}

func (s *IntegrationSuite) TestNewRejectsBadStorage() {
	_, err := New(s.ctx, Config{StorageType: "sqlite"})
	s.Error(err)

	_, err = New(s.ctx, Config{StorageType: StorageTypeRedis})
	s.Error(err)
}

func (s *IntegrationSuite) TestNewWithoutDictionary() {
	app, err := New(s.ctx, Config{GridSize: 9})
	s.Require().NoError(err)
	s.False(app.DictionaryService.IsLoaded())

	snap, err := app.GameController.NewGame(s.ctx, game.NewGameOptions{})
	s.Require().NoError(err)
	s.Equal(9, snap.Board.Size)
}

func (s *IntegrationSuite) TestNewRejectsBadGridSize() {
	_, err := New(s.ctx, Config{GridSize: -1})
	s.ErrorIs(err, model.ErrInvalidConfig)
}
