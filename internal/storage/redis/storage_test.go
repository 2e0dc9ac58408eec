package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/jumpbble/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Dictionary tests

func (s *StorageSuite) TestSaveAndGetDictionaryWords() {
	words := []string{"APPLE", "BANANA", "CHERRY"}

	err := s.storage.SaveDictionaryWords(s.ctx, words)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetDictionaryWords(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch(words, retrieved) // Order may differ (SET)
}

func (s *StorageSuite) TestGetDictionaryWordsNotLoaded() {
	_, err := s.storage.GetDictionaryWords(s.ctx)
	s.ErrorIs(err, model.ErrDictionaryNotLoaded)

	_, err = s.storage.HasDictionaryWord(s.ctx, "APPLE")
	s.ErrorIs(err, model.ErrDictionaryNotLoaded)

	_, err = s.storage.DictionarySize(s.ctx)
	s.ErrorIs(err, model.ErrDictionaryNotLoaded)
}

func (s *StorageSuite) TestSaveDictionaryWordsReplacesExisting() {
	words1 := []string{"APPLE", "BANANA"}
	words2 := []string{"CHERRY", "DATE", "ELDERBERRY"}

	_ = s.storage.SaveDictionaryWords(s.ctx, words1)
	_ = s.storage.SaveDictionaryWords(s.ctx, words2)

	retrieved, err := s.storage.GetDictionaryWords(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch(words2, retrieved)

	size, err := s.storage.DictionarySize(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, size)
}

func (s *StorageSuite) TestHasDictionaryWord() {
	s.Require().NoError(s.storage.SaveDictionaryWords(s.ctx, []string{"AB", "CAT"}))

	ok, err := s.storage.HasDictionaryWord(s.ctx, "CAT")
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.storage.HasDictionaryWord(s.ctx, "DOG")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *StorageSuite) TestHasDictionaryWordConnectionError() {
	s.Require().NoError(s.storage.SaveDictionaryWords(s.ctx, []string{"AB"}))
	s.mini.Close()

	_, err := s.storage.HasDictionaryWord(s.ctx, "AB")
	s.Error(err)
	s.NotErrorIs(err, model.ErrDictionaryNotLoaded)
	s.mini = nil
}

func (s *StorageSuite) TestDictionaryNoTTL() {
	_ = s.storage.SaveDictionaryWords(s.ctx, []string{"APPLE"})

	ttl := s.mini.TTL(dictionaryKey())
	s.Equal(time.Duration(0), ttl, "Dictionary should not have TTL")
}

func (s *StorageSuite) TestPing() {
	s.NoError(s.storage.Ping(s.ctx))
}
