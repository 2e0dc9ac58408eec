package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/jumpbble/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// Dictionary tests

func (s *StorageSuite) TestSaveAndGetDictionaryWords() {
	words := []string{"APPLE", "BANANA", "CHERRY"}

	err := s.storage.SaveDictionaryWords(s.ctx, words)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetDictionaryWords(s.ctx)
	s.Require().NoError(err)
	s.Equal(words, retrieved)
}

func (s *StorageSuite) TestGetDictionaryWordsNotLoaded() {
	_, err := s.storage.GetDictionaryWords(s.ctx)
	s.ErrorIs(err, model.ErrDictionaryNotLoaded)

	_, err = s.storage.HasDictionaryWord(s.ctx, "APPLE")
	s.ErrorIs(err, model.ErrDictionaryNotLoaded)

	_, err = s.storage.DictionarySize(s.ctx)
	s.ErrorIs(err, model.ErrDictionaryNotLoaded)
}

func (s *StorageSuite) TestHasDictionaryWord() {
	s.Require().NoError(s.storage.SaveDictionaryWords(s.ctx, []string{"AB", "CAT"}))

	ok, err := s.storage.HasDictionaryWord(s.ctx, "AB")
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.storage.HasDictionaryWord(s.ctx, "BA")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *StorageSuite) TestSaveDictionaryWordsReplacesExisting() {
	s.Require().NoError(s.storage.SaveDictionaryWords(s.ctx, []string{"APPLE", "BANANA"}))
	s.Require().NoError(s.storage.SaveDictionaryWords(s.ctx, []string{"CHERRY"}))

	ok, err := s.storage.HasDictionaryWord(s.ctx, "APPLE")
	s.Require().NoError(err)
	s.False(ok)

	size, err := s.storage.DictionarySize(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, size)
}

func (s *StorageSuite) TestGetDictionaryWordsReturnsCopy() {
	s.Require().NoError(s.storage.SaveDictionaryWords(s.ctx, []string{"APPLE"}))

	retrieved, err := s.storage.GetDictionaryWords(s.ctx)
	s.Require().NoError(err)
	retrieved[0] = "MUTATED"

	again, err := s.storage.GetDictionaryWords(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"APPLE"}, again)
}

func (s *StorageSuite) TestPing() {
	s.NoError(s.storage.Ping(s.ctx))
}
