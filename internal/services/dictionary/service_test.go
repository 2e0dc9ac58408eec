package dictionary

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/jumpbble/internal/model"
	"github.com/mcoot/jumpbble/internal/storage/memory"
	"github.com/mcoot/jumpbble/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) writeFile(content string) string {
	path := filepath.Join(s.T().TempDir(), "words.txt")
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (s *ServiceSuite) TestIsNotLoadedByDefault() {
	s.False(s.service.IsLoaded())

	_, err := s.service.WordCount(s.ctx)
	s.ErrorIs(err, model.ErrDictionaryNotLoaded)
}

func (s *ServiceSuite) TestLoadWords() {
	words := []string{"apple", "banana", "cherry"}
	err := s.service.LoadWords(words)
	s.Require().NoError(err)

	s.True(s.service.IsLoaded())
	count, err := s.service.WordCount(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, count)
}

func (s *ServiceSuite) TestWordIsValidCaseInsensitive() {
	s.Require().NoError(s.service.LoadWords([]string{"Ab"}))

	for _, w := range []string{"AB", "ab", "aB"} {
		ok, err := s.service.WordIsValid(s.ctx, w)
		s.Require().NoError(err)
		s.True(ok, w)
	}

	ok, err := s.service.WordIsValid(s.ctx, "BA")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *ServiceSuite) TestWordIsValidRequiresMinLength() {
	s.Require().NoError(s.service.LoadWords([]string{"a", "ab"}))

	ok, err := s.service.WordIsValid(s.ctx, "A")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *ServiceSuite) TestWordIsValidFallsBackToStorage() {
	s.Require().NoError(s.storage.SaveDictionaryWords(s.ctx, []string{"CAT"}))

	ok, err := s.service.WordIsValid(s.ctx, "cat")
	s.Require().NoError(err)
	s.True(ok)
	s.False(s.service.IsLoaded())
}

func (s *ServiceSuite) TestWordIsValidWhenNothingLoaded() {
	_, err := s.service.WordIsValid(s.ctx, "CAT")
	s.ErrorIs(err, model.ErrDictionaryNotLoaded)
}

func (s *ServiceSuite) TestLoadFromStorage() {
	s.Require().NoError(s.storage.SaveDictionaryWords(s.ctx, []string{"HELLO", "WORLD"}))

	err := s.service.LoadFromStorage(s.ctx)
	s.Require().NoError(err)

	s.True(s.service.IsLoaded())
	ok, err := s.service.WordIsValid(s.ctx, "hello")
	s.Require().NoError(err)
	s.True(ok)
}

func (s *ServiceSuite) TestLoadFromStorageWhenEmpty() {
	err := s.service.LoadFromStorage(s.ctx)
	s.ErrorIs(err, model.ErrDictionaryNotLoaded)
}

func (s *ServiceSuite) TestLoadFromFile() {
	path := s.writeFile("# comment\nhello\n\n  world  \nHELLO\n")

	err := s.service.LoadFromFile(s.ctx, path)
	s.Require().NoError(err)

	stored, err := s.storage.GetDictionaryWords(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"HELLO", "WORLD"}, stored)

	count, err := s.service.WordCount(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, count)
}

func (s *ServiceSuite) TestLoadFromMissingFile() {
	err := s.service.LoadFromFile(s.ctx, filepath.Join(s.T().TempDir(), "missing.txt"))
	s.True(errors.Is(err, os.ErrNotExist))
	s.False(s.service.IsLoaded())
}

func (s *ServiceSuite) TestImportFileLeavesMemoryUntouched() {
	path := s.writeFile("zebra\n")

	words, err := s.service.ImportFile(s.ctx, path)
	s.Require().NoError(err)
	s.Equal([]string{"ZEBRA"}, words)
	s.False(s.service.IsLoaded())

	ok, err := s.service.WordIsValid(s.ctx, "zebra")
	s.Require().NoError(err)
	s.True(ok)
}

func (s *ServiceSuite) TestReadWords() {
	words, err := ReadWords(strings.NewReader("b\na\n#x\nb\n"))
	s.Require().NoError(err)
	s.Equal([]string{"B", "A"}, words)
}
