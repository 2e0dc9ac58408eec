package memory

import (
	"context"
	"sync"

	"github.com/mcoot/jumpbble/internal/model"
	"github.com/mcoot/jumpbble/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	dictionaryWords []string
	dictionarySet   map[string]struct{}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// New creates a new in-memory storage
func New() *Storage {
	return &Storage{}
}

// Dictionary operations

func (s *Storage) GetDictionaryWords(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dictionaryWords == nil {
		return nil, model.ErrDictionaryNotLoaded
	}
	result := make([]string, len(s.dictionaryWords))
	copy(result, s.dictionaryWords)
	return result, nil
}

func (s *Storage) SaveDictionaryWords(ctx context.Context, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dictionaryWords = make([]string, len(words))
	copy(s.dictionaryWords, words)
	s.dictionarySet = make(map[string]struct{}, len(words))
	for _, w := range words {
		s.dictionarySet[w] = struct{}{}
	}
	return nil
}

func (s *Storage) HasDictionaryWord(ctx context.Context, word string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dictionarySet == nil {
		return false, model.ErrDictionaryNotLoaded
	}
	_, ok := s.dictionarySet[word]
	return ok, nil
}

func (s *Storage) DictionarySize(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dictionarySet == nil {
		return 0, model.ErrDictionaryNotLoaded
	}
	return len(s.dictionarySet), nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return nil
}
