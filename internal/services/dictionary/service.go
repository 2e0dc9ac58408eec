package dictionary

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/mcoot/jumpbble/internal/storage"
)

// Service provides dictionary/word validation functionality. Once words are
// loaded they are answered from memory; before that every lookup goes to
// storage.
type Service struct {
	storage storage.Storage
	logger  *slog.Logger

	mu     sync.RWMutex
	words  map[string]struct{}
	loaded bool
}

// New creates a new DictionaryService
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
		words:   make(map[string]struct{}),
	}
}

// LoadFromStorage loads dictionary words from storage
func (s *Service) LoadFromStorage(ctx context.Context) error {
	words, err := s.storage.GetDictionaryWords(ctx)
	if err != nil {
		return err
	}
	return s.loadWords(words)
}

// LoadFromFile loads dictionary words from a file (one word per line) and
// saves them to storage
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	words, err := s.ImportFile(ctx, path)
	if err != nil {
		return err
	}
	return s.loadWords(words)
}

// ImportFile reads a word list and replaces the stored dictionary with it,
// without touching the in-memory copy. Returns the normalized words.
func (s *Service) ImportFile(ctx context.Context, path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	words, err := ReadWords(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := s.storage.SaveDictionaryWords(ctx, words); err != nil {
		return nil, err
	}

	s.logger.Info("dictionary imported",
		slog.String("path", path),
		slog.Int("words", len(words)),
	)
	return words, nil
}

// ReadWords parses a word list: one word per line, blank lines and lines
// starting with '#' are skipped, words are upper-cased and deduplicated
func ReadWords(r io.Reader) ([]string, error) {
	var words []string
	seen := make(map[string]struct{})

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		word = normalize(word)
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// LoadWords directly loads a slice of words (useful for testing)
func (s *Service) LoadWords(words []string) error {
	return s.loadWords(words)
}

func (s *Service) loadWords(words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.words = make(map[string]struct{}, len(words))
	for _, word := range words {
		s.words[normalize(word)] = struct{}{}
	}
	s.loaded = true
	return nil
}

// WordIsValid checks if a word exists in the dictionary, case-insensitively.
// Words must be at least 2 characters. A storage failure is returned as an
// error; callers decide whether that means invalid.
func (s *Service) WordIsValid(ctx context.Context, word string) (bool, error) {
	if len([]rune(word)) < 2 {
		return false, nil
	}
	word = normalize(word)

	s.mu.RLock()
	loaded := s.loaded
	_, ok := s.words[word]
	s.mu.RUnlock()

	if loaded {
		return ok, nil
	}

	return s.storage.HasDictionaryWord(ctx, word)
}

// IsLoaded returns whether the dictionary has been loaded into memory
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// WordCount returns the number of words in the dictionary, asking storage
// when nothing is loaded in memory
func (s *Service) WordCount(ctx context.Context) (int, error) {
	s.mu.RLock()
	loaded, count := s.loaded, len(s.words)
	s.mu.RUnlock()

	if loaded {
		return count, nil
	}
	return s.storage.DictionarySize(ctx)
}

func normalize(word string) string {
	return strings.ToUpper(strings.TrimSpace(word))
}

// Interface check
type ServiceInterface interface {
	WordIsValid(ctx context.Context, word string) (bool, error)
	IsLoaded() bool
	WordCount(ctx context.Context) (int, error)
	LoadFromStorage(ctx context.Context) error
	LoadFromFile(ctx context.Context, path string) error
	ImportFile(ctx context.Context, path string) ([]string, error)
	LoadWords(words []string) error
}

var _ ServiceInterface = (*Service)(nil)
