package storage

import (
	"context"
)

// Storage holds the word list the dictionary validates against. Game
// sessions live in memory and are never stored.
type Storage interface {
	// Dictionary operations
	GetDictionaryWords(ctx context.Context) ([]string, error)
	SaveDictionaryWords(ctx context.Context, words []string) error
	HasDictionaryWord(ctx context.Context, word string) (bool, error)
	DictionarySize(ctx context.Context) (int, error)

	// Ping reports whether the backend is reachable
	Ping(ctx context.Context) error
}
