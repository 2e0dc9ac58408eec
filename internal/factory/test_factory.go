package factory

import (
	"time"

	"github.com/mcoot/jumpbble/internal/config"
	"github.com/mcoot/jumpbble/internal/dependencies/mocks"
	"github.com/mcoot/jumpbble/internal/storage/memory"
	"github.com/mcoot/jumpbble/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
// and the embedded game tables
func NewTestApp() (*TestApp, error) {
	tables, err := config.Defaults()
	if err != nil {
		return nil, err
	}

	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, tables, mockClock, mockRandom, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}, nil
}

// TestWords is a small dictionary for testing
var TestWords = []string{
	// 2-letter words
	"aa", "ab", "ad", "ae", "ai", "am", "an", "ar", "as", "at",
	"be", "do", "ea", "ee", "ei", "en", "er", "es", "et", "go",
	"he", "ie", "if", "in", "io", "is", "it", "me", "my", "ne",
	"no", "oe", "of", "oi", "on", "oo", "or", "os", "ou", "so",
	"te", "ti", "to", "up", "us", "we",
	// 3-letter words
	"ace", "act", "add", "age", "ago", "aid", "aim", "air", "all", "and",
	"ant", "any", "ape", "arc", "are", "ark", "arm", "art", "ash", "ask",
	"ate", "bad", "bag", "ban", "bar", "bat", "bed", "bee", "bet", "big",
	"ear", "eat", "eon", "era", "ire", "ion", "its", "net", "nit", "not",
	"oat", "one", "ore", "rat", "ren", "ret", "rot", "sea", "set", "sit",
	"tan", "tar", "tea", "ten", "tie", "tin", "toe", "ton", "too", "tor",
	// 4-letter words
	"area", "earn", "east", "into", "iron", "near", "nest", "note", "rain",
	"rate", "rest", "riot", "rose", "seat", "site", "star", "tear", "tire",
	"tone", "tore", "tree", "trio",
	// 5-letter words
	"arise", "irate", "notes", "onset", "raise", "ratio", "stone", "tenor",
	"tones", "train",
}

// LoadTestDictionary loads a small dictionary for testing
func (t *TestApp) LoadTestDictionary() error {
	return t.DictionaryService.LoadWords(TestWords)
}
