package scoring

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mcoot/jumpbble/internal/model"
)

// WordValidator is the dictionary capability scoring needs
type WordValidator interface {
	WordIsValid(ctx context.Context, word string) (bool, error)
}

// Service scores words found on the board
type Service struct {
	dictionary WordValidator
	letters    *model.LetterTable
	logger     *slog.Logger
}

// New creates a new ScoringService
func New(dictionary WordValidator, letters *model.LetterTable, logger *slog.Logger) *Service {
	return &Service{
		dictionary: dictionary,
		letters:    letters,
		logger:     logger,
	}
}

// ScoreWord sums the letter values of a word
func (s *Service) ScoreWord(word string) int {
	total := 0
	for _, letter := range word {
		total += s.letters.Score(letter)
	}
	return total
}

// ScoreNewWords returns the candidates that are valid and not yet in scored,
// in scan order, and adds each of them to scored. A word found twice in one
// scan is only returned once. Lookup failures count as invalid and the word is
// left for the next scan.
func (s *Service) ScoreNewWords(ctx context.Context, candidates []model.WordRecord, scored map[string]struct{}) []model.ScoredWord {
	var result []model.ScoredWord

	for _, candidate := range candidates {
		word := strings.ToUpper(candidate.Word)
		if _, done := scored[word]; done {
			continue
		}

		valid, err := s.dictionary.WordIsValid(ctx, word)
		if errors.Is(err, model.ErrDictionaryNotLoaded) {
			// Warned about once at startup; the word is invalid
			continue
		}
		if err != nil {
			s.logger.Warn("dictionary lookup failed",
				slog.String("word", word),
				slog.String("error", err.Error()),
			)
			continue
		}
		if !valid {
			continue
		}

		scored[word] = struct{}{}
		result = append(result, model.ScoredWord{
			WordRecord: model.WordRecord{Word: word, Positions: candidate.Positions},
			Score:      s.ScoreWord(word),
		})
	}

	return result
}

// Interface for dependency injection
type ServiceInterface interface {
	ScoreWord(word string) int
	ScoreNewWords(ctx context.Context, candidates []model.WordRecord, scored map[string]struct{}) []model.ScoredWord
}

var _ ServiceInterface = (*Service)(nil)
