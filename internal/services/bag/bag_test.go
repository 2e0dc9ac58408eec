package bag

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/jumpbble/internal/dependencies/mocks"
	"github.com/mcoot/jumpbble/internal/dependencies/random"
	"github.com/mcoot/jumpbble/internal/model"
)

type BagSuite struct {
	suite.Suite
	letters  *model.LetterTable
	alphabet []rune
}

func TestBagSuite(t *testing.T) {
	suite.Run(t, new(BagSuite))
}

func (s *BagSuite) SetupTest() {
	letters, err := model.NewLetterTable([]model.LetterEntry{
		{Letter: 'A', Def: model.LetterDef{Count: 5, Score: 1}},
		{Letter: 'B', Def: model.LetterDef{Count: 2, Score: 3}},
		{Letter: 'C', Def: model.LetterDef{Count: 1, Score: 3}},
		{Letter: '*', Def: model.LetterDef{Count: 2, Score: 0}},
	}, 15)
	s.Require().NoError(err)
	s.letters = letters
	s.alphabet = letters.Alphabet()
}

// identityRandom makes the shuffle keep table order: every swap is i with itself
func identityRandom(n int) *mocks.MockRandom {
	rnd := mocks.NewMockRandom()
	for i := 0; i < n; i++ {
		rnd.QueueIntn(n)
	}
	return rnd
}

func countLetters(tiles []rune) map[rune]int {
	counts := make(map[rune]int)
	for _, t := range tiles {
		counts[t]++
	}
	return counts
}

// New tests

func (s *BagSuite) TestNewExpandsEveryLetterByCount() {
	b := New(s.letters, random.NewSeeded(7))

	s.Equal(10, b.Len())
	counts := countLetters(b.Remaining())
	s.Equal(5, counts['A'])
	s.Equal(2, counts['B'])
	s.Equal(1, counts['C'])
	s.Equal(2, counts['*'])
}

func (s *BagSuite) TestNewShufflesWithInjectedRandom() {
	b := New(s.letters, identityRandom(10))
	s.Equal([]rune("AAAAABBC**"), b.Remaining())
}

func (s *BagSuite) TestNewSameSeedSameOrder() {
	b1 := New(s.letters, random.NewSeeded(42))
	b2 := New(s.letters, random.NewSeeded(42))
	s.Equal(b1.Remaining(), b2.Remaining())
}

// DrawNext tests

func (s *BagSuite) TestDrawNextTakesFromFront() {
	b := FromTiles([]rune("XYZ"))

	letter, err := b.DrawNext()
	s.Require().NoError(err)
	s.Equal('X', letter)

	letter, err = b.DrawNext()
	s.Require().NoError(err)
	s.Equal('Y', letter)
	s.Equal(1, b.Len())
}

func (s *BagSuite) TestDrawNextEmptyBag() {
	b := FromTiles([]rune("A"))
	_, _ = b.DrawNext()

	_, err := b.DrawNext()
	s.ErrorIs(err, model.ErrEmptyBag)
}

// DrawOrderedAfter tests

func (s *BagSuite) TestDrawOrderedAfterNextLetter() {
	b := FromTiles([]rune("CABA"))

	letter, err := b.DrawOrderedAfter('A', s.alphabet)
	s.Require().NoError(err)
	s.Equal('B', letter)
	s.Equal([]rune("CAA"), b.Remaining())
}

func (s *BagSuite) TestDrawOrderedAfterSkipsMissingLetters() {
	b := FromTiles([]rune("CAA"))

	letter, err := b.DrawOrderedAfter('A', s.alphabet)
	s.Require().NoError(err)
	s.Equal('C', letter)
	s.Equal([]rune("AA"), b.Remaining())
}

func (s *BagSuite) TestDrawOrderedAfterWrapsAround() {
	b := FromTiles([]rune("BA"))

	letter, err := b.DrawOrderedAfter('*', s.alphabet)
	s.Require().NoError(err)
	s.Equal('A', letter)
	s.Equal([]rune("B"), b.Remaining())
}

func (s *BagSuite) TestDrawOrderedAfterSameLetterLast() {
	b := FromTiles([]rune("A"))

	letter, err := b.DrawOrderedAfter('A', s.alphabet)
	s.Require().NoError(err)
	s.Equal('A', letter)
	s.Equal(0, b.Len())
}

func (s *BagSuite) TestDrawOrderedAfterRemovesFirstOccurrence() {
	b := FromTiles([]rune("ABCB"))

	letter, err := b.DrawOrderedAfter('A', s.alphabet)
	s.Require().NoError(err)
	s.Equal('B', letter)
	s.Equal([]rune("ACB"), b.Remaining())
}

func (s *BagSuite) TestDrawOrderedAfterUnknownLetterStartsAtFirst() {
	b := FromTiles([]rune("CA"))

	letter, err := b.DrawOrderedAfter('Z', s.alphabet)
	s.Require().NoError(err)
	s.Equal('A', letter)
}

func (s *BagSuite) TestDrawOrderedAfterEmptyBag() {
	b := FromTiles(nil)

	_, err := b.DrawOrderedAfter('A', s.alphabet)
	s.ErrorIs(err, model.ErrEmptyBag)
}

func (s *BagSuite) TestDrawOrderedAfterAlwaysReturnsCyclicNextPresentLetter() {
	rnd := random.NewSeeded(99)
	b := New(s.letters, rnd)
	previous := 'A'

	for b.Len() > 0 {
		before := countLetters(b.Remaining())

		// Expected: first letter after previous (cyclically) present before the call
		var expected rune
		start := 0
		for i, l := range s.alphabet {
			if l == previous {
				start = i
			}
		}
		for step := 1; step <= len(s.alphabet); step++ {
			candidate := s.alphabet[(start+step)%len(s.alphabet)]
			if before[candidate] > 0 {
				expected = candidate
				break
			}
		}

		letter, err := b.DrawOrderedAfter(previous, s.alphabet)
		s.Require().NoError(err)
		s.Equal(expected, letter)
		s.Positive(before[letter], "drawn letter must have been in the bag")
		s.Equal(before[letter]-1, countLetters(b.Remaining())[letter])
		previous = letter
	}
}
