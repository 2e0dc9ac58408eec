package bag

import (
	"github.com/mcoot/jumpbble/internal/dependencies/random"
	"github.com/mcoot/jumpbble/internal/model"
)

// Bag is the shuffled sequence of tiles still to be drawn. The shuffle
// happens once at construction; the order is fixed for the rest of the game.
type Bag struct {
	tiles []rune
}

// New expands every letter by its count in table order and shuffles the
// result with rnd
func New(letters *model.LetterTable, rnd random.Random) *Bag {
	tiles := make([]rune, 0, letters.TotalTiles())
	for _, e := range letters.Entries() {
		for i := 0; i < e.Def.Count; i++ {
			tiles = append(tiles, e.Letter)
		}
	}
	random.Shuffle(rnd, len(tiles), func(i, j int) {
		tiles[i], tiles[j] = tiles[j], tiles[i]
	})
	return &Bag{tiles: tiles}
}

// FromTiles creates a bag with a fixed draw order, front first
func FromTiles(tiles []rune) *Bag {
	b := &Bag{tiles: make([]rune, len(tiles))}
	copy(b.tiles, tiles)
	return b
}

// Len returns the number of tiles left
func (b *Bag) Len() int {
	return len(b.tiles)
}

// Remaining returns a copy of the tiles left, in draw order
func (b *Bag) Remaining() []rune {
	result := make([]rune, len(b.tiles))
	copy(result, b.tiles)
	return result
}

// DrawNext removes and returns the tile at the front of the bag
func (b *Bag) DrawNext() (rune, error) {
	if len(b.tiles) == 0 {
		return 0, model.ErrEmptyBag
	}
	letter := b.tiles[0]
	b.tiles = b.tiles[1:]
	return letter, nil
}

// DrawOrderedAfter walks the alphabet cyclically starting just after letter
// and draws the first letter that is still in the bag. The first occurrence
// in draw order is removed, wherever it sits.
func (b *Bag) DrawOrderedAfter(letter rune, alphabet []rune) (rune, error) {
	if len(b.tiles) == 0 || len(alphabet) == 0 {
		return 0, model.ErrEmptyBag
	}

	start := -1
	for i, l := range alphabet {
		if l == letter {
			start = i
			break
		}
	}

	for step := 1; step <= len(alphabet); step++ {
		candidate := alphabet[(start+step)%len(alphabet)]
		if i := b.indexOf(candidate); i >= 0 {
			b.removeAt(i)
			return candidate, nil
		}
	}

	return 0, model.ErrEmptyBag
}

func (b *Bag) indexOf(letter rune) int {
	for i, t := range b.tiles {
		if t == letter {
			return i
		}
	}
	return -1
}

func (b *Bag) removeAt(i int) {
	b.tiles = append(b.tiles[:i], b.tiles[i+1:]...)
}
