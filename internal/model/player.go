package model

// HandSize is the number of tiles a player holds when the bag allows it
const HandSize = 7

// pointsPerLevel is the score needed to gain one level
const pointsPerLevel = 10

// Player is the single participant of a game
type Player struct {
	Position Position
	Score    int
	Status   StatusTable
}

// NewPlayer creates a player standing on the given cell
func NewPlayer(start Position) *Player {
	return &Player{Position: start}
}

// Level returns the player's level derived from score
func (p *Player) Level() int {
	return p.Score / pointsPerLevel
}

// AddScore increases the player's score. Negative amounts are ignored so the
// score never decreases.
func (p *Player) AddScore(points int) {
	if points > 0 {
		p.Score += points
	}
}

// Hand is the ordered set of tiles available to the player
type Hand []rune

// Remove takes the tile at index i out of the hand
func (h Hand) Remove(i int) (rune, Hand) {
	letter := h[i]
	rest := make(Hand, 0, len(h)-1)
	rest = append(rest, h[:i]...)
	rest = append(rest, h[i+1:]...)
	return letter, rest
}

// Insert puts a tile at index i, shifting later tiles right
func (h Hand) Insert(i int, letter rune) Hand {
	if i > len(h) {
		i = len(h)
	}
	result := make(Hand, 0, len(h)+1)
	result = append(result, h[:i]...)
	result = append(result, letter)
	result = append(result, h[i:]...)
	return result
}

// String renders the hand as a string of letters
func (h Hand) String() string {
	return string(h)
}
