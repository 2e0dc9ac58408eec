package model

// PlayerMarker is the rune occupying the player's starting cell
const PlayerMarker = '@'

// specialTileDivisor sets the share of cells that start as special tiles (one in ten)
const specialTileDivisor = 10

// Position identifies a cell on the board
type Position struct {
	X int `json:"x"` // Column, 0-indexed from left
	Y int `json:"y"` // Row, 0-indexed from top
}

// Delta is a relative offset between two positions
type Delta struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// Neg returns the opposite offset
func (d Delta) Neg() Delta {
	return Delta{DX: -d.DX, DY: -d.DY}
}

// Scale multiplies the offset by n
func (d Delta) Scale(n int) Delta {
	return Delta{DX: d.DX * n, DY: d.DY * n}
}

// CellKind distinguishes the three states a cell can be in
type CellKind int

const (
	CellEmpty CellKind = iota
	CellSpecial
	CellOccupied
)

// Cell is a single board square
type Cell struct {
	Kind   CellKind
	Letter rune // Set only when Kind is CellOccupied
}

// EmptyCell returns an empty cell
func EmptyCell() Cell {
	return Cell{Kind: CellEmpty}
}

// SpecialCell returns a special cell
func SpecialCell() Cell {
	return Cell{Kind: CellSpecial}
}

// OccupiedCell returns a cell holding the given letter
func OccupiedCell(letter rune) Cell {
	return Cell{Kind: CellOccupied, Letter: letter}
}

// IsSeparator returns true if the cell breaks a run of letters
func (c Cell) IsSeparator() bool {
	return c.Kind != CellOccupied || c.Letter == PlayerMarker
}

// String renders the cell as a single character
func (c Cell) String() string {
	switch c.Kind {
	case CellSpecial:
		return "?"
	case CellOccupied:
		return string(c.Letter)
	default:
		return "-"
	}
}

// Board is the toroidal game grid
type Board struct {
	Size  int
	Start Position
	Cells [][]Cell // Row-major: Cells[y][x]
}

// NewBoard creates an all-empty board of the given size with the player
// marker on the starting cell
func NewBoard(size int, start Position) *Board {
	cells := make([][]Cell, size)
	for i := range cells {
		cells[i] = make([]Cell, size)
	}
	b := &Board{
		Size:  size,
		Start: start,
		Cells: cells,
	}
	b.Set(start, OccupiedCell(PlayerMarker))
	return b
}

// Get returns the cell at the given position, wrapping around the edges
func (b *Board) Get(pos Position) Cell {
	pos = b.Wrap(pos)
	return b.Cells[pos.Y][pos.X]
}

// Set overwrites the cell at the given position, wrapping around the edges
func (b *Board) Set(pos Position, cell Cell) {
	pos = b.Wrap(pos)
	b.Cells[pos.Y][pos.X] = cell
}

// IsValidPosition returns true if the position is within bounds
func (b *Board) IsValidPosition(pos Position) bool {
	return pos.X >= 0 && pos.X < b.Size && pos.Y >= 0 && pos.Y < b.Size
}

// Wrap maps any position onto the board
func (b *Board) Wrap(pos Position) Position {
	return Position{X: mod(pos.X, b.Size), Y: mod(pos.Y, b.Size)}
}

// ToroidalOffset moves pos by delta, wrapping on both axes
func (b *Board) ToroidalOffset(pos Position, delta Delta) Position {
	return b.Wrap(Position{X: pos.X + delta.DX, Y: pos.Y + delta.DY})
}

// SpecialTileCount returns how many special cells a board of this size
// starts with, floor(size²/10)
func SpecialTileCount(size int) int {
	return size * size / specialTileDivisor
}

// CountKind returns the number of cells of the given kind
func (b *Board) CountKind(kind CellKind) int {
	count := 0
	for y := 0; y < b.Size; y++ {
		for x := 0; x < b.Size; x++ {
			if b.Cells[y][x].Kind == kind {
				count++
			}
		}
	}
	return count
}

// GetRow returns a copy of the given row
func (b *Board) GetRow(y int) []Cell {
	if y < 0 || y >= b.Size {
		return nil
	}
	result := make([]Cell, b.Size)
	copy(result, b.Cells[y])
	return result
}

// GetCol returns a copy of the given column
func (b *Board) GetCol(x int) []Cell {
	if x < 0 || x >= b.Size {
		return nil
	}
	result := make([]Cell, b.Size)
	for y := 0; y < b.Size; y++ {
		result[y] = b.Cells[y][x]
	}
	return result
}

// Clone returns a deep copy of the board
func (b *Board) Clone() *Board {
	cells := make([][]Cell, b.Size)
	for y := range b.Cells {
		cells[y] = make([]Cell, b.Size)
		copy(cells[y], b.Cells[y])
	}
	return &Board{Size: b.Size, Start: b.Start, Cells: cells}
}

// Rows renders the grid as one string per row
func (b *Board) Rows() []string {
	rows := make([]string, b.Size)
	for y := 0; y < b.Size; y++ {
		line := make([]byte, 0, b.Size)
		for x := 0; x < b.Size; x++ {
			line = append(line, b.Cells[y][x].String()...)
		}
		rows[y] = string(line)
	}
	return rows
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
