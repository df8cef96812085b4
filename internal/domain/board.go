package domain

import "fmt"

// Board is a fixed-size square grid. Its size never changes after creation.
type Board struct {
	size  int
	cells []PlayerID
}

func NewBoard(size int) *Board {
	return &Board{
		size:  size,
		cells: make([]PlayerID, size*size),
	}
}

// BoardFromGrid builds a board from a row-major grid, rejecting anything that is not
// a square of valid cell values.
func BoardFromGrid(grid [][]int) (*Board, error) {
	size := len(grid)
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("%w: size %d outside [%d, %d]", ErrInvalidBoard, size, MinSize, MaxSize)
	}

	board := NewBoard(size)
	for r, row := range grid {
		if len(row) != size {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidBoard, r, len(row), size)
		}
		for c, v := range row {
			cell := PlayerID(v)
			if cell != Empty && !cell.Valid() {
				return nil, fmt.Errorf("%w: cell (%d,%d) has value %d", ErrInvalidBoard, r, c, v)
			}
			board.cells[r*size+c] = cell
		}
	}
	return board, nil
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < b.size && p.Col >= 0 && p.Col < b.size
}

// At returns the cell at p, or Empty for positions off the board.
func (b *Board) At(p Position) PlayerID {
	if !b.InBounds(p) {
		return Empty
	}
	return b.cells[p.Row*b.size+p.Col]
}

func (b *Board) IsEmpty(p Position) bool {
	return b.InBounds(p) && b.cells[p.Row*b.size+p.Col] == Empty
}

// Set writes a cell; it panics on out-of-bounds positions like a slice index would.
func (b *Board) Set(p Position, v PlayerID) {
	if !b.InBounds(p) {
		panic(fmt.Sprintf("domain: position %v outside %dx%d board", p, b.size, b.size))
	}
	b.cells[p.Row*b.size+p.Col] = v
}

func (b *Board) Center() Position {
	return Position{Row: b.size / 2, Col: b.size / 2}
}

// this creates a deep copy of the board
func (b *Board) Clone() *Board {
	clone := &Board{size: b.size, cells: make([]PlayerID, len(b.cells))}
	copy(clone.cells, b.cells)
	return clone
}

func (b *Board) StoneCount() int {
	count := 0
	for _, cell := range b.cells {
		if cell != Empty {
			count++
		}
	}
	return count
}

func (b *Board) CountOf(player PlayerID) int {
	count := 0
	for _, cell := range b.cells {
		if cell == player {
			count++
		}
	}
	return count
}

func (b *Board) IsFull() bool {
	for _, cell := range b.cells {
		if cell == Empty {
			return false
		}
	}
	return true
}

// FirstEmpty returns the first empty cell in row-major order.
func (b *Board) FirstEmpty() (Position, bool) {
	for i, cell := range b.cells {
		if cell == Empty {
			return Position{Row: i / b.size, Col: i % b.size}, true
		}
	}
	return Position{}, false
}

// Grid returns a row-major copy suitable for JSON responses.
func (b *Board) Grid() [][]int {
	grid := make([][]int, b.size)
	for r := range grid {
		grid[r] = make([]int, b.size)
		for c := range grid[r] {
			grid[r][c] = int(b.cells[r*b.size+c])
		}
	}
	return grid
}

func (b *Board) String() string {
	out := make([]byte, 0, b.size*(b.size+1))
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			switch b.cells[r*b.size+c] {
			case Player1:
				out = append(out, 'X')
			case Player2:
				out = append(out, 'O')
			default:
				out = append(out, '.')
			}
		}
		out = append(out, '\n')
	}
	return string(out)
}
