package domain

import "sync"

type ZobristTable struct {
	size  int
	cells []uint64
}

type zobristStore struct {
	mu     sync.Mutex
	tables map[int]*ZobristTable
}

var zobristTables = &zobristStore{tables: make(map[int]*ZobristTable)}

// GetZobrist returns the per-size table; tables are seeded from the size so hashes are
// stable across processes and can be used as shared cache keys.
func GetZobrist(size int) *ZobristTable {
	zobristTables.mu.Lock()
	defer zobristTables.mu.Unlock()
	if table, ok := zobristTables.tables[size]; ok {
		return table
	}
	rng := splitmix64{state: uint64(0x9e3779b97f4a7c15) ^ uint64(size)}
	table := &ZobristTable{size: size, cells: make([]uint64, size*size*2)}
	for i := range table.cells {
		table.cells[i] = rng.next()
	}
	zobristTables.tables[size] = table
	return table
}

func (z *ZobristTable) stone(p Position, player PlayerID) uint64 {
	idx := (p.Row*z.size + p.Col) * 2
	if player == Player2 {
		idx++
	}
	return z.cells[idx]
}

// Hash is the Zobrist hash of the stones on b.
func Hash(b *Board) uint64 {
	z := GetZobrist(b.size)
	var hash uint64
	for i, cell := range b.cells {
		if cell == Empty {
			continue
		}
		hash ^= z.stone(Position{Row: i / b.size, Col: i % b.size}, cell)
	}
	return hash
}

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
