// Package ddt builds differential distribution tables of S-boxes.
package ddt

import "github.com/sboxscope/sboxscope/pkg/types"

// Row is the output-difference histogram for one input difference.
// Its counts always sum to 256.
type Row [types.Size]int

// Table is a full differential distribution table, indexed [dx][dy]
type Table [types.Size]Row

// RowFor returns, for input difference dx, how many inputs x produce each
// output difference dy = s[x] ^ s[x^dx].
func RowFor(s *types.SBox, dx byte) Row {
	var row Row
	for x := 0; x < types.Size; x++ {
		dy := s[x] ^ s[x^int(dx)]
		row[dy]++
	}
	return row
}

// Max returns the largest count in the row
func (r *Row) Max() int {
	max := 0
	for _, c := range r {
		if c > max {
			max = c
		}
	}
	return max
}

// Build returns the complete table, including the trivial row dx = 0
func Build(s *types.SBox) *Table {
	t := new(Table)
	for dx := 0; dx < types.Size; dx++ {
		t[dx] = RowFor(s, byte(dx))
	}
	return t
}

// MaxCount returns the largest entry over all nonzero input differences
func MaxCount(s *types.SBox) int {
	max := 0
	for dx := 1; dx < types.Size; dx++ {
		row := RowFor(s, byte(dx))
		if m := row.Max(); m > max {
			max = m
		}
	}
	return max
}
