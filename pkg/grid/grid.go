package grid

import (
	"encoding/json"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Grid is a dense 2D array of float64 in row-major order. Rows index the RPM
// sweep and columns the current sweep throughout this module.
type Grid struct {
	Rows, Cols int
	Data       []float64
}

func New(rows, cols int) *Grid {
	return &Grid{Rows: rows, Cols: cols, Data: make([]float64, rows*cols)}
}

// Full returns a grid with every element set to v.
func Full(rows, cols int, v float64) *Grid {
	g := New(rows, cols)
	for i := range g.Data {
		g.Data[i] = v
	}
	return g
}

func (g *Grid) At(r, c int) float64     { return g.Data[r*g.Cols+c] }
func (g *Grid) Set(r, c int, v float64) { g.Data[r*g.Cols+c] = v }

func (g *Grid) Clone() *Grid {
	out := New(g.Rows, g.Cols)
	copy(out.Data, g.Data)
	return out
}

// SameShape reports whether g and h have identical dimensions.
func (g *Grid) SameShape(h *Grid) bool {
	return g.Rows == h.Rows && g.Cols == h.Cols
}

func (g *Grid) Max() float64 { return floats.Max(g.Data) }

// Linspace returns n evenly spaced values over [start, stop], endpoints
// included.
func Linspace(start, stop float64, n int) []float64 {
	if n == 1 {
		return []float64{start}
	}
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

// Meshgrid builds the Cartesian product of a column sweep xs and a row sweep
// ys: X[r,c] = xs[c] and Y[r,c] = ys[r].
func Meshgrid(xs, ys []float64) (X, Y *Grid) {
	X = New(len(ys), len(xs))
	Y = New(len(ys), len(xs))
	for r := range ys {
		for c := range xs {
			X.Set(r, c, xs[c])
			Y.Set(r, c, ys[r])
		}
	}
	return X, Y
}

// SplitRows partitions g into n contiguous row blocks. Blocks share g's
// backing storage; earlier blocks get the remainder rows, matching an even
// split as closely as possible. Fewer than n blocks are returned when g has
// fewer than n rows.
func SplitRows(g *Grid, n int) []*Grid {
	if n > g.Rows {
		n = g.Rows
	}
	if n < 1 {
		n = 1
	}
	parts := make([]*Grid, 0, n)
	base, rem := g.Rows/n, g.Rows%n
	row := 0
	for i := 0; i < n; i++ {
		rows := base
		if i < rem {
			rows++
		}
		parts = append(parts, &Grid{
			Rows: rows,
			Cols: g.Cols,
			Data: g.Data[row*g.Cols : (row+rows)*g.Cols],
		})
		row += rows
	}
	return parts
}

// ConcatRows stitches row blocks back together in order. All blocks must have
// the same column count.
func ConcatRows(parts []*Grid) (*Grid, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("concat: no blocks")
	}
	cols := parts[0].Cols
	rows := 0
	for _, p := range parts {
		if p.Cols != cols {
			return nil, fmt.Errorf("concat: column mismatch %d != %d", p.Cols, cols)
		}
		rows += p.Rows
	}
	out := New(rows, cols)
	off := 0
	for _, p := range parts {
		copy(out.Data[off:], p.Data)
		off += len(p.Data)
	}
	return out, nil
}

// MarshalJSON encodes the grid as a nested list of rows, the array format the
// results document uses.
func (g *Grid) MarshalJSON() ([]byte, error) {
	rows := make([][]float64, g.Rows)
	for r := 0; r < g.Rows; r++ {
		rows[r] = g.Data[r*g.Cols : (r+1)*g.Cols]
	}
	return json.Marshal(rows)
}

func (g *Grid) UnmarshalJSON(b []byte) error {
	var rows [][]float64
	if err := json.Unmarshal(b, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		*g = Grid{}
		return nil
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return fmt.Errorf("grid row %d: ragged length %d != %d", i, len(row), cols)
		}
		data = append(data, row...)
	}
	*g = Grid{Rows: len(rows), Cols: cols, Data: data}
	return nil
}
