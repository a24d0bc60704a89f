// SPDX-License-Identifier: MIT

package costtable

// InitRow0 writes T[0][j] = j·gap for every column.
func (t *Table) InitRow0(p Penalties) {
	for j := 0; j < t.c; j++ {
		t.data[j] = j * p.Gap
	}
}

// InitCol0 writes T[i][0] = i·gap for rows 1..m. Row 0 belongs to InitRow0,
// so the two may run concurrently without sharing a cell.
func (t *Table) InitCol0(p Penalties) {
	for i := 1; i < t.r; i++ {
		t.data[i*t.c] = i * p.Gap
	}
}

// InitBorders fills row 0 and column 0.
func (t *Table) InitBorders(p Penalties) {
	t.InitRow0(p)
	t.InitCol0(p)
}

// FillCell computes interior cell (i, j), 1 ≤ i ≤ m, 1 ≤ j ≤ n, from its
// three predecessors (i-1, j-1), (i-1, j) and (i, j-1), which must already
// be final. It writes only (i, j).
func (t *Table) FillCell(x, y []byte, p Penalties, i, j int) {
	k := i*t.c + j
	diag := t.data[k-t.c-1]
	if x[i-1] == y[j-1] {
		t.data[k] = diag
		return
	}
	t.data[k] = min(diag+p.Mismatch, t.data[k-t.c]+p.Gap, t.data[k-1]+p.Gap)
}

// Fill builds and fills the table for x and y row by row.
// It is the reference schedule every parallel fill must reproduce.
func Fill(x, y []byte, p Penalties) (*Table, error) {
	t, err := New(len(x), len(y))
	if err != nil {
		return nil, err
	}
	t.InitBorders(p)
	for i := 1; i < t.r; i++ {
		for j := 1; j < t.c; j++ {
			t.FillCell(x, y, p, i, j)
		}
	}
	return t, nil
}

// Align fills the table sequentially and traces back the alignment.
func Align(x, y []byte, p Penalties) (int, Alignment, error) {
	if err := p.Validate(); err != nil {
		return 0, Alignment{}, err
	}
	t, err := Fill(x, y, p)
	if err != nil {
		return 0, Alignment{}, err
	}
	defer t.Release()
	a, err := Traceback(t, x, y, p)
	if err != nil {
		return 0, Alignment{}, err
	}
	return t.Penalty(), a, nil
}
