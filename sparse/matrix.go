/*
 * matrix.go, part of dgeom.
 *
 * Copyright 2024 The owl dgeom authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package sparse

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a general sparse matrix of float64. Absent entries are zero,
// and setting an entry to zero removes it.
// The row and column indexes are updated on every mutation, so they can
// be queried at any time.
type Matrix struct {
	r, c int
	rows map[int]map[int]float64 //row -> col -> value
	cols map[int]map[int]struct{}
	nnz  int
}

// Entry is one stored element of a Matrix.
type Entry struct {
	I, J  int
	Value float64
}

// NewMatrix returns an empty r x c Matrix.
func NewMatrix(r, c int) (*Matrix, error) {
	if r <= 0 || c <= 0 {
		return nil, newError(ErrShape, "NewMatrix", "invalid dimensions %dx%d", r, c)
	}
	return newMatrix(r, c), nil
}

func newMatrix(r, c int) *Matrix {
	return &Matrix{r: r, c: c, rows: make(map[int]map[int]float64), cols: make(map[int]map[int]struct{})}
}

// Identity returns an n x n identity matrix.
func Identity(n int) (*Matrix, error) {
	M, err := NewMatrix(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		M.set(i, i, 1)
	}
	return M, nil
}

// FromDense builds a Matrix with the non-zero elements of A.
func FromDense(A mat.Matrix) (*Matrix, error) {
	r, c := A.Dims()
	M, err := NewMatrix(r, c)
	if err != nil {
		return nil, err
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := A.At(i, j); v != 0 {
				M.set(i, j, v)
			}
		}
	}
	return M, nil
}

// Dims returns the number of rows and columns of the matrix.
func (M *Matrix) Dims() (int, int) {
	return M.r, M.c
}

// NNZ returns the number of stored (non-zero) entries.
func (M *Matrix) NNZ() int {
	return M.nnz
}

func (M *Matrix) inRange(i, j int) bool {
	return i >= 0 && j >= 0 && i < M.r && j < M.c
}

// Get returns the value at i,j and whether it is stored.
func (M *Matrix) Get(i, j int) (float64, bool, error) {
	if !M.inRange(i, j) {
		return 0, false, newError(ErrIndexOutOfRange, "Get", "(%d,%d) in a %dx%d matrix", i, j, M.r, M.c)
	}
	v, ok := M.rows[i][j]
	return v, ok, nil
}

// At returns the value at i,j, zero if absent. It panics if the indexes
// are out of range, like the gonum matrices do.
func (M *Matrix) At(i, j int) float64 {
	if !M.inRange(i, j) {
		panic(ErrIndexOutOfRange)
	}
	return M.rows[i][j]
}

// Set puts v at i,j. A zero v deletes the entry.
func (M *Matrix) Set(i, j int, v float64) error {
	if !M.inRange(i, j) {
		return newError(ErrIndexOutOfRange, "Set", "(%d,%d) in a %dx%d matrix", i, j, M.r, M.c)
	}
	M.set(i, j, v)
	return nil
}

// SetSym puts v both at i,j and at j,i. The matrix must be square.
func (M *Matrix) SetSym(i, j int, v float64) error {
	if M.r != M.c {
		return newError(ErrNotSquare, "SetSym", "%dx%d", M.r, M.c)
	}
	if err := M.Set(i, j, v); err != nil {
		err.(*Error).Decorate("SetSym")
		return err
	}
	M.set(j, i, v)
	return nil
}

// Delete removes the entry at i,j, if present.
func (M *Matrix) Delete(i, j int) error {
	return M.Set(i, j, 0)
}

func (M *Matrix) set(i, j int, v float64) {
	row, ok := M.rows[i]
	if v == 0 {
		if !ok {
			return
		}
		if _, stored := row[j]; !stored {
			return
		}
		delete(row, j)
		if len(row) == 0 {
			delete(M.rows, i)
		}
		delete(M.cols[j], i)
		if len(M.cols[j]) == 0 {
			delete(M.cols, j)
		}
		M.nnz--
		return
	}
	if !ok {
		row = make(map[int]float64)
		M.rows[i] = row
	}
	if _, stored := row[j]; !stored {
		M.nnz++
		col, ok := M.cols[j]
		if !ok {
			col = make(map[int]struct{})
			M.cols[j] = col
		}
		col[i] = struct{}{}
	}
	row[j] = v
}

// RowPairs returns the sorted column indexes of the entries stored in row i.
func (M *Matrix) RowPairs(i int) []int {
	ret := make([]int, 0, len(M.rows[i]))
	for j := range M.rows[i] {
		ret = append(ret, j)
	}
	sort.Ints(ret)
	return ret
}

// ColPairs returns the sorted row indexes of the entries stored in column j.
func (M *Matrix) ColPairs(j int) []int {
	ret := make([]int, 0, len(M.cols[j]))
	for i := range M.cols[j] {
		ret = append(ret, i)
	}
	sort.Ints(ret)
	return ret
}

// Entries returns all the stored entries, sorted by row and then column.
func (M *Matrix) Entries() []Entry {
	ret := make([]Entry, 0, M.nnz)
	for i, row := range M.rows {
		for j, v := range row {
			ret = append(ret, Entry{I: i, J: j, Value: v})
		}
	}
	sort.Slice(ret, func(a, b int) bool {
		if ret[a].I != ret[b].I {
			return ret[a].I < ret[b].I
		}
		return ret[a].J < ret[b].J
	})
	return ret
}

// Copy returns an independent copy of the matrix.
func (M *Matrix) Copy() *Matrix {
	ret := newMatrix(M.r, M.c)
	for i, row := range M.rows {
		for j, v := range row {
			ret.set(i, j, v)
		}
	}
	return ret
}

// Add returns M+B.
func (M *Matrix) Add(B *Matrix) (*Matrix, error) {
	if M.r != B.r || M.c != B.c {
		return nil, newError(ErrShape, "Add", "%dx%d + %dx%d", M.r, M.c, B.r, B.c)
	}
	ret := M.Copy()
	for i, row := range B.rows {
		for j, v := range row {
			ret.set(i, j, ret.rows[i][j]+v)
		}
	}
	return ret, nil
}

// Sub returns M-B.
func (M *Matrix) Sub(B *Matrix) (*Matrix, error) {
	if M.r != B.r || M.c != B.c {
		return nil, newError(ErrShape, "Sub", "%dx%d - %dx%d", M.r, M.c, B.r, B.c)
	}
	return M.Add(B.Scale(-1))
}

// Scale returns f*M.
func (M *Matrix) Scale(f float64) *Matrix {
	ret := newMatrix(M.r, M.c)
	if f == 0 {
		return ret
	}
	for i, row := range M.rows {
		for j, v := range row {
			ret.set(i, j, f*v)
		}
	}
	return ret
}

// Mul returns the matrix product M*B. Only stored entries are visited.
func (M *Matrix) Mul(B *Matrix) (*Matrix, error) {
	if M.c != B.r {
		return nil, newError(ErrShape, "Mul", "%dx%d * %dx%d", M.r, M.c, B.r, B.c)
	}
	ret := newMatrix(M.r, B.c)
	acc := make(map[int]float64)
	for i, row := range M.rows {
		for k, v := range row {
			for j, w := range B.rows[k] {
				acc[j] += v * w
			}
		}
		for j, s := range acc {
			ret.set(i, j, s)
			delete(acc, j)
		}
	}
	return ret, nil
}

// T returns the transpose of M.
func (M *Matrix) T() *Matrix {
	ret := newMatrix(M.c, M.r)
	for i, row := range M.rows {
		for j, v := range row {
			ret.set(j, i, v)
		}
	}
	return ret
}

// Pow returns M^k for a square M and k >= 0. M^0 is the identity.
func (M *Matrix) Pow(k int) (*Matrix, error) {
	if M.r != M.c {
		return nil, newError(ErrNotSquare, "Pow", "%dx%d", M.r, M.c)
	}
	if k < 0 {
		return nil, newError(ErrNegativePower, "Pow", "%d", k)
	}
	ret, _ := Identity(M.r)
	base := M.Copy()
	var err error
	for k > 0 {
		if k&1 == 1 {
			if ret, err = ret.Mul(base); err != nil {
				return nil, err
			}
		}
		k >>= 1
		if k > 0 {
			if base, err = base.Mul(base); err != nil {
				return nil, err
			}
		}
	}
	return ret, nil
}

// NormInf returns the maximum absolute row sum over the stored entries.
func (M *Matrix) NormInf() float64 {
	var max float64
	for _, row := range M.rows {
		var s float64
		for _, v := range row {
			s += math.Abs(v)
		}
		if s > max {
			max = s
		}
	}
	return max
}

// NormFrob returns the Frobenius norm over the stored entries.
func (M *Matrix) NormFrob() float64 {
	var s float64
	for _, e := range M.Entries() {
		s += e.Value * e.Value
	}
	return math.Sqrt(s)
}

// Equals returns true if B has the same dimensions as M and
// the Frobenius norm of M-B is zero.
func (M *Matrix) Equals(B *Matrix) bool {
	d, err := M.Sub(B)
	if err != nil {
		return false
	}
	return d.NormFrob() == 0
}

// Dense returns a gonum dense copy of M.
func (M *Matrix) Dense() *mat.Dense {
	ret := mat.NewDense(M.r, M.c, nil)
	for i, row := range M.rows {
		for j, v := range row {
			ret.Set(i, j, v)
		}
	}
	return ret
}
