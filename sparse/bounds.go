/*
 * bounds.go, part of dgeom.
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
	"fmt"
	"sort"
)

// Bound is a feasible distance range between two points.
type Bound struct {
	Lower float64
	Upper float64
}

// Valid returns true if the bound is non-negative and Lower <= Upper.
func (b Bound) Valid() bool {
	return b.Lower >= 0 && b.Upper >= 0 && b.Lower <= b.Upper
}

// Exact returns true for degenerate bounds, i.e. observed distances.
func (b Bound) Exact() bool {
	return b.Lower == b.Upper
}

// Contains returns true if d lies within the bound, allowing tol on both ends.
func (b Bound) Contains(d, tol float64) bool {
	return d >= b.Lower-tol && d <= b.Upper+tol
}

func (b Bound) String() string {
	return fmt.Sprintf("[%5.2f, %5.2f]", b.Lower, b.Upper)
}

// Pair is an unordered index pair, stored with I < J.
type Pair struct {
	I, J int
}

// NewPair returns the Pair for i and j in canonical order.
func NewPair(i, j int) Pair {
	if i > j {
		i, j = j, i
	}
	return Pair{I: i, J: j}
}

// Bounds is a symmetric sparse map from unordered index pairs to Bound.
// It is made of three overlaid square matrices: the lower bounds, the upper
// bounds, and a mask marking which pairs are stored (a lower bound of 0 is
// legitimate, and would otherwise be indistinguishable from an absent one).
type Bounds struct {
	n     int
	lower *Matrix
	upper *Matrix
	mask  *Matrix
}

// NewBounds returns an empty bound set for a conformation of n points.
func NewBounds(n int) (*Bounds, error) {
	if n <= 0 {
		return nil, newError(ErrShape, "NewBounds", "invalid conformation size %d", n)
	}
	return &Bounds{n: n, lower: newMatrix(n, n), upper: newMatrix(n, n), mask: newMatrix(n, n)}, nil
}

// Size returns the conformation size n.
func (B *Bounds) Size() int {
	return B.n
}

// Len returns the number of stored pairs.
func (B *Bounds) Len() int {
	return B.mask.NNZ() / 2
}

func (B *Bounds) check(i, j int, caller string) error {
	if i < 0 || j < 0 || i >= B.n || j >= B.n {
		return newError(ErrIndexOutOfRange, caller, "pair (%d,%d) for size %d", i, j, B.n)
	}
	if i == j {
		return newError(ErrDiagonal, caller, "pair (%d,%d)", i, j)
	}
	return nil
}

// Set stores b for the pair i,j (and j,i).
func (B *Bounds) Set(i, j int, b Bound) error {
	if err := B.check(i, j, "Set"); err != nil {
		return err
	}
	if !b.Valid() {
		return newError(ErrBadBound, "Set", "pair (%d,%d) %v", i, j, b)
	}
	B.lower.set(i, j, b.Lower)
	B.lower.set(j, i, b.Lower)
	B.upper.set(i, j, b.Upper)
	B.upper.set(j, i, b.Upper)
	B.mask.set(i, j, 1)
	B.mask.set(j, i, 1)
	return nil
}

// Get returns the bound for i,j, and whether it is stored.
// Out-of-range or diagonal pairs are never stored.
func (B *Bounds) Get(i, j int) (Bound, bool) {
	if B.check(i, j, "Get") != nil {
		return Bound{}, false
	}
	if _, ok := B.mask.rows[i][j]; !ok {
		return Bound{}, false
	}
	return Bound{Lower: B.lower.rows[i][j], Upper: B.upper.rows[i][j]}, true
}

// Has returns true if a bound is stored for i,j.
func (B *Bounds) Has(i, j int) bool {
	_, ok := B.Get(i, j)
	return ok
}

// Delete removes the bound for i,j, if present.
func (B *Bounds) Delete(i, j int) error {
	if err := B.check(i, j, "Delete"); err != nil {
		return err
	}
	for _, M := range []*Matrix{B.lower, B.upper, B.mask} {
		M.set(i, j, 0)
		M.set(j, i, 0)
	}
	return nil
}

// Pairs returns the stored pairs, each once with I < J, sorted.
func (B *Bounds) Pairs() []Pair {
	ret := make([]Pair, 0, B.Len())
	for i, row := range B.mask.rows {
		for j := range row {
			if i < j {
				ret = append(ret, Pair{I: i, J: j})
			}
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

// Neighbors returns the sorted indexes j for which a bound i,j is stored.
func (B *Bounds) Neighbors(i int) []int {
	return B.mask.RowPairs(i)
}

// Copy returns an independent copy of the bound set.
func (B *Bounds) Copy() *Bounds {
	return &Bounds{n: B.n, lower: B.lower.Copy(), upper: B.upper.Copy(), mask: B.mask.Copy()}
}

// MaxUpper returns the largest stored upper bound, 0 if the set is empty.
func (B *Bounds) MaxUpper() float64 {
	var max float64
	for _, row := range B.upper.rows {
		for _, v := range row {
			if v > max {
				max = v
			}
		}
	}
	return max
}

// Adjacency returns the symmetric 0/1 contact matrix of the stored pairs.
func (B *Bounds) Adjacency() *Matrix {
	return B.mask.Copy()
}

// Lower returns a copy of the matrix of lower bounds.
func (B *Bounds) Lower() *Matrix {
	return B.lower.Copy()
}

// Upper returns a copy of the matrix of upper bounds.
func (B *Bounds) Upper() *Matrix {
	return B.upper.Copy()
}

func (B *Bounds) String() string {
	s := fmt.Sprintf("bounds for %d points, %d pairs\n", B.n, B.Len())
	for _, p := range B.Pairs() {
		b, _ := B.Get(p.I, p.J)
		s += fmt.Sprintf("%4d %4d %s\n", p.I, p.J, b)
	}
	return s
}
