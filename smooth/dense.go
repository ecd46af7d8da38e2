/*
 * dense.go, part of dgeom.
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

package smooth

import (
	"fmt"

	"github.com/eppic-team/owl-sub005/sparse"
	"gonum.org/v1/gonum/mat"
)

// Dense is a complete bound matrix: one lower and one upper bound for every
// pair of points. The diagonal is always [0,0].
type Dense struct {
	n     int
	lower *mat.SymDense
	upper *mat.SymDense
	// raw views, (i,j) with i<=j lives at i*stride+j
	l, u   []float64
	stride int
}

// NewDense returns a Dense for n points, with all bounds set to zero.
func NewDense(n int) (*Dense, error) {
	if n <= 0 {
		return nil, &Error{kind: ErrShape, message: fmt.Sprintf("invalid size %d", n), deco: []string{"NewDense"}, critical: true}
	}
	return newDense(mat.NewSymDense(n, nil), mat.NewSymDense(n, nil)), nil
}

func newDense(lower, upper *mat.SymDense) *Dense {
	rl := lower.RawSymmetric()
	ru := upper.RawSymmetric()
	return &Dense{n: rl.N, lower: lower, upper: upper, l: rl.Data, u: ru.Data, stride: rl.Stride}
}

func (d *Dense) idx(i, j int) int {
	if i > j {
		i, j = j, i
	}
	return i*d.stride + j
}

// Size returns the number of points.
func (d *Dense) Size() int {
	return d.n
}

// Get returns the bound for the pair i,j. The second value is false for
// the diagonal and for out-of-range indexes.
func (d *Dense) Get(i, j int) (sparse.Bound, bool) {
	if i == j || i < 0 || j < 0 || i >= d.n || j >= d.n {
		return sparse.Bound{}, false
	}
	k := d.idx(i, j)
	return sparse.Bound{Lower: d.l[k], Upper: d.u[k]}, true
}

// Set sets the bound for the pair i,j.
func (d *Dense) Set(i, j int, b sparse.Bound) error {
	if i == j || i < 0 || j < 0 || i >= d.n || j >= d.n {
		return &Error{kind: ErrShape, message: fmt.Sprintf("pair (%d,%d) for size %d", i, j, d.n), deco: []string{"Set"}, critical: true}
	}
	k := d.idx(i, j)
	d.l[k] = b.Lower
	d.u[k] = b.Upper
	return nil
}

// Lower returns the symmetric matrix of lower bounds. It must not be modified.
func (d *Dense) Lower() mat.Symmetric {
	return d.lower
}

// Upper returns the symmetric matrix of upper bounds. It must not be modified.
func (d *Dense) Upper() mat.Symmetric {
	return d.upper
}

// Copy returns an independent copy of d.
func (d *Dense) Copy() *Dense {
	l := mat.NewSymDense(d.n, nil)
	l.CopySym(d.lower)
	u := mat.NewSymDense(d.n, nil)
	u.CopySym(d.upper)
	return newDense(l, u)
}

// Equal returns true if both bound matrices of d and e are identical.
func (d *Dense) Equal(e *Dense) bool {
	return mat.Equal(d.lower, e.lower) && mat.Equal(d.upper, e.upper)
}

// Sparse returns the bounds of d as a sparse bound set with every pair stored.
func (d *Dense) Sparse() (*sparse.Bounds, error) {
	ret, err := sparse.NewBounds(d.n)
	if err != nil {
		return nil, errDecorate(err, "Sparse")
	}
	for i := 0; i < d.n; i++ {
		for j := i + 1; j < d.n; j++ {
			b, _ := d.Get(i, j)
			if err := ret.Set(i, j, b); err != nil {
				return nil, errDecorate(err, "Sparse")
			}
		}
	}
	return ret, nil
}
