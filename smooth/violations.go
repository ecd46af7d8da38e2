/*
 * violations.go, part of dgeom.
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
	"github.com/eppic-team/owl-sub005/sparse"
	"gonum.org/v1/gonum/mat"
)

// Boundser is a set of distance bounds over a conformation. Both
// *sparse.Bounds and *Dense implement it.
type Boundser interface {
	Size() int
	Get(i, j int) (sparse.Bound, bool)
}

// Violations counts the pairs whose distance in dist falls below their
// lower bound or above their upper bound in b, by more than tol.
// Pairs with no bound in b are not counted.
func Violations(dist mat.Symmetric, b Boundser, tol float64) (lower, upper int) {
	n := dist.SymmetricDim()
	if b.Size() < n {
		n = b.Size()
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r, ok := b.Get(i, j)
			if !ok {
				continue
			}
			d := dist.At(i, j)
			if d < r.Lower-tol {
				lower++
			} else if d > r.Upper+tol {
				upper++
			}
		}
	}
	return lower, upper
}

// CheckTriangle returns a *TriangleError for the first triple in d whose
// bounds violate the triangle inequality by more than tol, or nil.
// Smoothed bounds always pass.
func CheckTriangle(d *Dense, tol float64) error {
	n := d.n
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			ij := d.idx(i, j)
			for k := 0; k < n; k++ {
				if k == i || k == j {
					continue
				}
				ik, kj := d.idx(i, k), d.idx(k, j)
				if d.u[ij] > d.u[ik]+d.u[kj]+tol {
					return &TriangleError{I: i, J: j, K: k, Upper: true, deco: []string{"CheckTriangle"}}
				}
				if d.l[ij] < d.l[ik]-d.u[kj]-tol || d.l[ij] < d.l[kj]-d.u[ik]-tol {
					return &TriangleError{I: i, J: j, K: k, Upper: false, deco: []string{"CheckTriangle"}}
				}
			}
		}
	}
	return nil
}

// DistancesFromSym returns the exact bounds of a distance matrix: every
// pair is stored as [d,d].
func DistancesFromSym(dist mat.Symmetric) *Dense {
	n := dist.SymmetricDim()
	l := mat.NewSymDense(n, nil)
	l.CopySym(dist)
	u := mat.NewSymDense(n, nil)
	u.CopySym(dist)
	return newDense(l, u)
}
