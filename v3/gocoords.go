/*
 * gocoords.go, part of dgeom.
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

package v3

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Centroid returns the geometric center of the points in F.
func (F *Matrix) Centroid() *Matrix {
	n := F.NVecs()
	c := Zeros(1)
	for k := 0; k < 3; k++ {
		col := mat.Col(nil, k, F.Dense)
		c.Set(0, k, floats.Sum(col)/float64(n))
	}
	return c
}

// SubVec subtracts the row vector vec from every vector of F, in place.
func (F *Matrix) SubVec(vec *Matrix) {
	for i := 0; i < F.NVecs(); i++ {
		for k := 0; k < 3; k++ {
			F.Set(i, k, F.At(i, k)-vec.At(0, k))
		}
	}
}

// Center translates F so its centroid is at the origin, and returns
// the centroid it had.
func (F *Matrix) Center() *Matrix {
	c := F.Centroid()
	F.SubVec(c)
	return c
}

// RadGyr returns the radius of gyration of F, all points weighted equally.
func (F *Matrix) RadGyr() float64 {
	n := F.NVecs()
	if n == 0 {
		return 0
	}
	c := F.Centroid()
	var s float64
	for i := 0; i < n; i++ {
		for k := 0; k < 3; k++ {
			d := F.At(i, k) - c.At(0, k)
			s += d * d
		}
	}
	return math.Sqrt(s / float64(n))
}

// Distance returns the euclidean distance between the vectors i and j of F.
func (F *Matrix) Distance(i, j int) float64 {
	var s float64
	for k := 0; k < 3; k++ {
		d := F.At(i, k) - F.At(j, k)
		s += d * d
	}
	return math.Sqrt(s)
}

// DistanceMatrix returns the symmetric matrix of all pairwise distances in F.
func (F *Matrix) DistanceMatrix() *mat.SymDense {
	n := F.NVecs()
	D := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			D.SetSym(i, j, F.Distance(i, j))
		}
	}
	return D
}

// Mirror returns the mirror image of F, obtained by inverting the sign
// of the x coordinates.
func (F *Matrix) Mirror() *Matrix {
	M := F.Copy()
	for i := 0; i < M.NVecs(); i++ {
		M.Set(i, 0, -M.At(i, 0))
	}
	return M
}

// Scale multiplies all coordinates of F by f, in place.
func (F *Matrix) Scale(f float64) {
	F.Dense.Scale(f, F.Dense)
}

// Super returns a copy of test optimally superimposed onto ref, using the
// Kabsch algorithm. The determinant correction ensures a proper rotation,
// so a mirror image is never produced.
func Super(ref, test *Matrix) (*Matrix, error) {
	if ref.NVecs() != test.NVecs() {
		return nil, &Error{fmt.Sprintf("%s: %d and %d points", ErrShape, ref.NVecs(), test.NVecs()), []string{"Super"}, true}
	}
	if ref.NVecs() < 3 {
		return nil, &Error{string(ErrTooFewPoints), []string{"Super"}, true}
	}
	r := ref.Copy()
	rc := r.Center()
	t := test.Copy()
	t.Center()
	var H mat.Dense
	H.Mul(t.T(), r)
	var svd mat.SVD
	if ok := svd.Factorize(&H, mat.SVDThin); !ok {
		return nil, &Error{string(ErrSVD), []string{"Super"}, true}
	}
	var U, V mat.Dense
	svd.UTo(&U)
	svd.VTo(&V)
	var VUt mat.Dense
	VUt.Mul(&V, U.T())
	D := mat.NewDiagDense(3, []float64{1, 1, 1})
	if mat.Det(&VUt) < 0 {
		D.SetDiag(2, -1)
	}
	//rows are transformed as x' = x U D V^T
	var rot, UD mat.Dense
	UD.Mul(&U, D)
	rot.Mul(&UD, V.T())
	ret := Zeros(t.NVecs())
	ret.Mul(t, &rot)
	ret.SubVec(rc.negated())
	return ret, nil
}

func (F *Matrix) negated() *Matrix {
	M := F.Copy()
	M.Scale(-1)
	return M
}

// RMSD returns the root mean square deviation between ref and test after
// optimal superposition.
func RMSD(ref, test *Matrix) (float64, error) {
	s, err := Super(ref, test)
	if err != nil {
		return 0, errDecorate(err, "RMSD")
	}
	return rawRMSD(ref, s), nil
}

func rawRMSD(a, b *Matrix) float64 {
	var s float64
	n := a.NVecs()
	for i := 0; i < n; i++ {
		for k := 0; k < 3; k++ {
			d := a.At(i, k) - b.At(i, k)
			s += d * d
		}
	}
	return math.Sqrt(s / float64(n))
}

// DistanceRMSD returns the root mean square deviation between the pairwise
// distances of a and b. It is invariant to rotations, translations and
// reflections.
func DistanceRMSD(a, b *Matrix) (float64, error) {
	n := a.NVecs()
	if n != b.NVecs() {
		return 0, &Error{string(ErrShape), []string{"DistanceRMSD"}, true}
	}
	if n < 2 {
		return 0, nil
	}
	var s float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := a.Distance(i, j) - b.Distance(i, j)
			s += d * d
		}
	}
	return math.Sqrt(2 * s / float64(n*(n-1))), nil
}
