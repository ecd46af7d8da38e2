/*
 * embed.go, part of dgeom.
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

package embed

import (
	"fmt"
	"math"

	v3 "github.com/eppic-team/owl-sub005/v3"
	"gonum.org/v1/gonum/mat"
)

// Embed returns the 3D coordinates that best reproduce the distances in dist,
// obtained by classical scaling: the squared distances are double-centered
// into the Gram matrix B = -1/2 J D^2 J, and the coordinates are built from
// the 3 largest eigenvalues of B and their eigenvectors. Negative eigenvalues
// are clamped to 0. The result is then scaled as requested in o.
//
// If more than NegativeTolerance of the eigenvalue mass is negative, the
// distances are far from Euclidean; the coordinates are still returned, together
// with a non-critical *DegenerateError.
func Embed(dist mat.Symmetric, o *Options) (*v3.Matrix, error) {
	if o == nil {
		return nil, &Error{message: "no options given, a scaling policy is required", deco: []string{"Embed"}, critical: true}
	}
	n := dist.SymmetricDim()
	if n < 1 {
		return nil, &Error{message: "empty distance matrix", deco: []string{"Embed"}, critical: true}
	}
	X := v3.Zeros(n)
	if n == 1 {
		return X, nil
	}
	B := gram(dist)
	var es mat.EigenSym
	if ok := es.Factorize(B, true); !ok {
		return nil, &Error{message: "eigendecomposition of the Gram matrix failed", deco: []string{"Embed"}, critical: true}
	}
	vals := es.Values(nil) //ascending order
	var vecs mat.Dense
	es.VectorsTo(&vecs)
	var neg, total float64
	for _, v := range vals {
		total += math.Abs(v)
		if v < 0 {
			neg -= v
		}
	}
	for c := 0; c < 3 && c < n; c++ {
		idx := n - 1 - c
		l := vals[idx]
		if l <= 0 {
			continue
		}
		s := math.Sqrt(l)
		for i := 0; i < n; i++ {
			X.Set(i, c, s*vecs.At(i, idx))
		}
	}
	if err := scale(X, o); err != nil {
		return nil, errDecorate(err, "Embed")
	}
	if total > 0 && neg/total > o.NegativeTolerance() {
		return X, &DegenerateError{NegativeMass: neg / total, Tolerance: o.NegativeTolerance(), deco: []string{"Embed"}}
	}
	return X, nil
}

// gram returns the double-centered matrix of squared distances, -1/2 J D^2 J,
// with J the centering operator I - 1/n 11^t.
func gram(dist mat.Symmetric) *mat.SymDense {
	n := dist.SymmetricDim()
	sq := mat.NewSymDense(n, nil)
	rows := make([]float64, n)
	var all float64
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			d := dist.At(i, j)
			d2 := d * d
			if i == j {
				d2 = 0
			}
			sq.SetSym(i, j, d2)
			rows[i] += d2
			if i != j {
				rows[j] += d2
			}
		}
	}
	for i := range rows {
		all += rows[i]
		rows[i] /= float64(n)
	}
	all /= float64(n * n)
	B := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			B.SetSym(i, j, -0.5*(sq.At(i, j)-rows[i]-rows[j]+all))
		}
	}
	return B
}

func scale(X *v3.Matrix, o *Options) error {
	n := X.NVecs()
	var f float64
	switch o.Scaling() {
	case ScaleNone:
		return nil
	case ScaleRadGyration:
		rg := X.RadGyr()
		if rg == 0 {
			return nil
		}
		f = ExpectedRadGyr(n) / rg
	case ScaleBackbone:
		if n < 2 {
			return nil
		}
		var sum float64
		for i := 0; i < n-1; i++ {
			sum += X.Distance(i, i+1)
		}
		if sum == 0 {
			return nil
		}
		f = o.Backbone() / (sum / float64(n-1))
	default:
		return &Error{message: fmt.Sprintf("unknown scaling policy %d", o.Scaling()), deco: []string{"scale"}, critical: true}
	}
	X.Scale(f)
	return nil
}
