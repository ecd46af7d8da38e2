/*
 * sample.go, part of dgeom.
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
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// SampleUniform returns a distance matrix with every distance drawn
// independently and uniformly within its bounds in d. The result respects
// every bound, but it is not guaranteed to satisfy the triangle inequality.
func SampleUniform(d *Dense, rng *rand.Rand) *mat.SymDense {
	D := mat.NewSymDense(d.n, nil)
	for i := 0; i < d.n; i++ {
		for j := i + 1; j < d.n; j++ {
			k := d.idx(i, j)
			D.SetSym(i, j, draw(rng, d.l[k], d.u[k]))
		}
	}
	return D
}

func draw(rng *rand.Rand, lower, upper float64) float64 {
	if upper <= lower {
		return lower
	}
	return lower + rng.Float64()*(upper-lower)
}
