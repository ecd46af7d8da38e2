/*
 * bench.go, part of dgeom.
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

package dgeom

import (
	v3 "github.com/eppic-team/owl-sub005/v3"
)

// BenchResult compares one model with a reference structure.
type BenchResult struct {
	Model      int
	RMSD       float64 //after optimal superposition
	MirrorRMSD float64 //of the mirror image of the model
	Mirrored   bool    //the model was replaced by its mirror image
	DRMSD      float64 //over all the pairwise distances
}

// Benchmark superimposes each model onto the reference coordinates ref and
// reports the RMSD. Distance geometry can't tell a conformation from its
// mirror image, so the mirror image of each model is also compared, and the
// model is replaced by its mirror image (in place) when that fits ref better.
func Benchmark(ref *v3.Matrix, models []*Model) ([]BenchResult, error) {
	ret := make([]BenchResult, 0, len(models))
	for _, m := range models {
		r, err := v3.RMSD(ref, m.coords)
		if err != nil {
			return nil, errDecorate(err, "Benchmark")
		}
		mirror := m.coords.Mirror()
		mr, err := v3.RMSD(ref, mirror)
		if err != nil {
			return nil, errDecorate(err, "Benchmark")
		}
		dr, err := v3.DistanceRMSD(ref, m.coords)
		if err != nil {
			return nil, errDecorate(err, "Benchmark")
		}
		res := BenchResult{Model: m.Index, RMSD: r, MirrorRMSD: mr, DRMSD: dr}
		if mr < r {
			m.coords = mirror
			res.Mirrored = true
		}
		ret = append(ret, res)
	}
	return ret, nil
}

// Best returns the result with the lowest RMSD (considering the mirror
// images), or -1 if results is empty.
func Best(results []BenchResult) int {
	best := -1
	var min float64
	for i, r := range results {
		v := r.RMSD
		if r.MirrorRMSD < v {
			v = r.MirrorRMSD
		}
		if best < 0 || v < min {
			best, min = i, v
		}
	}
	return best
}
