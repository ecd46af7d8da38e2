/*
 * score.go, part of dgeom.
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
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/eppic-team/owl-sub005/contact"
	"github.com/eppic-team/owl-sub005/smooth"
	"github.com/eppic-team/owl-sub005/sparse"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// infer is smooth.Infer, but a bound set that didn't fully converge is still used.
func infer(b *sparse.Bounds, so *smooth.Options, caller string) (*smooth.Dense, error) {
	d, err := smooth.Infer(b, so)
	if err != nil {
		if e, ok := err.(Error); ok && !e.Critical() && d != nil {
			log.Printf("%s: %s", caller, err.Error())
			return d, nil
		}
		return nil, errDecorate(err, caller)
	}
	return d, nil
}

// ContactError measures how much of the contact map full is implied by the
// restraints in subset. The bounds of all pairs are inferred from subset and,
// for each pair restrained in full, the amount by which the inferred upper bound
// exceeds the restraint's upper bound is added. The sum is divided by the
// number of points. 0 means subset implies every contact of full.
// Adding true contacts to subset never increases the error.
func ContactError(subset, full *sparse.Bounds, so *smooth.Options) (float64, error) {
	if subset.Size() != full.Size() {
		return 0, &CError{msg: fmt.Sprintf("subset of %d points and full map of %d", subset.Size(), full.Size()), deco: []string{"ContactError"}}
	}
	d, err := infer(subset, so, "ContactError")
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, p := range full.Pairs() {
		ref, _ := full.Get(p.I, p.J)
		inf, _ := d.Get(p.I, p.J)
		sum += math.Max(0, inf.Upper-ref.Upper)
	}
	return sum / float64(full.Size()), nil
}

// DistanceError measures how far the bounds inferred from subset are from the
// exact distances in full: the square root of the sum of the squared excess of
// each inferred upper bound over the exact distance (pairs with a zero
// distance and upper bounds below the distance don't count), times 2/(n(n-1)).
func DistanceError(subset *sparse.Bounds, full mat.Symmetric, so *smooth.Options) (float64, error) {
	n := full.SymmetricDim()
	if subset.Size() != n {
		return 0, &CError{msg: fmt.Sprintf("subset of %d points and distance matrix of %d", subset.Size(), n), deco: []string{"DistanceError"}}
	}
	if n < 2 {
		return 0, nil
	}
	d, err := infer(subset, so, "DistanceError")
	if err != nil {
		return 0, err
	}
	var sum float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			ref := full.At(i, j)
			if ref == 0 {
				continue
			}
			inf, _ := d.Get(i, j)
			if inf.Upper > ref {
				sum += (inf.Upper - ref) * (inf.Upper - ref)
			}
		}
	}
	return 2 * math.Sqrt(sum) / float64(n*(n-1)), nil
}

// GraphBounds returns the restraints of a contact graph, with the backbone
// restraints added.
func GraphBounds(G *contact.Graph, backbone float64) (*sparse.Bounds, error) {
	b, err := G.Bounds(nil)
	if err != nil {
		return nil, errDecorate(err, "GraphBounds")
	}
	return BackboneRestraints(b, backbone)
}

// ContactErrorGraph is ContactError for two contact graphs, converted to
// restraints with GraphBounds.
func ContactErrorGraph(subset, full *contact.Graph, backbone float64, so *smooth.Options) (float64, error) {
	sb, err := GraphBounds(subset, backbone)
	if err != nil {
		return 0, errDecorate(err, "ContactErrorGraph")
	}
	fb, err := GraphBounds(full, backbone)
	if err != nil {
		return 0, errDecorate(err, "ContactErrorGraph")
	}
	e, err := ContactError(sb, fb, so)
	if err != nil {
		return 0, errDecorate(err, "ContactErrorGraph")
	}
	return e, nil
}

// RandomSubset returns a copy of full with only k of its pairs, chosen at
// random. The pairs between consecutive points are always kept and don't
// count towards k. If k is larger than the number of available pairs, all
// are kept.
func RandomSubset(full *sparse.Bounds, k int, rng *rand.Rand) (*sparse.Bounds, error) {
	ret, err := sparse.NewBounds(full.Size())
	if err != nil {
		return nil, errDecorate(err, "RandomSubset")
	}
	var pool []sparse.Pair
	for _, p := range full.Pairs() {
		if p.J == p.I+1 {
			b, _ := full.Get(p.I, p.J)
			ret.Set(p.I, p.J, b)
			continue
		}
		pool = append(pool, p)
	}
	rng.Shuffle(len(pool), func(a, b int) { pool[a], pool[b] = pool[b], pool[a] })
	if k > len(pool) {
		k = len(pool)
	}
	for _, p := range pool[:k] {
		b, _ := full.Get(p.I, p.J)
		ret.Set(p.I, p.J, b)
	}
	return ret, nil
}

// ErrorFunc scores a subset of restraints, e.g. a closure around ContactError
// or DistanceError.
type ErrorFunc func(subset *sparse.Bounds) (float64, error)

// RandomErrorStats scores runs random subsets of k pairs of full with f,
// and returns the mean score and its standard error. Run i uses the seed seed+i.
func RandomErrorStats(full *sparse.Bounds, k, runs int, seed int64, f ErrorFunc) (mean, stderr float64, err error) {
	if runs < 1 {
		return 0, 0, &CError{msg: fmt.Sprintf("invalid number of runs %d", runs), deco: []string{"RandomErrorStats"}}
	}
	scores := make([]float64, runs)
	for i := range scores {
		sub, err := RandomSubset(full, k, rand.New(rand.NewSource(seed+int64(i))))
		if err != nil {
			return 0, 0, errDecorate(err, "RandomErrorStats")
		}
		if scores[i], err = f(sub); err != nil {
			return 0, 0, errDecorate(err, fmt.Sprintf("RandomErrorStats: run %d", i))
		}
	}
	if runs == 1 {
		return scores[0], 0, nil
	}
	mean, std := stat.MeanStdDev(scores, nil)
	return mean, std / math.Sqrt(float64(runs)), nil
}
