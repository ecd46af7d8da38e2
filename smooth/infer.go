/*
 * infer.go, part of dgeom.
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
	"log"
	"math"
	"sync"

	"github.com/eppic-team/owl-sub005/sparse"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Below this many points a sweep runs in a single gorutine.
const minParallel = 64

// Infer returns the complete bound matrix implied by the restraints in b
// through the triangle inequality. Pairs with no restraint start at
// [Floor, Ceiling]. The upper bounds are first seeded with the shortest paths
// along the restraint graph, then the bounds are smoothed until a fixed point
// is reached. b is not modified.
// Infer returns an *InfeasibleError if the restraints contradict each other,
// and an error of kind ErrNotConverged (together with the partially smoothed
// bounds) if no fixed point is reached within MaxPasses sweeps.
func Infer(b *sparse.Bounds, o *Options) (*Dense, error) {
	if o == nil {
		o = DefaultOptions()
	}
	n := b.Size()
	d, err := NewDense(n)
	if err != nil {
		return nil, errDecorate(err, "Infer")
	}
	ceil := o.ceilingFor(n, b.MaxUpper())
	floor := o.Floor()
	if floor > ceil {
		floor = ceil
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			k := d.idx(i, j)
			if r, ok := b.Get(i, j); ok {
				d.l[k], d.u[k] = r.Lower, r.Upper
				continue
			}
			d.l[k], d.u[k] = floor, ceil
		}
	}
	seedUpper(d, b)
	if err := d.checkFeasible(o.Tolerance()); err != nil {
		return nil, errDecorate(err, "Infer")
	}
	if _, err := d.Smooth(o); err != nil {
		if _, ok := err.(*InfeasibleError); ok {
			return nil, errDecorate(err, "Infer")
		}
		return d, errDecorate(err, "Infer")
	}
	return d, nil
}

// restraintGraph returns the undirected graph of the restraints in b,
// weighted by their upper bounds.
func restraintGraph(b *sparse.Bounds) *simple.WeightedUndirectedGraph {
	g := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for i := 0; i < b.Size(); i++ {
		g.AddNode(simple.Node(i))
	}
	for _, p := range b.Pairs() {
		r, _ := b.Get(p.I, p.J)
		g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(p.I), simple.Node(p.J), r.Upper))
	}
	return g
}

// seedUpper lowers every upper bound in d to the length of the shortest
// path between the two points in the restraint graph.
func seedUpper(d *Dense, b *sparse.Bounds) {
	if b.Len() == 0 {
		return
	}
	g := restraintGraph(b)
	if cc := topo.ConnectedComponents(g); len(cc) > 1 {
		log.Printf("smooth: the restraints form %d disconnected groups, pairs across them will be weakly bound", len(cc))
	}
	paths := path.DijkstraAllPaths(g)
	for i := 0; i < d.n; i++ {
		for j := i + 1; j < d.n; j++ {
			w := paths.Weight(int64(i), int64(j))
			k := d.idx(i, j)
			if w < d.u[k] {
				d.u[k] = w
			}
		}
	}
}

func (d *Dense) checkFeasible(tol float64) error {
	for i := 0; i < d.n; i++ {
		for j := i + 1; j < d.n; j++ {
			k := d.idx(i, j)
			if d.l[k] > d.u[k]+tol {
				return &InfeasibleError{I: i, J: j, Lower: d.l[k], Upper: d.u[k], deco: []string{"checkFeasible"}}
			}
			if d.l[k] > d.u[k] {
				d.l[k] = d.u[k]
			}
		}
	}
	return nil
}

// Smooth tightens the bounds in d, in place, until they are consistent with the
// triangle inequality, and returns the number of sweeps performed.
// Smoothing an already smoothed matrix returns after one sweep with no change.
func (d *Dense) Smooth(o *Options) (int, error) {
	if o == nil {
		o = DefaultOptions()
	}
	for pass := 1; pass <= o.MaxPasses(); pass++ {
		changed, err := d.sweep(o.Tolerance(), o.Cpus())
		if err != nil {
			return pass, errDecorate(err, "Smooth")
		}
		if !changed {
			return pass, nil
		}
	}
	return o.MaxPasses(), &Error{kind: ErrNotConverged, deco: []string{"Smooth"}, critical: false}
}

// sweep is one pass over all triples, with k as the outer index (Floyd order).
// During the step for a given k, row and column k can't change (the diagonal is 0)
// so all the other rows can be relaxed at the same time. The gorutines
// are synchronized before moving to the next k.
func (d *Dense) sweep(tol float64, cpus int) (bool, error) {
	workers := cpus
	if d.n < minParallel || workers < 1 {
		workers = 1
	}
	changes := make([]bool, workers)
	errs := make([]*InfeasibleError, workers)
	for k := 0; k < d.n; k++ {
		if workers == 1 {
			c, err := d.relaxRows(k, 0, 1, tol)
			changes[0] = changes[0] || c
			errs[0] = err
		} else {
			var wg sync.WaitGroup
			for w := 0; w < workers; w++ {
				wg.Add(1)
				go func(w int) {
					defer wg.Done()
					c, err := d.relaxRows(k, w, workers, tol)
					changes[w] = changes[w] || c
					errs[w] = err
				}(w)
			}
			wg.Wait()
		}
		if err := firstInfeasible(errs); err != nil {
			return true, err
		}
	}
	for _, c := range changes {
		if c {
			return true, nil
		}
	}
	return false, nil
}

func firstInfeasible(errs []*InfeasibleError) error {
	var first *InfeasibleError
	for _, e := range errs {
		if e == nil {
			continue
		}
		if first == nil || e.I < first.I || (e.I == first.I && e.J < first.J) {
			first = e
		}
	}
	if first == nil {
		return nil
	}
	return first
}

// relaxRows tightens the pairs (i,j), j>i, for the rows i=start, start+step...
// through the intermediate point k. Each pair is written only by the
// gorutine that owns its lower index.
func (d *Dense) relaxRows(k, start, step int, tol float64) (bool, *InfeasibleError) {
	changed := false
	n := d.n
	for i := start; i < n; i += step {
		if i == k {
			continue
		}
		ik := d.idx(i, k)
		lik, uik := d.l[ik], d.u[ik]
		for j := i + 1; j < n; j++ {
			if j == k {
				continue
			}
			kj := d.idx(k, j)
			lkj, ukj := d.l[kj], d.u[kj]
			ij := i*d.stride + j
			if s := uik + ukj; s < d.u[ij] {
				d.u[ij] = s
				changed = true
			}
			lo := lik - ukj
			if lo2 := lkj - uik; lo2 > lo {
				lo = lo2
			}
			if lo > d.u[ij] {
				if lo-d.u[ij] > tol {
					return changed, &InfeasibleError{I: i, J: j, Lower: lo, Upper: d.u[ij], deco: []string{"sweep"}}
				}
				lo = d.u[ij]
			}
			if lo > d.l[ij] {
				d.l[ij] = lo
				changed = true
			}
			if d.l[ij] > d.u[ij] {
				if d.l[ij]-d.u[ij] > tol {
					return changed, &InfeasibleError{I: i, J: j, Lower: d.l[ij], Upper: d.u[ij], deco: []string{"sweep"}}
				}
				d.l[ij] = d.u[ij]
				changed = true
			}
		}
	}
	return changed, nil
}
