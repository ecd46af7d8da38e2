/*
 * metrize.go, part of dgeom.
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

// Metrize returns a distance matrix sampled from the bounds in d so that the
// result satisfies the triangle inequality. The pairs are visited in a random
// order; each distance is drawn within the current bounds of its pair, fixed
// as an exact bound on a private copy of d, and the bounds of every pair whose
// triangle contains the fixed pair are tightened again before the next draw.
// d is not modified.
//
// With roots == 0 every pair is metrized. With roots > 0 only the pairs
// that include one of roots randomly chosen points are metrized, each root
// being followed by a full smoothing of the working copy, and the remaining
// distances are drawn independently within their tightened bounds (the
// partial metrization of Kuszewski, Nilges and Brunger, J Biomol NMR 1992).
// The random order is taken from rng, so a given seed always gives the same
// matrix.
//
// Metrize also returns the number of conflicts: tightenings that would have
// moved an already fixed distance, or pushed a lower bound above its upper
// bound. Conflicts are resolved in favour of the fixed distances and the
// upper bounds.
func Metrize(d *Dense, rng *rand.Rand, roots int, o *Options) (*mat.SymDense, int, error) {
	if o == nil {
		o = DefaultOptions()
	}
	n := d.n
	w := d.Copy()
	m := &metrizer{w: w, fixed: make([]bool, len(w.u)), D: mat.NewSymDense(n, nil), tol: o.Tolerance()}
	if roots <= 0 {
		pairs := make([][2]int, 0, n*(n-1)/2)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				pairs = append(pairs, [2]int{i, j})
			}
		}
		rng.Shuffle(len(pairs), func(a, b int) { pairs[a], pairs[b] = pairs[b], pairs[a] })
		for _, p := range pairs {
			m.fix(p[0], p[1], rng)
		}
		return m.D, m.conflicts, nil
	}
	if roots > n {
		roots = n
	}
	for _, r := range rng.Perm(n)[:roots] {
		for _, j := range rng.Perm(n) {
			if j == r || m.fixed[w.idx(r, j)] {
				continue
			}
			m.fix(r, j, rng)
		}
		if _, err := w.Smooth(o); err != nil {
			return nil, m.conflicts, errDecorate(err, "Metrize")
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			k := w.idx(i, j)
			if !m.fixed[k] {
				m.D.SetSym(i, j, draw(rng, w.l[k], w.u[k]))
			}
		}
	}
	return m.D, m.conflicts, nil
}

type metrizer struct {
	w         *Dense
	fixed     []bool
	D         *mat.SymDense
	tol       float64
	conflicts int
}

// fix draws the distance between a and b, stores it, and propagates it
// to the bounds of the pairs that form a triangle with a and b.
func (m *metrizer) fix(a, b int, rng *rand.Rand) {
	w := m.w
	ab := w.idx(a, b)
	x := draw(rng, w.l[ab], w.u[ab])
	w.l[ab], w.u[ab] = x, x
	m.fixed[ab] = true
	m.D.SetSym(a, b, x)
	n := w.n
	//the diagonal of the raw storage is 0, so u(i,a) with i==a is 0.
	for i := 0; i < n; i++ {
		ia, ib := w.idx(i, a), w.idx(i, b)
		for j := i + 1; j < n; j++ {
			ij := i*w.stride + j
			if ij == ab {
				continue
			}
			aj, bj := w.idx(a, j), w.idx(b, j)
			s := w.u[ia] + x + w.u[bj]
			if s2 := w.u[ib] + x + w.u[aj]; s2 < s {
				s = s2
			}
			if s >= w.u[ij] {
				continue
			}
			if m.fixed[ij] {
				if w.u[ij]-s > m.tol {
					m.conflicts++
				}
				continue
			}
			w.u[ij] = s
		}
	}
	//pairs that include a or b go first, the rest use their new lower bounds.
	for i := 0; i < n; i++ {
		if i == a || i == b {
			continue
		}
		m.relaxLower(i, a, a, b)
		m.relaxLower(i, b, a, b)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if i == a || i == b || j == a || j == b {
				continue
			}
			m.relaxLower(i, j, a, b)
		}
	}
}

// relaxLower tightens the lower bound of i,j through the intermediate points a and b.
func (m *metrizer) relaxLower(i, j, a, b int) {
	w := m.w
	ij := w.idx(i, j)
	lo := w.l[ij]
	for _, k := range [2]int{a, b} {
		if k == i || k == j {
			continue
		}
		ik, kj := w.idx(i, k), w.idx(k, j)
		if v := w.l[ik] - w.u[kj]; v > lo {
			lo = v
		}
		if v := w.l[kj] - w.u[ik]; v > lo {
			lo = v
		}
	}
	if lo <= w.l[ij] {
		return
	}
	if lo-w.u[ij] > m.tol {
		m.conflicts++
	}
	if lo > w.u[ij] {
		lo = w.u[ij]
	}
	//a fixed distance can only be contradicted, never moved.
	if !m.fixed[ij] {
		w.l[ij] = lo
	}
}
