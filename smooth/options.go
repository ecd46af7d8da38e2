/*
 * options.go, part of dgeom.
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

import "runtime"

// DistMinCA is the hard-sphere minimum distance between two alpha carbons,
// used as the lower bound of every pair with no restraint.
const DistMinCA = 2.8

// Options contains the options for the bound inference. The zero value is
// not useful, use DefaultOptions.
type Options struct {
	floor     float64
	ceiling   float64
	maxPasses int
	tolerance float64
	cpus      int
}

// DefaultOptions returns the default inference options: the CA hard-sphere
// floor, a ceiling derived from the chain length, 50 passes at most, a
// tolerance of 1e-6 and all logical CPUs.
func DefaultOptions() *Options {
	r := new(Options)
	r.floor = DistMinCA
	r.ceiling = -1 //derived from the data
	r.maxPasses = 50
	r.tolerance = 1e-6
	r.cpus = runtime.NumCPU()
	return r
}

// Floor returns the lower bound given to unrestrained pairs,
// and sets it to a new value, if given.
func (O *Options) Floor(f ...float64) float64 {
	if len(f) > 0 && f[0] >= 0 {
		O.floor = f[0]
	}
	return O.floor
}

// Ceiling returns the upper bound given to unrestrained pairs before the
// tightening, and sets it to a new value, if given. A value of 0 or less means
// the ceiling is derived from the data as (n-1)*max(largest upper bound, floor).
func (O *Options) Ceiling(c ...float64) float64 {
	if len(c) > 0 {
		O.ceiling = c[0]
	}
	return O.ceiling
}

// MaxPasses returns the maximum number of full smoothing sweeps,
// and sets it to a new value, if given.
func (O *Options) MaxPasses(n ...int) int {
	if len(n) > 0 && n[0] > 0 {
		O.maxPasses = n[0]
	}
	return O.maxPasses
}

// Tolerance returns the amount by which a lower bound can exceed its upper
// bound before the restraints are considered infeasible, and sets it to a new
// value, if given.
func (O *Options) Tolerance(t ...float64) float64 {
	if len(t) > 0 && t[0] >= 0 {
		O.tolerance = t[0]
	}
	return O.tolerance
}

// Cpus returns the number of gorutines used in each sweep,
// and sets it to a new value, if given.
func (O *Options) Cpus(n ...int) int {
	if len(n) > 0 && n[0] > 0 {
		O.cpus = n[0]
	}
	return O.cpus
}

// ceilingFor returns the ceiling to use for a set of n points whose largest
// stored upper bound is maxUpper.
func (O *Options) ceilingFor(n int, maxUpper float64) float64 {
	if O.ceiling > 0 {
		return O.ceiling
	}
	m := maxUpper
	if m < O.floor {
		m = O.floor
	}
	if n < 2 {
		return m
	}
	return float64(n-1) * m
}
