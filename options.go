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

package dgeom

import (
	"runtime"

	"github.com/eppic-team/owl-sub005/embed"
	"github.com/eppic-team/owl-sub005/smooth"
)

// Options contains the options for a reconstruction.
type Options struct {
	numModels    int
	metrize      bool
	metrizeRoots int
	seed         int64
	backbone     float64
	cpus         int
	strict       bool
	tolerance    float64
	resamples    int
	smooth       *smooth.Options
	embed        *embed.Options
}

// DefaultOptions returns the options for a reconstruction of 10 models by
// full metrization, embedded with the given scaling policy, with CA backbone
// restraints, seed 1, all logical CPUs and up to 5 resamples for degenerate
// embeddings.
func DefaultOptions(scaling embed.Scaling) *Options {
	r := new(Options)
	r.numModels = 10
	r.metrize = true
	r.metrizeRoots = 0
	r.seed = 1
	r.backbone = embed.BackboneCA
	r.cpus = runtime.NumCPU()
	r.tolerance = 1e-4
	r.resamples = 5
	r.smooth = smooth.DefaultOptions()
	r.embed = embed.DefaultOptions(scaling)
	return r
}

// NumModels returns the number of models to build,
// and sets it to a new value, if given.
func (O *Options) NumModels(n ...int) int {
	if len(n) > 0 && n[0] > 0 {
		O.numModels = n[0]
	}
	return O.numModels
}

// Metrize returns whether the distances are metrized (true) or sampled
// independently (false), and sets it to a new value, if given.
func (O *Options) Metrize(m ...bool) bool {
	if len(m) > 0 {
		O.metrize = m[0]
	}
	return O.metrize
}

// MetrizeRoots returns the number of root points for partial metrization,
// and sets it to a new value, if given. 0 means full metrization.
func (O *Options) MetrizeRoots(n ...int) int {
	if len(n) > 0 && n[0] >= 0 {
		O.metrizeRoots = n[0]
	}
	return O.metrizeRoots
}

// Seed returns the random seed, and sets it to a new value, if given.
// Model m is built with the seed Seed+m.
func (O *Options) Seed(s ...int64) int64 {
	if len(s) > 0 {
		O.seed = s[0]
	}
	return O.seed
}

// Backbone returns the distance between consecutive points,
// and sets it to a new value, if given. It is also used by the
// embed.ScaleBackbone policy.
func (O *Options) Backbone(b ...float64) float64 {
	if len(b) > 0 && b[0] > 0 {
		O.backbone = b[0]
		O.embed.Backbone(b[0])
	}
	return O.backbone
}

// Cpus returns the number of gorutines used to build models,
// and sets it to a new value, if given.
func (O *Options) Cpus(n ...int) int {
	if len(n) > 0 && n[0] > 0 {
		O.cpus = n[0]
	}
	return O.cpus
}

// Strict returns whether bound violations of the sampled distances are
// errors, and sets it to a new value, if given.
func (O *Options) Strict(s ...bool) bool {
	if len(s) > 0 {
		O.strict = s[0]
	}
	return O.strict
}

// Tolerance returns the tolerance used when counting bound violations,
// and sets it to a new value, if given.
func (O *Options) Tolerance(t ...float64) float64 {
	if len(t) > 0 && t[0] >= 0 {
		O.tolerance = t[0]
	}
	return O.tolerance
}

// Resamples returns how many times a sample is drawn again when its
// embedding is degenerate, and sets it to a new value, if given.
func (O *Options) Resamples(n ...int) int {
	if len(n) > 0 && n[0] >= 0 {
		O.resamples = n[0]
	}
	return O.resamples
}

// Smooth returns the bound inference options.
func (O *Options) Smooth() *smooth.Options {
	return O.smooth
}

// Embed returns the embedding options.
func (O *Options) Embed() *embed.Options {
	return O.embed
}

// Scaling returns the embedding scaling policy,
// and sets it to a new value, if given.
func (O *Options) Scaling(s ...embed.Scaling) embed.Scaling {
	return O.embed.Scaling(s...)
}
