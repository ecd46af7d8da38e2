/*
 * reconstruct.go, part of dgeom.
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
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"

	"github.com/eppic-team/owl-sub005/embed"
	"github.com/eppic-team/owl-sub005/smooth"
	"github.com/eppic-team/owl-sub005/sparse"
	v3 "github.com/eppic-team/owl-sub005/v3"
	"gonum.org/v1/gonum/mat"
)

// Violations counts the distances below their lower bound and above
// their upper bound.
type Violations struct {
	Lower int
	Upper int
}

// Total returns the number of violated bounds.
func (V Violations) Total() int {
	return V.Lower + V.Upper
}

func (V Violations) String() string {
	return fmt.Sprintf("%d lower/%d upper", V.Lower, V.Upper)
}

// Model is one reconstructed conformation.
type Model struct {
	Index     int
	coords    *v3.Matrix
	Distances *mat.SymDense //the sampled (or metrized) distances that were embedded

	Sampled          Violations //sampled distances vs. the restraints
	SampledInferred  Violations //sampled distances vs. the inferred bounds
	Embedded         Violations //embedded coordinates vs. the restraints
	EmbeddedInferred Violations //embedded coordinates vs. the inferred bounds

	Conflicts int   //metrization conflicts, see smooth.Metrize
	Attempts  int   //samples drawn, more than 1 if the embedding was degenerate
	Warning   error //non-critical problems, such as a degenerate embedding
}

// Coords returns the coordinates of the model.
func (M *Model) Coords() *v3.Matrix {
	return M.coords
}

// BackboneRestraints returns a copy of b with the exact bound [spacing, spacing]
// set for every pair of consecutive points, replacing any restraint stored there.
func BackboneRestraints(b *sparse.Bounds, spacing float64) (*sparse.Bounds, error) {
	ret := b.Copy()
	for i := 0; i < ret.Size()-1; i++ {
		if err := ret.Set(i, i+1, sparse.Bound{Lower: spacing, Upper: spacing}); err != nil {
			return nil, errDecorate(err, "BackboneRestraints")
		}
	}
	return ret, nil
}

// Reconstruct builds o.NumModels() conformations that satisfy the restraints r.
// The backbone restraints are added to a copy of r (r is never modified), the
// bounds for all pairs are inferred once, and then each model is sampled
// (or metrized) from the inferred bounds and embedded in 3D. Models are built
// concurrently, each with its own random source seeded with o.Seed()+index, so
// the result depends only on the options, not on the scheduling.
// The models are returned in index order.
func Reconstruct(r *sparse.Bounds, o *Options) ([]*Model, error) {
	if o == nil {
		return nil, &CError{msg: "no options given, a scaling policy is required", deco: []string{"Reconstruct"}}
	}
	b, err := BackboneRestraints(r, o.Backbone())
	if err != nil {
		return nil, errDecorate(err, "Reconstruct")
	}
	d, err := smooth.Infer(b, o.Smooth())
	if err != nil {
		if e, ok := err.(Error); ok && !e.Critical() && d != nil {
			log.Printf("Reconstruct: %s. Will use the bounds as they are", err.Error())
		} else {
			return nil, errDecorate(err, "Reconstruct")
		}
	}
	return ReconstructFrom(b, d, o)
}

type modelResult struct {
	model *Model
	err   error
}

// ReconstructFrom builds models from bounds that were already inferred.
// b are the restraints the models are checked against, and d the complete
// bounds inferred from them. Neither is modified.
func ReconstructFrom(b *sparse.Bounds, d *smooth.Dense, o *Options) ([]*Model, error) {
	if o == nil {
		return nil, &CError{msg: "no options given, a scaling policy is required", deco: []string{"ReconstructFrom"}}
	}
	if b.Size() != d.Size() {
		return nil, &CError{msg: fmt.Sprintf("restraints for %d points and bounds for %d", b.Size(), d.Size()), deco: []string{"ReconstructFrom"}}
	}
	n := o.NumModels()
	workers := o.Cpus()
	if workers > n {
		workers = n
	}
	jobs := make(chan int)
	results := make(chan *modelResult)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for m := range jobs {
				model, err := buildModel(m, b, d, o)
				results <- &modelResult{model: model, err: err}
			}
		}()
	}
	go func() {
		for m := 0; m < n; m++ {
			jobs <- m
		}
		close(jobs)
	}()
	go func() {
		wg.Wait()
		close(results)
	}()
	models := make([]*Model, n)
	var reterr error
	errIndex := n
	for res := range results {
		if res.err != nil {
			//we keep the error of the lowest model, so the result doesn't depend on scheduling
			if ve, ok := res.err.(*ViolationError); ok && ve.Model < errIndex {
				errIndex = ve.Model
				reterr = res.err
			} else if me, ok := res.err.(*modelError); ok && me.model < errIndex {
				errIndex = me.model
				reterr = me.err
			}
			continue
		}
		models[res.model.Index] = res.model
	}
	if reterr != nil {
		return nil, errDecorate(reterr, "ReconstructFrom")
	}
	return models, nil
}

// modelError carries the index of the model that failed.
type modelError struct {
	model int
	err   error
}

func (e *modelError) Error() string { return e.err.Error() }

// buildModel samples or metrizes one distance matrix from d and embeds it.
// A sample whose embedding is degenerate is drawn again, up to o.Resamples()
// times, and the least degenerate one is kept.
func buildModel(m int, b *sparse.Bounds, d *smooth.Dense, o *Options) (*Model, error) {
	rng := rand.New(rand.NewSource(o.Seed() + int64(m)))
	var best *Model
	var bestMass float64
	for attempt := 0; attempt <= o.Resamples(); attempt++ {
		model, err := sampleModel(m, rng, b, d, o)
		if err != nil {
			return nil, err
		}
		model.Attempts = attempt + 1
		var de *embed.DegenerateError
		if !errors.As(model.Warning, &de) {
			return model, nil
		}
		if best == nil || de.NegativeMass < bestMass {
			best, bestMass = model, de.NegativeMass
		}
		best.Attempts = attempt + 1
	}
	log.Printf("buildModel: model %d: %s", m, best.Warning.Error())
	return best, nil
}

// sampleModel does one sampling (or metrization) and embedding for the model m.
func sampleModel(m int, rng *rand.Rand, b *sparse.Bounds, d *smooth.Dense, o *Options) (*Model, error) {
	model := &Model{Index: m}
	var err error
	if o.Metrize() {
		model.Distances, model.Conflicts, err = smooth.Metrize(d, rng, o.MetrizeRoots(), o.Smooth())
		if err != nil {
			return nil, &modelError{model: m, err: errDecorate(err, fmt.Sprintf("buildModel: model %d", m))}
		}
	} else {
		model.Distances = smooth.SampleUniform(d, rng)
	}
	tol := o.Tolerance()
	model.Sampled.Lower, model.Sampled.Upper = smooth.Violations(model.Distances, b, tol)
	model.SampledInferred.Lower, model.SampledInferred.Upper = smooth.Violations(model.Distances, d, tol)
	if o.Strict() {
		if model.Sampled.Total() > 0 {
			return nil, &ViolationError{Model: m, Lower: model.Sampled.Lower, Upper: model.Sampled.Upper, Against: "restraints", deco: []string{"buildModel"}}
		}
		if model.SampledInferred.Total() > 0 {
			return nil, &ViolationError{Model: m, Lower: model.SampledInferred.Lower, Upper: model.SampledInferred.Upper, Against: "inferred bounds", deco: []string{"buildModel"}}
		}
	}
	X, err := embed.Embed(model.Distances, o.Embed())
	if err != nil {
		if e, ok := err.(Error); ok && !e.Critical() && X != nil {
			model.Warning = err
		} else {
			return nil, &modelError{model: m, err: errDecorate(err, fmt.Sprintf("buildModel: model %d", m))}
		}
	}
	model.coords = X
	emb := X.DistanceMatrix()
	model.Embedded.Lower, model.Embedded.Upper = smooth.Violations(emb, b, tol)
	model.EmbeddedInferred.Lower, model.EmbeddedInferred.Upper = smooth.Violations(emb, d, tol)
	return model, nil
}
