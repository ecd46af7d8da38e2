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

package embed

import "math"

// Scaling is the policy used to fix the scale of an embedding.
type Scaling int

const (
	// ScaleRadGyration scales the embedding so its radius of gyration is
	// the one expected for a globular protein of that length, RadGyrPrefactor*n^RadGyrExponent.
	ScaleRadGyration Scaling = iota
	// ScaleBackbone scales the embedding so that the average distance between
	// consecutive points is the backbone spacing.
	ScaleBackbone
	// ScaleNone leaves the embedding as obtained from the distances.
	ScaleNone
)

func (s Scaling) String() string {
	switch s {
	case ScaleRadGyration:
		return "radgyr"
	case ScaleBackbone:
		return "backbone"
	case ScaleNone:
		return "none"
	}
	return "unknown"
}

// ParseScaling returns the Scaling named by s, as printed by Scaling.String.
// "rg" is also accepted for ScaleRadGyration.
func ParseScaling(s string) (Scaling, error) {
	if s == "rg" {
		return ScaleRadGyration, nil
	}
	for _, v := range []Scaling{ScaleRadGyration, ScaleBackbone, ScaleNone} {
		if v.String() == s {
			return v, nil
		}
	}
	return ScaleNone, &Error{message: "unknown scaling policy " + s, deco: []string{"ParseScaling"}, critical: true}
}

const (
	// BackboneCA is the distance between consecutive alpha carbons, in A.
	BackboneCA      = 3.8
	RadGyrPrefactor = 2.2
	RadGyrExponent  = 0.38
)

// ExpectedRadGyr returns the radius of gyration expected for a compact chain of n residues.
func ExpectedRadGyr(n int) float64 {
	return RadGyrPrefactor * math.Pow(float64(n), RadGyrExponent)
}

// Options contains the options for the embedding.
type Options struct {
	scaling           Scaling
	backbone          float64
	negativeTolerance float64
}

// DefaultOptions returns options with the given scaling policy, the CA
// backbone spacing and a 5% tolerance for negative eigenvalue mass.
// There is no default scaling policy, it has to be chosen by the caller.
func DefaultOptions(s Scaling) *Options {
	r := new(Options)
	r.scaling = s
	r.backbone = BackboneCA
	r.negativeTolerance = 0.05
	return r
}

// Scaling returns the scaling policy, and sets it to a new value, if given.
func (O *Options) Scaling(s ...Scaling) Scaling {
	if len(s) > 0 {
		O.scaling = s[0]
	}
	return O.scaling
}

// Backbone returns the spacing between consecutive points used by ScaleBackbone,
// and sets it to a new value, if given.
func (O *Options) Backbone(b ...float64) float64 {
	if len(b) > 0 && b[0] > 0 {
		O.backbone = b[0]
	}
	return O.backbone
}

// NegativeTolerance returns the largest fraction of the eigenvalue mass that
// can be negative before an embedding is reported as degenerate, and sets it
// to a new value, if given.
func (O *Options) NegativeTolerance(t ...float64) float64 {
	if len(t) > 0 && t[0] >= 0 {
		O.negativeTolerance = t[0]
	}
	return O.negativeTolerance
}
