/*
 * score_test.go, part of dgeom.
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
	"math/rand"
	"testing"

	"github.com/eppic-team/owl-sub005/contact"
	"github.com/eppic-team/owl-sub005/embed"
	"github.com/eppic-team/owl-sub005/smooth"
	"github.com/eppic-team/owl-sub005/sparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backboneOnly returns the consecutive pairs of b, plus the first extra
// non-consecutive pairs.
func backboneOnly(Te *testing.T, b *sparse.Bounds, extra int) *sparse.Bounds {
	ret, err := sparse.NewBounds(b.Size())
	require.NoError(Te, err)
	for _, p := range b.Pairs() {
		if p.J != p.I+1 {
			if extra <= 0 {
				continue
			}
			extra--
		}
		bb, _ := b.Get(p.I, p.J)
		require.NoError(Te, ret.Set(p.I, p.J, bb))
	}
	return ret
}

func TestContactError(Te *testing.T) {
	full, _ := helixRestraints(Te, 16)
	so := smooth.DefaultOptions()
	e, err := ContactError(full, full, so)
	require.NoError(Te, err)
	assert.InDelta(Te, 0, e, 1e-9)
	prev := -1.0
	//adding true contacts never increases the error
	for _, k := range []int{40, 20, 10, 5, 0} {
		e, err := ContactError(backboneOnly(Te, full, k), full, so)
		require.NoError(Te, err)
		if prev >= 0 {
			assert.GreaterOrEqual(Te, e, prev-1e-9, "%d extra contacts", k)
		}
		prev = e
	}
	assert.Greater(Te, prev, 0.0)
	small, err := sparse.NewBounds(3)
	require.NoError(Te, err)
	_, err = ContactError(small, full, so)
	assert.Error(Te, err)
}

func TestContactErrorGraph(Te *testing.T) {
	X := helix(Te, 10)
	full, err := contact.FromCoords(X, "AAAAAAAAAA", "Ca", 8)
	require.NoError(Te, err)
	sub, err := full.Sub(full.Contacts()[:6])
	require.NoError(Te, err)
	e, err := ContactErrorGraph(full, full, embed.BackboneCA, smooth.DefaultOptions())
	require.NoError(Te, err)
	assert.InDelta(Te, 0, e, 1e-9)
	es, err := ContactErrorGraph(sub, full, embed.BackboneCA, smooth.DefaultOptions())
	require.NoError(Te, err)
	assert.GreaterOrEqual(Te, es, e)
}

func TestDistanceError(Te *testing.T) {
	D := helix(Te, 12).DistanceMatrix()
	exact, err := contact.ExactBounds(D)
	require.NoError(Te, err)
	so := smooth.DefaultOptions()
	e, err := DistanceError(exact, D, so)
	require.NoError(Te, err)
	assert.InDelta(Te, 0, e, 1e-6)
	bb := backboneOnly(Te, exact, 0)
	e2, err := DistanceError(bb, D, so)
	require.NoError(Te, err)
	assert.Greater(Te, e2, e)
	small, err := sparse.NewBounds(3)
	require.NoError(Te, err)
	_, err = DistanceError(small, D, so)
	assert.Error(Te, err)
}

func TestRandomSubset(Te *testing.T) {
	full, _ := helixRestraints(Te, 16)
	sub, err := RandomSubset(full, 7, rand.New(rand.NewSource(3)))
	require.NoError(Te, err)
	assert.Equal(Te, 15+7, sub.Len())
	for i := 0; i < 15; i++ {
		assert.True(Te, sub.Has(i, i+1))
	}
	for _, p := range sub.Pairs() {
		assert.True(Te, full.Has(p.I, p.J))
	}
	all, err := RandomSubset(full, full.Len()*2, rand.New(rand.NewSource(3)))
	require.NoError(Te, err)
	assert.Equal(Te, full.Len(), all.Len())
}

func TestRandomErrorStats(Te *testing.T) {
	full, _ := helixRestraints(Te, 14)
	so := smooth.DefaultOptions()
	f := func(sub *sparse.Bounds) (float64, error) {
		return ContactError(sub, full, so)
	}
	mean, stderr, err := RandomErrorStats(full, 8, 5, 11, f)
	require.NoError(Te, err)
	assert.Greater(Te, mean, 0.0)
	assert.GreaterOrEqual(Te, stderr, 0.0)
	mean2, stderr2, err := RandomErrorStats(full, 8, 5, 11, f)
	require.NoError(Te, err)
	assert.Equal(Te, mean, mean2)
	assert.Equal(Te, stderr, stderr2)
	allMean, _, err := RandomErrorStats(full, full.Len(), 2, 11, f)
	require.NoError(Te, err)
	assert.InDelta(Te, 0, allMean, 1e-9)
	_, _, err = RandomErrorStats(full, 8, 0, 11, f)
	assert.Error(Te, err)
}
