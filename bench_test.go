/*
 * bench_test.go, part of dgeom.
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
	"testing"

	v3 "github.com/eppic-team/owl-sub005/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// moved returns A rotated 90 degrees around z and shifted.
func moved(Te *testing.T, A *v3.Matrix) *v3.Matrix {
	data := make([]float64, 0, 3*A.NVecs())
	for i := 0; i < A.NVecs(); i++ {
		data = append(data, -A.At(i, 1)+4, A.At(i, 0)-2, A.At(i, 2)+1)
	}
	B, err := v3.NewMatrix(data)
	require.NoError(Te, err)
	return B
}

func TestBenchmark(Te *testing.T) {
	ref := helix(Te, 10)
	mirrored := &Model{Index: 0, coords: moved(Te, ref.Mirror())}
	noisy := moved(Te, ref)
	noisy.Set(3, 0, noisy.At(3, 0)+0.5)
	plain := &Model{Index: 1, coords: noisy}
	res, err := Benchmark(ref, []*Model{mirrored, plain})
	require.NoError(Te, err)
	require.Len(Te, res, 2)
	assert.True(Te, res[0].Mirrored)
	assert.InDelta(Te, 0, res[0].MirrorRMSD, 1e-6)
	assert.Greater(Te, res[0].RMSD, 0.5)
	assert.InDelta(Te, 0, res[0].DRMSD, 1e-6)
	r, err := v3.RMSD(ref, mirrored.Coords())
	require.NoError(Te, err)
	assert.InDelta(Te, 0, r, 1e-6, "the model was replaced by its mirror image")
	assert.False(Te, res[1].Mirrored)
	assert.Greater(Te, res[1].RMSD, 0.0)
	assert.Equal(Te, 0, Best(res))
	assert.Equal(Te, -1, Best(nil))
	_, err = Benchmark(helix(Te, 4), []*Model{plain})
	assert.Error(Te, err)
}
