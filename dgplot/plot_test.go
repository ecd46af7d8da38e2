/*
 * plot_test.go, part of dgeom.
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

package dgplot

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/eppic-team/owl-sub005/smooth"
	"github.com/eppic-team/owl-sub005/sparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func chainBounds(Te *testing.T, n int) (*smooth.Dense, *mat.SymDense) {
	b, err := sparse.NewBounds(n)
	require.NoError(Te, err)
	D := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			D.SetSym(i, j, 3.8*float64(j-i))
		}
	}
	for i := 0; i < n-1; i++ {
		require.NoError(Te, b.Set(i, i+1, sparse.Bound{Lower: 3.8, Upper: 3.8}))
	}
	require.NoError(Te, b.Set(0, n-1, sparse.Bound{Lower: 3, Upper: 8}))
	d, err := smooth.Infer(b, smooth.DefaultOptions())
	require.NoError(Te, err)
	return d, D
}

func assertNonEmpty(Te *testing.T, name string) {
	info, err := os.Stat(name)
	require.NoError(Te, err)
	assert.Greater(Te, info.Size(), int64(0))
}

func TestBoundsHeatMap(Te *testing.T) {
	d, _ := chainBounds(Te, 6)
	dir := Te.TempDir()
	for _, upper := range []bool{true, false} {
		name := filepath.Join(dir, "bounds.png")
		if !upper {
			name = filepath.Join(dir, "bounds.svg")
		}
		require.NoError(Te, BoundsHeatMap(d, upper, "Inferred bounds", name))
		assertNonEmpty(Te, name)
	}
	one, err := smooth.NewDense(1)
	require.NoError(Te, err)
	assert.Error(Te, BoundsHeatMap(one, true, "", filepath.Join(dir, "x.png")))
}

func TestDistanceScatter(Te *testing.T) {
	d, D := chainBounds(Te, 6)
	name := filepath.Join(Te.TempDir(), "scatter.png")
	require.NoError(Te, DistanceScatter(D, d, "Model 0", name))
	assertNonEmpty(Te, name)
	err := DistanceScatter(mat.NewSymDense(3, nil), d, "", name)
	var pe *Error
	require.True(Te, errors.As(err, &pe))
	assert.Equal(Te, []string{"DistanceScatter"}, pe.Decorate(""))
	//failures of the plotting library itself are wrapped
	err = DistanceScatter(D, d, "", filepath.Join(Te.TempDir(), "scatter.unknownformat"))
	require.True(Te, errors.As(err, &pe))
	assert.NotNil(Te, errors.Unwrap(err))
}

func TestErrorCurves(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "curves.png")
	s := []Series{
		{Name: "contact", K: []int{5, 10, 20}, Mean: []float64{3, 2, 0.5}, StdErr: []float64{0.3, 0.2, 0.1}},
		{Name: "distance", K: []int{5, 10, 20}, Mean: []float64{1, 0.7, 0.2}, StdErr: []float64{0.1, 0.1, 0.05}},
	}
	require.NoError(Te, ErrorCurves(s, "Random subsets", name))
	assertNonEmpty(Te, name)
	err := ErrorCurves(nil, "", name)
	var pe *Error
	require.True(Te, errors.As(err, &pe))
	assert.True(Te, pe.Critical())
	assert.Equal(Te, []string{"ErrorCurves", "caller"}, pe.Decorate("caller"))
	s[0].StdErr = s[0].StdErr[:1]
	assert.Error(Te, ErrorCurves(s, "", name))
}

func TestColors(Te *testing.T) {
	seen := make(map[[3]uint8]bool)
	for i := 0; i < 5; i++ {
		r, g, b := colors(i, 5)
		seen[[3]uint8{r, g, b}] = true
	}
	assert.Len(Te, seen, 5)
}
