/*
 * smooth_test.go, part of dgeom.
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
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/eppic-team/owl-sub005/sparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

const testTol = 1e-6

// helixBounds returns the restraints of an ideal helix of n points:
// exact distances between consecutive points and [DistMinCA, cutoff]
// for the other pairs closer than cutoff. It also returns the true distances.
func helixBounds(Te *testing.T, n int, cutoff float64) (*sparse.Bounds, *mat.SymDense) {
	D := mat.NewSymDense(n, nil)
	pos := func(i int) [3]float64 {
		a := float64(i) * 100 * math.Pi / 180
		return [3]float64{2.3 * math.Cos(a), 2.3 * math.Sin(a), 1.5 * float64(i)}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			p, q := pos(i), pos(j)
			D.SetSym(i, j, math.Sqrt((p[0]-q[0])*(p[0]-q[0])+(p[1]-q[1])*(p[1]-q[1])+(p[2]-q[2])*(p[2]-q[2])))
		}
	}
	b, err := sparse.NewBounds(n)
	require.NoError(Te, err)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := D.At(i, j)
			switch {
			case j == i+1:
				require.NoError(Te, b.Set(i, j, sparse.Bound{Lower: d, Upper: d}))
			case d < cutoff:
				require.NoError(Te, b.Set(i, j, sparse.Bound{Lower: DistMinCA, Upper: cutoff}))
			}
		}
	}
	return b, D
}

func pathBounds(Te *testing.T) *sparse.Bounds {
	b, err := sparse.NewBounds(4)
	require.NoError(Te, err)
	for i := 0; i < 3; i++ {
		require.NoError(Te, b.Set(i, i+1, sparse.Bound{Lower: 3.8, Upper: 3.8}))
	}
	require.NoError(Te, b.Set(0, 3, sparse.Bound{Lower: 0, Upper: 8.0}))
	return b
}

func TestInferPath(Te *testing.T) {
	b := pathBounds(Te)
	d, err := Infer(b, DefaultOptions())
	require.NoError(Te, err)
	r13, _ := d.Get(0, 2)
	r24, _ := d.Get(1, 3)
	assert.LessOrEqual(Te, r13.Upper, 7.6+testTol)
	assert.LessOrEqual(Te, r24.Upper, 7.6+testTol)
	assert.GreaterOrEqual(Te, r13.Lower, 0.0)
	r14, _ := d.Get(0, 3)
	assert.LessOrEqual(Te, r14.Upper, 8.0)
	assert.NoError(Te, CheckTriangle(d, testTol))
	//the input is not modified
	orig, _ := b.Get(0, 3)
	assert.Equal(Te, sparse.Bound{Lower: 0, Upper: 8}, orig)
	assert.Equal(Te, 4, b.Len())
}

func TestInferInfeasible(Te *testing.T) {
	b, _ := sparse.NewBounds(3)
	require.NoError(Te, b.Set(0, 1, sparse.Bound{Lower: 9, Upper: 9}))
	require.NoError(Te, b.Set(1, 2, sparse.Bound{Lower: 1, Upper: 1}))
	require.NoError(Te, b.Set(0, 2, sparse.Bound{Lower: 1, Upper: 2}))
	_, err := Infer(b, DefaultOptions())
	require.Error(Te, err)
	var ierr *InfeasibleError
	require.True(Te, errors.As(err, &ierr))
	assert.True(Te, ierr.Critical())
	assert.Greater(Te, ierr.Lower, ierr.Upper)
}

func TestInferFeasibleTriangle(Te *testing.T) {
	b, _ := sparse.NewBounds(3)
	require.NoError(Te, b.Set(0, 1, sparse.Bound{Lower: 5, Upper: 5}))
	require.NoError(Te, b.Set(1, 2, sparse.Bound{Lower: 5, Upper: 5}))
	require.NoError(Te, b.Set(0, 2, sparse.Bound{Lower: 1, Upper: 2}))
	_, err := Infer(b, DefaultOptions())
	require.NoError(Te, err)
}

func TestTrianglePropertyAndIdempotence(Te *testing.T) {
	b, _ := helixBounds(Te, 30, 8)
	o := DefaultOptions()
	d, err := Infer(b, o)
	require.NoError(Te, err)
	require.NoError(Te, CheckTriangle(d, testTol))
	for _, p := range b.Pairs() {
		r, _ := b.Get(p.I, p.J)
		inf, _ := d.Get(p.I, p.J)
		assert.GreaterOrEqual(Te, inf.Lower, r.Lower-testTol)
		assert.LessOrEqual(Te, inf.Upper, r.Upper+testTol)
	}
	again := d.Copy()
	passes, err := again.Smooth(o)
	require.NoError(Te, err)
	assert.Equal(Te, 1, passes)
	assert.True(Te, again.Equal(d))
}

func TestParallelSweep(Te *testing.T) {
	b, _ := helixBounds(Te, 2*minParallel, 9)
	serial, err := Infer(b, DefaultOptions().withCpus(1))
	require.NoError(Te, err)
	par, err := Infer(b, DefaultOptions().withCpus(4))
	require.NoError(Te, err)
	assert.True(Te, serial.Equal(par))
}

func (O *Options) withCpus(n int) *Options {
	O.Cpus(n)
	return O
}

func TestNotConverged(Te *testing.T) {
	b, _ := sparse.NewBounds(3)
	require.NoError(Te, b.Set(0, 1, sparse.Bound{Lower: 10, Upper: 10}))
	require.NoError(Te, b.Set(1, 2, sparse.Bound{Lower: 1, Upper: 1}))
	o := DefaultOptions()
	o.MaxPasses(1)
	d, err := Infer(b, o)
	require.ErrorIs(Te, err, ErrNotConverged)
	require.NotNil(Te, d)
	o.MaxPasses(10)
	d, err = Infer(b, o)
	require.NoError(Te, err)
	r, _ := d.Get(0, 2)
	assert.InDelta(Te, 9, r.Lower, testTol)
	assert.InDelta(Te, 11, r.Upper, testTol)
}

func TestSampleUniform(Te *testing.T) {
	b, _ := helixBounds(Te, 20, 8)
	d, err := Infer(b, DefaultOptions())
	require.NoError(Te, err)
	D := SampleUniform(d, rand.New(rand.NewSource(1)))
	l, u := Violations(D, d, testTol)
	assert.Zero(Te, l)
	assert.Zero(Te, u)
	l, u = Violations(D, b, testTol)
	assert.Zero(Te, l)
	assert.Zero(Te, u)
	assert.Equal(Te, 0.0, D.At(3, 3))
}

func TestMetrize(Te *testing.T) {
	b, _ := helixBounds(Te, 20, 8)
	d, err := Infer(b, DefaultOptions())
	require.NoError(Te, err)
	for _, roots := range []int{0, 3} {
		D, _, err := Metrize(d, rand.New(rand.NewSource(7)), roots, DefaultOptions())
		require.NoError(Te, err)
		l, u := Violations(D, b, testTol)
		assert.Zero(Te, l, "roots %d", roots)
		assert.Zero(Te, u, "roots %d", roots)
		l, u = Violations(D, d, testTol)
		assert.Zero(Te, l, "roots %d", roots)
		assert.Zero(Te, u, "roots %d", roots)
		for i := 0; i < 20; i++ {
			for j := i + 1; j < 20; j++ {
				assert.Greater(Te, D.At(i, j), 0.0)
			}
		}
	}
	//d itself is untouched
	again, err := Infer(b, DefaultOptions())
	require.NoError(Te, err)
	assert.True(Te, again.Equal(d))
}

func TestMetrizeIsMetric(Te *testing.T) {
	d, err := Infer(pathBounds(Te), DefaultOptions())
	require.NoError(Te, err)
	D, conflicts, err := Metrize(d, rand.New(rand.NewSource(3)), 0, DefaultOptions())
	require.NoError(Te, err)
	assert.Zero(Te, conflicts)
	assert.NoError(Te, CheckTriangle(DistancesFromSym(D), testTol))
}

func TestMetrizeReproducible(Te *testing.T) {
	b, _ := helixBounds(Te, 15, 8)
	d, err := Infer(b, DefaultOptions())
	require.NoError(Te, err)
	A, _, err := Metrize(d, rand.New(rand.NewSource(42)), 0, DefaultOptions())
	require.NoError(Te, err)
	B, _, err := Metrize(d, rand.New(rand.NewSource(42)), 0, DefaultOptions())
	require.NoError(Te, err)
	assert.True(Te, mat.Equal(A, B))
	C, _, err := Metrize(d, rand.New(rand.NewSource(43)), 0, DefaultOptions())
	require.NoError(Te, err)
	assert.False(Te, mat.Equal(A, C))
}

func TestCheckTriangleDetects(Te *testing.T) {
	d, _ := NewDense(3)
	require.NoError(Te, d.Set(0, 1, sparse.Bound{Lower: 1, Upper: 1}))
	require.NoError(Te, d.Set(1, 2, sparse.Bound{Lower: 1, Upper: 1}))
	require.NoError(Te, d.Set(0, 2, sparse.Bound{Lower: 1, Upper: 5}))
	err := CheckTriangle(d, testTol)
	var terr *TriangleError
	require.True(Te, errors.As(err, &terr))
	assert.True(Te, terr.Upper)
	assert.Equal(Te, 0, terr.I)
	assert.Equal(Te, 2, terr.J)
}
