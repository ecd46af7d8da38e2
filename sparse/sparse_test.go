/*
 * sparse_test.go, part of dgeom.
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

package sparse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestMatrixSetGet(Te *testing.T) {
	M, err := NewMatrix(3, 4)
	require.NoError(Te, err)
	require.NoError(Te, M.Set(0, 3, 2.5))
	require.NoError(Te, M.Set(2, 1, -1))
	v, ok, err := M.Get(0, 3)
	require.NoError(Te, err)
	assert.True(Te, ok)
	assert.Equal(Te, 2.5, v)
	_, ok, _ = M.Get(1, 1)
	assert.False(Te, ok)
	assert.Equal(Te, 2, M.NNZ())

	require.NoError(Te, M.Set(0, 3, 0))
	assert.Equal(Te, 1, M.NNZ())
	assert.Empty(Te, M.RowPairs(0))
	assert.Empty(Te, M.ColPairs(3))
	assert.Equal(Te, []int{2}, M.ColPairs(1))
}

func TestMatrixIndexErrors(Te *testing.T) {
	M, _ := NewMatrix(2, 2)
	_, _, err := M.Get(-1, 0)
	require.ErrorIs(Te, err, ErrIndexOutOfRange)
	err = M.Set(0, 2, 1)
	require.ErrorIs(Te, err, ErrIndexOutOfRange)
	var serr *Error
	require.True(Te, errors.As(err, &serr))
	assert.True(Te, serr.Critical())
	assert.Contains(Te, serr.Decorate("caller"), "caller")
	assert.Panics(Te, func() { M.At(5, 5) })
	_, err = NewMatrix(0, 3)
	require.ErrorIs(Te, err, ErrShape)
}

func TestMatrixAlgebra(Te *testing.T) {
	A, _ := FromDense(mat.NewDense(2, 3, []float64{
		1, 0, 2,
		0, 3, 0,
	}))
	B, _ := FromDense(mat.NewDense(3, 2, []float64{
		0, 1,
		4, 0,
		0, 5,
	}))
	C, err := A.Mul(B)
	require.NoError(Te, err)
	want := mat.NewDense(2, 2, []float64{0, 11, 12, 0})
	assert.True(Te, mat.Equal(want, C.Dense()))

	_, err = A.Mul(A)
	require.ErrorIs(Te, err, ErrShape)
	_, err = A.Add(B)
	require.ErrorIs(Te, err, ErrShape)

	S, err := A.Add(A.Scale(-1))
	require.NoError(Te, err)
	assert.Equal(Te, 0, S.NNZ())
	assert.Equal(Te, 0.0, S.NormFrob())
	assert.Equal(Te, 0.0, S.NormInf())

	assert.True(Te, A.T().T().Equals(A))
	assert.True(Te, A.T().Equals(B) == false)
	assert.InDelta(Te, 3.0, A.NormInf(), 1e-12)
	assert.InDelta(Te, 14.0, A.NormFrob()*A.NormFrob(), 1e-12)
}

func TestMatrixPow(Te *testing.T) {
	//path graph 0-1-2
	A, _ := NewMatrix(3, 3)
	require.NoError(Te, A.SetSym(0, 1, 1))
	require.NoError(Te, A.SetSym(1, 2, 1))
	P0, err := A.Pow(0)
	require.NoError(Te, err)
	I, _ := Identity(3)
	assert.True(Te, P0.Equals(I))
	P2, err := A.Pow(2)
	require.NoError(Te, err)
	assert.Equal(Te, 1.0, P2.At(0, 2))
	assert.Equal(Te, 2.0, P2.At(1, 1))
	P3, _ := A.Pow(3)
	P3b, _ := P2.Mul(A)
	assert.True(Te, P3.Equals(P3b))
	_, err = A.Pow(-1)
	require.ErrorIs(Te, err, ErrNegativePower)
	R, _ := NewMatrix(2, 3)
	_, err = R.Pow(2)
	require.ErrorIs(Te, err, ErrNotSquare)
}

func TestBounds(Te *testing.T) {
	B, err := NewBounds(5)
	require.NoError(Te, err)
	require.NoError(Te, B.Set(3, 1, Bound{0, 8}))
	require.NoError(Te, B.Set(0, 1, Bound{3.8, 3.8}))
	b, ok := B.Get(1, 3)
	require.True(Te, ok)
	assert.Equal(Te, Bound{0, 8}, b)
	assert.True(Te, B.Has(3, 1))
	assert.Equal(Te, 2, B.Len())
	assert.Equal(Te, []Pair{{0, 1}, {1, 3}}, B.Pairs())
	assert.Equal(Te, []int{0, 3}, B.Neighbors(1))
	assert.Equal(Te, 8.0, B.MaxUpper())

	require.ErrorIs(Te, B.Set(2, 2, Bound{1, 2}), ErrDiagonal)
	require.ErrorIs(Te, B.Set(2, 7, Bound{1, 2}), ErrIndexOutOfRange)
	require.ErrorIs(Te, B.Set(2, 3, Bound{3, 2}), ErrBadBound)
	require.ErrorIs(Te, B.Set(2, 3, Bound{-1, 2}), ErrBadBound)

	C := B.Copy()
	require.NoError(Te, C.Delete(1, 3))
	assert.True(Te, B.Has(1, 3))
	assert.False(Te, C.Has(3, 1))
	assert.Equal(Te, 1, C.Len())

	A := B.Adjacency()
	assert.Equal(Te, 4, A.NNZ())
	assert.Equal(Te, 1.0, A.At(3, 1))
}
