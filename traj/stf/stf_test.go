/*
 * stf_test.go, part of dgeom.
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

package stf

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	v3 "github.com/eppic-team/owl-sub005/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frame(Te *testing.T, n int, shift float64) *v3.Matrix {
	data := make([]float64, 0, 3*n)
	for i := 0; i < n; i++ {
		data = append(data, float64(i)*1.2345+shift, -float64(i)*0.5-shift, 3.0001*shift)
	}
	M, err := v3.NewMatrix(data)
	require.NoError(Te, err)
	return M
}

func assertClose(Te *testing.T, a, b *v3.Matrix, tol float64) {
	require.Equal(Te, a.NVecs(), b.NVecs())
	for i := 0; i < a.NVecs(); i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(Te, a.At(i, j), b.At(i, j), tol)
		}
	}
}

func TestStreamRoundTrip(Te *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, 5, map[string]string{"seq": "MKVLA"})
	require.NoError(Te, err)
	for i := 0; i < 3; i++ {
		require.NoError(Te, w.WNext(frame(Te, 5, float64(i)), "model "+string(rune('0'+i))))
	}
	assert.Error(Te, w.WNext(frame(Te, 4, 0)))
	assert.Error(Te, w.WNext(nil))
	assert.Equal(Te, 3, w.Frames())
	require.NoError(Te, w.Close())
	assert.Error(Te, w.WNext(frame(Te, 5, 0)), "closed writer")

	r, header, err := NewReader(&buf)
	require.NoError(Te, err)
	assert.Equal(Te, "MKVLA", header["seq"])
	assert.Equal(Te, "3", header["prec"])
	assert.Equal(Te, 5, r.Len())
	frames, tags, err := r.ReadAll()
	require.NoError(Te, err)
	require.Len(Te, frames, 3)
	assert.Equal(Te, []string{"model 0", "model 1", "model 2"}, tags)
	for i, f := range frames {
		assertClose(Te, frame(Te, 5, float64(i)), f, 5e-4)
	}
	assert.False(Te, r.Readable())
}

func TestFileRoundTrip(Te *testing.T) {
	dir := Te.TempDir()
	for _, name := range []string{"models.stf", "models.stfz"} {
		path := filepath.Join(dir, name)
		w, err := Create(path, 4, map[string]string{"prec": "2"})
		require.NoError(Te, err)
		require.NoError(Te, w.WNext(frame(Te, 4, 1)))
		require.NoError(Te, w.Close())
		r, header, err := Open(path)
		require.NoError(Te, err)
		assert.Equal(Te, "2", header["prec"])
		c := v3.Zeros(4)
		tag, err := r.Next(c)
		require.NoError(Te, err)
		assert.Equal(Te, "", tag)
		assertClose(Te, frame(Te, 4, 1), c, 5e-3)
		_, err = r.Next(c)
		assert.True(Te, IsLastFrame(err), name)
		r.Close()
	}
}

func TestErrors(Te *testing.T) {
	var buf bytes.Buffer
	_, err := NewWriter(&buf, 0, nil)
	assert.Error(Te, err)
	_, err = NewWriter(&buf, 3, map[string]string{"prec": "x"})
	assert.Error(Te, err)
	_, err = NewWriter(&buf, 3, map[string]string{"a=b": "c"})
	assert.Error(Te, err)
	_, _, err = Open(filepath.Join(Te.TempDir(), "missing.stf"))
	assert.Error(Te, err)

	//a truncated frame
	buf.Reset()
	w, err := NewWriter(&buf, 3, nil)
	require.NoError(Te, err)
	require.NoError(Te, w.WNext(frame(Te, 3, 0)))
	require.NoError(Te, w.Close())
	r, _, err := NewReader(&buf)
	require.NoError(Te, err)
	_, err = r.Next(v3.Zeros(2))
	assert.Error(Te, err, "wrong matrix size")
	_, err = r.Next(nil)
	require.NoError(Te, err)
	_, err = r.Next(nil)
	assert.True(Te, IsLastFrame(err))
	_, err = r.Next(nil)
	assert.Error(Te, err)
	assert.False(Te, IsLastFrame(err))

	path := filepath.Join(Te.TempDir(), "bad.stf")
	require.NoError(Te, os.WriteFile(path, []byte("not compressed"), 0o644))
	_, _, err = Open(path)
	assert.Error(Te, err)
}
