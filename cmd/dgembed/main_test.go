/*
 * main_test.go, part of dgeom.
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

package main

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eppic-team/owl-sub005/contact"
	v3 "github.com/eppic-team/owl-sub005/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// helixGraph writes the CA contact graph of an ideal 20-residue helix
// to dir and returns the file name.
func helixGraph(Te *testing.T, dir string) string {
	n := 20
	M := v3.Zeros(n)
	for i := 0; i < n; i++ {
		a := float64(i) * 100 * math.Pi / 180
		M.Set(i, 0, 2.3*math.Cos(a))
		M.Set(i, 1, 2.3*math.Sin(a))
		M.Set(i, 2, 1.5*float64(i))
	}
	G, err := contact.FromCoords(M, strings.Repeat("A", n), "Ca", contact.DefaultCutoff)
	require.NoError(Te, err)
	name := filepath.Join(dir, "helix.graph")
	require.NoError(Te, contact.WriteGraphFile(name, G))
	return name
}

func TestEmbedDefaults(Te *testing.T) {
	dir := Te.TempDir()
	graph := helixGraph(Te, dir)
	prefix := filepath.Join(dir, "out")
	//the default scaling policy must parse
	require.NoError(Te, runEmbed([]string{"-o", prefix, "-models", "2", "-stf", graph}))
	for _, ext := range []string{".pdb", ".stf"} {
		info, err := os.Stat(prefix + ext)
		require.NoError(Te, err)
		assert.Greater(Te, info.Size(), int64(0))
	}
	require.Error(Te, runEmbed([]string{"-o", prefix, "-scale", "nonsense", graph}))
}

func TestScoreAndCheck(Te *testing.T) {
	dir := Te.TempDir()
	graph := helixGraph(Te, dir)
	require.NoError(Te, runCheck([]string{graph}))
	require.NoError(Te, runScore([]string{"-minsubset", graph}))
	require.NoError(Te, runScore([]string{"-k", "5,10", "-runs", "3", graph}))
	require.NoError(Te, runScore([]string{"-subset", graph, graph}))
}
