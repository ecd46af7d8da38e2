/*
 * contact_test.go, part of dgeom.
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

package contact

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eppic-team/owl-sub005/sparse"
	v3 "github.com/eppic-team/owl-sub005/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func helix(n int) *v3.Matrix {
	M := v3.Zeros(n)
	for i := 0; i < n; i++ {
		a := float64(i) * 100 * math.Pi / 180
		M.Set(i, 0, 2.3*math.Cos(a))
		M.Set(i, 1, 2.3*math.Sin(a))
		M.Set(i, 2, 1.5*float64(i))
	}
	return M
}

const testGraph = `#CMVIEW GRAPH FILE ver: 1.0
#SEQUENCE: MKVLAG
#PDB: 1abc
#CT: Ca
#CUTOFF: 8.0
1	2	1.000
1	4	1.000
2	5	 1.500
3	6
`

func TestReadGraph(Te *testing.T) {
	G, err := ReadGraph(strings.NewReader(testGraph))
	require.NoError(Te, err)
	assert.Equal(Te, "MKVLAG", G.Sequence())
	assert.Equal(Te, "Ca", G.ContactType())
	assert.Equal(Te, 8.0, G.Cutoff())
	assert.Equal(Te, 4, G.NumContacts())
	assert.True(Te, G.HasContact(3, 0))
	assert.Equal(Te, Contact{I: 1, J: 4, Weight: 1.5}, G.Contacts()[2])
	assert.Equal(Te, byte('V'), G.Residue(2).Type)

	b, err := G.Bounds(nil)
	require.NoError(Te, err)
	//the 1-2 contact is left to the backbone restraint
	assert.Equal(Te, 3, b.Len())
	r, ok := b.Get(0, 3)
	require.True(Te, ok)
	assert.Equal(Te, sparse.Bound{Lower: DistMinCA, Upper: 8}, r)

	var buf bytes.Buffer
	require.NoError(Te, WriteGraph(&buf, G))
	G2, err := ReadGraph(&buf)
	require.NoError(Te, err)
	assert.Equal(Te, G.Contacts(), G2.Contacts())
	assert.Equal(Te, G.Sequence(), G2.Sequence())
}

func TestReadGraphErrors(Te *testing.T) {
	_, err := ReadGraph(strings.NewReader("#SEQUENCE: MKV\n#CT: Ca\n#CUTOFF: 8.0\n1 x\n"))
	require.Error(Te, err)
	_, err = ReadGraph(strings.NewReader("#SEQUENCE: MKV\n#CT: Ca\n#CUTOFF: 8.0\n1 7\n"))
	require.Error(Te, err)
	_, err = ReadGraph(strings.NewReader("#CT: Ca\n1 2\n"))
	require.Error(Te, err)
}

func TestContactTypes(Te *testing.T) {
	G, err := NewGraph("AAAA", "Ca/Cb", 9)
	require.NoError(Te, err)
	require.NoError(Te, G.AddContact(0, 3, 1))
	b, err := G.Bounds(nil)
	require.NoError(Te, err)
	r, _ := b.Get(0, 3)
	assert.InDelta(Te, (DistMinCA+DistMin)/2, r.Lower, 1e-12)
	assert.Equal(Te, 9.0, r.Upper)

	G, _ = NewGraph("AAAA", "BB", 9)
	_, err = G.Bounds(nil)
	require.Error(Te, err)
	require.Error(Te, G.AddContact(2, 2, 1))
}

func TestFromCoords(Te *testing.T) {
	H := helix(20)
	seq := strings.Repeat("A", 20)
	G, err := FromCoords(H, seq, "Ca", DefaultCutoff)
	require.NoError(Te, err)
	for _, c := range G.Contacts() {
		assert.Less(Te, H.Distance(c.I, c.J), DefaultCutoff)
	}
	//consecutive residues are always in contact
	for i := 0; i < 19; i++ {
		assert.True(Te, G.HasContact(i, i+1))
	}
	assert.Len(Te, G.Components(), 1)

	sub, err := G.Sub(G.Contacts()[:2])
	require.NoError(Te, err)
	assert.Equal(Te, 2, sub.NumContacts())
	assert.Greater(Te, len(sub.Components()), 1)

	exact, err := ExactBounds(H.DistanceMatrix())
	require.NoError(Te, err)
	assert.Equal(Te, 20*19/2, exact.Len())
	r, _ := exact.Get(4, 9)
	assert.True(Te, r.Exact())
	assert.InDelta(Te, H.Distance(4, 9), r.Lower, 1e-12)

	_, err = FromCoords(H, "AAA", "Ca", 8)
	require.Error(Te, err)
}

func TestGraphFile(Te *testing.T) {
	G, err := FromCoords(helix(10), "ACDEFGHIKL", "Ca", 8)
	require.NoError(Te, err)
	name := filepath.Join(Te.TempDir(), "helix.graph")
	require.NoError(Te, WriteGraphFile(name, G))
	G2, err := ReadGraphFile(name)
	require.NoError(Te, err)
	assert.Equal(Te, G.Contacts(), G2.Contacts())
	assert.Equal(Te, "ACDEFGHIKL", G2.Sequence())
}
