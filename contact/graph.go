/*
 * graph.go, part of dgeom.
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
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/eppic-team/owl-sub005/sparse"
	v3 "github.com/eppic-team/owl-sub005/v3"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/mat"
)

const (
	// DistMinCA is the smallest distance between two alpha (or carbonyl) carbons.
	DistMinCA = 2.8
	// DistMin is the smallest distance between other atoms, taken from
	// the length of a hydrogen bond.
	DistMin = 2.6
	// DistChainBreak is the largest distance between consecutive alpha
	// carbons not considered a chain break.
	DistChainBreak = 4.5
	// DefaultCutoff is the usual cutoff for CA contact maps.
	DefaultCutoff = 8.0
)

var singleAtomTypes = map[string]float64{
	"Ca": DistMinCA,
	"C":  DistMinCA,
	"Cb": DistMin,
	"Cg": DistMin,
	"N":  DistMin,
	"O":  DistMin,
}

// Residue is a node of a contact graph. It implements gonum's graph.Node.
type Residue struct {
	Index int  //0-based position in the chain
	Type  byte //one-letter residue code
}

// ID returns the node ID, which is the index of the residue.
func (R Residue) ID() int64 {
	return int64(R.Index)
}

// Contact is an undirected edge between two residues, with I < J.
// Weight is 1 for plain contact maps.
type Contact struct {
	I, J   int
	Weight float64
}

// Graph is a residue contact graph: n residues and the pairs of them
// closer than Cutoff, as measured between the atoms given by ContactType.
type Graph struct {
	seq    string
	ct     string
	cutoff float64
	g      *simple.WeightedUndirectedGraph
}

// NewGraph returns a contact graph with no contacts for the given sequence.
func NewGraph(seq, ct string, cutoff float64) (*Graph, error) {
	if len(seq) == 0 {
		return nil, &Error{message: "empty sequence", deco: []string{"NewGraph"}, critical: true}
	}
	if cutoff <= 0 {
		return nil, &Error{message: fmt.Sprintf("invalid cutoff %.2f", cutoff), deco: []string{"NewGraph"}, critical: true}
	}
	G := &Graph{seq: seq, ct: ct, cutoff: cutoff, g: simple.NewWeightedUndirectedGraph(0, math.Inf(1))}
	for i := 0; i < len(seq); i++ {
		G.g.AddNode(Residue{Index: i, Type: seq[i]})
	}
	return G, nil
}

// Len returns the number of residues.
func (G *Graph) Len() int { return len(G.seq) }

// Sequence returns the one-letter sequence of the chain.
func (G *Graph) Sequence() string { return G.seq }

// ContactType returns the contact type, e.g. "Ca" or "Ca/Cb".
func (G *Graph) ContactType() string { return G.ct }

// Cutoff returns the distance cutoff used to define contacts.
func (G *Graph) Cutoff() float64 { return G.cutoff }

// Residue returns the ith residue.
func (G *Graph) Residue(i int) Residue {
	return G.g.Node(int64(i)).(Residue)
}

// AddContact adds (or reweights) the contact between residues i and j, 0-based.
func (G *Graph) AddContact(i, j int, w float64) error {
	if i == j || i < 0 || j < 0 || i >= G.Len() || j >= G.Len() {
		return &Error{message: fmt.Sprintf("invalid contact (%d,%d) for %d residues", i, j, G.Len()), deco: []string{"AddContact"}, critical: true}
	}
	G.g.SetWeightedEdge(G.g.NewWeightedEdge(G.g.Node(int64(i)), G.g.Node(int64(j)), w))
	return nil
}

// RemoveContact removes the contact between i and j, if present.
func (G *Graph) RemoveContact(i, j int) {
	G.g.RemoveEdge(int64(i), int64(j))
}

// HasContact returns true if i and j are in contact.
func (G *Graph) HasContact(i, j int) bool {
	return G.g.HasEdgeBetween(int64(i), int64(j))
}

// NumContacts returns the number of contacts.
func (G *Graph) NumContacts() int {
	return G.g.Edges().Len()
}

// Contacts returns all contacts, sorted.
func (G *Graph) Contacts() []Contact {
	ret := make([]Contact, 0, G.NumContacts())
	edges := G.g.WeightedEdges()
	for edges.Next() {
		e := edges.WeightedEdge()
		i, j := int(e.From().ID()), int(e.To().ID())
		if i > j {
			i, j = j, i
		}
		ret = append(ret, Contact{I: i, J: j, Weight: e.Weight()})
	}
	sort.Slice(ret, func(a, b int) bool {
		if ret[a].I != ret[b].I {
			return ret[a].I < ret[b].I
		}
		return ret[a].J < ret[b].J
	})
	return ret
}

// Components returns the connected components of the graph, each as a
// sorted list of residue indexes, ordered by their first residue.
func (G *Graph) Components() [][]int {
	cc := topo.ConnectedComponents(G.g)
	ret := make([][]int, 0, len(cc))
	for _, c := range cc {
		ret = append(ret, nodeIndexes(c))
	}
	sort.Slice(ret, func(a, b int) bool { return ret[a][0] < ret[b][0] })
	return ret
}

func nodeIndexes(nodes []graph.Node) []int {
	ret := make([]int, len(nodes))
	for i, n := range nodes {
		ret[i] = int(n.ID())
	}
	sort.Ints(ret)
	return ret
}

// LowerFunc returns the lower distance bound for a contact of type ct
// between residues of types a and b.
type LowerFunc func(ct string, a, b byte) float64

// DefaultLower returns the hard-sphere minimum distance for the atoms of
// a single atom contact type. The residue types are not used.
func DefaultLower(ct string, a, b byte) float64 {
	if d, ok := singleAtomTypes[ct]; ok {
		return d
	}
	return DistMin
}

// splitCT returns the contact types of the first and second residue of a contact type.
func splitCT(ct string) (string, string, error) {
	i, j := ct, ct
	if strings.Contains(ct, "/") {
		parts := strings.Split(ct, "/")
		if len(parts) != 2 {
			return "", "", &Error{message: "invalid contact type " + ct, deco: []string{"splitCT"}, critical: true}
		}
		i, j = parts[0], parts[1]
	}
	_, iok := singleAtomTypes[i]
	_, jok := singleAtomTypes[j]
	if !iok || !jok {
		return "", "", &Error{message: fmt.Sprintf("contact type %s is not valid for reconstruction", ct), deco: []string{"splitCT"}, critical: true}
	}
	return i, j, nil
}

// Bounds returns the distance restraints implied by the contacts: each
// contact between i and j, with |i-j| > 1, gets the bound [lower, Cutoff],
// where lower is the average of the lower bounds for the two atom types.
// Consecutive residues are left out, they are restrained by the backbone.
// If lower is nil, DefaultLower is used.
func (G *Graph) Bounds(lower LowerFunc) (*sparse.Bounds, error) {
	ict, jct, err := splitCT(G.ct)
	if err != nil {
		return nil, errDecorate(err, "Bounds")
	}
	if lower == nil {
		lower = DefaultLower
	}
	b, err := sparse.NewBounds(G.Len())
	if err != nil {
		return nil, errDecorate(err, "Bounds")
	}
	for _, c := range G.Contacts() {
		if c.J <= c.I+1 {
			continue
		}
		ri, rj := G.seq[c.I], G.seq[c.J]
		l := (lower(ict, ri, rj) + lower(jct, ri, rj)) / 2
		if l > G.cutoff {
			l = G.cutoff
		}
		if err := b.Set(c.I, c.J, sparse.Bound{Lower: l, Upper: G.cutoff}); err != nil {
			return nil, errDecorate(err, "Bounds")
		}
	}
	return b, nil
}

// FromCoords builds the contact graph of the points in coords (one per residue
// of seq): every pair closer than cutoff is a contact.
func FromCoords(coords *v3.Matrix, seq, ct string, cutoff float64) (*Graph, error) {
	if coords.NVecs() != len(seq) {
		return nil, &Error{message: fmt.Sprintf("%d coordinates for %d residues", coords.NVecs(), len(seq)), deco: []string{"FromCoords"}, critical: true}
	}
	G, err := NewGraph(seq, ct, cutoff)
	if err != nil {
		return nil, errDecorate(err, "FromCoords")
	}
	n := coords.NVecs()
	for i := 0; i < n; i++ {
		if i < n-1 && coords.Distance(i, i+1) > DistChainBreak {
			log.Printf("contact: possible chain break between residues %d and %d (%.2f A)", i+1, i+2, coords.Distance(i, i+1))
		}
		for j := i + 1; j < n; j++ {
			if coords.Distance(i, j) < cutoff {
				G.g.SetWeightedEdge(G.g.NewWeightedEdge(G.g.Node(int64(i)), G.g.Node(int64(j)), 1))
			}
		}
	}
	return G, nil
}

// ExactBounds returns exact restraints, [d,d], for every pair of points
// in the distance matrix dist.
func ExactBounds(dist mat.Symmetric) (*sparse.Bounds, error) {
	n := dist.SymmetricDim()
	b, err := sparse.NewBounds(n)
	if err != nil {
		return nil, errDecorate(err, "ExactBounds")
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := dist.At(i, j)
			if err := b.Set(i, j, sparse.Bound{Lower: d, Upper: d}); err != nil {
				return nil, errDecorate(err, "ExactBounds")
			}
		}
	}
	return b, nil
}

// Sub returns a copy of the graph with only the given contacts, which need
// not be in G.
func (G *Graph) Sub(contacts []Contact) (*Graph, error) {
	ret, err := NewGraph(G.seq, G.ct, G.cutoff)
	if err != nil {
		return nil, errDecorate(err, "Sub")
	}
	for _, c := range contacts {
		if err := ret.AddContact(c.I, c.J, c.Weight); err != nil {
			return nil, errDecorate(err, "Sub")
		}
	}
	return ret, nil
}
