/*
 * minsubset.go, part of dgeom.
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
	"sort"

	"gonum.org/v1/gonum/graph"
)

const (
	// DefaultSeqSep is the sequence separation used by MinSubset to tell
	// local common neighbours from distant ones.
	DefaultSeqSep = 3
	// MinSubsetRange is the largest sequence separation of the contacts
	// always left out of a minimal subset.
	MinSubsetRange = 5
)

// neighbours returns the sorted indexes of the residues in contact with i.
func (G *Graph) neighbours(i int) []int {
	return nodeIndexes(graph.NodesOf(G.g.From(int64(i))))
}

// commonNbhood returns the residues in contact with both i and j.
func commonNbhood(nb [][]int, i, j int) []int {
	var ret []int
	a, b := nb[i], nb[j]
	for x, y := 0, 0; x < len(a) && y < len(b); {
		switch {
		case a[x] == b[y]:
			ret = append(ret, a[x])
			x++
			y++
		case a[x] < b[y]:
			x++
		default:
			y++
		}
	}
	return ret
}

// MinSubset returns the minimal subset of the contacts of G obtained by cone
// peeling (Sathyapriya et al. 2009). Residues are visited from the most to the
// least connected, and the contacts of each one from the largest to the smallest
// common neighbourhood. A contact is protected if one of its common neighbours
// is farther than seqSep residues in sequence from one of its ends, and the
// unprotected contacts between its ends and the common neighbours closer than
// that are removed. Contacts with no common neighbours, or between residues
// at most MinSubsetRange apart, are always removed.
// Ties are broken by residue index, so the result is deterministic.
func MinSubset(G *Graph, seqSep int) (*Graph, error) {
	if seqSep < 0 {
		return nil, &Error{message: "negative sequence separation", deco: []string{"MinSubset"}, critical: true}
	}
	n := G.Len()
	nb := make([][]int, n)
	order := make([]int, n)
	for i := range nb {
		nb[i] = G.neighbours(i)
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return len(nb[order[a]]) > len(nb[order[b]]) })
	keep := make(map[[2]int]bool, G.NumContacts())
	for _, c := range G.Contacts() {
		keep[[2]int{c.I, c.J}] = true
	}
	protected := make(map[[2]int]bool)
	pair := func(a, b int) [2]int {
		if a > b {
			return [2]int{b, a}
		}
		return [2]int{a, b}
	}
	remove := func(p [2]int) {
		if !protected[p] {
			delete(keep, p)
		}
	}
	type edge struct {
		p  [2]int
		cn []int
	}
	for _, i := range order {
		edges := make([]edge, 0, len(nb[i]))
		for _, j := range nb[i] {
			p := pair(i, j)
			edges = append(edges, edge{p: p, cn: commonNbhood(nb, p[0], p[1])})
		}
		sort.SliceStable(edges, func(a, b int) bool { return len(edges[a].cn) > len(edges[b].cn) })
		for _, e := range edges {
			for _, v := range e.cn {
				si, sj := abs(e.p[0]-v), abs(e.p[1]-v)
				if si > seqSep || sj > seqSep {
					protected[e.p] = true
				}
				if si <= seqSep || sj <= seqSep {
					remove(pair(e.p[0], v))
					remove(pair(e.p[1], v))
				}
			}
			if len(e.cn) == 0 || e.p[1]-e.p[0] <= MinSubsetRange {
				delete(keep, e.p)
			}
		}
	}
	var contacts []Contact
	for _, c := range G.Contacts() {
		if keep[[2]int{c.I, c.J}] {
			contacts = append(contacts, c)
		}
	}
	ret, err := G.Sub(contacts)
	if err != nil {
		return nil, errDecorate(err, "MinSubset")
	}
	return ret, nil
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
