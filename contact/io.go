/*
 * io.go, part of dgeom.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

const graphFileVersion = "1.0"

var (
	headerRe  = regexp.MustCompile(`^#(?:AGLAPPE|CMVIEW|OWL).*ver: (\d\.\d)`)
	seqRe     = regexp.MustCompile(`^#SEQUENCE:\s*(\w+)$`)
	ctRe      = regexp.MustCompile(`^#CT:\s*([a-zA-Z/]+)`)
	cutoffRe  = regexp.MustCompile(`^#CUTOFF:\s*(\d+(?:\.\d+)?)`)
	contactRe = regexp.MustCompile(`^\s*(\d+)\s+(\d+)(?:\s+(\d+(?:\.\d+)?))?\s*$`)
)

// ReadGraph reads a contact graph in the owl/CMView graph file format:
// a few "#KEY: value" header lines (#SEQUENCE, #CT and #CUTOFF are required)
// followed by one "i j [weight]" line per contact, with 1-based residue numbers.
// Other header lines are ignored.
func ReadGraph(r io.Reader) (*Graph, error) {
	sc := bufio.NewScanner(r)
	var seq, ct string
	var cutoff float64
	var G *Graph
	line := 0
	for sc.Scan() {
		line++
		l := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(l) == "" {
			continue
		}
		if strings.HasPrefix(l, "#") {
			if G != nil {
				return nil, &Error{message: fmt.Sprintf("line %d: header after the contacts", line), deco: []string{"ReadGraph"}, critical: true}
			}
			switch {
			case headerRe.MatchString(l):
			case seqRe.MatchString(l):
				seq = seqRe.FindStringSubmatch(l)[1]
			case ctRe.MatchString(l):
				ct = ctRe.FindStringSubmatch(l)[1]
			case cutoffRe.MatchString(l):
				cutoff, _ = strconv.ParseFloat(cutoffRe.FindStringSubmatch(l)[1], 64)
			}
			continue
		}
		if G == nil {
			var err error
			if G, err = NewGraph(seq, ct, cutoff); err != nil {
				return nil, errDecorate(err, "ReadGraph")
			}
		}
		m := contactRe.FindStringSubmatch(l)
		if m == nil {
			return nil, &Error{message: fmt.Sprintf("line %d: can't parse contact %q", line, l), deco: []string{"ReadGraph"}, critical: true}
		}
		i, _ := strconv.Atoi(m[1])
		j, _ := strconv.Atoi(m[2])
		w := 1.0
		if m[3] != "" {
			w, _ = strconv.ParseFloat(m[3], 64)
		}
		if err := G.AddContact(i-1, j-1, w); err != nil {
			return nil, errDecorate(err, "ReadGraph")
		}
	}
	if err := sc.Err(); err != nil {
		return nil, &Error{message: err.Error(), deco: []string{"ReadGraph"}, critical: true}
	}
	if G == nil { //no contacts
		var err error
		if G, err = NewGraph(seq, ct, cutoff); err != nil {
			return nil, errDecorate(err, "ReadGraph")
		}
	}
	return G, nil
}

// WriteGraph writes G in the format read by ReadGraph.
func WriteGraph(w io.Writer, G *Graph) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "#OWL GRAPH FILE ver: %s\n", graphFileVersion)
	fmt.Fprintf(bw, "#SEQUENCE: %s\n", G.seq)
	fmt.Fprintf(bw, "#CT: %s\n", G.ct)
	fmt.Fprintf(bw, "#CUTOFF: %.1f\n", G.cutoff)
	for _, c := range G.Contacts() {
		fmt.Fprintf(bw, "%d\t%d\t%6.3f\n", c.I+1, c.J+1, c.Weight)
	}
	if err := bw.Flush(); err != nil {
		return &Error{message: err.Error(), deco: []string{"WriteGraph"}, critical: true}
	}
	return nil
}

// ReadGraphFile reads a contact graph from the file name.
func ReadGraphFile(name string) (*Graph, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, &Error{message: err.Error(), deco: []string{"ReadGraphFile"}, critical: true}
	}
	defer f.Close()
	G, err := ReadGraph(f)
	if err != nil {
		return nil, errDecorate(err, "ReadGraphFile "+name)
	}
	return G, nil
}

// WriteGraphFile writes G to the file name.
func WriteGraphFile(name string, G *Graph) error {
	f, err := os.Create(name)
	if err != nil {
		return &Error{message: err.Error(), deco: []string{"WriteGraphFile"}, critical: true}
	}
	if err := WriteGraph(f, G); err != nil {
		f.Close()
		return errDecorate(err, "WriteGraphFile "+name)
	}
	if err := f.Close(); err != nil {
		return &Error{message: err.Error(), deco: []string{"WriteGraphFile"}, critical: true}
	}
	return nil
}
