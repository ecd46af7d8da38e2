/*
 * files.go, part of dgeom.
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
	"bufio"
	"fmt"
	"io"
	"os"
)

var one2three = map[byte]string{
	'A': "ALA", 'R': "ARG", 'N': "ASN", 'D': "ASP", 'C': "CYS",
	'Q': "GLN", 'E': "GLU", 'G': "GLY", 'H': "HIS", 'I': "ILE",
	'L': "LEU", 'K': "LYS", 'M': "MET", 'F': "PHE", 'P': "PRO",
	'S': "SER", 'T': "THR", 'W': "TRP", 'Y': "TYR", 'V': "VAL",
}

// ResName returns the three-letter residue name for a one-letter code,
// UNK for unknown codes.
func ResName(code byte) string {
	if r, ok := one2three[code]; ok {
		return r
	}
	return "UNK"
}

// PDBWrite writes the models as a multi-model PDB file with one alpha
// carbon per residue, for the sequence seq, to out.
func PDBWrite(out io.Writer, seq string, models []Coorder) error {
	w := bufio.NewWriter(out)
	fmt.Fprint(w, "REMARK     CA TRACE RECONSTRUCTED BY DISTANCE GEOMETRY\n")
	for j, m := range models {
		c := m.Coords()
		if c.NVecs() != len(seq) {
			return &CError{msg: fmt.Sprintf("model %d has %d points for a sequence of %d residues", j, c.NVecs(), len(seq)), deco: []string{"PDBWrite"}}
		}
		fmt.Fprintf(w, "MODEL     %4d\n", j+1)
		for i := 0; i < c.NVecs(); i++ {
			_, err := fmt.Fprintf(w, "%-6s%5d  %-3s %3s %1c%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s  \n", "ATOM", i+1, "CA", ResName(seq[i]), 'A',
				i+1, c.At(i, 0), c.At(i, 1), c.At(i, 2), 1.0, 0.0, "C")
			if err != nil {
				return &CError{msg: err.Error(), deco: []string{"PDBWrite"}}
			}
		}
		fmt.Fprint(w, "TER\nENDMDL\n")
	}
	fmt.Fprint(w, "END\n")
	if err := w.Flush(); err != nil {
		return &CError{msg: err.Error(), deco: []string{"PDBWrite"}}
	}
	return nil
}

// PDBFileWrite writes the models to the PDB file pdbname.
func PDBFileWrite(pdbname, seq string, models []Coorder) error {
	out, err := os.Create(pdbname)
	if err != nil {
		return &CError{msg: err.Error(), deco: []string{"PDBFileWrite"}}
	}
	if err := PDBWrite(out, seq, models); err != nil {
		out.Close()
		return errDecorate(err, "PDBFileWrite "+pdbname)
	}
	if err := out.Close(); err != nil {
		return &CError{msg: err.Error(), deco: []string{"PDBFileWrite"}}
	}
	return nil
}

// Coorders returns the models as a slice of Coorder, to be written.
func Coorders(models []*Model) []Coorder {
	ret := make([]Coorder, len(models))
	for i, m := range models {
		ret[i] = m
	}
	return ret
}
