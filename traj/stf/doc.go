/*
 * doc.go, part of dgeom.
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

/*
Package stf implements the simple trajectory format, used here to store
the models of a reconstruction, one model per frame.

An stf file is plain ASCII compressed with z-standard (zstd), or with gzip
when the file name ends in "z".

The file starts with a header of key=value lines, ending with a line
that starts with "**", followed by one or more spaces and the number of
points per frame. The "prec" key gives the number of decimal places kept
for each coordinate (DefaultPrec if absent).

Each frame has one line per point, with the three coordinates multiplied
by 10^prec and rounded to integers, separated by spaces. The frame ends
with a line starting with "*", optionally followed by a space and a tag,
such as the index of the model in the frame.

	seq=MKVLA
	prec=3
	** 5
	1200 -3400 512
	...
	* model 0
*/
package stf
