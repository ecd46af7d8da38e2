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
Package smooth infers a complete set of distance bounds from a sparse set of
restraints, using the triangle inequality ("bound smoothing"), and samples
concrete distance matrices from the inferred bounds.

Two samplers are provided. SampleUniform draws every distance independently,
which is fast but gives matrices that may violate the triangle inequality.
Metrize fixes the distances one at a time and tightens the remaining bounds
after each one, so its results are (nearly always exactly) metric.
*/
package smooth
