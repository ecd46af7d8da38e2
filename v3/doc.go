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
Package v3 implements a Matrix type representing a row-major Nx3 matrix, i.e. the
cartesian coordinates of a set of points in 3D space. In dgeom a v3.Matrix holds
one reconstructed model, one point per residue.

It is based on gonum's Dense type, with the restriction of the fixed number of
columns and with some additional functions that are useful when comparing models:
centroids, radius of gyration, pairwise distance matrices, mirror images and
optimal superposition.
*/
package v3
