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
Package dgeom reconstructs protein conformations from contact maps by
distance geometry, and scores how much geometric information a subset of
contacts carries.

A contact map is turned into a sparse set of distance restraints
(sparse.Bounds): each contact gets the bound [hard-sphere minimum, cutoff],
and consecutive residues get the exact backbone spacing. The bounds for all
the other pairs are inferred through the triangle inequality (package smooth),
distance matrices are sampled or metrized from the inferred bounds, and each
one is embedded in 3D by classical scaling (package embed).

	**dgeom packages**

    sparse: sparse numeric matrices and symmetric bound sets.

    smooth: triangle-inequality bound smoothing, uniform sampling and metrization.

    embed: classical scaling with radius-of-gyration or backbone scaling.

    v3: Nx3 coordinate matrices, RMSD and superposition.

    contact: residue contact graphs and the owl graph file format.

    traj/stf: compressed multi-model trajectory files.

    dgplot: plots of inferred bounds and model distances.

The models built by Reconstruct are independent of each other and are built
concurrently. Each one has its own random source, derived from the seed in
the Options, so a given set of options always produces the same models.

ContactError and DistanceError only infer bounds, they never embed. They are
pure functions of their arguments.
*/
package dgeom
