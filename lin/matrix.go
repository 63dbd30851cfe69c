// Copyright 2021 The pde-nn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package lin implements the discretized Laplacian linear system and the
// fixed-budget iterative refiner used to correct network-produced potentials
package lin

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Sides of the rectangular domain, in the order used for boundary maps
var Sides = []string{"left", "right", "bottom", "top"}

// entry is one coefficient of the assembled system
type entry struct {
	i, j int
	x    float64
}

// Matrix holds the sparse discretized Laplacian of a cartesian grid with
// Dirichlet rows replaced by identity constraints. The structure depends
// only on the grid and the boundary kinds, never on field values.
type Matrix struct {

	// data
	Nnx int         // number of nodes along x
	Nny int         // number of nodes along y
	N   int         // system size == nnx*nny
	T   la.Triplet   // assembled coefficients
	A   *la.CCMatrix // compressed-column form

	// derived
	dirichlet []bool  // [n] node is constrained by an identity row
	entries   []entry // assembly record; used to build splitting operators
}

// node returns the equation number of grid node (row j, column i)
func node(j, i, nnx int) int { return j*nnx + i }

// CartesianMatrix builds the 5-point finite-difference Laplacian over a
// cartesian grid, scaled by a diffusion coefficient. Rows of nodes lying on
// a side with a Dirichlet condition become identity constraints.
//  Input:
//   dx, dy   -- grid spacing
//   nnx, nny -- grid resolution
//   scale    -- diffusion coefficient multiplying the operator
//   bcs      -- side name => condition kind; only "dirichlet" is available
func CartesianMatrix(dx, dy float64, nnx, nny int, scale float64, bcs map[string]string) (o *Matrix) {

	// check boundary kinds
	for _, side := range Sides {
		kind, ok := bcs[side]
		if !ok {
			chk.Panic("boundary condition for side %q is missing", side)
		}
		if kind != "dirichlet" {
			chk.Panic("boundary condition kind %q (side %q) is not available", kind, side)
		}
	}

	// allocate
	o = new(Matrix)
	o.Nnx, o.Nny = nnx, nny
	o.N = nnx * nny
	o.dirichlet = make([]bool, o.N)
	o.entries = make([]entry, 0, 5*o.N)

	// coefficients
	cdx := scale / (dx * dx)
	cdy := scale / (dy * dy)

	// assemble
	for j := 0; j < nny; j++ {
		for i := 0; i < nnx; i++ {
			r := node(j, i, nnx)
			if i == 0 || i == nnx-1 || j == 0 || j == nny-1 {
				o.dirichlet[r] = true
				o.put(r, r, 1.0)
				continue
			}
			o.put(r, r, -2.0*(cdx+cdy))
			o.put(r, node(j, i-1, nnx), cdx)
			o.put(r, node(j, i+1, nnx), cdx)
			o.put(r, node(j-1, i, nnx), cdy)
			o.put(r, node(j+1, i, nnx), cdy)
		}
	}

	// compress
	o.T.Init(o.N, o.N, len(o.entries))
	for _, e := range o.entries {
		o.T.Put(e.i, e.j, e.x)
	}
	o.A = o.T.ToMatrix(nil)
	return
}

// put records one assembly coefficient
func (o *Matrix) put(i, j int, x float64) {
	o.entries = append(o.entries, entry{i, j, x})
}

// Diagonal extracts the diagonal of the assembled matrix
func (o *Matrix) Diagonal() (d []float64) {
	d = make([]float64, o.N)
	for _, e := range o.entries {
		if e.i == e.j {
			d[e.i] += e.x
		}
	}
	return
}

// MatVec computes y := M*x using the compressed form
func (o *Matrix) MatVec(y, x []float64) {
	la.SpMatVecMul(y, 1, o.A, x)
}

// ImposeDirichlet overwrites the boundary entries of a field, in place,
// with the given boundary values. Applying it twice yields the same field
// as applying it once.
//  Input:
//   f  -- [nny][nnx] field to be modified
//   bc -- side name => boundary values; "left" and "right" arrays must have
//         nny entries; "bottom" and "top" arrays must have nnx entries
func ImposeDirichlet(f [][]float64, bc map[string][]float64) {
	nny, nnx := len(f), len(f[0])
	for _, side := range Sides {
		vals, ok := bc[side]
		if !ok {
			chk.Panic("boundary values for side %q are missing", side)
		}
		switch side {
		case "left", "right":
			chk.IntAssert(len(vals), nny)
		case "bottom", "top":
			chk.IntAssert(len(vals), nnx)
		}
	}
	for j := 0; j < nny; j++ {
		f[j][0] = bc["left"][j]
		f[j][nnx-1] = bc["right"][j]
	}
	for i := 0; i < nnx; i++ {
		f[0][i] = bc["bottom"][i]
		f[nny-1][i] = bc["top"][i]
	}
}

// ZeroBcs returns a boundary-value map with zero values on all sides
func ZeroBcs(nnx, nny int) map[string][]float64 {
	return map[string][]float64{
		"left":   make([]float64, nny),
		"right":  make([]float64, nny),
		"bottom": make([]float64, nnx),
		"top":    make([]float64, nnx),
	}
}
