// Copyright 2021 The pde-nn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package grid implements the cartesian grid geometry of a Poisson case
package grid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Grid holds the geometry of a rectangular cartesian grid. Fields are set
// once by New and must not be modified afterwards.
type Grid struct {

	// input data
	Nnx  int     // number of nodes along x
	Nny  int     // number of nodes along y
	Xmin float64 // left coordinate
	Xmax float64 // right coordinate
	Ymin float64 // bottom coordinate
	Ymax float64 // top coordinate

	// derived
	Lx float64   // domain length along x
	Ly float64   // domain length along y
	Dx float64   // spacing along x
	Dy float64   // spacing along y
	X  []float64 // [nnx] node coordinates along x
	Y  []float64 // [nny] node coordinates along y
}

// New returns a new grid for the given resolution and domain limits
func New(nnx, nny int, xmin, xmax, ymin, ymax float64) (o *Grid) {
	if nnx < 2 || nny < 2 {
		chk.Panic("grid needs at least 2x2 nodes. nnx=%d nny=%d is invalid", nnx, nny)
	}
	o = new(Grid)
	o.Nnx, o.Nny = nnx, nny
	o.Xmin, o.Xmax = xmin, xmax
	o.Ymin, o.Ymax = ymin, ymax
	o.Lx = xmax - xmin
	o.Ly = ymax - ymin
	o.Dx = o.Lx / float64(nnx-1)
	o.Dy = o.Ly / float64(nny-1)
	o.X = utl.LinSpace(xmin, xmax, nnx)
	o.Y = utl.LinSpace(ymin, ymax, nny)
	return
}

// Size returns the total number of nodes
func (o *Grid) Size() int { return o.Nnx * o.Nny }

// RatioPotRhs computes the domain-geometry-dependent factor relating the
// magnitudes of potential and rhs fields
func RatioPotRhs(alpha, lx, ly float64) float64 {
	q := math.Pi * math.Pi / 4.0
	return alpha / (q * q) / (1.0/(lx*lx) + 1.0/(ly*ly))
}

// NewField allocates a field over this grid with [nny][nnx] entries
func (o *Grid) NewField() [][]float64 {
	f := make([][]float64, o.Nny)
	for j := 0; j < o.Nny; j++ {
		f[j] = make([]float64, o.Nnx)
	}
	return f
}

// Efield computes the electric field E = -grad(phi) using central
// differences on interior nodes and one-sided differences on boundaries
//  Input:
//   phi -- [nny][nnx] potential field
//  Output:
//   ex, ey -- [nny][nnx] field components
func (o *Grid) Efield(phi [][]float64) (ex, ey [][]float64) {
	ex, ey = o.NewField(), o.NewField()
	for j := 0; j < o.Nny; j++ {
		for i := 0; i < o.Nnx; i++ {
			switch i {
			case 0:
				ex[j][i] = -(phi[j][i+1] - phi[j][i]) / o.Dx
			case o.Nnx - 1:
				ex[j][i] = -(phi[j][i] - phi[j][i-1]) / o.Dx
			default:
				ex[j][i] = -(phi[j][i+1] - phi[j][i-1]) / (2.0 * o.Dx)
			}
			switch j {
			case 0:
				ey[j][i] = -(phi[j+1][i] - phi[j][i]) / o.Dy
			case o.Nny - 1:
				ey[j][i] = -(phi[j][i] - phi[j-1][i]) / o.Dy
			default:
				ey[j][i] = -(phi[j+1][i] - phi[j-1][i]) / (2.0 * o.Dy)
			}
		}
	}
	return
}
