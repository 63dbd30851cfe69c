// Copyright 2021 The pde-nn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package poisson implements the network solver of the Poisson problem:
// checkpointed inference, optional iterative refinement and the evaluation
// of reference datasets
package poisson

import (
	"path/filepath"

	"github.com/cpmech/gosl/chk"

	"github.com/xndrleib/pde-nn/grid"
	"github.com/xndrleib/pde-nn/inp"
	"github.com/xndrleib/pde-nn/out"
)

// Case holds the grid configuration and the solution fields of one Poisson
// case. Solvers hold a Case instead of deriving its fields.
type Case struct {
	Grid        *grid.Grid  // grid configuration
	PhysicalRhs [][]float64 // [nny][nnx] rhs of the last solve
	Potential   [][]float64 // [nny][nnx] potential of the last solve
	Benchmark   bool        // record and log solve timings
}

// NewCase returns a case over the grid described by the globals data
func NewCase(g *inp.Globals) (o *Case) {
	if g.Coord != "" && g.Coord != "cart" {
		chk.Panic("coordinate system %q is not available", g.Coord)
	}
	o = new(Case)
	o.Grid = grid.New(g.Nnx, g.Nny, g.Xmin, g.Xmax, g.Ymin, g.Ymax)
	return
}

// Save writes the rhs and potential fields of the last solve to npy files
// inside the case directory
func (o *Case) Save(caseDir string) {
	if o.Potential == nil {
		chk.Panic("cannot save case: there is no solution yet")
	}
	err := out.WriteNpy2(filepath.Join(caseDir, "physical_rhs.npy"), o.PhysicalRhs)
	if err != nil {
		chk.Panic("cannot save rhs:\n%v", err)
	}
	err = out.WriteNpy2(filepath.Join(caseDir, "potential.npy"), o.Potential)
	if err != nil {
		chk.Panic("cannot save potential:\n%v", err)
	}
}

// Plot2D saves the 2D contour map of the last potential
func (o *Case) Plot2D(figDir, fnkey string) {
	out.Plot2D(o.Potential, o.Grid, figDir, fnkey)
}

// Plot1D2D saves the combined 1D/2D view of the last solution
func (o *Case) Plot1D2D(figDir, fnkey string) {
	out.Plot1D2D(o.Potential, o.PhysicalRhs, o.Grid, figDir, fnkey)
}
