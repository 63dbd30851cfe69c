// Copyright 2021 The pde-nn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"

	"github.com/xndrleib/pde-nn/grid"
)

// meshgrid builds coordinate matrices over the grid nodes
func meshgrid(g *grid.Grid) (X, Y [][]float64) {
	X, Y = g.NewField(), g.NewField()
	for j := 0; j < g.Nny; j++ {
		for i := 0; i < g.Nnx; i++ {
			X[j][i] = g.X[i]
			Y[j][i] = g.Y[j]
		}
	}
	return
}

// Plot2D saves a 2D contour map of a potential field
//  Input:
//   phi    -- [nny][nnx] potential
//   g      -- grid configuration
//   dirout -- output directory
//   fnkey  -- filename key (no extension)
func Plot2D(phi [][]float64, g *grid.Grid, dirout, fnkey string) {
	X, Y := meshgrid(g)
	plt.Reset(true, &plt.A{Dpi: 150, Prop: 1.0})
	plt.ContourF(X, Y, phi, nil)
	plt.Equal()
	plt.Gll("$x$", "$y$", nil)
	plt.Save(dirout, fnkey)
}

// Plot1D2D saves a combined view of a potential field: the 2D contour map
// plus 1D profiles along the horizontal centerline
func Plot1D2D(phi, rhs [][]float64, g *grid.Grid, dirout, fnkey string) {
	X, Y := meshgrid(g)
	jmid := g.Nny / 2
	plt.Reset(true, &plt.A{Dpi: 150, Prop: 1.5})
	plt.Subplot(2, 1, 1)
	plt.ContourF(X, Y, phi, nil)
	plt.Equal()
	plt.Gll("$x$", "$y$", nil)
	plt.Subplot(2, 1, 2)
	plt.Plot(g.X, phi[jmid], &plt.A{C: "b", L: "potential"})
	plt.Plot(g.X, rhs[jmid], &plt.A{C: "r", Ls: "--", L: "rhs"})
	plt.Gll("$x$", "$u$", nil)
	plt.Save(dirout, fnkey)
}

// PlotBatch saves the comparison figure of one sample of a batch: input
// rhs, target potential and network output side by side
//  Input:
//   output, target, data -- [nbatch][nny][nnx] batch tensors
//   idx      -- sample index within the batch
//   batchIdx -- batch index; used in the filename batch_{:05d}
func PlotBatch(output, target, data [][][]float64, idx, batchIdx int, g *grid.Grid, figdir string) {
	X, Y := meshgrid(g)
	plt.Reset(true, &plt.A{Dpi: 150, Prop: 0.5})
	titles := []string{"rhs", "target", "output"}
	fields := [][][]float64{data[idx], target[idx], output[idx]}
	for k := 0; k < 3; k++ {
		plt.Subplot(1, 3, k+1)
		plt.ContourF(X, Y, fields[k], nil)
		plt.Equal()
		plt.Title(titles[k], nil)
	}
	plt.Save(figdir, io.Sf("batch_%05d", batchIdx))
}

// PlotBatchEfield saves the electric-field comparison figure of one sample
// of a batch: |E| from the target and from the network output
func PlotBatchEfield(output, target, data [][][]float64, idx, batchIdx int, g *grid.Grid, figdir string) {
	X, Y := meshgrid(g)
	normE := func(phi [][]float64) [][]float64 {
		ex, ey := g.Efield(phi)
		nrm := g.NewField()
		for j := 0; j < g.Nny; j++ {
			for i := 0; i < g.Nnx; i++ {
				nrm[j][i] = math.Sqrt(ex[j][i]*ex[j][i] + ey[j][i]*ey[j][i])
			}
		}
		return nrm
	}
	plt.Reset(true, &plt.A{Dpi: 150, Prop: 0.7})
	titles := []string{"target", "output"}
	fields := [][][]float64{normE(target[idx]), normE(output[idx])}
	for k := 0; k < 2; k++ {
		plt.Subplot(1, 2, k+1)
		plt.ContourF(X, Y, fields[k], nil)
		plt.Equal()
		plt.Title(titles[k], nil)
	}
	plt.Save(figdir, io.Sf("batch_Efield_%05d", batchIdx))
}
