// Copyright 2021 The pde-nn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Resample interpolates a field onto a different resolution. Grid corners
// are aligned; i.e. the first and last nodes of the input map exactly onto
// the first and last nodes of the output.
//  Input:
//   f    -- [ny][nx] input field
//   nny  -- number of output nodes along y
//   nnx  -- number of output nodes along x
//   kind -- interpolation kind: "bilinear" or "nearest"
//  Output:
//   g -- [nny][nnx] resampled field
func Resample(f [][]float64, nny, nnx int, kind string) (g [][]float64) {
	ny, nx := len(f), len(f[0])
	if ny < 2 || nx < 2 || nny < 2 || nnx < 2 {
		chk.Panic("cannot resample %dx%d field onto %dx%d nodes", ny, nx, nny, nnx)
	}
	g = make([][]float64, nny)
	ry := float64(ny-1) / float64(nny-1)
	rx := float64(nx-1) / float64(nnx-1)
	switch kind {
	case "bilinear":
		for j := 0; j < nny; j++ {
			g[j] = make([]float64, nnx)
			y := float64(j) * ry
			j0 := int(y)
			if j0 > ny-2 {
				j0 = ny - 2
			}
			wy := y - float64(j0)
			for i := 0; i < nnx; i++ {
				x := float64(i) * rx
				i0 := int(x)
				if i0 > nx-2 {
					i0 = nx - 2
				}
				wx := x - float64(i0)
				g[j][i] = (1.0-wy)*(1.0-wx)*f[j0][i0] + (1.0-wy)*wx*f[j0][i0+1] +
					wy*(1.0-wx)*f[j0+1][i0] + wy*wx*f[j0+1][i0+1]
			}
		}
	case "nearest":
		for j := 0; j < nny; j++ {
			g[j] = make([]float64, nnx)
			j0 := int(math.Round(float64(j) * ry))
			for i := 0; i < nnx; i++ {
				i0 := int(math.Round(float64(i) * rx))
				g[j][i] = f[j0][i0]
			}
		}
	default:
		chk.Panic("interpolation kind %q is not available", kind)
	}
	return
}
