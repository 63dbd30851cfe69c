// Copyright 2021 The pde-nn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dat

import (
	"math"
	"math/rand"
	"path/filepath"

	"github.com/cpmech/gosl/chk"

	"github.com/xndrleib/pde-nn/grid"
	"github.com/xndrleib/pde-nn/inp"
	"github.com/xndrleib/pde-nn/out"
)

// shuffleSeed fixes the sample permutation so that repeated evaluations of
// the same dataset visit samples in the same order
const shuffleSeed = 20210618

// NpyDirLoader reads a reference dataset stored as two npy arrays in a
// directory: physical_rhs.npy and potential.npy, both (nsamples, nny, nnx).
// Samples are scaled the way the network was trained: rhs multiplied by
// ratio*scaling_factor and potential multiplied by scaling_factor.
type NpyDirLoader struct {
	rhs       [][][]float64 // raw rhs fields
	pot       [][][]float64 // raw potential fields
	order     []int         // sample visiting order; permuted when shuffling
	batchSize int           // samples per batch
	scaling   float64       // scaling factor
	ratio     float64       // potential/rhs ratio
	pos       int           // cursor into the visiting order
}

func init() {
	Register("npydir", func(cfg *inp.Network, args *inp.LoaderArgs) Loader {
		return NewNpyDirLoader(cfg, args)
	})
}

// NewNpyDirLoader reads the dataset arrays and prepares batching
func NewNpyDirLoader(cfg *inp.Network, args *inp.LoaderArgs) (o *NpyDirLoader) {
	o = new(NpyDirLoader)
	var err error
	o.rhs, err = out.ReadNpy3(filepath.Join(args.DataDir, "physical_rhs.npy"))
	if err != nil {
		chk.Panic("cannot read dataset rhs array:\n%v", err)
	}
	o.pot, err = out.ReadNpy3(filepath.Join(args.DataDir, "potential.npy"))
	if err != nil {
		chk.Panic("cannot read dataset potential array:\n%v", err)
	}
	if len(o.rhs) != len(o.pot) {
		chk.Panic("dataset arrays disagree: %d rhs samples but %d potential samples", len(o.rhs), len(o.pot))
	}
	o.batchSize = args.BatchSize
	if o.batchSize < 1 {
		o.batchSize = len(o.rhs)
	}
	o.order = make([]int, len(o.rhs))
	for i := range o.order {
		o.order[i] = i
	}
	if args.Shuffle {
		rnd := rand.New(rand.NewSource(shuffleSeed))
		rnd.Shuffle(len(o.order), func(a, b int) {
			o.order[a], o.order[b] = o.order[b], o.order[a]
		})
	}
	g := cfg.CaseCfg()
	o.scaling = args.ScalingFactor
	o.ratio = grid.RatioPotRhs(args.Alpha, g.Xmax-g.Xmin, g.Ymax-g.Ymin)
	return
}

// Nbatches returns the total number of batches
func (o *NpyDirLoader) Nbatches() int {
	return (len(o.rhs) + o.batchSize - 1) / o.batchSize
}

// Next yields the next batch
func (o *NpyDirLoader) Next() (b *Batch, ok bool) {
	if o.pos >= len(o.order) {
		return nil, false
	}
	hi := o.pos + o.batchSize
	if hi > len(o.order) {
		hi = len(o.order)
	}
	b = new(Batch)
	for _, s := range o.order[o.pos:hi] {
		data := scaled(o.rhs[s], o.ratio*o.scaling)
		target := scaled(o.pot[s], o.scaling)
		b.Data = append(b.Data, data)
		b.Target = append(b.Target, target)
		b.DataNorm = append(b.DataNorm, infNorm(data))
		b.TargetNorm = append(b.TargetNorm, infNorm(target))
	}
	o.pos = hi
	return b, true
}

// scaled returns a copy of a field multiplied by a factor
func scaled(f [][]float64, factor float64) (g [][]float64) {
	g = make([][]float64, len(f))
	for j := range f {
		g[j] = make([]float64, len(f[j]))
		for i := range f[j] {
			g[j][i] = factor * f[j][i]
		}
	}
	return
}

// infNorm returns the maximum absolute entry of a field
func infNorm(f [][]float64) (res float64) {
	for j := range f {
		for i := range f[j] {
			res = math.Max(res, math.Abs(f[j][i]))
		}
	}
	return
}
