// Copyright 2021 The pde-nn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package poisson

import (
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/xndrleib/pde-nn/dat"
	"github.com/xndrleib/pde-nn/nn"
	"github.com/xndrleib/pde-nn/out"
)

// Evaluate runs the model over all batches of a reference dataset and
// returns the finalized metrics accumulator. If plot is true, two figures
// are saved for the first sample of each batch; if saveData is true, the
// raw output and target arrays of each batch are written to fixed-named
// files, each batch overwriting the previous one.
//  Input:
//   dataDir  -- dataset directory; overrides the configured data_dir
//   caseDir  -- output directory of this evaluation
//   plot     -- save per-batch comparison figures
//   saveData -- save raw output/target arrays
func (o *Network) Evaluate(dataDir, caseDir string, plot, saveData bool) *nn.MetricTracker {

	// create case directory
	err := os.MkdirAll(caseDir, 0777)
	if err != nil {
		chk.Panic("cannot create case directory %q", caseDir)
	}
	figDir := filepath.Join(caseDir, "figures")
	if plot {
		err = os.MkdirAll(figDir, 0777)
		if err != nil {
			chk.Panic("cannot create figures directory %q", figDir)
		}
	}

	// load dataset
	if o.Metrics == nil {
		chk.Panic("configuration needs a 'metrics' list for evaluation")
	}
	args := *o.Cfg.DataLoader.Args
	args.DataDir = dataDir
	loader := dat.Allocate(o.Cfg.DataLoader.Type, o.Cfg, &args)
	o.Metrics.Reset()

	// metric functions
	fns := make(map[string]nn.MetricFn)
	for _, name := range o.Metrics.Names() {
		fns[name] = nn.Metric(name)
	}

	// evaluate the network and follow metrics
	g := o.Case.Grid
	io.Pf("> Evaluating %d batches from %s\n", loader.Nbatches(), dataDir)
	for i := 0; ; i++ {
		b, ok := loader.Next()
		if !ok {
			break
		}

		// divide outputs and targets by the scaling factor to go back to
		// the real values
		output := make([][][]float64, len(b.Data))
		target := make([][][]float64, len(b.Target))
		for s := range b.Data {
			output[s] = scaled(o.Model.Forward(b.Data[s]), o.ResScale/o.ScalingFactor)
			target[s] = scaled(b.Target[s], 1.0/o.ScalingFactor)
		}

		// update metrics
		for _, name := range o.Metrics.Names() {
			o.Metrics.Update(name, fns[name](output, target, g))
		}

		// save sample figures for the first sample of the batch
		if plot {
			out.PlotBatch(output, target, b.Data, 0, i, g, figDir)
			out.PlotBatchEfield(output, target, b.Data, 0, i, g, figDir)
		}

		// save raw arrays; the fixed filenames keep the last batch only
		if saveData {
			err = out.WriteNpy3(filepath.Join(caseDir, "output.npy"), output)
			if err != nil {
				chk.Panic("cannot save output array:\n%v", err)
			}
			err = out.WriteNpy3(filepath.Join(caseDir, "target.npy"), target)
			if err != nil {
				chk.Panic("cannot save target array:\n%v", err)
			}
		}
	}
	return o.Metrics
}
