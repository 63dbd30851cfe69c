// Copyright 2021 The pde-nn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package poisson

import (
	"os"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/xndrleib/pde-nn/grid"
	"github.com/xndrleib/pde-nn/inp"
	"github.com/xndrleib/pde-nn/lin"
	"github.com/xndrleib/pde-nn/nn"
)

// Network holds all data of a network Poisson solver: the loaded model,
// case configuration, rescale factors and, if requested, the refinement
// operators. The model and the operators are read-only after construction
// and reusable across repeated Solve calls.
type Network struct {

	// case data
	Case *Case        // grid configuration and solution fields
	Cfg  *inp.Network // network configuration

	// model
	Model  nn.Model // loaded model, in evaluation mode
	Device string   // compute device

	// rescale factors
	NnxNn         int     // training resolution
	Alpha         float64 // coefficient of the potential/rhs ratio
	ScalingFactor float64 // normalization constant
	Ratio         float64 // potential/rhs magnitude ratio
	ResScale      float64 // (training-resolution / configured-resolution)^2
	InterpKind    string  // interpolation kind for resolution matching

	// iterative refinement
	Refiner *lin.Refiner         // nil => refinement disabled
	bcs     map[string]string    // boundary condition kinds
	bc      map[string][]float64 // boundary values (zero fields)

	// evaluation
	Metrics *nn.MetricTracker // metrics accumulator; reset per Evaluate call
}

// NewNetwork initialises a network Poisson solver: the architecture is
// resolved (database lookup when requested), the model is instantiated,
// the checkpointed weights are loaded and, if configured, the refinement
// operators are precomputed. Configuration and load failures are fatal.
func NewNetwork(cfg *inp.Network) (o *Network) {

	// case configuration
	o = new(Network)
	o.Cfg = cfg
	o.Case = NewCase(cfg.CaseCfg())
	o.Case.Benchmark = cfg.Benchmark

	// architecture resolution
	cfg.Arch = inp.ResolveArch(&cfg.Arch)

	// data configuration
	if cfg.DataLoader.Args == nil {
		chk.Panic("configuration needs 'data_loader.args' with alpha and scaling_factor")
	}
	o.Alpha = cfg.DataLoader.Args.Alpha
	o.ScalingFactor = cfg.DataLoader.Args.ScalingFactor
	if o.ScalingFactor == 0 {
		chk.Panic("'data_loader.args.scaling_factor' cannot be zero")
	}
	if len(cfg.Metrics) > 0 {
		o.Metrics = nn.NewMetricTracker(cfg.Metrics...)
	}

	// case specific factors
	o.NnxNn = cfg.Globals.Nnx
	o.setFactors()

	// build model and load checkpoint
	o.Model = nn.Allocate(cfg.Arch.Type, cfg.Arch.Args)
	io.Pf("> Loading checkpoint: %s\n", cfg.Resume)
	checkpoint := nn.ReadCheckpoint(cfg.Resume)
	err := o.Model.LoadStateDict(checkpoint.StateDict)
	if err != nil {
		chk.Panic("checkpoint %q does not match the %q architecture:\n%v", cfg.Resume, cfg.Arch.Type, err)
	}

	// prepare model for testing
	o.Device = nn.ResolveDevice(o.Model, cfg.NGpu)
	o.Model.Eval()

	// interpolation kind
	o.InterpKind = cfg.InterpKind
	if o.InterpKind == "" {
		o.InterpKind = "bilinear"
	}

	// hybrid with iterations from the linear system solver
	if cfg.Eval != nil && cfg.Eval.IterativeRefine != "" {
		o.configureRefinement(cfg.Eval.IterativeRefine, cfg.Eval.RefineIts)
	}
	return
}

// CaseConfig reconfigures the case grid and re-derives the rescale factors.
// Refinement operators are rebuilt when the grid resolution changes.
func (o *Network) CaseConfig(g *inp.Globals) {
	benchmark := o.Case.Benchmark
	o.Case = NewCase(g)
	o.Case.Benchmark = benchmark
	o.setFactors()
	if o.Refiner != nil && o.Cfg.Eval != nil {
		o.configureRefinement(o.Cfg.Eval.IterativeRefine, o.Cfg.Eval.RefineIts)
	}
}

// setFactors computes the ratio and resolution-scale factors
func (o *Network) setFactors() {
	g := o.Case.Grid
	o.Ratio = grid.RatioPotRhs(o.Alpha, g.Lx, g.Ly)
	o.ResScale = float64(o.NnxNn*o.NnxNn) / float64(g.Nnx*g.Nnx)
}

// configureRefinement builds the system matrix and the splitting operators
func (o *Network) configureRefinement(method string, nits int) {
	g := o.Case.Grid
	o.bcs = map[string]string{"left": "dirichlet", "right": "dirichlet", "bottom": "dirichlet", "top": "dirichlet"}
	mat := lin.CartesianMatrix(g.Dx, g.Dy, g.Nnx, g.Nny, 1.0, o.bcs)
	o.bc = lin.ZeroBcs(g.Nnx, g.Nny)
	o.Refiner = lin.NewRefiner(method, nits, mat)
}

// Solve runs the Poisson solver on a physical rhs field of shape
// (nny, nnx) matching the configured grid. The input is rescaled and, if
// the model expects a different resolution, resampled up before inference
// and back down after; the output is rescaled to physical units and, when
// refinement is configured, corrected by the fixed budget of sweeps.
func (o *Network) Solve(physicalRhs [][]float64) {
	o.Case.PhysicalRhs = physicalRhs
	g := o.Case.Grid

	// interpolate if the rhs resolution does not match the model input
	mnx, mny := o.Model.InputRes()
	interpolate := mnx != g.Nnx || mny != g.Nny

	var commTimer, modelTimer, totalTimer time.Duration
	t0 := time.Now()

	// normalize and transfer
	x := scaled(physicalRhs, o.Ratio*o.ScalingFactor)
	commTimer = time.Since(t0)

	// forward inference, resampling around it if needed
	tm := time.Now()
	if interpolate {
		x = grid.Resample(x, mny, mnx, o.InterpKind)
	}
	y := o.Model.Forward(x)
	if interpolate {
		y = grid.Resample(y, g.Nny, g.Nnx, o.InterpKind)
	}
	modelTimer = time.Since(tm)

	// retrieve the potential
	tr := time.Now()
	o.Case.Potential = scaled(y, o.ResScale/o.ScalingFactor)
	commTimer += time.Since(tr)
	totalTimer = time.Since(t0)

	// iterative refine
	if o.Refiner != nil {
		lin.ImposeDirichlet(o.Case.PhysicalRhs, o.bc)
		o.Refiner.Apply(o.Case.Potential, o.Case.PhysicalRhs)
	}

	// benchmarks
	if o.Case.Benchmark {
		io.Pf("comm_timer=%v\n", commTimer)
		io.Pf("model_timer=%v\n", modelTimer)
		io.Pf("total_timer=%v\n", totalTimer)
	}
}

// RunCase creates a case directory, solves and, if requested, persists the
// solution fields and two diagnostic figures
func (o *Network) RunCase(caseDir string, physicalRhs [][]float64, plot, save bool) {
	err := os.MkdirAll(caseDir, 0777)
	if err != nil {
		chk.Panic("cannot create case directory %q", caseDir)
	}
	o.Solve(physicalRhs)
	if save {
		o.Case.Save(caseDir)
	}
	if plot {
		figDir := caseDir + "/figures"
		err = os.MkdirAll(figDir, 0777)
		if err != nil {
			chk.Panic("cannot create figures directory %q", figDir)
		}
		o.Case.Plot2D(figDir, "2D")
		o.Case.Plot1D2D(figDir, "full")
	}
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
