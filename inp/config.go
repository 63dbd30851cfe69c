// Copyright 2021 The pde-nn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from an evaluation (.yml) file
package inp

import (
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gopkg.in/yaml.v3"
)

// Globals holds the grid/domain data of one case configuration
type Globals struct {
	Nnx       int     `yaml:"nnx"`       // number of nodes along x
	Nny       int     `yaml:"nny"`       // number of nodes along y
	Xmin      float64 `yaml:"xmin"`      // left coordinate
	Xmax      float64 `yaml:"xmax"`      // right coordinate
	Ymin      float64 `yaml:"ymin"`      // bottom coordinate
	Ymax      float64 `yaml:"ymax"`      // top coordinate
	Coord     string  `yaml:"coord"`     // coordinate system; e.g. "cart"
	Verbosity int     `yaml:"verbosity"` // verbosity level
}

// EvalData holds the evaluation case configuration. The grid may differ
// from the training grid in Globals; interpolation bridges the two.
type EvalData struct {
	Globals         `yaml:",inline"`
	IterativeRefine string `yaml:"iterative_refine"` // refine method: "gauss_seidel", "jacobi" or "" (disabled)
	RefineIts       int    `yaml:"refine_its"`       // number of refinement sweeps
}

// ArchData holds the network architecture definition. If DbFile is given,
// the definition is looked up by name in the architecture database and
// call-site args are merged with the database args. NOTE: the database is
// authoritative — on conflicting keys its values override the call-site
// args, which only supply defaults for keys the database leaves out. This
// matches the merge order of the reference configuration files, where the
// database is the single source of truth for architecture hyperparameters.
type ArchData struct {
	DbFile      string                 `yaml:"db_file"`   // architecture database filename inside $ARCHS_DIR
	Name        string                 `yaml:"name"`      // architecture name; key in the database
	Type        string                 `yaml:"type"`      // allocator type registered by the model package
	Args        map[string]interface{} `yaml:"args"`      // constructor arguments
	RfGlobal    int                    `yaml:"rf_global"` // global receptive field
	Nbranches   int                    `yaml:"nbranches"` // number of scale branches
	Depths      []int                  `yaml:"depths"`    // depth per branch
	KernelSizes []int                  `yaml:"ks"`        // kernel sizes
}

// LoaderArgs holds data-loader constructor arguments
type LoaderArgs struct {
	DataDir       string  `yaml:"data_dir"`       // dataset directory
	BatchSize     int     `yaml:"batch_size"`     // number of samples per batch
	Shuffle       bool    `yaml:"shuffle"`        // shuffle samples
	ScalingFactor float64 `yaml:"scaling_factor"` // normalization constant applied before/after inference
	Alpha         float64 `yaml:"alpha"`          // coefficient of the potential/rhs ratio
}

// DataLoaderData holds the data-loader selection
type DataLoaderData struct {
	Type string      `yaml:"type"` // loader type registered by the data package
	Args *LoaderArgs `yaml:"args"` // constructor arguments; nil disables batch evaluation
}

// Network holds the configuration of the network Poisson solver
type Network struct {

	// input data
	Casename   string         `yaml:"casename"`    // case directory; e.g. cases/unet5/random_8
	Resume     string         `yaml:"resume"`      // checkpoint file path
	Arch       ArchData       `yaml:"arch"`        // architecture definition
	Globals    Globals        `yaml:"globals"`     // training grid/domain data
	DataLoader DataLoaderData `yaml:"data_loader"` // data loader for batch evaluation
	Metrics    []string       `yaml:"metrics"`     // metric names to follow during evaluation
	InterpKind string         `yaml:"interp_kind"` // interpolation kind; default "bilinear"
	Benchmark  bool           `yaml:"benchmark"`   // record and log solve timings
	NGpu       int            `yaml:"n_gpu"`       // number of accelerators allowed

	// derived
	Eval *EvalData // evaluation case configuration; nil => use Globals
}

// Config holds all data of one evaluation run
type Config struct {
	Network  Network           `yaml:"network"`  // network configuration
	Eval     *EvalData         `yaml:"eval"`     // evaluation case configuration; nil => evaluate on the training grid
	Datasets map[string]string `yaml:"datasets"` // dataset name => dataset directory
}

// SetDefault sets default values
func (o *Network) SetDefault() {
	o.InterpKind = "bilinear"
}

// CaseCfg returns the case configuration: the eval block when present,
// otherwise the training globals
func (o *Network) CaseCfg() *Globals {
	if o.Eval != nil {
		return &o.Eval.Globals
	}
	return &o.Globals
}

// ReadConfig reads an evaluation configuration from a YAML file. The
// network architecture is resolved against the database (if requested) and
// the eval block is attached to the network configuration.
func ReadConfig(fnamepath string) (o *Config) {

	// read file
	b := io.ReadFile(fnamepath)

	// decode
	o = new(Config)
	o.Network.SetDefault()
	err := yaml.Unmarshal(b, o)
	if err != nil {
		chk.Panic("ReadConfig: cannot unmarshal configuration file %q:\n%v", fnamepath, err)
	}

	// check required keys
	if o.Network.Casename == "" {
		chk.Panic("ReadConfig: 'network.casename' is missing in %q", fnamepath)
	}
	if o.Network.Resume == "" {
		chk.Panic("ReadConfig: 'network.resume' is missing in %q", fnamepath)
	}

	// derived data; the architecture is resolved later, by the solver.
	// a missing eval block leaves Eval nil and the training grid is used
	o.Network.Eval = o.Eval
	return
}

// ResolveArch resolves an architecture definition against the database
// file located in the $ARCHS_DIR directory. Call-site args are merged with
// the database args, with the database overriding on conflicts.
func ResolveArch(a *ArchData) ArchData {
	if a.DbFile == "" {
		return *a
	}
	dbpath := filepath.Join(os.Getenv("ARCHS_DIR"), a.DbFile)
	b := io.ReadFile(dbpath)
	var db map[string]ArchData
	err := yaml.Unmarshal(b, &db)
	if err != nil {
		chk.Panic("cannot unmarshal architecture database %q:\n%v", dbpath, err)
	}
	def, ok := db[a.Name]
	if !ok {
		chk.Panic("cannot find architecture named %q in database %q", a.Name, dbpath)
	}
	def.Name = a.Name
	if len(a.Args) > 0 {
		args := make(map[string]interface{})
		for k, v := range a.Args {
			args[k] = v
		}
		for k, v := range def.Args {
			args[k] = v
		}
		def.Args = args
	}
	return def
}
