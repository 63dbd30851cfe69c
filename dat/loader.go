// Copyright 2021 The pde-nn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package dat implements the dataset/data-loader contract used by the
// batch evaluation of network solvers
package dat

import (
	"github.com/cpmech/gosl/chk"

	"github.com/xndrleib/pde-nn/inp"
)

// Batch holds one batch of dataset tensors, each with [nbatch][nny][nnx]
// entries. Data and Target carry the same normalization the network was
// trained with; DataNorm and TargetNorm hold per-sample norms.
type Batch struct {
	Data       [][][]float64 // scaled rhs fields; network inputs
	Target     [][][]float64 // scaled potential fields
	DataNorm   []float64     // per-sample inf-norm of Data
	TargetNorm []float64     // per-sample inf-norm of Target
}

// Loader yields dataset batches, one at a time
type Loader interface {
	Next() (b *Batch, ok bool) // next batch; ok==false when exhausted
	Nbatches() int             // total number of batches
}

// Allocator creates a loader from the network configuration and loader
// arguments; args.DataDir must be set
type Allocator func(cfg *inp.Network, args *inp.LoaderArgs) Loader

// allocators maps loader type names to allocators
var allocators = map[string]Allocator{}

// Register registers a loader allocator
func Register(typename string, a Allocator) {
	if _, ok := allocators[typename]; ok {
		chk.Panic("loader %q is already registered", typename)
	}
	allocators[typename] = a
}

// Allocate creates a loader of the given type
func Allocate(typename string, cfg *inp.Network, args *inp.LoaderArgs) Loader {
	a, ok := allocators[typename]
	if !ok {
		chk.Panic("cannot find data loader type named %q", typename)
	}
	if args == nil || args.DataDir == "" {
		chk.Panic("data loader %q needs a 'data_dir' argument", typename)
	}
	return a(cfg, args)
}
