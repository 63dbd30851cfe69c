// Copyright 2021 The pde-nn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package nn implements the contracts with trained network architectures:
// model allocation, checkpoint loading and evaluation metrics
package nn

import (
	"github.com/cpmech/gosl/chk"
)

// Param holds one named parameter tensor of a checkpoint
type Param struct {
	Shape  []int     // tensor shape
	Values []float64 // flattened values, row-major
}

// StateDict maps parameter names to tensors
type StateDict map[string]Param

// Model defines the contract with trained network surrogates. Architecture
// implementations live outside this module and register themselves with
// Register; after LoadStateDict and Eval the model must be immutable.
type Model interface {
	Type() string                        // architecture type name
	InputRes() (nnx, nny int)            // expected input resolution
	Forward(x [][]float64) [][]float64   // forward inference of one field
	LoadStateDict(sd StateDict) error    // load checkpointed weights
	Eval()                               // disable training-only behaviour such as dropout
}

// Accelerated is implemented by models that can be moved to an accelerator
type Accelerated interface {
	ToDevice(device string) error
}

// Allocator creates a model from constructor arguments
type Allocator func(args map[string]interface{}) Model

// allocators maps architecture type names to allocators
var allocators = map[string]Allocator{}

// Register registers a model allocator. It is usually called from init()
// in the architecture package.
func Register(typename string, a Allocator) {
	if _, ok := allocators[typename]; ok {
		chk.Panic("allocator %q is already registered", typename)
	}
	allocators[typename] = a
}

// Allocate creates a model of the given architecture type
func Allocate(typename string, args map[string]interface{}) Model {
	a, ok := allocators[typename]
	if !ok {
		chk.Panic("cannot find architecture type named %q", typename)
	}
	return a(args)
}

// ResolveDevice selects the compute device: the accelerator when the model
// supports one and ngpu allows it, otherwise the cpu
func ResolveDevice(m Model, ngpu int) string {
	if ngpu > 0 {
		if acc, ok := m.(Accelerated); ok {
			if acc.ToDevice("gpu") == nil {
				return "gpu"
			}
		}
	}
	return "cpu"
}
