// Copyright 2021 The pde-nn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nn

import (
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"

	"github.com/xndrleib/pde-nn/out"
)

// Checkpoint holds the serialized data of a trained model
type Checkpoint struct {
	Epoch     int       // epoch at which the checkpoint was taken
	StateDict StateDict // parameter name => tensor
}

// ReadCheckpoint reads a checkpoint file. The encoder is selected from the
// file extension: ".json" => json, anything else => gob. A missing or
// unreadable file is fatal.
func ReadCheckpoint(path string) (o *Checkpoint) {
	f, err := os.Open(path)
	if err != nil {
		chk.Panic("cannot open checkpoint file %q", path)
	}
	defer f.Close()
	enctype := "gob"
	if filepath.Ext(path) == ".json" {
		enctype = "json"
	}
	dec := out.GetDecoder(f, enctype)
	o = new(Checkpoint)
	err = dec.Decode(o)
	if err != nil {
		chk.Panic("cannot decode checkpoint file %q:\n%v", path, err)
	}
	if o.StateDict == nil {
		chk.Panic("checkpoint file %q has no state_dict", path)
	}
	return
}

// WriteCheckpoint writes a checkpoint file using the encoder selected from
// the file extension
func WriteCheckpoint(path string, c *Checkpoint) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return chk.Err("cannot create checkpoint file %q", path)
	}
	defer f.Close()
	enctype := "gob"
	if filepath.Ext(path) == ".json" {
		enctype = "json"
	}
	enc := out.GetEncoder(f, enctype)
	return enc.Encode(c)
}

// CheckShapes verifies that a state dict matches the expected parameter
// shapes of a model; name or shape mismatches produce an error
//  Input:
//   sd       -- the loaded state dict
//   expected -- parameter name => shape of the instantiated model
func CheckShapes(sd StateDict, expected map[string][]int) (err error) {
	for name, shape := range expected {
		p, ok := sd[name]
		if !ok {
			return chk.Err("state_dict is missing parameter %q", name)
		}
		if !sameShape(p.Shape, shape) {
			return chk.Err("parameter %q has shape %v but the model expects %v", name, p.Shape, shape)
		}
		if p.NumValues() != len(p.Values) {
			return chk.Err("parameter %q has %d values but its shape %v needs %d", name, len(p.Values), p.Shape, p.NumValues())
		}
	}
	for name := range sd {
		if _, ok := expected[name]; !ok {
			return chk.Err("state_dict has unexpected parameter %q", name)
		}
	}
	return
}

// NumValues returns the number of values implied by the parameter shape
func (o Param) NumValues() (n int) {
	n = 1
	for _, s := range o.Shape {
		n *= s
	}
	return
}

func sameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
