// Copyright 2021 The pde-nn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nn

import (
	"os"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/xndrleib/pde-nn/grid"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_metrics01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("metrics01. residual and inf_norm on a small batch")

	g := grid.New(3, 2, 0.0, 1.0, 0.0, 1.0)
	output := [][][]float64{{
		{1.0, 2.0, 3.0},
		{4.0, 5.0, 6.0},
	}}
	target := [][][]float64{{
		{1.0, 2.5, 3.0},
		{4.0, 5.0, 4.0},
	}}

	// |diff| = {0, 0.5, 0, 0, 0, 2}
	chk.Float64(tst, "residual", 1e-15, Metric("residual")(output, target, g), 2.5/6.0)
	chk.Float64(tst, "inf_norm", 1e-15, Metric("inf_norm")(output, target, g), 2.0)

	// identical fields have identical electric fields
	chk.Float64(tst, "Eresidual", 1e-15, Metric("Eresidual")(output, output, g), 0.0)
	chk.Float64(tst, "Einf_norm", 1e-15, Metric("Einf_norm")(output, output, g), 0.0)
}

func Test_metrics02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("metrics02. electric field metrics see constant offsets as zero")

	// a constant offset between potentials leaves the gradients identical
	g := grid.New(4, 4, 0.0, 1.0, 0.0, 1.0)
	output := [][][]float64{g.NewField()}
	target := [][][]float64{g.NewField()}
	for j := 0; j < g.Nny; j++ {
		for i := 0; i < g.Nnx; i++ {
			output[0][j][i] = g.X[i] + g.Y[j]
			target[0][j][i] = g.X[i] + g.Y[j] + 7.0
		}
	}
	chk.Float64(tst, "Eresidual", 1e-13, Metric("Eresidual")(output, target, g), 0.0)
	chk.Float64(tst, "Einf_norm", 1e-13, Metric("Einf_norm")(output, target, g), 0.0)
	chk.Float64(tst, "inf_norm", 1e-13, Metric("inf_norm")(output, target, g), 7.0)
}

func Test_tracker01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tracker01. running averages and reset")

	mt := NewMetricTracker("residual", "inf_norm")
	chk.Strings(tst, "names", mt.Names(), []string{"residual", "inf_norm"})

	mt.Update("residual", 1.0)
	mt.Update("residual", 3.0)
	mt.Update("inf_norm", 10.0)
	chk.Float64(tst, "residual avg", 1e-15, mt.Average("residual"), 2.0)
	chk.Float64(tst, "inf_norm avg", 1e-15, mt.Average("inf_norm"), 10.0)

	mt.Reset()
	chk.Float64(tst, "after reset", 1e-15, mt.Average("residual"), 0.0)
	mt.Update("residual", 5.0)
	chk.Float64(tst, "fresh avg", 1e-15, mt.Average("residual"), 5.0)
}

func Test_shapes01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shapes01. state dict shape validation")

	sd := StateDict{
		"conv1.weight": {Shape: []int{2, 3}, Values: make([]float64, 6)},
		"conv1.bias":   {Shape: []int{2}, Values: make([]float64, 2)},
	}
	expected := map[string][]int{
		"conv1.weight": {2, 3},
		"conv1.bias":   {2},
	}
	if err := CheckShapes(sd, expected); err != nil {
		tst.Errorf("matching shapes must pass: %v", err)
		return
	}

	// missing parameter
	expected["conv2.weight"] = []int{4}
	if CheckShapes(sd, expected) == nil {
		tst.Errorf("missing parameter must fail")
		return
	}
	delete(expected, "conv2.weight")

	// wrong shape
	expected["conv1.bias"] = []int{3}
	if CheckShapes(sd, expected) == nil {
		tst.Errorf("shape mismatch must fail")
		return
	}
	expected["conv1.bias"] = []int{2}

	// extra parameter in the state dict
	sd["stray"] = Param{Shape: []int{1}, Values: []float64{0}}
	if CheckShapes(sd, expected) == nil {
		tst.Errorf("unexpected parameter must fail")
		return
	}
	delete(sd, "stray")

	// inconsistent number of values
	sd["conv1.bias"] = Param{Shape: []int{2}, Values: []float64{1}}
	if CheckShapes(sd, expected) == nil {
		tst.Errorf("short value slice must fail")
	}
}

func Test_checkpoint01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("checkpoint01. write and read back")

	os.MkdirAll("/tmp/pde-nn", 0777)
	c := &Checkpoint{
		Epoch: 17,
		StateDict: StateDict{
			"w": {Shape: []int{2, 2}, Values: []float64{1, 2, 3, 4}},
			"b": {Shape: []int{2}, Values: []float64{-1, -2}},
		},
	}
	for _, fn := range []string{"/tmp/pde-nn/model.gob", "/tmp/pde-nn/model.json"} {
		if err := WriteCheckpoint(fn, c); err != nil {
			tst.Errorf("cannot write %q: %v", fn, err)
			return
		}
		r := ReadCheckpoint(fn)
		chk.IntAssert(r.Epoch, 17)
		chk.IntAssert(len(r.StateDict), 2)
		chk.Ints(tst, "w shape", r.StateDict["w"].Shape, []int{2, 2})
		chk.Array(tst, "w values", 1e-15, r.StateDict["w"].Values, []float64{1, 2, 3, 4})
		chk.Array(tst, "b values", 1e-15, r.StateDict["b"].Values, []float64{-1, -2})
	}
}
