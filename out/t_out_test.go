// Copyright 2021 The pde-nn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bytes"
	"os"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_npy01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("npy01. write and read back arrays")

	os.MkdirAll("/tmp/pde-nn", 0777)

	// 1D
	v := []float64{1.5, -2.5, 3.25}
	if err := WriteNpy("/tmp/pde-nn/vec.npy", v, 3); err != nil {
		tst.Errorf("cannot write 1D array: %v", err)
		return
	}
	rv, shape, err := ReadNpy("/tmp/pde-nn/vec.npy")
	if err != nil {
		tst.Errorf("cannot read 1D array: %v", err)
		return
	}
	chk.Ints(tst, "1D shape", shape, []int{3})
	chk.Array(tst, "1D values", 1e-17, rv, v)

	// 2D field
	f := [][]float64{{1, 2, 3}, {4, 5, 6}}
	if err := WriteNpy2("/tmp/pde-nn/field.npy", f); err != nil {
		tst.Errorf("cannot write 2D array: %v", err)
		return
	}
	rv, shape, err = ReadNpy("/tmp/pde-nn/field.npy")
	if err != nil {
		tst.Errorf("cannot read 2D array: %v", err)
		return
	}
	chk.Ints(tst, "2D shape", shape, []int{2, 3})
	chk.Array(tst, "2D values", 1e-17, rv, []float64{1, 2, 3, 4, 5, 6})
}

func Test_npy02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("npy02. batch arrays and the data alignment")

	batch := [][][]float64{
		{{1, 2}, {3, 4}, {5, 6}},
		{{-1, -2}, {-3, -4}, {-5, -6}},
	}
	if err := WriteNpy3("/tmp/pde-nn/batch.npy", batch); err != nil {
		tst.Errorf("cannot write batch: %v", err)
		return
	}
	r, err := ReadNpy3("/tmp/pde-nn/batch.npy")
	if err != nil {
		tst.Errorf("cannot read batch: %v", err)
		return
	}
	chk.IntAssert(len(r), 2)
	chk.Deep2(tst, "sample 0", 1e-17, r[0], batch[0])
	chk.Deep2(tst, "sample 1", 1e-17, r[1], batch[1])

	// the header pads the data section to a multiple of 64 bytes
	b := io.ReadFile("/tmp/pde-nn/batch.npy")
	if !bytes.HasPrefix(b, npyMagic) {
		tst.Errorf("magic prefix is wrong")
		return
	}
	chk.IntAssert((len(b) - 8*2*3*2) % 64, 0)
}

func Test_npy03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("npy03. shape/value mismatches are rejected")

	if WriteNpy("/tmp/pde-nn/bad.npy", []float64{1, 2, 3}, 2, 2) == nil {
		tst.Errorf("shape/value mismatch must fail")
		return
	}
	if err := os.WriteFile("/tmp/pde-nn/notnpy.npy", []byte("this is not an array"), 0666); err != nil {
		tst.Fatalf("cannot write scratch file: %v", err)
	}
	if _, _, err := ReadNpy("/tmp/pde-nn/notnpy.npy"); err == nil {
		tst.Errorf("invalid magic must fail")
	}
}

func Test_table01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("table01. metrics table write and read back")

	t := new(Table)
	t.Append(Row{
		NnName: "unet5", NnType: "unet",
		RfGlobal: 200, Nbranches: 1, Depth: 10, Ks: 3,
		DsName: "random_8", DsType: "random",
		TestRes: 201, TrainRes: 101,
		MetricName: "residual", Value: 1.25e-3,
	})
	t.Append(Row{
		NnName: "unet5", NnType: "unet",
		RfGlobal: 200, Nbranches: 1, Depth: 10, Ks: 3,
		DsName: "random_8", DsType: "random",
		TestRes: 201, TrainRes: 101,
		MetricName: "inf_norm", Value: 4.5e-2,
	})
	os.MkdirAll("/tmp/pde-nn", 0777)
	t.Save("/tmp/pde-nn", "metrics")

	r := ReadTable("/tmp/pde-nn", "metrics")
	chk.IntAssert(len(r.Rows), 2)
	chk.StrAssert(r.Rows[0].NnName, "unet5")
	chk.StrAssert(r.Rows[0].MetricName, "residual")
	chk.StrAssert(r.Rows[1].MetricName, "inf_norm")
	chk.IntAssert(r.Rows[0].Depth, 10)
	chk.IntAssert(r.Rows[1].TestRes, 201)
	chk.Float64(tst, "value 0", 1e-17, r.Rows[0].Value, 1.25e-3)
	chk.Float64(tst, "value 1", 1e-17, r.Rows[1].Value, 4.5e-2)

	// saving again into the same path overwrites the previous table
	t2 := new(Table)
	t2.Append(t.Rows[0])
	t2.Save("/tmp/pde-nn", "metrics")
	r2 := ReadTable("/tmp/pde-nn", "metrics")
	chk.IntAssert(len(r2.Rows), 1)
}

func Test_encoder01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("encoder01. gob and json round trips")

	type payload struct {
		Name string
		Vals []float64
	}
	for _, enctype := range []string{"gob", "json"} {
		var buf bytes.Buffer
		enc := GetEncoder(&buf, enctype)
		if err := enc.Encode(&payload{Name: "a", Vals: []float64{1, 2}}); err != nil {
			tst.Errorf("%s: cannot encode: %v", enctype, err)
			return
		}
		var p payload
		dec := GetDecoder(&buf, enctype)
		if err := dec.Decode(&p); err != nil {
			tst.Errorf("%s: cannot decode: %v", enctype, err)
			return
		}
		chk.StrAssert(p.Name, "a")
		chk.Array(tst, enctype+" vals", 1e-17, p.Vals, []float64{1, 2})
	}
}
