// Copyright 2021 The pde-nn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"strings"

	"github.com/cpmech/gosl/io/h5"
)

// Row holds one row of the evaluation metrics table: the network identity,
// its architecture summary, the dataset identity and one averaged metric
type Row struct {
	NnName     string  // network name; e.g. unet5
	NnType     string  // architecture type
	RfGlobal   int     // global receptive field
	Nbranches  int     // number of scale branches
	Depth      int     // total depth (sum over branches)
	Ks         int     // kernel size
	DsName     string  // dataset name; e.g. random_101
	DsType     string  // dataset type; first token of the name
	TestRes    int     // evaluation resolution
	TrainRes   int     // training resolution
	MetricName string  // metric name
	Value      float64 // averaged metric value
}

// Table accumulates metric rows for downstream analysis
type Table struct {
	Rows []Row
}

// Append appends one row
func (o *Table) Append(r Row) {
	o.Rows = append(o.Rows, r)
}

// Save persists the table into <dirout>/<fnkey>.h5 under the key "df".
// The file is written in overwrite mode: repeated runs against the same
// path replace prior content.
func (o *Table) Save(dirout, fnkey string) {
	n := len(o.Rows)
	values := make([]float64, n)
	rf, nb, dp, ks := make([]int, n), make([]int, n), make([]int, n), make([]int, n)
	tres, rres := make([]int, n), make([]int, n)
	var nnNames, nnTypes, dsNames, dsTypes, metNames []string
	for i, r := range o.Rows {
		values[i] = r.Value
		rf[i], nb[i], dp[i], ks[i] = r.RfGlobal, r.Nbranches, r.Depth, r.Ks
		tres[i], rres[i] = r.TestRes, r.TrainRes
		nnNames = append(nnNames, r.NnName)
		nnTypes = append(nnTypes, r.NnType)
		dsNames = append(dsNames, r.DsName)
		dsTypes = append(dsTypes, r.DsType)
		metNames = append(metNames, r.MetricName)
	}
	f := h5.Create(dirout, fnkey, false)
	defer f.Close()
	f.PutArray("/df/value", values)
	f.PutInts("/df/rf_global", rf)
	f.PutInts("/df/nbranches", nb)
	f.PutInts("/df/depth", dp)
	f.PutInts("/df/ks", ks)
	f.PutInts("/df/test_res", tres)
	f.PutInts("/df/train_res", rres)
	f.SetStringAttribute("/df", "nn_name", strings.Join(nnNames, "\n"))
	f.SetStringAttribute("/df", "nn_type", strings.Join(nnTypes, "\n"))
	f.SetStringAttribute("/df", "ds_name", strings.Join(dsNames, "\n"))
	f.SetStringAttribute("/df", "ds_type", strings.Join(dsTypes, "\n"))
	f.SetStringAttribute("/df", "metric_name", strings.Join(metNames, "\n"))
}

// Read loads a table previously saved with Save
func ReadTable(dirout, fnkey string) (o *Table) {
	f := h5.Open(dirout, fnkey, false)
	defer f.Close()
	values := f.GetArray("/df/value")
	rf := f.GetInts("/df/rf_global")
	nb := f.GetInts("/df/nbranches")
	dp := f.GetInts("/df/depth")
	ks := f.GetInts("/df/ks")
	tres := f.GetInts("/df/test_res")
	rres := f.GetInts("/df/train_res")
	nnNames := strings.Split(f.GetStringAttribute("/df", "nn_name"), "\n")
	nnTypes := strings.Split(f.GetStringAttribute("/df", "nn_type"), "\n")
	dsNames := strings.Split(f.GetStringAttribute("/df", "ds_name"), "\n")
	dsTypes := strings.Split(f.GetStringAttribute("/df", "ds_type"), "\n")
	metNames := strings.Split(f.GetStringAttribute("/df", "metric_name"), "\n")
	o = new(Table)
	for i := range values {
		o.Append(Row{
			NnName: nnNames[i], NnType: nnTypes[i],
			RfGlobal: rf[i], Nbranches: nb[i], Depth: dp[i], Ks: ks[i],
			DsName: dsNames[i], DsType: dsTypes[i],
			TestRes: tres[i], TrainRes: rres[i],
			MetricName: metNames[i], Value: values[i],
		})
	}
	return
}
