// Copyright 2021 The pde-nn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nn

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/xndrleib/pde-nn/grid"
)

// MetricFn computes one scalar metric for a batch of output/target fields
type MetricFn func(output, target [][][]float64, g *grid.Grid) float64

// metricFns maps metric names to metric functions
var metricFns = map[string]MetricFn{
	"residual": residual,
	"inf_norm": infNorm,
	"Eresidual": eResidual,
	"Einf_norm": eInfNorm,
}

// Metric returns the metric function registered under the given name
func Metric(name string) MetricFn {
	fn, ok := metricFns[name]
	if !ok {
		chk.Panic("cannot find metric named %q", name)
	}
	return fn
}

// residual computes the mean L1 difference between output and target
func residual(output, target [][][]float64, g *grid.Grid) (res float64) {
	n := 0
	for s := range output {
		for j := range output[s] {
			for i := range output[s][j] {
				res += math.Abs(output[s][j][i] - target[s][j][i])
				n++
			}
		}
	}
	return res / float64(n)
}

// infNorm computes the maximum absolute difference between output and target
func infNorm(output, target [][][]float64, g *grid.Grid) (res float64) {
	for s := range output {
		for j := range output[s] {
			for i := range output[s][j] {
				res = math.Max(res, math.Abs(output[s][j][i]-target[s][j][i]))
			}
		}
	}
	return
}

// eResidual computes the mean L1 difference between the electric fields
// derived from output and target potentials
func eResidual(output, target [][][]float64, g *grid.Grid) (res float64) {
	n := 0
	for s := range output {
		exo, eyo := g.Efield(output[s])
		ext, eyt := g.Efield(target[s])
		for j := range exo {
			for i := range exo[j] {
				res += math.Abs(exo[j][i]-ext[j][i]) + math.Abs(eyo[j][i]-eyt[j][i])
				n++
			}
		}
	}
	return res / float64(n)
}

// eInfNorm computes the maximum absolute difference between the electric
// fields derived from output and target potentials
func eInfNorm(output, target [][][]float64, g *grid.Grid) (res float64) {
	for s := range output {
		exo, eyo := g.Efield(output[s])
		ext, eyt := g.Efield(target[s])
		for j := range exo {
			for i := range exo[j] {
				res = math.Max(res, math.Abs(exo[j][i]-ext[j][i]))
				res = math.Max(res, math.Abs(eyo[j][i]-eyt[j][i]))
			}
		}
	}
	return
}

// MetricTracker accumulates running averages of metric values. It must be
// reset before each independent evaluation run.
type MetricTracker struct {
	names []string           // tracked metric names, in registration order
	total map[string]float64 // sum of values per metric
	count map[string]int     // number of updates per metric
}

// NewMetricTracker returns a tracker for the given metric names
func NewMetricTracker(names ...string) (o *MetricTracker) {
	o = new(MetricTracker)
	o.names = names
	o.Reset()
	return
}

// Reset clears all accumulated values
func (o *MetricTracker) Reset() {
	o.total = make(map[string]float64)
	o.count = make(map[string]int)
}

// Update folds one value into the running average of a metric
func (o *MetricTracker) Update(name string, val float64) {
	found := false
	for _, n := range o.names {
		if n == name {
			found = true
		}
	}
	if !found {
		chk.Panic("metric %q is not tracked", name)
	}
	o.total[name] += val
	o.count[name]++
}

// Average returns the running average of a metric
func (o *MetricTracker) Average(name string) float64 {
	c := o.count[name]
	if c == 0 {
		return 0
	}
	return o.total[name] / float64(c)
}

// Names returns the tracked metric names
func (o *MetricTracker) Names() []string { return o.names }
