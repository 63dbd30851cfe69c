// Copyright 2021 The pde-nn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"os"
	"sort"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/xndrleib/pde-nn/inp"
	"github.com/xndrleib/pde-nn/out"
	"github.com/xndrleib/pde-nn/poisson"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
			if chk.Verbose {
				for i := 5; i > 3; i-- {
					chk.CallerInfo(i)
				}
			}
			os.Exit(1)
		}
	}()

	// input parameters
	var configPath, filename string
	flag.StringVar(&configPath, "c", "", "configuration file path")
	flag.StringVar(&configPath, "config", "", "configuration file path")
	flag.StringVar(&filename, "fn", "metrics", "name of the metrics table file in the case directory")
	flag.StringVar(&filename, "filename", "metrics", "name of the metrics table file in the case directory")
	flag.Parse()
	if configPath == "" {
		chk.Panic("a configuration file is required. ex: -c config.yml")
	}

	// read configuration
	cfg := inp.ReadConfig(configPath)
	dataDir := cfg.Network.Casename
	err := os.MkdirAll(dataDir, 0777)
	if err != nil {
		chk.Panic("cannot create case directory %q", dataDir)
	}

	// initialise the network solver
	net := poisson.NewNetwork(&cfg.Network)

	// network and resolution identity for the table rows
	arch := cfg.Network.Arch
	nnName := cfg.Network.Casename
	if parts := strings.Split(nnName, "/"); len(parts) > 1 {
		nnName = parts[1]
	}
	depth := 0
	for _, d := range arch.Depths {
		depth += d
	}
	ks := 0
	if len(arch.KernelSizes) > 0 {
		ks = arch.KernelSizes[0]
	}
	testRes := cfg.Network.CaseCfg().Nnx
	trainRes := cfg.Network.Globals.Nnx

	// evaluate all datasets, in name order
	dsNames := make([]string, 0, len(cfg.Datasets))
	for name := range cfg.Datasets {
		dsNames = append(dsNames, name)
	}
	sort.Strings(dsNames)
	var table out.Table
	for _, dsName := range dsNames {
		metrics := net.Evaluate(cfg.Datasets[dsName], dataDir+"/"+dsName, true, true)
		for _, metricName := range cfg.Network.Metrics {
			table.Append(out.Row{
				NnName:     nnName,
				NnType:     net.Model.Type(),
				RfGlobal:   arch.RfGlobal,
				Nbranches:  arch.Nbranches,
				Depth:      depth,
				Ks:         ks,
				DsName:     dsName,
				DsType:     strings.SplitN(dsName, "_", 2)[0],
				TestRes:    testRes,
				TrainRes:   trainRes,
				MetricName: metricName,
				Value:      metrics.Average(metricName),
			})
		}
	}

	// save the table
	table.Save(dataDir, filename)
	io.Pf("> Metrics table saved in %s/%s.h5\n", dataDir, filename)
}
