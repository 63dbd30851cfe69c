// Copyright 2021 The pde-nn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"encoding/binary"
	"math"
	"os"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// npy format version 1.0, little-endian float64, C order. This is the
// on-disk contract with the reference datasets and the raw-array artifacts.

var npyMagic = []byte("\x93NUMPY\x01\x00")

// WriteNpy writes a float64 array of the given shape to an npy file
func WriteNpy(path string, vals []float64, shape ...int) (err error) {

	// check size
	n := 1
	for _, s := range shape {
		n *= s
	}
	if n != len(vals) {
		return chk.Err("cannot write %q: shape %v needs %d values but %d were given", path, shape, n, len(vals))
	}

	// header dict, padded so that the data is 64-byte aligned
	dims := make([]string, len(shape))
	for i, s := range shape {
		dims[i] = io.Sf("%d", s)
	}
	tuple := strings.Join(dims, ", ")
	if len(shape) == 1 {
		tuple += ","
	}
	head := io.Sf("{'descr': '<f8', 'fortran_order': False, 'shape': (%s), }", tuple)
	pad := 64 - (len(npyMagic)+2+len(head)+1)%64
	head += strings.Repeat(" ", pad) + "\n"

	// write
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()
	f.Write(npyMagic)
	binary.Write(f, binary.LittleEndian, uint16(len(head)))
	f.Write([]byte(head))
	buf := make([]byte, 8*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint64(buf[8*i:], math.Float64bits(v))
	}
	_, err = f.Write(buf)
	return
}

// ReadNpy reads a float64 array and its shape from an npy file. A missing
// file is fatal; a malformed file produces an error.
func ReadNpy(path string) (vals []float64, shape []int, err error) {

	// read file
	b := io.ReadFile(path)
	if len(b) < len(npyMagic)+2 || string(b[:6]) != "\x93NUMPY" {
		err = chk.Err("file %q is not a valid npy file", path)
		return
	}
	hlen := int(binary.LittleEndian.Uint16(b[8:10]))
	head := string(b[10 : 10+hlen])
	data := b[10+hlen:]

	// parse the shape tuple out of the header dict
	if !strings.Contains(head, "'<f8'") || strings.Contains(head, "True") {
		err = chk.Err("file %q must hold little-endian float64 values in C order", path)
		return
	}
	lb := strings.Index(head, "(")
	rb := strings.Index(head, ")")
	if lb < 0 || rb < lb {
		err = chk.Err("file %q has a malformed npy header", path)
		return
	}
	for _, tok := range strings.Split(head[lb+1:rb], ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		shape = append(shape, io.Atoi(tok))
	}

	// decode values
	n := 1
	for _, s := range shape {
		n *= s
	}
	if len(data) < 8*n {
		err = chk.Err("file %q is truncated: shape %v needs %d values", path, shape, n)
		return
	}
	vals = make([]float64, n)
	for i := range vals {
		vals[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[8*i:]))
	}
	return
}

// WriteNpy3 writes a batch of fields as a (nbatch, nny, nnx) npy array
func WriteNpy3(path string, batch [][][]float64) (err error) {
	nb := len(batch)
	if nb == 0 {
		return chk.Err("cannot write %q: batch is empty", path)
	}
	nny, nnx := len(batch[0]), len(batch[0][0])
	vals := make([]float64, nb*nny*nnx)
	k := 0
	for s := 0; s < nb; s++ {
		for j := 0; j < nny; j++ {
			for i := 0; i < nnx; i++ {
				vals[k] = batch[s][j][i]
				k++
			}
		}
	}
	return WriteNpy(path, vals, nb, nny, nnx)
}

// ReadNpy3 reads a (nbatch, nny, nnx) npy array into a batch of fields
func ReadNpy3(path string) (batch [][][]float64, err error) {
	vals, shape, err := ReadNpy(path)
	if err != nil {
		return
	}
	if len(shape) != 3 {
		err = chk.Err("file %q must hold a 3D array. shape=%v is invalid", path, shape)
		return
	}
	nb, nny, nnx := shape[0], shape[1], shape[2]
	batch = make([][][]float64, nb)
	k := 0
	for s := 0; s < nb; s++ {
		batch[s] = make([][]float64, nny)
		for j := 0; j < nny; j++ {
			batch[s][j] = make([]float64, nnx)
			for i := 0; i < nnx; i++ {
				batch[s][j][i] = vals[k]
				k++
			}
		}
	}
	return
}

// WriteNpy2 writes a single field as a (nny, nnx) npy array
func WriteNpy2(path string, f [][]float64) (err error) {
	nny, nnx := len(f), len(f[0])
	vals := make([]float64, nny*nnx)
	k := 0
	for j := 0; j < nny; j++ {
		for i := 0; i < nnx; i++ {
			vals[k] = f[j][i]
			k++
		}
	}
	return WriteNpy(path, vals, nny, nnx)
}
