// Copyright 2021 The pde-nn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lin

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Method selects the fixed-point splitting of the refiner
type Method int

const (
	// GaussSeidel splits M = L* + U with L* lower triangular including
	// the diagonal and U strictly upper triangular
	GaussSeidel Method = iota

	// Jacobi splits M = P - N with P = diag(M)
	Jacobi
)

// MethodByName parses a refine method name
func MethodByName(name string) Method {
	switch name {
	case "gauss_seidel":
		return GaussSeidel
	case "jacobi":
		return Jacobi
	}
	chk.Panic("refine method %q is not available", name)
	return -1
}

// lowerTri holds a lower-triangular matrix in row-compressed form split as
// strict-lower entries plus diagonal, for forward substitution
type lowerTri struct {
	n    int
	ptr  []int     // [n+1] row pointers into col/val (strict lower part)
	col  []int     // column indices, sorted per row
	val  []float64 // coefficients
	diag []float64 // [n] diagonal
}

// solve computes x := L^{-1} b by forward substitution
func (o *lowerTri) solve(x, b []float64) {
	for i := 0; i < o.n; i++ {
		s := b[i]
		for k := o.ptr[i]; k < o.ptr[i+1]; k++ {
			s -= o.val[k] * x[o.col[k]]
		}
		x[i] = s / o.diag[i]
	}
}

// Refiner applies a bounded number of correction sweeps to a potential
// field. Operators are precomputed once from the system matrix and reused
// across all sweeps and all cases sharing the same grid configuration.
// This is a fixed-budget corrector: exactly Nits sweeps are applied, with
// no convergence check.
type Refiner struct {

	// configuration
	Meth Method // splitting method
	Nits int    // number of sweeps per application

	// Gauss-Seidel operators
	lstar *lowerTri    // L* in row-compressed form
	triu  *la.CCMatrix // U, strictly upper

	// Jacobi operators
	pinv []float64    // 1/diag(M); zero where the diagonal is zero
	nmat *la.CCMatrix // N = P - M

	// scratch
	tmp []float64
	sol []float64
}

// NewRefiner precomputes the splitting operators of the given method
//  Input:
//   method -- "gauss_seidel" or "jacobi"
//   nits   -- number of sweeps; zero disables correction
//   m      -- assembled system matrix
func NewRefiner(method string, nits int, m *Matrix) (o *Refiner) {
	if nits < 0 {
		chk.Panic("refine_its cannot be negative. nits=%d is invalid", nits)
	}
	o = new(Refiner)
	o.Meth = MethodByName(method)
	o.Nits = nits
	o.tmp = make([]float64, m.N)
	o.sol = make([]float64, m.N)
	switch o.Meth {
	case GaussSeidel:
		o.lstar, o.triu = splitGaussSeidel(m)
	case Jacobi:
		o.pinv, o.nmat = splitJacobi(m)
	}
	return
}

// Apply performs the correction sweeps, in place, on a potential field
//  Input:
//   pot -- [nny][nnx] potential to be corrected
//   rhs -- [nny][nnx] right-hand-side field with Dirichlet values imposed
func (o *Refiner) Apply(pot, rhs [][]float64) {
	n := len(o.tmp)
	b := make([]float64, n)
	flatten(b, rhs)
	x := o.sol
	flatten(x, pot)
	for it := 0; it < o.Nits; it++ {
		switch o.Meth {
		case GaussSeidel:
			// x := L*^{-1} (-b - U*x)
			la.SpMatVecMul(o.tmp, -1, o.triu, x)
			for i := 0; i < n; i++ {
				o.tmp[i] -= b[i]
			}
			o.lstar.solve(x, o.tmp)
		case Jacobi:
			// x := P^{-1}N*x - P^{-1}b
			la.SpMatVecMul(o.tmp, 1, o.nmat, x)
			for i := 0; i < n; i++ {
				x[i] = o.pinv[i] * (o.tmp[i] - b[i])
			}
		}
	}
	unflatten(pot, x)
}

// splitting setup /////////////////////////////////////////////////////////////////////////////////

// splitGaussSeidel computes M = L* + U
func splitGaussSeidel(m *Matrix) (lstar *lowerTri, triu *la.CCMatrix) {

	// collect strict-lower entries per row and the diagonal
	lstar = &lowerTri{n: m.N}
	lstar.diag = make([]float64, m.N)
	rows := make([][]entry, m.N)
	nnzU := 0
	for _, e := range m.entries {
		switch {
		case e.i == e.j:
			lstar.diag[e.i] += e.x
		case e.i > e.j:
			rows[e.i] = append(rows[e.i], e)
		default:
			nnzU++
		}
	}
	for i, d := range lstar.diag {
		if d == 0 {
			chk.Panic("gauss_seidel refinement needs a nonzero diagonal. M[%d][%d] is zero", i, i)
		}
	}

	// row-compressed strict lower part
	lstar.ptr = make([]int, m.N+1)
	for i := 0; i < m.N; i++ {
		sort.Slice(rows[i], func(a, b int) bool { return rows[i][a].j < rows[i][b].j })
		lstar.ptr[i+1] = lstar.ptr[i] + len(rows[i])
		for _, e := range rows[i] {
			lstar.col = append(lstar.col, e.j)
			lstar.val = append(lstar.val, e.x)
		}
	}

	// strictly upper part
	var tu la.Triplet
	tu.Init(m.N, m.N, imax(nnzU, 1))
	for _, e := range m.entries {
		if e.i < e.j {
			tu.Put(e.i, e.j, e.x)
		}
	}
	triu = tu.ToMatrix(nil)
	return
}

// splitJacobi computes M = P - N with P = diag(M). Zero diagonal entries
// yield a zero reciprocal instead of an undefined division.
func splitJacobi(m *Matrix) (pinv []float64, nmat *la.CCMatrix) {
	pinv = make([]float64, m.N)
	diag := m.Diagonal()
	for i, d := range diag {
		if d != 0 {
			pinv[i] = 1.0 / d
		}
	}
	nnzN := 0
	for _, e := range m.entries {
		if e.i != e.j {
			nnzN++
		}
	}
	var tn la.Triplet
	tn.Init(m.N, m.N, imax(nnzN, 1))
	for _, e := range m.entries {
		if e.i != e.j {
			tn.Put(e.i, e.j, -e.x)
		}
	}
	nmat = tn.ToMatrix(nil)
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// flatten copies a [nny][nnx] field into a vector, row by row
func flatten(v []float64, f [][]float64) {
	k := 0
	for j := 0; j < len(f); j++ {
		for i := 0; i < len(f[j]); i++ {
			v[k] = f[j][i]
			k++
		}
	}
}

// unflatten copies a vector back into a [nny][nnx] field
func unflatten(f [][]float64, v []float64) {
	k := 0
	for j := 0; j < len(f); j++ {
		for i := 0; i < len(f[j]); i++ {
			f[j][i] = v[k]
			k++
		}
	}
}

func imax(a, b int) int {
	if a > b {
		return a
	}
	return b
}
