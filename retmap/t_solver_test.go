// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package retmap

import (
	"errors"
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// fcnProblem wraps closures as a Problem
type fcnProblem struct {
	f      func(x float64) (float64, float64)
	lo, hi float64
	ref    float64
}

func (o fcnProblem) Residual(x float64) (r, drdx float64, err error) {
	r, drdx = o.f(x)
	return
}
func (o fcnProblem) ReferenceResidual(x, r float64) float64 { return o.ref }
func (o fcnProblem) MinPermissible() float64               { return o.lo }
func (o fcnProblem) MaxPermissible() float64               { return o.hi }

func Test_solver01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver01. linear residual")

	p := fcnProblem{f: func(x float64) (float64, float64) { return 2 - x, -1 }, lo: 0, hi: 10}
	sol := NewSolver()
	sol.Verbose = chk.Verbose
	it, err := sol.Solve(p, 0)
	if err != nil {
		tst.Errorf("solve failed: %v\n", err)
		return
	}
	chk.Float64(tst, "x", 1e-15, it.X, 2)
	if !it.Converged() {
		tst.Errorf("iteration should have converged\n")
	}
	chk.IntAssertLessThanOrEqualTo(it.It, 2)
}

func Test_solver02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver02. power-law return")

	// R(x) = A·(qtr - 3G·x)^n·dt - x
	A, n, G, qtr, dt := 1e-12, 5.0, 8e4, 250.0, 1.0
	p := fcnProblem{
		f: func(x float64) (float64, float64) {
			q := qtr - 3*G*x
			r := A*math.Pow(q, n)*dt - x
			dr := -3*G*n*A*math.Pow(q, n-1)*dt - 1
			return r, dr
		},
		lo:  0,
		hi:  qtr / (3 * G),
		ref: qtr / (3 * G),
	}
	sol := NewSolver()
	sol.Verbose = chk.Verbose
	it, err := sol.Solve(p, 0)
	if err != nil {
		tst.Errorf("solve failed: %v\n", err)
		return
	}
	io.Pforan("x = %v  it = %v\n", it.X, it.It)
	if it.X <= 0 || it.X >= qtr/(3*G) {
		tst.Errorf("root %g is outside the admissible range\n", it.X)
	}
	chk.Float64(tst, "R(x)", 1e-10, A*math.Pow(qtr-3*G*it.X, n)*dt-it.X, 0)
}

func Test_solver03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver03. Newton overshoot falls back to bisection")

	p := fcnProblem{f: func(x float64) (float64, float64) {
		return math.Atan(x - 1), 1 / (1 + (x-1)*(x-1))
	}, lo: 0, hi: 20}
	sol := NewSolver()
	sol.Verbose = chk.Verbose
	it, err := sol.Solve(p, 20)
	if err != nil {
		tst.Errorf("solve failed: %v\n", err)
		return
	}
	chk.Float64(tst, "x", 1e-10, it.X, 1)
}

func Test_solver04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver04. no sign change")

	p := fcnProblem{f: func(x float64) (float64, float64) { return 1 + x, 1 }, lo: 0, hi: 5}
	sol := NewSolver()
	_, err := sol.Solve(p, 2)
	var cerr *ConvergenceError
	if !errors.As(err, &cerr) {
		tst.Errorf("expected a convergence error; got %v\n", err)
		return
	}
	io.Pforan("err = %v\n", err)
	if cerr.Iter.Converged() {
		tst.Errorf("iteration must not report convergence\n")
	}
}

func Test_solver05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver05. iteration cap and settings")

	sol := NewSolver()
	err := sol.Init(dbf.Params{
		&dbf.P{N: "maxIts", V: 1},
		&dbf.P{N: "absTol", V: 1e-14},
		&dbf.P{N: "relTol", V: 0},
	})
	if err != nil {
		tst.Errorf("Init failed: %v\n", err)
		return
	}
	chk.Int(tst, "maxIts", sol.MaxIts, 1)

	p := fcnProblem{f: func(x float64) (float64, float64) { return math.Exp(x) - 50, math.Exp(x) }, lo: 0, hi: 10}
	_, err = sol.Solve(p, 0.5)
	var cerr *ConvergenceError
	if !errors.As(err, &cerr) {
		tst.Errorf("expected a convergence error; got %v\n", err)
		return
	}
	chk.Int(tst, "it", cerr.Iter.It, 1)

	// invalid settings
	err = sol.Init(dbf.Params{&dbf.P{N: "maxIts", V: 0}})
	if err == nil {
		tst.Errorf("Init should have failed with maxIts=0\n")
	}
}

func Test_solver06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver06. evaluation error")

	bad := errors.New("bad state")
	p := errProblem{err: bad}
	_, err := NewSolver().Solve(p, 0)
	if !errors.Is(err, bad) {
		tst.Errorf("underlying error should be wrapped; got %v\n", err)
	}
}

type errProblem struct{ err error }

func (o errProblem) Residual(x float64) (r, drdx float64, err error) { return 0, 0, o.err }
func (o errProblem) ReferenceResidual(x, r float64) float64           { return 1 }
func (o errProblem) MinPermissible() float64                          { return 0 }
func (o errProblem) MaxPermissible() float64                          { return 1 }

func Test_solver07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver07. root near the lower bound after bisections")

	// R is almost linear near the root but grows quickly away from it
	x0 := 1e-9
	p := fcnProblem{f: func(x float64) (float64, float64) {
		return math.Exp(20*(x-x0)) - 1, 20 * math.Exp(20*(x-x0))
	}, lo: 0, hi: 1}
	sol := NewSolver()
	sol.Verbose = chk.Verbose
	it, err := sol.Solve(p, 0.5)
	if err != nil {
		tst.Errorf("solve failed: %v\n", err)
		return
	}
	io.Pforan("x = %v  it = %v\n", it.X, it.It)
	chk.Float64(tst, "x", 1e-12, it.X, x0)
	if !it.AbsConv {
		tst.Errorf("iteration should have converged on the absolute tolerance\n")
	}
}

func Test_solver08(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver08. vanishing derivatives")

	// saturated tanh: dR/dx underflows to zero away from the root
	sat := func(s, xr float64) func(x float64) (float64, float64) {
		return func(x float64) (float64, float64) {
			t := math.Tanh(100 * (x - xr))
			return s * t, s * 100 * (1 - t*t)
		}
	}
	sol := NewSolver()
	sol.MaxIts = 100
	sol.Verbose = chk.Verbose
	for _, s := range []float64{1, -1} {
		it, err := sol.Solve(fcnProblem{f: sat(s, 0.3), lo: 0, hi: 1}, 0)
		if err != nil {
			tst.Errorf("solve failed with s=%g: %v\n", s, err)
			return
		}
		chk.Float64(tst, io.Sf("x(s=%g)", s), 1e-12, it.X, 0.3)
	}

	// no derivative information at all: the slope comes from secants
	for _, s := range []float64{1, -1} {
		for _, guess := range []float64{0, 0.5, 1} {
			f := func(x float64) (float64, float64) { return s * math.Tanh(100*(x-0.7)), 0 }
			it, err := sol.Solve(fcnProblem{f: f, lo: 0, hi: 1}, guess)
			if err != nil {
				tst.Errorf("solve failed with s=%g guess=%g: %v\n", s, guess, err)
				return
			}
			chk.Float64(tst, io.Sf("x(s=%g,guess=%g)", s, guess), 1e-9, it.X, 0.7)
		}
	}

	// flat residual
	_, err := sol.Solve(fcnProblem{f: func(x float64) (float64, float64) { return 1, 0 }, lo: 0, hi: 5}, 2)
	var cerr *ConvergenceError
	if !errors.As(err, &cerr) {
		tst.Errorf("expected a convergence error; got %v\n", err)
		return
	}
	io.Pforan("err = %v\n", err)
	chk.Int(tst, "it", cerr.Iter.It, 2)
}
