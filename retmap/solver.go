// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package retmap implements a bracketed Newton/bisection solver for scalar
// return-mapping residuals
package retmap

import (
	"math"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// Problem defines a scalar residual R(x) whose root is the equivalent inelastic increment
type Problem interface {
	Residual(x float64) (r, drdx float64, err error) // residual and its derivative at x
	ReferenceResidual(x, r float64) float64          // scale used by the relative tolerance
	MinPermissible() float64                         // lowest admissible x
	MaxPermissible() float64                         // highest admissible x
}

// Solver holds the settings of the scalar root finder. The zero value is not
// usable; call NewSolver or fill all fields
type Solver struct {
	AbsTol     float64 // absolute tolerance on |R|
	RelTol     float64 // relative tolerance on |R|/|ref|
	MaxIts     int     // max number of updates
	AcceptMult float64 // at MaxIts, accept |R| within AcceptMult×tolerance
	StepTol    float64 // Newton increment stagnation tolerance (relative to max(|x|,1))
	Verbose    bool    // print iterations
}

// NewSolver returns a solver with default settings
func NewSolver() *Solver {
	return &Solver{
		AbsTol:     1e-11,
		RelTol:     1e-8,
		MaxIts:     25,
		AcceptMult: 10,
		StepTol:    1e-14,
	}
}

// Init sets solver parameters. Unknown names are ignored so the same set of
// parameters may be shared with the flow model
func (o *Solver) Init(prms dbf.Params) (err error) {
	o.AbsTol = prms.GetValueOrDefault("absTol", o.AbsTol)
	o.RelTol = prms.GetValueOrDefault("relTol", o.RelTol)
	o.MaxIts = prms.GetIntOrDefault("maxIts", o.MaxIts)
	o.AcceptMult = prms.GetValueOrDefault("acceptMult", o.AcceptMult)
	o.StepTol = prms.GetValueOrDefault("stepTol", o.StepTol)
	o.Verbose = prms.GetBoolOrDefault("verbose", o.Verbose)
	if o.AbsTol <= 0 && o.RelTol <= 0 {
		return chk.Err("retmap: at least one of absTol or relTol must be positive. absTol=%g relTol=%g", o.AbsTol, o.RelTol)
	}
	if o.MaxIts < 1 {
		return chk.Err("retmap: maxIts must be at least 1. maxIts=%d", o.MaxIts)
	}
	if o.AcceptMult < 1 {
		return chk.Err("retmap: acceptMult must be greater than or equal to 1. acceptMult=%g", o.AcceptMult)
	}
	return
}

// Iter holds the state of one solve
type Iter struct {
	X         float64 // current estimate
	R         float64 // residual at X
	Dr        float64 // dR/dx at X
	Ref       float64 // reference residual at X
	Lo        float64 // lower end of bracket
	Hi        float64 // upper end of bracket
	It        int     // number of updates performed
	AbsConv   bool    // converged on the absolute tolerance
	RelConv   bool    // converged on the relative tolerance
	Stagnated bool    // Newton increment became negligible
	Collapsed bool    // bracket width became negligible
	Bisected  bool    // last update was a bisection
	Accepted  bool    // accepted within AcceptMult×tolerance at MaxIts
}

// Converged tells whether the iteration finished successfully
func (o Iter) Converged() bool {
	return o.AbsConv || o.RelConv || o.Stagnated || o.Accepted || (o.Collapsed && o.R == 0)
}

// Solve finds x in [MinPermissible, MaxPermissible] such that R(x) = 0
//  guess -- initial estimate; clamped into the admissible range
func (o *Solver) Solve(p Problem, guess float64) (it Iter, err error) {

	// bracket
	it.Lo, it.Hi = p.MinPermissible(), p.MaxPermissible()
	if it.Hi < it.Lo {
		it.Hi = it.Lo
	}
	it.X = math.Min(math.Max(guess, it.Lo), it.Hi)
	if math.IsNaN(it.X) {
		it.X = it.Lo
	}

	// history
	var hist *strings.Builder
	if o.Verbose {
		hist = new(strings.Builder)
		hist.WriteString(io.Sf("%4s%23s%23s%23s%23s\n", "it", "x", "R", "dR/dx", "ref"))
	}

	// auxiliary
	var loSeen, hiSeen bool   // residual sign changes observed at each side of the bracket
	var loTried, hiTried bool // the admissible bounds were evaluated
	var slope float64         // orientation of R; zero while unknown
	var xPrev, rPrev float64  // last evaluated point
	step := it.Hi - it.Lo
	stepOld, stepOld2 := step, step
	for {

		// residual
		it.R, it.Dr, err = p.Residual(it.X)
		if err != nil {
			return it, &ConvergenceError{Reason: "residual evaluation failed", Iter: it, History: str(hist), Err: err}
		}
		if math.IsNaN(it.R) || math.IsInf(it.R, 0) || math.IsNaN(it.Dr) || math.IsInf(it.Dr, 0) {
			return it, &ConvergenceError{Reason: "residual is not finite", Iter: it, History: str(hist)}
		}
		it.Ref = p.ReferenceResidual(it.X, it.R)
		if hist != nil {
			hist.WriteString(io.Sf("%4d%23.15e%23.15e%23.15e%23.15e\n", it.It, it.X, it.R, it.Dr, it.Ref))
		}

		// convergence
		it.AbsConv = math.Abs(it.R) <= o.AbsTol
		it.RelConv = math.Abs(it.R) <= o.RelTol*math.Abs(it.Ref)
		if it.AbsConv || it.RelConv {
			o.print(hist)
			return
		}
		if it.It > 0 && !it.Bisected && math.Abs(step) <= o.StepTol*math.Max(math.Abs(it.X), 1) {
			it.Stagnated = true
			o.print(hist)
			return
		}
		if it.It >= o.MaxIts {
			if math.Abs(it.R) <= o.AcceptMult*o.AbsTol || math.Abs(it.R) <= o.AcceptMult*o.RelTol*math.Abs(it.Ref) {
				it.Accepted = true
				o.print(hist)
				return
			}
			return it, &ConvergenceError{Reason: io.Sf("maximum number of iterations (%d) reached", o.MaxIts), Iter: it, History: str(hist)}
		}

		// narrow bracket: the root lies below x when R and its slope have the same
		// sign. Without any nonzero derivative, the slope comes from the secant
		// through the last point
		if it.X == it.Lo {
			loTried = true
		}
		if it.X == it.Hi {
			hiTried = true
		}
		switch {
		case it.Dr != 0:
			slope = math.Copysign(1, it.Dr)
		case slope == 0 && it.It > 0 && it.X != xPrev && it.R != rPrev:
			slope = math.Copysign(1, (it.R-rPrev)*(it.X-xPrev))
		}
		if slope != 0 {
			if it.R*slope > 0 {
				it.Hi = it.X
				hiSeen = true
			} else {
				it.Lo = it.X
				loSeen = true
			}
		}
		xPrev, rPrev = it.X, it.R

		// collapsed bracket
		if it.Hi-it.Lo <= o.StepTol*math.Max(math.Abs(it.X), 1) {
			it.Collapsed = true
			if loSeen && hiSeen {
				it.Accepted = true
				o.print(hist)
				return
			}
			return it, &ConvergenceError{Reason: "no sign change of the residual in the admissible range", Iter: it, History: str(hist)}
		}

		// Newton update or bisection. A Newton step leaving the bracket towards
		// an untested admissible bound goes to that bound first. While the slope
		// is unknown, the bounds are evaluated
		stepOld2, stepOld, step = stepOld, step, 0
		it.Bisected = true
		if slope == 0 {
			switch {
			case !loTried:
				step = it.Lo - it.X
			case !hiTried:
				step = it.Hi - it.X
			default:
				return it, &ConvergenceError{Reason: "residual is flat in the admissible range", Iter: it, History: str(hist)}
			}
		} else if it.Dr != 0 {
			newton := -it.R / it.Dr
			xn := it.X + newton
			switch {
			case xn <= it.Lo && !loSeen && it.X != it.Lo:
				step = it.Lo - it.X
			case xn >= it.Hi && !hiSeen && it.X != it.Hi:
				step = it.Hi - it.X
			case xn > it.Lo && xn < it.Hi && math.Abs(2*newton) <= math.Abs(stepOld2):
				step = newton
				it.Bisected = false
			}
		}
		if it.Bisected && step == 0 {
			step = 0.5*(it.Lo+it.Hi) - it.X
		}
		it.X += step
		it.It++
	}
}

// print prints the history of iterations if verbose
func (o *Solver) print(hist *strings.Builder) {
	if hist != nil {
		io.Pf("%s", hist.String())
	}
}

// str returns the history string or empty
func str(hist *strings.Builder) string {
	if hist == nil {
		return ""
	}
	return hist.String()
}
