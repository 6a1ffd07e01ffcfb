// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/sirupsen/logrus"
)

// Driver runs a radial return along a loading path
type Driver struct {

	// input
	Engine *RadialReturn  // radial return
	C      *Elasticity    // elasticity tensor
	Log    *logrus.Logger // logger for step reductions

	// settings
	NdvgMax    int     // max number of continued step reductions
	FracMin    float64 // min sub-step as a fraction of one increment
	UseDtLimit bool    // cap sub-steps with the time step suggested by the engine
	Verbose    bool    // show messages

	// results
	Res    []*State    // states at the end of each increment
	Eps    [][]float64 // total strains at the end of each increment
	Times  []float64   // times at the end of each increment
	Nsteps int         // number of successful sub-steps
	Ndvg   int         // number of step reductions

	// auxiliary
	dtNext float64 // time step suggested by the last update
}

// Init initialises driver
func (o *Driver) Init(engine *RadialReturn, C *Elasticity, log *logrus.Logger) {
	o.Engine = engine
	o.C = C
	o.Log = log
	if o.Log == nil {
		o.Log = logrus.StandardLogger()
	}
	o.NdvgMax = 20
	o.FracMin = 1e-10
}

// Run runs simulation
//  Note: the initial strains are elastic
func (o *Driver) Run(pth *Path) (err error) {

	// check path
	if err = pth.Init(); err != nil {
		return
	}

	// initial state
	s := NewState()
	o.Engine.InitIntVars(s)
	copy(s.EpsE, pth.Eps[0])
	o.C.CalcSig(s.Sig, s.EpsE)
	o.Res = []*State{s.GetCopy()}
	o.Eps = [][]float64{append([]float64{}, pth.Eps[0]...)}
	o.Times = []float64{pth.Time[0]}
	o.Nsteps, o.Ndvg = 0, 0
	o.dtNext = math.Inf(1)

	// auxiliary
	ε0 := make([]float64, Nsig)
	ε1 := make([]float64, Nsig)
	ninc := float64(pth.Nincs)

	// stages and increments
	for i := 1; i < pth.Size(); i++ {
		for j := 0; j < pth.Nincs; j++ {
			f0, f1 := float64(j)/ninc, float64(j+1)/ninc
			if err = o.increment(s, pth, i, f0, f1, ε0, ε1); err != nil {
				return
			}
			t1, _, _ := pth.At(ε1, i, f1)
			o.Res = append(o.Res, s.GetCopy())
			o.Eps = append(o.Eps, append([]float64{}, ε1...))
			o.Times = append(o.Times, t1)
		}
	}
	return
}

// increment runs one increment of stage i from fraction f0 to f1 using
// sub-steps. A failed sub-step is discarded and its size is halved
func (o *Driver) increment(s *State, pth *Path, i int, f0, f1 float64, ε0, ε1 []float64) (err error) {

	// auxiliary
	var ndiverg int    // number of continued reductions
	md := 1.0          // sub-step size as a fraction of the increment
	done := 0.0        // fraction of the increment already computed
	tmp := s.GetCopy() // trial state
	Δε := make([]float64, Nsig)
	pt := &Point{DEps: Δε}

	// suggested time step
	t0, _, _ := pth.At(ε0, i, f0)
	t1, _, _ := pth.At(ε1, i, f1)
	if o.UseDtLimit && t1 > t0 {
		md = math.Max(math.Min(o.dtNext/(t1-t0), 1), o.FracMin)
	}

	for done < 1.0-1e-14 {

		// check for continued divergence
		if ndiverg >= o.NdvgMax {
			return chk.Err("continuous divergence after %d steps reached: %v", ndiverg, err)
		}
		h := math.Min(md, 1.0-done)
		if h < o.FracMin {
			return chk.Err("sub-step is too small: %g < %g: %v", h, o.FracMin, err)
		}

		// sub-step
		fa := f0 + (f1-f0)*done
		fb := f0 + (f1-f0)*(done+h)
		ta, _, _ := pth.At(ε0, i, fa)
		tb, T, env := pth.At(ε1, i, fb)
		for k := 0; k < Nsig; k++ {
			Δε[k] = ε1[k] - ε0[k]
		}
		pt.Dt, pt.Time, pt.Temp, pt.Env, pt.HasEnv = tb-ta, ta, T, env, len(pth.Env) > 0

		// update
		tmp.Set(s)
		var res *Result
		res, err = o.Engine.Update(tmp, o.C, pt)
		if err != nil {
			if Fatal(err) {
				return
			}
			o.Log.WithFields(logrus.Fields{
				"stage":    i,
				"fraction": h,
				"time":     ta,
			}).Warnf("msolid: update failed; reducing the step: %v", err)
			if o.Verbose {
				io.Pfred(". . . update failed (%2d) . . .\n", ndiverg+1)
			}
			md = h * 0.5
			ndiverg++
			o.Ndvg++
			continue
		}
		err = nil

		// accept
		s.Set(tmp)
		done += h
		ndiverg = 0
		o.Nsteps++
		md = 1.0
		if o.UseDtLimit {
			o.dtNext = res.DtLimit
			if !math.IsInf(res.DtLimit, 1) && t1 > t0 {
				md = math.Max(res.DtLimit/(t1-t0), o.FracMin)
			}
		}
	}
	return
}
