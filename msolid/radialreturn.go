// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/recuero/moose/mrom"
	"github.com/recuero/moose/retmap"
)

// Status indicates the branch taken by an update
type Status int

// statuses
const (
	Elastic   Status = iota // no inelastic flow
	Converged               // inelastic return converged
)

// String returns the name of the status
func (o Status) String() string {
	if o == Converged {
		return "converged"
	}
	return "elastic"
}

// Result holds the outcome of one update
type Result struct {
	Status     Status      // branch
	Iterations int         // number of solver updates
	Dp         float64     // equivalent inelastic increment
	Qtrial     float64     // effective trial stress
	Q          float64     // updated effective stress
	DtLimit    float64     // suggested bound of the next time step; +Inf means none
	Iter       retmap.Iter // final solver state
}

// RadialReturn implements the generalized radial return. It is immutable
// after allocation and may be shared by concurrent updates of different points
type RadialReturn struct {
	Flow    ResidualModel   // flow law
	Aniso   Anisotropy      // maps the equivalent increment to tensors
	Advisor TimeStepAdvisor // suggests the next time step; may be nil
	Solver  *retmap.Solver  // scalar solver
	Metrics *Metrics        // counters; may be nil
}

// NewRadialReturn allocates a radial return for the named flow model
//  prms -- flow, anisotropy, time step and solver parameters
//  rom  -- reduced-order model; required by "rom" only
func NewRadialReturn(name string, prms dbf.Params, rom *mrom.Model) (o *RadialReturn, err error) {

	// flow model
	flow, err := New(name)
	if err != nil {
		return
	}
	if r, ok := flow.(RomUser); ok {
		if rom == nil {
			return nil, &ConfigError{chk.Err("model %q requires a reduced-order model", name)}
		}
		r.SetRom(rom)
	}
	if err = flow.Init(prms); err != nil {
		return nil, err
	}
	o = &RadialReturn{Flow: flow, Aniso: Isotropic{}, Solver: retmap.NewSolver()}

	// anisotropy
	if IsHill(prms) {
		if o.Aniso, err = NewHillPrms(prms); err != nil {
			return nil, err
		}
	}

	// time step
	if adv, ok := flow.(TimeStepAdvisor); ok {
		o.Advisor = adv
	} else {
		adv := new(MaxIncrementAdvisor)
		if err = adv.Init(prms); err != nil {
			return nil, err
		}
		o.Advisor = adv
	}

	// solver
	if err = o.Solver.Init(prms); err != nil {
		return nil, &ConfigError{err}
	}
	return
}

// RequiresIsotropicTensor reports that elasticity tensors must be isotropic
func (o *RadialReturn) RequiresIsotropicTensor() bool { return true }

// InitIntVars sets the initial internal variables of a state
func (o *RadialReturn) InitIntVars(s *State) {
	s.Alp = IntVars{Extrap: 1}
	o.Flow.InitIntVars(&s.Alp)
}

// Update updates stresses, strains and internal variables of s for the
// strain increment of pt. The state is not modified if an error occurs
func (o *RadialReturn) Update(s *State, C *Elasticity, pt *Point) (res *Result, err error) {

	// check
	if len(pt.DEps) != Nsig || len(s.Sig) != Nsig || len(s.EpsE) != Nsig || len(s.DEpsIn) != Nsig {
		chk.Panic("radial return: tensors must have %d components", Nsig)
	}

	// trial state
	εtr := make([]float64, Nsig)
	σtr := make([]float64, Nsig)
	sdev := make([]float64, Nsig)
	for i := 0; i < Nsig; i++ {
		εtr[i] = s.EpsE[i] + pt.DEps[i]
	}
	C.CalcSig(σtr, εtr)
	M_Dev(sdev, σtr)
	prj, err := o.Aniso.Project(sdev, C.G)
	if err != nil {
		o.Metrics.failed()
		return
	}
	qtr := prj.Qtrial()
	res = &Result{Status: Elastic, Qtrial: qtr, Q: qtr, DtLimit: math.Inf(1)}

	// initialise flow model
	old := s.Alp
	var ev Evaluator
	if qtr > 0 {
		ev, err = o.Flow.Begin(&FlowInput{
			Qtr:    qtr,
			G:      C.G,
			Dt:     pt.Dt,
			Time:   pt.Time,
			Temp:   pt.Temp,
			Env:    pt.Env,
			HasEnv: pt.HasEnv,
			Old:    &old,
		})
		if err != nil {
			o.Metrics.failed()
			return
		}
	}

	// elastic update
	if ev == nil {
		copy(s.EpsE, εtr)
		copy(s.Sig, σtr)
		for i := range s.DEpsIn {
			s.DEpsIn[i] = 0
		}
		s.Dgam = 0
		s.Loading = false
		res.DtLimit = o.dtLimit(pt.Dt, &old, &old)
		o.Metrics.observe(res)
		return
	}

	// iterations
	prob := &returnProblem{prj: prj, ev: ev, ref: qtr / (3.0 * C.G)}
	res.Iter, err = o.Solver.Solve(prob, old.Rate*pt.Dt)
	res.Iterations = res.Iter.It
	if err != nil {
		o.Metrics.failed()
		return
	}
	x := res.Iter.X
	q, _, err := prj.Effective(x)
	if err != nil {
		o.Metrics.failed()
		return
	}

	// internal variables
	α := old
	α.EffStrain += x
	α.Rate = 0
	if pt.Dt > 0 {
		α.Rate = x / pt.Dt
	}
	if err = ev.Finalize(x, q, &α); err != nil {
		o.Metrics.failed()
		return
	}

	// tensors
	prj.InelasticIncrement(s.DEpsIn, x)
	for i := 0; i < Nsig; i++ {
		s.EpsE[i] = εtr[i] - s.DEpsIn[i]
	}
	C.CalcSig(s.Sig, s.EpsE)
	s.Alp = α
	s.Dgam = x
	s.Loading = true

	// results
	res.Status = Converged
	res.Dp = x
	res.Q = q
	res.DtLimit = o.dtLimit(pt.Dt, &old, &α)
	o.Metrics.observe(res)
	return
}

// dtLimit returns the suggested bound of the next time step
func (o *RadialReturn) dtLimit(dt float64, old, new *IntVars) float64 {
	if o.Advisor == nil {
		return math.Inf(1)
	}
	return math.Min(o.Advisor.TimeStepLimit(dt, old, new), o.Advisor.IntegrationErrorTimeStep(dt, old, new))
}

// returnProblem couples a projection and a flow evaluator
type returnProblem struct {
	prj Projection
	ev  Evaluator
	ref float64 // qtr/3G
}

// Residual implements retmap.Problem
func (o *returnProblem) Residual(x float64) (r, drdx float64, err error) {
	q, dqdx, err := o.prj.Effective(x)
	if err != nil {
		return
	}
	return o.ev.Residual(q, dqdx, x)
}

// ReferenceResidual implements retmap.Problem
func (o *returnProblem) ReferenceResidual(x, r float64) float64 { return o.ref }

// MinPermissible implements retmap.Problem
func (o *returnProblem) MinPermissible() float64 { return 0 }

// MaxPermissible implements retmap.Problem
func (o *returnProblem) MaxPermissible() float64 { return o.prj.MaxIncrement() }
