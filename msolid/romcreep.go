// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/recuero/moose/mrom"
)

// RomUser is implemented by flow models evaluated by a reduced-order model
type RomUser interface {
	SetRom(rom *mrom.Model)
}

// RomCreep implements creep with dislocation densities evolved by a
// reduced-order model
type RomCreep struct {
	MaxIncrementAdvisor
	Rom              *mrom.Model // reduced-order model; shared
	Cell0            float64     // initial cell dislocation density
	Wall0            float64     // initial wall dislocation density
	MaxCellIncrement float64     // largest cell density increment per step
	MaxWallIncrement float64     // largest wall density increment per step
	Verbose          bool        // print inputs and increments of each update

	// forcing functions of time; nil means the state value is used. Forced
	// densities replace the evolved ones
	CellFcn   func(t float64) float64 // cell dislocation density
	WallFcn   func(t float64) float64 // wall dislocation density
	StrainFcn func(t float64) float64 // old effective inelastic strain given to the model
}

// add model to factory
func init() {
	allocators["rom"] = func() ResidualModel { return new(RomCreep) }
}

// SetRom sets the reduced-order model
func (o *RomCreep) SetRom(rom *mrom.Model) { o.Rom = rom }

// Init initialises model
func (o *RomCreep) Init(prms dbf.Params) (err error) {
	if o.Rom == nil {
		return &ConfigError{chk.Err("rom: reduced-order model is not set")}
	}
	if err = o.MaxIncrementAdvisor.Init(prms); err != nil {
		return
	}
	o.Cell0 = prms.GetValueOrDefault("initialCellDislocations", 0)
	o.Wall0 = prms.GetValueOrDefault("initialWallDislocations", 0)
	o.MaxCellIncrement = prms.GetValueOrDefault("maxCellIncrement", 1e12)
	o.MaxWallIncrement = prms.GetValueOrDefault("maxWallIncrement", 1e12)
	o.Verbose = prms.GetBoolOrDefault("romVerbose", false)
	if o.Cell0 < 0 || o.Wall0 < 0 {
		return &ConfigError{chk.Err("rom: initial dislocation densities must not be negative. cell=%g wall=%g", o.Cell0, o.Wall0)}
	}
	if o.MaxCellIncrement <= 0 || o.MaxWallIncrement <= 0 {
		return &ConfigError{chk.Err("rom: maximum dislocation increments must be positive. cell=%g wall=%g", o.MaxCellIncrement, o.MaxWallIncrement)}
	}
	return
}

// GetPrms gets (an example) of parameters
func (o RomCreep) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "initialCellDislocations", V: 6e12},
		&dbf.P{N: "initialWallDislocations", V: 4.4e11},
		&dbf.P{N: "maxCellIncrement", V: 1e12},
		&dbf.P{N: "maxWallIncrement", V: 1e12},
		&dbf.P{N: "maxInelasticIncrement", V: DefaultMaxInelasticIncrement},
	}
}

// InitIntVars sets the initial dislocation densities
func (o RomCreep) InitIntVars(α *IntVars) {
	α.Cell = o.Cell0
	α.Wall = o.Wall0
}

// Begin evaluates the non-stress inputs of the reduced-order model
func (o *RomCreep) Begin(in *FlowInput) (Evaluator, error) {
	if o.Rom.Nin == 6 && !in.HasEnv {
		return nil, chk.Err("rom: model %q requires the environmental factor", o.Rom.Name)
	}
	ev := &romEval{mdl: o, old: *in.Old, t: in.Time + in.Dt}
	inp := mrom.Inputs{
		Cell:   in.Old.Cell,
		Wall:   in.Old.Wall,
		Strain: in.Old.EffStrain,
		Temp:   in.Temp,
		Env:    in.Env,
	}
	if o.CellFcn != nil {
		inp.Cell = o.CellFcn(ev.t)
	}
	if o.WallFcn != nil {
		inp.Wall = o.WallFcn(ev.t)
	}
	if o.StrainFcn != nil {
		inp.Strain = o.StrainFcn(ev.t)
	}
	if o.Verbose {
		io.Pforan("rom: t=%g cell=%g wall=%g strain=%g T=%g env=%g qtr=%g\n", ev.t, inp.Cell, inp.Wall, inp.Strain, inp.Temp, inp.Env, in.Qtr)
	}
	var err error
	ev.stp, err = o.Rom.Begin(inp, in.Dt)
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// TimeStepLimit bounds the time step by the inelastic and dislocation increments
func (o *RomCreep) TimeStepLimit(dt float64, old, new *IntVars) float64 {
	lim := o.MaxIncrementAdvisor.TimeStepLimit(dt, old, new)
	if Δ := math.Abs(new.Cell - old.Cell); Δ > tinyIncrement*tinyIncrement {
		lim = math.Min(lim, dt*o.MaxCellIncrement/Δ)
	}
	if Δ := math.Abs(new.Wall - old.Wall); Δ > tinyIncrement*tinyIncrement {
		lim = math.Min(lim, dt*o.MaxWallIncrement/Δ)
	}
	return lim
}

// romEval evaluates one update
type romEval struct {
	mdl *RomCreep
	stp *mrom.Step
	old IntVars
	t   float64 // time at the end of the step
}

// Residual returns r = Δε(q) - x
func (o *romEval) Residual(q, dqdx, x float64) (r, drdx float64, err error) {
	inc, err := o.stp.Increments(q)
	if err != nil {
		return
	}
	return inc[mrom.OutStrain].Real - x, inc[mrom.OutStrain].Emag*dqdx - 1.0, nil
}

// Finalize updates the dislocation densities and the extrapolation factor
func (o *romEval) Finalize(x, q float64, α *IntVars) error {
	inc, err := o.stp.Increments(q)
	if err != nil {
		return err
	}
	α.Cell = math.Max(o.old.Cell+inc[mrom.OutCell].Real, 0)
	α.Wall = math.Max(o.old.Wall+inc[mrom.OutWall].Real, 0)
	if o.mdl.CellFcn != nil {
		α.Cell = o.mdl.CellFcn(o.t)
	}
	if o.mdl.WallFcn != nil {
		α.Wall = o.mdl.WallFcn(o.t)
	}
	α.Extrap = o.stp.Extrap
	if o.mdl.Verbose {
		io.Pforan("rom: Δε=%g Δcell=%g Δwall=%g q=%g extrap=%g\n", x, inc[mrom.OutCell].Real, inc[mrom.OutWall].Real, q, α.Extrap)
	}
	return nil
}

// Rate returns the creep rate at stress q
func (o *romEval) Rate(q float64) (float64, error) {
	return o.stp.CreepRate(q)
}
