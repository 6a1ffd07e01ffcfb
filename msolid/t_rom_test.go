// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"errors"
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/recuero/moose/mrom"
)

// log-rates of the test model
var (
	romA  = math.Log(1e-6) // strain
	romB  = 2.0            // strain sensitivity to the normalised stress
	romAc = math.Log(1e-3) // cell
	romAw = math.Log(1e-4) // wall
)

// newRom allocates the test reduced-order model
func newRom(tst *testing.T) *mrom.Model {
	rom, err := mrom.NewModel(&mrom.Data{
		Name:  "test",
		Tiles: []*mrom.Tile{romTile(romA, romB, romAc, romAw)},
	}, nil)
	if err != nil {
		tst.Fatalf("NewModel failed: %v\n", err)
	}
	return rom
}

// romRate returns the strain rate of the test model at stress q
func romRate(q float64) float64 {
	return math.Exp(romA + romB*(q/100.0-1.0))
}

// romIncrement solves x = rate(qtr - 3G·x)·Δt by bisection
func romIncrement(qtr, G, dt float64) (x float64) {
	lo, hi := 0.0, qtr/(3.0*G)
	for it := 0; it < 200; it++ {
		x = (lo + hi) / 2.0
		if romRate(qtr-3.0*G*x)*dt-x > 0 {
			lo = x
		} else {
			hi = x
		}
	}
	return
}

func Test_rom01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rom01. creep with reduced-order model")

	C := newElast(tst)
	rom := newRom(tst)
	o := newEngine(tst, "rom", rom,
		&dbf.P{N: "initialCellDislocations", V: 1e12},
		&dbf.P{N: "initialWallDislocations", V: 2e12},
		&dbf.P{N: "maxCellIncrement", V: 1e8},
	)
	s := NewState()
	o.InitIntVars(s)
	chk.Float64(tst, "cell0", 1e-17, s.Alp.Cell, 1e12)
	chk.Float64(tst, "wall0", 1e-17, s.Alp.Wall, 2e12)

	qtr, dt := 150.0, 2.0
	res, err := o.Update(s, C, &Point{DEps: devIncrement(qtr, C.G), Dt: dt, Temp: tstT})
	if err != nil {
		tst.Errorf("Update failed: %v\n", err)
		return
	}
	xref := romIncrement(qtr, C.G, dt)
	io.Pforan("it=%d x=%g (%g) q=%g dtLimit=%g\n", res.Iterations, res.Dp, xref, res.Q, res.DtLimit)
	chk.Float64(tst, "Δp", 1e-11, res.Dp, xref)
	chk.Float64(tst, "q", 1e-8, res.Q, qtr-3.0*C.G*xref)
	chk.Float64(tst, "rate", 1e-12, s.Alp.Rate, xref/dt)
	chk.Float64(tst, "cell", 1e-3, s.Alp.Cell, 1e12*(1-1e-3*dt))
	chk.Float64(tst, "wall", 1e-3, s.Alp.Wall, 2e12*(1-1e-4*dt))
	chk.Float64(tst, "extrap", 1e-17, s.Alp.Extrap, 1)

	// the cell increment controls the time step
	chk.Float64(tst, "dtLimit", 1e-10, res.DtLimit, dt*1e8/(1e12*1e-3*dt))
}

func Test_rom02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rom02. window failures")

	C := newElast(tst)
	rom := newRom(tst)
	o := newEngine(tst, "rom", rom,
		&dbf.P{N: "initialCellDislocations", V: 1e12},
		&dbf.P{N: "initialWallDislocations", V: 1e12},
	)

	// stress above the window
	s := NewState()
	o.InitIntVars(s)
	old := s.GetCopy()
	_, err := o.Update(s, C, &Point{DEps: devIncrement(300, C.G), Dt: 1, Temp: tstT})
	io.Pforan("err = %v\n", err)
	var werr *mrom.WindowError
	if !errors.As(err, &werr) {
		tst.Errorf("stress outside of the window must fail: %v\n", err)
		return
	}
	if Fatal(err) {
		tst.Errorf("window errors must be recoverable\n")
		return
	}
	chk.Array(tst, "σ", 1e-17, s.Sig, old.Sig)

	// temperature outside of the window
	_, err = o.Update(s, C, &Point{DEps: devIncrement(100, C.G), Dt: 1, Temp: 500})
	if !errors.As(err, &werr) {
		tst.Errorf("temperature outside of the window must fail: %v\n", err)
		return
	}
	chk.Int(tst, "input", werr.Input, mrom.InTemp)

	// extrapolation
	rom, err = mrom.NewModel(&mrom.Data{
		Window: []mrom.WindowFailure{mrom.FailError, mrom.FailError, mrom.FailError, mrom.FailError, mrom.FailExtrapolate},
		Tiles:  []*mrom.Tile{romTile(romA, romB, romAc, romAw)},
	}, nil)
	if err != nil {
		tst.Errorf("NewModel failed: %v\n", err)
		return
	}
	o = newEngine(tst, "rom", rom,
		&dbf.P{N: "initialCellDislocations", V: 1e12},
		&dbf.P{N: "initialWallDislocations", V: 1e12},
	)
	s = NewState()
	o.InitIntVars(s)
	res, err := o.Update(s, C, &Point{DEps: devIncrement(100, C.G), Dt: 1, Temp: 1005})
	if err != nil {
		tst.Errorf("Update failed: %v\n", err)
		return
	}
	io.Pforan("extrap=%g x=%g\n", s.Alp.Extrap, res.Dp)
	if s.Alp.Extrap <= 0 || s.Alp.Extrap >= 1 {
		tst.Errorf("extrapolation factor must be in (0,1). extrap=%g\n", s.Alp.Extrap)
		return
	}
	chk.Float64(tst, "Δp", 1e-11, res.Dp, s.Alp.Extrap*romRate(res.Q))
}

func Test_rom03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rom03. forcing functions")

	C := newElast(tst)
	o := newEngine(tst, "rom", newRom(tst),
		&dbf.P{N: "initialCellDislocations", V: 1e12},
		&dbf.P{N: "initialWallDislocations", V: 2e12},
		&dbf.P{N: "romVerbose", V: 1},
	)
	flow := o.Flow.(*RomCreep)
	if !flow.Verbose {
		tst.Errorf("romVerbose should have been read\n")
		return
	}
	flow.Verbose = chk.Verbose
	flow.CellFcn = func(t float64) float64 { return 5e11 + 1e9*t }
	flow.WallFcn = func(t float64) float64 { return 3e12 }

	// forced densities replace the evolved ones at the end of the step
	qtr, dt, t0 := 150.0, 2.0, 10.0
	s := NewState()
	o.InitIntVars(s)
	res, err := o.Update(s, C, &Point{DEps: devIncrement(qtr, C.G), Dt: dt, Time: t0, Temp: tstT})
	if err != nil {
		tst.Errorf("Update failed: %v\n", err)
		return
	}
	chk.Float64(tst, "Δp", 1e-11, res.Dp, romIncrement(qtr, C.G, dt))
	chk.Float64(tst, "cell", 1e-17, s.Alp.Cell, 5e11+1e9*(t0+dt))
	chk.Float64(tst, "wall", 1e-17, s.Alp.Wall, 3e12)

	// forced densities outside of the window
	flow.CellFcn = func(t float64) float64 { return 1e16 }
	s = NewState()
	o.InitIntVars(s)
	old := s.GetCopy()
	_, err = o.Update(s, C, &Point{DEps: devIncrement(qtr, C.G), Dt: dt, Time: t0 + dt, Temp: tstT})
	var werr *mrom.WindowError
	if !errors.As(err, &werr) {
		tst.Errorf("forced cell density outside of the window must fail: %v\n", err)
		return
	}
	chk.Int(tst, "input", werr.Input, mrom.InCell)
	chk.Float64(tst, "cell", 1e-17, s.Alp.Cell, old.Alp.Cell)

	// old strain given to the model
	flow.CellFcn, flow.WallFcn = nil, nil
	flow.StrainFcn = func(t float64) float64 { return 0.05 + t }
	s = NewState()
	o.InitIntVars(s)
	_, err = o.Update(s, C, &Point{DEps: devIncrement(qtr, C.G), Dt: dt, Time: 0, Temp: tstT})
	if !errors.As(err, &werr) {
		tst.Errorf("forced strain outside of the window must fail: %v\n", err)
		return
	}
	chk.Int(tst, "input", werr.Input, mrom.InStrain)
	flow.StrainFcn = func(t float64) float64 { return 0.05 }
	_, err = o.Update(s, C, &Point{DEps: devIncrement(qtr, C.G), Dt: dt, Time: 0, Temp: tstT})
	if err != nil {
		tst.Errorf("Update failed: %v\n", err)
		return
	}
	chk.Float64(tst, "cell", 1e-3, s.Alp.Cell, 1e12*(1-1e-3*dt))
	chk.Float64(tst, "strain", 1e-17, s.Alp.EffStrain, s.Dgam)
}
