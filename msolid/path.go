// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/chk"
)

// Path holds a strain-controlled loading path made of stages
//  Temp and Env may be empty (zero), hold one value (constant) or one value per stage
type Path struct {
	Eps   [][]float64 `json:"eps" yaml:"eps" toml:"eps"`       // total strains (Mandel) at each stage [nstages][nsig]
	Time  []float64   `json:"time" yaml:"time" toml:"time"`    // time at each stage [nstages]
	Temp  []float64   `json:"temp" yaml:"temp" toml:"temp"`    // temperature
	Env   []float64   `json:"env" yaml:"env" toml:"env"`       // environmental factor
	Nincs int         `json:"nincs" yaml:"nincs" toml:"nincs"` // number of increments per stage; 0 means 1
}

// Init checks the path and sets defaults
func (o *Path) Init() (err error) {
	n := len(o.Eps)
	if n < 2 {
		return chk.Err("path must have at least two stages. nstages=%d", n)
	}
	if len(o.Time) != n {
		return chk.Err("path must have one time per stage. %d != %d", len(o.Time), n)
	}
	for i := 0; i < n; i++ {
		if len(o.Eps[i]) != Nsig {
			return chk.Err("strains of stage %d must have %d components. len=%d", i, Nsig, len(o.Eps[i]))
		}
		if i > 0 && o.Time[i] <= o.Time[i-1] {
			return chk.Err("times must increase. t[%d]=%g t[%d]=%g", i-1, o.Time[i-1], i, o.Time[i])
		}
	}
	for _, v := range [][]float64{o.Temp, o.Env} {
		if len(v) > 1 && len(v) != n {
			return chk.Err("temperatures and environmental factors must have 0, 1 or %d values. len=%d", n, len(v))
		}
	}
	if o.Nincs < 1 {
		o.Nincs = 1
	}
	return
}

// Size returns the number of stages
func (o *Path) Size() int { return len(o.Eps) }

// At returns the strains, time, temperature and environmental factor at
// fraction f ∈ [0,1] of the stage i-1 → i
func (o *Path) At(eps []float64, i int, f float64) (t, T, env float64) {
	for k := 0; k < Nsig; k++ {
		eps[k] = o.Eps[i-1][k] + f*(o.Eps[i][k]-o.Eps[i-1][k])
	}
	t = o.Time[i-1] + f*(o.Time[i]-o.Time[i-1])
	T = interp(o.Temp, i, f)
	env = interp(o.Env, i, f)
	return
}

// interp interpolates optional stage values
func interp(v []float64, i int, f float64) float64 {
	switch len(v) {
	case 0:
		return 0
	case 1:
		return v[0]
	}
	return v[i-1] + f*(v[i]-v[i-1])
}

// ReadJson reads path from JSON file
func (o *Path) ReadJson(fn string) (err error) {
	b, err := os.ReadFile(fn)
	if err != nil {
		return
	}
	if err = json.Unmarshal(b, o); err != nil {
		return chk.Err("cannot unmarshal path file %q: %v", fn, err)
	}
	return o.Init()
}
