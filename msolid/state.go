// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

// IntVars holds the scalar internal variables of a point
type IntVars struct {
	EffStrain float64 // equivalent inelastic strain; never decreases
	Rate      float64 // equivalent inelastic strain rate
	Cell      float64 // cell (glissile) dislocation density
	Wall      float64 // wall (locked) dislocation density
	Extrap    float64 // extrapolation factor of the last reduced-order evaluation; 1 inside the windows
}

// State holds all continuum mechanics data of a point
type State struct {

	// essential
	Sig  []float64 // σ: Cauchy stress [nsig]
	EpsE []float64 // εe: elastic strain [nsig]

	// inelastic
	DEpsIn  []float64 // Δεin: inelastic strain increment of the last update [nsig]
	Alp     IntVars   // α: internal variables
	Dgam    float64   // Δγ: equivalent inelastic increment of the last update
	Loading bool      // the last update was inelastic
}

// NewState allocates a state with zero stress and strain
func NewState() *State {
	return &State{
		Sig:    make([]float64, Nsig),
		EpsE:   make([]float64, Nsig),
		DEpsIn: make([]float64, Nsig),
		Alp:    IntVars{Extrap: 1},
	}
}

// Set copies states
//  Note: this and other states must have been allocated with NewState
func (o *State) Set(other *State) {
	copy(o.Sig, other.Sig)
	copy(o.EpsE, other.EpsE)
	copy(o.DEpsIn, other.DEpsIn)
	o.Alp = other.Alp
	o.Dgam = other.Dgam
	o.Loading = other.Loading
}

// GetCopy returns a copy of this state
func (o *State) GetCopy() *State {
	other := NewState()
	other.Set(o)
	return other
}

// Point holds the data supplied to an update
type Point struct {
	DEps   []float64 // Δε: total strain increment [nsig]
	Dt     float64   // time step
	Time   float64   // time at the beginning of the step
	Temp   float64   // temperature
	Env    float64   // environmental factor
	HasEnv bool      // Env is given
}
