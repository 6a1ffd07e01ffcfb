// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mrom implements reduced-order creep models based on tiled
// tensor-product Legendre expansions
package mrom

import (
	"math"
	"strings"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/num/dual"
)

// Transform defines how a raw input is mapped before normalisation
type Transform int

// transforms
const (
	Linear Transform = iota // x
	Log                     // log(x + c)
	Exp                     // exp(x / c)
)

// String returns the name of the transform
func (o Transform) String() string {
	switch o {
	case Linear:
		return "LINEAR"
	case Log:
		return "LOG"
	case Exp:
		return "EXP"
	}
	return "UNKNOWN"
}

// UnmarshalText parses LINEAR, LOG or EXP (case insensitive)
func (o *Transform) UnmarshalText(text []byte) error {
	switch strings.ToUpper(strings.TrimSpace(string(text))) {
	case "LINEAR":
		*o = Linear
	case "LOG":
		*o = Log
	case "EXP":
		*o = Exp
	default:
		return chk.Err("mrom: transform %q is not available. options are LINEAR, LOG and EXP", text)
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (o Transform) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// check checks the transform coefficient
func (o Transform) check(c float64) error {
	switch o {
	case Linear:
		if c != 0 {
			return chk.Err("coefficient must be zero with a LINEAR transform. c=%g", c)
		}
	case Log:
	case Exp:
		if c == 0 {
			return chk.Err("coefficient must not be zero with an EXP transform")
		}
	default:
		return chk.Err("transform %d is invalid", o)
	}
	return nil
}

// apply applies the transform to a dual number
func (o Transform) apply(x dual.Number, c float64) dual.Number {
	switch o {
	case Log:
		return dual.Log(dual.Add(x, dual.Number{Real: c}))
	case Exp:
		return dual.Exp(dual.Scale(1/c, x))
	}
	return x
}

// Forward computes y = T(x) and dy/dx
func (o Transform) Forward(x, c float64) (y, dydx float64) {
	d := o.apply(dual.Number{Real: x, Emag: 1}, c)
	return d.Real, d.Emag
}

// Inverse computes x = T⁻¹(y)
func (o Transform) Inverse(y, c float64) float64 {
	switch o {
	case Log:
		return math.Exp(y) - c
	case Exp:
		return c * math.Log(y)
	}
	return y
}

// WindowFailure defines what happens when an input lies outside the calibration window
type WindowFailure int

// window failure policies
const (
	FailError       WindowFailure = iota // return a WindowError
	FailWarn                             // log a warning and clamp
	FailIgnore                           // clamp silently
	FailExtrapolate                      // clamp and scale increments by a decaying factor
)

// String returns the name of the policy
func (o WindowFailure) String() string {
	switch o {
	case FailError:
		return "ERROR"
	case FailWarn:
		return "WARN"
	case FailIgnore:
		return "IGNORE"
	case FailExtrapolate:
		return "EXTRAPOLATE"
	}
	return "UNKNOWN"
}

// UnmarshalText parses ERROR, WARN, IGNORE or EXTRAPOLATE (case insensitive)
func (o *WindowFailure) UnmarshalText(text []byte) error {
	switch strings.ToUpper(strings.TrimSpace(string(text))) {
	case "ERROR":
		*o = FailError
	case "WARN":
		*o = FailWarn
	case "IGNORE":
		*o = FailIgnore
	case "EXTRAPOLATE":
		*o = FailExtrapolate
	default:
		return chk.Err("mrom: window failure %q is not available. options are ERROR, WARN, IGNORE and EXTRAPOLATE", text)
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (o WindowFailure) MarshalText() ([]byte, error) { return []byte(o.String()), nil }
