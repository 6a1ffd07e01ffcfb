// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mrom

import "github.com/cpmech/gosl/io"

// ConfigError is returned by NewModel when the tables are malformed
type ConfigError struct {
	Err error
}

// Error implements error
func (o *ConfigError) Error() string { return "mrom: invalid model: " + o.Err.Error() }

// Unwrap returns the underlying error
func (o *ConfigError) Unwrap() error { return o.Err }

// WindowError is returned when an input lies outside the calibration window
// and its window policy is FailError
type WindowError struct {
	Input int     // input index
	Value float64 // raw input value
	Lower float64 // lowest value covered by any tile
	Upper float64 // highest value covered by any tile
}

// Error implements error
func (o *WindowError) Error() string {
	return io.Sf("mrom: %s input %g is outside the window [%g, %g]", InputNames[o.Input], o.Value, o.Lower, o.Upper)
}

// IntervalError is returned by TrapezoidalRule when b ≤ a
type IntervalError struct {
	A, B float64
}

// Error implements error
func (o *IntervalError) Error() string {
	return io.Sf("mrom: ends of interval do not fulfill b > a in trapezoidal rule. a=%g b=%g", o.A, o.B)
}
