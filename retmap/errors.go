// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package retmap

import "github.com/cpmech/gosl/io"

// ConvergenceError is returned when the scalar solve fails. It is recoverable:
// callers usually retry with a smaller time step
type ConvergenceError struct {
	Reason  string // short description
	Iter    Iter   // last iteration
	History string // iteration table; empty unless Verbose
	Err     error  // underlying error, if any
}

// Error implements error
func (o *ConvergenceError) Error() string {
	l := io.Sf("retmap: convergence failure after %d iterations: %s (x=%g R=%g lo=%g hi=%g)",
		o.Iter.It, o.Reason, o.Iter.X, o.Iter.R, o.Iter.Lo, o.Iter.Hi)
	if o.Err != nil {
		l += ": " + o.Err.Error()
	}
	return l
}

// Unwrap returns the underlying error
func (o *ConvergenceError) Unwrap() error { return o.Err }
