// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

// ConfigError is returned at setup when parameters or tensors are invalid
type ConfigError struct {
	Err error
}

// Error implements error
func (o *ConfigError) Error() string { return "msolid: invalid configuration: " + o.Err.Error() }

// Unwrap returns the underlying error
func (o *ConfigError) Unwrap() error { return o.Err }
