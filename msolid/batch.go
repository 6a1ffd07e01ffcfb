// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"context"
	"errors"
	"runtime"

	"github.com/cpmech/gosl/chk"
	"github.com/recuero/moose/mrom"
	"golang.org/x/sync/errgroup"
)

// Batch updates many independent points concurrently. Each worker owns the
// points it updates; the engine and the elasticity tensor are shared read-only
type Batch struct {
	Engine  *RadialReturn // radial return
	C       *Elasticity   // elasticity tensor
	Workers int           // max number of concurrent updates; ≤ 0 means GOMAXPROCS
}

// BatchResult holds the outcome of one point
type BatchResult struct {
	Res *Result // nil if Err != nil
	Err error   // recoverable error of this point, e.g. a convergence failure
}

// Update updates states[i] with pts[i]. Recoverable errors are reported per
// point; configuration and interval errors are fatal and stop the batch
// together with the cancellation of ctx. No new update is started after the
// batch is stopped
func (o *Batch) Update(ctx context.Context, states []*State, pts []*Point) (res []BatchResult, err error) {

	// check
	if len(states) != len(pts) {
		chk.Panic("batch: number of states and points must be equal. %d != %d", len(states), len(pts))
	}
	workers := o.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// run
	res = make([]BatchResult, len(states))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range states {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := o.Engine.Update(states[i], o.C, pts[i])
			if Fatal(err) {
				return err
			}
			if err != nil {
				r = nil
			}
			res[i] = BatchResult{Res: r, Err: err}
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return
	}
	return res, ctx.Err()
}

// Fatal tells whether err must stop a computation instead of triggering a
// retry with a smaller step
func Fatal(err error) bool {
	if err == nil {
		return false
	}
	var cerr *ConfigError
	var rerr *mrom.ConfigError
	var ierr *mrom.IntervalError
	return errors.As(err, &cerr) || errors.As(err, &rerr) || errors.As(err, &ierr)
}
