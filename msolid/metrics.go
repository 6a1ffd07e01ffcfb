// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts updates of radial returns. All methods accept a nil receiver
type Metrics struct {
	Updates    *prometheus.CounterVec // updates by status
	Failures   prometheus.Counter     // failed updates
	Iterations prometheus.Histogram   // solver updates per inelastic update
}

// NewMetrics allocates and registers counters on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Updates: f.NewCounterVec(prometheus.CounterOpts{
			Name: "msolid_updates_total",
			Help: "Total radial-return updates by status",
		}, []string{"status"}),
		Failures: f.NewCounter(prometheus.CounterOpts{
			Name: "msolid_update_failures_total",
			Help: "Total radial-return updates that failed",
		}),
		Iterations: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "msolid_return_iterations",
			Help:    "Number of solver updates per inelastic update",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 32},
		}),
	}
}

// observe records a successful update
func (o *Metrics) observe(res *Result) {
	if o == nil {
		return
	}
	o.Updates.WithLabelValues(res.Status.String()).Inc()
	if res.Status == Converged {
		o.Iterations.Observe(float64(res.Iterations))
	}
}

// failed records a failed update
func (o *Metrics) failed() {
	if o == nil {
		return
	}
	o.Failures.Inc()
}
