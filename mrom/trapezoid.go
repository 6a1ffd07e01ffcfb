// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mrom

import "math"

// MinRefinements is the number of interval doublings performed before the
// error estimate may stop the trapezoidal rule
const MinRefinements = 8

// TrapezoidalRule integrates f over [a,b] by successive halving of the step.
// Refinement stops when |I_k - I_{k-1}| ≤ tol·∫|f| after at least
// MinRefinements levels, or when maxRefinements levels were computed
func TrapezoidalRule(f func(x float64) float64, a, b, tol float64, maxRefinements int) (res float64, err error) {
	if a >= b || math.IsNaN(a) || math.IsNaN(b) {
		return 0, &IntervalError{a, b}
	}

	// first two levels
	ya, yb := f(a), f(b)
	h := (b - a) * 0.5
	i0 := (ya + yb) * h
	l0 := (math.Abs(ya) + math.Abs(yb)) * h
	yh := f(a + h)
	i1 := i0*0.5 + yh*h
	l1 := l0*0.5 + math.Abs(yh)*h

	// I_k = I_{k-1}/2 + h_k·Σ_{j odd} f(a + j·h_k)
	k := 2
	e := math.Abs(i0 - i1)
	for k < MinRefinements || (k < maxRefinements && e > tol*l1) {
		i0, l0 = i1, l1
		i1, l1 = i0*0.5, l0*0.5
		p := 1 << uint(k)
		h *= 0.5
		var sum, absum float64
		for j := 1; j < p; j += 2 {
			y := f(a + float64(j)*h)
			sum += y
			absum += math.Abs(y)
		}
		i1 += sum * h
		l1 += absum * h
		k++
		e = math.Abs(i0 - i1)
	}
	return i1, nil
}
