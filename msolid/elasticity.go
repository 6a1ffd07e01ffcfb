// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"gonum.org/v1/gonum/mat"
)

// Elasticity holds an isotropic linear elasticity tensor. It is immutable
// after allocation and may be shared by many points
type Elasticity struct {
	E  float64       // Young's modulus
	Nu float64       // Poisson's coefficient
	K  float64       // bulk modulus
	G  float64       // shear modulus
	D  *mat.SymDense // D = 3K·Piso + 2G·Psd [6][6]
}

// NewIsoElasticity allocates an elasticity tensor from E and ν
func NewIsoElasticity(E, ν float64) (o *Elasticity, err error) {
	if E <= 0 || ν <= -1 || ν >= 0.5 {
		return nil, &ConfigError{chk.Err("elasticity: E must be positive and -1 < ν < 0.5. E=%g ν=%g", E, ν)}
	}
	return newElasticityKG(Calc_K_from_Enu(E, ν), Calc_G_from_Enu(E, ν)), nil
}

// NewElasticity allocates an elasticity tensor from its Mandel matrix. The
// tensor must be isotropic, since radial returns operate on the deviator
func NewElasticity(D mat.Symmetric) (o *Elasticity, err error) {

	// check size
	if D.SymmetricDim() != Nsig {
		return nil, &ConfigError{chk.Err("elasticity: Mandel matrix must be 6×6. n=%d", D.SymmetricDim())}
	}

	// moduli: K from the volumetric block and G from the shear diagonal
	var sum, dmax float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum += D.At(i, j)
		}
	}
	for i := 0; i < Nsig; i++ {
		for j := 0; j < Nsig; j++ {
			dmax = math.Max(dmax, math.Abs(D.At(i, j)))
		}
	}
	K := sum / 9.0
	G := (D.At(3, 3) + D.At(4, 4) + D.At(5, 5)) / 6.0
	if K <= 0 || G <= 0 {
		return nil, &ConfigError{chk.Err("elasticity: moduli must be positive. K=%g G=%g", K, G)}
	}

	// isotropy
	o = newElasticityKG(K, G)
	for i := 0; i < Nsig; i++ {
		for j := 0; j < Nsig; j++ {
			if math.Abs(D.At(i, j)-o.D.At(i, j)) > TolIso*dmax {
				return nil, &ConfigError{chk.Err("elasticity: tensor is not isotropic. D[%d][%d]=%g but isotropic value is %g", i, j, D.At(i, j), o.D.At(i, j))}
			}
		}
	}
	return
}

// NewElasticityPrms allocates an elasticity tensor from parameters: "E" and "nu", or "K" and "G"
func NewElasticityPrms(prms dbf.Params) (o *Elasticity, err error) {
	if prms.Find("K") != nil && prms.Find("G") != nil {
		K, G := prms.GetValueOrDefault("K", 0), prms.GetValueOrDefault("G", 0)
		if K <= 0 || G <= 0 {
			return nil, &ConfigError{chk.Err("elasticity: moduli must be positive. K=%g G=%g", K, G)}
		}
		return newElasticityKG(K, G), nil
	}
	if prms.Find("E") == nil || prms.Find("nu") == nil {
		return nil, &ConfigError{chk.Err("elasticity: parameters E and nu (or K and G) are required")}
	}
	return NewIsoElasticity(prms.GetValueOrDefault("E", 0), prms.GetValueOrDefault("nu", 0))
}

// newElasticityKG allocates an isotropic tensor from K and G
func newElasticityKG(K, G float64) (o *Elasticity) {
	o = &Elasticity{K: K, G: G, E: Calc_E_from_KG(K, G), Nu: Calc_nu_from_KG(K, G)}
	o.D = mat.NewSymDense(Nsig, nil)
	Pi, Pd := Piso(), Psd()
	o.D.AddSym(o.D, Pi)
	o.D.ScaleSym(3.0*K, o.D)
	Pd.ScaleSym(2.0*G, Pd)
	o.D.AddSym(o.D, Pd)
	return
}

// RequiresIsotropicTensor reports that only isotropic tensors are accepted
func (o *Elasticity) RequiresIsotropicTensor() bool { return true }

// CalcSig computes σ = D:εe
func (o *Elasticity) CalcSig(σ, εe []float64) {
	if len(σ) != Nsig || len(εe) != Nsig {
		chk.Panic("elasticity: tensors must have %d components. len(σ)=%d len(εe)=%d", Nsig, len(σ), len(εe))
	}
	tr := M_Tr(εe)
	M_Dev(σ, εe)
	for i := 0; i < Nsig; i++ {
		σ[i] = o.K*tr*Im[i] + 2.0*o.G*σ[i]
	}
}

// auxiliary /////////////////////////////////////////////////////////////////////////////////////

// Calc_K_from_Enu computes K from E and ν
func Calc_K_from_Enu(E, ν float64) float64 { return E / (3.0 * (1.0 - 2.0*ν)) }

// Calc_G_from_Enu computes G from E and ν
func Calc_G_from_Enu(E, ν float64) float64 { return E / (2.0 * (1.0 + ν)) }

// Calc_E_from_KG computes E from K and G
func Calc_E_from_KG(K, G float64) float64 { return 9.0 * K * G / (3.0*K + G) }

// Calc_nu_from_KG computes ν from K and G
func Calc_nu_from_KG(K, G float64) float64 { return (3.0*K - 2.0*G) / (6.0*K + 2.0*G) }
