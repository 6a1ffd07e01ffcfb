// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mrom

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/sirupsen/logrus"
)

// input indices
const (
	InCell   = iota // old cell (glissile) dislocation density
	InWall          // old wall (locked) dislocation density
	InStress        // effective stress
	InStrain        // old effective inelastic strain
	InTemp          // temperature
	InEnv           // environmental factor (optional)
)

// output indices
const (
	OutCell   = iota // cell dislocation increment
	OutWall          // wall dislocation increment
	OutStrain        // inelastic strain increment
	Nout
)

// InputNames holds the names of the inputs
var InputNames = []string{"cell", "wall", "stress", "strain", "temperature", "environment"}

// Tile holds the tables of one region of input space
//  Indices are [output][input] for transforms and [input][lower/upper] for limits.
//  Coefficient c multiplies Π_i P_{d_i}(x_i) with c = Σ_i d_i·(degree+1)^i
type Tile struct {
	Coefs          [][]float64   `json:"coefs" yaml:"coefs" toml:"coefs"`                            // [nout][ncoef]
	Transform      [][]Transform `json:"transform" yaml:"transform" toml:"transform"`                // [nout][nin]
	TransformCoefs [][]float64   `json:"transformCoefs" yaml:"transformCoefs" toml:"transformCoefs"` // [nout][nin]
	InputLimits    [][]float64   `json:"inputLimits" yaml:"inputLimits" toml:"inputLimits"`          // [nin][2]
	NormLimits     [][]float64   `json:"normLimits" yaml:"normLimits" toml:"normLimits"`             // [nin][2]; defaults to InputLimits
}

// Data holds the definition of a reduced-order model
type Data struct {
	Name         string          `json:"name" yaml:"name" toml:"name"`
	Degree       int             `json:"degree" yaml:"degree" toml:"degree"`                   // Legendre degree; 0 means deduced from the number of coefficients
	StrainCutoff *float64        `json:"strainCutoff" yaml:"strainCutoff" toml:"strainCutoff"` // lower bound of the strain output before conversion; nil means none
	ExtrapWidth  float64         `json:"extrapWidth" yaml:"extrapWidth" toml:"extrapWidth"`    // decay width of EXTRAPOLATE as a fraction of the window
	StressScale  float64         `json:"stressScale" yaml:"stressScale" toml:"stressScale"`    // factor converting stresses to the units of the tables
	Window       []WindowFailure `json:"window" yaml:"window" toml:"window"`                   // [nin] policies; defaults to ERROR
	Tiles        []*Tile         `json:"tiles" yaml:"tiles" toml:"tiles"`
}

// interval is one distinct window of the tiling along an input
type interval struct {
	lo, hi float64
}

// Model implements a tiled Legendre reduced-order creep model.
// It is immutable after NewModel and may be shared by concurrent updates
type Model struct {
	Data
	Nin   int            // number of inputs (5 or 6)
	Nb    int            // number of polynomials per input = degree+1
	Ncoef int            // number of coefficients per tile and output
	Log   *logrus.Logger // logger for WARN window failures

	ivals   [][]interval     // [nin] distinct windows sorted by lower limit
	tileIv  [][]int          // [ntile][nin] index of the window of each tile
	global  [][2]float64     // [nin] union of the windows
	tnorm   [][][][2]float64 // [ntile][nout][nin] transformed normalisation limits
	strides []int            // [nin] (degree+1)^i
}

// NewModel validates the tables and allocates a new model
//  log -- may be nil; logrus standard logger is used then
func NewModel(data *Data, log *logrus.Logger) (o *Model, err error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	o = &Model{Log: log}
	o.Data = data.clone()
	if err = o.init(); err != nil {
		return nil, &ConfigError{err}
	}
	return
}

// init checks data and computes derived quantities
func (o *Model) init() (err error) {

	// sizes
	if len(o.Tiles) == 0 {
		return chk.Err("at least one tile is required")
	}
	o.Nin = len(o.Tiles[0].InputLimits)
	if o.Nin != 5 && o.Nin != 6 {
		return chk.Err("number of inputs must be 5 or 6 (with environmental factor). nin=%d", o.Nin)
	}
	if len(o.Tiles[0].Coefs) != Nout {
		return chk.Err("number of outputs must be %d. nout=%d", Nout, len(o.Tiles[0].Coefs))
	}
	ncoef := len(o.Tiles[0].Coefs[0])
	if o.Degree == 0 {
		o.Degree = int(math.Round(math.Pow(float64(ncoef), 1.0/float64(o.Nin)))) - 1
	}
	if o.Degree < 0 {
		return chk.Err("degree must be non-negative. degree=%d", o.Degree)
	}
	o.Nb = o.Degree + 1
	o.Ncoef = 1
	o.strides = make([]int, o.Nin)
	for i := 0; i < o.Nin; i++ {
		o.strides[i] = o.Ncoef
		o.Ncoef *= o.Nb
	}

	// settings
	if o.ExtrapWidth == 0 {
		o.ExtrapWidth = 0.1
	}
	if o.ExtrapWidth < 0 {
		return chk.Err("extrapolation width must be positive. extrapWidth=%g", o.ExtrapWidth)
	}
	if o.StressScale == 0 {
		o.StressScale = 1
	}
	if len(o.Window) == 0 {
		o.Window = make([]WindowFailure, o.Nin)
	}
	if len(o.Window) != o.Nin {
		return chk.Err("window policies must have %d entries. len=%d", o.Nin, len(o.Window))
	}

	// tiles
	o.tnorm = make([][][][2]float64, len(o.Tiles))
	for t, tile := range o.Tiles {
		if err = o.checkTile(t, tile); err != nil {
			return
		}
		o.tnorm[t] = make([][][2]float64, Nout)
		for k := 0; k < Nout; k++ {
			o.tnorm[t][k] = make([][2]float64, o.Nin)
			for i := 0; i < o.Nin; i++ {
				tr, c := tile.Transform[k][i], tile.TransformCoefs[k][i]
				if err = tr.check(c); err != nil {
					return chk.Err("tile %d, output %d, %s input: %v", t, k, InputNames[i], err)
				}
				lo, _ := tr.Forward(tile.NormLimits[i][0], c)
				hi, _ := tr.Forward(tile.NormLimits[i][1], c)
				a, _ := tr.Forward(tile.InputLimits[i][0], c)
				b, _ := tr.Forward(tile.InputLimits[i][1], c)
				if !finite(lo, hi, a, b) || lo == hi {
					return chk.Err("tile %d, output %d, %s input: transformed limits [%g, %g] are invalid", t, k, InputNames[i], lo, hi)
				}
				o.tnorm[t][k][i] = [2]float64{lo, hi}
			}
		}
	}
	return o.initTiling()
}

// checkTile checks the sizes of one tile
func (o *Model) checkTile(t int, tile *Tile) error {
	if len(tile.Coefs) != Nout || len(tile.Transform) != Nout || len(tile.TransformCoefs) != Nout {
		return chk.Err("tile %d: coefficients and transforms must have %d outputs", t, Nout)
	}
	for k := 0; k < Nout; k++ {
		if len(tile.Coefs[k]) != o.Ncoef {
			return chk.Err("tile %d, output %d: number of coefficients must be (degree+1)^nin = %d. ncoef=%d", t, k, o.Ncoef, len(tile.Coefs[k]))
		}
		if len(tile.Transform[k]) != o.Nin || len(tile.TransformCoefs[k]) != o.Nin {
			return chk.Err("tile %d, output %d: transforms and transform coefficients must have %d inputs", t, k, o.Nin)
		}
	}
	if len(tile.InputLimits) != o.Nin {
		return chk.Err("tile %d: input limits must have %d inputs. len=%d", t, o.Nin, len(tile.InputLimits))
	}
	if len(tile.NormLimits) == 0 {
		tile.NormLimits = tile.InputLimits
	}
	if len(tile.NormLimits) != o.Nin {
		return chk.Err("tile %d: normalization limits must have %d inputs. len=%d", t, o.Nin, len(tile.NormLimits))
	}
	for i := 0; i < o.Nin; i++ {
		for _, lim := range [][]float64{tile.InputLimits[i], tile.NormLimits[i]} {
			if len(lim) != 2 || !(lim[0] < lim[1]) {
				return chk.Err("tile %d, %s input: limits must be [lower, upper] with lower < upper. limits=%v", t, InputNames[i], lim)
			}
		}
	}
	return nil
}

// initTiling finds the distinct windows along each input
func (o *Model) initTiling() error {
	ntile := len(o.Tiles)
	o.ivals = make([][]interval, o.Nin)
	o.tileIv = make([][]int, ntile)
	o.global = make([][2]float64, o.Nin)
	for t := range o.tileIv {
		o.tileIv[t] = make([]int, o.Nin)
	}
	for i := 0; i < o.Nin; i++ {
		for _, tile := range o.Tiles {
			iv := interval{tile.InputLimits[i][0], tile.InputLimits[i][1]}
			found := false
			for _, jv := range o.ivals[i] {
				if jv == iv {
					found = true
					break
				}
			}
			if !found {
				o.ivals[i] = append(o.ivals[i], iv)
			}
		}
		ivs := o.ivals[i]
		sort.Slice(ivs, func(a, b int) bool { return ivs[a].lo < ivs[b].lo })
		for k := 1; k < len(ivs); k++ {
			if ivs[k].lo == ivs[k-1].lo || ivs[k].hi <= ivs[k-1].hi {
				return chk.Err("%s input: window [%g, %g] is nested in [%g, %g]", InputNames[i], ivs[k].lo, ivs[k].hi, ivs[k-1].lo, ivs[k-1].hi)
			}
			if ivs[k].lo > ivs[k-1].hi {
				return chk.Err("%s input: gap between windows [%g, %g] and [%g, %g]", InputNames[i], ivs[k-1].lo, ivs[k-1].hi, ivs[k].lo, ivs[k].hi)
			}
			if k > 1 && ivs[k].lo < ivs[k-2].hi {
				return chk.Err("%s input: more than two windows overlap at %g", InputNames[i], ivs[k].lo)
			}
		}
		o.global[i] = [2]float64{ivs[0].lo, ivs[len(ivs)-1].hi}
		for t, tile := range o.Tiles {
			for k, iv := range ivs {
				if iv.lo == tile.InputLimits[i][0] && iv.hi == tile.InputLimits[i][1] {
					o.tileIv[t][i] = k
				}
			}
		}
	}

	// the tiles must form a complete grid
	n := 1
	for _, ivs := range o.ivals {
		n *= len(ivs)
	}
	if n != ntile {
		return chk.Err("tiles must form a complete grid: %v windows per input require %d tiles. ntile=%d", o.Tilings(), n, ntile)
	}
	seen := make(map[string]int)
	for t := range o.Tiles {
		key := io.Sf("%v", o.tileIv[t])
		if tt, ok := seen[key]; ok {
			return chk.Err("tiles %d and %d cover the same region", tt, t)
		}
		seen[key] = t
	}
	return nil
}

// Tilings returns the number of distinct windows along each input
func (o *Model) Tilings() (n []int) {
	n = make([]int, o.Nin)
	for i, ivs := range o.ivals {
		n[i] = len(ivs)
	}
	return
}

// GlobalLimits returns the lowest and highest values covered by the tiles along input i
func (o *Model) GlobalLimits(i int) (lower, upper float64) {
	return o.global[i][0], o.global[i][1]
}

// clone returns a deep copy of data
func (o *Data) clone() (d Data) {
	d = *o
	if o.StrainCutoff != nil {
		c := *o.StrainCutoff
		d.StrainCutoff = &c
	}
	d.Window = append([]WindowFailure(nil), o.Window...)
	d.Tiles = make([]*Tile, len(o.Tiles))
	for t, tile := range o.Tiles {
		if tile == nil {
			tile = new(Tile)
		}
		d.Tiles[t] = &Tile{
			Coefs:          copy2(tile.Coefs),
			TransformCoefs: copy2(tile.TransformCoefs),
			InputLimits:    copy2(tile.InputLimits),
			NormLimits:     copy2(tile.NormLimits),
		}
		d.Tiles[t].Transform = make([][]Transform, len(tile.Transform))
		for k, tr := range tile.Transform {
			d.Tiles[t].Transform[k] = append([]Transform(nil), tr...)
		}
	}
	return
}

// finite tells whether all values are finite
func finite(v ...float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// copy2 returns a deep copy of a matrix
func copy2(a [][]float64) (b [][]float64) {
	if a == nil {
		return nil
	}
	b = make([][]float64, len(a))
	for i := range a {
		b[i] = append([]float64(nil), a[i]...)
	}
	return
}
