// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from (.json, .yaml or .toml) files
package inp

import (
	"fmt"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/recuero/moose/mrom"
	"github.com/recuero/moose/msolid"
	"github.com/sirupsen/logrus"
)

// Material holds material data
type Material struct {

	// input
	Name  string     `json:"name" yaml:"name" toml:"name"`    // name of material
	Model string     `json:"model" yaml:"model" toml:"model"` // name of flow model; e.g. "powerlaw", "plast", "rom"
	Rom   string     `json:"rom" yaml:"rom" toml:"rom"`       // file with reduced-order tables; relative to the materials file
	Extra string     `json:"extra" yaml:"extra" toml:"extra"` // extra information about this material
	Prms  dbf.Params `json:"prms" yaml:"prms" toml:"prms"`    // elasticity, flow, anisotropy and solver parameters

	// derived
	C      *msolid.Elasticity   `json:"-" yaml:"-" toml:"-"` // elasticity tensor
	Engine *msolid.RadialReturn `json:"-" yaml:"-" toml:"-"` // radial return
	RomMdl *mrom.Model          `json:"-" yaml:"-" toml:"-"` // reduced-order model; nil if Rom is empty
}

// MatDb implements a database of materials
type MatDb struct {
	Materials []*Material `json:"materials" yaml:"materials" toml:"materials"` // all materials
}

// ReadMat reads all materials data from a .json, .yaml or .toml file and
// allocates their models
//  log -- logger given to the reduced-order models; may be nil
func ReadMat(dir, fn string, log *logrus.Logger) (mdb *MatDb, err error) {

	// read file
	mdb = new(MatDb)
	if err = decode(filepath.Join(dir, fn), mdb); err != nil {
		return nil, err
	}
	if len(mdb.Materials) == 0 {
		return nil, chk.Err("materials file %q has no materials", fn)
	}

	// alloc/init
	names := make(map[string]bool)
	for _, m := range mdb.Materials {
		if names[m.Name] {
			return nil, chk.Err("material %q is defined more than once", m.Name)
		}
		names[m.Name] = true
		if err = m.init(dir, log); err != nil {
			return nil, fmt.Errorf("material %q: %w", m.Name, err)
		}
	}
	return
}

// Get returns a material
//  Note: returns nil if not found
func (o MatDb) Get(name string) *Material {
	for _, mat := range o.Materials {
		if mat.Name == name {
			return mat
		}
	}
	return nil
}

// init allocates the elasticity tensor, the reduced-order model and the radial return
func (o *Material) init(dir string, log *logrus.Logger) (err error) {
	o.C, err = msolid.NewElasticityPrms(o.Prms)
	if err != nil {
		return
	}
	if o.Rom != "" {
		var data *mrom.Data
		data, err = ReadRom(filepath.Join(dir, o.Rom))
		if err != nil {
			return
		}
		o.RomMdl, err = mrom.NewModel(data, log)
		if err != nil {
			return
		}
	}
	o.Engine, err = msolid.NewRadialReturn(o.Model, o.Prms, o.RomMdl)
	return
}
