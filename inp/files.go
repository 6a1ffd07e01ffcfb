// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cpmech/gosl/chk"
	"github.com/recuero/moose/mrom"
	"github.com/recuero/moose/msolid"
	"gopkg.in/yaml.v3"
)

// ReadRom reads the tables of a reduced-order model
//  Note: the tables are validated by mrom.NewModel
func ReadRom(fn string) (data *mrom.Data, err error) {
	data = new(mrom.Data)
	if err = decode(fn, data); err != nil {
		return nil, err
	}
	return
}

// ReadPath reads and checks a loading path
func ReadPath(fn string) (pth *msolid.Path, err error) {
	pth = new(msolid.Path)
	if format(fn) == "json" {
		if err = pth.ReadJson(fn); err != nil {
			return nil, err
		}
		return
	}
	if err = decode(fn, pth); err != nil {
		return nil, err
	}
	if err = pth.Init(); err != nil {
		return nil, err
	}
	return
}

// format returns the format of a file from its extension
func format(fn string) string {
	switch strings.ToLower(filepath.Ext(fn)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	}
	return "json"
}

// decode reads a file and decodes it according to its extension
func decode(fn string, v interface{}) (err error) {
	b, err := os.ReadFile(fn)
	if err != nil {
		return
	}
	switch format(fn) {
	case "yaml":
		err = yaml.Unmarshal(b, v)
	case "toml":
		err = toml.Unmarshal(b, v)
	default:
		err = json.Unmarshal(b, v)
	}
	if err != nil {
		return chk.Err("cannot decode %q: %v", fn, err)
	}
	return
}
