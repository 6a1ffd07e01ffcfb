// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/recuero/moose/inp"
	"github.com/recuero/moose/msolid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// command line flags
var (
	matFn      string // materials file
	matName    string // material name
	pathFn     string // path file
	useDtLimit bool   // sub-step with the suggested time step
	verbose    bool   // show messages
)

var rootCmd = &cobra.Command{
	Use:   "moose",
	Short: "Radial-return creep and plasticity of solids",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		io.Verbose = verbose
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

var driveCmd = &cobra.Command{
	Use:   "drive",
	Short: "Run a material point along a strain path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return drive(matFn, matName, pathFn)
	},
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the available flow models",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range msolid.Models() {
			mdl, _ := msolid.New(name)
			io.Pf("%-10s", name)
			for _, p := range mdl.GetPrms() {
				io.Pf(" %s=%g", p.N, p.V)
			}
			io.Pf("\n")
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show messages")
	driveCmd.Flags().StringVar(&matFn, "mat", "", "materials file (.json, .yaml or .toml)")
	driveCmd.Flags().StringVar(&matName, "name", "", "material name")
	driveCmd.Flags().StringVar(&pathFn, "path", "", "strain path file (.json, .yaml or .toml)")
	driveCmd.Flags().BoolVar(&useDtLimit, "dtlimit", false, "sub-step with the time step suggested by the model")
	driveCmd.MarkFlagRequired("mat")
	driveCmd.MarkFlagRequired("name")
	driveCmd.MarkFlagRequired("path")
	rootCmd.AddCommand(driveCmd, modelsCmd)
}

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.Pfred("ERROR: %v\n", err)
			os.Exit(1)
		}
	}()

	// run command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// drive runs the local driver and prints the stress path
func drive(matFn, matName, pathFn string) (err error) {

	// material
	log := logrus.StandardLogger()
	mdb, err := inp.ReadMat(filepath.Dir(matFn), filepath.Base(matFn), log)
	if err != nil {
		return
	}
	mat := mdb.Get(matName)
	if mat == nil {
		return chk.Err("cannot find material %q in %q", matName, matFn)
	}
	reg := prometheus.NewRegistry()
	mat.Engine.Metrics = msolid.NewMetrics(reg)

	// path
	pth, err := inp.ReadPath(pathFn)
	if err != nil {
		return
	}

	// run
	var drv msolid.Driver
	drv.Init(mat.Engine, mat.C, log)
	drv.UseDtLimit = useDtLimit
	drv.Verbose = verbose
	if err = drv.Run(pth); err != nil {
		return chk.Err("driver: Run failed: %v", err)
	}

	// output
	io.Pf("%13s%13s%13s%13s%13s%13s%13s\n", "t", "p", "q", "εp", "rate", "cell", "wall")
	for i, s := range drv.Res {
		io.Pf("%13.6e%13.6e%13.6e%13.6e%13.6e%13.6e%13.6e\n", drv.Times[i], msolid.M_p(s.Sig), msolid.M_q(s.Sig),
			s.Alp.EffStrain, s.Alp.Rate, s.Alp.Cell, s.Alp.Wall)
	}
	log.WithFields(logrus.Fields{
		"material": matName,
		"steps":    drv.Nsteps,
		"cuts":     drv.Ndvg,
	}).Info("drive: done")
	if verbose {
		mfs, e := reg.Gather()
		if e == nil {
			for _, mf := range mfs {
				io.Pforan("%s: %d series\n", mf.GetName(), len(mf.GetMetric()))
			}
		}
	}
	return
}
