/*
Copyright © 2024 the GETMprep authors.
This file is part of GETMprep.

GETMprep is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

GETMprep is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with GETMprep.  If not, see <http://www.gnu.org/licenses/>.
*/

package getmpreputil

import (
	"fmt"
	"os"

	"github.com/fjordmod/getmprep"
	"github.com/lnashier/viper"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to GETMprep.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "ScenarioFile",
			usage: `
              ScenarioFile is the path of the XML file holding the
              scenario description. Its root element must be named
              'scenario'.`,
			shorthand:  "s",
			defaultVal: "configuration.xml",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "BaseDir",
			usage: `
              BaseDir is the directory holding the scenario's 'model'
              subfolder. File names from the scenario description are
              resolved against it.`,
			defaultVal: ".",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "SaltProfileFile",
			usage: `
              SaltProfileFile is the path where the initial salinity
              profile is written.`,
			defaultVal: "model/salt_profile.txt",
			flagsets:   []*pflag.FlagSet{stratificationCmd.Flags()},
		},
		{
			name: "TempProfileFile",
			usage: `
              TempProfileFile is the path where the initial temperature
              profile is written.`,
			defaultVal: "model/temp_profile.txt",
			flagsets:   []*pflag.FlagSet{stratificationCmd.Flags()},
		},
		{
			name: "Topo.InputFile",
			usage: `
              Topo.InputFile is the path of the NetCDF file holding the
              topography to be smoothed.`,
			defaultVal: "model/topo.nc",
			flagsets:   []*pflag.FlagSet{smoothtopoCmd.Flags()},
		},
		{
			name: "Topo.OutputFile",
			usage: `
              Topo.OutputFile is the path where the smoothed topography
              is written.`,
			defaultVal: "model/topo_smoothed.nc",
			flagsets:   []*pflag.FlagSet{smoothtopoCmd.Flags()},
		},
		{
			name: "Topo.Variable",
			usage: `
              Topo.Variable is the name of the NetCDF variable holding
              the water depth.`,
			defaultVal: "bathymetry",
			flagsets:   []*pflag.FlagSet{smoothtopoCmd.Flags()},
		},
		{
			name: "Topo.SmoothPmI",
			usage: `
              Topo.SmoothPmI is the half-window size of the running
              average along the first grid dimension: every cell is
              averaged over plus and minus this many cells.`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{smoothtopoCmd.Flags()},
		},
		{
			name: "Topo.SmoothPmJ",
			usage: `
              Topo.SmoothPmJ is the half-window size of the running
              average along the second grid dimension.`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{smoothtopoCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("GETMPREP")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(stratificationCmd)
	Root.AddCommand(smoothtopoCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("getmprep: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "getmprep",
	Short: "A preparation tool for GETM fjord scenarios.",
	Long: `GETMprep turns a scenario description XML file into the input files of a
GETM fjord model run. Use the subcommands specified below to access the
individual preparation steps.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'GETMPREP_var' where 'var'
is the name of the variable to be set. Many configuration variables are
additionally allowed to contain environment variables within them.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of GETMprep.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("GETMprep v%s\n", getmprep.Version)
	},
	DisableAutoGenTag: true,
}

// stratificationCmd writes the initial stratification profile files.
var stratificationCmd = &cobra.Command{
	Use:   "stratification",
	Short: "Write the initial stratification profile files.",
	Long: `stratification reads the depth levels of the initial salinity and
temperature stratification from the scenario description and writes them as
the two profile text files read by GETM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadScenario()
		if err != nil {
			return err
		}
		s, err := getmprep.ReadStratification(cfg)
		if err != nil {
			return err
		}
		saltPath, err := checkOutputFile(os.ExpandEnv(Cfg.GetString("SaltProfileFile")))
		if err != nil {
			return err
		}
		tempPath, err := checkOutputFile(os.ExpandEnv(Cfg.GetString("TempProfileFile")))
		if err != nil {
			return err
		}
		return s.WriteProfiles(saltPath, tempPath)
	},
	DisableAutoGenTag: true,
}

// smoothtopoCmd smooths the model topography.
var smoothtopoCmd = &cobra.Command{
	Use:   "smoothtopo",
	Short: "Smooth the model topography.",
	Long: `smoothtopo applies a masked 2D running average to the water depth in a
NetCDF topography file. Land cells stay land cells and are ignored for the
averaging, so the coastline is not changed by the smoothing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pmI, err := GetInt("Topo.SmoothPmI", Cfg)
		if err != nil {
			return err
		}
		pmJ, err := GetInt("Topo.SmoothPmJ", Cfg)
		if err != nil {
			return err
		}
		outputFile, err := checkOutputFile(os.ExpandEnv(Cfg.GetString("Topo.OutputFile")))
		if err != nil {
			return err
		}
		return getmprep.SmoothTopo(
			os.ExpandEnv(Cfg.GetString("Topo.InputFile")),
			outputFile,
			Cfg.GetString("Topo.Variable"),
			pmI, pmJ,
		)
	},
	DisableAutoGenTag: true,
}

// loadScenario reads the scenario description named by the ScenarioFile
// configuration variable.
func loadScenario() (*getmprep.Config, error) {
	cfg, err := getmprep.LoadConfig(os.ExpandEnv(Cfg.GetString("ScenarioFile")))
	if err != nil {
		return nil, err
	}
	cfg.BaseDir = os.ExpandEnv(Cfg.GetString("BaseDir"))
	return cfg, nil
}
