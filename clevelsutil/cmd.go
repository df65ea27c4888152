/*
Copyright © 2026 the InMAP authors.
This file is part of InMAP.

InMAP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InMAP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.
*/

package clevelsutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/clevels"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

// Log is the logger used by the commands.
var Log = logrus.New()

// planCache memoizes plans across commands in a single process.
var planCache = clevels.NewCache(128)

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(planCmd)
	Root.AddCommand(colorsCmd)
	Root.AddCommand(presetCmd)
	presetCmd.AddCommand(presetListCmd)

	planCache.Log = Log

	// Options are the configuration options available to clevels.
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
			name: "verbose",
			usage: `
              verbose turns on debug logging.`,
			shorthand:  "v",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "format",
			usage: `
              format specifies the output format: json, toml, or text.`,
			shorthand:  "f",
			defaultVal: "json",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "cdelt",
			usage: `
              cdelt is the width of one division along the value axis. It
              may be given as an arithmetic expression such as "1/3" or "pi/4".`,
			defaultVal: "1",
			flagsets:   []*pflag.FlagSet{planCmd.Flags(), colorsCmd.Flags()},
		},
		{
			name: "ndiv",
			usage: `
              ndiv is the number of divisions. For divergent plans this is
              the number of divisions on each side of the center.`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{planCmd.Flags(), colorsCmd.Flags()},
		},
		{
			name: "nf",
			usage: `
              nf is the number of filled bands within each division. Zero
              disables fills.`,
			defaultVal: 10,
			flagsets:   []*pflag.FlagSet{planCmd.Flags(), colorsCmd.Flags()},
		},
		{
			name: "nl",
			usage: `
              nl is the number of contour lines within each division. Zero
              disables lines.`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{planCmd.Flags(), colorsCmd.Flags()},
		},
		{
			name: "min",
			usage: `
              min optionally clamps the plan from below. For sequential plans
              it is also the starting value. Leave empty for no clamp.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{planCmd.Flags(), colorsCmd.Flags()},
		},
		{
			name: "max",
			usage: `
              max optionally clamps the plan from above. Leave empty for no
              clamp.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{planCmd.Flags(), colorsCmd.Flags()},
		},
		{
			name: "center",
			usage: `
              center is the value around which divergent plans are mirrored.`,
			defaultVal: "0",
			flagsets:   []*pflag.FlagSet{planCmd.Flags(), colorsCmd.Flags()},
		},
		{
			name: "style",
			usage: `
              style is either divergent (div) or sequential (seq).`,
			shorthand:  "s",
			defaultVal: "divergent",
			flagsets:   []*pflag.FlagSet{planCmd.Flags(), colorsCmd.Flags()},
		},
		{
			name: "extend",
			usage: `
              extend requests extra color bands beyond the outermost fill
              boundaries: neither, min, max, or both.`,
			shorthand:  "e",
			defaultVal: "neither",
			flagsets:   []*pflag.FlagSet{planCmd.Flags(), colorsCmd.Flags()},
		},
		{
			name: "cmap",
			usage: `
              cmap overrides the default colormap for the style. Run
              'clevels colors --list' to see the available colormaps.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{planCmd.Flags(), colorsCmd.Flags()},
		},
		{
			name: "Policy.Tolerance",
			usage: `
              Policy.Tolerance is the fraction of a step below which adjacent
              boundaries are merged.`,
			defaultVal: clevels.DefaultTolerance,
			flagsets:   []*pflag.FlagSet{planCmd.Flags(), colorsCmd.Flags()},
		},
		{
			name: "Policy.ForceExtend",
			usage: `
              Policy.ForceExtend adds an extend band on any side where min or
              max removed fill boundaries, instead of reporting an error.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{planCmd.Flags(), colorsCmd.Flags()},
		},
		{
			name: "list",
			usage: `
              list prints the registered colormaps instead of band colors.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{colorsCmd.Flags()},
		},
		{
			name: "Presets.File",
			usage: `
              Presets.File specifies a TOML file of named plan presets, which are
              added to the built-in presets.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{presetCmd.PersistentFlags()},
		},
		{
			name: "Presets.Default",
			usage: `
              Presets.Default is the preset used when 'clevels preset' is
              run without a name.`,
			defaultVal: "showvar",
			flagsets:   []*pflag.FlagSet{presetCmd.PersistentFlags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("CLEVELS")
	Cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	Cfg.AutomaticEnv()

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
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets the logging level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("clevels: problem reading configuration file: %v", err)
		}
	}
	if Cfg.GetBool("verbose") {
		Log.SetLevel(logrus.DebugLevel)
	} else {
		Log.SetLevel(logrus.InfoLevel)
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "clevels",
	Short: "Plan contour levels and colormaps.",
	Long: `clevels plans the filled contour levels, contour line levels, colormap,
and colorbar extension for plotting a gridded field, from a small set of
styling parameters.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'CLEVELS_var' where 'var' is the
name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of clevels.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("clevels v%s\n", clevels.Version)
	},
	DisableAutoGenTag: true,
}

// planCmd prints the plan for the configured parameters.
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print a contour level plan.",
	Long: `plan prints the fill boundaries, line boundaries, colormap, and extend
mode for the parameters given by flags, environment variables, or the
configuration file.

For example,

	clevels plan --cdelt=0.6 --ndiv=2 --nf=6 --nl=1 --extend=both

prints a divergent plan with two divisions of 0.6 on each side of zero.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := RequestFromConfig(Cfg)
		if err != nil {
			return err
		}
		spec, err := planCache.Plan(r)
		if err != nil {
			return err
		}
		return WritePlan(cmd.OutOrStdout(), spec, Cfg.GetString("format"))
	},
	DisableAutoGenTag: true,
}

// colorsCmd prints the band colors of a plan.
var colorsCmd = &cobra.Command{
	Use:   "colors",
	Short: "Print the color of each filled band.",
	Long: `colors prints one hex color for each filled band of the plan given by
the configuration, from low to high, including any extend bands.
With --list, it prints the available colormaps instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Cfg.GetBool("list") {
			for _, id := range clevels.Colormaps() {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		}
		r, err := RequestFromConfig(Cfg)
		if err != nil {
			return err
		}
		spec, err := planCache.Plan(r)
		if err != nil {
			return err
		}
		colors, err := spec.BandColors()
		if err != nil {
			return err
		}
		return WriteColors(cmd.OutOrStdout(), colors, Cfg.GetString("format"))
	},
	DisableAutoGenTag: true,
}

// presetCmd prints the plan for a named preset.
var presetCmd = &cobra.Command{
	Use:   "preset [name]",
	Short: "Print the plan for a named preset.",
	Long: `preset prints the plan for a named preset. Built-in presets reproduce
the level choices of the contour gallery; additional presets can be read
from the TOML file given by --Presets.File.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		presets, err := LoadPresets(Cfg.GetString("Presets.File"))
		if err != nil {
			return err
		}
		name := Cfg.GetString("Presets.Default")
		if len(args) == 1 {
			name = args[0]
		}
		r, err := presets.Get(name)
		if err != nil {
			return err
		}
		Log.WithFields(logrus.Fields{"preset": name}).Debug("clevels: planning preset")
		spec, err := planCache.Plan(r)
		if err != nil {
			return fmt.Errorf("clevels: preset %q: %w", name, err)
		}
		return WritePlan(cmd.OutOrStdout(), spec, Cfg.GetString("format"))
	},
	DisableAutoGenTag: true,
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available presets.",
	Long:  "list prints the name and parameters of each available preset.",
	RunE: func(cmd *cobra.Command, args []string) error {
		presets, err := LoadPresets(Cfg.GetString("Presets.File"))
		if err != nil {
			return err
		}
		for _, name := range presets.Names() {
			b := new(bytes.Buffer)
			e := json.NewEncoder(b)
			if err := e.Encode(presets[name]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s", name, b.String())
		}
		return nil
	},
	DisableAutoGenTag: true,
}
