/*
Copyright © 2024 the InMAP authors.
This file is part of pollutionmap.

pollutionmap is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

pollutionmap is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with pollutionmap.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package pollutionmaputil holds the command-line interface of pollutionmap.
package pollutionmaputil

import (
	"fmt"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/pollutionmap"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

// Log is the logger used by the commands. Its level is set from the
// LogLevel option before each command runs.
var Log = newLogger()

type option struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

var options []option

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(configCmd)
	Root.AddCommand(summaryCmd)
	Root.AddCommand(trendCmd)
	Root.AddCommand(pickCmd)
	Root.AddCommand(mapCmd)
	Root.AddCommand(exportCmd)

	regionSets := []*pflag.FlagSet{summaryCmd.Flags(), trendCmd.Flags(), pickCmd.Flags(),
		mapCmd.Flags(), exportCmd.Flags()}

	// Options are the configuration options available to pollutionmap.
	options = []option{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "DataDir",
			usage: `
              DataDir is the directory holding the measurement files, with
              one folder per pollutant (NO2, pm10 and pm2.5). It can contain
              environment variables.`,
			defaultVal: pollutionmap.DefaultDataDir,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Pollutant",
			usage: `
              Pollutant is the pollutant to show: NO2, PM10 or PM2.5.`,
			shorthand:  "p",
			defaultVal: "NO2",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "CacheSize",
			usage: `
              CacheSize is the number of loaded measurement files to keep in
              memory. Set it to 0 to read every file each time it is needed.`,
			defaultVal: 18,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel is the minimum level of log messages to print:
              debug, info, warning or error.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Year",
			usage: `
              Year is the year of measurements to use.`,
			defaultVal: "2023",
			flagsets:   []*pflag.FlagSet{summaryCmd.Flags(), pickCmd.Flags(), mapCmd.Flags()},
		},
		{
			name: "Years",
			usage: `
              Years lists the years included in trends, in increasing order.`,
			defaultVal: pollutionmap.DefaultYears,
			flagsets:   []*pflag.FlagSet{trendCmd.Flags(), exportCmd.Flags()},
		},
		{
			name: "Region.LeftX",
			usage: `
              Region.LeftX is the easting of the left edge of the map.`,
			defaultVal: pollutionmap.London.Min.X,
			flagsets:   regionSets,
		},
		{
			name: "Region.RightX",
			usage: `
              Region.RightX is the easting of the right edge of the map.`,
			defaultVal: pollutionmap.London.Max.X,
			flagsets:   regionSets,
		},
		{
			name: "Region.BottomY",
			usage: `
              Region.BottomY is the northing of the bottom edge of the map.`,
			defaultVal: pollutionmap.London.Min.Y,
			flagsets:   regionSets,
		},
		{
			name: "Region.TopY",
			usage: `
              Region.TopY is the northing of the top edge of the map.`,
			defaultVal: pollutionmap.London.Max.Y,
			flagsets:   regionSets,
		},
		{
			name: "Width",
			usage: `
              Width is the width of the map display, in display units.
              Rendered images use the same size in points.`,
			defaultVal: 800.,
			flagsets:   []*pflag.FlagSet{pickCmd.Flags(), mapCmd.Flags(), trendCmd.Flags()},
		},
		{
			name: "Height",
			usage: `
              Height is the height of the map display, in display units.
              Rendered images use the same size in points.`,
			defaultVal: 462.,
			flagsets:   []*pflag.FlagSet{pickCmd.Flags(), mapCmd.Flags(), trendCmd.Flags()},
		},
		{
			name: "x",
			usage: `
              x is the horizontal display position to look up, measured
              from the left edge.`,
			defaultVal: 0.,
			flagsets:   []*pflag.FlagSet{pickCmd.Flags()},
		},
		{
			name: "y",
			usage: `
              y is the vertical display position to look up, measured
              from the top edge.`,
			defaultVal: 0.,
			flagsets:   []*pflag.FlagSet{pickCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the file to write. For trend it is an optional
              chart image; map and export choose a name from the pollutant
              and year if it is empty.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{trendCmd.Flags(), mapCmd.Flags(), exportCmd.Flags()},
		},
		{
			name: "open",
			usage: `
              open specifies whether to open the written file with the
              default application for its type.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{trendCmd.Flags(), mapCmd.Flags(), exportCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("POLLUTIONMAP")
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch v := option.defaultVal.(type) {
			case string:
				set.StringP(option.name, option.shorthand, v, option.usage)
			case []string:
				set.StringSliceP(option.name, option.shorthand, v, option.usage)
			case bool:
				set.BoolP(option.name, option.shorthand, v, option.usage)
			case int:
				set.IntP(option.name, option.shorthand, v, option.usage)
			case float64:
				set.Float64P(option.name, option.shorthand, v, option.usage)
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets the log level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("pollutionmap: problem reading configuration file: %v", err)
		}
	}
	level, err := logrus.ParseLevel(Cfg.GetString("LogLevel"))
	if err != nil {
		return fmt.Errorf("pollutionmap: %v", err)
	}
	Log.SetLevel(level)
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "pollutionmap",
	Short: "Maps and trends of London air pollution.",
	Long: `pollutionmap reads annual mean NO2, PM10 and PM2.5 concentrations on the
UK national grid and summarizes them for a map region and over several years.
Use the subcommands specified below to access the functionality.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'POLLUTIONMAP_var' where 'var'
is the name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of pollutionmap.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pollutionmap v%s\n", pollutionmap.Version)
	},
	DisableAutoGenTag: true,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the configuration.",
	Long: `config prints the configuration that the other commands would use, in
TOML format. The output can be saved and passed back with --config.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeConfig(cmd.OutOrStdout())
	},
	DisableAutoGenTag: true,
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize one year of measurements.",
	Long: `summary prints the number of measurements, the average and the highest
concentration of a pollutant in one year, both for every measured grid cell and
for the cells within the map region.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		return s.summary(cmd.OutOrStdout(), Cfg.GetString("Year"))
	},
	DisableAutoGenTag: true,
}

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Show the multi-year trend of a pollutant.",
	Long: `trend prints the yearly average concentrations within the map region,
the average over all years with data, and the highest concentration. If
OutputFile is set, a chart of the yearly averages is also written to it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		return s.trend(cmd.OutOrStdout(), Cfg.GetString("OutputFile"))
	},
	DisableAutoGenTag: true,
}

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Look up the measurement under a map position.",
	Long: `pick prints the measurement whose map marker is under display position
(x, y) on a map display of size Width by Height.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		return s.pick(cmd.OutOrStdout(), Cfg.GetString("Year"), Cfg.GetFloat64("x"), Cfg.GetFloat64("y"))
	},
	DisableAutoGenTag: true,
}

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Draw a map of one year of measurements.",
	Long: `map writes an image of the measurements within the map region, coloured
by concentration band. The image format follows the OutputFile extension.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		return s.drawMap(cmd.OutOrStdout(), Cfg.GetString("Year"), Cfg.GetString("OutputFile"))
	},
	DisableAutoGenTag: true,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the multi-year trend to a spreadsheet.",
	Long: `export writes the yearly average and highest concentrations within the
map region to a Microsoft Excel workbook.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		return s.export(cmd.OutOrStdout(), Cfg.GetString("OutputFile"))
	},
	DisableAutoGenTag: true,
}
