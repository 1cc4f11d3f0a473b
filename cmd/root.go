/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	// Cfg holds the merged flag, environment and config file settings
	Cfg = viper.New()
	log = logrus.StandardLogger()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "diffchron",
	Short: "Multicomponent diffusion chronometry",
	Long: `
Simulates multicomponent diffusion across a fixed interface in one dimension and
finds the elapsed time that best explains a measured profile,

diffchron 1D -I deck.yaml`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setLogLevel(Cfg.GetString("logLevel"))
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

type option struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

var options []option

func init() {
	cobra.OnInitialize(initConfig)

	options = []option{
		{
			name:       "config",
			usage:      "config file (default is $HOME/.diffchron.yaml)",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{rootCmd.PersistentFlags()},
		},
		{
			name:       "logLevel",
			usage:      "log level: debug, info, warn or error",
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{rootCmd.PersistentFlags()},
		},
		{
			name:       "procs",
			usage:      "number of parallel workers for the best fit search, 0 uses all CPUs",
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{rootCmd.PersistentFlags()},
		},
		{
			name:       "inputConditionsFile",
			shorthand:  "I",
			usage:      "YAML input deck with species, domain, composition, diffusivity, boundaries and temperature history",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{OneDCmd.Flags()},
		},
		{
			name:       "solver",
			usage:      "linear solver: dense or tridiagonal, overrides the deck",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{OneDCmd.Flags()},
		},
		{
			name:       "finalTime",
			usage:      "run time in hours, overrides the deck. Zero uses the deck or the temperature history",
			defaultVal: 0.,
			flagsets:   []*pflag.FlagSet{OneDCmd.Flags()},
		},
		{
			name:       "historyStride",
			usage:      "store every historyStride iterations, overrides the deck",
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{OneDCmd.Flags()},
		},
		{
			name:       "logFrequency",
			usage:      "iterations between progress messages",
			defaultVal: 50,
			flagsets:   []*pflag.FlagSet{OneDCmd.Flags()},
		},
		{
			name:       "uncertaintyFraction",
			usage:      "measured uncertainty as a fraction of the measured value when the deck gives none",
			defaultVal: 0.02,
			flagsets:   []*pflag.FlagSet{OneDCmd.Flags()},
		},
		{
			name:       "strict",
			usage:      "a measured point fits only when the deviation is strictly less than its uncertainty",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{OneDCmd.Flags()},
		},
		{
			name:       "profile",
			usage:      "write a cpu or mem profile to the working directory",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{OneDCmd.Flags()},
		},
		{
			name:       "temperature",
			shorthand:  "T",
			usage:      "temperature in Celsius",
			defaultVal: 1000.,
			flagsets:   []*pflag.FlagSet{DiffusivityCmd.Flags()},
		},
		{
			name:       "pressure",
			shorthand:  "P",
			usage:      "pressure in Pa, applied through the activation volume",
			defaultVal: 0.,
			flagsets:   []*pflag.FlagSet{DiffusivityCmd.Flags()},
		},
		{
			name:       "tilt",
			usage:      "traverse angle from the c-axis in degrees",
			defaultVal: 0.,
			flagsets:   []*pflag.FlagSet{DiffusivityCmd.Flags()},
		},
	}

	Cfg.SetEnvPrefix("DIFFCHRON")
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				set.StringP(option.name, option.shorthand, cast.ToString(option.defaultVal), option.usage)
			case bool:
				set.BoolP(option.name, option.shorthand, cast.ToBool(option.defaultVal), option.usage)
			case int:
				set.IntP(option.name, option.shorthand, cast.ToInt(option.defaultVal), option.usage)
			case float64:
				set.Float64P(option.name, option.shorthand, cast.ToFloat64(option.defaultVal), option.usage)
			default:
				panic("invalid argument type")
			}
			if err := Cfg.BindPFlag(option.name, set.Lookup(option.name)); err != nil {
				panic(err)
			}
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile := Cfg.GetString("config"); cfgFile != "" {
		Cfg.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		Cfg.AddConfigPath(home)
		Cfg.SetConfigName(".diffchron")
	}
	if err := Cfg.ReadInConfig(); err == nil {
		log.WithField("file", Cfg.ConfigFileUsed()).Info("using config file")
	}
}

func setLogLevel(level string) (err error) {
	var lvl logrus.Level
	if lvl, err = logrus.ParseLevel(level); err != nil {
		return
	}
	log.SetLevel(lvl)
	return
}
