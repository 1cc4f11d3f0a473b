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
	"io"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/notargets/diffchron/model_problems/MCDiffusion1D"
)

// DiffusivityCmd represents the diffusivity command
var DiffusivityCmd = &cobra.Command{
	Use:   "diffusivity",
	Short: "Apatite F, Cl and OH tracer diffusivities at a temperature",
	Long: `
Evaluates the apatite halogen and hydroxyl Arrhenius laws at a temperature,
pressure and traverse tilt from the c-axis,

diffchron diffusivity -T 1000 --tilt 30`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return PrintDiffusivities(os.Stdout,
			Cfg.GetFloat64("temperature"), Cfg.GetFloat64("pressure"), Cfg.GetFloat64("tilt"))
	},
}

func init() {
	rootCmd.AddCommand(DiffusivityCmd)
}

func PrintDiffusivities(w io.Writer, tc, p, tilt float64) (err error) {
	fmt.Fprintf(w, "T = %.2f C, P = %g Pa, tilt = %.2f deg\n", tc, p, tilt)
	fmt.Fprintf(w, "%-8s%14s%14s%16s%16s\n", "Species", "D0 (m^2/s)", "Ea (J/mol)", "D (m^2/s)", "D (um^2/hr)")
	c := math.Cos(tilt * math.Pi / 180.)
	for _, name := range MCDiffusion1D.ApatiteSpecies() {
		var (
			law MCDiffusion1D.Arrhenius
			d   float64
		)
		if law, err = MCDiffusion1D.ApatiteLaw(name); err != nil {
			return
		}
		if d, err = (MCDiffusion1D.MediumDiffusivity{Law: &law}).Value(tc, p, tilt); err != nil {
			return
		}
		si := law.SI(MCDiffusion1D.CelsiusToKelvin(tc), p).Value() * c * c
		fmt.Fprintf(w, "%-8s%14.4e%14.4e%16.6e%16.6e\n", name, law.D0, law.Ea, si, d)
	}
	return
}
