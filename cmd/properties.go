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

	"github.com/spf13/cobra"

	"github.com/notargets/fembasis/InputParameters"
	"github.com/notargets/fembasis/basis"
)

// PropertiesCmd represents the properties command
var PropertiesCmd = &cobra.Command{
	Use:   "properties",
	Short: "Report the reference to physical transform, Jacobian determinant and metric of each element",
	Long: `Report the reference to physical transform, Jacobian determinant and metric of each element.
Surface meshes (three coordinates per node) carry no element properties.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			mp *InputParameters.MeshParameters
		)
		inFile, _ := cmd.Flags().GetString("inputFile")
		pattern, _ := cmd.Flags().GetBool("pattern")
		if mp, err = processInput(inFile, cmd.OutOrStdout()); err != nil {
			return
		}
		return RunProperties(mp, pattern, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(PropertiesCmd)
	PropertiesCmd.Flags().StringP("inputFile", "I", "", "YAML, SU2 or Gambit mesh")
	PropertiesCmd.Flags().BoolP("pattern", "p", false, "print the node coupling pattern of the basis")
}

func RunProperties(mp *InputParameters.MeshParameters, pattern bool, w io.Writer) (err error) {
	var (
		b *basis.Basis
	)
	m, _, err := mp.BuildMesh()
	if err != nil {
		return
	}
	if b, err = basis.NewBasis(m); err != nil {
		return
	}
	fmt.Fprintln(w, b)
	if b.HasProperties() {
		fmt.Fprint(w, b.Properties.Print())
	}
	if pattern {
		P := b.Pattern()
		fmt.Fprintf(w, "Pattern NNZ = %d\n", P.NNZ())
		for i := 0; i < b.NBasis; i++ {
			fmt.Fprintf(w, "Node[%d] couples %v\n", i, []int(P.RowNonZeros(i)))
		}
	}
	return
}
