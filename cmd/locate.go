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
	"github.com/notargets/fembasis/geometry"
	"github.com/notargets/fembasis/utils"
)

// LocateCmd represents the locate command
var LocateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Find the element containing a point and its barycentric coordinates",
	Long: `Find the element containing a point and its barycentric coordinates.
For surface meshes the point must lie within tolerance of the element plane.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			mp *InputParameters.MeshParameters
		)
		inFile, _ := cmd.Flags().GetString("inputFile")
		coords, _ := cmd.Flags().GetFloat64Slice("point")
		if mp, err = processInput(inFile, cmd.OutOrStdout()); err != nil {
			return
		}
		return RunLocate(mp, coords, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(LocateCmd)
	LocateCmd.Flags().StringP("inputFile", "I", "", "YAML, SU2 or Gambit mesh")
	LocateCmd.Flags().Float64SliceP("point", "x", nil, "point coordinates, x,y or x,y,z")
}

func RunLocate(mp *InputParameters.MeshParameters, coords []float64, w io.Writer) (err error) {
	if len(coords) != 2 && len(coords) != 3 {
		return fmt.Errorf("%w: point needs 2 or 3 coordinates, have %d", utils.ErrInvalidInput, len(coords))
	}
	m, _, err := mp.BuildMesh()
	if err != nil {
		return
	}
	p := geometry.NewPoint(-1, coords...)
	k, bary, found := m.Locate(p)
	if !found {
		fmt.Fprintf(w, "Point %v is outside the mesh\n", coords)
		return
	}
	el, _ := m.Element(k)
	fmt.Fprintf(w, "%s\nBarycentric = [%8.5f %8.5f %8.5f]\n", el, bary[0], bary[1], bary[2])
	return
}
