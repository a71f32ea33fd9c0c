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
	"os"

	"github.com/spf13/cobra"

	"github.com/notargets/fembasis/InputParameters"
	"github.com/notargets/fembasis/mesh"
	"github.com/notargets/fembasis/readfiles"
	"github.com/notargets/fembasis/utils"
)

const exampleFile = `
########################################
Title: "Unit Square"
Order: 1
IndexBase: 0 # 1 for one based node numbers
Nodes:
  - [0., 0.]
  - [1., 0.]
  - [1., 1.]
  - [0., 1.]
Triangles:
  - [0, 1, 2]
  - [0, 2, 3]
BoundaryNodes: [0, 1, 2, 3] # Or AutoBoundary: true
SpatialIndex: false         # kd-tree midpoint search for large meshes
########################################
`

// ElevateCmd represents the elevate command
var ElevateCmd = &cobra.Command{
	Use:   "elevate",
	Short: "Convert an order 1 triangle mesh to order 2 by adding shared edge midpoints",
	Long: `Convert an order 1 triangle mesh to order 2 by adding shared edge midpoints.
Boundary nodes are extended with the midpoints of edges joining two boundary nodes.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			inFile, outFile string
			mp              *InputParameters.MeshParameters
			w               io.Writer = cmd.OutOrStdout()
		)
		inFile, _ = cmd.Flags().GetString("inputFile")
		outFile, _ = cmd.Flags().GetString("outputFile")
		if mp, err = processInput(inFile, cmd.OutOrStdout()); err != nil {
			return
		}
		if len(outFile) != 0 {
			var f *os.File
			if f, err = os.Create(outFile); err != nil {
				return
			}
			defer f.Close()
			w = f
		}
		return RunElevate(mp, w)
	},
}

func init() {
	rootCmd.AddCommand(ElevateCmd)
	ElevateCmd.Flags().StringP("inputFile", "I", "", "YAML, SU2 or Gambit mesh, order 1")
	ElevateCmd.Flags().StringP("outputFile", "O", "", "YAML file for the order 2 mesh, default is stdout")
}

func processInput(inFile string, w io.Writer) (mp *InputParameters.MeshParameters, err error) {
	var data []byte
	if len(inFile) == 0 {
		fmt.Fprintf(w, "Example File:%s\n", exampleFile)
		err = fmt.Errorf("must supply a mesh file (-I, --inputFile) in YAML, SU2 (.su2) or Gambit neutral (.neu) format")
		return
	}
	if readfiles.IsMeshFile(inFile) {
		var mf *readfiles.MeshFile
		if mf, err = readfiles.ReadMeshFile(inFile, verbose()); err != nil {
			return
		}
		mp = mf.MeshParameters()
	} else {
		if data, err = os.ReadFile(inFile); err != nil {
			return
		}
		mp = &InputParameters.MeshParameters{}
		if err = mp.Parse(data); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", inFile, err)
		}
	}
	if verbose() {
		mp.Print()
	}
	return
}

// RunElevate writes the order 2 mesh description, numbered in the input index base
func RunElevate(mp *InputParameters.MeshParameters, w io.Writer) (err error) {
	var (
		m, m2   *mesh.Mesh
		bc, bc2 utils.Index
		data    []byte
	)
	if m, bc, err = mp.BuildMesh(); err != nil {
		return
	}
	if m2, bc2, err = mesh.ElevateOrder(m, bc, mp.ElevateOptions()); err != nil {
		return
	}
	if verbose() {
		fmt.Printf("%s\n%s\n", m, m2)
	}
	base, _ := mp.Base()
	out := InputParameters.NewMeshParameters(mp.Title, m2, bc2, base)
	out.Tolerance, out.SpatialIndex = mp.Tolerance, mp.SpatialIndex
	if data, err = out.Marshal(); err != nil {
		return
	}
	_, err = w.Write(data)
	return
}
