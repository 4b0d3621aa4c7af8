package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chazu/gemforge/pkg/export"
	"github.com/chazu/gemforge/pkg/material"
)

var recipeCmd = &cobra.Command{
	Use:   "recipe [file.gem]",
	Short: "Generate the products declared in a recipe",
	Long: `Evaluates a recipe, a small Lisp program such as

  (seed 7)
  (earring :preset :reference :add-post false :out "ref.glb")
  (ring :inner-diameter 17)

and generates each product in order. Products without :out are written
next to the recipe, or into the directory given by --out.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecipe,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [file.glb]",
	Short: "Summarize a generated glTF file",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

var materialsCmd = &cobra.Command{
	Use:   "materials",
	Short: "List the material catalog",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		for _, name := range material.CatalogNames() {
			d, _ := material.Describe(name)
			line := fmt.Sprintf("%-9s rgb(%.3f, %.3f, %.3f)  metallic %.2f  roughness %.2f",
				name, d.BaseColor[0], d.BaseColor[1], d.BaseColor[2], d.Metallic, d.Roughness)
			if d.HasIOR() {
				line += fmt.Sprintf("  ior %.2f", d.IOR)
			}
			cmd.Println(line)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("gemforge version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(recipeCmd, inspectCmd, materialsCmd, versionCmd)
}

func runRecipe(cmd *cobra.Command, args []string) error {
	path := args[0]
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read recipe: %w", err)
	}

	app, done, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer done()

	dir := outPath
	if dir == "" {
		dir = filepath.Dir(path)
	}
	reports, err := app.RunRecipe(cmd.Context(), filepath.Base(path), string(source), dir)
	for _, r := range reports {
		printReport(cmd, r)
	}
	return err
}

func runInspect(cmd *cobra.Command, args []string) error {
	s, err := export.Inspect(args[0])
	if err != nil {
		return err
	}
	cmd.Printf("%s\n", args[0])
	cmd.Printf("  generator  %s\n", s.Generator)
	if s.RunID != "" {
		cmd.Printf("  run        %s\n", s.RunID)
	}
	cmd.Printf("  nodes      %d (%d roots)\n", s.Nodes, s.Roots)
	cmd.Printf("  meshes     %d\n", s.Meshes)
	cmd.Printf("  materials  %d\n", s.Materials)
	cmd.Printf("  triangles  %d\n", s.Triangles)
	cmd.Printf("  parts      %s\n", strings.Join(s.NodeNames, ", "))
	return nil
}
