package main

import (
	"github.com/spf13/cobra"

	"github.com/chazu/gemforge/pkg/config"
	"github.com/chazu/gemforge/pkg/fault"
)

var (
	earringPreset string
	earringStones int
	earringBlue   int
	earringNoPost bool

	ringInner   float64
	ringNoStone bool
)

var earringCmd = &cobra.Command{
	Use:   "earring",
	Short: "Generate an earring",
	Long: `Builds the earring: a faceted main stone hanging from the origin, a
heart-shaped cluster of accent stones below it, a metal backing plate
and an optional ear post.`,
	Args: cobra.NoArgs,
	RunE: runEarring,
}

var ringCmd = &cobra.Command{
	Use:   "ring",
	Short: "Generate a ring",
	Long:  `Builds the ring: a gold torus band with an optional cylindrical stone.`,
	Args:  cobra.NoArgs,
	RunE:  runRing,
}

func init() {
	earringCmd.Flags().StringVar(&earringPreset, "preset", "", "start from a preset: default or reference")
	earringCmd.Flags().IntVar(&earringStones, "stones", 0, "cluster stone count")
	earringCmd.Flags().IntVar(&earringBlue, "blue", 0, "blue cluster stones")
	earringCmd.Flags().BoolVar(&earringNoPost, "no-post", false, "omit the ear post")
	rootCmd.AddCommand(earringCmd)

	ringCmd.Flags().Float64Var(&ringInner, "inner-diameter", 0, "inner diameter in mm")
	ringCmd.Flags().BoolVar(&ringNoStone, "no-stone", false, "omit the stone")
	rootCmd.AddCommand(ringCmd)
}

func runEarring(cmd *cobra.Command, _ []string) error {
	app, done, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer done()

	cfg := app.Config().Earring
	switch earringPreset {
	case "":
	case "default":
		cfg = config.DefaultEarring()
	case "reference":
		cfg = config.ReferenceEarring()
	default:
		return fault.Invalid("preset", earringPreset, "expected default or reference")
	}
	flags := cmd.Flags()
	if flags.Changed("stones") {
		cfg.ClusterStoneCount = earringStones
	}
	if flags.Changed("blue") {
		cfg.ClusterBlueStoneCount = earringBlue
	}
	if earringNoPost {
		cfg.AddPost = false
	}

	out := outPath
	if out == "" {
		out = app.DefaultOutput("earring")
	}
	r, err := app.GenerateEarring(cmd.Context(), cfg, app.Config().Settings.Seed, out)
	if err != nil {
		return err
	}
	printReport(cmd, r)
	return nil
}

func runRing(cmd *cobra.Command, _ []string) error {
	app, done, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer done()

	cfg := app.Config().Ring
	if cmd.Flags().Changed("inner-diameter") {
		cfg.InnerDiameterMM = ringInner
	}
	if ringNoStone {
		cfg.AddStone = false
	}

	out := outPath
	if out == "" {
		out = app.DefaultOutput("ring")
	}
	r, err := app.GenerateRing(cmd.Context(), cfg, app.Config().Settings.Seed, out)
	if err != nil {
		return err
	}
	printReport(cmd, r)
	return nil
}
