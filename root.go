package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chazu/gemforge/pkg/config"
	"github.com/chazu/gemforge/pkg/fault"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	configPath string
	outPath    string
	seedFlag   int64
	kernelFlag string
	formatFlag string
	workers    int
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "gemforge",
	Short: "Procedural jewelry generator",
	Long: `gemforge builds parametric jewelry models (an earring with a stone
cluster, a ring with an optional stone) and exports them as glTF binary
or STL files.

Parameters come from defaults, an optional YAML or TOML config file,
GEMFORGE_* environment variables and command-line flags, in that order.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "config file (.yaml, .yml or .toml)")
	pf.StringVarP(&outPath, "out", "o", "", "output file (default <product>.<format>)")
	pf.Int64Var(&seedFlag, "seed", config.DefaultSeed, "cluster layout seed")
	pf.StringVar(&kernelFlag, "kernel", config.KernelNative, "geometry kernel: native or sdfx")
	pf.StringVar(&formatFlag, "format", config.FormatGLB, "output format: glb or stl")
	pf.IntVar(&workers, "workers", 1, "parts baked in parallel")
	pf.BoolVarP(&verbose, "verbose", "v", false, "development logging")
}

// loadConfig layers command-line flags over the config file and
// environment.
func loadConfig(cmd *cobra.Command) (config.File, error) {
	f, err := config.Load(configPath, nil)
	if err != nil {
		return config.File{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("seed") {
		f.Settings.Seed = seedFlag
	}
	if flags.Changed("kernel") {
		f.Settings.Kernel = kernelFlag
	}
	if flags.Changed("format") {
		f.Settings.Format = formatFlag
	}
	if flags.Changed("workers") {
		f.Settings.BakeWorkers = workers
	}
	if err := f.Settings.Validate(); err != nil {
		return config.File{}, err
	}
	return f, nil
}

// newApp loads configuration and builds the App and its logger. The
// returned cleanup flushes the logger.
func newApp(cmd *cobra.Command) (*App, func(), error) {
	f, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	log, err := newLogger(verbose)
	if err != nil {
		return nil, nil, err
	}
	app, err := NewApp(f, log)
	if err != nil {
		return nil, nil, err
	}
	return app, func() { _ = log.Sync() }, nil
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// describeError prefixes err with the pipeline stage it came from.
func describeError(err error) string {
	if stage := fault.StageOf(err); stage != fault.StageUnknown {
		return fmt.Sprintf("%s failed: %v", stage, err)
	}
	return err.Error()
}

func printReport(cmd *cobra.Command, r Report) {
	cmd.Printf("%s: wrote %s\n", r.Product, r.Path)
	cmd.Printf("  run %s  seed %d  kernel %s\n", r.RunID, r.Seed, r.Kernel)
	cmd.Printf("  %d parts  %d triangles  %d materials  %s\n", r.Parts, r.Triangles, r.Materials, r.Elapsed.Round(1e6))
}
