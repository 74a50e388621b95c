package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/bhclab/rbhc/partition"
)

// startupParams is everything the subcommands need from the command line,
// plus the loggers they report through.
type startupParams struct {
	dataFile      string
	subsampleSize int
	alpha         float64
	randomSeed    int64
	workers       int
	verbose       bool
	traceFile     string

	out   *log.Logger
	trace *log.Logger
}

// setup readies the loggers. The returned cleanup closes the trace file, if
// one was requested.
func (sp *startupParams) setup() (func(), error) {
	sp.out = log.New(os.Stdout, "", 0)

	cleanup := func() {}
	if len(sp.traceFile) > 0 {
		f, err := os.Create(sp.traceFile)
		if err != nil {
			return nil, errors.Wrapf(err, "Could not create trace file %s", sp.traceFile)
		}
		sp.trace = log.New(f, "", 0)
		cleanup = func() { f.Close() }
	} else {
		sp.trace = log.New(io.Discard, "", 0)
	}

	return cleanup, nil
}

var sp = &startupParams{}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rbhc",
	Short: "Randomized Bayesian hierarchical clustering",
	Long: `rbhc builds approximate Bayesian cluster trees (CRP mixture model) for
datasets too large for exact agglomerative BHC. Among other features:

  - The ability to read CSV datasets of numeric rows
  - A collapsed Normal-Gamma Gaussian data model
  - An exact BHC clusterer used on subsamples and terminal leaves
  - An optional parallel build mode
`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("rbhc\n")
		fmt.Printf("Data:      %s\n", sp.dataFile)
		fmt.Printf("Subsample: %d\n", sp.subsampleSize)
		fmt.Printf("Alpha:     %f\n", sp.alpha)
		fmt.Printf("Rnd Seed:  %d\n", sp.randomSeed)
		fmt.Printf("Workers:   %d\n", sp.workers)
	},
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the approximate cluster tree for a dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		cleanup, err := sp.setup()
		if err != nil {
			return err
		}
		defer cleanup()
		return BuildRun(sp)
	},
}

var dotCmd = &cobra.Command{
	Use:   "dot",
	Short: "Build the tree and output a graphviz description",
	RunE: func(cmd *cobra.Command, args []string) error {
		cleanup, err := sp.setup()
		if err != nil {
			return err
		}
		defer cleanup()
		return DotOutput(sp)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.PersistentFlags().StringVarP(&sp.dataFile, "data", "d", "", "CSV dataset file to read")
	rootCmd.PersistentFlags().IntVarP(&sp.subsampleSize, "subsample", "m", partition.DefaultSubsampleSize, "Subsample size for randomized splits")
	rootCmd.PersistentFlags().Float64VarP(&sp.alpha, "alpha", "a", 1.0, "CRP concentration parameter")
	rootCmd.PersistentFlags().Int64VarP(&sp.randomSeed, "seed", "r", 1, "Random seed to use")
	rootCmd.PersistentFlags().IntVarP(&sp.workers, "workers", "w", 1, "Worker count for the parallel build mode (1 is sequential)")
	rootCmd.PersistentFlags().BoolVarP(&sp.verbose, "verbose", "v", false, "Verbose logging (default is much more parsimonious)")
	rootCmd.PersistentFlags().StringVarP(&sp.traceFile, "trace", "t", "", "Trace file for full output")

	rootCmd.MarkPersistentFlagRequired("data")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(dotCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
