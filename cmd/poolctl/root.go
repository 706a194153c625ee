// Command poolctl exercises a pool.Pool from the command line: it drives
// allocation patterns against a real pool and reports the resulting
// stats, the way hivectl inspects a hive file from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose   bool
	jsonOut   bool
	blockSize int
)

var rootCmd = &cobra.Command{
	Use:     "poolctl",
	Short:   "Drive and inspect a region-based memory pool",
	Long:    `poolctl creates a pool.Pool, runs allocation workloads against it, and reports block/large/cleanup statistics.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		IntVar(&blockSize, "block-size", 0, "Pool block size in bytes (0 = pool.DefaultBlockSize)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

func main() {
	execute()
}
