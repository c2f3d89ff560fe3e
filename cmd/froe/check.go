package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazu/froe/pkg/engine"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Check a froe script for errors without printing its output",
	Long: `Evaluate a froe Lisp script and report whether it ran cleanly.
Emitted output is discarded; only errors are printed. Pass - to read
the script from stdin.`,
	Args: cobra.ExactArgs(1),
	Run:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) {
	source, err := readSource(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading script: %v\n", err)
		os.Exit(1)
	}

	eng := engine.NewEngine()
	res, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			fmt.Fprintf(os.Stderr, "Error: %s\n", e.Error())
		}
		os.Exit(1)
	}

	fmt.Printf("OK: %d region(s) defined\n", res.RegionCount())
}
