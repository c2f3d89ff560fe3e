package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "froe",
	Short: "A command-line tool for building and querying planar BSP regions",
	Long: `froe evaluates Lisp scripts that construct two dimensional regions as
binary space partitioning trees. Scripts carve regions with oriented
lines and segments, combine them with boolean set operations, and query
point locations and tree structure.`,
	Version: "0.1.0",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
