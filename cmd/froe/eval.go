package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazu/froe/pkg/engine"
)

var (
	evalShowTrees bool
	evalMaxDepth  int
)

var evalCmd = &cobra.Command{
	Use:   "eval [file]",
	Short: "Evaluate a froe script",
	Long: `Evaluate a froe Lisp script, print the lines it emits, and summarize
the regions it defines. Pass - to read the script from stdin.`,
	Args: cobra.ExactArgs(1),
	Run:  runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().BoolVarP(&evalShowTrees, "trees", "t", false, "Print the tree structure of each defined region")
	evalCmd.Flags().IntVar(&evalMaxDepth, "max-depth", -1, "Depth limit for printed trees (-1 for unlimited)")
}

func runEval(cmd *cobra.Command, args []string) {
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

	for _, line := range res.Output() {
		fmt.Println(line)
	}

	names := res.RegionNames()
	if len(names) == 0 {
		return
	}

	if len(res.Output()) > 0 {
		fmt.Println()
	}
	fmt.Println("Defined Regions:")
	for _, name := range names {
		r := res.Region(name)
		fmt.Printf("  %s: %d nodes, height %d\n", name, r.Count(), r.Height())
		if evalShowTrees {
			fmt.Print(r.TreeString(evalMaxDepth))
		}
	}
}

// readSource loads the script from a file, or from stdin when the
// path is -.
func readSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
