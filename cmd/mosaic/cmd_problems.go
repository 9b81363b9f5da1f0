package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mosaic/internal/format"
	"mosaic/pkg/benchmarks"
)

var problemsMarkdown bool

var problemsCmd = &cobra.Command{
	Use:   "problems",
	Short: "List the built-in benchmark problems",
	RunE:  runProblems,
}

func init() {
	problemsCmd.Flags().BoolVar(&problemsMarkdown, "markdown", false, "render as Markdown")
}

func runProblems(cmd *cobra.Command, _ []string) error {
	mode := format.ASCII
	if problemsMarkdown {
		mode = format.Markdown
	}
	tb := format.NewTable(mode)
	tb.Header("Name", "Bounds", "Optimum", "Character")

	sphere := benchmarks.NewSphere(1)
	lo, hi := sphere.Bounds()
	tb.Row("sphere", fmt.Sprintf("[%g, %g]^d", lo[0], hi[0]),
		format.FmtObjective(sphere.Optimum().Float64()), "unimodal, convex")

	rastrigin := benchmarks.NewRastrigin(1)
	lo, hi = rastrigin.Bounds()
	tb.Row("rastrigin", fmt.Sprintf("[%g, %g]^d", lo[0], hi[0]),
		format.FmtObjective(rastrigin.Optimum().Float64()), "multimodal, separable")

	fmt.Fprintln(cmd.OutOrStdout(), tb.String())
	return nil
}
