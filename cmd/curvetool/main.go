// Command curvetool fits curves described in YAML problem files and
// extracts quadratic costs over their control points.
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/proyan/curves/internal/config"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("curvetool: ")
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var (
		samples    int
		derivative int
	)

	rootCmd := &cobra.Command{
		Use:           "curvetool",
		Short:         "fit trajectory curves and extract costs",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.SetOut(out)

	sampleCmd := &cobra.Command{
		Use:   "sample [problem.yaml]",
		Short: "sample the problem's curve as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.Load(args[0])
			if err != nil {
				return fmt.Errorf("failed to load problem: %w", err)
			}
			if cmd.Flags().Changed("samples") {
				if samples < 2 {
					return fmt.Errorf("need at least 2 samples, got %d", samples)
				}
				p.Samples = samples
			}
			return sample(cmd.OutOrStdout(), p, derivative)
		},
	}
	sampleCmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "number of samples, overrides the problem file")
	sampleCmd.Flags().IntVar(&derivative, "derivative", 0, "derivative order to sample")

	costCmd := &cobra.Command{
		Use:   "cost [problem.yaml]",
		Short: "print the quadratic cost of the problem's Bézier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.Load(args[0])
			if err != nil {
				return fmt.Errorf("failed to load problem: %w", err)
			}
			return cost(cmd.OutOrStdout(), p)
		},
	}

	rootCmd.AddCommand(sampleCmd, costCmd)
	return rootCmd
}

func sample(w io.Writer, p *config.Problem, derivative int) error {
	c, err := buildCurve(p)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	header := []string{"t"}
	for i := range c.Dim() {
		header = append(header, "x"+strconv.Itoa(i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, t := range floats.Span(make([]float64, p.Samples), c.Min(), c.Max()) {
		v, err := c.Derivative(t, derivative)
		if err != nil {
			return err
		}
		row := []string{formatFloat(t)}
		for _, x := range v {
			row = append(row, formatFloat(x))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func cost(w io.Writer, p *config.Problem) error {
	q, err := buildCost(p.Cost)
	if err != nil {
		return err
	}
	a, b, c := q.Cost()
	fmt.Fprintf(w, "unknowns: %d\n", q.Vars())
	if q.Vars() > 0 {
		fmt.Fprintf(w, "A:\n%v\n", mat.Formatted(a, mat.Prefix(""), mat.Squeeze()))
		fmt.Fprintf(w, "b:\n%v\n", mat.Formatted(b.T(), mat.Prefix(""), mat.Squeeze()))
	}
	fmt.Fprintf(w, "c: %s\n", formatFloat(c))
	return nil
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
