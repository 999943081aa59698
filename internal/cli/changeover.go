package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dallyp22/Scheduler-VS/internal/domain"
)

func changeoverCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "changeover FROM TO [NEXT...]",
		Short: "Show the changeover cost between SKUs",
		Long: `Show the phase breakdown of each changeover along a SKU sequence.
With more than two SKUs the total sequence cost is printed as well.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			plant, err := opts.loadPlant()
			if err != nil {
				return err
			}
			skus := domain.IndexSKUs(plant.SKUs)
			for _, id := range args {
				if _, ok := skus[id]; !ok {
					return fmt.Errorf("unknown sku %q", id)
				}
			}

			matrix := domain.BuildMatrix(plant.SKUs, opts.matrixOptions())
			return renderChangeovers(cmd.OutOrStdout(), matrix, args)
		},
	}
}

func renderChangeovers(w io.Writer, matrix *domain.ChangeoverMatrix, sequence []string) error {
	for i := 1; i < len(sequence); i++ {
		cell, ok := matrix.Cell(sequence[i-1], sequence[i])
		if !ok {
			return fmt.Errorf("no changeover for %s -> %s", sequence[i-1], sequence[i])
		}

		fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s -> %s", cell.FromSKUID, cell.ToSKUID)))
		fmt.Fprintf(w, "  total     %s\n", complexityStyle(cell.Complexity).Render(fmt.Sprintf("%d min %s", cell.Time.Total, cell.Complexity)))
		fmt.Fprintf(w, "  phases    drain %d, clean %d, setup %d, flush %d\n", cell.Time.Drain, cell.Time.Clean, cell.Time.Setup, cell.Time.Flush)
		fmt.Fprintf(w, "  cleaning  %s\n", cell.CleaningType)
		fmt.Fprintf(w, "  labor     %d (%s)\n", cell.LaborCount, strings.Join(cell.RequiredSkills, ", "))
		if len(cell.RequiredTools) > 0 {
			fmt.Fprintf(w, "  tools     %s\n", strings.Join(cell.RequiredTools, ", "))
		}
		if cell.Notes != "" {
			fmt.Fprintln(w, subtleStyle.Render("  "+cell.Notes))
		}
	}

	if len(sequence) > 2 {
		fmt.Fprintf(w, "sequence cost: %d min\n", matrix.SequenceCost(sequence))
	}
	return nil
}
