package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/dallyp22/Scheduler-VS/internal/domain"
)

func matrixCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "matrix",
		Short: "Print the changeover matrix as a heatmap of total minutes",
		RunE: func(cmd *cobra.Command, args []string) error {
			plant, err := opts.loadPlant()
			if err != nil {
				return err
			}
			matrix := domain.BuildMatrix(plant.SKUs, opts.matrixOptions())
			renderMatrix(cmd.OutOrStdout(), matrix)
			return nil
		},
	}
}

// renderMatrix writes one row per from-SKU, one column per to-SKU
func renderMatrix(w io.Writer, matrix *domain.ChangeoverMatrix) {
	ids := matrix.SKUIDs()

	headers := append([]string{"FROM \\ TO"}, ids...)
	rows := make([][]string, 0, len(ids))
	tiers := make([][]domain.Complexity, 0, len(ids))
	for _, from := range ids {
		row := []string{from}
		tierRow := []domain.Complexity{""}
		for _, to := range ids {
			minutes, complexity := matrix.ChangeoverMinutes(from, to)
			row = append(row, strconv.Itoa(minutes))
			tierRow = append(tierRow, complexity)
		}
		rows = append(rows, row)
		tiers = append(tiers, tierRow)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(subtleStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow || col == 0 {
				return headerStyle
			}
			return complexityStyle(tiers[row][col])
		})

	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Changeover matrix (%d SKUs, version %s)", len(ids), matrix.Version)))
	fmt.Fprintln(w, t.String())

	breakdown := matrix.ComplexityBreakdown()
	for _, c := range domain.Complexities {
		fmt.Fprintf(w, "%s %d\n", complexityStyle(c).Render(string(c)), breakdown[c])
	}
}
