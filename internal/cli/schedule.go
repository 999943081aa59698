package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/dallyp22/Scheduler-VS/internal/domain"
)

// plan is one sequencing run over the fixture
type plan struct {
	window domain.Window
	at     time.Time
	lines  []domain.ProductionLine
	result domain.ScheduleResult
}

func (o *options) runPlan(ctx context.Context) (*plan, error) {
	plant, err := o.loadPlant()
	if err != nil {
		return nil, err
	}
	window, err := o.window()
	if err != nil {
		return nil, err
	}
	at, err := o.evaluationTime(window)
	if err != nil {
		return nil, err
	}
	sort, err := o.sort()
	if err != nil {
		return nil, err
	}

	orders := make([]domain.ProductionOrder, 0, len(plant.Orders))
	for _, order := range plant.ProductionOrders(window.Start) {
		if order.IsSchedulable() {
			orders = append(orders, order)
		}
	}
	lines := domain.WithoutLines(plant.Lines, o.excluded)

	result, err := domain.NewGreedyFirstFit().Sequence(ctx, domain.SequenceInput{
		Orders: domain.SortOrders(orders, sort),
		Lines:  lines,
		SKUs:   domain.IndexSKUs(plant.SKUs),
		Matrix: domain.BuildMatrix(plant.SKUs, o.matrixOptions()),
		Window: window,
	})
	if err != nil {
		return nil, fmt.Errorf("sequencing failed: %w", err)
	}

	return &plan{window: window, at: at, lines: lines, result: result}, nil
}

func scheduleCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Sequence the order backlog and print the resulting blocks",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.runPlan(cmd.Context())
			if err != nil {
				return err
			}
			renderSchedule(cmd.OutOrStdout(), p)
			return nil
		},
	}
	addWindowFlags(cmd, opts)
	return cmd
}

func renderSchedule(w io.Writer, p *plan) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Schedule %s - %s",
		p.window.Start.Format(time.RFC3339), p.window.End.Format(time.RFC3339))))

	rows := make([][]string, 0, len(p.result.Scheduled))
	tiers := make([]domain.Complexity, 0, len(p.result.Scheduled))
	for _, b := range p.result.Scheduled {
		changeover := "-"
		var tier domain.Complexity
		if b.ChangeoverType != nil {
			tier = *b.ChangeoverType
			changeover = fmt.Sprintf("%d %s", b.ChangeoverMinutes, tier)
		}
		rows = append(rows, []string{
			b.LineID,
			b.OrderID,
			b.SKUID,
			b.StartTime.Format("01-02 15:04"),
			b.EndTime.Format("01-02 15:04"),
			strconv.Itoa(b.Quantity),
			changeover,
			string(domain.BlockStatusAt(b, p.at)),
		})
		tiers = append(tiers, tier)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(subtleStyle).
		Headers("LINE", "ORDER", "SKU", "START", "END", "QTY", "CHANGEOVER", "STATUS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 6 {
				return complexityStyle(tiers[row])
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.String())

	if len(p.result.Unscheduled) > 0 {
		fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("%d unscheduled:", len(p.result.Unscheduled))))
		for _, u := range p.result.Unscheduled {
			fmt.Fprintf(w, "  %s (%s) %s\n", u.Order.ID, u.Order.SKUID, u.Reason)
		}
	}

	for _, issue := range domain.ValidateSchedule(p.result.Scheduled) {
		fmt.Fprintln(w, subtleStyle.Render(fmt.Sprintf("%s %s: %s", issue.Severity, issue.Type, issue.Message)))
	}
}
