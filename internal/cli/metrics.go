package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dallyp22/Scheduler-VS/internal/domain"
)

func metricsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Sequence the order backlog and print schedule KPIs",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.runPlan(cmd.Context())
			if err != nil {
				return err
			}
			m := domain.AggregateMetrics(p.result.Scheduled, domain.ActiveLines(p.lines), p.window, p.at)
			renderMetrics(cmd.OutOrStdout(), m, len(p.result.Unscheduled))
			return nil
		},
	}
	addWindowFlags(cmd, opts)
	return cmd
}

func renderMetrics(w io.Writer, m domain.ScheduleMetrics, unscheduled int) {
	fmt.Fprintln(w, titleStyle.Render("Schedule KPIs"))
	fmt.Fprintf(w, "  scheduled orders      %d (%d unscheduled)\n", m.ScheduledOrders, unscheduled)
	fmt.Fprintf(w, "  completed orders      %d\n", m.CompletedOrders)
	fmt.Fprintf(w, "  avg utilization       %.1f%%\n", m.AvgUtilization)
	fmt.Fprintf(w, "  changeovers           %d (%d min, avg %.1f)\n", m.TotalChangeovers, m.TotalChangeoverMinutes, m.AvgChangeoverMinutes)
	fmt.Fprintf(w, "  on time               %.1f%%\n", m.OnTimePercentage)
	fmt.Fprintf(w, "  adherence             %.1f%%\n", m.ScheduleAdherence)
	fmt.Fprintf(w, "  avg OEE               %.2f\n", m.AvgOEE)
	fmt.Fprintf(w, "  production hours      %.1f\n", m.TotalProductionHours)
	fmt.Fprintf(w, "  units                 %d\n", m.TotalUnits)
	fmt.Fprintf(w, "  makespan              %.0f min\n", m.Makespan)
	fmt.Fprintf(w, "  throughput            %.0f units/h\n", m.Throughput)

	for _, c := range domain.Complexities {
		fmt.Fprintf(w, "  %-21s %d\n", strings.ToLower(string(c)), m.ChangeoversByComplexity[c])
	}

	lineIDs := make([]string, 0, len(m.LineUtilization))
	for id := range m.LineUtilization {
		lineIDs = append(lineIDs, id)
	}
	slices.Sort(lineIDs)
	for _, id := range lineIDs {
		fmt.Fprintf(w, "  %-21s %.1f%%\n", id, m.LineUtilization[id])
	}

	if len(m.Bottlenecks) > 0 {
		fmt.Fprintln(w, warnStyle.Render("  bottlenecks: "+strings.Join(m.Bottlenecks, ", ")))
	}
}
