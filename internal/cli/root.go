package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dallyp22/Scheduler-VS/internal/domain"
	"github.com/dallyp22/Scheduler-VS/internal/infrastructure/fixtures"
)

// options are the flags shared by every schedctl command
type options struct {
	fixturePath string
	seed        int64
	start       string
	hours       float64
	orderSort   string
	excluded    []string
	at          string
}

// NewRootCommand builds the schedctl command tree
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "schedctl",
		Short: "Inspect changeovers and schedules for a plant fixture",
		Long: `schedctl computes changeover costs, sequences the order backlog onto
production lines and reports schedule KPIs for a YAML plant fixture.
Without --fixture the built-in demo plant is used.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.fixturePath, "fixture", "", "Plant fixture YAML path")
	rootCmd.PersistentFlags().Int64Var(&opts.seed, "seed", 0, "Seed for changeover variance (0 disables variance)")

	rootCmd.AddCommand(matrixCmd(opts))
	rootCmd.AddCommand(changeoverCmd(opts))
	rootCmd.AddCommand(scheduleCmd(opts))
	rootCmd.AddCommand(metricsCmd(opts))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}

func addWindowFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVar(&opts.start, "start", "", "Window start (RFC3339, default: now rounded to the hour)")
	cmd.Flags().Float64Var(&opts.hours, "hours", domain.DefaultWindowLength.Hours(), "Window length in hours")
	cmd.Flags().StringVar(&opts.orderSort, "sort", string(domain.OrderSortInput), "Order sort: input, due_date or priority")
	cmd.Flags().StringSliceVar(&opts.excluded, "exclude-line", nil, "Line IDs to leave out of the run")
	cmd.Flags().StringVar(&opts.at, "at", "", "Evaluate block status at this time (RFC3339, default: window start)")
}

func (o *options) loadPlant() (*fixtures.Plant, error) {
	return fixtures.LoadOrDefault(o.fixturePath)
}

func (o *options) matrixOptions() domain.MatrixOptions {
	if o.seed == 0 {
		return domain.MatrixOptions{Version: "cli"}
	}
	return domain.MatrixOptions{
		Version:  fmt.Sprintf("cli-seed-%d", o.seed),
		Variance: domain.NewSeededVariance(o.seed),
	}
}

func (o *options) window() (domain.Window, error) {
	start := time.Now().UTC().Truncate(time.Hour)
	if o.start != "" {
		parsed, err := time.Parse(time.RFC3339, o.start)
		if err != nil {
			return domain.Window{}, fmt.Errorf("invalid --start: %w", err)
		}
		start = parsed
	}
	if o.hours <= 0 {
		return domain.Window{}, fmt.Errorf("--hours must be positive")
	}
	return domain.NewWindow(start, start.Add(time.Duration(o.hours*float64(time.Hour))))
}

func (o *options) evaluationTime(window domain.Window) (time.Time, error) {
	if o.at == "" {
		return window.Start, nil
	}
	at, err := time.Parse(time.RFC3339, o.at)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --at: %w", err)
	}
	return at, nil
}

func (o *options) sort() (domain.OrderSort, error) {
	sort := domain.OrderSort(o.orderSort)
	switch sort {
	case domain.OrderSortInput, domain.OrderSortDueDate, domain.OrderSortPriority:
		return sort, nil
	}
	return "", fmt.Errorf("unknown --sort %q", o.orderSort)
}
