package fitnutrition

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/madDev-12/fitnutrition/internal/export"
	"github.com/madDev-12/fitnutrition/internal/model"
	"github.com/madDev-12/fitnutrition/internal/service"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Progress report over a date range",
}

var (
	progressStart  string
	progressEnd    string
	progressFormat string
	progressOutput string
)

func progressRange() (time.Time, time.Time, error) {
	start, end := service.DefaultProgressRange(service.Today())
	var err error
	if strings.TrimSpace(progressStart) != "" {
		if start, err = service.ParseDate(progressStart); err != nil {
			return start, end, err
		}
	}
	if strings.TrimSpace(progressEnd) != "" {
		if end, err = service.ParseDate(progressEnd); err != nil {
			return start, end, err
		}
	}
	return start, end, service.ValidateProgressRange(start, end)
}

func loadProgress(cmd *cobra.Command) (model.ProgressReport, time.Time, time.Time, error) {
	start, end, err := progressRange()
	if err != nil {
		return model.ProgressReport{}, start, end, err
	}
	report, err := newClient().Progress(commandContext(cmd), service.FormatDate(start), service.FormatDate(end))
	return report, start, end, err
}

var progressShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show goal progress and the daily series",
	RunE: func(cmd *cobra.Command, args []string) error {
		report, start, end, err := loadProgress(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Progress %s to %s\n", service.FormatDate(start), service.FormatDate(end))
		for _, c := range service.GoalCards(report) {
			if !c.HasTarget {
				fmt.Fprintf(out, "%s\t%s %s\tno goal set\n", c.Name, formatNumber(c.Current), c.Unit)
				continue
			}
			fmt.Fprintf(out, "%s\t%s/%s %s\t%s %.0f%%\t%s to go\n", c.Name, formatNumber(c.Current), formatNumber(c.Target), c.Unit,
				progressBar(c.Progress, 20), c.Progress, formatNumber(c.Remaining))
		}

		rows := service.DailyProgressRows(report, start, end)
		fmt.Fprintln(out)
		fmt.Fprintln(out, strings.ToUpper(strings.Join(service.ProgressHeaders, "\t")))
		var weights []float64
		for _, r := range rows {
			fmt.Fprintln(out, strings.Join(r.Cells(), "\t"))
			if r.Weight != nil {
				weights = append(weights, *r.Weight)
			}
		}
		if len(weights) > 1 {
			fmt.Fprintf(out, "Weight trend\t%s\n", sparkline(weights))
		}
		return nil
	},
}

var progressExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the daily progress series as csv, xlsx or pdf",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		format, err := export.ParseFormat(progressFormat)
		if err != nil {
			return err
		}
		report, start, end, err := loadProgress(cmd)
		if err != nil {
			return err
		}
		rows := service.DailyProgressRows(report, start, end)
		table := export.Table{
			Title:   fmt.Sprintf("Progress report %s to %s", service.FormatDate(start), service.FormatDate(end)),
			Sheet:   "progress",
			Headers: service.ProgressHeaders,
			Rows:    make([][]string, 0, len(rows)),
		}
		for _, r := range rows {
			table.Rows = append(table.Rows, r.Cells())
		}

		if progressOutput == "-" {
			return export.Write(cmd.OutOrStdout(), format, table)
		}
		path := progressOutput
		if path == "" {
			path = service.ProgressFileName(start, end) + format.Extension()
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer func() { err = multierr.Append(err, f.Close()) }()
		if err := export.Write(f, format, table); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d days to %s\n", len(rows), path)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{progressShowCmd, progressExportCmd} {
		c.Flags().StringVar(&progressStart, "start", "", "First date YYYY-MM-DD (default a week ago)")
		c.Flags().StringVar(&progressEnd, "end", "", "Last date YYYY-MM-DD (default today)")
	}
	progressExportCmd.Flags().StringVar(&progressFormat, "format", "csv", "csv|xlsx|pdf")
	progressExportCmd.Flags().StringVarP(&progressOutput, "output", "o", "", "Output file, - for stdout")

	progressCmd.AddCommand(progressShowCmd, progressExportCmd)
	rootCmd.AddCommand(progressCmd)
}
