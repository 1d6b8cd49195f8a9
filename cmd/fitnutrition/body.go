package fitnutrition

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/madDev-12/fitnutrition/internal/model"
	"github.com/madDev-12/fitnutrition/internal/service"
)

var bodyCmd = &cobra.Command{
	Use:   "body",
	Short: "Track body measurements",
}

var (
	bodyOffset int
	bodyMetric string
	bodyDate   string
	bodyWeight float64
	bodyFat    float64
	bodyChest  float64
	bodyWaist  float64
	bodyHips   float64
	bodyArms   float64
	bodyThighs float64
	bodyCalves float64
)

// bodyWindow returns the window offset windows back from the newest entry.
func bodyWindow(total, size, offset int) service.Window {
	w := service.NewWindow(total, size, 0)
	for i := 0; i < offset && w.HasNext(); i++ {
		w = w.Next()
	}
	return w
}

var bodyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List measurements, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := newClient().ListMeasurements(commandContext(cmd))
		if err != nil {
			return err
		}
		sorted := service.SortMeasurementsDesc(items)
		w := bodyWindow(len(sorted), service.TableWindowSize, bodyOffset)

		out := cmd.OutOrStdout()
		if len(sorted) == 0 {
			fmt.Fprintln(out, "No measurements recorded")
			return nil
		}
		fmt.Fprintln(out, "ID\tDATE\tWEIGHT\tBODY FAT\tCHEST\tWAIST\tHIPS\tARMS\tTHIGHS\tCALVES")
		for _, m := range service.WindowSlice(sorted, w) {
			r := service.NewMeasurementRow(m)
			fmt.Fprintf(out, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.Date,
				r.Weight.Format(1, "-"), r.BodyFat.Format(1, "-"), r.Chest.Format(1, "-"), r.Waist.Format(1, "-"),
				r.Hips.Format(1, "-"), r.Arms.Format(1, "-"), r.Thighs.Format(1, "-"), r.Calves.Format(1, "-"))
		}
		lo, hi := w.Bounds()
		fmt.Fprintf(out, "%d-%d of %d\n", lo+1, hi, w.Total)
		return nil
	},
}

func rowMetric(r service.MeasurementRow, metric string) (service.Metric, error) {
	switch strings.ToLower(strings.TrimSpace(metric)) {
	case "weight":
		return r.Weight, nil
	case "bodyfat", "body-fat", "fat":
		return r.BodyFat, nil
	case "chest":
		return r.Chest, nil
	case "waist":
		return r.Waist, nil
	case "hips":
		return r.Hips, nil
	case "arms":
		return r.Arms, nil
	case "thighs":
		return r.Thighs, nil
	case "calves":
		return r.Calves, nil
	default:
		return service.Metric{}, fmt.Errorf("invalid metric %q (expected weight|bodyfat|chest|waist|hips|arms|thighs|calves)", metric)
	}
}

var bodyChartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Chart one measurement over a window of entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := rowMetric(service.MeasurementRow{}, bodyMetric); err != nil {
			return err
		}
		items, err := newClient().ListMeasurements(commandContext(cmd))
		if err != nil {
			return err
		}
		sorted := service.SortMeasurementsDesc(items)
		w := bodyWindow(len(sorted), service.ChartWindowSize, bodyOffset)
		page := service.WindowSlice(sorted, w)

		type point struct {
			date  string
			value float64
		}
		var points []point
		maxAbs := 0.0
		for i := len(page) - 1; i >= 0; i-- {
			r := service.NewMeasurementRow(page[i])
			m, _ := rowMetric(r, bodyMetric)
			if !m.OK {
				continue
			}
			points = append(points, point{date: r.Date, value: m.Value})
			maxAbs = math.Max(maxAbs, math.Abs(m.Value))
		}

		out := cmd.OutOrStdout()
		if len(points) == 0 {
			fmt.Fprintf(out, "No %s data in this window\n", bodyMetric)
			return nil
		}
		values := make([]float64, 0, len(points))
		for _, p := range points {
			fmt.Fprintf(out, "%s\t%6.1f\t%s\n", p.date, p.value, horizontalBar(p.value, maxAbs, 30))
			values = append(values, p.value)
		}
		fmt.Fprintf(out, "Trend\t%s\n", sparkline(values))
		if w.HasNext() {
			fmt.Fprintf(out, "Older entries: --offset %d\n", bodyOffset+1)
		}
		return nil
	},
}

func measurementInputFromFlags(cmd *cobra.Command) model.MeasurementInput {
	return model.MeasurementInput{
		Date:              strings.TrimSpace(bodyDate),
		Weight:            changedFloat(cmd, "weight", bodyWeight),
		BodyFatPercentage: changedFloat(cmd, "body-fat", bodyFat),
		Chest:             changedFloat(cmd, "chest", bodyChest),
		Waist:             changedFloat(cmd, "waist", bodyWaist),
		Hips:              changedFloat(cmd, "hips", bodyHips),
		Arms:              changedFloat(cmd, "arms", bodyArms),
		Thighs:            changedFloat(cmd, "thighs", bodyThighs),
		Calves:            changedFloat(cmd, "calves", bodyCalves),
	}
}

var bodyAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a measurement",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := measurementInputFromFlags(cmd)
		values := in
		values.Date = ""
		if values.Empty() {
			return fmt.Errorf("provide at least one measurement")
		}
		if in.Date == "" {
			in.Date = service.FormatDate(service.Today())
		} else if _, err := service.ParseDate(in.Date); err != nil {
			return err
		}
		m, err := newClient().CreateMeasurement(commandContext(cmd), in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Recorded measurement %d for %s\n", m.ID, service.FormatDate(recordedDate(m.Date, in.Date)))
		return nil
	},
}

var bodyUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a measurement; only the given flags change",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("measurement id", args[0])
		if err != nil {
			return err
		}
		in := measurementInputFromFlags(cmd)
		if in.Empty() {
			return fmt.Errorf("provide at least one measurement")
		}
		if in.Date != "" {
			if _, err := service.ParseDate(in.Date); err != nil {
				return err
			}
		}
		m, err := newClient().UpdateMeasurement(commandContext(cmd), id, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated measurement %d\n", m.ID)
		return nil
	},
}

var bodyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a measurement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("measurement id", args[0])
		if err != nil {
			return err
		}
		ok, err := confirm(cmd, fmt.Sprintf("Delete measurement %d?", id))
		if err != nil || !ok {
			return err
		}
		if err := newClient().DeleteMeasurement(commandContext(cmd), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted measurement %d\n", id)
		return nil
	},
}

// recordedDate prefers the backend's date and falls back to the submitted one.
func recordedDate(values ...string) time.Time {
	for _, v := range values {
		if d, err := service.ParseDate(v); err == nil {
			return d
		}
	}
	return service.Today()
}

func init() {
	bodyListCmd.Flags().IntVar(&bodyOffset, "offset", 0, "Windows to move toward older entries")
	bodyChartCmd.Flags().IntVar(&bodyOffset, "offset", 0, "Windows to move toward older entries")
	bodyChartCmd.Flags().StringVar(&bodyMetric, "metric", "weight", "weight|bodyfat|chest|waist|hips|arms|thighs|calves")

	for _, c := range []*cobra.Command{bodyAddCmd, bodyUpdateCmd} {
		c.Flags().StringVar(&bodyDate, "date", "", "Date YYYY-MM-DD")
		c.Flags().Float64Var(&bodyWeight, "weight", 0, "Weight in kg")
		c.Flags().Float64Var(&bodyFat, "body-fat", 0, "Body fat percentage")
		c.Flags().Float64Var(&bodyChest, "chest", 0, "Chest in cm")
		c.Flags().Float64Var(&bodyWaist, "waist", 0, "Waist in cm")
		c.Flags().Float64Var(&bodyHips, "hips", 0, "Hips in cm")
		c.Flags().Float64Var(&bodyArms, "arms", 0, "Arms in cm")
		c.Flags().Float64Var(&bodyThighs, "thighs", 0, "Thighs in cm")
		c.Flags().Float64Var(&bodyCalves, "calves", 0, "Calves in cm")
	}

	bodyCmd.AddCommand(bodyListCmd, bodyChartCmd, bodyAddCmd, bodyUpdateCmd, bodyDeleteCmd)
	rootCmd.AddCommand(bodyCmd)
}
