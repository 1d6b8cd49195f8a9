package fitnutrition

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/madDev-12/fitnutrition/internal/model"
	"github.com/madDev-12/fitnutrition/internal/service"
)

var workoutCmd = &cobra.Command{
	Use:   "workout",
	Short: "Review workouts and exercise checklists",
}

var workoutWeek bool

var workoutListCmd = &cobra.Command{
	Use:   "list",
	Short: "List workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)
		client := newClient()
		var (
			workouts []model.Workout
			err      error
		)
		if workoutWeek {
			workouts, err = client.ThisWeekWorkouts(ctx)
		} else {
			workouts, err = client.ListWorkouts(ctx)
		}
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(workouts) == 0 {
			fmt.Fprintln(out, "No workouts")
			return nil
		}
		fmt.Fprintln(out, "ID\tDATE\tNAME\tSTATUS\tMIN\tKCAL\tCHECKED")
		for _, w := range workouts {
			sum := service.SummarizeChecks(service.ExerciseChecks(w))
			fmt.Fprintf(out, "%d\t%s\t%s\t%s\t%s\t%s\t%d/%d\n", w.ID, w.Date, w.Name, w.Status,
				formatNumber(float64(w.Duration)), formatNumber(float64(w.TotalCaloriesBurned)), sum.Done, sum.Total)
		}
		stats := service.WeekWorkoutStats(workouts)
		fmt.Fprintf(out, "Completed %d/%d %s %.0f%%\n", stats.Completed, stats.Total, progressBar(stats.Percent, 20), stats.Percent)
		return nil
	},
}

var workoutShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a workout with its exercise checklist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("workout id", args[0])
		if err != nil {
			return err
		}
		w, err := newClient().GetWorkout(commandContext(cmd), id)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s)\n", w.Name, w.Date)
		fmt.Fprintf(out, "status\t%s\nduration\t%s min\nburned\t%s kcal\nprogress\t%s\n", w.Status,
			formatNumber(float64(w.Duration)), formatNumber(float64(w.TotalCaloriesBurned)),
			progressBar(float64(w.ProgressPercentage), 20))
		checks := service.ExerciseChecks(w)
		if len(checks) == 0 {
			fmt.Fprintln(out, "No exercises")
			return nil
		}
		for _, c := range checks {
			mark := "[ ]"
			if c.Checked {
				mark = "[x]"
			}
			fmt.Fprintf(out, "%s %s", mark, c.ExerciseName)
			if c.Sets > 0 || c.Reps > 0 {
				fmt.Fprintf(out, "\t%sx%s", formatNumber(float64(c.Sets)), formatNumber(float64(c.Reps)))
			}
			if c.Weight > 0 {
				fmt.Fprintf(out, "\t%s kg", formatNumber(float64(c.Weight)))
			}
			if c.Duration > 0 {
				fmt.Fprintf(out, "\t%s min", formatNumber(float64(c.Duration)))
			}
			fmt.Fprintln(out)
		}
		sum := service.SummarizeChecks(checks)
		fmt.Fprintf(out, "%d/%d exercises done\n", sum.Done, sum.Total)
		return nil
	},
}

func init() {
	workoutListCmd.Flags().BoolVar(&workoutWeek, "week", false, "Only this week's workouts")
	workoutCmd.AddCommand(workoutListCmd, workoutShowCmd)
	rootCmd.AddCommand(workoutCmd)
}
