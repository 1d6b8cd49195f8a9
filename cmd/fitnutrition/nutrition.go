package fitnutrition

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/madDev-12/fitnutrition/internal/api"
	"github.com/madDev-12/fitnutrition/internal/model"
	"github.com/madDev-12/fitnutrition/internal/service"
)

var nutritionCmd = &cobra.Command{
	Use:   "nutrition",
	Short: "Review logged meals against nutrition targets",
}

var (
	nutritionDate   string
	nutritionWeekOf string
	nutritionOffset int
)

var nutritionDayCmd = &cobra.Command{
	Use:   "day",
	Short: "Show meals and totals for one day",
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseDateOrToday(nutritionDate)
		if err != nil {
			return err
		}
		ctx := commandContext(cmd)
		client := newClient()
		meals, err := client.ListMeals(ctx, api.MealQuery{Date: service.FormatDate(day)})
		if err != nil {
			return err
		}
		plans, err := client.ListMealPlans(ctx)
		if err != nil {
			return err
		}
		targets, plan := service.TargetsForDate(day, plans)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Nutrition for %s\n", service.FormatDate(day))
		if plan != nil {
			fmt.Fprintf(out, "Plan: %s\n", plan.Name)
		}
		renderMealsByType(out, service.MealsOn(meals, day))
		renderTargets(out, service.DayTotals(service.MealsOn(meals, day)), targets)
		return nil
	},
}

var nutritionWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show the Monday-start week of calories and macros",
	RunE: func(cmd *cobra.Command, args []string) error {
		anchor, err := parseDateOrToday(nutritionWeekOf)
		if err != nil {
			return err
		}
		start := service.ShiftWeek(anchor, nutritionOffset)
		days := service.WeekDays(start)
		ctx := commandContext(cmd)
		client := newClient()
		meals, err := client.ListMeals(ctx, api.MealQuery{
			StartDate: service.FormatDate(days[0]),
			EndDate:   service.FormatDate(days[len(days)-1]),
		})
		if err != nil {
			return err
		}
		plans, err := client.ListMealPlans(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		today := service.Today()
		fmt.Fprintf(out, "Week of %s\n", service.FormatDate(days[0]))
		fmt.Fprintln(out, "DAY\tDATE\tKCAL\tTARGET\tPROTEIN\tCARBS\tFAT\tMEALS")
		values := make([]float64, 0, len(days))
		var week service.Totals
		for _, d := range days {
			dayMeals := service.MealsOn(meals, d)
			totals := service.DayTotals(dayMeals)
			targets, _ := service.TargetsForDate(d, plans)
			week = week.Add(totals)
			values = append(values, totals.Calories)
			marker := ""
			if d.Equal(today) {
				marker = " *"
			}
			fmt.Fprintf(out, "%s%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d\n", d.Format("Mon"), marker, service.FormatDate(d),
				formatNumber(totals.Calories), formatNumber(targets.Calories),
				formatNumber(totals.Protein), formatNumber(totals.Carbs), formatNumber(totals.Fats), len(dayMeals))
		}
		fmt.Fprintf(out, "Total\t\t%s\t\t%s\t%s\t%s\n", formatNumber(week.Calories), formatNumber(week.Protein), formatNumber(week.Carbs), formatNumber(week.Fats))
		fmt.Fprintf(out, "Trend\t%s\n", sparkline(values))
		return nil
	},
}

func init() {
	nutritionDayCmd.Flags().StringVar(&nutritionDate, "date", "", "Date YYYY-MM-DD (default today)")
	nutritionWeekCmd.Flags().StringVar(&nutritionWeekOf, "week-of", "", "Any date in the week (default today)")
	nutritionWeekCmd.Flags().IntVar(&nutritionOffset, "offset", 0, "Weeks to move from --week-of (negative for earlier)")
	nutritionCmd.AddCommand(nutritionDayCmd, nutritionWeekCmd)
	rootCmd.AddCommand(nutritionCmd)
}

func renderMealsByType(out io.Writer, meals []model.Meal) {
	groups := service.GroupByMealType(meals)
	for _, mealType := range model.MealTypes {
		group := groups[mealType]
		fmt.Fprintf(out, "\n%s (%s kcal)\n", mealType, formatNumber(service.DayTotals(group).Calories))
		if len(group) == 0 {
			fmt.Fprintln(out, "  no meals logged")
			continue
		}
		for _, m := range group {
			fmt.Fprintf(out, "  meal %d\t%s\t%s kcal\n", m.ID, m.Name, formatNumber(float64(m.TotalCalories)))
			for _, it := range m.Items {
				fmt.Fprintf(out, "    item %d\t%s\t%sg\t%s kcal\tP %s\tC %s\tF %s\n", it.ID, it.Name(), formatNumber(float64(it.ServingSize)),
					formatNumber(float64(it.Calories)), formatNumber(float64(it.Protein)), formatNumber(float64(it.Carbs)), formatNumber(float64(it.Fats)))
			}
		}
	}
}

func renderTargets(out io.Writer, totals service.Totals, targets service.Targets) {
	fmt.Fprintln(out, "\nTotals vs targets")
	for _, row := range []struct {
		name           string
		actual, target float64
	}{
		{"kcal", totals.Calories, targets.Calories},
		{"protein g", totals.Protein, targets.Protein},
		{"carbs g", totals.Carbs, targets.Carbs},
		{"fat g", totals.Fats, targets.Fat},
	} {
		pct := service.ProgressPercent(row.actual, row.target)
		fmt.Fprintf(out, "  %-9s\t%s/%s\t%s %.0f%%\n", row.name, formatNumber(row.actual), formatNumber(row.target), progressBar(pct, 20), pct)
	}
}
