package fitnutrition

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/madDev-12/fitnutrition/internal/model"
	"github.com/madDev-12/fitnutrition/internal/service"
	"github.com/madDev-12/fitnutrition/internal/store"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Manage meal plans and their active windows",
}

var (
	planSearch   string
	planPage     int
	planName     string
	planDesc     string
	planCalories float64
	planProtein  float64
	planCarbs    float64
	planFats     float64
	planDuration int
	planStart    string
	planEnd      string
	planClear    bool
	planDate     string
)

var planListCmd = &cobra.Command{
	Use:   "list",
	Short: "List meal plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		plans, err := newClient().ListMealPlans(commandContext(cmd))
		if err != nil {
			return err
		}
		selected, err := selectedPlan()
		if err != nil {
			return err
		}
		active, hasActive := service.ActivePlanFor(service.Today(), plans)
		filtered := service.FilterPlans(plans, planSearch)
		pager := service.NewPager(len(filtered), service.PlansPageSize, planPage)

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "ID\tNAME\tKCAL\tWINDOW\tSTATUS")
		for _, p := range service.PageSlice(filtered, pager) {
			var marks []string
			if hasActive && p.ID == active.ID {
				marks = append(marks, "active")
			}
			if selected != nil && selected.ID == p.ID {
				marks = append(marks, "selected")
			}
			fmt.Fprintf(out, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.Name, formatNumber(p.Calories()), planWindow(p), strings.Join(marks, ","))
		}
		fmt.Fprintf(out, "%s (page %d/%d)\n", pager.Label(), pager.Page, pager.Pages())
		return nil
	},
}

func planWindow(p model.MealPlan) string {
	if !p.HasWindow() {
		return "-"
	}
	start, end := p.Window()
	return start + ".." + end
}

var planCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a meal plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := model.MealPlanInput{
			Name:           strings.TrimSpace(planName),
			Description:    strings.TrimSpace(planDesc),
			TargetCalories: changedFloat(cmd, "calories", planCalories),
			TargetProtein:  changedFloat(cmd, "protein", planProtein),
			TargetCarbs:    changedFloat(cmd, "carbs", planCarbs),
			TargetFats:     changedFloat(cmd, "fats", planFats),
			DurationDays:   planDuration,
		}
		if err := service.ValidatePlanInput(in); err != nil {
			return err
		}
		p, err := newClient().CreateMealPlan(commandContext(cmd), in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created plan %d (%s)\n", p.ID, p.Name)
		return nil
	},
}

var planActivateCmd = &cobra.Command{
	Use:   "activate <id>",
	Short: "Activate a plan for a date range",
	Long:  "Activate a plan for an inclusive date range. The range defaults to today plus the plan's duration and must not overlap another active plan.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("plan id", args[0])
		if err != nil {
			return err
		}
		ctx := commandContext(cmd)
		client := newClient()
		plans, err := client.ListMealPlans(ctx)
		if err != nil {
			return err
		}
		plan, ok := service.PlanByID(plans, id)
		if !ok {
			return fmt.Errorf("meal plan %d not found", id)
		}
		start, end := service.DefaultActivationRange(plan, service.Today())
		if planStart != "" {
			if start, err = service.ParseDate(planStart); err != nil {
				return err
			}
		}
		if planEnd != "" {
			if end, err = service.ParseDate(planEnd); err != nil {
				return err
			}
		}
		activated, err := service.ValidateActivation(plan, start, end, plans)
		if err != nil {
			return err
		}
		updated, err := client.UpdateMealPlan(ctx, activated)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Activated %s for %s\n", updated.Name, planWindow(updated))
		return nil
	},
}

var planCancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Clear a plan's active window",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("plan id", args[0])
		if err != nil {
			return err
		}
		ctx := commandContext(cmd)
		client := newClient()
		plan, err := client.GetMealPlan(ctx, id)
		if err != nil {
			return err
		}
		if !plan.HasWindow() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is not active\n", plan.Name)
			return nil
		}
		ok, err := confirm(cmd, fmt.Sprintf("Cancel activation of %s (%s)?", plan.Name, planWindow(plan)))
		if err != nil || !ok {
			return err
		}
		if _, err := client.UpdateMealPlan(ctx, service.CancelActivation(plan)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cancelled activation of %s\n", plan.Name)
		return nil
	},
}

var planDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a meal plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("plan id", args[0])
		if err != nil {
			return err
		}
		ok, err := confirm(cmd, fmt.Sprintf("Delete meal plan %d?", id))
		if err != nil || !ok {
			return err
		}
		if err := newClient().DeleteMealPlan(commandContext(cmd), id); err != nil {
			return err
		}
		err = withStore(func(s *store.Store) error {
			selected, err := s.SelectedPlan()
			if err != nil || selected == nil || selected.ID != id {
				return err
			}
			return s.ClearSelectedPlan()
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted meal plan %d\n", id)
		return nil
	},
}

var planSelectCmd = &cobra.Command{
	Use:   "select [id]",
	Short: "Select the plan used when no plan is active",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if planClear {
			if err := withStore(func(s *store.Store) error { return s.ClearSelectedPlan() }); err != nil {
				return err
			}
			fmt.Fprintln(out, "Cleared selected plan")
			return nil
		}
		if len(args) == 0 {
			return fmt.Errorf("plan id is required unless --clear is given")
		}
		id, err := parseInt64Arg("plan id", args[0])
		if err != nil {
			return err
		}
		plan, err := newClient().GetMealPlan(commandContext(cmd), id)
		if err != nil {
			return err
		}
		if err := withStore(func(s *store.Store) error { return s.SetSelectedPlan(plan) }); err != nil {
			return err
		}
		fmt.Fprintf(out, "Selected %s (%s kcal)\n", plan.Name, formatNumber(plan.Calories()))
		return nil
	},
}

var planActiveCmd = &cobra.Command{
	Use:   "active",
	Short: "Show the plan and targets in effect on a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseDateOrToday(planDate)
		if err != nil {
			return err
		}
		plans, err := newClient().ListMealPlans(commandContext(cmd))
		if err != nil {
			return err
		}
		selected, err := selectedPlan()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		plan, ok := service.ActivePlanFor(day, plans)
		switch {
		case ok:
			fmt.Fprintf(out, "Active plan on %s: %s (%s)\n", service.FormatDate(day), plan.Name, planWindow(plan))
			printTargets(out, service.NutritionTargets(&plan))
		case selected != nil:
			fmt.Fprintf(out, "No active plan on %s; using selected plan %s\n", service.FormatDate(day), selected.Name)
			printTargets(out, service.NutritionTargets(selected))
		default:
			fmt.Fprintf(out, "No plan on %s; using defaults\n", service.FormatDate(day))
			printTargets(out, service.DefaultTargets())
		}
		return nil
	},
}

func printTargets(out io.Writer, t service.Targets) {
	fmt.Fprintf(out, "kcal\t%s\nprotein g\t%s\ncarbs g\t%s\nfat g\t%s\n",
		formatNumber(t.Calories), formatNumber(t.Protein), formatNumber(t.Carbs), formatNumber(t.Fat))
}

func init() {
	planListCmd.Flags().StringVar(&planSearch, "search", "", "Filter by name, description or calories")
	planListCmd.Flags().IntVar(&planPage, "page", 1, "Result page")

	planCreateCmd.Flags().StringVar(&planName, "name", "", "Plan name")
	planCreateCmd.Flags().StringVar(&planDesc, "description", "", "Description")
	planCreateCmd.Flags().Float64Var(&planCalories, "calories", 0, "Daily calorie target")
	planCreateCmd.Flags().Float64Var(&planProtein, "protein", 0, "Daily protein grams")
	planCreateCmd.Flags().Float64Var(&planCarbs, "carbs", 0, "Daily carbohydrate grams")
	planCreateCmd.Flags().Float64Var(&planFats, "fats", 0, "Daily fat grams")
	planCreateCmd.Flags().IntVar(&planDuration, "duration", 0, "Plan duration in days")
	_ = planCreateCmd.MarkFlagRequired("name")

	planActivateCmd.Flags().StringVar(&planStart, "start", "", "First active date (YYYY-MM-DD)")
	planActivateCmd.Flags().StringVar(&planEnd, "end", "", "Last active date (YYYY-MM-DD)")

	planSelectCmd.Flags().BoolVar(&planClear, "clear", false, "Clear the selected plan")
	planActiveCmd.Flags().StringVar(&planDate, "date", "", "Date (YYYY-MM-DD), defaults to today")

	planCmd.AddCommand(planListCmd, planCreateCmd, planActivateCmd, planCancelCmd, planDeleteCmd, planSelectCmd, planActiveCmd)
	rootCmd.AddCommand(planCmd)
}
