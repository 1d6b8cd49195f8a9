package fitnutrition

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/madDev-12/fitnutrition/internal/api"
	"github.com/madDev-12/fitnutrition/internal/model"
	"github.com/madDev-12/fitnutrition/internal/service"
)

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Log and remove meals",
}

var (
	mealType   string
	mealDate   string
	mealFoods  []string
	mealRepeat string
	mealUntil  string
	mealDays   []string
)

var mealAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a meal, optionally repeating daily or on chosen weekdays",
	Example: "  fitnutrition meal add --type lunch --food 12:150 --food 40:30\n" +
		"  fitnutrition meal add --type breakfast --food 3:80 --repeat weekly --days mon,wed,fri --until 2024-06-30",
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := buildMealLogRequest()
		if err != nil {
			return err
		}
		if err := req.Validate(service.Today()); err != nil {
			return err
		}
		meals, err := service.LogMeals(commandContext(cmd), newClient(), req.Inputs())
		if err != nil {
			return err
		}
		for _, m := range meals {
			fmt.Fprintf(cmd.OutOrStdout(), "Logged meal %d (%s) on %s\n", m.ID, m.MealType, m.Date)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged %d meal(s)\n", len(meals))
		return nil
	},
}

func buildMealLogRequest() (service.MealLogRequest, error) {
	var req service.MealLogRequest
	t, err := service.ParseMealType(mealType)
	if err != nil {
		return req, err
	}
	req.MealType = t
	if req.Date, err = parseDateOrToday(mealDate); err != nil {
		return req, err
	}
	for _, raw := range mealFoods {
		item, err := parseFoodServing(raw)
		if err != nil {
			return req, err
		}
		req.Items = append(req.Items, item)
	}
	if req.Repeat, err = service.ParseRepeatKind(mealRepeat); err != nil {
		return req, err
	}
	if strings.TrimSpace(mealUntil) != "" {
		if req.RepeatUntil, err = service.ParseDate(mealUntil); err != nil {
			return req, err
		}
	}
	if req.WeeklyDays, err = service.ParseWeekdays(mealDays); err != nil {
		return req, err
	}
	return req, nil
}

// parseFoodServing reads "<food-id>:<grams>"; a bare id uses 100 g.
func parseFoodServing(raw string) (model.MealItemInput, error) {
	idPart, servingPart, hasServing := strings.Cut(strings.TrimSpace(raw), ":")
	id, err := parseInt64Arg("food id", idPart)
	if err != nil {
		return model.MealItemInput{}, err
	}
	serving := 100.0
	if hasServing {
		serving, err = strconv.ParseFloat(strings.TrimSpace(servingPart), 64)
		if err != nil {
			return model.MealItemInput{}, fmt.Errorf("invalid serving size in %q", raw)
		}
	}
	return model.MealItemInput{FoodID: id, ServingSize: serving}, nil
}

var mealDeleteCmd = &cobra.Command{
	Use:   "delete <meal-id>",
	Short: "Delete a meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("meal id", args[0])
		if err != nil {
			return err
		}
		return dispatchMealChange(cmd, service.DeleteMeal{MealID: id}, fmt.Sprintf("Delete meal %d?", id))
	},
}

var mealDeleteItemCmd = &cobra.Command{
	Use:   "delete-item <meal-id> <item-id>",
	Short: "Remove one food item from a meal",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mealID, err := parseInt64Arg("meal id", args[0])
		if err != nil {
			return err
		}
		itemID, err := parseInt64Arg("item id", args[1])
		if err != nil {
			return err
		}
		return dispatchMealChange(cmd, service.DeleteMealItem{MealID: mealID, ItemID: itemID}, fmt.Sprintf("Remove item %d from meal %d?", itemID, mealID))
	},
}

func dispatchMealChange(cmd *cobra.Command, action service.MealAction, prompt string) error {
	day, err := parseDateOrToday(mealDate)
	if err != nil {
		return err
	}
	ok, err := confirm(cmd, prompt)
	if err != nil || !ok {
		return err
	}
	ctx := commandContext(cmd)
	client := newClient()
	query := api.MealQuery{Date: service.FormatDate(day)}
	meals, err := client.ListMeals(ctx, query)
	if err != nil {
		return err
	}
	book := service.NewMealBook(query, meals)
	if err := book.Dispatch(ctx, client, action); err != nil {
		return err
	}
	totals := service.DayTotals(service.MealsOn(book.Meals(), day))
	fmt.Fprintf(cmd.OutOrStdout(), "Done. %s now at %s kcal (P %s / C %s / F %s)\n", service.FormatDate(day),
		formatNumber(totals.Calories), formatNumber(totals.Protein), formatNumber(totals.Carbs), formatNumber(totals.Fats))
	return nil
}

func init() {
	mealAddCmd.Flags().StringVar(&mealType, "type", "", "Meal type: breakfast|lunch|dinner|snack")
	mealAddCmd.Flags().StringVar(&mealDate, "date", "", "Date YYYY-MM-DD (default today)")
	mealAddCmd.Flags().StringArrayVar(&mealFoods, "food", nil, "Food as <id>:<grams>, repeatable")
	mealAddCmd.Flags().StringVar(&mealRepeat, "repeat", "none", "Repeat: none|daily|weekly")
	mealAddCmd.Flags().StringVar(&mealUntil, "until", "", "Last date of the repeat YYYY-MM-DD")
	mealAddCmd.Flags().StringSliceVar(&mealDays, "days", nil, "Weekdays for weekly repeat, e.g. mon,wed,fri")
	_ = mealAddCmd.MarkFlagRequired("type")
	_ = mealAddCmd.MarkFlagRequired("food")

	for _, c := range []*cobra.Command{mealDeleteCmd, mealDeleteItemCmd} {
		c.Flags().StringVar(&mealDate, "date", "", "Date of the meal YYYY-MM-DD (default today)")
	}
	mealCmd.AddCommand(mealAddCmd, mealDeleteCmd, mealDeleteItemCmd)
	rootCmd.AddCommand(mealCmd)
}
