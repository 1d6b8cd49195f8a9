package fitnutrition

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/madDev-12/fitnutrition/internal/model"
	"github.com/madDev-12/fitnutrition/internal/service"
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Search the food catalog and manage custom foods",
}

var (
	foodPage        int
	foodInteractive bool

	foodName     string
	foodCategory string
	foodCalories float64
	foodProtein  float64
	foodCarbs    float64
	foodFats     float64
	foodServing  float64
	foodUnit     string
)

var foodSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search foods by name",
	Long: "Search foods by name. With --interactive every line read from stdin is a new query; " +
		"typing is debounced and only the latest query's results are shown.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if foodInteractive {
			return interactiveFoodSearch(cmd)
		}
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		foods, err := newClient().SearchFoods(commandContext(cmd), query)
		if err != nil {
			return err
		}
		printFoodPage(cmd.OutOrStdout(), foods, foodPage)
		return nil
	},
}

func interactiveFoodSearch(cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()
	results := make(chan service.SearchResult[model.Food], 64)
	searcher := service.NewSearcher(settings.Search.Debounce, newClient().SearchFoods, func(r service.SearchResult[model.Food]) {
		results <- r
	})
	defer searcher.Close()

	lines := make(chan string)
	go func(lines chan<- string) {
		defer close(lines)
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}(lines)

	fmt.Fprintln(out, "Type a food name and press Enter (Ctrl+D to finish)")
	var last uint64
	pending := false
	for lines != nil || pending {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				lines = nil
				continue
			}
			term := strings.TrimSpace(line)
			if term == "" {
				continue
			}
			last = searcher.Submit(ctx, term)
			pending = true
		case r := <-results:
			if r.Generation != last {
				continue
			}
			pending = false
			if r.Err != nil {
				fmt.Fprintf(out, "search %q failed: %s\n", r.Query, r.Err)
				continue
			}
			fmt.Fprintf(out, "Results for %q\n", r.Query)
			printFoodPage(out, r.Items, 1)
		}
	}
	return nil
}

func printFoodPage(out io.Writer, foods []model.Food, page int) {
	pager := service.NewPager(len(foods), service.FoodsPageSize, page)
	fmt.Fprintln(out, "ID\tNAME\tKCAL\tPROTEIN\tCARBS\tFAT\tSERVING\tCUSTOM")
	for _, f := range service.PageSlice(foods, pager) {
		custom := ""
		if f.IsCustom {
			custom = "yes"
		}
		fmt.Fprintf(out, "%d\t%s\t%s\t%s\t%s\t%s\t%s%s\t%s\n", f.ID, f.Name, formatNumber(float64(f.Calories)),
			formatNumber(float64(f.Protein)), formatNumber(float64(f.Carbohydrates)), formatNumber(float64(f.Fats)),
			formatNumber(float64(f.ServingSize)), f.Unit, custom)
	}
	fmt.Fprintf(out, "%s (page %d/%d)\n", pager.Label(), pager.Page, pager.Pages())
}

var foodAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a custom food",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := model.FoodInput{
			Name:          strings.TrimSpace(foodName),
			Category:      strings.TrimSpace(foodCategory),
			Calories:      foodCalories,
			Protein:       foodProtein,
			Carbohydrates: foodCarbs,
			Fats:          foodFats,
			ServingSize:   foodServing,
			Unit:          foodUnit,
		}
		if err := service.ValidateFoodInput(in); err != nil {
			return err
		}
		f, err := newClient().CreateFood(commandContext(cmd), in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created food %d (%s)\n", f.ID, f.Name)
		return nil
	},
}

var foodUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a custom food; only the given flags change",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("food id", args[0])
		if err != nil {
			return err
		}
		ctx := commandContext(cmd)
		client := newClient()
		current, err := client.GetFood(ctx, id)
		if err != nil {
			return err
		}
		if err := service.EnsureCustomFood(current); err != nil {
			return err
		}
		in := model.FoodInput{
			Name:          current.Name,
			Category:      current.Category,
			Calories:      float64(current.Calories),
			Protein:       float64(current.Protein),
			Carbohydrates: float64(current.Carbohydrates),
			Fats:          float64(current.Fats),
			ServingSize:   float64(current.ServingSize),
			Unit:          current.Unit,
		}
		flags := cmd.Flags()
		if flags.Changed("name") {
			in.Name = strings.TrimSpace(foodName)
		}
		if flags.Changed("category") {
			in.Category = strings.TrimSpace(foodCategory)
		}
		if flags.Changed("unit") {
			in.Unit = foodUnit
		}
		for _, f := range []struct {
			flag string
			src  float64
			dst  *float64
		}{
			{"calories", foodCalories, &in.Calories},
			{"protein", foodProtein, &in.Protein},
			{"carbs", foodCarbs, &in.Carbohydrates},
			{"fats", foodFats, &in.Fats},
			{"serving", foodServing, &in.ServingSize},
		} {
			if v := changedFloat(cmd, f.flag, f.src); v != nil {
				*f.dst = *v
			}
		}
		if err := service.ValidateFoodInput(in); err != nil {
			return err
		}
		f, err := client.UpdateFood(ctx, id, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated food %d (%s)\n", f.ID, f.Name)
		return nil
	},
}

var foodDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a custom food",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("food id", args[0])
		if err != nil {
			return err
		}
		ctx := commandContext(cmd)
		client := newClient()
		current, err := client.GetFood(ctx, id)
		if err != nil {
			return err
		}
		if err := service.EnsureCustomFood(current); err != nil {
			return err
		}
		ok, err := confirm(cmd, fmt.Sprintf("Delete food %d (%s)?", id, current.Name))
		if err != nil || !ok {
			return err
		}
		if err := client.DeleteFood(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted food %d\n", id)
		return nil
	},
}

var foodFavoriteCmd = &cobra.Command{
	Use:   "favorite <id>",
	Short: "Toggle a food as favorite",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("food id", args[0])
		if err != nil {
			return err
		}
		if err := newClient().ToggleFavorite(commandContext(cmd), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Toggled favorite for food %d\n", id)
		return nil
	},
}

var foodFavoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List favorite foods",
	RunE: func(cmd *cobra.Command, args []string) error {
		favs, err := newClient().ListFavorites(commandContext(cmd))
		if err != nil {
			return err
		}
		foods := make([]model.Food, 0, len(favs))
		for _, f := range favs {
			foods = append(foods, f.Food)
		}
		printFoodPage(cmd.OutOrStdout(), foods, foodPage)
		return nil
	},
}

func init() {
	foodSearchCmd.Flags().IntVar(&foodPage, "page", 1, "Result page")
	foodSearchCmd.Flags().BoolVarP(&foodInteractive, "interactive", "i", false, "Read queries from stdin")
	foodFavoritesCmd.Flags().IntVar(&foodPage, "page", 1, "Result page")

	for _, c := range []*cobra.Command{foodAddCmd, foodUpdateCmd} {
		c.Flags().StringVar(&foodName, "name", "", "Food name")
		c.Flags().StringVar(&foodCategory, "category", "", "Category")
		c.Flags().Float64Var(&foodCalories, "calories", 0, "Calories per serving")
		c.Flags().Float64Var(&foodProtein, "protein", 0, "Protein grams per serving")
		c.Flags().Float64Var(&foodCarbs, "carbs", 0, "Carbohydrate grams per serving")
		c.Flags().Float64Var(&foodFats, "fats", 0, "Fat grams per serving")
		c.Flags().Float64Var(&foodServing, "serving", 100, "Serving size")
		c.Flags().StringVar(&foodUnit, "unit", "g", "Serving unit")
	}
	_ = foodAddCmd.MarkFlagRequired("name")

	foodCmd.AddCommand(foodSearchCmd, foodAddCmd, foodUpdateCmd, foodDeleteCmd, foodFavoriteCmd, foodFavoritesCmd)
	rootCmd.AddCommand(foodCmd)
}
