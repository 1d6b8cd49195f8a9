package fitnutrition

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/madDev-12/fitnutrition/internal/model"
	"github.com/madDev-12/fitnutrition/internal/service"
	"github.com/madDev-12/fitnutrition/internal/store"
)

var recipeCmd = &cobra.Command{
	Use:   "recipe",
	Short: "Browse and manage recipes",
}

var (
	recipeSearch    string
	recipePage      int
	recipeFavorites bool

	recipeName     string
	recipeDesc     string
	recipeCalories float64
	recipeProtein  float64
	recipeCarbs    float64
	recipeFats     float64
	recipeTime     string
	recipeServings string
	recipeImage    string
)

func loadRecipeFavorites() ([]int64, error) {
	var ids []int64
	err := withStore(func(s *store.Store) error {
		v, err := s.RecipeFavorites()
		ids = v
		return err
	})
	return ids, err
}

var recipeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recipes",
	RunE: func(cmd *cobra.Command, args []string) error {
		recipes, err := newClient().ListRecipes(commandContext(cmd))
		if err != nil {
			return err
		}
		favorites, err := loadRecipeFavorites()
		if err != nil {
			return err
		}
		if recipeFavorites {
			recipes = service.OnlyFavoriteRecipes(recipes, favorites)
		}
		recipes = service.FilterRecipes(recipes, recipeSearch)
		starred := make(map[int64]bool, len(favorites))
		for _, id := range favorites {
			starred[id] = true
		}
		pager := service.NewPager(len(recipes), service.RecipesPageSize, recipePage)

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "ID\tNAME\tKCAL\tPROTEIN\tCARBS\tFAT\tTIME\tSERVINGS\tFAV")
		for _, r := range service.PageSlice(recipes, pager) {
			star := ""
			if starred[r.ID] {
				star = "*"
			}
			fmt.Fprintf(out, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.Name, formatNumber(float64(r.Calories)),
				formatNumber(float64(r.Protein)), formatNumber(float64(r.Carbs)), formatNumber(float64(r.Fats)), r.Time, r.Servings, star)
		}
		fmt.Fprintf(out, "%s (page %d/%d)\n", pager.Label(), pager.Page, pager.Pages())
		return nil
	},
}

var recipeShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("recipe id", args[0])
		if err != nil {
			return err
		}
		r, err := newClient().GetRecipe(commandContext(cmd), id)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n", r.Name)
		if r.Description != "" {
			fmt.Fprintf(out, "%s\n", r.Description)
		}
		fmt.Fprintf(out, "kcal\t%s\nprotein g\t%s\ncarbs g\t%s\nfat g\t%s\ntime\t%s\nservings\t%s\n",
			formatNumber(float64(r.Calories)), formatNumber(float64(r.Protein)), formatNumber(float64(r.Carbs)),
			formatNumber(float64(r.Fats)), r.Time, r.Servings)
		if r.Image != "" {
			fmt.Fprintf(out, "image\t%s\n", r.Image)
		}
		return nil
	},
}

func recipeInputFromFlags() model.RecipeInput {
	return model.RecipeInput{
		Name:        strings.TrimSpace(recipeName),
		Description: strings.TrimSpace(recipeDesc),
		Calories:    recipeCalories,
		Protein:     recipeProtein,
		Carbs:       recipeCarbs,
		Fats:        recipeFats,
		Time:        strings.TrimSpace(recipeTime),
		Servings:    strings.TrimSpace(recipeServings),
		ImagePath:   strings.TrimSpace(recipeImage),
	}
}

var recipeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a recipe",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := recipeInputFromFlags()
		if err := service.ValidateRecipeInput(in); err != nil {
			return err
		}
		r, err := newClient().CreateRecipe(commandContext(cmd), in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created recipe %d (%s)\n", r.ID, r.Name)
		return nil
	},
}

var recipeUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a recipe; only the given flags change",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("recipe id", args[0])
		if err != nil {
			return err
		}
		ctx := commandContext(cmd)
		client := newClient()
		current, err := client.GetRecipe(ctx, id)
		if err != nil {
			return err
		}
		in := model.RecipeInput{
			Name:        current.Name,
			Description: current.Description,
			Calories:    float64(current.Calories),
			Protein:     float64(current.Protein),
			Carbs:       float64(current.Carbs),
			Fats:        float64(current.Fats),
			Time:        current.Time,
			Servings:    current.Servings,
		}
		set := recipeInputFromFlags()
		flags := cmd.Flags()
		if flags.Changed("name") {
			in.Name = set.Name
		}
		if flags.Changed("description") {
			in.Description = set.Description
		}
		if flags.Changed("calories") {
			in.Calories = set.Calories
		}
		if flags.Changed("protein") {
			in.Protein = set.Protein
		}
		if flags.Changed("carbs") {
			in.Carbs = set.Carbs
		}
		if flags.Changed("fats") {
			in.Fats = set.Fats
		}
		if flags.Changed("time") {
			in.Time = set.Time
		}
		if flags.Changed("servings") {
			in.Servings = set.Servings
		}
		in.ImagePath = set.ImagePath
		if err := service.ValidateRecipeInput(in); err != nil {
			return err
		}
		r, err := client.UpdateRecipe(ctx, id, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated recipe %d (%s)\n", r.ID, r.Name)
		return nil
	},
}

var recipeDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("recipe id", args[0])
		if err != nil {
			return err
		}
		ok, err := confirm(cmd, fmt.Sprintf("Delete recipe %d?", id))
		if err != nil || !ok {
			return err
		}
		if err := newClient().DeleteRecipe(commandContext(cmd), id); err != nil {
			return err
		}
		err = withStore(func(s *store.Store) error {
			ids, err := s.RecipeFavorites()
			if err != nil {
				return err
			}
			kept := make([]int64, 0, len(ids))
			for _, v := range ids {
				if v != id {
					kept = append(kept, v)
				}
			}
			return s.SetRecipeFavorites(kept)
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted recipe %d\n", id)
		return nil
	},
}

var recipeFavoriteCmd = &cobra.Command{
	Use:   "favorite <id>",
	Short: "Toggle a recipe as favorite on this machine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("recipe id", args[0])
		if err != nil {
			return err
		}
		var now bool
		if err := withStore(func(s *store.Store) error {
			v, err := s.ToggleRecipeFavorite(id)
			now = v
			return err
		}); err != nil {
			return err
		}
		if now {
			fmt.Fprintf(cmd.OutOrStdout(), "Recipe %d added to favorites\n", id)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Recipe %d removed from favorites\n", id)
		}
		return nil
	},
}

func init() {
	recipeListCmd.Flags().StringVar(&recipeSearch, "search", "", "Filter by name or description")
	recipeListCmd.Flags().IntVar(&recipePage, "page", 1, "Result page")
	recipeListCmd.Flags().BoolVar(&recipeFavorites, "favorites", false, "Only show favorites")

	for _, c := range []*cobra.Command{recipeAddCmd, recipeUpdateCmd} {
		c.Flags().StringVar(&recipeName, "name", "", "Recipe name")
		c.Flags().StringVar(&recipeDesc, "description", "", "Description")
		c.Flags().Float64Var(&recipeCalories, "calories", 0, "Calories per serving")
		c.Flags().Float64Var(&recipeProtein, "protein", 0, "Protein grams")
		c.Flags().Float64Var(&recipeCarbs, "carbs", 0, "Carbohydrate grams")
		c.Flags().Float64Var(&recipeFats, "fats", 0, "Fat grams")
		c.Flags().StringVar(&recipeTime, "time", "", "Preparation time, e.g. 20 min")
		c.Flags().StringVar(&recipeServings, "servings", "", "Servings")
		c.Flags().StringVar(&recipeImage, "image", "", "Path to an image to upload")
	}
	_ = recipeAddCmd.MarkFlagRequired("name")

	recipeCmd.AddCommand(recipeListCmd, recipeShowCmd, recipeAddCmd, recipeUpdateCmd, recipeDeleteCmd, recipeFavoriteCmd)
	rootCmd.AddCommand(recipeCmd)
}
