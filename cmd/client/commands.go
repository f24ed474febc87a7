package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jo-hoe/proteinlens/internal/client"
	"github.com/jo-hoe/proteinlens/internal/meallog"
	"github.com/spf13/cobra"
)

func newAnalyzeCommand(a *app) *cobra.Command {
	var mealType string
	cmd := &cobra.Command{
		Use:   "analyze <photo>",
		Short: "Estimate the protein in a meal photo and add it to the log",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if !meallog.IsMealType(mealType) {
				return fmt.Errorf("unknown meal type %q, expected one of %s", mealType, strings.Join(meallog.MealTypes, ", "))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			imageURI, err := client.EncodeImageFile(args[0])
			if err != nil {
				return err
			}
			log, err := a.openLog(ctx)
			if err != nil {
				return err
			}

			meal, err := a.uploader().Analyze(ctx, imageURI, mealType)
			if err != nil {
				return err
			}
			if err := log.Add(ctx, meal); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printMeal(out, meal, a.location)
			fmt.Fprintln(out)
			printProgress(out, log.Progress(time.Now()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&mealType, "meal-type", "t", meallog.Lunch, "one of "+strings.Join(meallog.MealTypes, ", "))
	return cmd
}

func newTodayCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "today",
		Aliases: []string{"progress"},
		Short:   "Show today's protein intake against the daily goal",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := a.openLog(cmd.Context())
			if err != nil {
				return err
			}
			printProgress(cmd.OutOrStdout(), log.Progress(time.Now()))
			return nil
		},
	}
}

func newHistoryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List logged meals grouped by day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := a.openLog(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			groups := log.GroupByDay(time.Now())
			if len(groups) == 0 {
				fmt.Fprintln(out, "No meals logged yet.")
				return nil
			}
			for i, group := range groups {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "%s\n", group.Label)
				for _, meal := range group.Meals {
					printMeal(out, meal, a.location)
				}
			}
			return nil
		},
	}
}

func newDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove one meal from the log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := a.openLog(cmd.Context())
			if err != nil {
				return err
			}
			found, err := log.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintf(cmd.OutOrStdout(), "No meal with id %s.\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted meal %s.\n", args[0])
			return nil
		},
	}
}

func newClearCommand(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every meal from the log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear all meals without --yes")
			}
			log, err := a.openLog(cmd.Context())
			if err != nil {
				return err
			}
			if err := log.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All meals cleared.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm clearing the log")
	return cmd
}

func newGoalCommand(a *app) *cobra.Command {
	goal := &cobra.Command{
		Use:   "goal",
		Short: "Show or change the daily protein goal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := a.openLog(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Daily goal: %dg\n", log.Goal())
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <grams>",
		Short: "Set the daily protein goal in grams",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			grams, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("goal must be a whole number of grams: %q", args[0])
			}
			return setGoal(cmd, a, grams)
		},
	}

	var (
		weight float64
		tier   string
		apply  bool
	)
	calc := &cobra.Command{
		Use:   "calc",
		Short: "Suggest a goal from bodyweight and activity level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if weight <= 0 {
				return fmt.Errorf("--weight must be a positive number of kilograms")
			}
			grams := meallog.CalculateGoal(weight, tier)
			fmt.Fprintf(cmd.OutOrStdout(), "Recommended daily goal: %dg (%.1fg per kg)\n", grams, meallog.Multiplier(tier))
			if !apply {
				return nil
			}
			return setGoal(cmd, a, grams)
		},
	}
	calc.Flags().Float64VarP(&weight, "weight", "w", 0, "bodyweight in kilograms")
	calc.Flags().StringVar(&tier, "tier", meallog.Moderate, "activity level: "+strings.Join(meallog.ActivityTiers, ", "))
	calc.Flags().BoolVar(&apply, "apply", false, "save the recommendation as the daily goal")

	goal.AddCommand(set, calc)
	return goal
}

func setGoal(cmd *cobra.Command, a *app, grams int) error {
	log, err := a.openLog(cmd.Context())
	if err != nil {
		return err
	}
	if err := log.SetGoal(cmd.Context(), grams); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Daily goal set to %dg.\n", grams)
	return nil
}

func printMeal(out io.Writer, meal meallog.Meal, location *time.Location) {
	mealType := meal.MealType
	if mealType == "" {
		mealType = "meal"
	}
	fmt.Fprintf(out, "  %s  %-9s  %.1fg protein  [%s]\n", meallog.TimeOfDay(meal.Timestamp, location), mealType, meal.TotalProtein, meal.ID)
	for _, food := range meal.Foods {
		fmt.Fprintf(out, "      %s (%s): %.1fg\n", food.Name, food.Quantity, food.Protein)
	}
}

func printProgress(out io.Writer, p meallog.Progress) {
	fmt.Fprintf(out, "Today: %.1fg / %dg (%.0f%%)\n", p.Current, p.Goal, p.Percentage)
	fmt.Fprintln(out, p.Message)
	if len(p.Suggestions) > 0 {
		fmt.Fprintln(out, "High-protein food suggestions:")
		for _, s := range p.Suggestions {
			fmt.Fprintf(out, "  - %s\n", s)
		}
	}
}
