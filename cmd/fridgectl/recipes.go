package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DaDevFox/fridgemate/internal/grpcapi"
)

func newRecipesCommand() *cobra.Command {
	var (
		search   string
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "recipes",
		Short: "List recipes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext()
			defer cancel()

			resp, err := client.ListRecipes(ctx, &grpcapi.ListRecipesRequest{Search: search, Page: page, PageSize: pageSize})
			if err != nil {
				return fmt.Errorf("list recipes operation failed: %w", err)
			}
			return renderRecipePage(os.Stdout, resp)
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "Case-insensitive name search")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number")
	cmd.Flags().IntVarP(&pageSize, "page-size", "n", 0, "Recipes per page (server default when 0)")

	cmd.AddCommand(newRecipeAddCommand())

	cmd.AddCommand(&cobra.Command{
		Use:   "show <recipe-id>",
		Short: "Show a recipe with its instructions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext()
			defer cancel()

			resp, err := client.GetRecipe(ctx, &grpcapi.GetRecipeRequest{ID: args[0]})
			if err != nil {
				return fmt.Errorf("get recipe operation failed: %w", err)
			}
			return renderRecipe(os.Stdout, resp.Recipe)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "suggest",
		Short: "Suggest recipes from what is in the fridge",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext()
			defer cancel()

			resp, err := client.SuggestRecipes(ctx, &grpcapi.SuggestRecipesRequest{})
			if err != nil {
				return fmt.Errorf("suggest recipes operation failed: %w", err)
			}
			return renderSuggestions(os.Stdout, resp.Suggestions)
		},
	})

	return cmd
}

func newRecipeAddCommand() *cobra.Command {
	var (
		ingredients  string
		serving      int
		instructions string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Save a new recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext()
			defer cancel()

			resp, err := client.AddRecipe(ctx, &grpcapi.AddRecipeRequest{
				Name:         args[0],
				Ingredients:  ingredients,
				Serving:      serving,
				Instructions: instructions,
			})
			if err != nil {
				return fmt.Errorf("add recipe operation failed: %w", err)
			}
			fmt.Printf("Recipe created with ID: %s\n", resp.Recipe.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&ingredients, "ingredients", "i", "", "Comma or semicolon separated ingredients")
	cmd.Flags().IntVar(&serving, "serving", 1, "Number of servings")
	cmd.Flags().StringVar(&instructions, "instructions", "", "Cooking instructions")
	cmd.MarkFlagRequired("ingredients")
	cmd.MarkFlagRequired("instructions")

	return cmd
}
