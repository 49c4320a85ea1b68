package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DaDevFox/fridgemate/internal/grpcapi"
)

func newShoppingCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "shop",
		Short:   "Show the shopping list",
		Aliases: []string{"shopping"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext()
			defer cancel()

			resp, err := client.ListShoppingEntries(ctx, &grpcapi.ListShoppingEntriesRequest{})
			if err != nil {
				return fmt.Errorf("list shopping operation failed: %w", err)
			}
			return renderShoppingList(os.Stdout, resp.Entries)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <note>",
		Short: "Add an entry to the shopping list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext()
			defer cancel()

			resp, err := client.AddShoppingEntry(ctx, &grpcapi.AddShoppingEntryRequest{Name: strings.Join(args, " ")})
			if err != nil {
				return fmt.Errorf("add shopping entry operation failed: %w", err)
			}
			fmt.Printf("Added %s (ID: %s)\n", resp.Entry.Name, resp.Entry.ID)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle <entry-id>",
		Short: "Mark an entry as bought or not bought",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext()
			defer cancel()

			resp, err := client.ToggleShoppingEntry(ctx, &grpcapi.ToggleShoppingEntryRequest{ID: args[0]})
			if err != nil {
				return fmt.Errorf("toggle shopping entry operation failed: %w", err)
			}
			fmt.Printf("%s %s\n", boughtMark(resp.Entry.Bought), resp.Entry.Name)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Empty the shopping list",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext()
			defer cancel()

			resp, err := client.ClearShoppingList(ctx, &grpcapi.ClearShoppingListRequest{})
			if err != nil {
				return fmt.Errorf("clear shopping list operation failed: %w", err)
			}
			fmt.Printf("Removed %d entr(ies)\n", resp.Deleted)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "move",
		Short: "Put the bought entries into the fridge",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext()
			defer cancel()

			resp, err := client.MoveBoughtToFridge(ctx, &grpcapi.MoveBoughtToFridgeRequest{})
			if err != nil {
				return fmt.Errorf("move bought entries operation failed: %w", err)
			}
			for _, item := range resp.Items {
				fmt.Printf("Added %s (ID: %s)\n", item.Name, item.ID)
			}
			fmt.Printf("Moved %d product(s) into the fridge\n", len(resp.Items))
			return nil
		},
	})

	return cmd
}
