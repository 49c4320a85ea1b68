package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"github.com/DaDevFox/fridgemate/internal/domain"
	"github.com/DaDevFox/fridgemate/internal/grpcapi"
	"github.com/DaDevFox/fridgemate/internal/view"
)

const (
	defaultServerAddr = "localhost:50052"
	requestTimeout    = 10 * time.Second
)

var (
	serverAddr string
	conn       *grpc.ClientConn
	client     *grpcapi.Client
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "fridgectl",
		Short:        "FridgeMate command line client",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			conn, err = grpcapi.Dial(serverAddr)
			if err != nil {
				return fmt.Errorf("failed to connect to server at %s: %w", serverAddr, err)
			}
			client = grpcapi.NewClient(conn)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if conn != nil {
				conn.Close()
			}
		},
	}

	defaultAddr := os.Getenv("FRIDGEMATE_SERVER")
	if defaultAddr == "" {
		defaultAddr = defaultServerAddr
	}
	rootCmd.PersistentFlags().StringVar(&serverAddr, "server", defaultAddr, "Server address")

	rootCmd.AddCommand(newAddCommand())
	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newRemoveCommand())
	rootCmd.AddCommand(newPurgeExpiredCommand())
	rootCmd.AddCommand(newTypesCommand())
	rootCmd.AddCommand(newBudgetCommand())
	rootCmd.AddCommand(newNotificationsCommand())
	rootCmd.AddCommand(newRecipesCommand())
	rootCmd.AddCommand(newShoppingCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Command execution failed: %v\n", err)
		os.Exit(1)
	}
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

func newAddCommand() *cobra.Command {
	var (
		productType string
		amount      float64
		unit        string
		added       string
		expiry      string
		price       string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Put a product into the fridge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &grpcapi.AddItemRequest{
				Name:       args[0],
				Type:       productType,
				Quantity:   domain.Quantity{Amount: amount, Unit: unit},
				AddedDate:  added,
				ExpiryDate: expiry,
			}
			if price != "" {
				value, err := decimal.NewFromString(price)
				if err != nil {
					return fmt.Errorf("invalid price %q: %w", price, err)
				}
				req.Price = value
			}

			ctx, cancel := requestContext()
			defer cancel()

			resp, err := client.AddItem(ctx, req)
			if err != nil {
				return fmt.Errorf("add item operation failed: %w", err)
			}

			fmt.Printf("Added %s (ID: %s), expires %s\n", resp.Item.Name, resp.Item.ID, formatExpiry(resp.Item.ExpiryDate))
			return nil
		},
	}

	cmd.Flags().StringVarP(&productType, "type", "t", "", "Product type ID, e.g. milk")
	cmd.Flags().Float64VarP(&amount, "qty", "q", 1, "Quantity")
	cmd.Flags().StringVar(&unit, "unit", "", "Quantity unit (defaults to the product type's unit)")
	cmd.Flags().StringVar(&added, "added", "", "Added date, YYYY-MM-DD or DD.MM.YYYY (default today)")
	cmd.Flags().StringVarP(&expiry, "expiry", "e", "", "Expiry date, YYYY-MM-DD or DD.MM.YYYY")
	cmd.Flags().StringVar(&price, "price", "", "Price paid")

	return cmd
}

func newListCommand() *cobra.Command {
	var (
		search   string
		filter   string
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the inventory",
		RunE: func(cmd *cobra.Command, args []string) error {
			state := view.ViewState{
				SearchText:   search,
				ActiveFilter: domain.ParseFilterTag(filter),
				PageSize:     pageSize,
				CurrentPage:  page,
			}

			ctx, cancel := requestContext()
			defer cancel()

			resp, err := client.ListItems(ctx, &grpcapi.ListItemsRequest{State: state})
			if err != nil {
				return fmt.Errorf("list items operation failed: %w", err)
			}

			return renderItemPage(os.Stdout, resp)
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Case-insensitive name search")
	cmd.Flags().StringVarP(&filter, "filter", "f", "All", "All, Expired or Recommend")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number")
	cmd.Flags().IntVarP(&pageSize, "page-size", "n", 0, "Items per page (server default when 0)")

	return cmd
}

func newRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <item-id>",
		Short:   "Remove an item",
		Aliases: []string{"remove"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext()
			defer cancel()

			if _, err := client.DeleteItem(ctx, &grpcapi.DeleteItemRequest{ID: args[0]}); err != nil {
				return fmt.Errorf("remove item operation failed: %w", err)
			}
			fmt.Printf("Removed item %s\n", args[0])
			return nil
		},
	}
}

func newPurgeExpiredCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "purge-expired",
		Short: "Remove all expired items",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext()
			defer cancel()

			resp, err := client.DeleteExpired(ctx, &grpcapi.DeleteExpiredRequest{})
			if err != nil {
				return fmt.Errorf("purge operation failed: %w", err)
			}
			fmt.Printf("Removed %d expired item(s)\n", resp.Deleted)
			return nil
		},
	}
}

func newTypesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List product types",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext()
			defer cancel()

			resp, err := client.ListProductTypes(ctx, &grpcapi.ListProductTypesRequest{})
			if err != nil {
				return fmt.Errorf("list types operation failed: %w", err)
			}
			return renderProductTypes(os.Stdout, resp.Types)
		},
	}
}

func newBudgetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Show or manage the household budget",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext()
			defer cancel()

			resp, err := client.GetBudget(ctx, &grpcapi.GetBudgetRequest{})
			if err != nil {
				return fmt.Errorf("get budget operation failed: %w", err)
			}
			return renderBudget(os.Stdout, resp)
		},
	}

	amountCommand := func(use, short string, call func(context.Context, decimal.Decimal) (*grpcapi.BudgetResponse, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				amount, err := decimal.NewFromString(args[0])
				if err != nil {
					return fmt.Errorf("invalid amount %q: %w", args[0], err)
				}

				ctx, cancel := requestContext()
				defer cancel()

				resp, err := call(ctx, amount)
				if err != nil {
					return fmt.Errorf("budget operation failed: %w", err)
				}
				return renderBudget(os.Stdout, resp)
			},
		}
	}

	cmd.AddCommand(amountCommand("create <total>", "Start a new budget", func(ctx context.Context, amount decimal.Decimal) (*grpcapi.BudgetResponse, error) {
		return client.CreateBudget(ctx, &grpcapi.CreateBudgetRequest{Total: amount})
	}))
	cmd.AddCommand(amountCommand("expense <amount>", "Record an expense", func(ctx context.Context, amount decimal.Decimal) (*grpcapi.BudgetResponse, error) {
		return client.AddExpense(ctx, &grpcapi.AddExpenseRequest{Amount: amount})
	}))
	cmd.AddCommand(amountCommand("set-limit <total>", "Change the budget total", func(ctx context.Context, amount decimal.Decimal) (*grpcapi.BudgetResponse, error) {
		return client.UpdateBudgetLimit(ctx, &grpcapi.UpdateBudgetLimitRequest{Total: amount})
	}))

	return cmd
}

func newNotificationsCommand() *cobra.Command {
	var notificationType string

	cmd := &cobra.Command{
		Use:     "notifications",
		Short:   "List notifications, newest first",
		Aliases: []string{"notif"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext()
			defer cancel()

			resp, err := client.ListNotifications(ctx, &grpcapi.ListNotificationsRequest{
				Type: domain.NotificationType(notificationType),
			})
			if err != nil {
				return fmt.Errorf("list notifications operation failed: %w", err)
			}
			return renderNotifications(os.Stdout, resp.Notifications)
		},
	}
	cmd.Flags().StringVarP(&notificationType, "type", "t", "", "EXP, SON or BGT")

	cmd.AddCommand(&cobra.Command{
		Use:   "scan",
		Short: "Check the inventory for expired and expiring items now",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext()
			defer cancel()

			resp, err := client.ScanNotifications(ctx, &grpcapi.ScanNotificationsRequest{})
			if err != nil {
				return fmt.Errorf("scan operation failed: %w", err)
			}
			return renderNotifications(os.Stdout, resp.Created)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <notification-id>",
		Short: "Dismiss a notification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext()
			defer cancel()

			if _, err := client.DeleteNotification(ctx, &grpcapi.DeleteNotificationRequest{ID: args[0]}); err != nil {
				return fmt.Errorf("remove notification operation failed: %w", err)
			}
			fmt.Printf("Removed notification %s\n", args[0])
			return nil
		},
	})

	return cmd
}
