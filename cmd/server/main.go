package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/DaDevFox/fridgemate/internal/config"
	"github.com/DaDevFox/fridgemate/internal/events"
	"github.com/DaDevFox/fridgemate/internal/grpcapi"
	"github.com/DaDevFox/fridgemate/internal/logging"
	"github.com/DaDevFox/fridgemate/internal/repository"
	"github.com/DaDevFox/fridgemate/internal/service"
)

const serviceName = "fridgemate"

func main() {
	rootCmd := &cobra.Command{
		Use:          "fridgemate-server",
		Short:        "FridgeMate household inventory server",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newServeCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Command execution failed: %v\n", err)
		os.Exit(1)
	}
}

func newServeCommand() *cobra.Command {
	var (
		port   int
		dbPath string
		dbType string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the gRPC server and the notification loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			// Flags win over file and environment.
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("db-path") {
				cfg.Database.Path = dbPath
			}
			if cmd.Flags().Changed("db-type") {
				cfg.Database.Type = dbType
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, logging.New(cfg.Log.Level, cfg.Log.Format))
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "gRPC port (overrides config)")
	cmd.Flags().StringVar(&dbPath, "db-path", "", "Database path (overrides config)")
	cmd.Flags().StringVar(&dbType, "db-type", "", "Database backend: bolt or badger (overrides config)")

	return cmd
}

func serve(ctx context.Context, cfg config.Config, logger *logrus.Logger) error {
	dbType, err := repository.ParseDatabaseType(cfg.Database.Type)
	if err != nil {
		return err
	}

	repo, err := repository.NewInventoryRepository(cfg.Database.Path, dbType)
	if err != nil {
		return fmt.Errorf("failed to initialize repository: %w", err)
	}
	defer repo.Close()

	eventBus := events.NewEventBus(serviceName, logger)
	defer eventBus.Close()
	subscribeAuditLog(eventBus, logger)

	clock := service.SystemClock{}
	budgets := service.NewBudgetService(repo, eventBus, clock, logger)
	inventory := service.NewInventoryService(repo, budgets, eventBus, clock, logger)
	notifications := service.NewNotificationService(repo, clock, logger)
	recipes := service.NewRecipeService(repo, inventory, eventBus, clock, logger)
	shopping := service.NewShoppingService(repo, inventory, clock, logger)

	server := grpcapi.NewServer(inventory, budgets, notifications, recipes, shopping, cfg.View.PageSize, logger)
	grpcServer, healthServer := grpcapi.NewGRPCServer(server, logger)

	lis, err := net.Listen("tcp", cfg.Address())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Address(), err)
	}

	logger.WithFields(logrus.Fields{
		"address": cfg.Address(),
		"db_path": cfg.Database.Path,
		"db_type": dbType,
	}).Info("starting fridgemate gRPC server")

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return grpcServer.Serve(lis)
	})

	g.Go(func() error {
		return notifications.Run(ctx, cfg.Notifications.ScanInterval, cfg.Notifications.Retention)
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down fridgemate server")
		healthServer.Shutdown()
		grpcServer.GracefulStop()
		return nil
	})

	return g.Wait()
}

// subscribeAuditLog records every domain event in the server log.
func subscribeAuditLog(bus *events.EventBus, logger *logrus.Logger) {
	for _, eventType := range []events.EventType{events.ItemAdded, events.ItemRemoved, events.ItemsExpired, events.BudgetExceeded, events.RecipeAdded} {
		bus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
			logger.WithFields(logrus.Fields{
				"event_id":   event.ID,
				"event_type": event.Type,
				"payload":    fmt.Sprintf("%+v", event.Payload),
			}).Debug("event published")
			return nil
		})
	}
}
