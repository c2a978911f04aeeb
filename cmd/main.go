package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pizzeria/internal/catalog"
	"pizzeria/internal/config"
	"pizzeria/internal/database"
	"pizzeria/internal/logger"
	"pizzeria/internal/messaging"
	"pizzeria/internal/services/notification"
	"pizzeria/internal/services/recorder"
	"pizzeria/internal/session"
	"pizzeria/internal/tui"
)

func main() {
	var (
		mode       = flag.String("mode", "session", "Run mode (session, seed-catalog, order-recorder, notification-subscriber)")
		configPath = flag.String("config", "config.yaml", "Path to the YAML config file")
		prefetch   = flag.Int("prefetch", 1, "RabbitMQ prefetch count")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// The session owns the terminal, so its logs go to a file.
	logPath := ""
	if *mode == "session" {
		logPath = cfg.Log.Path
	}
	log, err := logger.NewWithOptions(*mode, logger.Options{Level: cfg.Log.Level, Path: logPath})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	requestID := logger.GenerateRequestID()
	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode":   *mode,
		"config": *configPath,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case "session":
		err = runSession(ctx, cfg, log)
	case "seed-catalog":
		err = runSeedCatalog(ctx, cfg, log)
	case "order-recorder":
		err = runOrderRecorder(ctx, cfg, log, *prefetch)
	case "notification-subscriber":
		err = runNotificationSubscriber(ctx, cfg, log, *prefetch)
	default:
		err = fmt.Errorf("unknown mode: %s", *mode)
	}
	if err != nil {
		log.Error("service_failed", fmt.Sprintf("%s failed", *mode), requestID, err, nil)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		log.Sync()
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// runSession runs the interactive session until the user quits
func runSession(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	requestID := logger.GenerateRequestID()

	cat, err := loadCatalog(ctx, cfg, log)
	if err != nil {
		return err
	}

	loc, err := time.LoadLocation(cfg.Session.Timezone)
	if err != nil {
		return fmt.Errorf("invalid session.timezone %q: %w", cfg.Session.Timezone, err)
	}

	var sink session.EventSink = session.LogSink{Logger: log}
	if cfg.RabbitMQ.Enabled {
		conn, err := messaging.New(cfg, log)
		if err != nil {
			return fmt.Errorf("failed to initialize messaging: %w", err)
		}
		defer conn.Close()
		sink = messaging.NewSessionSink(messaging.NewPublisher(conn, log))
	}

	s := session.New(cat, session.Options{
		DeliveryFee: cfg.Session.DeliveryFee,
		Location:    loc,
		Sink:        sink,
		Logger:      log,
	})

	log.Info("session_started", "Session ready", requestID, map[string]interface{}{
		"menu_items":   cat.Len(),
		"delivery_fee": cfg.Session.DeliveryFee,
		"timezone":     loc.String(),
		"broker":       cfg.RabbitMQ.Enabled,
	})

	p := tea.NewProgram(tui.New(ctx, s, cfg.Session.Currency), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}

// loadCatalog builds the menu from the configured source
func loadCatalog(ctx context.Context, cfg *config.Config, log *logger.Logger) (*catalog.Catalog, error) {
	switch cfg.Catalog.Source {
	case config.SourcePostgres:
		db, err := database.New(ctx, cfg, log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()
		return catalog.Load(ctx, database.NewPostgresMenuStore(db))
	case config.SourceSQLite:
		db, err := database.OpenSQLite(cfg.Catalog.SQLitePath)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		if err := database.RunSQLiteMigrations(db, cfg.Catalog.MigrationsPath, log); err != nil {
			return nil, err
		}
		return catalog.Load(ctx, database.NewSQLiteMenuStore(db))
	default:
		return catalog.Load(ctx, catalog.Builtin{})
	}
}

// runSeedCatalog writes the shipped menu into the configured store
func runSeedCatalog(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	requestID := logger.GenerateRequestID()
	items := catalog.BuiltinItems()

	switch cfg.Catalog.Source {
	case config.SourcePostgres:
		if err := database.RunMigrations(cfg.MigrationURL(), cfg.Catalog.MigrationsPath, log); err != nil {
			return err
		}
		db, err := database.New(ctx, cfg, log)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()
		if err := database.NewPostgresMenuStore(db).UpsertMenu(ctx, items); err != nil {
			return err
		}
	case config.SourceSQLite:
		db, err := database.OpenSQLite(cfg.Catalog.SQLitePath)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := database.RunSQLiteMigrations(db, cfg.Catalog.MigrationsPath, log); err != nil {
			return err
		}
		if err := database.NewSQLiteMenuStore(db).UpsertMenu(ctx, items); err != nil {
			return err
		}
	default:
		return fmt.Errorf("catalog.source must be %s or %s to seed", config.SourcePostgres, config.SourceSQLite)
	}

	log.Info("catalog_seeded", "Seeded menu items", requestID, map[string]interface{}{
		"source": cfg.Catalog.Source,
		"items":  len(items),
	})
	return nil
}

// runOrderRecorder stores finalized orders and confirmed reservations
func runOrderRecorder(ctx context.Context, cfg *config.Config, log *logger.Logger, prefetch int) error {
	if err := database.RunMigrations(cfg.PostgresMigrationURL(), cfg.Catalog.MigrationsPath, log); err != nil {
		return err
	}

	db, err := database.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	publisher := messaging.NewPublisher(conn, log)
	service := recorder.NewService(database.NewOrderRepository(db), publisher, log)

	orders := messaging.NewConsumer(conn, log, messaging.QueueOrdersFinalized, "order-recorder-orders", prefetch)
	reservations := messaging.NewConsumer(conn, log, messaging.QueueReservationsConfirmed, "order-recorder-reservations", prefetch)

	return recorder.New(service, orders, reservations, fmt.Sprintf(":%d", cfg.HTTP.Port), log).Run(ctx)
}

// runNotificationSubscriber prints customer notices to stdout
func runNotificationSubscriber(ctx context.Context, cfg *config.Config, log *logger.Logger, prefetch int) error {
	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	consumer := messaging.NewConsumer(conn, log, messaging.QueueNotifications, "notification-subscriber", prefetch)
	return notification.NewSubscriber(consumer, os.Stdout, log).Start(ctx)
}
