// Package main provides the CLI entrypoint for the sentiment posts API.
// It wires subcommands (serve, migrate, posts), loads configuration, and initializes logging.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"sentiment/internal/config"
	"sentiment/pkg/logger"
	"sentiment/pkg/storage"
	"sentiment/pkg/storage/mongo"
	"sentiment/pkg/storage/postgres"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// getPostgres creates a PostgreSQL client using configuration values and returns it
// along with a cleanup function to close the connection pool.
func getPostgres(ctx context.Context, cfg *config.Config) (*postgres.PgSQL, func()) {
	pgsql, err := postgres.New(ctx, postgres.Options{
		Username:           cfg.Database.Username,
		Password:           cfg.Database.Password,
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		Database:           cfg.Database.DatabaseName,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime:    cfg.Database.ConnMaxIdleTime,
		MaxOpenConnections: cfg.Database.MaxOpenConnections,
		MaxIdleConnections: cfg.Database.MaxIdleConnections,
		SslMode:            cfg.Database.SslMode,
	})
	if err != nil {
		logger.Fatal(ctx, "could not create postgres storage", zap.Error(err))
	}

	return pgsql, func() {
		logger.Info(ctx, "closing postgres client...")
		if err = pgsql.Close(ctx); err != nil {
			logger.Warn(ctx, "could not close postgres connection", zap.Error(err))
		}
	}
}

// getMongo creates the process-wide MongoDB client and returns it along with
// a cleanup function disconnecting it.
func getMongo(ctx context.Context, cfg *config.Config) (*mongo.Mongo, func()) {
	mg, err := mongo.New(ctx, mongo.Options{
		URI:                    cfg.MongoDB.URI,
		Database:               cfg.MongoDB.Database,
		Collection:             cfg.MongoDB.Collection,
		MaxPoolSize:            cfg.MongoDB.MaxPoolSize,
		MinPoolSize:            cfg.MongoDB.MinPoolSize,
		ConnectTimeout:         cfg.MongoDB.ConnectTimeout,
		ServerSelectionTimeout: cfg.MongoDB.ServerSelectionTimeout,
		Logger:                 logger.Slog(ctx).With("component", "mongo"),
	})
	if err != nil {
		logger.Fatal(ctx, "could not create mongo storage", zap.Error(err))
	}

	return mg, func() {
		logger.Info(ctx, "closing mongo client...")
		if err = mg.Close(ctx); err != nil {
			logger.Warn(ctx, "could not close mongo client", zap.Error(err))
		}
	}
}

// getStorage opens the configured backend wrapped with query metrics.
func getStorage(ctx context.Context, cfg *config.Config) (storage.Storage, func()) {
	switch cfg.StorageDriver {
	case storage.DriverPostgres:
		pg, closePg := getPostgres(ctx, cfg)

		return storage.WithMetrics(storage.DriverPostgres, pg), closePg
	case storage.DriverMongo:
		mg, closeMg := getMongo(ctx, cfg)

		return storage.WithMetrics(storage.DriverMongo, mg), closeMg
	default:
		logger.Fatal(ctx, "could not open storage",
			zap.Error(storage.ErrUnknownDriver), zap.String("driver", cfg.StorageDriver))

		return nil, nil
	}
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use: "sentiment",
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	configPath := flags.String("c", "config.yml", "The config file path")
	// subcommand arguments and flags are cobra's business
	_ = flags.Parse(configArgs(os.Args[1:]))

	log.Println("loading config ...")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("could not load config file: ", err)
	}

	logger.Setup(cfg.Environment)

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			logger.Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		serveCommand(cfg),
		migrateCommand(cfg),
		postsCommand(cfg),
	)

	err = rootCmd.Execute()
	logger.Sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}

// configArgs extracts the -c/--config flag from args so it can be read
// before cobra parses the command line.
func configArgs(args []string) []string {
	for i, arg := range args {
		if (arg == "-c" || arg == "--config") && i+1 < len(args) {
			return []string{"-c", args[i+1]}
		}
		if v, ok := strings.CutPrefix(arg, "-c="); ok {
			return []string{"-c=" + v}
		}
		if v, ok := strings.CutPrefix(arg, "--config="); ok {
			return []string{"-c=" + v}
		}
	}

	return nil
}
