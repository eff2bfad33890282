package main

import (
	"context"
	root "sentiment"
	"sentiment/internal/config"
	"sentiment/pkg/logger"
	"sentiment/pkg/storage"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// gooseLogger routes goose output to the context logger.
type gooseLogger struct {
	ctx context.Context //nolint: containedctx
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	logger.Get(l.ctx).Sugar().Fatalf(format, v...)
}

func (l gooseLogger) Printf(format string, v ...any) {
	logger.Get(l.ctx).Sugar().Infof(format, v...)
}

// migrateCommand constructs the 'migrate' subcommand. On postgres it applies
// the embedded goose migrations; on mongo it creates the ticker index.
func migrateCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrates the configured storage to the latest schema",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			switch cfg.StorageDriver {
			case storage.DriverPostgres:
				strg, closeStrg := getPostgres(ctx, cfg)
				defer closeStrg()

				goose.SetBaseFS(root.Migrations)
				goose.SetLogger(gooseLogger{ctx: ctx})

				if err := goose.SetDialect("postgres"); err != nil {
					logger.Fatal(ctx, "could not set goose dialect to postgres", zap.Error(err))
				}
				if err := goose.UpContext(ctx, strg.DB, "migrations"); err != nil {
					logger.Fatal(ctx, "could not migrate pgsql", zap.Error(err))
				}
			case storage.DriverMongo:
				strg, closeStrg := getMongo(ctx, cfg)
				defer closeStrg()

				if err := strg.EnsureIndexes(ctx); err != nil {
					logger.Fatal(ctx, "could not create mongo indexes", zap.Error(err))
				}
			default:
				logger.Fatal(ctx, "could not migrate storage",
					zap.Error(storage.ErrUnknownDriver), zap.String("driver", cfg.StorageDriver))
			}

			logger.Info(ctx, "storage migrated", zap.String("driver", cfg.StorageDriver))
		},
	}

	return cmd
}
