package main

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"github.com/wms/backend/internal/infrastructure/config"
	"github.com/wms/backend/internal/infrastructure/logger"
	"github.com/wms/backend/internal/infrastructure/migration"
	"github.com/wms/backend/migrations"
	"go.uber.org/zap"
)

type options struct {
	migrationsPath string
	configPath     string
	logLevel       string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "migrate",
		Short: "WMS database migration tool",
		Long: `Applies the address service schema migrations.

Connection settings come from config.toml and WMS_DATABASE_* environment
variables (WMS_DATABASE_HOST, WMS_DATABASE_PASSWORD, ...).`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.migrationsPath, "path", "", "Read migrations from this directory instead of the embedded set")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a config file (default: search ./config.toml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	root.AddCommand(
		dbCommand(opts, "up", "Apply all pending migrations", cobra.NoArgs,
			func(m *migration.Migrator, _ *zap.Logger, _ []string) error { return m.Up() }),
		dbCommand(opts, "down", "Roll back all migrations", cobra.NoArgs,
			func(m *migration.Migrator, _ *zap.Logger, _ []string) error { return m.Down() }),
		dbCommand(opts, "step <n>", "Apply n migrations (negative rolls back)", cobra.ExactArgs(1),
			func(m *migration.Migrator, _ *zap.Logger, args []string) error {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid step count %q", args[0])
				}
				return m.Steps(n)
			}),
		dbCommand(opts, "goto <version>", "Migrate to a specific version", cobra.ExactArgs(1),
			func(m *migration.Migrator, _ *zap.Logger, args []string) error {
				version, err := strconv.ParseUint(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid version %q", args[0])
				}
				return m.GoTo(uint(version))
			}),
		dbCommand(opts, "force <version>", "Force set migration version", cobra.ExactArgs(1),
			func(m *migration.Migrator, _ *zap.Logger, args []string) error {
				version, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid version %q", args[0])
				}
				return m.Force(version)
			}),
		dbCommand(opts, "version", "Show current migration version", cobra.NoArgs,
			func(m *migration.Migrator, log *zap.Logger, _ []string) error {
				version, dirty, err := m.Version()
				if err != nil {
					return err
				}
				if version == 0 {
					log.Info("No migrations applied")
					return nil
				}
				log.Info("Current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
				return nil
			}),
		createCommand(opts),
		listCommand(opts),
	)
	return root
}

// dbCommand builds a subcommand that needs an open migrator
func dbCommand(
	opts *options,
	use, short string,
	args cobra.PositionalArgs,
	run func(m *migration.Migrator, log *zap.Logger, args []string) error,
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(opts.logLevel)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			db, err := sql.Open("postgres", cfg.Database.DSN())
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()
			if err := db.PingContext(cmd.Context()); err != nil {
				return fmt.Errorf("failed to ping database: %w", err)
			}

			m, err := migration.New(db, opts.source(), log)
			if err != nil {
				return err
			}
			defer m.Close()

			if err := run(m, log, args); err != nil {
				log.Error("Migration command failed", zap.String("command", cmd.Name()), zap.Error(err))
				return err
			}
			return nil
		},
	}
}

func createCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name> [description]",
		Short: "Create a new migration file pair",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			log, err := newLogger(opts.logLevel)
			if err != nil {
				return err
			}
			dir := opts.migrationsPath
			if dir == "" {
				dir = "migrations"
			}
			description := ""
			if len(args) > 1 {
				description = args[1]
			}
			mf, err := migration.CreateMigration(dir, args[0], description)
			if err != nil {
				return fmt.Errorf("failed to create migration: %w", err)
			}
			log.Info("Migration created",
				zap.String("version", mf.Version),
				zap.String("up_file", mf.UpPath),
				zap.String("down_file", mf.DownPath),
			)
			return nil
		},
	}
}

func listCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := migration.ListMigrations(opts.source())
			if err != nil {
				return fmt.Errorf("failed to list migrations: %w", err)
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), "  -", name)
			}
			return nil
		},
	}
}

func (o *options) source() fs.FS {
	if o.migrationsPath != "" {
		return os.DirFS(o.migrationsPath)
	}
	return migrations.FS
}

func newLogger(level string) (*zap.Logger, error) {
	return logger.New(&logger.Config{
		Level:      level,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}
