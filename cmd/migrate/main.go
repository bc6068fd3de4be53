package main

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tablegrowth/backend/internal/infrastructure/config"
	"github.com/tablegrowth/backend/internal/infrastructure/logger"
	"github.com/tablegrowth/backend/internal/infrastructure/migration"
	"github.com/tablegrowth/backend/migrations"
	"go.uber.org/zap"
)

const defaultMigrationsDir = "migrations"

type options struct {
	path     string
	logLevel string
	log      *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Readiness database migration tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: `  migrate up
  migrate steps -1
  migrate create add_item_owner "Track who completed an item"
  migrate version`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.New(&logger.Config{
				Level:      opts.logLevel,
				Format:     "console",
				Output:     "stdout",
				TimeFormat: "2006-01-02 15:04:05",
			})
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.log != nil {
				_ = opts.log.Sync()
			}
		},
	}

	opts.bindFlags(root.PersistentFlags())

	root.AddCommand(
		newMigratorCmd(opts, "up", "Apply all pending migrations", cobra.NoArgs,
			func(m *migration.Migrator, _ []string) error { return m.Up() }),
		newMigratorCmd(opts, "down", "Roll back all migrations", cobra.NoArgs,
			func(m *migration.Migrator, _ []string) error { return m.Down() }),
		newMigratorCmd(opts, "steps <n>", "Apply n migrations (negative rolls back)", cobra.ExactArgs(1),
			func(m *migration.Migrator, args []string) error {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid step count %q", args[0])
				}
				return m.Steps(n)
			}),
		newMigratorCmd(opts, "goto <version>", "Migrate up or down to a version", cobra.ExactArgs(1),
			func(m *migration.Migrator, args []string) error {
				v, err := strconv.ParseUint(args[0], 10, 32)
				if err != nil {
					return fmt.Errorf("invalid version %q", args[0])
				}
				return m.GoTo(uint(v))
			}),
		newMigratorCmd(opts, "force <version>", "Set the version without running migrations", cobra.ExactArgs(1),
			func(m *migration.Migrator, args []string) error {
				v, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid version %q", args[0])
				}
				return m.Force(v)
			}),
		newMigratorCmd(opts, "version", "Show the applied migration version", cobra.NoArgs,
			func(m *migration.Migrator, _ []string) error {
				version, dirty, err := m.Version()
				if err != nil {
					return err
				}
				if version == 0 {
					opts.log.Info("No migrations applied")
					return nil
				}
				opts.log.Info("Current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
				return nil
			}),
		newCreateCmd(opts),
		newListCmd(opts),
	)
	return root
}

func (o *options) bindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.path, "path", "", "migrations directory (default: migrations compiled into the binary)")
	fs.StringVar(&o.logLevel, "log-level", "info", "log level: debug, info, warn, error")
}

// newMigratorCmd builds a command that needs a live postgres connection
func newMigratorCmd(opts *options, use, short string, args cobra.PositionalArgs, run func(*migration.Migrator, []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if cfg.Database.Driver != config.DriverPostgres {
				return fmt.Errorf("migrations target postgres, configured driver is %q", cfg.Database.Driver)
			}

			db, err := sql.Open("postgres", cfg.Database.DSN())
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()
			if err := db.PingContext(cmd.Context()); err != nil {
				return fmt.Errorf("failed to ping database: %w", err)
			}

			path, err := absPath(opts.path)
			if err != nil {
				return err
			}
			opts.log.Info("Migration command started",
				zap.String("command", cmd.Name()),
				zap.String("source", sourceName(path)),
			)

			m, err := migration.New(db, path, opts.log)
			if err != nil {
				return err
			}
			defer func() { _ = m.Close() }()
			return run(m, args)
		},
	}
}

func newCreateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name> [description]",
		Short: "Create an empty up/down migration pair",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := opts.path
			if dir == "" {
				dir = defaultMigrationsDir
			}
			description := ""
			if len(args) > 1 {
				description = args[1]
			}

			mf, err := migration.CreateMigration(dir, args[0], description)
			if err != nil {
				return err
			}
			opts.log.Info("Migration created",
				zap.String("version", mf.Version),
				zap.String("up_file", mf.UpPath),
				zap.String("down_file", mf.DownPath),
			)
			return nil
		},
	}
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var fsys fs.FS = migrations.FS
			if opts.path != "" {
				fsys = os.DirFS(opts.path)
			}
			names, err := migration.ListMigrations(fsys)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				opts.log.Info("No migrations found")
				return nil
			}
			opts.log.Info("Available migrations", zap.Int("count", len(names)), zap.String("source", sourceName(opts.path)))
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), "  -", name)
			}
			return nil
		},
	}
}

func absPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve migrations path: %w", err)
	}
	return abs, nil
}

func sourceName(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}
