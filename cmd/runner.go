package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytshelf/internal/collections"
	"github.com/desertthunder/ytshelf/internal/metrics"
	"github.com/desertthunder/ytshelf/internal/server"
	"github.com/desertthunder/ytshelf/internal/shared"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	logger *log.Logger
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, serveCommand, exportCommand, importCommand, searchCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// openDatabase loads config from the command's flag and opens the database.
func (r *Runner) openDatabase(cmd *cli.Command) (*sql.DB, error) {
	if path := cmd.String("config"); path != "" {
		if config, err := shared.LoadConfig(path); err == nil {
			r.config = config
		}
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, err
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	return db, nil
}

// Setup initializes the database schema, or rolls back the latest migration.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	if cmd.Bool("rollback") {
		if err := shared.RollbackMigration(db); err != nil {
			return err
		}
		r.logger.Info("rolled back latest migration")
		return nil
	}

	if err := shared.RunMigrations(db); err != nil {
		return err
	}

	r.logger.Info("database ready", "path", r.config.Database.Path)
	return nil
}

// Serve runs the HTTP API until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := shared.RunMigrations(db); err != nil {
		return err
	}

	if port := cmd.Int("port"); port != 0 {
		r.config.Server.Port = int(port)
	}

	registry := prometheus.NewRegistry()
	engine := collections.NewEngine(collections.EngineOpts{
		DB:      db,
		Logger:  r.logger,
		Metrics: metrics.NewCollector(registry),
	})

	srv := server.NewServer(server.ServerOpts{
		Config:   &r.config.Server,
		Engine:   engine,
		Logger:   r.logger,
		Registry: registry,
	})

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Export writes an owner's collection forest to a file.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	engine := collections.NewEngine(collections.EngineOpts{DB: db, Logger: r.logger})

	format := cmd.String("format")
	if format == "" {
		format = r.config.Export.Format
	}

	result, err := engine.ExportCollections(cmd.String("owner"), collections.ExportOpts{
		Format:         format,
		IncludeContent: cmd.Bool("content"),
	})
	if err != nil {
		return err
	}

	output := cmd.String("output")
	if output == "" {
		output = result.Filename
	}

	if err := os.WriteFile(output, result.Data, 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	r.logger.Info("export written", "path", output, "bytes", len(result.Data))
	return nil
}

// Import restores collections from a JSON document.
func (r *Runner) Import(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	data, err := os.ReadFile(cmd.String("file"))
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	engine := collections.NewEngine(collections.EngineOpts{DB: db, Logger: r.logger})

	result, err := engine.ImportCollections(cmd.String("owner"), data, collections.ImportOpts{
		Merge: cmd.Bool("merge"),
	})
	if err != nil {
		return err
	}

	return r.writeJSON(result, true)
}

// Search prints collections matching a query.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	engine := collections.NewEngine(collections.EngineOpts{DB: db, Logger: r.logger})

	views, err := engine.SearchCollections(cmd.String("owner"), query, collections.SearchOpts{
		Limit: int(cmd.Int("limit")),
	})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(views, true)
	}

	for _, view := range views {
		parent := "root"
		if view.ParentID != nil {
			parent = *view.ParentID
		}
		r.writePlain("%s\t%s\t(parent: %s)\n", view.ID, view.Name, parent)
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return err
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
