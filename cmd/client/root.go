package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/jo-hoe/proteinlens/internal/client"
	"github.com/jo-hoe/proteinlens/internal/database"
	"github.com/jo-hoe/proteinlens/internal/meallog"
	"github.com/spf13/cobra"
)

// app is shared by all subcommands once the root pre-run has loaded the config
type app struct {
	configPath string
	verbose    bool

	config   *client.ClientConfig
	location *time.Location
	db       database.DatabaseService
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "proteinlens",
		Short:         "Photograph a meal and track its protein against a daily goal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", client.DefaultConfigPath(), "path to the client config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newAnalyzeCommand(a),
		newTodayCommand(a),
		newHistoryCommand(a),
		newDeleteCommand(a),
		newClearCommand(a),
		newGoalCommand(a),
	)
	return root
}

func (a *app) init() error {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	config, err := client.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	location, err := config.Location()
	if err != nil {
		return err
	}
	a.config = config
	a.location = location
	return nil
}

func (a *app) close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// openLog connects to the configured store and loads the meal log from it
func (a *app) openLog(ctx context.Context) (*meallog.Log, error) {
	if a.db == nil {
		conn := a.config.Database.ConnectionString
		if a.config.Database.Type == database.SQLiteType && conn != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(conn), 0o755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}
		db, err := database.NewDatabase(a.config.Database.Type, conn)
		if err != nil {
			return nil, err
		}
		a.db = db
	}
	return meallog.Load(ctx, a.db, a.location)
}

func (a *app) uploader() *client.Uploader {
	return client.NewUploader(a.config.ServerURL, &http.Client{Timeout: a.config.Timeout()})
}
