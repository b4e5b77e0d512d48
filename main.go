package main

import (
	"context"
	"fmt"
	"os"

	"worktracker/internal/cli"
	"worktracker/internal/config"
	"worktracker/internal/errors"
	"worktracker/internal/logging"
	"worktracker/internal/storage"
	"worktracker/internal/store"
	"worktracker/internal/worklog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", errors.UserMessage(err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return err
	}
	logging.Configure(cfg.Logging)
	log := logging.NewLogger("main")

	loc, err := cfg.Location()
	if err != nil {
		return errors.ConfigInvalid(fmt.Sprintf("export.timezone %q: %v", cfg.Export.Timezone, err))
	}

	kv, err := storage.OpenSQLite(cfg.DatabasePath())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer kv.Close()
	log.WithField("path", cfg.DatabasePath()).Debug("Opened database")

	ctx := context.Background()
	s := store.Open(ctx, storage.NewRecordRepository(kv), store.WithDefaults(cfg.Defaults()))

	app := &cli.App{
		Store:     s,
		Location:  loc,
		ExportDir: cfg.ExportDir(),
		SaveDefaults: func(d worklog.Defaults) error {
			return config.UpdateSession(config.DefaultPath(), config.SessionFrom(d))
		},
	}
	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
