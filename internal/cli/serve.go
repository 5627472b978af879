package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/foods/internal/config"
	"github.com/idilsaglam/foods/internal/logging"
	"github.com/idilsaglam/foods/internal/server"
	"github.com/idilsaglam/foods/internal/store"
	"github.com/idilsaglam/foods/internal/store/jsonstore"
	"github.com/idilsaglam/foods/internal/store/sqlitestore"
)

func newServeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local food service for the dashboard to talk to",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openStore(cmd.Context(), app.Config.Store, app.Config.DataPath)
			if err != nil {
				return err
			}
			defer repo.Close()

			log := app.log
			if app.Config.LogFile == "" {
				// Request logs go to stderr unless a log file was asked for.
				if log, err = logging.New(app.errOut, app.Config.LogLevel); err != nil {
					return err
				}
			}
			log.Info("store opened", "kind", app.Config.Store, "path", app.Config.DataPath)
			return server.Run(cmd.Context(), app.Config.Addr, server.NewFoodHandler(repo, log))
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&app.Config.Addr, "addr", app.Config.Addr, "Listen address (FOODS_ADDR)")
	fs.StringVar(&app.Config.Store, "store", app.Config.Store, "Storage backend: json|sqlite (FOODS_STORE)")
	fs.StringVar(&app.Config.DataPath, "data", app.Config.DataPath, "Data file path (FOODS_DATA)")
	return cmd
}

func openStore(ctx context.Context, kind, path string) (store.Repository, error) {
	switch kind {
	case config.StoreJSON:
		s, err := jsonstore.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open json store: %w", err)
		}
		return s, nil
	case config.StoreSQLite:
		if path == "" {
			path = sqlitestore.DefaultFileName
		}
		s, err := sqlitestore.Open(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, nil
	}
	return nil, usagef("unknown store %q (want %s or %s)", kind, config.StoreJSON, config.StoreSQLite)
}
