package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/foods/internal/config"
	"github.com/idilsaglam/foods/internal/dashboard"
	"github.com/idilsaglam/foods/internal/foodapi"
	"github.com/idilsaglam/foods/internal/logging"
	"github.com/idilsaglam/foods/internal/tui"
	"github.com/idilsaglam/foods/internal/ui"
)

// App carries root flags and the wiring every subcommand shares.
type App struct {
	Config  config.Config
	loadErr error

	out    io.Writer
	errOut io.Writer
	log    *slog.Logger
	// closeLog releases the log file, if any.
	closeLog func() error
}

// usageError marks mistakes in how a command was invoked (exit code 2).
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, a ...any) error { return usageError{msg: fmt.Sprintf(format, a...)} }

func IsUsage(err error) bool {
	var u usageError
	return errors.As(err, &u)
}

func NewRootCmd() *cobra.Command {
	cmd, _ := newRootCmd()
	return cmd
}

func newRootCmd() (*cobra.Command, *App) {
	cfg, err := config.Load(".env")
	if err != nil {
		cfg = config.Default()
	}
	app := &App{Config: cfg, loadErr: err, closeLog: func() error { return nil }}

	cmd := &cobra.Command{
		Use:           "foods",
		Short:         "Food menu dashboard (TUI + scriptable commands)",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive dashboard
  foods

  # Run a local backend to point the dashboard at
  foods serve --store sqlite --data foods.sqlite

  # Scriptable commands
  foods ls --group
  foods add --name "Ao molho" --price 19.90 --image https://example.com/a.png
  foods edit 2 --price 21.50
  foods rm 3
`),
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := app.controller()
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), ctrl)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		app.out, app.errOut = cmd.OutOrStdout(), cmd.ErrOrStderr()
		if app.loadErr != nil {
			return fmt.Errorf("config: %w", app.loadErr)
		}
		if err := app.Config.Validate(); err != nil {
			return usageError{msg: err.Error()}
		}
		ui.SetTheme(app.Config.Theme)
		l, closeFn, err := logging.Open(app.Config.LogFile, app.Config.LogLevel)
		if err != nil {
			return err
		}
		app.log, app.closeLog = l, closeFn
		return nil
	}
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return usageError{msg: err.Error()}
	})

	pf := cmd.PersistentFlags()
	pf.StringVar(&app.Config.APIURL, "api", app.Config.APIURL, "Food service base URL (FOODS_API_URL)")
	pf.DurationVar(&app.Config.Timeout, "timeout", app.Config.Timeout, "Per-request timeout (FOODS_TIMEOUT)")
	pf.StringVar(&app.Config.Theme, "theme", app.Config.Theme, "Output theme: classic|neon|mono (FOODS_THEME)")
	pf.StringVar(&app.Config.LogFile, "log-file", app.Config.LogFile, "Append logs to this file (FOODS_LOG_FILE)")
	pf.StringVar(&app.Config.LogLevel, "log-level", app.Config.LogLevel, "debug|info|warn|error (FOODS_LOG_LEVEL)")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newServeCmd(app))

	return cmd, app
}

// Execute runs the command tree and returns an exit code (0 ok, 1 error, 2 usage).
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd, app := newRootCmd()
	defer func() { _ = app.closeLog() }()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		ui.Fail(stderr, err.Error())
		if IsUsage(err) {
			fmt.Fprintln(stderr)
			fmt.Fprintln(stderr, "Run 'foods --help' for usage.")
			return 2
		}
		return 1
	}
	return 0
}

// controller builds a dashboard controller over the HTTP client.
func (a *App) controller() (*dashboard.Controller, error) {
	client, err := foodapi.New(a.Config.APIURL,
		foodapi.WithTimeout(a.Config.Timeout),
		foodapi.WithLogger(a.log),
	)
	if err != nil {
		return nil, usageError{msg: err.Error()}
	}
	return dashboard.New(client, dashboard.WithLogger(a.log)), nil
}

// loaded returns a controller that has already fetched the list.
func (a *App) loaded(ctx context.Context) (*dashboard.Controller, error) {
	ctrl, err := a.controller()
	if err != nil {
		return nil, err
	}
	if err := ctrl.Initialize(ctx); err != nil {
		return nil, err
	}
	return ctrl, nil
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usagef("unknown command %q for %q", args[0], cmd.CommandPath())
	}
	return nil
}

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("usage: %s", usage)
		}
		return nil
	}
}
