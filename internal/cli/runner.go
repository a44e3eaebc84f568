package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/store/memstore"
	"github.com/Makepad-fr/tada/internal/store/sqlitestore"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Exit codes: 0 ok, 1 error, 2 usage.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// usageError marks mistakes in how tada was called (exit code 2).
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, a ...any) error { return usageError{msg: fmt.Sprintf(format, a...)} }

// App is the root composition: it owns the one store of the process and
// hands it to the commands and the TUI.
type App struct {
	Out io.Writer
	Err io.Writer

	// Optional overrides, mostly for tests.
	KV        store.KV
	LookupEnv func(string) (string, bool)
	HomeDir   string
	WorkDir   string
	Now       func() time.Time
	Loc       *time.Location

	flags  rootFlags
	cfg    *config.Config
	log    *log.Logger
	store  *store.Store
	closer func() error
}

type rootFlags struct {
	configPath string
	backend    string
	dataDir    string
	logLevel   string
	theme      string
	color      string
	group      bool
}

// Execute runs tada with args and returns the process exit code.
func Execute(ctx context.Context, args []string, app *App) int {
	if app.Out == nil {
		app.Out = os.Stdout
	}
	if app.Err == nil {
		app.Err = os.Stderr
	}
	if app.Now == nil {
		app.Now = time.Now
	}
	if app.Loc == nil {
		app.Loc = time.Local
	}
	defer app.close()

	if args == nil {
		// cobra falls back to os.Args on nil
		args = []string{}
	}
	root := newRootCmd(app)
	root.SetArgs(args)
	root.SetOut(app.Out)
	root.SetErr(app.Err)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}
	var ue usageError
	if errors.As(err, &ue) {
		if ue.msg != "" {
			ui.Fail(app.Err, ue.msg)
			ui.Hint(app.Err, "run `tada --help` for usage")
		}
		return exitUsage
	}
	ui.Fail(app.Err, err.Error())
	return exitError
}

func newRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "tada",
		Short:         "tada - todos with due dates",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				fmt.Fprintln(app.Err)
				_ = cmd.Help()
				return usagef("unknown subcommand: %s", args[0])
			}
			_ = cmd.Help()
			return usageError{}
		},
		Example: `  tada add "Buy milk" --due tomorrow
  tada ls
  tada done 2
  tada edit 2 --title "Buy oat milk"
  tada rm 3`,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{msg: err.Error()}
	})

	f := root.PersistentFlags()
	f.StringVar(&app.flags.configPath, "config", "", "config file (default ~/.tada/config.toml)")
	f.StringVar(&app.flags.backend, "backend", "", "storage backend: file, sqlite or memory")
	f.StringVar(&app.flags.dataDir, "data-dir", "", "directory holding the todo data")
	f.StringVar(&app.flags.logLevel, "log-level", "", "debug, info, warn or error")
	f.StringVar(&app.flags.theme, "theme", "", "classic, neon or mono")
	f.StringVar(&app.flags.color, "color", "", "auto, always or never")
	// Root flags (apply to every subcommand)
	f.BoolVar(&app.flags.group, "group", false, "group output by pending/done")

	root.AddCommand(
		newAddCmd(app),
		newListCmd(app),
		newShowCmd(app),
		newDoneCmd(app),
		newRemoveCmd(app),
		newEditCmd(app),
		newExportCmd(app),
		newUICmd(app),
	)
	return root
}

// setup resolves config, logging and storage. Commands call it first.
func (a *App) setup(cmd *cobra.Command) (*store.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	cfg, err := config.Load(config.Options{
		Path:      a.flags.configPath,
		HomeDir:   a.HomeDir,
		WorkDir:   a.WorkDir,
		LookupEnv: a.LookupEnv,
	})
	if err != nil {
		return nil, err
	}
	fs := cmd.Flags()
	if fs.Changed("backend") {
		cfg.Storage.Backend = a.flags.backend
	}
	if fs.Changed("data-dir") {
		cfg.Storage.Dir = a.flags.dataDir
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = a.flags.logLevel
	}
	if fs.Changed("theme") {
		cfg.UI.Theme = a.flags.theme
	}
	if fs.Changed("color") {
		cfg.UI.Color = a.flags.color
	}
	if fs.Changed("group") {
		cfg.UI.Group = a.flags.group
	}
	if err := cfg.Validate(); err != nil {
		return nil, usageError{msg: err.Error()}
	}
	a.cfg = cfg

	lg, err := logging.New(a.Err, cfg.Log)
	if err != nil {
		return nil, usageError{msg: err.Error()}
	}
	a.log = lg
	ui.SetColorMode(cfg.UI.Color)
	ui.SetTheme(cfg.UI.Theme)

	kv, err := a.openKV(cmd.Context())
	if err != nil {
		return nil, err
	}
	a.store = store.Open(cmd.Context(), kv, store.WithKey(cfg.Storage.Key), store.WithLogger(lg))
	return a.store, nil
}

func (a *App) openKV(ctx context.Context) (store.KV, error) {
	if a.KV != nil {
		return a.KV, nil
	}
	switch a.cfg.Storage.Backend {
	case config.BackendSQLite:
		s, err := sqlitestore.Open(ctx, a.cfg.SQLitePath())
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		a.closer = s.Close
		a.log.Debug("using sqlite storage", "path", a.cfg.SQLitePath())
		return s, nil
	case config.BackendMemory:
		a.log.Debug("using in-memory storage; nothing will be saved")
		return memstore.New(), nil
	default:
		s := jsonstore.New(a.cfg.Storage.Dir)
		a.log.Debug("using file storage", "dir", s.Dir())
		return s, nil
	}
}

// close waits for pending writes so a one-shot command doesn't exit
// before its change is on disk.
func (a *App) close() {
	if a.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.store.Close(ctx); err != nil {
			a.log.Warn("waiting for todos to be saved", "err", err)
		}
		a.store = nil
	}
	if a.closer != nil {
		if err := a.closer(); err != nil {
			a.log.Warn("close storage", "err", err)
		}
		a.closer = nil
	}
}
