package cli

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/semmy-space/req/internal/auth"
	"github.com/semmy-space/req/internal/config"
	"github.com/semmy-space/req/internal/history"
	"github.com/semmy-space/req/internal/lockfile"
	"github.com/semmy-space/req/internal/output"
	"github.com/semmy-space/req/internal/request"
	"github.com/semmy-space/req/internal/secrets"
)

// Streams are the process's standard streams, replaced in tests
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// App holds the dependencies shared by flag mode and the interactive shell.
// The credential store is opened lazily since the keyring backend may prompt.
type App struct {
	Config    *config.Config
	History   *history.FileStore
	Formatter output.Formatter
	Log       *output.Logger
	Mode      string

	in     io.Reader
	inFd   int
	out    io.Writer
	errOut io.Writer

	credsOnce sync.Once
	creds     *auth.Credentials

	execOnce sync.Once
	exec     *request.Executor
}

// NewApp loads the config file and wires the app to the process streams
func NewApp(g *Globals) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, &output.CLIError{
			ExitCode: output.ExitConfigError,
			Message:  fmt.Sprintf("Failed to load config: %v", err),
			Hint:     "Fix or remove " + config.ConfigPath(),
			Err:      err,
		}
	}
	return NewAppWithConfig(cfg, g, Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}), nil
}

// NewAppWithConfig wires the app from an already loaded config
func NewAppWithConfig(cfg *config.Config, g *Globals, s Streams) *App {
	mode := g.ResolvedOutput(cfg.DefaultOutput, s.Out)
	styled := mode == "rich"

	app := &App{
		Config:    cfg,
		History:   history.NewFileStore(cfg.HistoryFile, cfg.ExportFile),
		Formatter: output.NewWithWriters(mode, s.Out, s.Err),
		Log:       output.NewLogger(s.Err, g.Verbose, styled),
		Mode:      mode,
		in:        s.In,
		inFd:      -1,
		out:       s.Out,
		errOut:    s.Err,
	}
	if f, ok := s.In.(*os.File); ok && isTerminal(f) {
		app.inFd = int(f.Fd())
	}

	app.Log.Debugf("config: %s", cfg.Path())
	app.Log.Debugf("history: %s (lock %s)", cfg.HistoryFile, lockfile.Path(cfg.HistoryFile))
	app.Log.Debugf("output: %s", mode)
	return app
}

// Credentials returns the bearer token store, opening it on first call
func (a *App) Credentials() *auth.Credentials {
	a.credsOnce.Do(func() {
		store := secrets.NewStore(a.Config, a.errOut)
		a.Log.Debugf("token store: %s", secrets.Describe(store))
		a.creds = auth.NewCredentials(store)
	})
	return a.creds
}

// Executor returns the request executor, creating it on first call
func (a *App) Executor() *request.Executor {
	a.execOnce.Do(func() {
		// Validated when the config was loaded
		timeout, _ := a.Config.RequestTimeout()

		a.exec = request.NewExecutor(a.History,
			request.WithClient(&http.Client{Timeout: timeout}),
			request.WithTokens(a.Credentials()),
			request.WithOutput(a.out, a.errOut),
			request.WithLogger(a.Log),
			request.WithColor(a.Mode == "rich"),
		)
	})
	return a.exec
}

// ReplayRate returns the configured replay pacing in requests per second
func (a *App) ReplayRate() float64 {
	rate, err := a.Config.ReplayRatePerSecond()
	if err != nil {
		return config.DefaultReplayRate
	}
	return rate
}
