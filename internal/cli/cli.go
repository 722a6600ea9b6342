package cli

import (
	"context"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/semmy-space/req/internal/output"
	"github.com/semmy-space/req/internal/request"
)

// CLI is the root command structure. Without a method, URL or any action
// flag the interactive menu starts instead.
type CLI struct {
	Globals

	Method string `arg:"" optional:"" predictor:"method" help:"HTTP method (GET, POST, PUT, PATCH, DELETE, HEAD, OPTIONS)"`

	URL     string `short:"u" placeholder:"URL" help:"Request URL"`
	Headers string `short:"h" placeholder:"JSON" help:"Request headers as a JSON object"`
	Body    string `short:"b" placeholder:"JSON" help:"Request body as JSON"`

	ClearHistory  bool       `short:"c" help:"Clear the request history"`
	ExportHistory ExportPath `short:"e" placeholder:"PATH" predictor:"file" help:"Export the history, to PATH when one follows"`
	FilterHistory string     `short:"f" placeholder:"FILTER" help:"Show entries matching \"status=404 since=2024-01-01\""`
	SearchHistory string     `short:"s" placeholder:"KEYWORD" help:"Show entries whose method, URL or status contains KEYWORD"`
	ListHistory   bool       `short:"l" help:"List the request history"`
	Replay        string     `short:"r" placeholder:"REF" help:"Replay last, an index (negative as --replay=-1), an id prefix, or all; -f and -s narrow the set"`

	SetToken    string `placeholder:"JWT" help:"Store a JWT bearer token"`
	RemoveToken bool   `help:"Remove the stored token"`
	TokenStatus bool   `help:"Show the stored token's expiry"`

	Config    bool   `help:"Show configuration values"`
	SetConfig string `placeholder:"KEY=VALUE" help:"Set a configuration value, an empty VALUE unsets it"`

	Help    helpFlag         `help:"Show help"`
	Version kong.VersionFlag `short:"V" help:"Print version and exit"`
}

// helpFlag replaces kong's default help, whose -h is taken by --headers
type helpFlag bool

func (h helpFlag) BeforeReset(ctx *kong.Context) error {
	_ = ctx.PrintUsage(false)
	ctx.Kong.Exit(0)
	return nil
}

// sendsRequest reports whether the invocation describes a request
func (c *CLI) sendsRequest() bool {
	return c.Method != "" || c.URL != "" || c.Headers != "" || c.Body != ""
}

// Interactive reports whether no flag-mode action was given
func (c *CLI) Interactive() bool {
	return !c.sendsRequest() &&
		!c.ClearHistory &&
		!c.ExportHistory.Set &&
		c.FilterHistory == "" &&
		c.SearchHistory == "" &&
		!c.ListHistory &&
		c.Replay == "" &&
		c.SetToken == "" &&
		!c.RemoveToken &&
		!c.TokenStatus &&
		!c.Config &&
		c.SetConfig == ""
}

// checkFlags rejects flag combinations before anything runs
func (c *CLI) checkFlags() error {
	if c.Method != "" && c.URL == "" {
		return &output.CLIError{
			ExitCode: output.ExitUsage,
			Message:  "A URL is required when a method is given",
			Hint:     "req GET -u https://api.example.com/ping",
		}
	}
	if (c.Headers != "" || c.Body != "") && c.URL == "" {
		return &output.CLIError{
			ExitCode: output.ExitUsage,
			Message:  "--headers and --body require --url",
		}
	}
	if c.SetToken != "" && c.RemoveToken {
		return &output.CLIError{
			ExitCode: output.ExitUsage,
			Message:  "--set-token and --remove-token cannot be combined",
		}
	}
	return nil
}

// Run executes flag mode, or the interactive shell when no action was given.
// Actions run in a fixed order: token, config, request, history views or
// replay, export, clear.
func (c *CLI) Run(ctx context.Context, app *App) error {
	if err := c.checkFlags(); err != nil {
		return err
	}
	if c.Interactive() {
		return NewShell(app).Run(ctx)
	}

	if c.SetToken != "" {
		if err := setToken(app, c.SetToken); err != nil {
			return err
		}
	}
	if c.RemoveToken {
		if err := removeToken(app); err != nil {
			return err
		}
	}
	if c.TokenStatus {
		if err := tokenStatus(app); err != nil {
			return err
		}
	}

	if c.SetConfig != "" {
		if err := setConfig(app, c.SetConfig); err != nil {
			return err
		}
	}
	if c.Config {
		if err := showConfig(app); err != nil {
			return err
		}
	}

	if c.sendsRequest() {
		if err := c.send(ctx, app); err != nil {
			return err
		}
	}

	if c.Replay != "" || c.ListHistory || c.FilterHistory != "" || c.SearchHistory != "" {
		entries, err := selectHistory(app, c.FilterHistory, c.SearchHistory)
		if err != nil {
			return err
		}
		if c.Replay != "" {
			if err := replayHistory(ctx, app, entries, c.Replay); err != nil {
				return err
			}
		} else if err := printHistory(app, entries); err != nil {
			return err
		}
	}

	if c.ExportHistory.Set {
		if err := exportHistory(app, c.ExportHistory.Path); err != nil {
			return err
		}
	}
	if c.ClearHistory {
		if err := clearHistory(ctx, app); err != nil {
			return err
		}
	}

	return nil
}

// send builds the request from flags. Malformed JSON input is reported and
// replaced by an empty object rather than aborting.
func (c *CLI) send(ctx context.Context, app *App) error {
	method := strings.ToUpper(c.Method)
	if method == "" {
		method = "GET"
	}

	headers, err := request.ParseHeaders(c.Headers)
	if err != nil {
		app.Formatter.PrintWarning(err.Error() + ", sending no headers")
		headers = map[string]string{}
	}

	body, err := request.ParseBody(c.Body)
	if err != nil {
		app.Formatter.PrintWarning(err.Error() + ", sending {}")
		body = request.EmptyBody
	}

	_, err = app.Executor().Execute(ctx, request.Request{
		Method:  method,
		URL:     c.URL,
		Headers: headers,
		Body:    body,
	})
	return err
}
