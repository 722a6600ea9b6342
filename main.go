package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/posener/complete"
	"github.com/willabides/kongplete"

	"github.com/semmy-space/req/internal/cli"
	"github.com/semmy-space/req/internal/output"
	"github.com/semmy-space/req/internal/request"
)

var (
	version = "dev"
)

func main() {
	os.Exit(run())
}

func run() int {
	cliInstance := &cli.CLI{}
	parser := kong.Must(cliInstance,
		kong.Name("req"),
		kong.Description("HTTP client with JWT bearer tokens and a replayable request history.\nRun without arguments for the interactive menu."),
		kong.NoDefaultHelp(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	// Handles COMP_LINE and exits when invoked by the shell for completion
	kongplete.Complete(parser,
		kongplete.WithPredictor("method", complete.PredictSet(request.Methods...)),
		kongplete.WithPredictor("file", complete.PredictFiles("*.json")),
	)

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		var parseErr *kong.ParseError
		if errors.As(err, &parseErr) {
			err = &output.CLIError{
				ExitCode: output.ExitUsage,
				Message:  err.Error(),
				Hint:     "Run req --help for usage",
				Err:      err,
			}
		}
		return output.Report(output.New("plain"), err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app, err := cli.NewApp(&cliInstance.Globals)
	if err != nil {
		return output.Report(output.New("plain"), err)
	}

	if err := cliInstance.Run(ctx, app); err != nil {
		if ctx.Err() != nil {
			fmt.Fprintln(os.Stderr, "Interrupted")
		}
		return output.Report(app.Formatter, err)
	}
	return output.ExitOK
}
