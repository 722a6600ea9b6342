package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/semmy-space/req/internal/config"
	"github.com/semmy-space/req/internal/history"
	"github.com/semmy-space/req/internal/output"
	"github.com/semmy-space/req/internal/request"
)

// historyRow is one entry flattened for plain and rich listings
type historyRow struct {
	Index    string
	ID       string
	Time     string
	Method   string
	URL      string
	Status   string
	Duration string
}

var historyColumns = []output.Column{
	{Name: "#", Key: "Index"},
	{Name: "ID", Key: "ID"},
	{Name: "Time", Key: "Time"},
	{Name: "Method", Key: "Method"},
	{Name: "URL", Key: "URL", Width: 60},
	{Name: "Status", Key: "Status"},
	{Name: "Duration", Key: "Duration"},
}

// printHistory lists entries numbered from 1, the numbering replay accepts.
// JSON mode prints the entries themselves.
func printHistory(app *App, entries []history.Entry) error {
	if len(entries) == 0 {
		fmt.Fprintln(app.errOut, "No requests in history")
		return nil
	}

	if app.Mode == "json" {
		return app.Formatter.PrintList(entries, historyColumns)
	}

	rows := make([]historyRow, len(entries))
	for i, e := range entries {
		rows[i] = historyRow{
			Index:    strconv.Itoa(i + 1),
			ID:       e.ShortID(),
			Time:     displayTime(e, app.Mode == "rich"),
			Method:   e.Method,
			URL:      e.URL,
			Status:   e.Status.String(),
			Duration: displayDuration(e),
		}
	}
	return app.Formatter.PrintList(rows, historyColumns)
}

func displayTime(e history.Entry, relative bool) string {
	if !relative {
		return e.Timestamp
	}
	at, err := e.Time()
	if err != nil {
		return e.Timestamp
	}
	return humanize.Time(at)
}

func displayDuration(e history.Entry) string {
	if e.Duration == nil {
		return "-"
	}
	return fmt.Sprintf("%d ms", *e.Duration)
}

// selectHistory narrows the history by filter and keyword, either may be blank
func selectHistory(app *App, filter, keyword string) ([]history.Entry, error) {
	entries := app.History.LoadAll()

	if strings.TrimSpace(filter) != "" {
		f, err := history.ParseFilter(filter)
		if err != nil {
			return nil, &output.CLIError{
				ExitCode: output.ExitUsage,
				Message:  fmt.Sprintf("Invalid filter: %v", err),
				Hint:     `Use "status=404 since=2024-01-01"`,
				Err:      err,
			}
		}
		app.Log.Debugf("filter: %s", f)
		entries = f.Apply(entries)
	}

	if keyword != "" {
		entries = history.Search(entries, keyword)
	}
	return entries, nil
}

// exportHistory writes the full history to path, or to export_file when blank
func exportHistory(app *App, path string) error {
	written, err := app.History.Export(config.ExpandHome(strings.TrimSpace(path)))
	if err != nil {
		return output.Wrap(output.ExitGeneral, err, "Failed to export history")
	}
	app.Formatter.PrintSuccess(fmt.Sprintf("✓ History exported to %s", written))
	return nil
}

func clearHistory(ctx context.Context, app *App) error {
	if err := app.History.Clear(ctx); err != nil {
		return output.Wrap(output.ExitGeneral, err, "Failed to clear history")
	}
	app.Formatter.PrintSuccess("✓ History cleared")
	return nil
}

// replayHistory replays the entry ref names within entries, or every entry
// for "all". New outcomes are appended; entries itself is not modified.
func replayHistory(ctx context.Context, app *App, entries []history.Entry, ref string) error {
	if strings.EqualFold(strings.TrimSpace(ref), "all") {
		if len(entries) == 0 {
			return output.NewCLIError(output.ExitNotFound, "No requests to replay")
		}
		limiter := request.NewReplayLimiter(app.ReplayRate())
		_, err := app.Executor().ReplayAll(ctx, entries, limiter)
		return err
	}

	entry, err := history.Find(entries, ref)
	if err != nil {
		if errors.Is(err, history.ErrNoEntry) {
			return &output.CLIError{
				ExitCode: output.ExitNotFound,
				Message:  fmt.Sprintf("Cannot replay %q: %v", ref, err),
				Hint:     "List entries with: req -l",
				Err:      err,
			}
		}
		return output.Wrap(output.ExitUsage, err, "Cannot replay")
	}

	fmt.Fprintf(app.errOut, "Replaying %s %s\n", entry.Method, entry.URL)
	_, err = app.Executor().Replay(ctx, entry)
	return err
}
