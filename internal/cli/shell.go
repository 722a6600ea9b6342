package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/semmy-space/req/internal/history"
	"github.com/semmy-space/req/internal/output"
	"github.com/semmy-space/req/internal/request"
)

// Action is one entry of the interactive menu
type Action int

const (
	ActionSend Action = iota + 1
	ActionViewHistory
	ActionSearch
	ActionFilter
	ActionReplay
	ActionExport
	ActionClear
	ActionToken
	ActionExit
)

// menu is the main menu in display order
var menu = []Action{
	ActionSend,
	ActionViewHistory,
	ActionSearch,
	ActionFilter,
	ActionReplay,
	ActionExport,
	ActionClear,
	ActionToken,
	ActionExit,
}

func (a Action) String() string {
	switch a {
	case ActionSend:
		return "Send a request"
	case ActionViewHistory:
		return "View history"
	case ActionSearch:
		return "Search history"
	case ActionFilter:
		return "Filter history"
	case ActionReplay:
		return "Replay a request"
	case ActionExport:
		return "Export history"
	case ActionClear:
		return "Clear history"
	case ActionToken:
		return "Manage JWT token"
	case ActionExit:
		return "Exit"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// tokenAction is one entry of the token sub-menu
type tokenAction int

const (
	tokenSet tokenAction = iota + 1
	tokenShow
	tokenRemove
	tokenBack
)

var tokenMenu = []tokenAction{tokenSet, tokenShow, tokenRemove, tokenBack}

func (a tokenAction) String() string {
	switch a {
	case tokenSet:
		return "Set token"
	case tokenShow:
		return "Show token status"
	case tokenRemove:
		return "Remove token"
	case tokenBack:
		return "Back"
	}
	return fmt.Sprintf("tokenAction(%d)", int(a))
}

// Shell is the interactive menu loop. It reads one line per prompt;
// end of input ends the session like Exit.
type Shell struct {
	app *App
	in  *bufio.Reader
}

// NewShell creates a Shell reading from the app's input
func NewShell(app *App) *Shell {
	return &Shell{app: app, in: bufio.NewReader(app.in)}
}

// Run shows the menu until Exit, end of input, or ctx is cancelled.
// Errors from a single action are printed and the menu shown again.
func (s *Shell) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		action, err := s.chooseAction()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if action == ActionExit {
			break
		}

		if err := s.dispatch(ctx, action); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			var cliErr *output.CLIError
			if !errors.As(err, &cliErr) {
				return err
			}
			s.app.Formatter.PrintError(cliErr)
			if cliErr.Hint != "" {
				s.app.Formatter.PrintHint(cliErr.Hint)
			}
		}
	}

	fmt.Fprintln(s.app.out, "Goodbye!")
	return nil
}

func (s *Shell) dispatch(ctx context.Context, action Action) error {
	switch action {
	case ActionSend:
		return s.sendRequest(ctx)
	case ActionViewHistory:
		return printHistory(s.app, s.app.History.LoadAll())
	case ActionSearch:
		return s.search()
	case ActionFilter:
		return s.filter()
	case ActionReplay:
		return s.replay(ctx)
	case ActionExport:
		return s.export()
	case ActionClear:
		return s.clear(ctx)
	case ActionToken:
		return s.manageToken()
	case ActionExit:
		return nil
	}
	return fmt.Errorf("unknown action %d", int(action))
}

func (s *Shell) chooseAction() (Action, error) {
	for {
		fmt.Fprintln(s.app.out)
		fmt.Fprintln(s.app.out, "What would you like to do?")
		for _, a := range menu {
			fmt.Fprintf(s.app.out, "  %d) %s\n", int(a), a)
		}

		answer, err := s.ask("Choice: ")
		if err != nil {
			return 0, err
		}
		if n, err := strconv.Atoi(answer); err == nil && n >= int(ActionSend) && n <= int(ActionExit) {
			return Action(n), nil
		}
		s.app.Formatter.PrintWarning(fmt.Sprintf("Invalid choice %q", answer))
	}
}

func (s *Shell) sendRequest(ctx context.Context) error {
	method, err := s.chooseMethod()
	if err != nil {
		return err
	}

	url, err := s.ask("URL: ")
	if err != nil {
		return err
	}
	if url == "" {
		s.app.Formatter.PrintWarning("A URL is required")
		return nil
	}

	rawHeaders, err := s.ask("Headers as JSON (blank for none): ")
	if err != nil {
		return err
	}
	headers, err := request.ParseHeaders(rawHeaders)
	if err != nil {
		s.app.Formatter.PrintWarning(err.Error() + ", sending no headers")
		headers = map[string]string{}
	}

	rawBody, err := s.ask("Body as JSON (blank for none): ")
	if err != nil {
		return err
	}
	body, err := request.ParseBody(rawBody)
	if err != nil {
		s.app.Formatter.PrintWarning(err.Error() + ", sending {}")
		body = request.EmptyBody
	}

	_, err = s.app.Executor().Execute(ctx, request.Request{
		Method:  method,
		URL:     url,
		Headers: headers,
		Body:    body,
	})
	return err
}

// chooseMethod accepts a menu number or a verb name; blank means GET
func (s *Shell) chooseMethod() (string, error) {
	options := make([]string, len(request.Methods))
	for i, m := range request.Methods {
		options[i] = fmt.Sprintf("%d) %s", i+1, m)
	}

	for {
		fmt.Fprintln(s.app.out, "Method: "+strings.Join(options, "  "))
		answer, err := s.ask("Method [GET]: ")
		if err != nil {
			return "", err
		}
		if answer == "" {
			return request.Methods[0], nil
		}
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(request.Methods) {
			return request.Methods[n-1], nil
		}
		for _, m := range request.Methods {
			if strings.EqualFold(answer, m) {
				return m, nil
			}
		}
		s.app.Formatter.PrintWarning(fmt.Sprintf("Unsupported method %q", answer))
	}
}

func (s *Shell) search() error {
	keyword, err := s.ask("Search keyword: ")
	if err != nil {
		return err
	}
	return printHistory(s.app, history.Search(s.app.History.LoadAll(), keyword))
}

func (s *Shell) filter() error {
	expr, err := s.ask("Filter (e.g. status=404 since=2024-01-01): ")
	if err != nil {
		return err
	}
	entries, err := selectHistory(s.app, expr, "")
	if err != nil {
		return err
	}
	return printHistory(s.app, entries)
}

func (s *Shell) replay(ctx context.Context) error {
	entries := s.app.History.LoadAll()
	if len(entries) == 0 {
		fmt.Fprintln(s.app.errOut, "No requests in history")
		return nil
	}
	if err := printHistory(s.app, entries); err != nil {
		return err
	}

	ref, err := s.ask("Replay which entry (number, id prefix, last or all) [last]: ")
	if err != nil {
		return err
	}
	return replayHistory(ctx, s.app, entries, ref)
}

func (s *Shell) export() error {
	path, err := s.ask(fmt.Sprintf("Export to [%s]: ", s.app.Config.ExportFile))
	if err != nil {
		return err
	}
	return exportHistory(s.app, path)
}

func (s *Shell) clear(ctx context.Context) error {
	ok, err := s.confirm("Clear all request history?")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(s.app.errOut, "History kept")
		return nil
	}
	return clearHistory(ctx, s.app)
}

func (s *Shell) manageToken() error {
	fmt.Fprintln(s.app.out, "JWT token:")
	for _, a := range tokenMenu {
		fmt.Fprintf(s.app.out, "  %d) %s\n", int(a), a)
	}

	answer, err := s.ask("Choice: ")
	if err != nil {
		return err
	}
	n, _ := strconv.Atoi(answer)

	switch tokenAction(n) {
	case tokenSet:
		token, err := s.askSecret("Paste token: ")
		if err != nil {
			return err
		}
		return setToken(s.app, token)
	case tokenShow:
		return tokenStatus(s.app)
	case tokenRemove:
		return removeToken(s.app)
	case tokenBack:
		return nil
	}
	s.app.Formatter.PrintWarning(fmt.Sprintf("Invalid choice %q", answer))
	return nil
}

// ask prints prompt and returns the next trimmed line.
// A final line without newline is returned before io.EOF.
func (s *Shell) ask(prompt string) (string, error) {
	fmt.Fprint(s.app.out, prompt)
	line, err := s.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// askSecret reads without echo when input is a terminal
func (s *Shell) askSecret(prompt string) (string, error) {
	if s.app.inFd < 0 {
		return s.ask(prompt)
	}

	fmt.Fprint(s.app.out, prompt)
	b, err := term.ReadPassword(s.app.inFd)
	fmt.Fprintln(s.app.out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func (s *Shell) confirm(question string) (bool, error) {
	answer, err := s.ask(question + " (y/N): ")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}
