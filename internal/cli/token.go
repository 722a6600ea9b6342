package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/semmy-space/req/internal/auth"
	"github.com/semmy-space/req/internal/output"
	"github.com/semmy-space/req/internal/secrets"
)

// tokenView is the --token-status result
type tokenView struct {
	Stored    bool   `json:"stored"`
	Store     string `json:"store"`
	ExpiresAt string `json:"expires_at,omitempty"`
	Status    string `json:"status"`
}

func setToken(app *App, token string) error {
	creds := app.Credentials()

	exp, ok, err := creds.Save(strings.TrimSpace(token))
	if err != nil {
		if errors.Is(err, auth.ErrMalformedToken) {
			return &output.CLIError{
				ExitCode: output.ExitAuth,
				Message:  "Invalid token: expected a JWT (header.payload.signature)",
				Err:      err,
			}
		}
		return output.Wrap(output.ExitGeneral, err, "Failed to save token")
	}

	app.Formatter.PrintSuccess(fmt.Sprintf("✓ Token saved to %s", secrets.Describe(creds.Store())))
	switch {
	case !ok:
		app.Formatter.PrintWarning("Token has no readable exp claim")
	case exp.Expired:
		app.Formatter.PrintWarning("Token expired")
	default:
		fmt.Fprintf(app.errOut, "Token %s\n", exp)
	}
	return nil
}

func removeToken(app *App) error {
	if err := app.Credentials().Remove(); err != nil {
		return output.Wrap(output.ExitGeneral, err, "Failed to remove token")
	}
	app.Formatter.PrintSuccess("✓ Token removed")
	return nil
}

func tokenStatus(app *App) error {
	creds := app.Credentials()
	exp, present, ok := creds.Status()

	view := tokenView{
		Stored: present,
		Store:  secrets.Describe(creds.Store()),
	}
	switch {
	case !present:
		view.Status = "no token stored"
	case !ok:
		view.Status = "no readable exp claim"
	default:
		view.ExpiresAt = exp.At.UTC().Format(time.RFC3339)
		view.Status = exp.String()
	}

	return app.Formatter.Print(view)
}
