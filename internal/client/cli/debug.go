package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskdesk/internal/client/client"
)

// Token prints what the stored session token says about itself.
func (a *App) Token(ctx context.Context) error {
	rep, err := a.debug.TokenReport(ctx)
	if err != nil {
		return err
	}
	if !rep.Present {
		printlnFn("No token stored")
		return nil
	}

	fmt.Fprintf(a.out, "token:   %s\n", rep.Prefix)
	if rep.Claims == nil {
		fmt.Fprintln(a.out, "payload: undecodable")
	} else {
		fmt.Fprintf(a.out, "subject: %s\n", rep.Claims.Subject())
		if role := rep.Claims.Role(); role != "" {
			fmt.Fprintf(a.out, "role:    %s\n", role)
		}
		if iat, ok := rep.Claims.IssuedAt(); ok {
			fmt.Fprintf(a.out, "issued:  %s\n", iat.Format(time.RFC3339))
		}
	}
	if !rep.ExpiresAt.IsZero() {
		fmt.Fprintf(a.out, "expires: %s\n", rep.ExpiresAt.Format(time.RFC3339))
	}
	fmt.Fprintf(a.out, "expired: %t\n", rep.Expired)
	if rep.Profile != nil {
		fmt.Fprintf(a.out, "profile: %s (%s)\n", rep.Profile.Username, rep.Profile.Role)
	}
	return nil
}

// Probe calls the diagnostic endpoints and prints one line per endpoint.
func (a *App) Probe(ctx context.Context) error {
	for _, p := range a.debug.ProbeEndpoints(ctx) {
		fmt.Fprintln(a.out, renderProbe(p.Path, p.Result))
	}
	return nil
}

// Admin shows the administrator endpoint's response. Only offered to
// elevated users; the server enforces the same rule.
func (a *App) Admin(ctx context.Context) error {
	res := client.RequestSafe[string](ctx, a.api, http.MethodGet, "/test/admin", nil)
	if !res.OK {
		return fmt.Errorf("admin view: %s", res.Err)
	}
	fmt.Fprintln(a.out, res.Data)
	return nil
}
