package services

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskdesk/internal/client/client"
	"github.com/dmitrijs2005/taskdesk/internal/client/models"
	"github.com/dmitrijs2005/taskdesk/internal/client/token"
	"github.com/dmitrijs2005/taskdesk/internal/logging"
)

const tokenPrefixLen = 20

// TokenReport describes the stored session as seen locally.
type TokenReport struct {
	Present   bool
	Prefix    string
	Claims    token.Claims
	Expired   bool
	ExpiresAt time.Time
	Profile   *models.UserProfile
}

// Probe is the outcome of calling one diagnostic endpoint.
type Probe struct {
	Name   string
	Path   string
	Result client.Result[string]
}

var probeTargets = []struct{ name, path string }{
	{"public", "/test/public"},
	{"protected", "/test/protected"},
	{"tasks", "/tasks"},
	{"stats", "/tasks/stats"},
	{"auth info", "/test/auth-info"},
}

var adminProbe = struct{ name, path string }{"admin", "/test/admin"}

// DebugService inspects the local session and probes backend endpoints.
type DebugService struct {
	client client.Client
	store  CredentialStore
	roles  *RoleService
	log    logging.Logger
	now    func() time.Time
}

func NewDebugService(c client.Client, store CredentialStore, roles *RoleService, log logging.Logger) *DebugService {
	return &DebugService{client: c, store: store, roles: roles, log: log, now: time.Now}
}

func (d *DebugService) TokenReport(ctx context.Context) (TokenReport, error) {
	tok, profile, err := d.store.Session(ctx)
	if err != nil {
		return TokenReport{}, err
	}

	rep := TokenReport{Profile: profile}
	if tok == "" {
		return rep, nil
	}

	rep.Present = true
	rep.Prefix = token.Prefix(tok, tokenPrefixLen)
	rep.Claims = token.DecodePayload(tok)
	rep.Expired = token.IsExpired(tok, d.now())
	rep.ExpiresAt, _ = token.ExpiresAt(tok)
	return rep, nil
}

// ProbeEndpoints calls every diagnostic endpoint in order. The admin
// endpoint is only probed for elevated users.
func (d *DebugService) ProbeEndpoints(ctx context.Context) []Probe {
	targets := probeTargets
	if d.roles != nil && d.roles.Role().Elevated() {
		targets = append(targets[:len(targets):len(targets)], adminProbe)
	}

	probes := make([]Probe, 0, len(targets))
	for _, t := range targets {
		// a string target accepts any 2xx body, JSON or plain text
		res := client.RequestSafe[string](ctx, d.client, http.MethodGet, t.path, nil)
		probes = append(probes, Probe{Name: t.name, Path: t.path, Result: res})
		d.log.Debug(ctx, "probe", "path", t.path, "ok", res.OK)
	}
	return probes
}
