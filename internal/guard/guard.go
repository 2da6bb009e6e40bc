// Package guard decides whether the in-memory session can be trusted on
// entry to a guarded operation, or must be re-validated against the server.
//
// The decision per activation:
//
//   - the one-shot skip flag is set: consume it and trust the session
//     unconditionally (it was established by a login moments ago)
//   - a user is loaded: trust it
//   - no user and no stored credential: signed out, nothing to check
//   - no user but a credential exists: ask the server who it belongs to
//
// Revalidation distinguishes authentication-class failures (401/403), which
// demote the session to logged out, from transient failures (network,
// 5xx), which leave the session untouched. A network blip must never log
// anyone out.
package guard

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/session"
)

// DefaultSettleDelay is the pause before the revalidation request. It gives
// a login that finished an instant ago time to land its storage writes, so
// the guard does not race them.
const DefaultSettleDelay = 100 * time.Millisecond

// Outcome names the branch an activation took.
type Outcome string

const (
	// OutcomeSkipped: the one-shot skip flag was consumed; no server call.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeTrusted: a user was already loaded; no server call.
	OutcomeTrusted Outcome = "trusted"
	// OutcomeSignedOut: no user and no credential; no server call.
	OutcomeSignedOut Outcome = "signed-out"
	// OutcomeRevalidated: the server confirmed the credential.
	OutcomeRevalidated Outcome = "revalidated"
	// OutcomeDemoted: the server rejected the credential (401/403).
	OutcomeDemoted Outcome = "demoted"
	// OutcomeUnreachable: revalidation failed transiently; session untouched.
	OutcomeUnreachable Outcome = "unreachable"
	// OutcomeCancelled: the activation context was cancelled during the
	// settle delay; no server call was made.
	OutcomeCancelled Outcome = "cancelled"
)

// Authenticated reports whether the outcome leaves the caller entitled to
// run the guarded operation.
func (o Outcome) Authenticated() bool {
	switch o {
	case OutcomeSkipped, OutcomeTrusted, OutcomeRevalidated:
		return true
	}
	return false
}

// AuthClient is the slice of the API client the guard needs.
type AuthClient interface {
	Me(ctx context.Context) (*api.User, error)
	HasSessionCookie() bool
}

// Guard gates entry to operations that require an authenticated session.
type Guard struct {
	store  *session.Store
	client AuthClient
	settle time.Duration
	logger *log.Logger
}

// Option configures a Guard.
type Option func(*Guard)

// WithSettleDelay overrides the pre-revalidation delay. Zero disables it.
func WithSettleDelay(d time.Duration) Option {
	return func(g *Guard) {
		g.settle = d
	}
}

// WithLogger sets the guard's logger.
func WithLogger(logger *log.Logger) Option {
	return func(g *Guard) {
		g.logger = logger
	}
}

// New creates a guard over the given store and client.
func New(store *session.Store, client AuthClient, opts ...Option) *Guard {
	g := &Guard{
		store:  store,
		client: client,
		settle: DefaultSettleDelay,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Activate runs one guard evaluation. The returned error is non-nil only
// for OutcomeUnreachable (the transient failure, so the caller can report
// it) and OutcomeCancelled (the context's error).
func (g *Guard) Activate(ctx context.Context) (Outcome, error) {
	st := g.store.Get()

	if st.SkipRevalidation {
		g.store.ClearSkipRevalidation()
		g.logger.Debug("guard: skip flag consumed")
		return OutcomeSkipped, nil
	}

	if st.User != nil {
		return OutcomeTrusted, nil
	}

	if !g.client.HasSessionCookie() {
		return OutcomeSignedOut, nil
	}

	g.store.SetLoading(true)
	defer g.store.SetLoading(false)

	if g.settle > 0 {
		timer := time.NewTimer(g.settle)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return OutcomeCancelled, ctx.Err()
		}
	}

	user, err := g.client.Me(ctx)
	if err != nil {
		if api.IsAuthError(err) {
			g.logger.Debug("guard: credential rejected, demoting session", "err", err)
			g.store.SetUser(nil)
			return OutcomeDemoted, nil
		}
		g.logger.Debug("guard: revalidation unreachable, session unchanged", "err", err)
		return OutcomeUnreachable, err
	}

	// A success response without a user confirms nothing: only an explicit
	// identity may be installed, and only a 401/403 may demote.
	if user == nil {
		g.logger.Debug("guard: revalidation returned no user, session unchanged")
		return OutcomeUnreachable, errors.New("session check returned no user")
	}

	g.store.SetUser(user)
	return OutcomeRevalidated, nil
}
