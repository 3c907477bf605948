// Package session owns the authentication lifecycle: which credential is
// current, whether an identity has been resolved for it, and the durable
// persistence of the credential across restarts.
package session

import (
	"context"
	"log/slog"
	"sync"

	"finwise/internal/core"
	"finwise/internal/state"
)

// IdentityResolver looks up the profile behind a credential. Satisfied by
// the api client.
type IdentityResolver interface {
	FetchIdentity(ctx context.Context, cred core.Credential) (core.Identity, error)
}

// Store tracks the current credential and resolved identity.
//
// States: logged out; logged in with resolved identity; logged in with no
// identity (lookup failed or still pending). An identity lookup failure
// does not evict the credential: the caller decides between retry and
// logout.
type Store struct {
	state    *state.Store
	resolver IdentityResolver

	mu       sync.Mutex
	cred     core.Credential
	identity *core.Identity
	sessCtx  context.Context
	cancel   context.CancelFunc
}

func New(st *state.Store, resolver IdentityResolver) *Store {
	return &Store{state: st, resolver: resolver}
}

// Initialize loads a persisted credential if one exists and makes it
// current, resolving the identity behind it. It reports whether a session
// exists. A failed identity lookup leaves the session in place; the lookup
// error is returned alongside loggedIn=true so callers can show "identity
// unknown".
func (s *Store) Initialize(ctx context.Context) (bool, error) {
	cred, err := s.state.Credential(ctx)
	if err != nil {
		return false, err
	}
	if cred.IsZero() {
		return false, nil
	}
	resolveErr := s.setCurrent(cred)
	return true, resolveErr
}

// Login persists the credential durably, makes it current, and resolves
// the identity. The returned error, if any, is from identity resolution;
// the session is established regardless.
func (s *Store) Login(ctx context.Context, cred core.Credential) error {
	if err := s.state.SetCredential(ctx, cred); err != nil {
		return err
	}
	return s.setCurrent(cred)
}

// Logout cancels the session context so in-flight requests carrying the
// old credential cannot repopulate state, erases the persisted credential,
// and clears the current credential and identity.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cred = ""
	s.identity = nil
	s.sessCtx = nil
	s.cancel = nil
	s.mu.Unlock()

	return s.state.ClearCredential(ctx)
}

// ResolveIdentity re-runs the identity lookup for the current credential.
// On failure the identity becomes unknown but the credential stays.
func (s *Store) ResolveIdentity() error {
	s.mu.Lock()
	cred := s.cred
	ctx := s.sessCtx
	s.mu.Unlock()

	if cred.IsZero() {
		return nil
	}

	id, err := s.resolver.FetchIdentity(ctx, cred)

	s.mu.Lock()
	defer s.mu.Unlock()
	// The session may have been torn down while the lookup was in flight.
	if s.cred != cred {
		return nil
	}
	if err != nil {
		s.identity = nil
		slog.WarnContext(ctx, "Identity lookup failed, keeping credential", "error", err)
		return err
	}
	s.identity = &id
	return nil
}

// Token returns the current credential, or the zero credential when
// logged out.
func (s *Store) Token() core.Credential {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cred
}

// Identity returns the resolved identity and whether one is known.
func (s *Store) Identity() (core.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return core.Identity{}, false
	}
	return *s.identity, true
}

// LoggedIn reports whether a credential is current.
func (s *Store) LoggedIn() bool {
	return !s.Token().IsZero()
}

// Context returns the session-scoped context. Requests made on behalf of
// the session should use it so logout cancels them. Returns the background
// context when no session is active.
func (s *Store) Context() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessCtx == nil {
		return context.Background()
	}
	return s.sessCtx
}

func (s *Store) setCurrent(cred core.Credential) error {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cred = cred
	s.identity = nil
	// Scoped to the session, not the caller: the session outlives the call
	// that created it.
	s.sessCtx, s.cancel = context.WithCancel(context.Background())
	s.mu.Unlock()

	return s.ResolveIdentity()
}
