// ABOUTME: Session state machine: who is using the app right now
// ABOUTME: Single owner of the bearer token and cached profile

package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/evmarket/evmarket-cli/internal/api"
)

// State is the visitor's authentication state.
type State int

const (
	// StateUnknown holds until the first Restore completes.
	StateUnknown State = iota
	StateAnonymous
	StateAuthenticated
	StateAuthenticatedAdmin
)

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	case StateAuthenticatedAdmin:
		return "authenticated_admin"
	default:
		return "invalid"
	}
}

// Snapshot is an immutable view of the session handed to observers.
// IsAdmin implies IsAuthenticated; IsAuthenticated implies User is non-nil.
type Snapshot struct {
	State   State
	User    *api.User
	Loading bool
}

// IsAuthenticated reports whether a user is logged in.
func (s Snapshot) IsAuthenticated() bool {
	return s.State == StateAuthenticated || s.State == StateAuthenticatedAdmin
}

// IsAdmin reports whether the logged-in user carries the admin role.
func (s Snapshot) IsAdmin() bool {
	return s.State == StateAuthenticatedAdmin
}

// AuthAPI is the slice of the API client the session store depends on.
type AuthAPI interface {
	Login(ctx context.Context, creds api.Credentials) (*api.LoginResult, api.Envelope)
	Register(ctx context.Context, reg api.Registration) api.Envelope
	VerifyOTP(ctx context.Context, email, code string) api.Envelope
	ResendOTP(ctx context.Context, email string) api.Envelope
	ForgotPassword(ctx context.Context, email string) api.Envelope
	ChangePassword(ctx context.Context, change api.PasswordChange) api.Envelope
	Me(ctx context.Context) (*api.User, api.Envelope)
}

// Store is the session state machine. Views read snapshots and subscribe to
// transitions; only the operations below mutate state. The constructor
// requires both collaborators, so a store can never exist half-wired.
type Store struct {
	auth  AuthAPI
	creds *CredStore

	mu      sync.RWMutex
	state   State
	user    *api.User
	loading bool
	subs    map[int]func(Snapshot)
	nextSub int
	now     func() time.Time
}

// NewStore creates a session store over the given auth client and
// credential store.
func NewStore(auth AuthAPI, creds *CredStore) *Store {
	return &Store{
		auth:  auth,
		creds: creds,
		state: StateUnknown,
		subs:  make(map[int]func(Snapshot)),
		now:   time.Now,
	}
}

// Snapshot returns the current session view.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{State: s.state, User: s.user, Loading: s.loading}
}

// Subscribe registers an observer for state transitions and returns a
// cancel function. The observer is called outside the store's lock.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Restore rebuilds the session from the credential file. Called once at
// startup. Total: it always terminates in Anonymous, Authenticated, or
// AuthenticatedAdmin with Loading false, and never performs network I/O.
func (s *Store) Restore(ctx context.Context) Snapshot {
	s.setLoading(true)

	rec, _ := s.creds.Load()
	switch {
	case rec.Token == "" || rec.User == nil:
		// An orphan token without its profile cannot satisfy the
		// authenticated invariant; drop it.
		if rec.Token != "" {
			s.creds.Clear()
		}
		s.commit(StateAnonymous, nil)
	case tokenExpired(rec.Token, s.now()):
		s.creds.Clear()
		s.commit(StateAnonymous, nil)
	default:
		s.commit(stateForUser(rec.User), rec.User)
	}

	snap := s.Snapshot()
	slog.Debug("session restored", "state", snap.State.String())
	return snap
}

// Login authenticates and, on success, atomically persists the token, sets
// the user, and flips the state. On failure nothing changes and the
// envelope's message is surfaced to the caller.
func (s *Store) Login(ctx context.Context, email, password string) api.Envelope {
	s.setLoading(true)

	result, env := s.auth.Login(ctx, api.Credentials{Email: email, Password: password})
	if !env.Success {
		slog.Debug("login rejected", "status", env.Status)
		s.setLoading(false)
		return env
	}

	// A failed re-login must leave the previous session intact, on disk as
	// well as in memory.
	prev, _ := s.creds.Load()
	rollback := func() {
		if prev.Token != "" && prev.User != nil {
			s.creds.Save(prev)
		} else {
			s.creds.Clear()
		}
	}

	user := result.User
	if user == nil {
		// Token-only login payload: stage the token so the profile fetch
		// is authenticated, then roll back if it fails.
		if err := s.creds.Save(Record{Token: result.Token}); err != nil {
			s.setLoading(false)
			return api.Envelope{Success: false, Message: env.Message, Err: &api.CallError{Kind: api.KindTransport, Message: "cannot persist session"}}
		}
		fetched, meEnv := s.auth.Me(ctx)
		if !meEnv.Success {
			rollback()
			s.setLoading(false)
			return meEnv
		}
		user = fetched
	}

	if err := s.creds.Save(Record{Token: result.Token, User: user}); err != nil {
		rollback()
		s.setLoading(false)
		return api.Envelope{Success: false, Message: env.Message, Err: &api.CallError{Kind: api.KindTransport, Message: "cannot persist session"}}
	}

	s.commit(stateForUser(user), user)
	return env
}

// Logout clears the persisted credentials and returns to anonymous. Local
// only: it has no network failure mode.
func (s *Store) Logout() {
	s.creds.Clear()
	s.commit(StateAnonymous, nil)
}

// Invalidate resets the session after a previously valid token was rejected
// by the backend. Callers invoke it when an envelope carries
// KindSessionInvalid; unrelated 401s must not end the session.
func (s *Store) Invalidate() {
	s.creds.Clear()
	s.commit(StateAnonymous, nil)
}

// Register creates an account. It never authenticates: the visitor must
// verify the OTP and then log in.
func (s *Store) Register(ctx context.Context, reg api.Registration) api.Envelope {
	s.setLoading(true)
	env := s.auth.Register(ctx, reg)
	s.setLoading(false)
	return env
}

// VerifyOTP confirms a registration code. Session state is unchanged; a
// subsequent Login authenticates.
func (s *Store) VerifyOTP(ctx context.Context, email, code string) api.Envelope {
	s.setLoading(true)
	env := s.auth.VerifyOTP(ctx, email, code)
	s.setLoading(false)
	return env
}

// ResendOTP requests a fresh verification code.
func (s *Store) ResendOTP(ctx context.Context, email string) api.Envelope {
	return s.auth.ResendOTP(ctx, email)
}

// ForgotPassword starts the reset flow.
func (s *Store) ForgotPassword(ctx context.Context, email string) api.Envelope {
	return s.auth.ForgotPassword(ctx, email)
}

// ChangePassword updates the password for the logged-in user.
func (s *Store) ChangePassword(ctx context.Context, change api.PasswordChange) api.Envelope {
	return s.auth.ChangePassword(ctx, change)
}

func stateForUser(user *api.User) State {
	if user.IsAdmin() {
		return StateAuthenticatedAdmin
	}
	return StateAuthenticated
}

// commit flips the visible state in one step and notifies observers.
func (s *Store) commit(state State, user *api.User) {
	s.mu.Lock()
	s.state = state
	s.user = user
	s.loading = false
	snap := Snapshot{State: s.state, User: s.user, Loading: s.loading}
	subs := s.observers()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func (s *Store) setLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	snap := Snapshot{State: s.state, User: s.user, Loading: s.loading}
	subs := s.observers()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// observers copies the subscriber list; callers hold the lock.
func (s *Store) observers() []func(Snapshot) {
	out := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}
