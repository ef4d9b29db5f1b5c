// Package services contains the application services of the TrainIA client.
// This file defines the session manager: the single owner of the process-wide
// authentication state, orchestrating API calls and token persistence.
package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/trainia/trainia-cli/internal/client/client"
	"github.com/trainia/trainia-cli/internal/client/models"
	"github.com/trainia/trainia-cli/internal/client/repositories/token"
	"github.com/trainia/trainia-cli/internal/logging"
)

// Status is the authentication phase of the session.
type Status string

const (
	// StatusUnknown is the state before the startup check has started.
	StatusUnknown Status = "unknown"
	// StatusChecking means a stored token is being verified against the server.
	StatusChecking Status = "checking"
	// StatusAuthenticated means a token and user are present and accepted.
	StatusAuthenticated Status = "authenticated"
	// StatusUnauthenticated means no session exists.
	StatusUnauthenticated Status = "unauthenticated"
)

// Session is an immutable snapshot of the authentication state. Invariant:
// Status is StatusAuthenticated exactly when both Token and User are present,
// and StatusUnauthenticated only when both are absent.
type Session struct {
	Token  string
	User   *models.User
	Status Status
}

// LoggedIn reports whether the snapshot represents an authenticated session.
func (s Session) LoggedIn() bool {
	return s.Status == StatusAuthenticated
}

// SessionManager owns the single session of the running client.
//
// Contract:
//   - Check: startup verification of a previously stored token.
//   - Login: authenticate, persist the token, publish the authenticated state.
//   - Register, ForgotPassword: stateless pass-throughs, never touch the session.
//   - GetProfile, UpdateProfile: authenticated reads/writes refreshing the user.
//   - ChangePassword: on success the session is force-logged-out, the server
//     invalidates the old token when the credential changes.
//   - GetDeletionWarning: authenticated read, no session change.
//   - DeleteAccount: on success the session is logged out before returning.
//   - Logout: idempotent teardown, safe in any state.
//   - Current / Subscribe: snapshot access and change notifications.
//
// Every method must honor context cancellation. All errors surface unchanged
// except the startup check, which self-heals into the unauthenticated state.
type SessionManager interface {
	Check(ctx context.Context)
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, name, email, password, passwordConfirmation string) (string, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	GetProfile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, upd client.ProfileUpdate) (*models.User, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) (string, error)
	GetDeletionWarning(ctx context.Context) (*models.DeletionWarningData, error)
	DeleteAccount(ctx context.Context, password string, confirmDeletion bool) (string, error)
	Logout(ctx context.Context) error
	Current() Session
	Subscribe() <-chan Session
}

// sessionManager is the concrete SessionManager backed by an API client and
// a durable token repository.
type sessionManager struct {
	client client.Client
	tokens token.Repository
	log    logging.Logger

	mu   sync.Mutex
	cur  Session
	subs []chan Session
}

// NewSessionManager constructs a SessionManager in the StatusUnknown state.
// Call Check once at startup to seed the session from the token store.
func NewSessionManager(apiClient client.Client, tokens token.Repository, log logging.Logger) SessionManager {
	return &sessionManager{
		client: apiClient,
		tokens: tokens,
		log:    log,
		cur:    Session{Status: StatusUnknown},
	}
}

// Current returns the latest published session snapshot.
func (s *sessionManager) Current() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// Subscribe returns a channel receiving every published session snapshot.
// The channel is buffered; a subscriber that falls behind misses updates
// rather than blocking the session manager.
func (s *sessionManager) Subscribe() <-chan Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan Session, 8)
	s.subs = append(s.subs, ch)
	return ch
}

// set publishes next as the current session.
func (s *sessionManager) set(next Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = next
	s.notifyLocked()
}

// applyIfCurrent publishes next only if the session token has not changed
// since tok was used to issue the originating request. A late response from
// a call made under a cleared or replaced token is discarded, so a stale
// profile fetch can never resurrect a logged-out session.
func (s *sessionManager) applyIfCurrent(tok string, next Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur.Token != tok {
		return false
	}
	s.cur = next
	s.notifyLocked()
	return true
}

func (s *sessionManager) notifyLocked() {
	for _, ch := range s.subs {
		select {
		case ch <- s.cur:
		default:
		}
	}
}

// Check seeds the session from the token store. With no stored token the
// session becomes unauthenticated immediately, without a network call. With
// a token, the profile is fetched to verify it; any failure is treated as an
// invalid token, which is cleared. This is the only place an error is
// swallowed instead of surfaced.
func (s *sessionManager) Check(ctx context.Context) {
	tok, err := s.tokens.Load(ctx)
	if err != nil {
		s.log.Warn(ctx, "token load failed during startup check", "error", err)
		s.set(Session{Status: StatusUnauthenticated})
		return
	}
	if tok == "" {
		s.set(Session{Status: StatusUnauthenticated})
		return
	}

	s.set(Session{Token: tok, Status: StatusChecking})

	user, err := s.client.GetProfile(ctx)
	if err != nil {
		s.log.Info(ctx, "stored token rejected, clearing session", "error", err)
		if err := s.tokens.Clear(ctx); err != nil {
			s.log.Warn(ctx, "token clear failed", "error", err)
		}
		s.applyIfCurrent(tok, Session{Status: StatusUnauthenticated})
		return
	}
	s.applyIfCurrent(tok, Session{Token: tok, User: user, Status: StatusAuthenticated})
}

// Login authenticates, persists the returned token, and publishes the
// authenticated session. After that it refreshes the profile once; a failure
// of the refresh is non-fatal and the user record from the login response
// stays in place.
func (s *sessionManager) Login(ctx context.Context, email, password string) error {
	data, err := s.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if err := s.tokens.Save(ctx, data.Token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	user := data.User
	s.set(Session{Token: data.Token, User: &user, Status: StatusAuthenticated})

	if fresh, err := s.client.GetProfile(ctx); err != nil {
		s.log.Warn(ctx, "profile refresh after login failed", "error", err)
	} else {
		s.applyIfCurrent(data.Token, Session{Token: data.Token, User: fresh, Status: StatusAuthenticated})
	}
	return nil
}

// Register creates an account. The session state is untouched, a new account
// still has to log in.
func (s *sessionManager) Register(ctx context.Context, name, email, password, passwordConfirmation string) (string, error) {
	return s.client.Register(ctx, name, email, password, passwordConfirmation)
}

// ForgotPassword requests a reset email. The session state is untouched.
func (s *sessionManager) ForgotPassword(ctx context.Context, email string) (string, error) {
	return s.client.ForgotPassword(ctx, email)
}

// GetProfile fetches the current user and, on success, refreshes the stored
// user record. Failures are returned to the caller, who decides whether they
// invalidate the session; this method never clears it.
func (s *sessionManager) GetProfile(ctx context.Context) (*models.User, error) {
	tok := s.Current().Token
	user, err := s.client.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	s.applyIfCurrent(tok, Session{Token: tok, User: user, Status: StatusAuthenticated})
	return user, nil
}

// UpdateProfile sends a partial profile update and, on success, replaces the
// stored user with the server's record. Supplying at least one field is the
// caller's responsibility.
func (s *sessionManager) UpdateProfile(ctx context.Context, upd client.ProfileUpdate) (*models.User, error) {
	tok := s.Current().Token
	user, err := s.client.UpdateProfile(ctx, upd)
	if err != nil {
		return nil, err
	}
	s.applyIfCurrent(tok, Session{Token: tok, User: user, Status: StatusAuthenticated})
	return user, nil
}

// ChangePassword changes the credential and then logs the session out: the
// server invalidates the old token once the password changes, so keeping it
// would leave a session that only appears alive.
func (s *sessionManager) ChangePassword(ctx context.Context, currentPassword, newPassword string) (string, error) {
	msg, err := s.client.ChangePassword(ctx, currentPassword, newPassword)
	if err != nil {
		return "", err
	}
	if err := s.Logout(ctx); err != nil {
		s.log.Warn(ctx, "logout after password change failed", "error", err)
	}
	return msg, nil
}

// GetDeletionWarning fetches the pre-deletion summary. No session change.
func (s *sessionManager) GetDeletionWarning(ctx context.Context) (*models.DeletionWarningData, error) {
	return s.client.GetDeletionWarning(ctx)
}

// DeleteAccount destroys the account and logs out immediately on success,
// before the result reaches the caller.
func (s *sessionManager) DeleteAccount(ctx context.Context, password string, confirmDeletion bool) (string, error) {
	msg, err := s.client.DeleteAccount(ctx, password, confirmDeletion)
	if err != nil {
		return "", err
	}
	if err := s.Logout(ctx); err != nil {
		s.log.Warn(ctx, "logout after account deletion failed", "error", err)
	}
	return msg, nil
}

// Logout clears the stored token and publishes the unauthenticated state.
// It is idempotent and available from any state.
func (s *sessionManager) Logout(ctx context.Context) error {
	if err := s.tokens.Clear(ctx); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	s.set(Session{Status: StatusUnauthenticated})
	return nil
}
