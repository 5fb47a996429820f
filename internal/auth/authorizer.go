// Package auth implements email/password login with in-memory sessions.
package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/grupo-nexus/planner/internal/model"
	"github.com/grupo-nexus/planner/internal/store"
	"github.com/grupo-nexus/planner/internal/validate"
)

// Session is the authenticated-user handle carried by a bearer token.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Authorizer validates credentials and session tokens.
type Authorizer interface {
	Login(ctx context.Context, email, password string) (*Session, error)
	Logout(ctx context.Context, token string) error
	Verify(ctx context.Context, token string) (*Session, error)
}

// SessionAuthorizer keeps sessions in memory: a restart logs everyone out,
// which matches the session-persistence behavior of the product.
type SessionAuthorizer struct {
	store   store.Store
	ttl     time.Duration
	limiter *loginLimiter

	mu       sync.Mutex
	sessions map[string]*Session

	now func() time.Time
}

// NewSessionAuthorizer wires an authorizer over the user store.
func NewSessionAuthorizer(s store.Store, ttl time.Duration, maxFailures int, window time.Duration) *SessionAuthorizer {
	return &SessionAuthorizer{
		store:    s,
		ttl:      ttl,
		limiter:  newLoginLimiter(maxFailures, window),
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Login checks credentials and issues a session token. Failures are
// reported as *model.AuthError; unknown-email and wrong-password are
// indistinguishable to callers.
func (a *SessionAuthorizer) Login(ctx context.Context, email, password string) (*Session, error) {
	if err := validate.Credentials(email, password); err != nil {
		return nil, err
	}
	if a.limiter.blocked(email, a.now()) {
		return nil, &model.AuthError{Kind: model.AuthRateLimited}
	}

	user, err := a.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			a.limiter.recordFailure(email, a.now())
			return nil, &model.AuthError{Kind: model.AuthInvalidCredential}
		}
		return nil, &model.AuthError{Kind: model.AuthUnknown, Err: err}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		a.limiter.recordFailure(email, a.now())
		return nil, &model.AuthError{Kind: model.AuthInvalidCredential}
	}
	a.limiter.reset(email)

	sess := &Session{
		Token:     uuid.New().String(),
		UserID:    user.UserID,
		Email:     user.Email,
		ExpiresAt: a.now().Add(a.ttl),
	}
	a.mu.Lock()
	a.sessions[sess.Token] = sess
	a.mu.Unlock()
	return sess, nil
}

// Logout invalidates a token. Unknown tokens are not an error.
func (a *SessionAuthorizer) Logout(ctx context.Context, token string) error {
	a.mu.Lock()
	delete(a.sessions, token)
	a.mu.Unlock()
	return nil
}

// Verify resolves a bearer token to its session, dropping expired ones.
func (a *SessionAuthorizer) Verify(ctx context.Context, token string) (*Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	sess, ok := a.sessions[token]
	if !ok {
		return nil, &model.AuthError{Kind: model.AuthInvalidCredential}
	}
	if a.now().After(sess.ExpiresAt) {
		delete(a.sessions, token)
		return nil, &model.AuthError{Kind: model.AuthInvalidCredential}
	}
	return sess, nil
}
