package auth

import (
	"context"
	"time"

	"buddylist/backend/internal/session"
	"buddylist/backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrUnauthenticated is returned for missing, invalid, expired or revoked
// credentials.
var ErrUnauthenticated = errors.New("not authenticated")

// Authenticator resolves a credential to a user id. A credential is a
// signed token naming a session, and it is accepted only while that session
// is still in the store.
type Authenticator struct {
	tokens   *jwt.Manager
	sessions session.Store
	now      func() time.Time
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(tokens *jwt.Manager, sessions session.Store) *Authenticator {
	return &Authenticator{
		tokens:   tokens,
		sessions: sessions,
		now:      time.Now,
	}
}

// IssueSession starts a session for userID and returns its token.
func (a *Authenticator) IssueSession(ctx context.Context, userID uint) (string, time.Time, error) {
	sessionID := uuid.NewString()
	token, expiresAt, err := a.tokens.GenerateToken(userID, sessionID)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "sign session token failed")
	}

	sess := &session.Session{
		ID:        sessionID,
		UserID:    userID,
		CreatedAt: a.now().UTC(),
		ExpiresAt: expiresAt.UTC(),
	}
	if err := a.sessions.Save(ctx, sess); err != nil {
		return "", time.Time{}, errors.Wrap(err, "save session failed")
	}
	return token, expiresAt, nil
}

// Authenticate returns the user a credential belongs to.
func (a *Authenticator) Authenticate(ctx context.Context, credential string) (uint, string, error) {
	if credential == "" {
		return 0, "", ErrUnauthenticated
	}

	claims, err := a.tokens.ParseToken(credential)
	if err != nil {
		return 0, "", ErrUnauthenticated
	}
	userID, err := claims.UserID()
	if err != nil {
		return 0, "", ErrUnauthenticated
	}

	sess, err := a.sessions.Get(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return 0, "", ErrUnauthenticated
		}
		return 0, "", errors.Wrap(err, "load session failed")
	}
	if sess.UserID != userID {
		return 0, "", ErrUnauthenticated
	}
	return userID, sess.ID, nil
}

// Revoke ends the session a credential names. The credential must still
// be valid.
func (a *Authenticator) Revoke(ctx context.Context, credential string) error {
	_, sessionID, err := a.Authenticate(ctx, credential)
	if err != nil {
		return err
	}
	if err := a.sessions.Delete(ctx, sessionID); err != nil {
		return errors.Wrap(err, "delete session failed")
	}
	return nil
}
