package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/contosparadormir/contos/internal/sessions"
	"github.com/contosparadormir/contos/internal/tokens"
	"github.com/contosparadormir/contos/pkg/logger"
)

var (
	// ErrUnauthorized is returned by Login for a wrong password.
	ErrUnauthorized = errors.New("invalid password")
	// ErrForbidden is returned by Authorize when the caller holds no admin session.
	ErrForbidden = errors.New("admin access required")
)

// Gate performs admin login/logout and decides whether a request carrying
// a session cookie value may reach a protected handler.
type Gate struct {
	secret       Secret
	sessions     *sessions.Service
	cookieSecret string
}

func NewGate(secret Secret, s *sessions.Service, cookieSecret string) *Gate {
	return &Gate{secret: secret, sessions: s, cookieSecret: cookieSecret}
}

// Login checks password and on success opens an admin session, returning
// the signed cookie value the caller must hand to the client. A wrong
// password returns ErrUnauthorized and leaves session state untouched.
func (g *Gate) Login(ctx context.Context, password string) (string, *sessions.Session, error) {
	if !g.secret.Matches(password) {
		return "", nil, ErrUnauthorized
	}
	sess, err := g.sessions.Create(ctx, true)
	if err != nil {
		return "", nil, err
	}
	cookie, err := tokens.SignSessionID(g.cookieSecret, sess.ID, sess.CreatedAt, sess.ExpiresAt)
	if err != nil {
		_ = g.sessions.Destroy(ctx, sess.ID)
		return "", nil, fmt.Errorf("sign session: %w", err)
	}
	return cookie, sess, nil
}

// Logout destroys the session referenced by cookie. A missing or invalid
// cookie is a successful no-op; only backend failures are returned.
func (g *Gate) Logout(ctx context.Context, cookie string) error {
	sid, err := tokens.ParseSessionID(g.cookieSecret, cookie)
	if err != nil {
		return nil
	}
	return g.sessions.Destroy(ctx, sid)
}

// session resolves cookie to a live session, or nil.
func (g *Gate) session(ctx context.Context, cookie string) (*sessions.Session, error) {
	if cookie == "" {
		return nil, nil
	}
	sid, err := tokens.ParseSessionID(g.cookieSecret, cookie)
	if err != nil {
		logger.Debugf("rejecting session cookie: %v", err)
		return nil, nil
	}
	return g.sessions.Lookup(ctx, sid)
}

// Authorize returns nil only for a live session with admin rights. Backend
// failures are returned as-is so callers can tell them apart from
// ErrForbidden.
func (g *Gate) Authorize(ctx context.Context, cookie string) error {
	sess, err := g.session(ctx, cookie)
	if err != nil {
		return err
	}
	if sess == nil || !sess.IsAdmin {
		return ErrForbidden
	}
	return nil
}

// IsAdmin reports admin status for the status-check endpoint. It never
// fails: any internal error reads as false.
func (g *Gate) IsAdmin(ctx context.Context, cookie string) bool {
	err := g.Authorize(ctx, cookie)
	if err != nil && !errors.Is(err, ErrForbidden) {
		logger.Warnf("admin status check failed: %v", err)
	}
	return err == nil
}
