// Package middleware holds the fiber middleware of the HTTP API.
package middleware

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/leaseportal/internal/common"
	"github.com/dmitrijs2005/leaseportal/internal/logging"
	"github.com/dmitrijs2005/leaseportal/internal/server/auth"
	"github.com/dmitrijs2005/leaseportal/internal/server/http/presenter"
	"github.com/dmitrijs2005/leaseportal/internal/server/session"
	"github.com/gofiber/fiber/v2"
)

const (
	localSession   = "session"
	localSessionID = "session_id"
)

// Session returns the session manager attached by SessionLoader. It is
// logged out when the request carried no valid token.
func Session(c *fiber.Ctx) *session.Manager {
	if m, ok := c.Locals(localSession).(*session.Manager); ok {
		return m
	}
	return session.NewManager()
}

// SessionID returns the registry id of the request's session, if any.
func SessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(localSessionID).(string)
	return id
}

// SessionLoader resolves a Bearer token into a registered session.
type SessionLoader struct {
	secret []byte
	store  session.Store
	logger logging.Logger
}

func NewSessionLoader(secretKey string, store session.Store, logger logging.Logger) *SessionLoader {
	return &SessionLoader{
		secret: []byte(secretKey),
		store:  store,
		logger: logger.With("module", "session_middleware"),
	}
}

// Optional attaches the session when the token is valid and continues
// either way.
func (l *SessionLoader) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, _ = l.load(c)
		return c.Next()
	}
}

// Required rejects requests without an authenticated session.
func (l *SessionLoader) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := l.load(c)
		if err != nil {
			if errors.Is(err, common.ErrStorage) {
				return presenter.Error(c, fiber.StatusInternalServerError, "session registry unavailable")
			}
			return presenter.Error(c, fiber.StatusUnauthorized, "Please log in first.")
		}
		if !s.Authenticated {
			return presenter.Error(c, fiber.StatusUnauthorized, "Please log in first.")
		}
		return c.Next()
	}
}

func (l *SessionLoader) load(c *fiber.Ctx) (session.Session, error) {
	c.Locals(localSession, session.NewManager())

	tokenStr := bearerToken(c.Get(common.AuthorizationHeaderName))
	if tokenStr == "" {
		return session.Session{}, common.ErrUnauthorized
	}

	claims, err := auth.ParseToken(tokenStr, l.secret)
	if err != nil {
		return session.Session{}, err
	}

	s, err := l.store.Get(c.Context(), claims.SessionID)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			l.logger.Error(c.Context(), "session lookup failed", "error", err)
		}
		return session.Session{}, err
	}
	if s.Identity != claims.Email {
		return session.Session{}, common.ErrInvalidToken
	}

	c.Locals(localSession, session.Restore(s))
	c.Locals(localSessionID, claims.SessionID)
	return s, nil
}

// bearerToken accepts both "Bearer <token>" and a bare token.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if scheme, rest, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(rest)
	}
	return header
}
