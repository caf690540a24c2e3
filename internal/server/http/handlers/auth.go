package handlers

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/leaseportal/internal/logging"
	"github.com/dmitrijs2005/leaseportal/internal/server/auth"
	"github.com/dmitrijs2005/leaseportal/internal/server/http/middleware"
	"github.com/dmitrijs2005/leaseportal/internal/server/http/presenter"
	"github.com/dmitrijs2005/leaseportal/internal/server/services"
	"github.com/dmitrijs2005/leaseportal/internal/server/session"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AuthHandler registers, logs in and logs out. A successful login creates a
// fresh session in the registry and returns a token bound to it.
type AuthHandler struct {
	portal     *services.Portal
	store      session.Store
	secret     []byte
	tokenTTL   time.Duration
	sessionTTL time.Duration
	logger     logging.Logger
}

func NewAuthHandler(portal *services.Portal, store session.Store, secretKey string, tokenTTL, sessionTTL time.Duration, logger logging.Logger) *AuthHandler {
	return &AuthHandler{
		portal:     portal,
		store:      store,
		secret:     []byte(secretKey),
		tokenTTL:   tokenTTL,
		sessionTTL: sessionTTL,
		logger:     logger.With("module", "auth_handler"),
	}
}

type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles user registration.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, fiber.StatusBadRequest, "invalid JSON payload")
	}

	sess := session.NewManager()
	if err := h.portal.Register(c.Context(), sess, strings.TrimSpace(req.Email), req.Password, req.ConfirmPassword); err != nil {
		return writeError(c, h.portal, err)
	}
	return h.issue(c, fiber.StatusCreated, sess, services.MsgRegisterSucceeded)
}

// Login handles user login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, fiber.StatusBadRequest, "invalid JSON payload")
	}

	sess := session.NewManager()
	if err := h.portal.Login(c.Context(), sess, strings.TrimSpace(req.Email), req.Password); err != nil {
		return writeError(c, h.portal, err)
	}
	return h.issue(c, fiber.StatusOK, sess, services.MsgLoginSucceeded)
}

func (h *AuthHandler) issue(c *fiber.Ctx, status int, sess *session.Manager, msg string) error {
	cur := sess.Current()
	sid := uuid.NewString()

	if err := h.store.Put(c.Context(), sid, cur, h.sessionTTL); err != nil {
		h.logger.Error(c.Context(), "saving session failed", "error", err)
		return writeError(c, h.portal, err)
	}

	token, err := auth.GenerateToken(sid, cur.Identity, h.secret, h.tokenTTL)
	if err != nil {
		h.logger.Error(c.Context(), "signing token failed", "error", err)
		return presenter.Error(c, fiber.StatusInternalServerError, "failed to issue token")
	}

	return presenter.JSON(c, status, presenter.AuthResponse{
		Message: msg,
		Token:   token,
		Session: presenter.Session(cur, h.portal.Welcome(sess)),
	})
}

// Logout resets the caller's session and forgets it in the registry. It
// succeeds without a token.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess := middleware.Session(c)
	h.portal.Logout(c.Context(), sess)

	if sid := middleware.SessionID(c); sid != "" {
		if err := h.store.Delete(c.Context(), sid); err != nil {
			return writeError(c, h.portal, err)
		}
	}

	return presenter.JSON(c, fiber.StatusOK, presenter.Session(sess.Current(), ""))
}

// Current describes the caller's session.
func (h *AuthHandler) Current(c *fiber.Ctx) error {
	sess := middleware.Session(c)
	return presenter.JSON(c, fiber.StatusOK, presenter.Session(h.portal.CurrentSession(sess), h.portal.Welcome(sess)))
}
