// Package services holds the portal's business logic: authentication
// against the credential table, the file repository, and the small
// knowledge-base and chat helpers shown after login.
package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/leaseportal/internal/common"
	"github.com/dmitrijs2005/leaseportal/internal/logging"
	"github.com/dmitrijs2005/leaseportal/internal/server/config"
	"github.com/dmitrijs2005/leaseportal/internal/server/models"
	"github.com/dmitrijs2005/leaseportal/internal/server/repositories/credentials"
	"github.com/dmitrijs2005/leaseportal/internal/server/session"
)

// AuthService validates identities against the credential table and moves
// a session.Manager between the logged-out and logged-in states.
//
// In strict mode a login needs one record carrying both the email and the
// password. In compat mode the email and the password only have to appear
// somewhere in the table, possibly on different records; this mirrors the
// legacy portal and lets a user log in with another user's password.
type AuthService struct {
	repo         credentials.Repository
	hasher       Hasher
	domainSuffix string
	compat       bool
	logger       logging.Logger
}

func NewAuthService(repo credentials.Repository, hasher Hasher, cfg *config.Config, logger logging.Logger) *AuthService {
	return &AuthService{
		repo:         repo,
		hasher:       hasher,
		domainSuffix: cfg.DomainSuffix,
		compat:       cfg.MatchMode == config.MatchModeCompat,
		logger:       logger.With("module", "auth_service"),
	}
}

// NewHasher picks the password hasher configured in cfg.
func NewHasher(cfg *config.Config) Hasher {
	if cfg.HashPasswords {
		return BcryptHasher{Cost: cfg.BcryptCost}
	}
	return PlainHasher{}
}

func (s *AuthService) DomainSuffix() string {
	return s.domainSuffix
}

func (s *AuthService) checkDomain(email string) error {
	if !strings.HasSuffix(email, s.domainSuffix) {
		return common.ErrInvalidDomain
	}
	return nil
}

// Login authenticates sess as email. On any failure sess is left unchanged.
func (s *AuthService) Login(ctx context.Context, sess *session.Manager, email, password string) error {
	if err := s.checkDomain(email); err != nil {
		s.logger.Info(ctx, "login rejected", "reason", "domain")
		return err
	}

	records, err := s.repo.LoadAll(ctx)
	if err != nil {
		s.logger.Error(ctx, "loading credentials failed", "error", err)
		return err
	}
	if len(records) == 0 {
		s.logger.Info(ctx, "login rejected", "reason", "no users")
		return common.ErrNoRegisteredUsers
	}

	var ok bool
	if s.compat {
		ok = s.crossMatch(records, email, password)
	} else {
		ok = s.match(records, email, password)
	}
	if !ok {
		s.logger.Info(ctx, "login rejected", "email", email, "reason", "credentials")
		return common.ErrInvalidCredentials
	}

	sess.Authenticate(email)
	s.logger.Info(ctx, "login succeeded", "email", email)
	return nil
}

// match scans every record so the time taken does not depend on which
// record matched.
func (s *AuthService) match(records []models.Credential, email, password string) bool {
	found := false
	for _, r := range records {
		if r.Email == email && s.hasher.Matches(r.Password, password) {
			found = true
		}
	}
	return found
}

// crossMatch hashes candidates only until one password matches; the email
// scan still covers every record.
func (s *AuthService) crossMatch(records []models.Credential, email, password string) bool {
	emailFound, passwordFound := false, false
	for _, r := range records {
		if r.Email == email {
			emailFound = true
		}
		if !passwordFound && s.hasher.Matches(r.Password, password) {
			passwordFound = true
		}
	}
	return emailFound && passwordFound
}

// Register appends a credential record and logs sess in as email.
// Registering an email twice adds a second record.
func (s *AuthService) Register(ctx context.Context, sess *session.Manager, email, password, confirm string) error {
	if err := s.checkDomain(email); err != nil {
		s.logger.Info(ctx, "registration rejected", "reason", "domain")
		return err
	}
	if password != confirm {
		s.logger.Info(ctx, "registration rejected", "email", email, "reason", "mismatch")
		return common.ErrPasswordMismatch
	}

	stored, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	if err := s.repo.Append(ctx, models.Credential{Email: email, Password: stored}); err != nil {
		s.logger.Error(ctx, "storing credentials failed", "email", email, "error", err)
		return err
	}

	sess.Authenticate(email)
	s.logger.Info(ctx, "registered", "email", email)
	return nil
}

func (s *AuthService) Logout(ctx context.Context, sess *session.Manager) {
	if cur := sess.Current(); cur.Authenticated {
		s.logger.Info(ctx, "logout", "email", cur.Identity)
	}
	sess.Reset()
}
