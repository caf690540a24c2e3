package services

import (
	"context"
	"io"

	"github.com/dmitrijs2005/leaseportal/internal/common"
	"github.com/dmitrijs2005/leaseportal/internal/server/session"
)

// Portal is the set of operations a presentation layer calls. Every call
// takes the caller's session explicitly; file operations require it to be
// authenticated.
type Portal struct {
	auth  *AuthService
	files *FileService
	kb    KnowledgeBase
	bot   ChatBot
}

func NewPortal(auth *AuthService, files *FileService) *Portal {
	return &Portal{auth: auth, files: files}
}

func (p *Portal) Login(ctx context.Context, sess *session.Manager, email, password string) error {
	return p.auth.Login(ctx, sess, email, password)
}

func (p *Portal) Register(ctx context.Context, sess *session.Manager, email, password, confirm string) error {
	return p.auth.Register(ctx, sess, email, password, confirm)
}

func (p *Portal) Logout(ctx context.Context, sess *session.Manager) {
	p.auth.Logout(ctx, sess)
}

func (p *Portal) CurrentSession(sess *session.Manager) session.Session {
	return sess.Current()
}

// Welcome is the greeting for a logged-in session, empty otherwise.
func (p *Portal) Welcome(sess *session.Manager) string {
	cur := sess.Current()
	if !cur.Authenticated {
		return ""
	}
	return "Welcome, " + cur.DisplayName() + "!"
}

func (p *Portal) ListFiles(ctx context.Context, sess *session.Manager) ([]string, error) {
	if !sess.Current().Authenticated {
		return nil, common.ErrUnauthorized
	}
	return p.files.List(ctx)
}

func (p *Portal) UploadFile(ctx context.Context, sess *session.Manager, name string, r io.Reader, size int64) error {
	if !sess.Current().Authenticated {
		return common.ErrUnauthorized
	}
	return p.files.Store(ctx, name, r, size)
}

func (p *Portal) Topics() []string {
	return p.kb.Topics()
}

func (p *Portal) SelectTopic(topic string) (string, error) {
	return p.kb.Select(topic)
}

func (p *Portal) Chat(input string) (string, bool) {
	return p.bot.Reply(input)
}

// Message renders err for display using the configured domain suffix.
func (p *Portal) Message(err error) string {
	return Message(err, p.auth.DomainSuffix())
}
