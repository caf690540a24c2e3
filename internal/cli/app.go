package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/leaseportal/internal/logging"
	"github.com/dmitrijs2005/leaseportal/internal/server/config"
	"github.com/dmitrijs2005/leaseportal/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/leaseportal/internal/server/services"
	"github.com/dmitrijs2005/leaseportal/internal/server/session"
	"github.com/dmitrijs2005/leaseportal/internal/server/storage"
)

type App struct {
	portal    *services.Portal
	sess      *session.Manager
	sheetPath string
	reader    *bufio.Reader
	out       io.Writer
	closer    io.Closer
}

// NewApp opens the stores named in c. Service logs go to stderr so they do
// not interleave with the prompts on out.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out io.Writer) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(c.LogBackend, "text", os.Stderr)
	if err != nil {
		return nil, err
	}

	repo, closer, err := repomanager.OpenCredentials(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("credential store init error: %w", err)
	}

	st, err := storage.New(ctx, c)
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("file repository init error: %w", err)
	}

	authSvc := services.NewAuthService(repo, services.NewHasher(c), c, logger)
	portal := services.NewPortal(authSvc, services.NewFileService(st, c.SanitizeNames, logger))

	a := newApp(portal, c.SheetPath, in, out)
	a.closer = closer
	return a, nil
}

func newApp(portal *services.Portal, sheetPath string, in io.Reader, out io.Writer) *App {
	return &App{
		portal:    portal,
		sess:      session.NewManager(),
		sheetPath: sheetPath,
		reader:    bufio.NewReader(in),
		out:       out,
	}
}

func (a *App) isLoggedIn() bool {
	return a.sess.Current().Authenticated
}

func (a *App) getStatus() string {
	if name := a.sess.DisplayName(); name != "" {
		return fmt.Sprintf(" (%s)", name)
	}
	return ""
}

// Run prints the banner and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, services.MsgTitle)
	fmt.Fprintln(a.out, "Type 'help' for commands.")

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() {
	if a.closer != nil {
		_ = a.closer.Close()
		a.closer = nil
	}
}
