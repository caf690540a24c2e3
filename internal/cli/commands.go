package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/leaseportal/internal/common"
	"github.com/dmitrijs2005/leaseportal/internal/server/services"
	"github.com/dmitrijs2005/leaseportal/internal/server/sheet"
)

func (a *App) fail(err error) error {
	fmt.Fprintln(a.out, a.portal.Message(err))
	return err
}

func (a *App) readSecret(prompt string) (string, error) {
	pw, err := GetPassword(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

func (a *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := a.readSecret("Password")
	if err != nil {
		return err
	}
	confirm, err := a.readSecret("Confirm Password")
	if err != nil {
		return err
	}

	if err := a.portal.Register(ctx, a.sess, email, password, confirm); err != nil {
		return a.fail(err)
	}

	fmt.Fprintln(a.out, services.MsgRegisterSucceeded)
	fmt.Fprintln(a.out, a.portal.Welcome(a.sess))
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := a.readSecret("Password")
	if err != nil {
		return err
	}

	if err := a.portal.Login(ctx, a.sess, email, password); err != nil {
		return a.fail(err)
	}

	fmt.Fprintln(a.out, services.MsgLoginSucceeded)
	fmt.Fprintln(a.out, a.portal.Welcome(a.sess))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.portal.Logout(ctx, a.sess)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	cur := a.portal.CurrentSession(a.sess)
	if !cur.Authenticated {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", cur.Identity)
	return nil
}

func (a *App) Files(ctx context.Context) error {
	names, err := a.portal.ListFiles(ctx, a.sess)
	if err != nil {
		return a.fail(err)
	}

	if len(names) == 0 {
		fmt.Fprintln(a.out, services.MsgNoFiles)
		return nil
	}
	fmt.Fprintln(a.out, "Uploaded Files:")
	for _, n := range names {
		fmt.Fprintln(a.out, n)
	}
	return nil
}

// Upload stores the local file at path under its base name.
func (a *App) Upload(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(a.out, "Cannot open %s: %v\n", path, err)
		return err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		fmt.Fprintf(a.out, "Cannot open %s: %v\n", path, err)
		return err
	}
	if st.IsDir() {
		fmt.Fprintf(a.out, "%s is a directory\n", path)
		return errors.New("is a directory")
	}

	name := filepath.Base(path)
	if err := a.portal.UploadFile(ctx, a.sess, name, f, st.Size()); err != nil {
		return a.fail(err)
	}

	fmt.Fprintf(a.out, services.MsgUploadSucceededTmpl+"\n", name)
	return nil
}

func (a *App) Topics(ctx context.Context) error {
	fmt.Fprintln(a.out, "Select Your Knowledge Base")
	for _, t := range a.portal.Topics() {
		fmt.Fprintln(a.out, "  "+t)
	}
	return nil
}

func (a *App) Topic(ctx context.Context, name string) error {
	msg, err := a.portal.SelectTopic(name)
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) Chat(ctx context.Context, text string) error {
	if reply, ok := a.portal.Chat(text); ok {
		fmt.Fprintln(a.out, reply)
	}
	return nil
}

func (a *App) Sheet(ctx context.Context) error {
	s, err := sheet.Load(a.sheetPath)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Fprintln(a.out, "No reference sheet configured.")
			return nil
		}
		return a.fail(err)
	}
	fmt.Fprintln(a.out, s.String())
	return nil
}
