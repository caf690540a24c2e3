package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Files(ctx context.Context) error
	Upload(ctx context.Context, path string) error
	Topics(ctx context.Context) error
	Topic(ctx context.Context, name string) error
	Chat(ctx context.Context, text string) error
	Sheet(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, whoami, exit"
	helpLoggedIn  = "Available commands: files, upload <path>, topics, topic <name>, chat <text>, sheet, whoami, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the portal console.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The rest of the line is the argument of
// upload, topic and chat. The loop exits on EOF or when the user types
// "exit" or "quit".
//
//	Not logged in:
//	  - help            show available commands
//	  - register        create an account and log in
//	  - login           authenticate
//	  - whoami          show the session
//	  - exit | quit     leave the program
//
//	Logged in, additionally:
//	  - files           list the file repository
//	  - upload <path>   store a local file under its base name
//	  - topics          list knowledge-base topics
//	  - topic <name>    select a topic
//	  - chat <text>     talk to the chatbot
//	  - sheet           show the reference spreadsheet
//	  - logout          log out
//
// Errors returned by command handlers are ignored here; handlers report
// them to the user themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("portal%s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil && line == "" {
			return
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)
		if cmd == "" {
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "files", "upload", "topics", "topic", "chat", "sheet", "logout":
			if !a.isLoggedIn() {
				printlnFn("Please log in first.")
				continue
			}
			runAuthenticated(ctx, a, cmd, arg)

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func runAuthenticated(ctx context.Context, a execIface, cmd, arg string) {
	switch cmd {
	case "files":
		_ = a.Files(ctx)
	case "upload":
		if arg == "" {
			printlnFn("Usage: upload <path>")
			return
		}
		_ = a.Upload(ctx, arg)
	case "topics":
		_ = a.Topics(ctx)
	case "topic":
		if arg == "" {
			printlnFn("Usage: topic <name>")
			return
		}
		_ = a.Topic(ctx, arg)
	case "chat":
		_ = a.Chat(ctx, arg)
	case "sheet":
		_ = a.Sheet(ctx)
	case "logout":
		_ = a.Logout(ctx)
	}
}
