package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/flashly/flashly/internal/client/client"
	"github.com/flashly/flashly/internal/client/editor"
	"github.com/flashly/flashly/internal/client/services"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Fprintln

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Sets(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	New(ctx context.Context) error
	Rename(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Study(ctx context.Context, args []string) error
	Generate(ctx context.Context, args []string) error
}

const (
	helpGuest = "Available commands: register, login, exit"
	helpUser  = "Available commands: sets, show <id>, new, rename <id>, delete <id>, edit <id>, " +
		"study <id> [shuffle], generate <id> [file], logout, exit"
)

// runREPL reads commands line by line and dispatches them to a. It returns
// on EOF or when the user types "exit" or "quit". Command errors are printed
// and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		printlnFn(w, fmt.Sprintf("flashly %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn(w, "Bye!")
			return
		}

		if err := dispatch(ctx, a, w, cmd, args); err != nil {
			printlnFn(w, errText(describeError(err)))
			// a rejected token is useless, drop the local session
			if errors.Is(err, client.ErrUnauthorized) && cmd != "login" && a.isLoggedIn() {
				_ = a.Logout(ctx)
			}
		}
	}
}

func dispatch(ctx context.Context, a execIface, w io.Writer, cmd string, args []string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(w, helpUser)
		} else {
			printlnFn(w, helpGuest)
		}
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	}

	if !a.isLoggedIn() {
		switch cmd {
		case "logout", "sets", "ls", "show", "new", "rename", "delete", "edit", "study", "generate":
			return errLoginRequired
		}
		printlnFn(w, "Unknown command:", cmd)
		return nil
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "sets", "ls":
		return a.Sets(ctx)
	case "show":
		return a.Show(ctx, args)
	case "new":
		return a.New(ctx)
	case "rename":
		return a.Rename(ctx, args)
	case "delete":
		return a.Delete(ctx, args)
	case "edit":
		return a.Edit(ctx, args)
	case "study":
		return a.Study(ctx, args)
	case "generate":
		return a.Generate(ctx, args)
	default:
		printlnFn(w, "Unknown command:", cmd)
		return nil
	}
}

var errLoginRequired = errors.New("please log in first")

// readLine returns the next line without its terminator. A final line
// without a newline is returned before io.EOF.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// describeError turns an error into a message fit for the terminal.
func describeError(err error) string {
	var se *editor.SyncError
	switch {
	case errors.As(err, &se):
		return se.Message
	case errors.Is(err, services.ErrNotCached):
		return "This study set is not available offline."
	case errors.Is(err, client.ErrUnauthorized):
		return "Your session has expired. Please log in again."
	case errors.Is(err, client.ErrNotFound):
		return "Study set not found."
	case errors.Is(err, client.ErrTransport):
		return "Cannot reach the server. Check your connection and try again."
	}
	var re *client.RemoteError
	if errors.As(err, &re) {
		return re.RemoteMessage()
	}
	return "Error: " + err.Error()
}
