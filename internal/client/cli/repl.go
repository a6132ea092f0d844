package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context, status, search string) error
	Add(ctx context.Context) error
	Show(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

const (
	guestHelp = "Available commands: register, login, exit"
	userHelp  = "Available commands: (l)ist [status], search <text>, add, show <id>, status <id> <status>, delete <id>, logout, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a
// until EOF, "exit" or "quit". Command errors are printed and the loop goes
// on. Task commands need a signed-in user.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "gt %s> ", statusFn())

		line, readErr := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if readErr != nil {
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, userHelp)
			} else {
				fmt.Fprintln(w, guestHelp)
			}

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		case "logout", "l", "list", "search", "add", "show", "status", "delete":
			if !a.isLoggedIn() {
				fmt.Fprintln(w, "Please login first")
				break
			}
			err = dispatchTaskCommand(ctx, a, cmd, args, w)

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if err != nil {
			fmt.Fprintln(w, "Error:", err)
		}
		if readErr != nil {
			return
		}
	}
}

func dispatchTaskCommand(ctx context.Context, a execIface, cmd string, args []string, w io.Writer) error {
	switch cmd {
	case "logout":
		return a.Logout(ctx)

	case "l", "list":
		var status string
		if len(args) > 0 {
			status = args[0]
		}
		return a.List(ctx, status, "")

	case "search":
		if len(args) == 0 {
			fmt.Fprintln(w, "Usage: search <text>")
			return nil
		}
		return a.List(ctx, "", strings.Join(args, " "))

	case "add":
		return a.Add(ctx)

	case "show":
		if len(args) != 1 {
			fmt.Fprintln(w, "Usage: show <id>")
			return nil
		}
		return a.Show(ctx, args[0])

	case "status":
		if len(args) != 2 {
			fmt.Fprintln(w, "Usage: status <id> <open|in-progress|done>")
			return nil
		}
		return a.SetStatus(ctx, args[0], args[1])

	case "delete":
		if len(args) != 1 {
			fmt.Fprintln(w, "Usage: delete <id>")
			return nil
		}
		return a.Delete(ctx, args[0])
	}
	return nil
}
