package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dverbis/itemkeeper/internal/client/guard"
	"github.com/dverbis/itemkeeper/internal/client/session"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	sessionStatus() session.Status
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context) error
	Delete(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the itemkeeper CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Authenticated only (guarded on session status):
//	  - list | l       — list items
//	  - add            — create an item
//	  - edit           — edit an item
//	  - delete         — delete an item
//	  - whoami         — show the current account
//	  - logout         — log out
//
// Guarded commands never run while the session is unresolved or anonymous:
// the user is told to wait or to log in instead. Any errors returned by
// command handlers are ignored here; handlers print their own errors. This
// keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("ik %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.sessionStatus() == session.StatusAuthenticated {
				printlnFn("Available commands: (l)ist, add, edit, delete, whoami, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "l", "list":
			guarded(ctx, a, a.List)

		case "add":
			guarded(ctx, a, a.Add)

		case "edit":
			guarded(ctx, a, a.Edit)

		case "delete":
			guarded(ctx, a, a.Delete)

		case "whoami":
			guarded(ctx, a, a.WhoAmI)

		case "logout":
			guarded(ctx, a, a.Logout)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

// guarded runs fn only when the session status admits protected commands.
func guarded(ctx context.Context, a execIface, fn func(context.Context) error) {
	switch guard.Decide(a.sessionStatus()) {
	case guard.ShowLoading:
		printlnFn("Session is still resolving, try again in a moment")
	case guard.RedirectToLogin:
		printlnFn("Please log in first")
	default:
		_ = fn(ctx)
	}
}
