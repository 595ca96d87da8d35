package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Sync(ctx context.Context) error
	Contacts(ctx context.Context) error
	Groups(ctx context.Context) error
	Select(ctx context.Context, args []string) error
	NewGroup(ctx context.Context) error
	AddContact(ctx context.Context, args []string) error
	Share(ctx context.Context, args []string) error
	Shares(ctx context.Context) error
	Accept(ctx context.Context, args []string) error
	Permissions(ctx context.Context, args []string) error
	Encrypt(ctx context.Context) error
	Decrypt(ctx context.Context) error
	DecryptAll(ctx context.Context) error
	SetImage(ctx context.Context, args []string) error
	GetImage(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: sync, contacts, groups, select, newgroup, addcontact, " +
		"share, shares, accept, permissions, encrypt, decrypt, decryptall, setimage, getimage, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the gliphic CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command and the rest as its arguments, and dispatches to methods on 'a'.
// Commands other than help, register, login and exit need a logged in
// session. The loop exits on scanner EOF or when the user types "exit" or
// "quit".
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("gliphic %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue
		case "register":
			_ = a.Register(ctx)
			continue
		case "login":
			_ = a.Login(ctx)
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if !a.isLoggedIn() {
			printlnFn("Please log in first. Type 'help' for commands.")
			continue
		}

		switch cmd {
		case "logout":
			_ = a.Logout(ctx)
		case "sync":
			_ = a.Sync(ctx)
		case "contacts":
			_ = a.Contacts(ctx)
		case "groups":
			_ = a.Groups(ctx)
		case "select":
			_ = a.Select(ctx, args)
		case "newgroup":
			_ = a.NewGroup(ctx)
		case "addcontact":
			_ = a.AddContact(ctx, args)
		case "share":
			_ = a.Share(ctx, args)
		case "shares":
			_ = a.Shares(ctx)
		case "accept":
			_ = a.Accept(ctx, args)
		case "permissions":
			_ = a.Permissions(ctx, args)
		case "encrypt":
			_ = a.Encrypt(ctx)
		case "decrypt":
			_ = a.Decrypt(ctx)
		case "decryptall":
			_ = a.DecryptAll(ctx)
		case "setimage":
			_ = a.SetImage(ctx, args)
		case "getimage":
			_ = a.GetImage(ctx, args)
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
