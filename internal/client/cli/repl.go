package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Home(ctx context.Context)
	Me(ctx context.Context) error
	Health(ctx context.Context) error
	Status(ctx context.Context) error
	Attendance(ctx context.Context, args []string) error
	CheckIn(ctx context.Context, args []string) error
	CheckIns(ctx context.Context, args []string) error
}

const (
	helpGuest    = "Available commands: register, login, health, home, status, exit"
	helpLoggedIn = "Available commands: me, status, health, home, attendance <event>, checkin <event> <ticket>, checkins [event], logout, exit"
)

// runREPL starts a simple read–eval–print loop for the tixgo CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The prompt is rebuilt from statusFn before
// every line, so it always reflects the stored session. The loop exits on
// EOF, on ctx cancellation, or when the user types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors to the user.
func runREPL(ctx context.Context, a execIface, statusFn func(context.Context) string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("tixgo %s> ", statusFn(ctx)))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpGuest)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "home":
			a.Home(ctx)

		case "me":
			_ = a.Me(ctx)

		case "health":
			_ = a.Health(ctx)

		case "status":
			_ = a.Status(ctx)

		case "attendance":
			_ = a.Attendance(ctx, args)

		case "checkin":
			_ = a.CheckIn(ctx, args)

		case "checkins":
			_ = a.CheckIns(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
