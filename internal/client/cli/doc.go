// Package cli is the interactive tixgo terminal client.
//
// It wires configuration, the session store, the API services and the
// login/registration forms, and runs a small REPL on top of them. The
// terminal stands in for the portal pages: forms report through a
// terminalView, the "home" view prints service health and the current
// profile, and the prompt always shows the session as stored.
//
// Commands:
//   - login, register, logout
//   - me, status, health
//   - attendance <event>, checkin <event> <ticket>, checkins [event]
//   - help, exit | quit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// or the process receives SIGINT/SIGTERM.
package cli
