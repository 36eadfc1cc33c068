// Package cli provides the interactive itemkeeper command-line client.
//
// It wires configuration, the local credential store, the remote API client,
// and an interactive REPL gated on the session status. Typical flow: rehydrate
// a persisted session, land on the item list when authenticated, and execute
// user commands.
//
// Key features:
//   - Register / Login / Logout
//   - List, add, edit and delete items
//   - whoami for the current account
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
