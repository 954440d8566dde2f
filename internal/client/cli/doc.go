// Package cli provides the interactive flashly command-line client.
//
// The App restores a stored session at startup, starts a background
// connectivity watcher and runs a REPL. Study set commands work against the
// server and fall back to the local cache while offline.
//
// Commands:
//   - register, login, logout
//   - sets, show, new, rename, delete
//   - edit: a nested REPL over the edit buffer of one study set
//   - study: a flip-card carousel
//   - generate: upload a document and review the generated cards
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
