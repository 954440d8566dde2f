// Package client contains client-side building blocks for flashly.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) to talk
//     to the flashly backend: auth, study set CRUD, the bulk flashcard
//     update, document preview and Ping.
//  2. A concrete REST implementation (see HTTPClient) that injects a bearer
//     token from a TokenSource, tags every request with an X-Request-ID and
//     maps failures to sentinel errors.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations) for
//     the CLI, wiring an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// A request that never produced an HTTP response wraps ErrTransport. A
// non-success status is returned as *RemoteError, which matches
// ErrRemoteRejected and, depending on the status, ErrUnauthorized or
// ErrNotFound.
//
// All operations accept context.Context and honor cancellation.
package client
