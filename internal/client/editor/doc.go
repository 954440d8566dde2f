// Package editor holds the flashcard edit session of a single study set.
//
// A Session keeps the last synchronized baseline next to a working copy the
// user mutates freely. Validate checks the working copy, Diff derives the
// minimal create/update/delete change set, and Coordinator drives one
// synchronization round trip against the remote collection.
package editor
