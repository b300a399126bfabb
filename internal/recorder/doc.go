// Package recorder journals executed fills to PostgreSQL.
//
// The recorder consumes the Book's change notifications and batch-inserts
// one row per fill, append-only. It is an optional sidecar: the in-memory
// mirror is authoritative for the process lifetime and never reads the
// journal back.
package recorder
