// Package database provides the PostgreSQL connection pool for the trade
// journal. The mirror's in-memory state never touches the database; only
// the recorder does.
package database
