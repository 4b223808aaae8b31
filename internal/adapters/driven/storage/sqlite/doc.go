// Package sqlite provides the SQLite-backed implementation of the driven
// storage ports.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. It implements multiple
// store interfaces through a single database connection:
//
//   - SlipStore: slip, version and full-text index persistence
//   - CategoryStore: category registry persistence
//   - BackupStateStore: backup scheduler bookkeeping
//   - Snapshotter: consistent file snapshots via VACUUM INTO
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files. Only additive migrations exist; the runner never drops data.
//
// # Data Location
//
// By default, the database is stored at ~/.slip/data/slips.db
//
// # Thread Safety
//
// Reads run concurrently under WAL-mode snapshot isolation. Mutations are
// serialized through a store-level writer mutex so read-modify-write
// sequences (content versioning in particular) never race.
package sqlite
