// Package sqlite persists fleetwatch state in a single SQLite database.
//
// It uses modernc.org/sqlite, a pure Go SQLite implementation, so the CLI
// cross-compiles without CGO. One Store serves two ports:
//
//   - NotificationStore: the bounded notification set
//   - SchedulerStore: scheduled evaluation state and run history
//
// # Schema
//
// Versioned migrations live in migrations/ and are embedded at build time.
// Applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default the database is stored at ~/.fleetwatch/data/fleetwatch.db
//
// # Thread Safety
//
// All operations are safe for concurrent use. The database runs in WAL
// mode with a busy timeout.
package sqlite
