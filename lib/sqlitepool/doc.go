// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sqlitepool provides the SQLite connection pool shared by the
// vlist binaries.
//
// It wraps zombiezen.com/go/sqlite's sqlitex.Pool with fixed pragmas.
// Callers [Pool.Take] a connection, perform work, and [Pool.Put] it
// back. Connections are NOT safe for concurrent use; each goroutine
// holds its own for the duration of its work.
//
// # Pragmas
//
// Read-write pools apply:
//
//   - journal_mode=WAL: the viewer reads while the seeder writes.
//   - synchronous=NORMAL: survives process crashes; record databases
//     are regenerable, so OS-crash durability is not required.
//   - busy_timeout=5000: wait for a write lock instead of failing
//     with SQLITE_BUSY.
//   - cache_size=-8192: 8 MB page cache per connection.
//   - temp_store=MEMORY.
//
// Read-only pools skip the journal and synchronous settings, which a
// read-only connection cannot change.
//
// # Usage
//
//	pool, err := sqlitepool.Open(sqlitepool.Config{
//	    Path:   "records.db",
//	    Logger: logger,
//	    OnConnect: func(conn *sqlite.Conn) error {
//	        return sqlitex.ExecuteScript(conn, schema, nil)
//	    },
//	})
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
// There is no query builder: callers write SQL, run it with
// sqlitex.Execute, and group writes with sqlitex.ImmediateTransaction.
package sqlitepool
