// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sqlsource pages records out of a SQLite table into a list.
//
// Paging is keyset-based: each load asks for rows whose id is greater
// than the last id already appended, so a page costs the same at row
// one million as at row one and rows inserted behind the cursor never
// shift what the list has already shown.
package sqlsource

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/bureau-foundation/vlist/lib/infiniteload"
	"github.com/bureau-foundation/vlist/lib/record"
	"github.com/bureau-foundation/vlist/lib/sqlitepool"
	"github.com/bureau-foundation/vlist/lib/vlist"
)

// Schema creates the records table. Applied by Open on every
// connection.
const Schema = `
CREATE TABLE IF NOT EXISTS records (
	id    INTEGER PRIMARY KEY,
	title TEXT NOT NULL,
	body  TEXT NOT NULL DEFAULT ''
);
`

// DefaultPageSize is used when Options.PageSize is zero.
const DefaultPageSize = 50

// Options configures a Source.
type Options struct {
	// Path is the database file.
	Path string

	// PageSize is the number of rows per load.
	PageSize int

	// ReadOnly opens the database without write access. Insert then
	// fails.
	ReadOnly bool

	// Logger receives pool and page records. Nil discards them.
	Logger *slog.Logger
}

// Source loads records from SQLite into a SliceSource.
type Source struct {
	pool     *sqlitepool.Pool
	items    *vlist.SliceSource[record.Record]
	pageSize int
	logger   *slog.Logger

	mu     sync.Mutex
	cursor int64
}

// Open opens the database at options.Path and, unless read-only,
// creates the records table.
func Open(options Options) (*Source, error) {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	var onConnect func(*sqlite.Conn) error
	if !options.ReadOnly {
		onConnect = func(conn *sqlite.Conn) error {
			return sqlitex.ExecuteScript(conn, Schema, nil)
		}
	}
	pool, err := sqlitepool.Open(sqlitepool.Config{
		Path:      options.Path,
		ReadOnly:  options.ReadOnly,
		Logger:    logger,
		OnConnect: onConnect,
	})
	if err != nil {
		return nil, err
	}
	pageSize := options.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Source{
		pool:     pool,
		items:    vlist.NewSliceSource[record.Record](),
		pageSize: pageSize,
		logger:   logger,
	}, nil
}

// Items returns the source LoadMore appends to.
func (s *Source) Items() *vlist.SliceSource[record.Record] { return s.items }

// LoadMore appends the next page of rows ordered by id.
func (s *Source) LoadMore(ctx context.Context) (infiniteload.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn, err := s.pool.Take(ctx)
	if err != nil {
		return infiniteload.Result{HasMore: true}, fmt.Errorf("sqlsource: load: %w", err)
	}
	defer s.pool.Put(conn)

	// One extra row tells whether another page exists.
	page := make([]record.Record, 0, s.pageSize+1)
	err = sqlitex.Execute(conn,
		"SELECT id, title, body FROM records WHERE id > ? ORDER BY id LIMIT ?",
		&sqlitex.ExecOptions{
			Args: []any{s.cursor, s.pageSize + 1},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				page = append(page, record.Record{
					ID:    stmt.ColumnInt64(0),
					Title: stmt.ColumnText(1),
					Body:  stmt.ColumnText(2),
				})
				return nil
			},
		})
	if err != nil {
		return infiniteload.Result{HasMore: true}, fmt.Errorf("sqlsource: querying after id %d: %w", s.cursor, err)
	}

	hasMore := len(page) > s.pageSize
	if hasMore {
		page = page[:s.pageSize]
	}
	if len(page) > 0 {
		s.cursor = page[len(page)-1].ID
	}
	total := s.items.Append(page...)
	s.logger.Debug("page queried", "rows", len(page), "cursor", s.cursor, "total", total, "has_more", hasMore)

	return infiniteload.Result{Appended: len(page), HasMore: hasMore}, nil
}

// Insert writes records in a single transaction, replacing rows with
// the same id.
func (s *Source) Insert(ctx context.Context, records []record.Record) (err error) {
	if len(records) == 0 {
		return nil
	}
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("sqlsource: insert: %w", err)
	}
	defer s.pool.Put(conn)

	endTransaction, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("sqlsource: begin transaction: %w", err)
	}
	defer endTransaction(&err)

	for _, r := range records {
		err = sqlitex.Execute(conn,
			"INSERT OR REPLACE INTO records (id, title, body) VALUES (?, ?, ?)",
			&sqlitex.ExecOptions{Args: []any{r.ID, r.Title, r.Body}})
		if err != nil {
			return fmt.Errorf("sqlsource: inserting record %d: %w", r.ID, err)
		}
	}
	return nil
}

// Count returns the number of rows in the table.
func (s *Source) Count(ctx context.Context) (int64, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return 0, fmt.Errorf("sqlsource: count: %w", err)
	}
	defer s.pool.Put(conn)

	var count int64
	err = sqlitex.Execute(conn, "SELECT count(*) FROM records", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			count = stmt.ColumnInt64(0)
			return nil
		},
	})
	if err != nil {
		return 0, fmt.Errorf("sqlsource: count: %w", err)
	}
	return count, nil
}

// Close closes the connection pool.
func (s *Source) Close() error {
	return s.pool.Close()
}

var _ infiniteload.Loader = (*Source)(nil)
