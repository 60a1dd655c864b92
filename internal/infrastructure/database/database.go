// Package database provides connection handles to the relational store.
//
// A Provider hands out a new, closed Conn per call. Callers open the handle,
// run their statement and close it; the pooling underneath belongs to the
// driver.
package database

import "context"

// NamedArgs binds statement parameters by name. Statements reference them as @name.
type NamedArgs map[string]any

// Provider produces connection handles.
type Provider interface {
	Connection() Conn
}

// Conn is a single-use handle to the store.
type Conn interface {
	IsOpen() bool
	Open(ctx context.Context) error
	Query(ctx context.Context, sql string, args NamedArgs) (Rows, error)
	Exec(ctx context.Context, sql string, args NamedArgs) (int64, error)
	Close() error
}

// Rows is a lazy, one-pass cursor over a result set.
type Rows interface {
	Columns() []string
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}
