package database

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrConnNotOpen = errors.New("connection is not open")

// PgxProvider hands out handles backed by a pgx connection pool.
//
// The pool is built from the connection string on the first Open, so a
// malformed string or an unreachable server is reported by Open rather than
// by the constructor.
type PgxProvider struct {
	connString string

	mu   sync.Mutex
	pool *pgxpool.Pool
}

// NewPgxProvider creates a provider for the given connection string.
func NewPgxProvider(connString string) *PgxProvider {
	return &PgxProvider{connString: connString}
}

// Connection returns a new, closed handle.
func (p *PgxProvider) Connection() Conn {
	return &pgxConn{provider: p}
}

// Ping checks that the store is reachable.
func (p *PgxProvider) Ping(ctx context.Context) error {
	pool, err := p.getPool()
	if err != nil {
		return err
	}
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Close closes the underlying pool, if one was created.
func (p *PgxProvider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pool != nil {
		p.pool.Close()
		p.pool = nil
	}
}

func (p *PgxProvider) getPool() (*pgxpool.Pool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pool != nil {
		return p.pool, nil
	}

	cfg, err := pgxpool.ParseConfig(p.connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	// The pool outlives any single request, so it must not inherit a request context.
	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	p.pool = pool
	return pool, nil
}

// pgxConn holds at most one pooled connection between Open and Close.
type pgxConn struct {
	provider *PgxProvider
	conn     *pgxpool.Conn
}

func (c *pgxConn) IsOpen() bool {
	return c.conn != nil
}

func (c *pgxConn) Open(ctx context.Context) error {
	if c.conn != nil {
		return nil
	}

	pool, err := c.provider.getPool()
	if err != nil {
		return err
	}

	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}

	c.conn = conn
	return nil
}

func (c *pgxConn) Query(ctx context.Context, sql string, args NamedArgs) (Rows, error) {
	if c.conn == nil {
		return nil, ErrConnNotOpen
	}

	rows, err := c.conn.Query(ctx, sql, pgx.StrictNamedArgs(args))
	if err != nil {
		return nil, err
	}
	return &pgxRows{rows: rows}, nil
}

func (c *pgxConn) Exec(ctx context.Context, sql string, args NamedArgs) (int64, error) {
	if c.conn == nil {
		return 0, ErrConnNotOpen
	}

	tag, err := c.conn.Exec(ctx, sql, pgx.StrictNamedArgs(args))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Close returns the connection to the pool. It is safe to call more than once.
func (c *pgxConn) Close() error {
	if c.conn != nil {
		c.conn.Release()
		c.conn = nil
	}
	return nil
}

type pgxRows struct {
	rows pgx.Rows
}

func (r *pgxRows) Columns() []string {
	fields := r.rows.FieldDescriptions()
	names := make([]string, len(fields))
	for i, fd := range fields {
		names[i] = fd.Name
	}
	return names
}

func (r *pgxRows) Next() bool             { return r.rows.Next() }
func (r *pgxRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r *pgxRows) Err() error             { return r.rows.Err() }
func (r *pgxRows) Close()                 { r.rows.Close() }
