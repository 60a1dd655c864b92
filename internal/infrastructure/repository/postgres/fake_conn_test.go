package postgres

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mrops-br/adventureworks-api/internal/infrastructure/database"
	"github.com/shopspring/decimal"
)

// fakeProvider hands out scripted handles and remembers every one of them.
type fakeProvider struct {
	mu      sync.Mutex
	newConn func() *fakeConn
	conns   []*fakeConn
}

func (p *fakeProvider) Connection() database.Conn {
	c := p.newConn()
	p.mu.Lock()
	p.conns = append(p.conns, c)
	p.mu.Unlock()
	return c
}

func (p *fakeProvider) handles() []*fakeConn {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*fakeConn(nil), p.conns...)
}

type statement struct {
	sql  string
	args database.NamedArgs
}

type fakeConn struct {
	open      bool
	openCalls int
	closed    int
	openErr   error
	queryErr  error
	execErr   error
	affected  int64
	rows      *fakeRows
	executed  []statement
}

func (c *fakeConn) IsOpen() bool { return c.open }

func (c *fakeConn) Open(ctx context.Context) error {
	c.openCalls++
	if c.openErr != nil {
		return c.openErr
	}
	c.open = true
	return nil
}

func (c *fakeConn) Query(ctx context.Context, sql string, args database.NamedArgs) (database.Rows, error) {
	if !c.open {
		return nil, database.ErrConnNotOpen
	}
	c.executed = append(c.executed, statement{sql: sql, args: args})
	if c.queryErr != nil {
		return nil, c.queryErr
	}
	if c.rows == nil {
		c.rows = &fakeRows{columns: productColumns}
	}
	return c.rows, nil
}

func (c *fakeConn) Exec(ctx context.Context, sql string, args database.NamedArgs) (int64, error) {
	if !c.open {
		return 0, database.ErrConnNotOpen
	}
	c.executed = append(c.executed, statement{sql: sql, args: args})
	if c.execErr != nil {
		return 0, c.execErr
	}
	return c.affected, nil
}

func (c *fakeConn) Close() error {
	c.closed++
	c.open = false
	return nil
}

// fakeRows scans values with the same NULL rules as the real driver:
// NULL into a pointer destination is nil, NULL into a plain destination is an
// error unless the destination is an sql.Scanner that accepts NULL (uuid.UUID
// becomes uuid.Nil).
type fakeRows struct {
	columns []string
	values  [][]any
	pos     int
	err     error
	closed  bool
}

func (r *fakeRows) Columns() []string { return r.columns }

func (r *fakeRows) Next() bool {
	if r.closed || r.pos >= len(r.values) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.values[r.pos-1]
	if len(dest) != len(row) {
		return fmt.Errorf("number of field descriptions must equal number of destinations, got %d and %d", len(row), len(dest))
	}
	for i, d := range dest {
		if err := assign(d, row[i]); err != nil {
			return fmt.Errorf("can't scan into dest[%d] (col: %s): %w", i, r.columns[i], err)
		}
	}
	return nil
}

func (r *fakeRows) Err() error { return r.err }
func (r *fakeRows) Close()     { r.closed = true }

func assign(dest, src any) error {
	switch d := dest.(type) {
	case nil:
		return nil
	case *int32:
		return scanValue(d, src)
	case **int32:
		return scanNullable(d, src)
	case *string:
		return scanValue(d, src)
	case **string:
		return scanNullable(d, src)
	case *decimal.Decimal:
		return scanValue(d, src)
	case **decimal.Decimal:
		return scanNullable(d, src)
	case *time.Time:
		return scanValue(d, src)
	case **time.Time:
		return scanNullable(d, src)
	case *uuid.UUID:
		if src == nil {
			*d = uuid.Nil
			return nil
		}
		return scanValue(d, src)
	case **uuid.UUID:
		return scanNullable(d, src)
	case *[]byte:
		if src == nil {
			*d = nil
			return nil
		}
		return scanValue(d, src)
	default:
		return fmt.Errorf("unsupported destination %T", dest)
	}
}

func scanValue[T any](d *T, src any) error {
	v, ok := src.(T)
	if !ok {
		return fmt.Errorf("cannot scan %T into %T", src, d)
	}
	*d = v
	return nil
}

func scanNullable[T any](d **T, src any) error {
	if src == nil {
		*d = nil
		return nil
	}
	v, ok := src.(T)
	if !ok {
		return fmt.Errorf("cannot scan %T into %T", src, d)
	}
	*d = &v
	return nil
}
