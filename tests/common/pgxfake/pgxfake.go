//go:build unit

// Package pgxfake scripts db.DBTX responses for repository and read store tests.
package pgxfake

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Call struct {
	SQL  string
	Args []any
}

// DB answers each method with the next scripted response for it and records
// every statement it receives.
type DB struct {
	Calls []Call

	execs    []execResult
	queries  []queryResult
	queryRow []*Row
}

type execResult struct {
	tag pgconn.CommandTag
	err error
}

type queryResult struct {
	rows *Rows
	err  error
}

func New() *DB {
	return &DB{}
}

// OnExec queues the reply to the next Exec, e.g. tag "UPDATE 1".
func (d *DB) OnExec(tag string, err error) *DB {
	d.execs = append(d.execs, execResult{tag: pgconn.NewCommandTag(tag), err: err})
	return d
}

func (d *DB) OnQuery(rows *Rows, err error) *DB {
	d.queries = append(d.queries, queryResult{rows: rows, err: err})
	return d
}

func (d *DB) OnQueryRow(row *Row) *DB {
	d.queryRow = append(d.queryRow, row)
	return d
}

func (d *DB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	d.Calls = append(d.Calls, Call{SQL: sql, Args: args})
	if len(d.execs) == 0 {
		return pgconn.CommandTag{}, fmt.Errorf("pgxfake: unexpected Exec: %s", sql)
	}
	r := d.execs[0]
	d.execs = d.execs[1:]
	return r.tag, r.err
}

func (d *DB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	d.Calls = append(d.Calls, Call{SQL: sql, Args: args})
	if len(d.queries) == 0 {
		return nil, fmt.Errorf("pgxfake: unexpected Query: %s", sql)
	}
	r := d.queries[0]
	d.queries = d.queries[1:]
	if r.err != nil {
		return nil, r.err
	}
	return r.rows, nil
}

func (d *DB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	d.Calls = append(d.Calls, Call{SQL: sql, Args: args})
	if len(d.queryRow) == 0 {
		return &Row{err: fmt.Errorf("pgxfake: unexpected QueryRow: %s", sql)}
	}
	r := d.queryRow[0]
	d.queryRow = d.queryRow[1:]
	return r
}

// Last returns the most recent statement.
func (d *DB) Last() Call {
	if len(d.Calls) == 0 {
		return Call{}
	}
	return d.Calls[len(d.Calls)-1]
}

// Row scans values positionally. A nil value leaves the destination zeroed.
type Row struct {
	values []any
	err    error
}

func RowOf(values ...any) *Row {
	return &Row{values: values}
}

func RowErr(err error) *Row {
	return &Row{err: err}
}

func (r *Row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(r.values, dest)
}

// Rows iterates over scripted rows.
type Rows struct {
	data   [][]any
	cur    int
	err    error
	closed bool
}

func RowsOf(rows ...[]any) *Rows {
	return &Rows{data: rows, cur: -1}
}

// WithErr makes Err report err once iteration ends.
func (r *Rows) WithErr(err error) *Rows {
	r.err = err
	return r
}

func (r *Rows) Close()                                       { r.closed = true }
func (r *Rows) Err() error                                   { return r.err }
func (r *Rows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *Rows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *Rows) RawValues() [][]byte                          { return nil }
func (r *Rows) Conn() *pgx.Conn                              { return nil }

func (r *Rows) Next() bool {
	if r.closed || r.cur+1 >= len(r.data) {
		r.closed = true
		return false
	}
	r.cur++
	return true
}

func (r *Rows) Scan(dest ...any) error {
	if r.cur < 0 || r.cur >= len(r.data) {
		return fmt.Errorf("pgxfake: Scan without a current row")
	}
	return assign(r.data[r.cur], dest)
}

func (r *Rows) Values() ([]any, error) {
	if r.cur < 0 || r.cur >= len(r.data) {
		return nil, fmt.Errorf("pgxfake: Values without a current row")
	}
	return r.data[r.cur], nil
}

// Closed reports whether the caller released the rows.
func (r *Rows) Closed() bool { return r.closed }

func assign(values []any, dest []any) error {
	if len(values) != len(dest) {
		return fmt.Errorf("pgxfake: %d values for %d destinations", len(values), len(dest))
	}
	for i, v := range values {
		target := reflect.ValueOf(dest[i])
		if target.Kind() != reflect.Pointer || target.IsNil() {
			return fmt.Errorf("pgxfake: destination %d is not a pointer", i)
		}
		elem := target.Elem()
		if v == nil {
			elem.Set(reflect.Zero(elem.Type()))
			continue
		}
		src := reflect.ValueOf(v)
		if !src.Type().AssignableTo(elem.Type()) {
			return fmt.Errorf("pgxfake: column %d is %T, destination wants %s", i, v, elem.Type())
		}
		elem.Set(src)
	}
	return nil
}
