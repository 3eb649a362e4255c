package repo

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// call — один запрос, полученный fakeQuerier.
type call struct {
	sql  string
	args []any
}

// fakeQuerier записывает SQL и аргументы и отдаёт заранее заданные результаты.
type fakeQuerier struct {
	calls []call

	rows     [][]any // результат Query / QueryRow
	tag      string  // результат Exec, например "DELETE 1"
	err      error   // ошибка любого вызова
	rowErr   error   // ошибка Scan у QueryRow
	execHook func(sql string, args []any)
}

func (q *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.calls = append(q.calls, call{sql: sql, args: args})
	if q.execHook != nil {
		q.execHook(sql, args)
	}
	if q.err != nil {
		return pgconn.CommandTag{}, q.err
	}
	return pgconn.NewCommandTag(q.tag), nil
}

func (q *fakeQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.calls = append(q.calls, call{sql: sql, args: args})
	if q.err != nil {
		return nil, q.err
	}
	return &fakeRows{rows: q.rows, idx: -1}, nil
}

func (q *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.calls = append(q.calls, call{sql: sql, args: args})
	if q.err != nil {
		return fakeRow{err: q.err}
	}
	if q.rowErr != nil {
		return fakeRow{err: q.rowErr}
	}
	if len(q.rows) == 0 {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{values: q.rows[0]}
}

func (q *fakeQuerier) last() call {
	return q.calls[len(q.calls)-1]
}

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return scanInto(r.values, dest)
}

type fakeRows struct {
	rows [][]any
	idx  int
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return r.rows[r.idx], nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx < len(r.rows)
}

func (r *fakeRows) Scan(dest ...any) error {
	return scanInto(r.rows[r.idx], dest)
}

// scanInto копирует значения в указатели dest, как это делает pgx:
// nil обнуляет приёмник, значение T в **T аллоцирует указатель.
func scanInto(values []any, dest []any) error {
	if len(values) != len(dest) {
		return fmt.Errorf("scan: %d values into %d destinations", len(values), len(dest))
	}
	for i, d := range dest {
		dv := reflect.ValueOf(d).Elem()
		if values[i] == nil {
			dv.Set(reflect.Zero(dv.Type()))
			continue
		}
		sv := reflect.ValueOf(values[i])
		if dv.Kind() == reflect.Pointer && sv.Type() != dv.Type() {
			p := reflect.New(dv.Type().Elem())
			p.Elem().Set(sv.Convert(dv.Type().Elem()))
			dv.Set(p)
			continue
		}
		dv.Set(sv.Convert(dv.Type()))
	}
	return nil
}
