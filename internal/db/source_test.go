package db

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/qload/pkg/qload"
)

// fakeRows replays canned raw values through the pgx.Rows interface.
type fakeRows struct {
	columns int
	values  [][]byte
	pos     int
	err     error
	closed  bool
}

func (r *fakeRows) Close()                        { r.closed = true }
func (r *fakeRows) Err() error                    { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }
func (r *fakeRows) Scan(dest ...any) error        { return errors.New("not implemented") }
func (r *fakeRows) Values() ([]any, error)        { return nil, errors.New("not implemented") }
func (r *fakeRows) Conn() *pgx.Conn               { return nil }

func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	return make([]pgconn.FieldDescription, r.columns)
}

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.values) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) RawValues() [][]byte {
	row := make([][]byte, r.columns)
	row[0] = r.values[r.pos-1]
	return row
}

type fakeQuerier struct {
	rows    *fakeRows
	err     error
	lastSQL string
	args    []any
}

func (q *fakeQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.lastSQL = sql
	q.args = args
	if q.err != nil {
		return nil, q.err
	}
	return q.rows, nil
}

func rawValues(vals ...string) [][]byte {
	out := make([][]byte, len(vals))
	for i, v := range vals {
		out[i] = []byte(v)
	}
	return out
}

func TestSource_FetchColumn(t *testing.T) {
	q := &fakeQuerier{rows: &fakeRows{columns: 1, values: rawValues("com.a", "com.b", "com.c")}}
	src := NewSource(q)

	got, err := src.FetchColumn(context.Background(), "SELECT apk FROM android")
	require.NoError(t, err)
	assert.Equal(t, []string{"com.a", "com.b", "com.c"}, got)
	assert.Equal(t, "SELECT apk FROM android", q.lastSQL)
	assert.Equal(t, []any{pgx.QueryExecModeSimpleProtocol}, q.args)
	assert.True(t, q.rows.closed)
}

func TestSource_FetchColumn_NullBecomesEmpty(t *testing.T) {
	q := &fakeQuerier{rows: &fakeRows{columns: 1, values: [][]byte{[]byte("x"), nil}}}

	got, err := NewSource(q).FetchColumn(context.Background(), "SELECT name FROM wdj_app")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", ""}, got)
}

func TestSource_FetchColumn_Empty(t *testing.T) {
	q := &fakeQuerier{rows: &fakeRows{columns: 1}}

	got, err := NewSource(q).FetchColumn(context.Background(), "SELECT apk FROM android WHERE false")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSource_RejectsMultipleColumns(t *testing.T) {
	q := &fakeQuerier{rows: &fakeRows{columns: 2, values: rawValues("a")}}

	_, err := NewSource(q).FetchColumn(context.Background(), "SELECT apk, wdj FROM android")
	assert.ErrorIs(t, err, qload.ErrQueryFailed)
	assert.Contains(t, err.Error(), "exactly one column, got 2")
}

func TestSource_RejectsNoColumnsOnEmptyResult(t *testing.T) {
	q := &fakeQuerier{rows: &fakeRows{columns: 0}}

	_, err := NewSource(q).FetchColumn(context.Background(), "UPDATE android SET wdj = 1")
	assert.ErrorIs(t, err, qload.ErrQueryFailed)
}

func TestSource_QueryError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "42601", Message: "syntax error"}
	q := &fakeQuerier{err: pgErr}

	_, err := NewSource(q).FetchColumn(context.Background(), "SELEC apk")
	assert.ErrorIs(t, err, qload.ErrQueryFailed)

	var got *pgconn.PgError
	require.True(t, errors.As(err, &got))
	assert.Equal(t, "42601", got.Code)
}

func TestSource_RowsErrAfterIteration(t *testing.T) {
	q := &fakeQuerier{rows: &fakeRows{columns: 1, values: rawValues("a"), err: errors.New("conn closed")}}

	_, err := NewSource(q).FetchColumn(context.Background(), "SELECT apk FROM android")
	assert.ErrorIs(t, err, qload.ErrQueryFailed)
}

func TestSource_StreamColumn_StopsOnCallbackError(t *testing.T) {
	q := &fakeQuerier{rows: &fakeRows{columns: 1, values: rawValues("a", "b", "c")}}
	stop := errors.New("stop")

	var seen []string
	err := NewSource(q).StreamColumn(context.Background(), "SELECT apk FROM android", func(v string) error {
		seen = append(seen, v)
		if v == "b" {
			return stop
		}
		return nil
	})

	assert.ErrorIs(t, err, stop)
	assert.NotErrorIs(t, err, qload.ErrQueryFailed)
	assert.Equal(t, []string{"a", "b"}, seen)
}
