package migrate

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeConnector hands out connections that answer the statements the
// golang-migrate postgres driver issues.
type fakeConnector struct {
	version int64
	fail    bool
	opened  atomic.Int32
	closed  atomic.Int32
}

func (c *fakeConnector) Connect(context.Context) (driver.Conn, error) {
	c.opened.Add(1)
	return &fakeConn{c: c}, nil
}

func (c *fakeConnector) Driver() driver.Driver { return fakeDriver{} }

type fakeDriver struct{}

func (fakeDriver) Open(string) (driver.Conn, error) { return nil, errors.New("use the connector") }

type fakeConn struct {
	c *fakeConnector
}

func (f *fakeConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not supported") }
func (f *fakeConn) Begin() (driver.Tx, error)           { return nil, errors.New("not supported") }

func (f *fakeConn) Close() error {
	f.c.closed.Add(1)
	return nil
}

func (f *fakeConn) ExecContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Result, error) {
	if f.c.fail {
		return nil, errors.New("connection refused")
	}
	if strings.Contains(query, "pg_advisory") {
		return driver.RowsAffected(0), nil
	}
	return nil, errors.New("unexpected exec: " + query)
}

func (f *fakeConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	if f.c.fail {
		return nil, errors.New("connection refused")
	}
	switch {
	case strings.Contains(query, "CURRENT_DATABASE()"):
		return &fakeRows{cols: []string{"current_database"}, vals: [][]driver.Value{{"clicks"}}}, nil
	case strings.Contains(query, "CURRENT_SCHEMA()"):
		return &fakeRows{cols: []string{"current_schema"}, vals: [][]driver.Value{{"public"}}}, nil
	case strings.Contains(query, "information_schema.tables"):
		return &fakeRows{cols: []string{"count"}, vals: [][]driver.Value{{int64(1)}}}, nil
	case strings.HasPrefix(query, "SELECT version, dirty FROM"):
		return &fakeRows{cols: []string{"version", "dirty"}, vals: [][]driver.Value{{f.c.version, false}}}, nil
	}
	return nil, errors.New("unexpected query: " + query)
}

type fakeRows struct {
	cols []string
	vals [][]driver.Value
	i    int
}

func (r *fakeRows) Columns() []string { return r.cols }
func (r *fakeRows) Close() error      { return nil }

func (r *fakeRows) Next(dest []driver.Value) error {
	if r.i >= len(r.vals) {
		return io.EOF
	}
	copy(dest, r.vals[r.i])
	r.i++
	return nil
}

// singleConnPool mirrors cmd/migrate, which runs with one pooled connection.
func singleConnPool(t *testing.T, c *fakeConnector) *sql.DB {
	t.Helper()
	pool := sql.OpenDB(c)
	pool.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = pool.Close() })
	return pool
}

// within fails the test instead of hanging when fn blocks on the pool.
func within(t *testing.T, d time.Duration, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-time.After(d):
		t.Fatalf("blocked for more than %s waiting on the connection pool", d)
	}
}

func TestRun_RejectsUnknownDirection(t *testing.T) {
	err := Run(nil, "sideways")
	assert.ErrorContains(t, err, "direction must be up or down")
}

func TestRun_NilDatabase(t *testing.T) {
	err := Run(nil, DirectionUp)
	assert.ErrorContains(t, err, "nil database")
}

func TestVersion_ReleasesConnection(t *testing.T) {
	c := &fakeConnector{version: 1}
	pool := singleConnPool(t, c)

	for i := 0; i < 3; i++ {
		within(t, 3*time.Second, func() {
			v, dirty, err := Version(pool)
			assert.NoError(t, err)
			assert.Equal(t, uint(1), v)
			assert.False(t, dirty)
		})
	}

	assert.Zero(t, pool.Stats().InUse)
	assert.NoError(t, pool.PingContext(context.Background()), "pool must stay open")
}

func TestVersion_ReleasesConnectionOnDriverError(t *testing.T) {
	c := &fakeConnector{fail: true}
	pool := singleConnPool(t, c)

	for i := 0; i < 2; i++ {
		within(t, 3*time.Second, func() {
			_, _, err := Version(pool)
			assert.ErrorContains(t, err, "migrate database")
		})
	}

	assert.Zero(t, pool.Stats().InUse)
}

func TestRun_UpThenVersionOnOneConnection(t *testing.T) {
	c := &fakeConnector{version: 1}
	pool := singleConnPool(t, c)

	within(t, 3*time.Second, func() {
		assert.NoError(t, Run(pool, DirectionUp), "already at the latest version")

		v, _, err := Version(pool)
		assert.NoError(t, err)
		assert.Equal(t, uint(1), v)
	})

	assert.Zero(t, pool.Stats().InUse)
}
