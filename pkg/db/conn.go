// Package db wraps database/sql connection and statement primitives with
// dialect-aware error translation, placeholder resolution, and execution
// profiling.
//
// A Conn is driven by at most one goroutine at a time: the query counter
// and profiling log carry no internal locking, and concurrent use from
// multiple goroutines requires external synchronization. That is a caller
// obligation, not a layer guarantee. Profiling entries are appended in the
// exact order operations were invoked on the connection; no cross-
// connection ordering is offered.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/leapstack-labs/crossdb/pkg/ddl"
	"github.com/leapstack-labs/crossdb/pkg/dialect"
	"github.com/leapstack-labs/crossdb/pkg/schema"
	"github.com/xo/dburl"
)

// ProfileEntry records one statement execution: wall-clock elapsed time
// and the rendered statement text (with serialized args, if any).
type ProfileEntry struct {
	Elapsed   time.Duration
	Statement string
}

// Conn owns a live database connection bound to a single dialect. The
// dialect is derived from the connection URL once and is immutable for
// the connection's lifetime.
type Conn struct {
	db      *sql.DB
	d       dialect.Dialect
	opts    Options
	log     *slog.Logger
	queries int
	profile []ProfileEntry
}

// Open parses a dialect://... connection URL, selects the dialect
// strategy registered for its scheme, opens and pings the database, and
// issues the dialect's session init statements. Any failure before the
// connection is usable returns a *ConnError.
func Open(rawurl string, opts Options, logger *slog.Logger) (*Conn, error) {
	u, err := dburl.Parse(rawurl)
	if err != nil {
		return nil, &ConnError{URL: rawurl, Err: err}
	}

	d, err := dialect.Lookup(u.Driver)
	if err != nil {
		return nil, &ConnError{URL: rawurl, Err: err}
	}

	sqldb, err := sql.Open(d.Driver(), u.DSN)
	if err != nil {
		return nil, &ConnError{URL: rawurl, Err: err}
	}
	if err := sqldb.Ping(); err != nil {
		_ = sqldb.Close()
		return nil, &ConnError{URL: rawurl, Err: err}
	}

	c := Wrap(sqldb, d, opts, logger)
	c.log.Debug("connected", slog.String("dialect", d.Name()), slog.String("id", c.opts.ID))

	for _, stmt := range d.InitStatements(c.opts.Charset, c.opts.Collation, c.opts.Timezone) {
		if _, err := c.Exec(context.Background(), stmt); err != nil {
			_ = sqldb.Close()
			return nil, &ConnError{URL: rawurl, Err: err}
		}
	}
	return c, nil
}

// Wrap builds a Conn around an already-open *sql.DB. Options defaults are
// applied; no init statements are issued. A nil logger discards output.
func Wrap(sqldb *sql.DB, d dialect.Dialect, opts Options, logger *slog.Logger) *Conn {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Conn{db: sqldb, d: d, opts: opts.normalize(), log: logger}
}

// Dialect returns the connection's dialect strategy.
func (c *Conn) Dialect() dialect.Dialect { return c.d }

// Options returns the normalized connection options.
func (c *Conn) Options() Options { return c.opts }

// Close closes the underlying database handle.
func (c *Conn) Close() error { return c.db.Close() }

// ResolveStatement substitutes the literal tokens {prefix}, {charset},
// and {collate} with the connection's current values in a single pass.
// The substitution is not re-entrant: if a replacement value itself
// contains such a token it is left as-is. Documented limitation.
func (c *Conn) ResolveStatement(text string) string {
	return strings.NewReplacer(
		"{prefix}", c.opts.Prefix,
		"{charset}", c.opts.Charset,
		"{collate}", c.opts.Collation,
	).Replace(text)
}

// QuoteIdentifier quotes an identifier for the connection's dialect.
func (c *Conn) QuoteIdentifier(ident string) string { return c.d.Quote(ident) }

// QuoteIdentifiers quotes each identifier, preserving order.
func (c *Conn) QuoteIdentifiers(idents []string) []string {
	return dialect.QuoteAll(c.d, idents)
}

// Queries returns the number of exec/execute attempts made on this
// connection, successful or not.
func (c *Conn) Queries() int { return c.queries }

// Profile returns a copy of the profiling log in invocation order.
func (c *Conn) Profile() []ProfileEntry {
	out := make([]ProfileEntry, len(c.profile))
	copy(out, c.profile)
	return out
}

// ResetProfile discards accumulated profiling entries. The log is
// otherwise unbounded for the connection's lifetime.
func (c *Conn) ResetProfile() { c.profile = nil }

// Prepare resolves placeholders and prepares the statement. A driver
// failure is wrapped as a *DatabaseError carrying the resolved statement
// text.
func (c *Conn) Prepare(ctx context.Context, text string) (*Stmt, error) {
	resolved := c.ResolveStatement(text)
	st, err := c.db.PrepareContext(ctx, resolved)
	if err != nil {
		return nil, c.wrapError(err, resolved)
	}
	return &Stmt{conn: c, stmt: st, text: resolved}, nil
}

// Exec resolves placeholders and executes the statement directly. The
// query counter is incremented before the driver call, so a failed
// execution still counts as an attempt.
func (c *Conn) Exec(ctx context.Context, text string) (sql.Result, error) {
	resolved := c.ResolveStatement(text)
	c.queries++
	c.log.Debug("exec", slog.String("statement", resolved))
	res, err := c.db.ExecContext(ctx, resolved)
	if err != nil {
		return nil, c.wrapError(err, resolved)
	}
	return res, nil
}

// Query prepares the statement and executes it with args, returning the
// statement for iteration.
func (c *Conn) Query(ctx context.Context, text string, args ...any) (*Stmt, error) {
	st, err := c.Prepare(ctx, text)
	if err != nil {
		return nil, err
	}
	if err := st.Execute(ctx, args...); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}

// Begin starts a transaction. No semantics are added over the driver's.
func (c *Conn) Begin(ctx context.Context) (*sql.Tx, error) {
	return c.db.BeginTx(ctx, nil)
}

// CreateTable normalizes the shorthand description, renders the dialect's
// CREATE TABLE (and any post-create index statements), and executes them
// in order. The configured table prefix is applied to the name. A schema
// containing an unsupported type aborts before anything reaches the
// driver.
func (c *Conn) CreateTable(ctx context.Context, name string, desc *schema.Description) error {
	normalized := schema.Normalize(desc, c.d)
	stmt, post, err := ddl.CreateTable(c.opts.Prefix+name, normalized, c.d, c.opts.Charset, c.opts.Collation)
	if err != nil {
		return err
	}
	if _, err := c.Exec(ctx, stmt); err != nil {
		return err
	}
	for _, p := range post {
		if _, err := c.Exec(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Tables lists the database's table names via the dialect's introspection
// query.
func (c *Conn) Tables(ctx context.Context) ([]string, error) {
	st, err := c.Query(ctx, c.d.TablesQuery())
	if err != nil {
		return nil, err
	}
	defer func() { _ = st.Close() }()

	rows, err := st.All()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, firstColumnString(st, row))
	}
	return names, nil
}

// TableExists reports whether the (prefixed) table name exists, using the
// dialect-appropriate introspection: a direct parameterized lookup where
// the dialect supports it, a list-tables membership test otherwise.
func (c *Conn) TableExists(ctx context.Context, name string) (bool, error) {
	target := c.opts.Prefix + name
	query, direct := c.d.TableExistsQuery()

	var args []any
	if direct {
		args = append(args, target)
	}
	st, err := c.Query(ctx, query, args...)
	if err != nil {
		return false, err
	}
	defer func() { _ = st.Close() }()

	if direct {
		row, err := st.FetchAndClose()
		if err != nil {
			return false, err
		}
		return row != nil, nil
	}

	rows, err := st.All()
	if err != nil {
		return false, err
	}
	for _, row := range rows {
		if firstColumnString(st, row) == target {
			return true, nil
		}
	}
	return false, nil
}

// Optimize runs the dialect's maintenance commands (VACUUM for SQLite,
// OPTIMIZE TABLE for the MySQL family). Dialects without maintenance
// commands make this a no-op.
func (c *Conn) Optimize(ctx context.Context) error {
	tables, err := c.Tables(ctx)
	if err != nil {
		return err
	}
	for _, stmt := range c.d.MaintenanceStatements(tables) {
		if _, err := c.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (c *Conn) wrapError(err error, statement string) *DatabaseError {
	state, code, msg := c.d.TranslateError(err)
	return &DatabaseError{SQLState: state, Code: code, Message: msg, Statement: statement}
}

// firstColumnString extracts the first result column of row as a string.
func firstColumnString(st *Stmt, row map[string]any) string {
	if len(st.cols) == 0 {
		return ""
	}
	return fmt.Sprint(row[st.cols[0]])
}
