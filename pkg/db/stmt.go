package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// GroupMode selects how FetchGroups consumes the result set.
type GroupMode int

const (
	// GroupLazy iterates rows one at a time, bucketing each as it
	// arrives.
	GroupLazy GroupMode = iota
	// GroupBulk fetches the whole result set first, then groups it.
	GroupBulk
)

// Row is a result row keyed by column name. Driver []byte values are
// converted to string.
type Row = map[string]any

// Stmt wraps a prepared statement bound to its owning connection. The
// back-reference is non-owning: closing the statement does not touch the
// connection.
type Stmt struct {
	conn *Conn
	stmt *sql.Stmt
	text string
	rows *sql.Rows
	cols []string
}

// Execute runs the statement with args. A profiling entry for the attempt
// is appended to the owning connection before any failure propagates, and
// the query counter is incremented exactly once per attempt regardless of
// outcome. A driver failure is wrapped as an *ExecError.
func (s *Stmt) Execute(ctx context.Context, args ...any) error {
	if s.rows != nil {
		_ = s.rows.Close()
		s.rows = nil
		s.cols = nil
	}

	s.conn.queries++
	start := time.Now()
	rows, err := s.stmt.QueryContext(ctx, args...)
	elapsed := time.Since(start)

	rendered := s.text
	if len(args) > 0 {
		rendered = fmt.Sprintf("%s %v", s.text, args)
	}
	s.conn.profile = append(s.conn.profile, ProfileEntry{Elapsed: elapsed, Statement: rendered})

	if err != nil {
		state, code, msg := s.conn.d.TranslateError(err)
		return &ExecError{
			DatabaseError: DatabaseError{SQLState: state, Code: code, Message: msg, Statement: s.text},
			Args:          args,
		}
	}

	cols, err := rows.Columns()
	if err != nil {
		_ = rows.Close()
		state, code, msg := s.conn.d.TranslateError(err)
		return &ExecError{
			DatabaseError: DatabaseError{SQLState: state, Code: code, Message: msg, Statement: s.text},
			Args:          args,
		}
	}
	s.rows = rows
	s.cols = cols
	return nil
}

// FetchAndClose fetches the first row and releases the cursor. Returns
// (nil, nil) when the result set is empty.
func (s *Stmt) FetchAndClose() (Row, error) {
	if s.rows == nil {
		return nil, fmt.Errorf("statement %q has no open result set", s.text)
	}
	defer s.release()

	if !s.rows.Next() {
		return nil, s.rows.Err()
	}
	return s.scanRow()
}

// FetchColumnAndClose fetches one column of the first row and releases
// the cursor. Returns (nil, nil) when the result set is empty.
func (s *Stmt) FetchColumnAndClose(column int) (any, error) {
	if s.rows == nil {
		return nil, fmt.Errorf("statement %q has no open result set", s.text)
	}
	if column < 0 || column >= len(s.cols) {
		s.release()
		return nil, fmt.Errorf("column index %d out of range on statement %q", column, s.text)
	}
	defer s.release()

	if !s.rows.Next() {
		return nil, s.rows.Err()
	}
	row, err := s.scanRow()
	if err != nil {
		return nil, err
	}
	return row[s.cols[column]], nil
}

// All fetches the remaining rows and releases the cursor.
func (s *Stmt) All() ([]Row, error) {
	if s.rows == nil {
		return nil, fmt.Errorf("statement %q has no open result set", s.text)
	}
	defer s.release()

	var out []Row
	for s.rows.Next() {
		row, err := s.scanRow()
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, s.rows.Err()
}

// FetchGroups buckets every row under the value of its first column,
// preserving row order within each bucket. GroupLazy streams the result
// set row by row; GroupBulk fetches everything first. Both modes produce
// the same mapping.
func (s *Stmt) FetchGroups(mode GroupMode) (map[string][]Row, error) {
	if mode == GroupBulk {
		rows, err := s.All()
		if err != nil {
			return nil, err
		}
		groups := make(map[string][]Row)
		for _, row := range rows {
			key := fmt.Sprint(row[s.cols[0]])
			groups[key] = append(groups[key], row)
		}
		return groups, nil
	}

	if s.rows == nil {
		return nil, fmt.Errorf("statement %q has no open result set", s.text)
	}
	defer s.release()

	groups := make(map[string][]Row)
	for s.rows.Next() {
		row, err := s.scanRow()
		if err != nil {
			return nil, err
		}
		key := fmt.Sprint(row[s.cols[0]])
		groups[key] = append(groups[key], row)
	}
	return groups, s.rows.Err()
}

// Fetch dispatches a named result shape: "all" for the full result set,
// "row" for the first row with the cursor closed. Anything else is an
// *UnknownFetchError.
func (s *Stmt) Fetch(shape string) (any, error) {
	switch shape {
	case "all":
		return s.All()
	case "row":
		return s.FetchAndClose()
	default:
		return nil, &UnknownFetchError{Shape: shape, Statement: s.text}
	}
}

// Columns returns the result column names of the last Execute.
func (s *Stmt) Columns() []string {
	out := make([]string, len(s.cols))
	copy(out, s.cols)
	return out
}

// Text returns the resolved statement text.
func (s *Stmt) Text() string { return s.text }

// Close releases the result set (if open) and the prepared statement.
func (s *Stmt) Close() error {
	s.release()
	return s.stmt.Close()
}

func (s *Stmt) release() {
	if s.rows != nil {
		_ = s.rows.Close()
		s.rows = nil
	}
}

func (s *Stmt) scanRow() (Row, error) {
	values := make([]any, len(s.cols))
	ptrs := make([]any, len(s.cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := s.rows.Scan(ptrs...); err != nil {
		return nil, fmt.Errorf("scan failed on statement %q: %w", s.text, err)
	}
	row := make(Row, len(s.cols))
	for i, col := range s.cols {
		v := values[i]
		if b, ok := v.([]byte); ok {
			v = string(b)
		}
		row[col] = v
	}
	return row, nil
}
