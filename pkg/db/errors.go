package db

import "fmt"

// ConnError is returned when a connection could not be established. It is
// fatal; no retry is attempted by this layer.
type ConnError struct {
	URL string
	Err error
}

func (e *ConnError) Error() string {
	return fmt.Sprintf("failed to connect to %s: %v", e.URL, e.Err)
}

func (e *ConnError) Unwrap() error { return e.Err }

// DatabaseError wraps a driver-native error raised during prepare or a
// direct exec. It always carries the resolved (post-placeholder) statement
// text; the raw driver error is never surfaced.
type DatabaseError struct {
	SQLState  string
	Code      int
	Message   string
	Statement string
}

func (e *DatabaseError) Error() string {
	if e.SQLState != "" || e.Code != 0 {
		return fmt.Sprintf("database error [%s/%d]: %s (statement: %s)", e.SQLState, e.Code, e.Message, e.Statement)
	}
	return fmt.Sprintf("database error: %s (statement: %s)", e.Message, e.Statement)
}

// ExecError is returned when a prepared statement fails during execution.
type ExecError struct {
	DatabaseError
	Args []any
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("execution failed [%s/%d]: %s (statement: %s, args: %v)",
		e.SQLState, e.Code, e.Message, e.Statement, e.Args)
}

// UnknownFetchError is returned by Stmt.Fetch for an unrecognized result
// shape.
type UnknownFetchError struct {
	Shape     string
	Statement string
}

func (e *UnknownFetchError) Error() string {
	return fmt.Sprintf("unknown fetch shape %q on statement %q", e.Shape, e.Statement)
}
