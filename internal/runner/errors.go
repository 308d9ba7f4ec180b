package runner

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below via errors.Is.
var (
	ErrConnection     = errors.New("connection error")
	ErrQueryExecution = errors.New("query execution error")
)

// ConnectionError reports that the database could not be reached or
// authenticated against.
type ConnectionError struct {
	Target string
	Err    error
}

func (e *ConnectionError) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("cannot connect to database: %v", e.Err)
	}
	return fmt.Sprintf("cannot connect to %s: %v", e.Target, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// Is reports whether target is ErrConnection.
func (e *ConnectionError) Is(target error) bool { return target == ErrConnection }

// QueryExecutionError reports that the database rejected or failed the query.
type QueryExecutionError struct {
	Err error
}

func (e *QueryExecutionError) Error() string {
	return fmt.Sprintf("query failed: %v", e.Err)
}

func (e *QueryExecutionError) Unwrap() error { return e.Err }

// Is reports whether target is ErrQueryExecution.
func (e *QueryExecutionError) Is(target error) bool { return target == ErrQueryExecution }
