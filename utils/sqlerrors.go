package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/lib/pq"
)

// SchemaMismatchError wraps a Postgres error that means the deployed schema
// disagrees with what the code expects (dropped column, missing table, broken
// query). Fatal for the request, not for the process, and never retried.
type SchemaMismatchError struct {
	Kind     string // COLUMN_NOT_FOUND | TABLE_NOT_FOUND | SQL_SYNTAX_ERROR | SCHEMA_MISMATCH
	Name     string // offending column/table/token when it can be extracted
	SQLState string
	Message  string // sanitized driver message
}

func (e *SchemaMismatchError) Error() string {
	var base string
	switch e.Kind {
	case "COLUMN_NOT_FOUND":
		base = fmt.Sprintf("unknown column %q in database", e.Name)
	case "TABLE_NOT_FOUND":
		base = fmt.Sprintf("unknown table %q in database", e.Name)
	case "SQL_SYNTAX_ERROR":
		base = fmt.Sprintf("SQL syntax error near %q", e.Name)
	default:
		base = "schema mismatch between entity and database"
	}
	if e.SQLState != "" {
		return base + " (sqlState=" + e.SQLState + ")"
	}
	return base
}

var (
	colNotExists = regexp.MustCompile(`(?i)column\s+"?([^"\s]+)"?\s+does not exist`)
	relNotExists = regexp.MustCompile(`(?i)relation\s+"?([^"\s]+)"?\s+does not exist`)
	syntaxNear   = regexp.MustCompile(`(?i)syntax error at or near\s+"?([^"\s]+)"?`)
)

// AsSchemaMismatch classifies err. Only class-42 errors (undefined objects,
// syntax) qualify; integrity violations such as 23505 stay what they are.
func AsSchemaMismatch(err error) (*SchemaMismatchError, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil, false
	}
	if !strings.HasPrefix(string(pqErr.Code), "42") {
		return nil, false
	}

	out := &SchemaMismatchError{
		Kind:     "SCHEMA_MISMATCH",
		SQLState: string(pqErr.Code),
		Message:  sanitize(pqErr.Message),
	}
	switch pqErr.Code {
	case "42703":
		out.Kind = "COLUMN_NOT_FOUND"
	case "42P01":
		out.Kind = "TABLE_NOT_FOUND"
	case "42601":
		out.Kind = "SQL_SYNTAX_ERROR"
	}

	for _, probe := range []struct {
		re   *regexp.Regexp
		kind string
	}{
		{colNotExists, "COLUMN_NOT_FOUND"},
		{relNotExists, "TABLE_NOT_FOUND"},
		{syntaxNear, "SQL_SYNTAX_ERROR"},
	} {
		if m := probe.re.FindStringSubmatch(pqErr.Message); m != nil {
			out.Kind = probe.kind
			out.Name = m[1]
			break
		}
	}
	return out, true
}

func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.TrimSpace(s)
	if len(s) > 500 {
		return s[:500] + "..."
	}
	return s
}
