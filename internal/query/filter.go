package query

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
)

// NewestFirst orders by creation time descending. Ties keep store order.
const NewestFirst = "created_at DESC"

// Dialect selects the SQL flavor used for JSON field extraction.
type Dialect string

const (
	MySQL    Dialect = "mysql"
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// DialectOf returns the dialect for a gorm dialector name. Unknown names use MySQL syntax.
func DialectOf(db *gorm.DB) Dialect {
	switch name := db.Dialector.Name(); name {
	case "postgres":
		return Postgres
	case "sqlite":
		return SQLite
	default:
		return MySQL
	}
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// EscapeLike escapes LIKE metacharacters so term matches literally under ESCAPE '!'.
func EscapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// JSONText returns the SQL expression extracting key from the JSON column as
// text. key is embedded in the statement and must come from code, never from
// caller input.
func JSONText(d Dialect, column, key string) string {
	switch d {
	case Postgres:
		return fmt.Sprintf("%s->>'%s'", column, key)
	case SQLite:
		return fmt.Sprintf(`json_extract(%s, '$."%s"')`, column, key)
	default:
		return fmt.Sprintf(`JSON_UNQUOTE(JSON_EXTRACT(%s, '$."%s"'))`, column, key)
	}
}

// Contains is a case-insensitive unanchored substring match of term against expr.
func Contains(expr, term string) sq.Sqlizer {
	pattern := "%" + EscapeLike(strings.ToLower(term)) + "%"
	return sq.Expr("LOWER("+expr+") LIKE ? ESCAPE '!'", pattern)
}

// Filter accumulates predicates joined with AND.
type Filter struct {
	parts sq.And
}

// Eq adds an exact-match predicate. Pass ids as strings: squirrel expands
// array values such as uuid.UUID into IN lists.
func (f *Filter) Eq(column string, value any) *Filter {
	f.parts = append(f.parts, sq.Eq{column: value})
	return f
}

// AnyContains adds one predicate matching when term is a substring of any of exprs.
func (f *Filter) AnyContains(exprs []string, term string) *Filter {
	or := make(sq.Or, 0, len(exprs))
	for _, expr := range exprs {
		or = append(or, Contains(expr, term))
	}
	f.parts = append(f.parts, or)
	return f
}

// Empty reports whether no predicate was added.
func (f *Filter) Empty() bool {
	return len(f.parts) == 0
}

// ToSql renders the predicates. An empty filter renders "".
func (f *Filter) ToSql() (string, []any, error) {
	if f.Empty() {
		return "", nil, nil
	}
	return f.parts.ToSql()
}

// Scope applies the filter as a gorm WHERE clause.
func (f *Filter) Scope(db *gorm.DB) *gorm.DB {
	where, args, err := f.ToSql()
	if err != nil {
		_ = db.AddError(fmt.Errorf("build filter: %w", err))
		return db
	}
	if where == "" {
		return db
	}
	return db.Where(where, args...)
}

// Scope applies the page window to a gorm query.
func (p Page) Scope(db *gorm.DB) *gorm.DB {
	return db.Offset(p.Offset()).Limit(p.Limit)
}
