// Package database builds parameterized list queries for the Postgres
// repositories. Identifiers are quoted with pgx.Identifier; values are
// always bound as $n parameters.
package database

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

type ConditionType string

const (
	Equal    ConditionType = "="
	NotEqual ConditionType = "!="
	ILike    ConditionType = "ILIKE"
	In       ConditionType = "IN"
	Custom   ConditionType = "CUSTOM"
)

type Condition struct {
	Field    string
	Type     ConditionType
	Value    any
	rawQuery string
}

// WhereCond compares one column with a value. Use WhereRawCond for Custom.
func WhereCond(field string, condType ConditionType, value any) Condition {
	if condType == Custom {
		//nolint:forbidigo // panic prevents misuse; custom conditions must provide raw SQL via WhereRawCond.
		panic("Use WhereRawCond for Custom type")
	}
	return Condition{Field: field, Type: condType, Value: value}
}

// WhereRawCond embeds a raw SQL fragment. Its placeholders are numbered
// from $1 and renumbered when the query is built; a placeholder may repeat.
func WhereRawCond(rawQuery string, params ...any) Condition {
	return Condition{Type: Custom, rawQuery: rawQuery, Value: params}
}

type ListQueryOptions struct {
	Table      string
	Columns    []string
	CountOnly  bool
	Conditions []Condition
	OrderBy    string
	OrderDir   string
	Limit      int
	Offset     int
}

type ListQueryOption func(*ListQueryOptions)

func NewListQueryOptions(table string, opts ...ListQueryOption) *ListQueryOptions {
	options := &ListQueryOptions{Table: table, Limit: -1, Offset: -1}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithColumns sets the columns to select.
func WithColumns(cols ...string) ListQueryOption {
	return func(o *ListQueryOptions) { o.Columns = cols }
}

// WithCondition adds a single condition.
func WithCondition(cond Condition) ListQueryOption {
	return func(o *ListQueryOptions) { o.Conditions = append(o.Conditions, cond) }
}

// WithOrderBy sets the ordering column and direction.
func WithOrderBy(column, direction string) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.OrderBy = column
		o.OrderDir = direction
	}
}

// WithLimit sets the limit. Accepts 0.
func WithLimit(limit int) ListQueryOption {
	return func(o *ListQueryOptions) {
		if limit >= 0 {
			o.Limit = limit
		}
	}
}

// WithOffset sets the offset. Accepts 0.
func WithOffset(offset int) ListQueryOption {
	return func(o *ListQueryOptions) {
		if offset >= 0 {
			o.Offset = offset
		}
	}
}

// WithCountOnly sets the query to count only.
func WithCountOnly() ListQueryOption {
	return func(o *ListQueryOptions) { o.CountOnly = true }
}

// quoteIdent sanitizes a possibly qualified identifier ("users.email").
func quoteIdent(ident string) string {
	return pgx.Identifier(strings.Split(ident, ".")).Sanitize()
}

var jsonPathPart = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// JSONText selects a text field of a JSONB column: column->>'path' AS alias.
func JSONText(column, path, alias string) string {
	return fmt.Sprintf("%s->>'%s' AS %s",
		quoteIdent(column), jsonPathPart.ReplaceAllString(path, ""), quoteIdent(alias))
}

var (
	asKeyword  = regexp.MustCompile(`(?i)\s+AS\s+`)
	jsonColumn = regexp.MustCompile(`^([a-zA-Z_][a-zA-Z0-9_.]*)->>'([a-zA-Z0-9_-]*)'$`)
)

// columnSpec sanitizes "column", "table.column", "column AS alias" and the
// output of JSONText. Unrecognized JSON expressions yield "".
func columnSpec(spec string) string {
	if strings.HasSuffix(spec, `"`) && strings.Contains(spec, "->>") {
		return spec // already built by JSONText
	}
	expr, alias := spec, ""
	if parts := asKeyword.Split(spec, 2); len(parts) == 2 {
		expr, alias = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	var out string
	if strings.Contains(expr, "->") {
		m := jsonColumn.FindStringSubmatch(expr)
		if m == nil {
			return ""
		}
		out = fmt.Sprintf("%s->>'%s'", quoteIdent(m[1]), m[2])
	} else {
		out = quoteIdent(expr)
	}
	if alias != "" {
		out += " AS " + quoteIdent(alias)
	}
	return out
}

func buildSelectClause(options *ListQueryOptions) string {
	if options.CountOnly {
		return "SELECT COUNT(*)"
	}
	if len(options.Columns) == 0 {
		return "SELECT *"
	}
	cols := make([]string, 0, len(options.Columns))
	for _, c := range options.Columns {
		if s := columnSpec(c); s != "" {
			cols = append(cols, s)
		}
	}
	if len(cols) == 0 {
		return "SELECT *"
	}
	return "SELECT " + strings.Join(cols, ", ")
}

var rawPlaceholder = regexp.MustCompile(`\$(\d+)`)

// processCondition renders one condition starting at parameter $next and
// returns the SQL, its args and the next free parameter index.
func processCondition(cond Condition, next int) (string, []any, int) {
	switch cond.Type {
	case Custom:
		params, _ := cond.Value.([]any)
		remap := make(map[int]int)
		var args []any
		sql := rawPlaceholder.ReplaceAllStringFunc(cond.rawQuery, func(m string) string {
			n, err := strconv.Atoi(m[1:])
			if err != nil || n < 1 || n > len(params) {
				return m
			}
			idx, ok := remap[n]
			if !ok {
				idx = next
				remap[n] = idx
				args = append(args, params[n-1])
				next++
			}
			return "$" + strconv.Itoa(idx)
		})
		return "(" + sql + ")", args, next
	case In:
		rv := reflect.ValueOf(cond.Value)
		if rv.Kind() != reflect.Slice || rv.Len() == 0 {
			return "FALSE", nil, next
		}
		placeholders := make([]string, rv.Len())
		args := make([]any, rv.Len())
		for i := range rv.Len() {
			placeholders[i] = "$" + strconv.Itoa(next)
			args[i] = rv.Index(i).Interface()
			next++
		}
		return fmt.Sprintf("%s IN (%s)", quoteIdent(cond.Field), strings.Join(placeholders, ", ")), args, next
	default:
		return fmt.Sprintf("%s %s $%d", quoteIdent(cond.Field), cond.Type, next), []any{cond.Value}, next + 1
	}
}

// BuildListQuery renders options as SQL plus positional args.
//
//	query, args := BuildListQuery(NewListQueryOptions("users",
//		WithCondition(WhereCond("role", Equal, "teacher")),
//		WithOrderBy("position", "ASC"),
//	))
func BuildListQuery(options *ListQueryOptions) (string, []any) {
	var b strings.Builder
	b.WriteString(buildSelectClause(options))
	b.WriteString(" FROM ")
	b.WriteString(quoteIdent(options.Table))

	var args []any
	next := 1
	if len(options.Conditions) > 0 {
		parts := make([]string, 0, len(options.Conditions))
		for _, cond := range options.Conditions {
			sql, condArgs, n := processCondition(cond, next)
			parts = append(parts, sql)
			args = append(args, condArgs...)
			next = n
		}
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(parts, " AND "))
	}

	if options.CountOnly {
		return b.String(), args
	}

	if options.OrderBy != "" {
		dir := "ASC"
		if strings.EqualFold(options.OrderDir, "desc") {
			dir = "DESC"
		}
		fmt.Fprintf(&b, " ORDER BY %s %s", quoteIdent(options.OrderBy), dir)
	}
	if options.Limit >= 0 {
		fmt.Fprintf(&b, " LIMIT $%d", next)
		args = append(args, options.Limit)
		next++
	}
	if options.Offset >= 0 {
		fmt.Fprintf(&b, " OFFSET $%d", next)
		args = append(args, options.Offset)
	}
	return b.String(), args
}
