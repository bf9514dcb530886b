package datastore

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"github.com/blogem/regdesk/metrics"
)

var identPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SQLClient implements Client on top of database/sql
type SQLClient struct {
	db          *sql.DB
	placeholder sq.PlaceholderFormat
	logger      *zap.Logger
}

// NewSQLClient creates a client for the given driver ("sqlite3" or "postgres")
func NewSQLClient(db *sql.DB, driver string, logger *zap.Logger) *SQLClient {
	var placeholder sq.PlaceholderFormat = sq.Question
	if driver == "postgres" || driver == "pgx" {
		placeholder = sq.Dollar
	}
	return &SQLClient{db: db, placeholder: placeholder, logger: logger}
}

// Query runs a select against a table or view
func (c *SQLClient) Query(ctx context.Context, q Query) ([]Row, error) {
	if err := validateQuery(q); err != nil {
		return nil, c.fail(q.Collection, "query", err)
	}

	builder := sq.Select("*").From(q.Collection).PlaceholderFormat(c.placeholder)

	for _, f := range q.Filters {
		pred, err := predicate(f)
		if err != nil {
			return nil, c.fail(q.Collection, "query", err)
		}
		builder = builder.Where(pred)
	}

	for _, o := range q.Order {
		if o.Desc {
			builder = builder.OrderBy(o.Column + " DESC")
		} else {
			builder = builder.OrderBy(o.Column + " ASC")
		}
	}

	if q.Limit > 0 {
		builder = builder.Limit(uint64(q.Limit))
	}
	if q.Offset > 0 {
		builder = builder.Offset(uint64(q.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, c.fail(q.Collection, "query", NewError(KindValidation, q.Collection, "", err.Error()))
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, c.fail(q.Collection, "query", err)
	}
	defer rows.Close()

	result, err := scanRows(rows)
	if err != nil {
		return nil, c.fail(q.Collection, "query", err)
	}
	return result, nil
}

// Insert adds a record to a table
func (c *SQLClient) Insert(ctx context.Context, collection string, row Row) error {
	if err := validateRow(collection, row); err != nil {
		return c.fail(collection, "insert", err)
	}

	// SetMap sorts columns, keeping statements deterministic
	query, args, err := sq.Insert(collection).SetMap(row).PlaceholderFormat(c.placeholder).ToSql()
	if err != nil {
		return c.fail(collection, "insert", NewError(KindValidation, collection, "", err.Error()))
	}

	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return c.fail(collection, "insert", err)
	}
	return nil
}

// Update patches the record with the given id
func (c *SQLClient) Update(ctx context.Context, collection, id string, patch Row) error {
	if err := validateRow(collection, patch); err != nil {
		return c.fail(collection, "update", err)
	}

	query, args, err := sq.Update(collection).
		SetMap(patch).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(c.placeholder).
		ToSql()
	if err != nil {
		return c.fail(collection, "update", NewError(KindValidation, collection, "", err.Error()))
	}

	res, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return c.fail(collection, "update", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return c.fail(collection, "update", err)
	}
	if affected == 0 {
		return c.fail(collection, "update", NewError(KindNotFound, collection, "no_rows", fmt.Sprintf("no record with id %q", id)))
	}
	return nil
}

// fail classifies, logs and counts an error
func (c *SQLClient) fail(collection, op string, err error) error {
	dsErr := Classify(collection, err)
	if dsErr.Collection == "" {
		dsErr.Collection = collection
	}
	metrics.RecordDatastoreError(collection, string(dsErr.Kind))
	c.logger.Warn("datastore call failed",
		zap.String("op", op),
		zap.String("collection", collection),
		zap.String("kind", string(dsErr.Kind)),
		zap.String("code", dsErr.Code),
		zap.Error(err),
	)
	return dsErr
}

func predicate(f Filter) (sq.Sqlizer, error) {
	switch f.Op {
	case OpEq:
		return sq.Eq{f.Column: f.Value}, nil
	case OpILike:
		pattern := "%" + likeEscaper.Replace(fmt.Sprint(f.Value)) + "%"
		return sq.Expr("LOWER("+f.Column+") LIKE LOWER(?) ESCAPE '\\'", pattern), nil
	case OpGte:
		return sq.GtOrEq{f.Column: f.Value}, nil
	case OpLte:
		return sq.LtOrEq{f.Column: f.Value}, nil
	case OpIn:
		return sq.Eq{f.Column: f.Value}, nil
	}
	return nil, NewError(KindValidation, "", "", fmt.Sprintf("unsupported operator %q", f.Op))
}

func validateQuery(q Query) error {
	if !identPattern.MatchString(q.Collection) {
		return NewError(KindValidation, q.Collection, "", "invalid collection name")
	}
	for _, f := range q.Filters {
		if !identPattern.MatchString(f.Column) {
			return NewError(KindValidation, q.Collection, "", fmt.Sprintf("invalid column %q", f.Column))
		}
	}
	for _, o := range q.Order {
		if !identPattern.MatchString(o.Column) {
			return NewError(KindValidation, q.Collection, "", fmt.Sprintf("invalid order column %q", o.Column))
		}
	}
	if q.Limit < 0 || q.Offset < 0 {
		return NewError(KindValidation, q.Collection, "", "limit and offset must not be negative")
	}
	return nil
}

func validateRow(collection string, row Row) error {
	if !identPattern.MatchString(collection) {
		return NewError(KindValidation, collection, "", "invalid collection name")
	}
	if len(row) == 0 {
		return NewError(KindValidation, collection, "", "no columns given")
	}
	for col := range row {
		if !identPattern.MatchString(col) {
			return NewError(KindValidation, collection, "", fmt.Sprintf("invalid column %q", col))
		}
	}
	return nil
}

// scanRows reads every row into a map, converting []byte values to strings
func scanRows(rows *sql.Rows) ([]Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var result []Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(Row, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
