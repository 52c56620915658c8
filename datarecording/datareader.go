package datarecording

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"strings"
)

// QueryParams narrows and orders the rows returned by Query. Where and
// OrderBy are SQL fragments without their keywords. A zero Limit returns all
// rows.
type QueryParams struct {
	Where   string
	Args    []any
	OrderBy string
	Limit   int
	Offset  int
}

// DataReader reads back the tables written by a DataRecorder. A table must be
// mapped to the struct type it was created with before it can be queried.
type DataReader interface {
	MapTable(tableName string, sampleEntry any)
	ListTables() []string

	// StoredTables lists every table present in the database file, mapped
	// or not.
	StoredTables(ctx context.Context) ([]string, error)

	// Query returns one pointer to a mapped struct per row, together with the
	// number of rows matching params.Where before Limit and Offset apply.
	Query(ctx context.Context, tableName string, params QueryParams) (
		results []any,
		totalCount int,
		err error,
	)

	Close() error
}

type sqliteReader struct {
	db      *sql.DB
	entries map[string]reflect.Type
}

// NewReader opens a database file written by a DataRecorder. The filename
// must include the .sqlite3 extension.
func NewReader(dbFilename string) DataReader {
	db, err := sql.Open("sqlite3", dbFilename)
	if err != nil {
		panic(err)
	}

	return NewReaderWithDB(db)
}

// NewReaderWithDB creates a DataReader on an open database.
func NewReaderWithDB(db *sql.DB) DataReader {
	return &sqliteReader{
		db:      db,
		entries: make(map[string]reflect.Type),
	}
}

func (r *sqliteReader) MapTable(tableName string, sampleEntry any) {
	r.entries[tableName] = reflect.TypeOf(sampleEntry)
}

func (r *sqliteReader) ListTables() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}

	return names
}

func (r *sqliteReader) StoredTables(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type='table' ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	var names []string

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}

		names = append(names, name)
	}

	return names, rows.Err()
}

func (r *sqliteReader) Query(
	ctx context.Context,
	tableName string,
	params QueryParams,
) ([]any, int, error) {
	entryType, ok := r.entries[tableName]
	if !ok {
		return nil, 0, fmt.Errorf("table %s is not mapped", tableName)
	}

	filter := ""
	if params.Where != "" {
		filter = " WHERE " + params.Where
	}

	var total int

	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM "+tableName+filter, params.Args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("counting %s: %w", tableName, err)
	}

	rows, err := r.db.QueryContext(ctx,
		selectStatement(tableName, filter, params), params.Args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying %s: %w", tableName, err)
	}
	defer rows.Close()

	results, err := scanEntries(rows, entryType)
	if err != nil {
		return nil, 0, fmt.Errorf("scanning %s: %w", tableName, err)
	}

	return results, total, nil
}

func selectStatement(tableName, filter string, params QueryParams) string {
	var b strings.Builder

	b.WriteString("SELECT * FROM ")
	b.WriteString(tableName)
	b.WriteString(filter)

	if params.OrderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(params.OrderBy)
	}

	if params.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d OFFSET %d", params.Limit, params.Offset)
	}

	return b.String()
}

// scanEntries fills one entry per row, matching columns to fields by name.
// Columns without a field are discarded.
func scanEntries(rows *sql.Rows, entryType reflect.Type) ([]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []any

	for rows.Next() {
		entry := reflect.New(entryType)
		targets := make([]any, len(columns))

		for i, column := range columns {
			field := entry.Elem().FieldByName(column)
			if field.IsValid() {
				targets[i] = field.Addr().Interface()
				continue
			}

			var discard any
			targets[i] = &discard
		}

		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}

		results = append(results, entry.Interface())
	}

	return results, rows.Err()
}

func (r *sqliteReader) Close() error {
	return r.db.Close()
}
