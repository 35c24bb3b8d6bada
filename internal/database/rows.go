package database

import (
	"encoding/json"

	"github.com/jackc/pgx/v5"
)

// RowSet is an ordered result of a read query. Columns preserves the
// field order reported by the store so that rendering the same result
// twice produces identical text.
type RowSet struct {
	Columns []string
	Rows    []map[string]interface{}
}

// Len returns the number of rows.
func (rs *RowSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Rows)
}

// collectRowSet drains pgx rows into a RowSet.
func collectRowSet(rows pgx.Rows) (*RowSet, error) {
	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = string(f.Name)
	}

	rs := &RowSet{Columns: columns}
	for rows.Next() {
		row, err := scanRowToMap(rows)
		if err != nil {
			return nil, err
		}
		rs.Rows = append(rs.Rows, row)
	}

	return rs, rows.Err()
}

// scanRowToMap scans a single row into a column-keyed map.
func scanRowToMap(rows pgx.Rows) (map[string]interface{}, error) {
	fields := rows.FieldDescriptions()
	values := make([]interface{}, len(fields))
	pointers := make([]interface{}, len(fields))
	for i := range values {
		pointers[i] = &values[i]
	}

	if err := rows.Scan(pointers...); err != nil {
		return nil, err
	}

	row := make(map[string]interface{}, len(fields))
	for i, f := range fields {
		val := values[i]
		// jsonb and text columns arrive as byte slices.
		if bytes, ok := val.([]byte); ok {
			var parsed interface{}
			if err := json.Unmarshal(bytes, &parsed); err == nil {
				val = parsed
			} else {
				val = string(bytes)
			}
		}
		row[string(f.Name)] = val
	}

	return row, nil
}
