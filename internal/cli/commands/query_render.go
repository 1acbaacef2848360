package commands

import (
	"database/sql"
	"fmt"

	"github.com/leapstack-labs/leapcube/internal/cli/output"
)

// collectRows drains rows into column-keyed maps.
func collectRows(rows *sql.Rows) ([]string, []map[string]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	results := []map[string]any{}
	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, nil, err
		}

		row := make(map[string]any, len(cols))
		for i, col := range cols {
			val := values[i]
			// Convert []byte to string for readability
			if b, ok := val.([]byte); ok {
				val = string(b)
			}
			row[col] = val
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return cols, results, nil
}

func renderTable(r *output.Renderer, cols []string, results []map[string]any) {
	if len(results) == 0 {
		r.Println("(0 rows)")
		return
	}

	rows := make([][]any, len(results))
	for i, result := range results {
		row := make([]any, len(cols))
		for j, col := range cols {
			row[j] = formatValue(result[col])
		}
		rows[i] = row
	}
	r.Table(cols, rows)
	r.Println(fmt.Sprintf("(%d rows)", len(results)))
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", v)
}
