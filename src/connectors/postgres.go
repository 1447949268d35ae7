// Package connectors materializes frames from external data sources.
package connectors

import (
	"context"
	"fmt"

	pandasai "github.com/Andromeda227799/pandas-ai"
	"github.com/jackc/pgx/v5"
)

// ReadPostgres runs a query against a PostgreSQL database and materializes
// the result set as a frame. Column order follows the result set.
func ReadPostgres(ctx context.Context, connString, query string, opts ...pandasai.Option) (*pandasai.DataFrame, error) {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}
	defer conn.Close(ctx)

	rows, err := conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres query: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([][]any, len(fields))

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("postgres scan: %w", err)
		}
		for i := range fields {
			columns[i] = append(columns[i], values[i])
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres rows: %w", err)
	}

	series := make([]pandasai.Series, len(fields))
	for i, field := range fields {
		series[i] = pandasai.Series{Name: field.Name, Values: columns[i]}
	}
	return pandasai.NewDataFrame(series, opts...)
}
