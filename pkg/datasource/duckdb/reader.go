package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/common"
)

// Reader loads recorded observations out of a duckdb database. One table per
// stream, named <stream>_observations, columns ts and value.
type Reader struct {
	dataSourceName string
	db             *sql.DB
}

func NewReader(dataSourceName string) *Reader {
	return &Reader{
		dataSourceName: dataSourceName,
	}
}

func (r *Reader) Connect() error {
	db, err := sql.Open("duckdb", r.dataSourceName)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	r.db = db
	return nil
}

func (r *Reader) Close() {
	_ = r.db.Close()
}

func (r *Reader) LoadObservations(ctx context.Context, stream string, from, to time.Time, handler func(observation common.Observation) error) error {

	query := fmt.Sprintf(`SELECT ts, value FROM %s_observations WHERE ts BETWEEN ? AND ? ORDER BY ts`, stream)

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	for rows.Next() {
		var observation common.Observation
		timeStamp := time.Time{}
		if err := rows.Scan(&timeStamp, &observation.Value); err != nil {
			return fmt.Errorf("error scanning row: %w", err)
		}
		observation.TimeStamp = timeStamp
		observation.Stream = stream

		if err := handler(observation); err != nil {
			return fmt.Errorf("error processing observation: %w", err)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error scanning rows: %w", err)
	}

	return nil
}
