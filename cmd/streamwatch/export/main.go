package main

import (
	"context"
	"encoding/binary"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/common"
	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/datasource/duckdb"
	"github.com/kiro358/Efficient-Data-Stream-Anomaly-Detection/pkg/datasource/historical"
)

func exportStream(database, stream string, from, to time.Time) error {
	reader := duckdb.NewReader(database)
	if err := reader.Connect(); err != nil {
		return err
	}
	defer reader.Close()

	binFile, err := os.Create(stream + ".bin")
	if err != nil {
		return err
	}
	defer func(binFile *os.File) {
		_ = binFile.Close()
	}(binFile)

	count := 0
	err = reader.LoadObservations(context.Background(), stream, from, to, func(observation common.Observation) error {
		record := historical.BinaryObservation{
			TimeStamp: observation.TimeStamp.UnixNano(),
			Value:     observation.Value,
		}
		if err := binary.Write(binFile, binary.LittleEndian, record); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		_ = os.Remove(stream + ".bin")
		return err
	}

	slog.Info("export finished", "stream", stream, "records", count)
	return nil
}

func main() {
	database := flag.String("db", "", "duckdb database file")
	stream := flag.String("stream", "", "stream to export")
	from := flag.String("from", "2025-01-01T00:00:00Z", "range start, RFC3339")
	to := flag.String("to", "2025-12-31T00:00:00Z", "range end, RFC3339")
	flag.Parse()

	if *database == "" || *stream == "" {
		slog.Error("db and stream are required")
		return
	}

	fromTime, err := time.Parse(time.RFC3339, *from)
	if err != nil {
		slog.Error("invalid from", "error", err)
		return
	}
	toTime, err := time.Parse(time.RFC3339, *to)
	if err != nil {
		slog.Error("invalid to", "error", err)
		return
	}

	if err := exportStream(*database, *stream, fromTime, toTime); err != nil {
		slog.Error("failed to export", "error", err)
	} else {
		slog.Info("done")
	}
}
