// Package export writes catalog snapshots to Parquet or JSONL files so
// the catalog can be analyzed or archived outside the store backend.
package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"

	"shopctl/internal/catalog"
)

// Row is one exported catalog entry, flattened for columnar storage.
type Row struct {
	Kind        string  `parquet:"kind" json:"kind"`
	ID          string  `parquet:"id" json:"id"`
	Name        string  `parquet:"name" json:"name"`
	Price       float64 `parquet:"price" json:"price,omitempty"`
	OldPrice    float64 `parquet:"old_price" json:"old_price,omitempty"`
	NewPrice    float64 `parquet:"new_price" json:"new_price,omitempty"`
	Discount    int     `parquet:"discount" json:"discount,omitempty"`
	Category    string  `parquet:"category" json:"category,omitempty"`
	Description string  `parquet:"description" json:"description,omitempty"`
	Stock       int     `parquet:"stock" json:"stock,omitempty"`
	Sizes       string  `parquet:"sizes" json:"sizes"`
	Colors      string  `parquet:"colors" json:"colors"`
	Image       string  `parquet:"image" json:"image,omitempty"`
}

// Flatten converts fetched entities into export rows. Offer rows carry
// the derived discount so downstream analysis does not recompute it.
func Flatten(kind catalog.Kind, entities []catalog.Entity) []Row {
	rows := make([]Row, 0, len(entities))
	for _, e := range entities {
		row := Row{
			Kind:        string(kind),
			ID:          e.ID,
			Name:        e.Name,
			Price:       e.Price,
			OldPrice:    e.OldPrice,
			NewPrice:    e.NewPrice,
			Category:    e.Category,
			Description: e.Description,
			Stock:       e.Stock,
			Sizes:       strings.Join(e.Sizes, ","),
			Colors:      strings.Join(e.Colors, ","),
			Image:       e.Image,
		}
		if d, ok := catalog.Discount(e.OldPrice, e.NewPrice); ok {
			row.Discount = d
		}
		rows = append(rows, row)
	}
	return rows
}

// Write writes rows to path, picking the format from the extension
// (.parquet or .jsonl/.json).
func Write(path string, rows []Row) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		return writeParquet(path, rows)
	case ".jsonl", ".json":
		return writeJSONL(path, rows)
	default:
		return fmt.Errorf("unsupported export format: %s (supported: .parquet, .jsonl)", filepath.Ext(path))
	}
}

func writeParquet(path string, rows []Row) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[Row](file)
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}

	slog.Debug("Wrote parquet export", "path", path, "rows", len(rows))
	return nil
}

func writeJSONL(path string, rows []Row) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	slog.Debug("Wrote JSONL export", "path", path, "rows", len(rows))
	return nil
}

// Read loads rows back from a Parquet export. Used by tests and by
// anything that wants to re-ingest a snapshot.
func Read(path string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[Row](pf)
	defer reader.Close()

	var rows []Row
	batch := make([]Row, 128)
	for {
		n, err := reader.Read(batch)
		if n > 0 {
			rows = append(rows, batch[:n]...)
		}
		if err != nil {
			break
		}
	}
	return rows, nil
}
