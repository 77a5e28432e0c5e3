package export

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"shopctl/internal/catalog"
)

func sampleEntities() []catalog.Entity {
	return []catalog.Entity{
		{
			ID:       "p1",
			Name:     "Slim jeans",
			Price:    120,
			Category: "pants",
			Stock:    10,
			Sizes:    []string{"S", "M"},
			Colors:   []string{"black", "navy"},
			Image:    "/uploads/jeans.jpg",
		},
		{
			ID:       "o1",
			Name:     "Summer hoodie",
			OldPrice: 800,
			NewPrice: 450,
			Category: "offers",
			Sizes:    []string{"L"},
			Colors:   []string{"gray"},
		},
	}
}

func TestFlatten(t *testing.T) {
	rows := Flatten(catalog.KindOffer, sampleEntities())
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}

	if rows[0].Sizes != "S,M" || rows[0].Colors != "black,navy" {
		t.Errorf("Expected comma-joined sets, got %q / %q", rows[0].Sizes, rows[0].Colors)
	}
	if rows[0].Discount != 0 {
		t.Errorf("Expected no discount without offer prices, got %d", rows[0].Discount)
	}
	if rows[1].Discount != 44 {
		t.Errorf("Expected derived discount 44, got %d", rows[1].Discount)
	}
}

func TestParquetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.parquet")
	rows := Flatten(catalog.KindProduct, sampleEntities())

	if err := Write(path, rows); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(got) != len(rows) {
		t.Fatalf("Expected %d rows, got %d", len(rows), len(got))
	}
	if got[0].ID != "p1" || got[0].Name != "Slim jeans" || got[0].Price != 120 {
		t.Errorf("Unexpected first row: %+v", got[0])
	}
	if got[1].Discount != 44 {
		t.Errorf("Expected discount to survive the round trip, got %d", got[1].Discount)
	}
}

func TestWriteJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.jsonl")
	rows := Flatten(catalog.KindProduct, sampleEntities())

	if err := Write(path, rows); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open output: %v", err)
	}
	defer file.Close()

	var count int
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var row Row
		if err := json.Unmarshal(scanner.Bytes(), &row); err != nil {
			t.Fatalf("Line %d is not valid JSON: %v", count+1, err)
		}
		count++
	}
	if count != len(rows) {
		t.Errorf("Expected %d lines, got %d", len(rows), count)
	}
}

func TestWriteUnsupportedExtension(t *testing.T) {
	if err := Write(filepath.Join(t.TempDir(), "catalog.csv"), nil); err == nil {
		t.Error("Expected an error for unsupported extension")
	}
}
