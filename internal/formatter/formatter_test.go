package formatter

import (
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nexusaudio/nexus/internal/models"
	tu "github.com/nexusaudio/nexus/internal/testing"
)

func sampleTracks() []models.Track {
	collection := "Night Drive"
	return []models.Track{
		{ID: 1, Title: "Afterglow", Artist: "Nocturne", Bpm: 124, DurationSec: 203,
			PriceBasic: 199, PricePro: 499, PriceStems: 1999, CollectionName: &collection},
		{ID: 2, Title: "Rise", Artist: "Orchestra One", Bpm: 0, DurationSec: 154,
			PriceBasic: 299, PricePro: 799, PriceStems: 2999},
	}
}

func TestTracksToCSV(t *testing.T) {
	data, err := TracksToCSV(sampleTracks())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV output: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	if records[0][0] != "ID" || records[0][5] != "Basic" {
		t.Errorf("unexpected header: %v", records[0])
	}
	if records[1][1] != "Afterglow" || records[1][5] != "1.99" {
		t.Errorf("unexpected first row: %v", records[1])
	}
	if records[2][8] != "" {
		t.Errorf("expected empty collection for second row, got %q", records[2][8])
	}
}

func TestTracksToText(t *testing.T) {
	text := string(TracksToText(sampleTracks()))

	if !strings.Contains(text, "Tracks: 2") {
		t.Errorf("expected track count, got %q", text)
	}
	if !strings.Contains(text, "1. Nocturne - Afterglow (Night Drive) [3:23] $1.99") {
		t.Errorf("unexpected first line in %q", text)
	}
	if !strings.Contains(text, "2. Orchestra One - Rise [2:34] $2.99") {
		t.Errorf("unexpected second line in %q", text)
	}
}

func TestGenresToText(t *testing.T) {
	genres := []models.GenreWithSubGenres{
		{
			Genre: models.Genre{ID: 1, Name: "Electronic", Slug: "electronic"},
			SubGenres: []models.SubGenre{
				{ID: 1, Name: "House", Slug: "house", TrackCount: 7},
			},
		},
		{Genre: models.Genre{ID: 2, Name: "Cinematic", Slug: "cinematic"}, SubGenres: []models.SubGenre{}},
	}

	text := string(GenresToText(genres))
	if !strings.Contains(text, "Electronic (electronic)") {
		t.Errorf("missing genre line in %q", text)
	}
	if !strings.Contains(text, "  House (house) - 7 tracks") {
		t.Errorf("missing sub-genre line in %q", text)
	}
	if !strings.Contains(text, "Cinematic (cinematic)") {
		t.Errorf("missing childless genre in %q", text)
	}
}

func TestStatisticsToText(t *testing.T) {
	stats := &models.Statistics{
		TotalGenres: 5, TotalSubGenres: 15, TotalTracks: 120,
		AvgPriceBasic: 219, AvgPricePro: 549, AvgPriceStems: 2149,
		AvgBpm: 118.4, AvgDurationSec: 201.0,
	}

	text := string(StatisticsToText(stats))
	if !strings.Contains(text, "Tracks:      120") {
		t.Errorf("missing track count in %q", text)
	}
	if !strings.Contains(text, "Avg basic:   $2.19") {
		t.Errorf("missing average price in %q", text)
	}
	if !strings.Contains(text, "Avg BPM:     118.4") {
		t.Errorf("missing average bpm in %q", text)
	}
}

func TestToJSON(t *testing.T) {
	data, err := ToJSON(sampleTracks())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(decoded))
	}
	if decoded[0]["price_basic"] != "1.99" {
		t.Errorf("expected decimal price string, got %v", decoded[0]["price_basic"])
	}
}

func TestWriteTracksCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")

	written, err := WriteTracksCSV(sampleTracks(), path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if written != path {
		t.Errorf("expected path %q, got %q", path, written)
	}

	tu.AssertFileExists(t, path)
	content := tu.MustReadFile(t, path)
	if !strings.Contains(content, "Afterglow") {
		t.Errorf("expected track row in file, got %q", content)
	}
}
