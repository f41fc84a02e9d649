// package formatter renders catalog data for CLI output (CSV, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/nexusaudio/nexus/internal/models"
	"github.com/nexusaudio/nexus/internal/shared"
)

// TracksToCSV converts tracks to CSV with columns: ID, Title, Artist, BPM, Duration, Basic, Pro, Stems, Collection
func TracksToCSV(tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "BPM", "Duration", "Basic", "Pro", "Stems", "Collection"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range tracks {
		collection := ""
		if track.CollectionName != nil {
			collection = *track.CollectionName
		}
		record := []string{
			strconv.Itoa(track.ID),
			track.Title,
			track.Artist,
			strconv.Itoa(track.Bpm),
			strconv.Itoa(track.DurationSec),
			track.PriceBasic.String(),
			track.PricePro.String(),
			track.PriceStems.String(),
			collection,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// TracksToText converts tracks to a numbered plain text listing
func TracksToText(tracks []models.Track) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Tracks: %d\n\n", len(tracks)))
	for i, track := range tracks {
		duration := shared.FormatDuration(track.DurationSec)
		collectionPart := ""
		if track.CollectionName != nil && *track.CollectionName != "" {
			collectionPart = fmt.Sprintf(" (%s)", *track.CollectionName)
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s [%s] $%s\n",
			i+1, track.Artist, track.Title, collectionPart, duration, track.PriceBasic))
	}

	return buf.Bytes()
}

// GenresToText converts the grouped taxonomy to an indented plain text tree
func GenresToText(genres []models.GenreWithSubGenres) []byte {
	var buf bytes.Buffer

	for _, genre := range genres {
		buf.WriteString(fmt.Sprintf("%s (%s)\n", genre.Name, genre.Slug))
		for _, sub := range genre.SubGenres {
			buf.WriteString(fmt.Sprintf("  %s (%s) - %d tracks\n", sub.Name, sub.Slug, sub.TrackCount))
		}
	}

	return buf.Bytes()
}

// StatisticsToText converts the catalog aggregate to plain text
func StatisticsToText(stats *models.Statistics) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Genres:      %d\n", stats.TotalGenres))
	buf.WriteString(fmt.Sprintf("Sub-genres:  %d\n", stats.TotalSubGenres))
	buf.WriteString(fmt.Sprintf("Tracks:      %d\n", stats.TotalTracks))
	buf.WriteString(fmt.Sprintf("Avg basic:   $%s\n", stats.AvgPriceBasic))
	buf.WriteString(fmt.Sprintf("Avg pro:     $%s\n", stats.AvgPricePro))
	buf.WriteString(fmt.Sprintf("Avg stems:   $%s\n", stats.AvgPriceStems))
	buf.WriteString(fmt.Sprintf("Avg BPM:     %.1f\n", stats.AvgBpm))
	buf.WriteString(fmt.Sprintf("Avg length:  %s\n", shared.FormatDuration(int(stats.AvgDurationSec))))

	return buf.Bytes()
}

// ToJSON generates an indented JSON representation of any catalog value
func ToJSON(data any) ([]byte, error) {
	return shared.MarshalJSON(data, true)
}

// WriteTracksCSV exports tracks to a CSV file.
//
// Defaults to tracks.csv as the filename.
func WriteTracksCSV(tracks []models.Track, filepath string) (string, error) {
	if filepath == "" {
		filepath = "tracks.csv"
	}

	csvData, err := TracksToCSV(tracks)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSV: %w", err)
	}

	if err := os.WriteFile(filepath, csvData, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	return filepath, nil
}
