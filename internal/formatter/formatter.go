// package formatter provides functions to export playlist data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/SheCodesAus/vibelab/internal/models"
	"github.com/SheCodesAus/vibelab/internal/shared"
)

// ExportToCSV converts a playlist to CSV format with columns: ID, Spotify ID, Title, Artist, Album
func ExportToCSV(playlist *models.Playlist) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Spotify ID", "Title", "Artist", "Album"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, item := range playlist.Items {
		record := []string{
			strconv.Itoa(item.ID),
			item.SpotifyID,
			item.Title,
			item.Artist,
			item.Album,
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

// ExportToMarkdown converts a playlist to Markdown format
func ExportToMarkdown(playlist *models.Playlist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", playlist.Name))

	if playlist.Description != "" {
		buf.WriteString(fmt.Sprintf("**Description**: %s\n\n", playlist.Description))
	}

	if playlist.Vibe != "" {
		buf.WriteString(fmt.Sprintf("**Vibe**: %s\n", playlist.Vibe))
	}
	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n", len(playlist.Items)))
	buf.WriteString(fmt.Sprintf("**Visibility**: %s\n\n", shared.VisibilityString(playlist.Open)))

	buf.WriteString("## Tracks\n\n")
	for i, item := range playlist.Items {
		albumPart := ""
		if item.Album != "" {
			albumPart = fmt.Sprintf(" (%s)", item.Album)
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s\n", i+1, item.Artist, item.Title, albumPart))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a playlist to plain text format
func ExportToText(playlist *models.Playlist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", playlist.Name))
	if playlist.Description != "" {
		buf.WriteString(fmt.Sprintf("Description: %s\n", playlist.Description))
	}
	buf.WriteString(fmt.Sprintf("Tracks: %d\n\n", len(playlist.Items)))

	for i, item := range playlist.Items {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, item.Artist, item.Title))
	}

	return buf.Bytes(), nil
}

// ToMetadataJSON generates a JSON representation of playlist metadata (without items)
func ToMetadataJSON(playlist models.Playlist) ([]byte, error) {
	playlist.Items = nil
	return shared.MarshalJSON(playlist, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	TracksFile   string
	MetadataFile string
}

// WriteCSVExport exports a playlist to CSV format with accompanying metadata JSON file.
//
// Defaults to playlist ID as the base filename & creates {base}_tracks.csv and {base}_metadata.json
func WriteCSVExport(playlist *models.Playlist, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = playlist.ID
	}

	csvData, err := ExportToCSV(playlist)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	tracksFile := baseFilepath + "_tracks.csv"
	if err := os.WriteFile(tracksFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(*playlist)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		TracksFile:   tracksFile,
		MetadataFile: metadataFile,
	}, nil
}

// WriteExport writes a playlist in the requested format ("csv", "md",
// "markdown", "txt", "text") and returns the file path.
func WriteExport(playlist *models.Playlist, format, path string) (string, error) {
	var (
		data []byte
		err  error
		ext  string
	)

	switch format {
	case "csv":
		result, err := WriteCSVExport(playlist, trimExt(path, ".csv"))
		if err != nil {
			return "", err
		}
		return result.TracksFile, nil
	case "md", "markdown":
		data, err = ExportToMarkdown(playlist)
		ext = ".md"
	case "txt", "text", "":
		data, err = ExportToText(playlist)
		ext = ".txt"
	default:
		return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, format)
	}

	if err != nil {
		return "", err
	}

	if path == "" {
		path = playlist.ID + ext
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

func trimExt(path, ext string) string {
	if len(path) > len(ext) && path[len(path)-len(ext):] == ext {
		return path[:len(path)-len(ext)]
	}
	return path
}
