// package formatter provides functions to export song lists to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spindle-fm/spindle/internal/models"
)

// SongList is a named set of songs produced by a recommendation or search
// run, ready for export.
type SongList struct {
	Title string
	Songs []models.Song
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ExportToCSV converts a SongList to CSV format with columns: ID, Name, Artist, Genres, ExternalID, PreviewURL, DownloadURL
func ExportToCSV(list *SongList) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Artist", "Genres", "ExternalID", "PreviewURL", "DownloadURL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range list.Songs {
		record := []string{
			strconv.Itoa(song.ID),
			song.Name,
			song.Artist,
			strings.Join(song.Genres, ","),
			deref(song.ExternalID),
			deref(song.PreviewURL),
			deref(song.DownloadURL),
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

// ExportToMarkdown converts a SongList to Markdown format with optional cover image
func ExportToMarkdown(list *SongList, imageFilename string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", list.Title))

	if imageFilename != "" {
		buf.WriteString(fmt.Sprintf("![Cover](%s)\n\n", imageFilename))
	}

	buf.WriteString(fmt.Sprintf("**Songs**: %d\n\n", len(list.Songs)))

	buf.WriteString("## Songs\n\n")
	for i, song := range list.Songs {
		genrePart := ""
		if len(song.Genres) > 0 {
			genrePart = fmt.Sprintf(" (%s)", strings.Join(song.Genres, ", "))
		}

		var files []string
		if song.PreviewURL != nil {
			files = append(files, "preview")
		}
		if song.DownloadURL != nil {
			files = append(files, "full")
		}
		filePart := ""
		if len(files) > 0 {
			filePart = fmt.Sprintf(" [%s]", strings.Join(files, ", "))
		}

		buf.WriteString(fmt.Sprintf("%d. %s - %s%s%s\n", i+1, song.Artist, song.Name, genrePart, filePart))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a SongList to plain text format
func ExportToText(list *SongList) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s\n", list.Title))
	buf.WriteString(fmt.Sprintf("Songs: %d\n\n", len(list.Songs)))

	for i, song := range list.Songs {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, song.Artist, song.Name))
	}

	return buf.Bytes(), nil
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// ToJSON generates an indented JSON representation of the song list
func ToJSON(list *SongList) ([]byte, error) {
	data, err := json.MarshalIndent(list.Songs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal songs: %w", err)
	}
	return data, nil
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	SongsFile string
}

// WriteCSVExport exports a song list to CSV format.
//
// Defaults to the list title as the base filename & creates {base}_songs.csv
func WriteCSVExport(list *SongList, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = slug(list.Title)
	}

	csvData, err := ExportToCSV(list)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	songsFile := baseFilepath + "_songs.csv"
	if err := os.WriteFile(songsFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	return &CSVExportResult{SongsFile: songsFile}, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory  string
	Files      []string
	CoverImage string
}

// WriteMarkdownExport exports a song list to Markdown format in a dedicated directory.
//
// Directory name defaults to a slug of the list title.
// The imageURL parameter is optional - if provided, attempts to download the cover image.
// Creates a directory structure: {dir}/README.md and optionally {dir}/cover.jpg
func WriteMarkdownExport(list *SongList, outputDir string, imageURL string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = slug(list.Title)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	var coverImageFilename string
	if imageURL != "" {
		imageData, err := DownloadImage(imageURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to download cover image: %v\n", err)
		} else {
			coverImageFilename = "cover.jpg"
			coverImagePath := fmt.Sprintf("%s/%s", outputDir, coverImageFilename)
			if err := os.WriteFile(coverImagePath, imageData, 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save cover image: %v\n", err)
				coverImageFilename = ""
			} else {
				result.CoverImage = coverImagePath
				result.Files = append(result.Files, coverImagePath)
			}
		}
	}

	mdData, err := ExportToMarkdown(list, coverImageFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := fmt.Sprintf("%s/README.md", outputDir)
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)

	return result, nil
}

// WriteTextExport exports a song list to plain text format.
//
// Defaults to {slug}_songs.txt as the filename.
func WriteTextExport(list *SongList, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_songs.txt", slug(list.Title))
	}

	textData, err := ExportToText(list)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}

// slug turns a list title into a safe filename fragment.
func slug(title string) string {
	if title == "" {
		return "songs"
	}

	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, title)

	for strings.Contains(mapped, "--") {
		mapped = strings.ReplaceAll(mapped, "--", "-")
	}
	if mapped = strings.Trim(mapped, "-"); mapped == "" {
		return "songs"
	}
	return mapped
}
