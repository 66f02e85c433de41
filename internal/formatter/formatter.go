// package formatter exports wishlist data to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/cinex/internal/models"
	"github.com/desertthunder/cinex/internal/shared"
)

// Format names an export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
	FormatJSON     Format = "json"
)

// ParseFormat accepts a format name or a common alias ("md", "txt").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, s)
	}
}

// Extension returns the default file extension for f.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatText:
		return ".txt"
	default:
		return "." + string(f)
	}
}

// WishlistExport is a snapshot of a user's wishlist.
type WishlistExport struct {
	Owner      string         `json:"owner,omitempty"`
	ExportedAt time.Time      `json:"exported_at"`
	Movies     []models.Movie `json:"movies"`
}

// NewWishlistExport stamps movies with the export time.
func NewWishlistExport(owner string, movies []models.Movie, now time.Time) *WishlistExport {
	return &WishlistExport{Owner: owner, ExportedAt: now.UTC(), Movies: movies}
}

func (e *WishlistExport) heading() string {
	if e.Owner == "" {
		return "WishList"
	}
	return e.Owner + "'s WishList"
}

// ExportToCSV converts a WishlistExport to CSV with columns: ID, Title, Year, Director, Genre, Duration, Rating, Premium
func ExportToCSV(export *WishlistExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Year", "Director", "Genre", "Duration", "Rating", "Premium"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, m := range export.Movies {
		record := []string{
			strconv.Itoa(m.ID),
			m.Title,
			m.YearLabel(),
			m.Director,
			m.Genre,
			strconv.Itoa(m.Duration),
			strconv.FormatFloat(m.Rating, 'f', -1, 64),
			strconv.FormatBool(m.Premium),
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

// ExportToMarkdown renders a numbered list. posters maps movie IDs to local poster files to embed.
func ExportToMarkdown(export *WishlistExport, posters map[int]string) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", export.heading())
	fmt.Fprintf(&buf, "**Movies**: %d\n", len(export.Movies))
	fmt.Fprintf(&buf, "**Exported**: %s\n\n", export.ExportedAt.Format(time.DateOnly))

	if len(export.Movies) == 0 {
		buf.WriteString("_Your wishlist is empty._\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("## Movies\n\n")
	for i, m := range export.Movies {
		premium := ""
		if m.Premium {
			premium = " ♛"
		}
		fmt.Fprintf(&buf, "%d. **%s** (%s)%s, dir. %s, %s\n", i+1, m.Title, m.YearLabel(), premium, m.Director, m.RatingLabel())
		if poster, ok := posters[m.ID]; ok {
			fmt.Fprintf(&buf, "\n   ![%s](%s)\n\n", m.Title, poster)
		}
	}
	return buf.Bytes(), nil
}

// ExportToText converts a WishlistExport to plain text
func ExportToText(export *WishlistExport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s\n", export.heading())
	fmt.Fprintf(&buf, "Movies: %d\n\n", len(export.Movies))

	for i, m := range export.Movies {
		fmt.Fprintf(&buf, "%d. %s (%s) - %s\n", i+1, m.Title, m.YearLabel(), m.Director)
	}
	return buf.Bytes(), nil
}

// ExportToJSON converts a WishlistExport to indented JSON
func ExportToJSON(export *WishlistExport) ([]byte, error) {
	return shared.MarshalJSON(export, true)
}

// Export renders export in format f.
func Export(export *WishlistExport, f Format) ([]byte, error) {
	switch f {
	case FormatCSV:
		return ExportToCSV(export)
	case FormatMarkdown:
		return ExportToMarkdown(export, nil)
	case FormatText:
		return ExportToText(export)
	case FormatJSON:
		return ExportToJSON(export)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, f)
	}
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	return data, nil
}

// WriteExport writes export in format f to path, defaulting to wishlist{ext}.
func WriteExport(export *WishlistExport, f Format, path string) (string, error) {
	if path == "" {
		path = "wishlist" + f.Extension()
	}

	data, err := Export(export, f)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", f, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", f, err)
	}
	return path, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory string
	Files     []string
	Posters   int
}

// WriteMarkdownExport writes {dir}/README.md and, when withPosters is set, {dir}/posters/{id}.jpg.
//
// Poster downloads that fail are skipped; the movie is still listed.
func WriteMarkdownExport(ctx context.Context, export *WishlistExport, outputDir string, withPosters bool, client *http.Client) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = "wishlist"
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{Directory: outputDir}
	posters := map[int]string{}

	if withPosters {
		posterDir := filepath.Join(outputDir, "posters")
		if err := os.MkdirAll(posterDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create poster directory: %w", err)
		}
		for _, m := range export.Movies {
			if m.PosterURL == "" || m.PosterURL == models.PlaceholderImage {
				continue
			}
			data, err := DownloadImage(ctx, client, m.PosterURL)
			if err != nil {
				continue
			}
			name := fmt.Sprintf("%d.jpg", m.ID)
			if err := os.WriteFile(filepath.Join(posterDir, name), data, 0644); err != nil {
				continue
			}
			posters[m.ID] = "posters/" + name
			result.Files = append(result.Files, filepath.Join(posterDir, name))
			result.Posters++
		}
	}

	md, err := ExportToMarkdown(export, posters)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(mdFile, md, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}
	result.Files = append(result.Files, mdFile)

	return result, nil
}
