package formatter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/cinex/internal/models"
	"github.com/desertthunder/cinex/internal/shared"
	th "github.com/desertthunder/cinex/internal/testing"
)

func sampleExport() *WishlistExport {
	movies := []models.Movie{
		models.NewMovie(models.Movie{
			ID: 41, Title: "Alien", Director: "Ridley Scott", Genre: "Sci-Fi",
			ReleaseYear: 1979, Duration: 117, Rating: 8.5, Premium: true,
			PosterURL: "https://img.example/alien.jpg",
		}),
		models.NewMovie(models.Movie{ID: 43, Title: "Brazil", Rating: 7.9}),
	}
	return NewWishlistExport("Ada", movies, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
}

func imageClient(status int, body io.ReadCloser, err error) *http.Client {
	var resp *http.Response
	if err == nil {
		resp = &http.Response{StatusCode: status, Body: body, Header: http.Header{}}
	}
	return &http.Client{Transport: th.NewMockRoundTripper(resp, err)}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(sampleExport())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "ID,Title,Year,Director,Genre,Duration,Rating,Premium") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "41,Alien,1979,Ridley Scott,Sci-Fi,117,8.5,true") {
			t.Errorf("CSV missing first movie, got: %s", output)
		}
		if !strings.Contains(output, "43,Brazil,N/A,Unknown,,0,7.9,false") {
			t.Errorf("CSV missing defaults for second movie, got: %s", output)
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		t.Run("without posters", func(t *testing.T) {
			data, err := ExportToMarkdown(sampleExport(), nil)
			if err != nil {
				t.Fatalf("ExportToMarkdown failed: %v", err)
			}

			output := string(data)
			for _, want := range []string{
				"# Ada's WishList",
				"**Movies**: 2",
				"**Exported**: 2024-03-01",
				"1. **Alien** (1979) ♛, dir. Ridley Scott, 8.5/10",
				"2. **Brazil** (N/A), dir. Unknown, 7.9/10",
			} {
				if !strings.Contains(output, want) {
					t.Errorf("Markdown missing %q, got:\n%s", want, output)
				}
			}
			if strings.Contains(output, "![") {
				t.Error("Markdown should not embed posters")
			}
		})

		t.Run("with posters", func(t *testing.T) {
			data, err := ExportToMarkdown(sampleExport(), map[int]string{41: "posters/41.jpg"})
			if err != nil {
				t.Fatalf("ExportToMarkdown failed: %v", err)
			}
			if !strings.Contains(string(data), "![Alien](posters/41.jpg)") {
				t.Errorf("Markdown missing poster, got:\n%s", data)
			}
		})

		t.Run("empty wishlist", func(t *testing.T) {
			data, _ := ExportToMarkdown(NewWishlistExport("", nil, time.Now()), nil)
			if !strings.Contains(string(data), "# WishList") || !strings.Contains(string(data), "empty") {
				t.Errorf("unexpected empty export:\n%s", data)
			}
		})
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(sampleExport())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Movies: 2") {
			t.Errorf("Text missing count, got: %s", output)
		}
		if !strings.Contains(output, "1. Alien (1979) - Ridley Scott") {
			t.Errorf("Text missing first movie, got: %s", output)
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(sampleExport())
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}

		var decoded WishlistExport
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded.Owner != "Ada" || len(decoded.Movies) != 2 || decoded.Movies[0].ID != 41 {
			t.Errorf("unexpected decoded export: %+v", decoded)
		}
	})
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{"csv": FormatCSV, "MD": FormatMarkdown, "markdown": FormatMarkdown, "txt": FormatText, "json": FormatJSON}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}

	if _, err := ParseFormat("xml"); !errors.Is(err, shared.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}

	if FormatMarkdown.Extension() != ".md" || FormatCSV.Extension() != ".csv" || FormatText.Extension() != ".txt" {
		t.Error("unexpected extensions")
	}
}

func TestDownloadImage(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyURL", func(t *testing.T) {
		if _, err := DownloadImage(ctx, nil, ""); err == nil {
			t.Error("expected error for empty URL")
		}
	})

	t.Run("Success", func(t *testing.T) {
		client := imageClient(http.StatusOK, io.NopCloser(strings.NewReader("jpeg")), nil)
		data, err := DownloadImage(ctx, client, "https://img.example/a.jpg")
		if err != nil || string(data) != "jpeg" {
			t.Errorf("unexpected result %q, %v", data, err)
		}
	})

	t.Run("BadStatus", func(t *testing.T) {
		client := imageClient(http.StatusNotFound, io.NopCloser(strings.NewReader("")), nil)
		if _, err := DownloadImage(ctx, client, "https://img.example/a.jpg"); err == nil {
			t.Error("expected error for 404")
		}
	})

	t.Run("ReadFailure", func(t *testing.T) {
		client := imageClient(http.StatusOK, &th.FCloser{}, nil)
		if _, err := DownloadImage(ctx, client, "https://img.example/a.jpg"); err == nil {
			t.Error("expected read error")
		}
	})
}

func TestWriteExports(t *testing.T) {
	t.Run("WriteExport", func(t *testing.T) {
		for _, f := range []Format{FormatCSV, FormatMarkdown, FormatText, FormatJSON} {
			path := filepath.Join(t.TempDir(), "out"+f.Extension())
			got, err := WriteExport(sampleExport(), f, path)
			if err != nil {
				t.Fatalf("WriteExport(%s) failed: %v", f, err)
			}
			th.AssertFileExists(t, got)
			if !strings.Contains(th.MustReadFile(t, got), "Alien") {
				t.Errorf("%s export missing content", f)
			}
		}
	})

	t.Run("WriteMarkdownExport", func(t *testing.T) {
		t.Run("WithPosters", func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "wishlist")
			client := imageClient(http.StatusOK, io.NopCloser(strings.NewReader("jpeg")), nil)

			result, err := WriteMarkdownExport(context.Background(), sampleExport(), dir, true, client)
			if err != nil {
				t.Fatalf("WriteMarkdownExport failed: %v", err)
			}
			if result.Posters != 1 {
				t.Errorf("expected 1 poster (placeholder skipped), got %d", result.Posters)
			}
			th.AssertFileExists(t, filepath.Join(dir, "posters", "41.jpg"))
			readme := th.MustReadFile(t, filepath.Join(dir, "README.md"))
			if !strings.Contains(readme, "![Alien](posters/41.jpg)") {
				t.Errorf("README missing poster link:\n%s", readme)
			}
		})

		t.Run("PosterFailuresAreSkipped", func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "wishlist")
			client := imageClient(0, nil, errors.New("offline"))

			result, err := WriteMarkdownExport(context.Background(), sampleExport(), dir, true, client)
			if err != nil {
				t.Fatalf("WriteMarkdownExport failed: %v", err)
			}
			if result.Posters != 0 || len(result.Files) != 1 {
				t.Errorf("expected only README, got %+v", result)
			}
		})
	})
}
