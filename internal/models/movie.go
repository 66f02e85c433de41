package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	UnknownTitle     = "Unknown Title"
	UnknownDirector  = "Unknown"
	PlaceholderImage = "https://via.placeholder.com/300x450?text=No+Image"
)

// ErrUnexpectedShape is returned when a list payload is neither an array nor a {movies: [...]} envelope.
var ErrUnexpectedShape = errors.New("unexpected response shape")

// Movie is the canonical movie record.
//
// Optional fields are defaulted once when the record is constructed or decoded,
// so renderers never need to guess at missing values.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	PosterURL   string  `json:"poster_url"`
	BannerURL   string  `json:"banner_url,omitempty"`
	Genre       string  `json:"genre,omitempty"`
	Director    string  `json:"director"`
	ReleaseYear int     `json:"release_year,omitempty"`
	Duration    int     `json:"duration,omitempty"` // minutes
	Rating      float64 `json:"rating,omitempty"`
	Premium     bool    `json:"premium"`
}

// NewMovie returns m with defaults applied.
func NewMovie(m Movie) Movie {
	m.applyDefaults()
	return m
}

func (m *Movie) applyDefaults() {
	m.Title = strings.TrimSpace(m.Title)
	if m.Title == "" {
		m.Title = UnknownTitle
	}
	m.Director = strings.TrimSpace(m.Director)
	if m.Director == "" {
		m.Director = UnknownDirector
	}
	if m.PosterURL == "" {
		m.PosterURL = m.BannerURL
	}
	if m.PosterURL == "" {
		m.PosterURL = PlaceholderImage
	}
}

// number decodes a JSON number, a numeric string or null. Anything else decodes to zero.
type number float64

func (n *number) UnmarshalJSON(data []byte) error {
	*n = 0
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = number(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*n = number(f)
		}
	}
	return nil
}

// UnmarshalJSON decodes a movie and applies defaults.
// Numeric fields of the wrong type fall back to zero instead of failing the decode.
func (m *Movie) UnmarshalJSON(data []byte) error {
	type plain Movie
	var raw struct {
		plain
		ReleaseYear number `json:"release_year"`
		Duration    number `json:"duration"`
		Rating      number `json:"rating"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = Movie(raw.plain)
	m.ReleaseYear = int(raw.ReleaseYear)
	m.Duration = int(raw.Duration)
	m.Rating = float64(raw.Rating)
	m.applyDefaults()
	return nil
}

// YearLabel returns the release year or "N/A".
func (m Movie) YearLabel() string {
	if m.ReleaseYear <= 0 {
		return "N/A"
	}
	return strconv.Itoa(m.ReleaseYear)
}

// RatingLabel returns "x/10" or "N/A".
func (m Movie) RatingLabel() string {
	if m.Rating <= 0 {
		return "N/A"
	}
	return strconv.FormatFloat(m.Rating, 'f', -1, 64) + "/10"
}

// RuntimeLabel returns "N min", or an empty string when the duration is unknown.
func (m Movie) RuntimeLabel() string {
	if m.Duration <= 0 {
		return ""
	}
	return fmt.Sprintf("%d min", m.Duration)
}

// WishlistResponse is the list payload returned by the wishlist and movie listing endpoints.
//
// The API sends either a bare array or an object with a "movies" field; the shape is
// resolved once here and callers only see [WishlistResponse.Movies].
type WishlistResponse struct {
	movies    []Movie
	enveloped bool
}

// NewWishlistResponse wraps an already materialized list.
func NewWishlistResponse(movies []Movie) WishlistResponse {
	return WishlistResponse{movies: movies}
}

// Movies returns the decoded list; never nil.
func (w WishlistResponse) Movies() []Movie {
	if w.movies == nil {
		return []Movie{}
	}
	return w.movies
}

// Enveloped reports whether the payload used the {movies: [...]} form.
func (w WishlistResponse) Enveloped() bool { return w.enveloped }

// UnmarshalJSON accepts `[...]`, `{"movies": [...]}` and `null`.
func (w *WishlistResponse) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*w = WishlistResponse{}
		return nil
	}

	switch trimmed[0] {
	case '[':
		var list []Movie
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		*w = WishlistResponse{movies: list}
	case '{':
		var envelope struct {
			Movies []Movie `json:"movies"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return err
		}
		*w = WishlistResponse{movies: envelope.Movies, enveloped: true}
	default:
		return fmt.Errorf("%w: wishlist payload starts with %q", ErrUnexpectedShape, trimmed[0])
	}
	return nil
}

// MarshalJSON always emits the envelope form.
func (w WishlistResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Movies []Movie `json:"movies"`
	}{w.Movies()})
}
