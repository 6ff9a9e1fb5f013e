// Package forms holds the HTML form payloads and their validation.
// Validation is two-phase: collect every field error, then fail once with
// the full FieldErrors map so the view can re-render all messages together.
package forms

import (
	"strconv"
	"strings"
)

// FieldErrors maps a form field name to a human-readable validation message.
type FieldErrors map[string]string

// Set records a message for the field, overwriting any previous one.
func (fe FieldErrors) Set(field, msg string) { fe[field] = msg }

// Has reports whether the field carries an error.
func (fe FieldErrors) Has(field string) bool { _, ok := fe[field]; return ok }

// RegisterForm is the POST /auth/register payload.
type RegisterForm struct {
	Username string `form:"username"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

// Validate checks presence of all fields and the minimum password length.
func (f RegisterForm) Validate() FieldErrors {
	fe := FieldErrors{}
	if strings.TrimSpace(f.Username) == "" {
		fe.Set("username", "Username is required to continue")
	}
	if strings.TrimSpace(f.Email) == "" {
		fe.Set("email", "Email is required to continue")
	}
	if f.Password == "" {
		fe.Set("password", "Password is required to continue")
	} else if len(f.Password) < 6 {
		fe.Set("password", "Password must be at least 6 characters")
	}
	return fe
}

// LoginForm is the POST /auth/login payload.
type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// Validate checks presence of both fields.
func (f LoginForm) Validate() FieldErrors {
	fe := FieldErrors{}
	if strings.TrimSpace(f.Email) == "" {
		fe.Set("email", "Email is required to continue")
	}
	if f.Password == "" {
		fe.Set("password", "Password is required to continue")
	}
	return fe
}

// Movie year bounds: first film ever made through next year's releases.
const (
	MinYear = 1888
	MaxYear = 2026
)

// MovieForm is the payload of the new-movie and edit-movie forms.
// Year and rating arrive as strings and are parsed during validation.
type MovieForm struct {
	Name        string `form:"name"`
	Description string `form:"description"`
	Year        string `form:"year"`
	Genres      string `form:"genres"`
	Rating      string `form:"rating"`
	Director    string `form:"director"`
}

// MovieData is a validated MovieForm with typed fields.
type MovieData struct {
	Name        string
	Description string
	Year        int
	Genres      []string
	Rating      *float64
	Director    string
}

// Validate parses and checks every field, returning the typed data and the
// accumulated errors. The data is only meaningful when the map is empty.
func (f MovieForm) Validate() (MovieData, FieldErrors) {
	fe := FieldErrors{}
	d := MovieData{
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		Director:    strings.TrimSpace(f.Director),
		Genres:      SplitGenres(f.Genres),
	}

	if d.Name == "" {
		fe.Set("name", "Movie name is required")
	}
	if d.Director == "" {
		fe.Set("director", "Director name is required")
	}
	if len(d.Genres) == 0 {
		fe.Set("genres", "At least one genre is required")
	}

	switch year := strings.TrimSpace(f.Year); {
	case year == "":
		fe.Set("year", "Release year is required")
	default:
		n, err := strconv.Atoi(year)
		switch {
		case err != nil, n < MinYear:
			fe.Set("year", "Year must be valid")
		case n > MaxYear:
			fe.Set("year", "Year cannot exceed 4 digits")
		default:
			d.Year = n
		}
	}

	if rating := strings.TrimSpace(f.Rating); rating != "" {
		v, err := strconv.ParseFloat(rating, 64)
		if err != nil || v < 0 || v > 10 {
			fe.Set("rating", "Rating must be between 0 and 10")
		} else {
			d.Rating = &v
		}
	}

	return d, fe
}

// SplitGenres normalizes a comma-separated genre string into a slice of
// trimmed, non-empty entries. The same policy applies on create, edit and
// every error re-render.
func SplitGenres(s string) []string {
	var genres []string
	for _, g := range strings.Split(s, ",") {
		g = strings.TrimSpace(g)
		if g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}

// JoinGenres renders a genre slice back into the comma-separated form value.
func JoinGenres(genres []string) string {
	return strings.Join(genres, ", ")
}
