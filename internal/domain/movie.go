package domain

import "time"

// Movie is the domain entity for a movie record.
// OwnerID references the user that created the record and never changes
// after creation; only the owner may edit or delete the movie.
type Movie struct {
	ID          int64
	Name        string
	Description string
	Year        int
	Genres      []string
	Rating      *float64
	Director    string
	OwnerID     int64

	CreatedAt time.Time
	UpdatedAt time.Time
}
