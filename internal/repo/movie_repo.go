package repo

import (
	"context"

	dom "github.com/hjoseph777/MoviesLand/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MovieRepo provides movie persistence.
type MovieRepo interface {
	Create(ctx context.Context, m dom.Movie) (dom.Movie, error)
	GetByID(ctx context.Context, id int64) (dom.Movie, error)
	Update(ctx context.Context, m dom.Movie) (dom.Movie, error)
	Delete(ctx context.Context, id int64) error
}

// PGMovieRepo implements MovieRepo with Postgres.
type PGMovieRepo struct {
	db *pgxpool.Pool
}

// NewPGMovieRepo returns a new PGMovieRepo.
func NewPGMovieRepo(db *pgxpool.Pool) *PGMovieRepo {
	return &PGMovieRepo{db: db}
}

func (r *PGMovieRepo) Create(ctx context.Context, m dom.Movie) (dom.Movie, error) {
	query := `
		INSERT INTO movies (name, description, year, genres, rating, director, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, name, description, year, genres, rating, director, owner_id, created_at, updated_at`
	var out dom.Movie
	err := r.db.QueryRow(ctx, query,
		m.Name, m.Description, m.Year, m.Genres, m.Rating, m.Director, m.OwnerID,
	).Scan(
		&out.ID, &out.Name, &out.Description, &out.Year, &out.Genres,
		&out.Rating, &out.Director, &out.OwnerID, &out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (r *PGMovieRepo) GetByID(ctx context.Context, id int64) (dom.Movie, error) {
	query := `
		SELECT id, name, description, year, genres, rating, director, owner_id, created_at, updated_at
		FROM movies WHERE id = $1`
	var m dom.Movie
	err := r.db.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.Name, &m.Description, &m.Year, &m.Genres,
		&m.Rating, &m.Director, &m.OwnerID, &m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

// Update overwrites the mutable fields of the movie. The owner column is
// deliberately left out of the SET list.
func (r *PGMovieRepo) Update(ctx context.Context, m dom.Movie) (dom.Movie, error) {
	query := `
		UPDATE movies
		SET name = $2, description = $3, year = $4, genres = $5, rating = $6, director = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, description, year, genres, rating, director, owner_id, created_at, updated_at`
	var out dom.Movie
	err := r.db.QueryRow(ctx, query,
		m.ID, m.Name, m.Description, m.Year, m.Genres, m.Rating, m.Director,
	).Scan(
		&out.ID, &out.Name, &out.Description, &out.Year, &out.Genres,
		&out.Rating, &out.Director, &out.OwnerID, &out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

// Delete removes the movie by id. Returns pgx.ErrNoRows if nothing matched,
// so a double delete surfaces as not-found instead of succeeding silently.
func (r *PGMovieRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
