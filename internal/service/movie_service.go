package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/hjoseph777/MoviesLand/internal/cache"
	dom "github.com/hjoseph777/MoviesLand/internal/domain"
	"github.com/hjoseph777/MoviesLand/internal/forms"
	"github.com/hjoseph777/MoviesLand/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

// ErrNotFound is returned when the referenced movie does not exist.
var ErrNotFound = errors.New("movie not found")

// MovieService handles movie CRUD. The owner is always taken from the
// session, never from the form; ownership checks live in the handler's
// gate so the fetched record can be carried into the operation.
type MovieService struct {
	repo  repo.MovieRepo
	cache *cache.MovieCache
	sf    singleflight.Group
}

// NewMovieService creates a MovieService. If c is nil, caching is disabled.
func NewMovieService(r repo.MovieRepo, c *cache.MovieCache) *MovieService {
	return &MovieService{repo: r, cache: c}
}

// Create validates the form and persists a new movie owned by ownerID.
func (s *MovieService) Create(ctx context.Context, ownerID int64, f forms.MovieForm) (dom.Movie, forms.FieldErrors, error) {
	d, fe := f.Validate()
	if len(fe) > 0 {
		return dom.Movie{}, fe, nil
	}

	m, err := s.repo.Create(ctx, dom.Movie{
		Name:        d.Name,
		Description: d.Description,
		Year:        d.Year,
		Genres:      d.Genres,
		Rating:      d.Rating,
		Director:    d.Director,
		OwnerID:     ownerID,
	})
	if err != nil {
		return dom.Movie{}, nil, err
	}
	return m, nil, nil
}

// Get fetches a movie by id, serving repeat reads from cache. Concurrent
// misses for the same id collapse into a single database fetch.
func (s *MovieService) Get(ctx context.Context, id int64) (dom.Movie, error) {
	if s.cache == nil {
		return s.getFromRepo(ctx, id)
	}
	v, err, _ := s.sf.Do("movie:"+strconv.FormatInt(id, 10), func() (interface{}, error) {
		if m, err := s.cache.Get(ctx, id); err == nil && m != nil {
			return *m, nil
		}
		m, err := s.getFromRepo(ctx, id)
		if err != nil {
			return dom.Movie{}, err
		}
		_ = s.cache.Set(ctx, m)
		return m, nil
	})
	if err != nil {
		return dom.Movie{}, err
	}
	return v.(dom.Movie), nil
}

// Update validates the form and overwrites the mutable fields of the movie.
// The owner column is never touched.
func (s *MovieService) Update(ctx context.Context, id int64, f forms.MovieForm) (dom.Movie, forms.FieldErrors, error) {
	d, fe := f.Validate()
	if len(fe) > 0 {
		return dom.Movie{}, fe, nil
	}

	m, err := s.repo.Update(ctx, dom.Movie{
		ID:          id,
		Name:        d.Name,
		Description: d.Description,
		Year:        d.Year,
		Genres:      d.Genres,
		Rating:      d.Rating,
		Director:    d.Director,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Movie{}, nil, ErrNotFound
		}
		return dom.Movie{}, nil, err
	}
	s.invalidate(ctx, id)
	return m, nil, nil
}

// Delete removes the movie by id. Deleting an already-deleted id returns
// ErrNotFound.
func (s *MovieService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *MovieService) getFromRepo(ctx context.Context, id int64) (dom.Movie, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Movie{}, ErrNotFound
		}
		return dom.Movie{}, err
	}
	return m, nil
}

func (s *MovieService) invalidate(ctx context.Context, id int64) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, id)
	}
}
