package service

import (
	"context"
	"errors"
	"strings"

	dom "github.com/hjoseph777/MoviesLand/internal/domain"
	"github.com/hjoseph777/MoviesLand/internal/forms"
	"github.com/hjoseph777/MoviesLand/internal/repo"
	"github.com/hjoseph777/MoviesLand/internal/utils"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the original deployment's work factor.
const bcryptCost = 10

// UserService handles registration and login.
type UserService struct {
	repo repo.UserRepo
}

// NewUserService returns a new UserService.
func NewUserService(repo repo.UserRepo) *UserService {
	return &UserService{repo: repo}
}

// Register validates the form, checks email and username availability, and
// creates the account with a hashed password. A non-empty FieldErrors means
// validation failed; err is reserved for storage failures. Both duplicate
// checks run before failing so the form can report both conflicts at once.
func (s *UserService) Register(ctx context.Context, f forms.RegisterForm) (dom.User, forms.FieldErrors, error) {
	fe := f.Validate()
	if len(fe) > 0 {
		return dom.User{}, fe, nil
	}

	username := strings.TrimSpace(f.Username)
	email := strings.TrimSpace(f.Email)

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		fe.Set("email", "Email is already registered")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return dom.User{}, nil, err
	}
	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		fe.Set("username", "Username is taken")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return dom.User{}, nil, err
	}
	if len(fe) > 0 {
		return dom.User{}, fe, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(f.Password), bcryptCost)
	if err != nil {
		return dom.User{}, nil, err
	}

	u, err := s.repo.Create(ctx, username, email, string(hash))
	if err != nil {
		// Two registrations can race past the existence checks; the unique
		// constraints settle it. Map the loser back to a field error.
		if utils.IsPGUniqueViolation(err) {
			switch utils.PGConstraintName(err) {
			case "users_username_key":
				fe.Set("username", "Username is taken")
			default:
				fe.Set("email", "Email is already registered")
			}
			return dom.User{}, fe, nil
		}
		return dom.User{}, nil, err
	}
	return u, nil, nil
}

// Authenticate checks the login form against the stored account. A missing
// account reports on the email field, a wrong password on the password field.
func (s *UserService) Authenticate(ctx context.Context, f forms.LoginForm) (dom.User, forms.FieldErrors, error) {
	fe := f.Validate()
	if len(fe) > 0 {
		return dom.User{}, fe, nil
	}

	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(f.Email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			fe.Set("email", "No account with that email")
			return dom.User{}, fe, nil
		}
		return dom.User{}, nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(f.Password)); err != nil {
		fe.Set("password", "Incorrect password")
		return dom.User{}, fe, nil
	}
	return u, nil, nil
}
