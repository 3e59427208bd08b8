package db

import (
	"context"
	"errors"

	"photoshare-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// FindProfile returns the public profile fields of a user.
func (r *UserRepo) FindProfile(ctx context.Context, id string) (*models.UserProfile, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	var u models.UserProfile
	query := `SELECT id, first_name, last_name, location, description, occupation FROM users WHERE id = $1`
	err := r.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Location, &u.Description, &u.Occupation)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindSummary projects a user to {id, first_name, last_name}.
func (r *UserRepo) FindSummary(ctx context.Context, id string) (*models.AuthorSummary, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	var s models.AuthorSummary
	query := `SELECT id, first_name, last_name FROM users WHERE id = $1`
	err := r.pool.QueryRow(ctx, query, id).Scan(&s.ID, &s.FirstName, &s.LastName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *UserRepo) FindByLoginName(ctx context.Context, loginName string) (*models.User, error) {
	var u models.User
	query := `SELECT id, login_name, password, first_name, last_name, location, occupation, description
		FROM users WHERE login_name = $1`
	err := r.pool.QueryRow(ctx, query, loginName).Scan(&u.ID, &u.LoginName, &u.Password,
		&u.FirstName, &u.LastName, &u.Location, &u.Occupation, &u.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts u, assigning a new UUID when u.ID is empty. u.Password must
// already be hashed.
func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	return createUser(ctx, r.pool, u)
}

// CreateTx inserts u inside an existing transaction.
func (r *UserRepo) CreateTx(ctx context.Context, tx pgx.Tx, u *models.User) error {
	return createUser(ctx, tx, u)
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func createUser(ctx context.Context, e execer, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	query := `INSERT INTO users (id, login_name, password, first_name, last_name, location, occupation, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := e.Exec(ctx, query, u.ID, u.LoginName, u.Password, u.FirstName, u.LastName,
		u.Location, u.Occupation, u.Description)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrLoginNameTaken
	}
	return err
}
