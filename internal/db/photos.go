package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"photoshare-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PhotoRepo struct {
	pool *pgxpool.Pool
}

func NewPhotoRepo(pool *pgxpool.Pool) *PhotoRepo {
	return &PhotoRepo{pool: pool}
}

// FindByOwner returns every photo owned by userID in the store's natural order.
// An id that is not a UUID cannot own photos and yields an empty list.
func (r *PhotoRepo) FindByOwner(ctx context.Context, userID string) ([]models.Photo, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return []models.Photo{}, nil
	}

	query := `SELECT id, user_id, file_name, date_time, comments FROM photos WHERE user_id = $1`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	photos := []models.Photo{}
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return photos, nil
}

func (r *PhotoRepo) FindByID(ctx context.Context, photoID string) (*models.Photo, error) {
	if _, err := uuid.Parse(photoID); err != nil {
		return nil, ErrNotFound
	}

	query := `SELECT id, user_id, file_name, date_time, comments FROM photos WHERE id = $1`
	p, err := scanPhoto(r.pool.QueryRow(ctx, query, photoID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a photo document. A zero ID is filled with a new UUID.
func (r *PhotoRepo) Create(ctx context.Context, p *models.Photo) error {
	return createPhoto(ctx, r.pool, p)
}

// CreateTx inserts a photo document inside an existing transaction.
func (r *PhotoRepo) CreateTx(ctx context.Context, tx pgx.Tx, p *models.Photo) error {
	return createPhoto(ctx, tx, p)
}

func createPhoto(ctx context.Context, e execer, p *models.Photo) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Comments == nil {
		p.Comments = []models.StoredComment{}
	}
	comments, err := json.Marshal(p.Comments)
	if err != nil {
		return fmt.Errorf("encode comments: %w", err)
	}

	query := `INSERT INTO photos (id, user_id, file_name, date_time, comments) VALUES ($1, $2, $3, $4, $5)`
	_, err = e.Exec(ctx, query, p.ID, p.UserID, p.FileName, p.DateTime, comments)
	return err
}

// AppendComment atomically pushes c onto the end of the photo's comments array.
func (r *PhotoRepo) AppendComment(ctx context.Context, photoID string, c models.StoredComment) error {
	if _, err := uuid.Parse(photoID); err != nil {
		return ErrNotFound
	}
	payload, err := json.Marshal([]models.StoredComment{c})
	if err != nil {
		return fmt.Errorf("encode comment: %w", err)
	}

	tag, err := r.pool.Exec(ctx, `UPDATE photos SET comments = comments || $2::jsonb WHERE id = $1`, photoID, payload)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPhoto(row pgx.Row) (models.Photo, error) {
	var (
		p   models.Photo
		raw []byte
	)
	if err := row.Scan(&p.ID, &p.UserID, &p.FileName, &p.DateTime, &raw); err != nil {
		return p, err
	}
	p.Comments = []models.StoredComment{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &p.Comments); err != nil {
			return p, fmt.Errorf("decode comments of photo %s: %w", p.ID, err)
		}
	}
	return p, nil
}
