package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"photoshare-backend/internal/db"
	"photoshare-backend/internal/models"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

type CommentStore interface {
	FindByID(ctx context.Context, photoID string) (*models.Photo, error)
	AppendComment(ctx context.Context, photoID string, c models.StoredComment) error
}

// CommentNotifier receives every comment after it is stored.
type CommentNotifier interface {
	CommentAdded(ownerID, photoID string, c models.ResolvedComment)
}

type CommentService struct {
	photos   CommentStore
	authors  AuthorFinder
	notifier CommentNotifier
	log      *slog.Logger
	now      func() time.Time
}

func NewCommentService(photos CommentStore, authors AuthorFinder, notifier CommentNotifier, log *slog.Logger) *CommentService {
	if log == nil {
		log = slog.Default()
	}
	return &CommentService{photos: photos, authors: authors, notifier: notifier, log: log, now: time.Now}
}

// AddComment appends text to photoID's comments with the principal as author.
func (s *CommentService) AddComment(ctx context.Context, p *Principal, photoID, text string) (*models.ResolvedComment, error) {
	if !p.Authenticated() {
		return nil, ErrUnauthorized
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyComment
	}

	photo, err := s.photos.FindByID(ctx, photoID)
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &AggregationError{Kind: ErrStorageUnavailable, Err: err}
	}

	stored := models.StoredComment{
		ID:       uuid.New().String(),
		Comment:  text,
		DateTime: s.now().UTC(),
		UserID:   p.UserID,
	}
	if err := s.photos.AppendComment(ctx, photo.ID, stored); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, &AggregationError{Kind: ErrStorageUnavailable, Err: err}
	}
	s.log.Info("comment added", "photo_id", photo.ID, "comment_id", stored.ID, "user_id", p.UserID)

	resolved := &models.ResolvedComment{
		ID:       stored.ID,
		Comment:  stored.Comment,
		DateTime: stored.DateTime,
		Author:   models.AuthorSummary{ID: p.UserID},
	}
	// The comment is already persisted; a failed summary lookup only thins the event.
	if author, err := s.authors.FindSummary(ctx, p.UserID); err == nil && author != nil {
		resolved.Author = *author
	} else if err != nil {
		s.log.Warn("author summary lookup failed", "user_id", p.UserID, "error", err)
	}

	if s.notifier != nil {
		s.notifier.CommentAdded(photo.UserID, photo.ID, *resolved)
	}
	return resolved, nil
}
