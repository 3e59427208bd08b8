package services

import (
	"context"
	"fmt"
	"time"

	"photoshare-backend/internal/models"

	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

type PhotoFinder interface {
	FindByOwner(ctx context.Context, userID string) ([]models.Photo, error)
}

type AuthorFinder interface {
	FindSummary(ctx context.Context, userID string) (*models.AuthorSummary, error)
}

// AggregationLimits bounds one ListPhotosWithAuthors call. Non-positive
// values disable the corresponding limit.
type AggregationLimits struct {
	// LookupTimeout bounds each author lookup. The clock starts once the
	// lookup holds one of the LookupConcurrency slots.
	LookupTimeout time.Duration
	// PhotoFanout caps how many photos are resolved at once.
	PhotoFanout int
	// LookupConcurrency caps author lookups in flight across all photos of
	// the call. Keep it below the connection pool size.
	LookupConcurrency int
}

type PhotoService struct {
	photos  PhotoFinder
	authors AuthorFinder
	limits  AggregationLimits
	log     *slog.Logger
}

func NewPhotoService(photos PhotoFinder, authors AuthorFinder, limits AggregationLimits, log *slog.Logger) *PhotoService {
	if log == nil {
		log = slog.Default()
	}
	return &PhotoService{
		photos:  photos,
		authors: authors,
		limits:  limits,
		log:     log,
	}
}

// ListPhotosWithAuthors returns the photos owned by userID with every comment's
// author inlined. It is all-or-nothing: any failed author lookup aborts the
// whole call and no photos are returned.
func (s *PhotoService) ListPhotosWithAuthors(ctx context.Context, p *Principal, userID string) ([]models.PhotoWithComments, error) {
	if !p.Authenticated() {
		return nil, ErrUnauthorized
	}

	photos, err := s.photos.FindByOwner(ctx, userID)
	if err != nil {
		s.log.Error("photo query failed", "user_id", userID, "error", err)
		return nil, &AggregationError{Kind: ErrStorageUnavailable, Err: err}
	}

	var slots *semaphore.Weighted
	if s.limits.LookupConcurrency > 0 {
		slots = semaphore.NewWeighted(int64(s.limits.LookupConcurrency))
	}

	out := make([]models.PhotoWithComments, len(photos))
	g, gctx := errgroup.WithContext(ctx)
	if s.limits.PhotoFanout > 0 {
		g.SetLimit(s.limits.PhotoFanout)
	}
	for i := range photos {
		i := i
		g.Go(func() error {
			resolved, err := s.resolvePhoto(gctx, slots, photos[i])
			if err != nil {
				return err
			}
			out[i] = resolved
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Warn("photo aggregation aborted", "user_id", userID, "requested_by", p.UserID, "error", err)
		return nil, err
	}

	s.log.Debug("photos aggregated", "user_id", userID, "count", len(out))
	return out, nil
}

// resolvePhoto resolves each comment of photo concurrently. Every task writes
// only its own slot, so the output keeps the stored order.
func (s *PhotoService) resolvePhoto(ctx context.Context, slots *semaphore.Weighted, photo models.Photo) (models.PhotoWithComments, error) {
	comments := make([]models.ResolvedComment, len(photo.Comments))

	g, gctx := errgroup.WithContext(ctx)
	for j, c := range photo.Comments {
		j, c := j, c
		g.Go(func() error {
			author, err := s.resolveAuthor(gctx, slots, c)
			if err != nil {
				return err
			}
			comments[j] = models.ResolvedComment{
				ID:       c.ID,
				Comment:  c.Comment,
				DateTime: c.DateTime,
				Author:   *author,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.PhotoWithComments{}, err
	}

	return models.PhotoWithComments{
		ID:       photo.ID,
		UserID:   photo.UserID,
		FileName: photo.FileName,
		DateTime: photo.DateTime,
		Comments: comments,
	}, nil
}

func (s *PhotoService) resolveAuthor(ctx context.Context, slots *semaphore.Weighted, c models.StoredComment) (*models.AuthorSummary, error) {
	if slots != nil {
		if err := slots.Acquire(ctx, 1); err != nil {
			return nil, &AggregationError{Kind: ErrAuthorResolutionFailed, CommentID: c.ID, Err: err}
		}
		defer slots.Release(1)
	}

	if s.limits.LookupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.limits.LookupTimeout)
		defer cancel()
	}

	author, err := s.authors.FindSummary(ctx, c.UserID)
	if err == nil && author == nil {
		err = ErrAuthorMissing
	}
	if err != nil {
		return nil, &AggregationError{
			Kind:      ErrAuthorResolutionFailed,
			CommentID: c.ID,
			Err:       fmt.Errorf("author %s: %w", c.UserID, err),
		}
	}
	return author, nil
}
