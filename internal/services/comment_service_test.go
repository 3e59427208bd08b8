package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"photoshare-backend/internal/db"
	"photoshare-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCommentStore struct {
	photos    map[string]*models.Photo
	appendErr error
}

func (m *memCommentStore) FindByID(ctx context.Context, id string) (*models.Photo, error) {
	p, ok := m.photos[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return p, nil
}

func (m *memCommentStore) AppendComment(ctx context.Context, id string, c models.StoredComment) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	p, ok := m.photos[id]
	if !ok {
		return db.ErrNotFound
	}
	p.Comments = append(p.Comments, c)
	return nil
}

type recordingNotifier struct {
	owner, photo string
	comments     []models.ResolvedComment
}

func (r *recordingNotifier) CommentAdded(ownerID, photoID string, c models.ResolvedComment) {
	r.owner, r.photo = ownerID, photoID
	r.comments = append(r.comments, c)
}

func newCommentFixture() (*memCommentStore, *recordingNotifier, *CommentService) {
	store := &memCommentStore{photos: map[string]*models.Photo{
		"p1": {ID: "p1", UserID: "u3", Comments: []models.StoredComment{comment("c1", "u2")}},
	}}
	notifier := &recordingNotifier{}
	svc := NewCommentService(store, newAuthors(), notifier, nil)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return store, notifier, svc
}

func TestAddComment_AppendsAndNotifies(t *testing.T) {
	store, notifier, svc := newCommentFixture()

	got, err := svc.AddComment(context.Background(), viewer, "p1", "nice shot")
	require.NoError(t, err)
	assert.Equal(t, "nice shot", got.Comment)
	assert.Equal(t, u1, got.Author)
	assert.NotEmpty(t, got.ID)

	comments := store.photos["p1"].Comments
	require.Len(t, comments, 2)
	assert.Equal(t, "c1", comments[0].ID)
	assert.Equal(t, got.ID, comments[1].ID)
	assert.Equal(t, "u1", comments[1].UserID)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), comments[1].DateTime)

	assert.Equal(t, "u3", notifier.owner)
	assert.Equal(t, "p1", notifier.photo)
	assert.Len(t, notifier.comments, 1)
}

func TestAddComment_Rejections(t *testing.T) {
	_, notifier, svc := newCommentFixture()

	_, err := svc.AddComment(context.Background(), viewer, "p1", "   ")
	assert.ErrorIs(t, err, ErrEmptyComment)

	_, err = svc.AddComment(context.Background(), viewer, "nope", "hi")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.AddComment(context.Background(), nil, "p1", "hi")
	assert.ErrorIs(t, err, ErrUnauthorized)

	assert.Empty(t, notifier.comments)
}

func TestAddComment_StorageFailure(t *testing.T) {
	store, notifier, svc := newCommentFixture()
	store.appendErr = errors.New("write failed")

	_, err := svc.AddComment(context.Background(), viewer, "p1", "hi")
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.Empty(t, notifier.comments)
}
