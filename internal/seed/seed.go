package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"photoshare-backend/internal/db"
	"photoshare-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

type Fixtures struct {
	Users  []UserFixture  `json:"users"`
	Photos []PhotoFixture `json:"photos"`
}

type UserFixture struct {
	LoginName   string `json:"login_name"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Location    string `json:"location"`
	Occupation  string `json:"occupation"`
	Description string `json:"description"`
}

// PhotoFixture refers to users by login name.
type PhotoFixture struct {
	Owner    string           `json:"owner"`
	FileName string           `json:"file_name"`
	DateTime time.Time        `json:"date_time"`
	Comments []CommentFixture `json:"comments"`
}

type CommentFixture struct {
	Author   string    `json:"author"`
	Comment  string    `json:"comment"`
	DateTime time.Time `json:"date_time"`
}

func Parse(raw []byte) (*Fixtures, error) {
	var f Fixtures
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return &f, nil
}

// Build hashes passwords and resolves login names into user and photo
// documents. Users in existing (login name -> id) are kept and their photos
// skipped, so seeding twice adds nothing.
func Build(f *Fixtures, existing map[string]string) ([]models.User, []models.Photo, map[string]string, error) {
	ids := make(map[string]string, len(f.Users))
	for k, v := range existing {
		ids[k] = v
	}

	var users []models.User
	fresh := make(map[string]bool)
	for _, uf := range f.Users {
		if uf.LoginName == "" || uf.Password == "" || uf.FirstName == "" || uf.LastName == "" {
			return nil, nil, nil, fmt.Errorf("user %q: login_name, password, first_name and last_name are required", uf.LoginName)
		}
		if _, ok := ids[uf.LoginName]; ok {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(uf.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, nil, nil, err
		}
		u := models.User{
			ID:          uuid.New().String(),
			LoginName:   uf.LoginName,
			Password:    string(hash),
			FirstName:   uf.FirstName,
			LastName:    uf.LastName,
			Location:    uf.Location,
			Occupation:  uf.Occupation,
			Description: uf.Description,
		}
		ids[u.LoginName] = u.ID
		fresh[u.LoginName] = true
		users = append(users, u)
	}

	var photos []models.Photo
	for _, pf := range f.Photos {
		ownerID, ok := ids[pf.Owner]
		if !ok {
			return nil, nil, nil, fmt.Errorf("photo %s: unknown owner %q", pf.FileName, pf.Owner)
		}
		if !fresh[pf.Owner] {
			continue
		}
		p := models.Photo{
			ID:       uuid.New().String(),
			UserID:   ownerID,
			FileName: pf.FileName,
			DateTime: pf.DateTime,
			Comments: make([]models.StoredComment, 0, len(pf.Comments)),
		}
		for _, cf := range pf.Comments {
			authorID, ok := ids[cf.Author]
			if !ok {
				return nil, nil, nil, fmt.Errorf("photo %s: unknown comment author %q", pf.FileName, cf.Author)
			}
			p.Comments = append(p.Comments, models.StoredComment{
				ID:       uuid.New().String(),
				Comment:  cf.Comment,
				DateTime: cf.DateTime,
				UserID:   authorID,
			})
		}
		photos = append(photos, p)
	}
	return users, photos, ids, nil
}

// Run loads f into the database in one transaction and returns every
// fixture user's id by login name.
func Run(ctx context.Context, pool *pgxpool.Pool, f *Fixtures) (map[string]string, error) {
	userRepo := db.NewUserRepo(pool)
	photoRepo := db.NewPhotoRepo(pool)

	existing := make(map[string]string)
	for _, uf := range f.Users {
		u, err := userRepo.FindByLoginName(ctx, uf.LoginName)
		if errors.Is(err, db.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		existing[u.LoginName] = u.ID
	}

	users, photos, ids, err := Build(f, existing)
	if err != nil {
		return nil, err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	for i := range users {
		if err := userRepo.CreateTx(ctx, tx, &users[i]); err != nil {
			return nil, fmt.Errorf("create user %s: %w", users[i].LoginName, err)
		}
	}
	for i := range photos {
		if err := photoRepo.CreateTx(ctx, tx, &photos[i]); err != nil {
			return nil, fmt.Errorf("create photo %s: %w", photos[i].FileName, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	slog.Info("seed complete", "users_created", len(users), "photos_created", len(photos), "users_existing", len(existing))
	return ids, nil
}
