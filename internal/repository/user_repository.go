package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/userhub/api/internal/models"
	appErr "github.com/userhub/api/pkg/errors"
)

// UserRepository is the persistence surface for user records. Email
// uniqueness is enforced by the store's unique index; Create and Update
// report a violation as CodeConflict.
type UserRepository interface {
	BaseRepository[models.User]
	GetByEmail(ctx context.Context, email string, dest *models.User) error
	DeleteByEmail(ctx context.Context, email string) (*models.User, error)
	ListProjected(ctx context.Context) ([]models.UserSummary, error)
}

type userRepository struct {
	BaseRepository[models.User]
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{BaseRepository: NewBaseRepository[models.User](db), db: db}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string, dest *models.User) error {
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, "user not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get user by email failed")
	}
	return nil
}

// DeleteByEmail removes the user with the given email and returns the
// deleted record, or CodeNotFound when no such user exists. Lookup and
// delete run in one transaction.
func (r *userRepository) DeleteByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", email).First(&u).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return appErr.New(appErr.CodeNotFound, "user not found")
			}
			return appErr.Wrap(err, appErr.CodeInternal, "get user by email failed")
		}
		if err := tx.Delete(&models.User{}, "id = ?", u.ID).Error; err != nil {
			return appErr.Wrap(err, appErr.CodeInternal, "delete user failed")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ListProjected returns the fullName/email projection of every user.
func (r *userRepository) ListProjected(ctx context.Context) ([]models.UserSummary, error) {
	out := []models.UserSummary{}
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("full_name", "email").
		Order("created_at").
		Find(&out).Error
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list users failed")
	}
	return out, nil
}
