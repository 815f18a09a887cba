package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/userhub/api/internal/models"
	"github.com/userhub/api/internal/repository"
	appErr "github.com/userhub/api/pkg/errors"
)

// bcryptCost matches the 10 salt rounds the service has always used.
const bcryptCost = 10

// UserService carries the business logic for user records: hashing,
// existence checks and partial updates. Input validation happens at the
// handler boundary before any of these are called.
type UserService interface {
	Create(ctx context.Context, fullName, email, password string) (*models.User, error)
	Edit(ctx context.Context, email, fullName, password string) (*models.User, error)
	Delete(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.UserSummary, error)
	AttachImage(ctx context.Context, userID, imagePath string) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// Create hashes the password and inserts a new user after checking the
// email is free. The check is racy by itself; the store's unique index
// closes the race and the resulting conflict surfaces the same way.
func (s *userService) Create(ctx context.Context, fullName, email, password string) (*models.User, error) {
	var existing models.User
	err := s.userRepo.GetByEmail(ctx, email, &existing)
	if err == nil {
		return nil, appErr.New(appErr.CodeConflict, "User already exists")
	}
	if !appErr.IsCode(err, appErr.CodeNotFound) {
		return nil, err
	}

	ph, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "hash password failed")
	}

	user := &models.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(ph),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if appErr.IsCode(err, appErr.CodeConflict) {
			return nil, appErr.Wrap(err, appErr.CodeConflict, "User already exists")
		}
		return nil, err
	}
	return user, nil
}

// Edit looks the user up by email and applies the supplied fields. The
// full name is always overwritten; the password only when one was given,
// re-hashed.
func (s *userService) Edit(ctx context.Context, email, fullName, password string) (*models.User, error) {
	var user models.User
	if err := s.userRepo.GetByEmail(ctx, email, &user); err != nil {
		return nil, err
	}

	user.FullName = fullName
	if password != "" {
		ph, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
		if err != nil {
			return nil, appErr.Wrap(err, appErr.CodeInternal, "hash password failed")
		}
		user.PasswordHash = string(ph)
	}

	if err := s.userRepo.Update(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) Delete(ctx context.Context, email string) (*models.User, error) {
	return s.userRepo.DeleteByEmail(ctx, email)
}

func (s *userService) List(ctx context.Context) ([]models.UserSummary, error) {
	return s.userRepo.ListProjected(ctx)
}

// AttachImage sets the stored image path on the user. Earlier uploads
// are overwritten, not appended.
func (s *userService) AttachImage(ctx context.Context, userID, imagePath string) (*models.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, appErr.Wrap(fmt.Errorf("parse user id: %w", err), appErr.CodeInvalid, "invalid user ID")
	}

	var user models.User
	if err := s.userRepo.GetByID(ctx, id, &user); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return nil, appErr.New(appErr.CodeNotFound, "User not found")
		}
		return nil, err
	}

	user.Image = &imagePath
	if err := s.userRepo.Update(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
