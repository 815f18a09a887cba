package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/userhub/api/internal/models"
	appErr "github.com/userhub/api/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func newUser(fullName, email string) *models.User {
	return &models.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: "$2a$10$fakefakefakefakefakefakefakefakefakefakefakefakefake",
	}
}

func TestCreateAssignsID(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	u := newUser("Ann Lee", "ann@x.com")
	require.NoError(t, repo.Create(ctx, u))
	require.NotEmpty(t, u.ID)

	var got models.User
	require.NoError(t, repo.GetByID(ctx, u.ID, &got))
	require.Equal(t, "ann@x.com", got.Email)
}

func TestCreateDuplicateEmailConflicts(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("Ann Lee", "ann@x.com")))

	err := repo.Create(ctx, newUser("Other Ann", "ann@x.com"))
	require.Error(t, err)
	require.True(t, appErr.IsCode(err, appErr.CodeConflict))

	// the store still holds exactly one record for that email
	users, err := repo.ListProjected(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "Ann Lee", users[0].FullName)
}

func TestGetByEmailNotFound(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	var u models.User
	err := repo.GetByEmail(context.Background(), "nobody@x.com", &u)
	require.Error(t, err)
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}

func TestUpdatePersistsChanges(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	u := newUser("Ann Lee", "ann@x.com")
	require.NoError(t, repo.Create(ctx, u))

	u.FullName = "Ann B. Lee"
	img := "images/image-123.png"
	u.Image = &img
	require.NoError(t, repo.Update(ctx, u))

	var got models.User
	require.NoError(t, repo.GetByID(ctx, u.ID, &got))
	require.Equal(t, "Ann B. Lee", got.FullName)
	require.NotNil(t, got.Image)
	require.Equal(t, img, *got.Image)
}

func TestDeleteByEmail(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	u := newUser("Ann Lee", "ann@x.com")
	require.NoError(t, repo.Create(ctx, u))

	deleted, err := repo.DeleteByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, deleted.ID)

	var got models.User
	err = repo.GetByEmail(ctx, "ann@x.com", &got)
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}

func TestDeleteByEmailNotFoundLeavesStoreUntouched(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("Ann Lee", "ann@x.com")))

	_, err := repo.DeleteByEmail(ctx, "nobody@x.com")
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))

	users, err := repo.ListProjected(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestListProjectedExcludesSensitiveFields(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	u := newUser("Ann Lee", "ann@x.com")
	img := "images/image-1.png"
	u.Image = &img
	require.NoError(t, repo.Create(ctx, u))
	require.NoError(t, repo.Create(ctx, newUser("Bob Roy", "bob@x.com")))

	users, err := repo.ListProjected(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, s := range users {
		require.NotEmpty(t, s.FullName)
		require.NotEmpty(t, s.Email)
	}
	// UserSummary has no password or image field to leak; the shape of
	// the projection itself is the guarantee.
	require.Equal(t, []models.UserSummary{
		{FullName: "Ann Lee", Email: "ann@x.com"},
		{FullName: "Bob Roy", Email: "bob@x.com"},
	}, users)
}
