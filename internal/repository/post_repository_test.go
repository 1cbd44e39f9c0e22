package repository

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"blogql/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Post{}))
	return db
}

func seedPost(t *testing.T, db *gorm.DB) *model.Post {
	t.Helper()
	user := &model.User{Email: "writer@example.com", Name: "Writer", PasswordHash: "x", Status: model.DefaultUserStatus}
	require.NoError(t, db.Create(user).Error)

	post := &model.Post{Title: "A good title", Content: "Some real content", ImageURL: "images/a.png", UserID: user.ID}
	require.NoError(t, NewPostRepository(db).Create(post))
	return post
}

func TestPostRepositoryUpdateRefreshesUpdatedAt(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	post := seedPost(t, db)

	// Age the row so a stale timestamp is unmistakable.
	past := time.Now().Add(-time.Hour)
	require.NoError(t, db.Model(&model.Post{ID: post.ID}).UpdateColumn("updated_at", past).Error)

	loaded, err := repo.GetByID(post.ID, false)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	loaded.Title = "A better title"
	require.NoError(t, repo.Update(loaded))

	assert.True(t, loaded.UpdatedAt.After(past.Add(time.Minute)),
		"returned post must carry the write-time updated_at, not the pre-update one")

	stored, err := repo.GetByID(post.ID, false)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "A better title", stored.Title)
	assert.WithinDuration(t, stored.UpdatedAt, loaded.UpdatedAt, time.Second,
		"returned and persisted timestamps agree")
}

func TestPostRepositoryUpdateKeepsCreatorLink(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	post := seedPost(t, db)
	owner := post.UserID

	post.Title = "Renamed title"
	post.Content = "Rewritten content"
	require.NoError(t, repo.Update(post))

	stored, err := repo.GetByID(post.ID, false)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, owner, stored.UserID)
	assert.Equal(t, "Rewritten content", stored.Content)
}

func TestPostRepositoryGetByIDMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)

	post, err := repo.GetByID(42, false)
	require.NoError(t, err)
	assert.Nil(t, post)
}
