package repository

import (
	"context"
	"testing"

	"mingle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_ListByPostOldestFirst(t *testing.T) {
	db := setupRepoTestDB(t)
	comments := NewCommentRepository(db)
	posts := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	reader := createTestUser(t, db, "reader")

	post := &models.Post{Content: "original", UserID: author.ID}
	require.NoError(t, posts.Create(ctx, post))

	for _, content := range []string{"first", "second", "third"} {
		require.NoError(t, comments.Create(ctx, &models.Comment{
			Content: content, UserID: reader.ID, PostID: post.ID,
		}))
	}

	got, err := comments.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Content)
	assert.Equal(t, "third", got[2].Content)
	assert.Equal(t, "reader", got[0].User.Username)
}

func TestPostRepository_GetByIDPreloadsAuthor(t *testing.T) {
	db := setupRepoTestDB(t)
	posts := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	post := &models.Post{Content: "hello", UserID: author.ID}
	require.NoError(t, posts.Create(ctx, post))

	got, err := posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "author", got.User.Username)

	_, err = posts.GetByID(ctx, 999)
	assert.True(t, models.IsNotFound(err))
}
