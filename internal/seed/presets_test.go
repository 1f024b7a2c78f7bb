package seed

import (
	"os"
	"path/filepath"
	"testing"

	"mingle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const presetYAML = `
name: demo
users:
  - username: alice
    first_name: Alice
    last_name: Anders
  - username: bob
    first_name: Bob
    last_name: Burke
    password: secret-pw
friendships:
  - requester: alice
    addressee: bob
    status: accepted
posts:
  - author: alice
    content: "hello from the preset"
    comments:
      - author: bob
        content: "hi alice"
`

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Friendship{},
	))
	return db
}

func writePreset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "preset.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestPreset_LoadAndApply(t *testing.T) {
	db := setupSeedDB(t)

	preset, err := LoadPreset(writePreset(t, presetYAML))
	require.NoError(t, err)
	assert.Equal(t, "demo", preset.Name)

	require.NoError(t, preset.Apply(db))

	var users []models.User
	require.NoError(t, db.Order("id asc").Find(&users).Error)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)

	var friendship models.Friendship
	require.NoError(t, db.First(&friendship).Error)
	assert.Equal(t, users[0].ID, friendship.RequesterID)
	assert.Equal(t, models.FriendshipStatusAccepted, friendship.Status)

	var post models.Post
	require.NoError(t, db.First(&post).Error)
	assert.Equal(t, "hello from the preset", post.Content)

	var comment models.Comment
	require.NoError(t, db.First(&comment).Error)
	assert.Equal(t, "hi alice", comment.Content)
	assert.Equal(t, post.ID, comment.PostID)
}

func TestPreset_UnknownUserReference(t *testing.T) {
	db := setupSeedDB(t)

	preset, err := LoadPreset(writePreset(t, `
name: broken
users:
  - username: alice
    first_name: Alice
    last_name: Anders
posts:
  - author: ghost
    content: "who wrote this"
`))
	require.NoError(t, err)

	err = preset.Apply(db)
	assert.ErrorContains(t, err, `unknown user "ghost"`)
}

func TestPreset_RejectsEmptyUserList(t *testing.T) {
	_, err := LoadPreset(writePreset(t, "name: empty\nusers: []\n"))
	assert.Error(t, err)
}

func TestSeed_PopulatesGraph(t *testing.T) {
	db := setupSeedDB(t)

	require.NoError(t, Seed(db, Options{NumUsers: 8, NumPosts: 20, ShouldClean: true}))

	var userCount, postCount int64
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.Post{}).Count(&postCount)
	assert.EqualValues(t, 8, userCount)
	assert.EqualValues(t, 20, postCount)
}
