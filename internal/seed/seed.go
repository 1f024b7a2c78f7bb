package seed

import (
	"fmt"
	"log"
	"math/rand"

	"mingle/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seed populates the database with generated users, a friend graph,
// posts, and comments.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := ClearAll(db); err != nil {
			return err
		}
	}

	factory := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return err
		}
		users = append(users, user)
	}

	// Friend graph: each user sends a handful of requests forward, most
	// of which get accepted so feeds have content.
	for i, user := range users {
		requests := rand.Intn(4) + 1
		for j := 0; j < requests; j++ {
			other := users[rand.Intn(len(users))]
			if other.ID == user.ID {
				continue
			}
			status := models.FriendshipStatusAccepted
			if rand.Intn(5) == 0 {
				status = models.FriendshipStatusPending
			}
			// skip pairs that already have a row either way
			var count int64
			db.Model(&models.Friendship{}).
				Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
					user.ID, other.ID, other.ID, user.ID).
				Count(&count)
			if count > 0 {
				continue
			}
			if _, err := factory.CreateFriendship(user, other, status); err != nil {
				return err
			}
		}
		if i%25 == 0 {
			log.Printf("  friend graph: %d/%d users wired", i, len(users))
		}
	}

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[rand.Intn(len(users))]
		post, err := factory.CreatePost(author)
		if err != nil {
			return err
		}
		posts = append(posts, post)
	}

	// Comments: roughly half the posts pick up a few.
	for _, post := range posts {
		if rand.Intn(2) == 0 {
			continue
		}
		comments := rand.Intn(3) + 1
		for j := 0; j < comments; j++ {
			commenter := users[rand.Intn(len(users))]
			if _, err := factory.CreateComment(commenter, post); err != nil {
				return err
			}
		}
	}

	log.Printf("Seeding complete: %d users, %d posts", len(users), len(posts))
	return nil
}

// ClearAll removes all seeded data in dependency order.
func ClearAll(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	for _, model := range []interface{}{
		&models.Comment{},
		&models.Post{},
		&models.Friendship{},
		&models.User{},
	} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clear data: %w", err)
		}
	}
	return nil
}
