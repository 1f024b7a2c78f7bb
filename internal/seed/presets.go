package seed

import (
	"fmt"
	"log"
	"os"

	"mingle/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Preset is a scripted scenario loaded from YAML: named users, a
// friend graph, and posts with comments. Unlike random seeding, presets
// are deterministic, which makes demos and manual testing repeatable.
type Preset struct {
	Name  string `yaml:"name"`
	Users []struct {
		Username  string `yaml:"username"`
		FirstName string `yaml:"first_name"`
		LastName  string `yaml:"last_name"`
		Password  string `yaml:"password"`
	} `yaml:"users"`
	Friendships []struct {
		Requester string `yaml:"requester"`
		Addressee string `yaml:"addressee"`
		Status    string `yaml:"status"`
	} `yaml:"friendships"`
	Posts []struct {
		Author   string `yaml:"author"`
		Content  string `yaml:"content"`
		Comments []struct {
			Author  string `yaml:"author"`
			Content string `yaml:"content"`
		} `yaml:"comments"`
	} `yaml:"posts"`
}

// LoadPreset parses a preset file.
func LoadPreset(path string) (*Preset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset: %w", err)
	}

	var preset Preset
	if err := yaml.Unmarshal(raw, &preset); err != nil {
		return nil, fmt.Errorf("parse preset: %w", err)
	}
	if len(preset.Users) == 0 {
		return nil, fmt.Errorf("preset %q has no users", preset.Name)
	}
	return &preset, nil
}

// Apply creates the preset's users, friendships, posts, and comments.
// Usernames within the preset must be unique; friendships and posts
// refer to users by username.
func (p *Preset) Apply(db *gorm.DB) error {
	log.Printf("Applying preset %q: %d users, %d friendships, %d posts",
		p.Name, len(p.Users), len(p.Friendships), len(p.Posts))

	byName := make(map[string]*models.User, len(p.Users))
	for _, u := range p.Users {
		password := u.Password
		if password == "" {
			password = "password123"
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		user := &models.User{
			Username:  u.Username,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Password:  string(hashed),
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("preset user %q: %w", u.Username, err)
		}
		byName[u.Username] = user
	}

	resolve := func(username string) (*models.User, error) {
		user, ok := byName[username]
		if !ok {
			return nil, fmt.Errorf("preset references unknown user %q", username)
		}
		return user, nil
	}

	for _, f := range p.Friendships {
		requester, err := resolve(f.Requester)
		if err != nil {
			return err
		}
		addressee, err := resolve(f.Addressee)
		if err != nil {
			return err
		}

		status := models.FriendshipStatus(f.Status)
		if status == "" {
			status = models.FriendshipStatusAccepted
		}
		if status != models.FriendshipStatusPending && status != models.FriendshipStatusAccepted {
			return fmt.Errorf("preset friendship %s->%s has invalid status %q", f.Requester, f.Addressee, f.Status)
		}

		friendship := &models.Friendship{
			RequesterID: requester.ID,
			AddresseeID: addressee.ID,
			Status:      status,
		}
		if err := db.Create(friendship).Error; err != nil {
			return fmt.Errorf("preset friendship %s->%s: %w", f.Requester, f.Addressee, err)
		}
	}

	for _, entry := range p.Posts {
		author, err := resolve(entry.Author)
		if err != nil {
			return err
		}

		post := &models.Post{Content: entry.Content, UserID: author.ID}
		if err := db.Create(post).Error; err != nil {
			return fmt.Errorf("preset post by %q: %w", entry.Author, err)
		}

		for _, c := range entry.Comments {
			commenter, err := resolve(c.Author)
			if err != nil {
				return err
			}
			comment := &models.Comment{Content: c.Content, UserID: commenter.ID, PostID: post.ID}
			if err := db.Create(comment).Error; err != nil {
				return fmt.Errorf("preset comment by %q: %w", c.Author, err)
			}
		}
	}

	log.Printf("Preset %q applied", p.Name)
	return nil
}
