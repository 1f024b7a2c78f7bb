// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"mingle/internal/models"

	"gorm.io/gorm"
)

// ErrNoPendingRequest reports that no pending friend request exists for
// the given pair, so accept/decline has nothing to act on.
var ErrNoPendingRequest = errors.New("no pending friend request")

// FriendRepository defines the interface for friend data operations
type FriendRepository interface {
	Create(ctx context.Context, friendship *models.Friendship) error
	GetBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.Friendship, error)
	GetFriends(ctx context.Context, userID uint) ([]models.User, error)
	GetPendingRequests(ctx context.Context, userID uint) ([]models.Friendship, error)
	Accept(ctx context.Context, requesterID, addresseeID uint) error
	Decline(ctx context.Context, requesterID, addresseeID uint) error
}

// friendRepository implements FriendRepository
type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a new friend repository
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) Create(ctx context.Context, friendship *models.Friendship) error {
	if err := r.db.WithContext(ctx).Create(friendship).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendRepository) GetBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.Friendship, error) {
	var friendship models.Friendship

	// Find friendship where users are either requester/addressee in any order
	if err := r.db.WithContext(ctx).
		Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
			userID1, userID2, userID2, userID1).
		First(&friendship).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // No friendship exists
		}
		return nil, models.NewInternalError(err)
	}
	return &friendship, nil
}

// GetFriends returns the user's friends ordered by when each friendship
// was formed. The order is load-bearing: the feed walks friends in
// friend-list order, so the friendships are loaded ordered and the user
// rows assembled to match rather than joined in one unordered query.
func (r *friendRepository) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	var friendships []models.Friendship
	if err := r.db.WithContext(ctx).
		Where("status = ? AND (requester_id = ? OR addressee_id = ?)",
			models.FriendshipStatusAccepted, userID, userID).
		Order("id asc").
		Find(&friendships).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	if len(friendships) == 0 {
		return nil, nil
	}

	otherIDs := make([]uint, 0, len(friendships))
	for _, f := range friendships {
		if f.RequesterID == userID {
			otherIDs = append(otherIDs, f.AddresseeID)
		} else {
			otherIDs = append(otherIDs, f.RequesterID)
		}
	}

	var users []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", otherIDs).Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	byID := make(map[uint]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	ordered := make([]models.User, 0, len(otherIDs))
	for _, id := range otherIDs {
		if u, ok := byID[id]; ok {
			ordered = append(ordered, u)
		}
	}
	return ordered, nil
}

func (r *friendRepository) GetPendingRequests(ctx context.Context, userID uint) ([]models.Friendship, error) {
	var friendships []models.Friendship

	// Find pending requests where user is the addressee
	if err := r.db.WithContext(ctx).
		Where("addressee_id = ? AND status = ?", userID, models.FriendshipStatusPending).
		Preload("Requester").
		Order("id asc").
		Find(&friendships).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return friendships, nil
}

// Accept flips the pending request from requesterID to addresseeID to
// accepted in a single UPDATE, making both sides friends at once.
func (r *friendRepository) Accept(ctx context.Context, requesterID, addresseeID uint) error {
	res := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("requester_id = ? AND addressee_id = ? AND status = ?",
			requesterID, addresseeID, models.FriendshipStatusPending).
		Update("status", models.FriendshipStatusAccepted)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNoPendingRequest
	}
	return nil
}

// Decline deletes the pending request without touching either friend list.
func (r *friendRepository) Decline(ctx context.Context, requesterID, addresseeID uint) error {
	res := r.db.WithContext(ctx).
		Where("requester_id = ? AND addressee_id = ? AND status = ?",
			requesterID, addresseeID, models.FriendshipStatusPending).
		Delete(&models.Friendship{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNoPendingRequest
	}
	return nil
}
