// Package service contains application logic that spans repositories.
package service

import (
	"context"

	"mingle/internal/models"
	"mingle/internal/observability"
	"mingle/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// FeedService assembles the home feed for a user.
type FeedService struct {
	posts   repository.PostRepository
	friends repository.FriendRepository
}

// NewFeedService creates a feed service over the post and friend repositories.
func NewFeedService(posts repository.PostRepository, friends repository.FriendRepository) *FeedService {
	return &FeedService{posts: posts, friends: friends}
}

// Feed returns the user's home feed: every friend's posts first, walking
// friends in friend-list order and each friend's posts in list order,
// followed by the user's own posts. The feed is deliberately not sorted
// by time; the order is the concatenation order.
func (s *FeedService) Feed(ctx context.Context, userID uint) ([]models.Post, error) {
	span, ctx := observability.NewSpan(ctx, "feed.assemble")
	defer span.End()

	friends, err := s.friends.GetFriends(ctx, userID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	var feed []models.Post
	for _, friend := range friends {
		posts, err := s.posts.ListByUser(ctx, friend.ID)
		if err != nil {
			span.SetError(err)
			return nil, err
		}
		feed = append(feed, posts...)
	}

	own, err := s.posts.ListByUser(ctx, userID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	feed = append(feed, own...)

	span.AddAttributes(
		attribute.Int("feed.friends", len(friends)),
		attribute.Int("feed.posts", len(feed)),
	)
	return feed, nil
}
