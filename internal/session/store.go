// Package session implements the server-side login session store.
//
// Sessions live in Redis under a random identifier delivered to the
// browser as a cookie. The store also maintains a per-user set of live
// session ids, which doubles as the presence registry: a user is online
// while at least one of their sessions has not expired.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"mingle/internal/models"
	"mingle/internal/observability"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound reports that the session id does not map to a live session.
var ErrNotFound = errors.New("session not found")

// Identity is the authenticated user bound to a session.
type Identity struct {
	UserID   uint
	Username string
}

// Store persists sessions, flash messages, and presence in Redis.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore creates a session store with the given session lifetime.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func sessionKey(sid string) string { return "session:" + sid }
func presenceKey(uid uint) string  { return fmt.Sprintf("presence:%d", uid) }

// Create establishes a new session for the user and returns its id.
func (s *Store) Create(ctx context.Context, user *models.User) (string, error) {
	sid := uuid.NewString()

	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, sessionKey(sid),
		"user_id", strconv.FormatUint(uint64(user.ID), 10),
		"username", user.Username,
	)
	pipe.Expire(ctx, sessionKey(sid), s.ttl)
	pipe.SAdd(ctx, presenceKey(user.ID), sid)
	pipe.Expire(ctx, presenceKey(user.ID), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		observability.RedisErrors.WithLabelValues("session_create").Inc()
		return "", fmt.Errorf("create session: %w", err)
	}

	observability.ActiveSessions.Inc()
	return sid, nil
}

// Get resolves a session id to the identity stored in it.
func (s *Store) Get(ctx context.Context, sid string) (*Identity, error) {
	if sid == "" {
		return nil, ErrNotFound
	}

	fields, err := s.rdb.HGetAll(ctx, sessionKey(sid)).Result()
	if err != nil {
		observability.RedisErrors.WithLabelValues("session_get").Inc()
		return nil, fmt.Errorf("get session: %w", err)
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}

	userID, err := strconv.ParseUint(fields["user_id"], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("corrupt session %s: %w", sid, err)
	}

	return &Identity{UserID: uint(userID), Username: fields["username"]}, nil
}

// Destroy removes the session and its presence entry.
func (s *Store) Destroy(ctx context.Context, sid string) error {
	ident, err := s.Get(ctx, sid)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, sessionKey(sid))
	pipe.SRem(ctx, presenceKey(ident.UserID), sid)
	if _, err := pipe.Exec(ctx); err != nil {
		observability.RedisErrors.WithLabelValues("session_destroy").Inc()
		return fmt.Errorf("destroy session: %w", err)
	}

	observability.ActiveSessions.Dec()
	return nil
}

// IsOnline reports whether the user has at least one live session.
// Session ids whose sessions have expired are pruned from the set.
func (s *Store) IsOnline(ctx context.Context, userID uint) (bool, error) {
	sids, err := s.rdb.SMembers(ctx, presenceKey(userID)).Result()
	if err != nil {
		observability.RedisErrors.WithLabelValues("presence_members").Inc()
		return false, fmt.Errorf("presence lookup: %w", err)
	}

	online := false
	for _, sid := range sids {
		exists, err := s.rdb.Exists(ctx, sessionKey(sid)).Result()
		if err != nil {
			observability.RedisErrors.WithLabelValues("presence_exists").Inc()
			return false, fmt.Errorf("presence lookup: %w", err)
		}
		if exists > 0 {
			online = true
			continue
		}
		// Session expired by TTL; drop the stale member.
		s.rdb.SRem(ctx, presenceKey(userID), sid)
	}
	return online, nil
}

// OnlineFriends filters the friend list down to users with a live
// session, preserving friend-list order. Each friend appears at most
// once no matter how many concurrent sessions they hold.
func (s *Store) OnlineFriends(ctx context.Context, friends []models.User) ([]models.User, error) {
	var online []models.User
	for _, friend := range friends {
		ok, err := s.IsOnline(ctx, friend.ID)
		if err != nil {
			return nil, err
		}
		if ok {
			online = append(online, friend)
		}
	}
	return online, nil
}
