package session

import (
	"context"
	"errors"
	"fmt"

	"mingle/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Flash holds the one-time messages for the next rendered page.
// Each field is set once by an action and cleared when read.
type Flash struct {
	Error   string
	Success string
}

func flashKey(sid, kind string) string { return "flash:" + kind + ":" + sid }

// SetError attaches a one-time error message to the session.
func (s *Store) SetError(ctx context.Context, sid, msg string) error {
	return s.setFlash(ctx, sid, "error", msg)
}

// SetSuccess attaches a one-time success message to the session.
func (s *Store) SetSuccess(ctx context.Context, sid, msg string) error {
	return s.setFlash(ctx, sid, "success", msg)
}

func (s *Store) setFlash(ctx context.Context, sid, kind, msg string) error {
	if sid == "" {
		return nil
	}
	// Flash outlives the page redirect, not the session.
	if err := s.rdb.Set(ctx, flashKey(sid, kind), msg, s.ttl).Err(); err != nil {
		observability.RedisErrors.WithLabelValues("flash_set").Inc()
		return fmt.Errorf("set flash: %w", err)
	}
	return nil
}

// PopFlash consumes and clears the pending flash messages for the session.
func (s *Store) PopFlash(ctx context.Context, sid string) (Flash, error) {
	var flash Flash
	if sid == "" {
		return flash, nil
	}

	errMsg, err := s.rdb.GetDel(ctx, flashKey(sid, "error")).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		observability.RedisErrors.WithLabelValues("flash_pop").Inc()
		return flash, fmt.Errorf("pop flash: %w", err)
	}
	flash.Error = errMsg

	okMsg, err := s.rdb.GetDel(ctx, flashKey(sid, "success")).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		observability.RedisErrors.WithLabelValues("flash_pop").Inc()
		return flash, fmt.Errorf("pop flash: %w", err)
	}
	flash.Success = okMsg

	return flash, nil
}
