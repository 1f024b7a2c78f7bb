package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RegistrationsTotal counts successful account registrations.
	RegistrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mingle_registrations_total",
		Help: "Total number of successful user registrations",
	})

	// LoginsTotal counts login attempts by outcome.
	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mingle_logins_total",
		Help: "Total number of login attempts by outcome",
	}, []string{"outcome"})

	// PostsCreatedTotal counts created posts.
	PostsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mingle_posts_created_total",
		Help: "Total number of posts created",
	})

	// CommentsCreatedTotal counts created comments.
	CommentsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mingle_comments_created_total",
		Help: "Total number of comments created",
	})

	// FriendRequestsTotal counts friend-request lifecycle events by action.
	FriendRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mingle_friend_requests_total",
		Help: "Total number of friend request actions",
	}, []string{"action"})

	// ActiveSessions is the gauge of currently live login sessions.
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mingle_active_sessions",
		Help: "Number of currently active login sessions",
	})

	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mingle_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mingle_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
)
