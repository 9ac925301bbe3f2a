package lib

import (
	"context"
	"fmt"
	"strconv"

	"fbs/src/config"
	"fbs/src/types"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionStore holds the server-side session keyed by an opaque id. The
// payload is only the employee id; role is re-resolved from the user record
// on every request so revoked privileges take effect immediately.
type SessionStore interface {
	Create(ctx context.Context, employeeID uint) (string, error)
	Get(ctx context.Context, sid string) (uint, error)
	Destroy(ctx context.Context, sid string) error
}

type redisSessionStore struct {
	rd *redis.Client
}

func (s *redisSessionStore) Create(ctx context.Context, employeeID uint) (string, error) {
	sid := uuid.NewString()
	key := fmt.Sprintf("session:%s", sid)
	if err := s.rd.Set(ctx, key, employeeID, config.SESSION_TTL).Err(); err != nil {
		return "", err
	}
	return sid, nil
}

func (s *redisSessionStore) Get(ctx context.Context, sid string) (uint, error) {
	key := fmt.Sprintf("session:%s", sid)
	val, err := s.rd.Get(ctx, key).Result()
	if err == redis.Nil {
		return 0, types.ErrUnauthenticated
	} else if err != nil {
		return 0, err
	}
	employeeID, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, types.ErrUnauthenticated
	}
	return uint(employeeID), nil
}

func (s *redisSessionStore) Destroy(ctx context.Context, sid string) error {
	key := fmt.Sprintf("session:%s", sid)
	return s.rd.Del(ctx, key).Err()
}

var sessionStore SessionStore

func GetSessionStore() SessionStore {
	if sessionStore != nil {
		return sessionStore
	}
	sessionStore = &redisSessionStore{rd: GetRedisClient()}
	return sessionStore
}

// NewSessionStore Replace session store with custom implementation
func NewSessionStore(s SessionStore) SessionStore {
	sessionStore = s
	return sessionStore
}
