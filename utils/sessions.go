package utils

import (
	"context"
	"errors"
	"time"

	"useradmin/models"

	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

const sessionKeyPrefix = "session:"

// CreateSession inserts a new session for username expiring after ttl.
func CreateSession(ctx context.Context, client *redis.Client, username string, ttl time.Duration) (models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	session := models.Session{
		ID:        GenerateSessionID(),
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	sessionMap := map[string]any{
		"username":   session.Username,
		"created_at": session.CreatedAt.Format(time.RFC3339),
		"expires_at": session.ExpiresAt.Format(time.RFC3339),
	}

	if err := client.HSet(ctx, sessionKeyPrefix+session.ID, sessionMap).Err(); err != nil {
		return models.Session{}, err
	}
	return session, nil
}

// GetSession retrieves a session by ID. Returns ErrSessionNotFound when no
// record exists for the ID.
func GetSession(ctx context.Context, client *redis.Client, sessionID string) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	data, err := client.HGetAll(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrSessionNotFound
	}

	createdAt, err := time.Parse(time.RFC3339, data["created_at"])
	if err != nil {
		return nil, err
	}
	expiresAt, err := time.Parse(time.RFC3339, data["expires_at"])
	if err != nil {
		return nil, err
	}

	return &models.Session{
		ID:        sessionID,
		Username:  data["username"],
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
	}, nil
}

// TouchSession pushes the session expiry forward to now + extension and
// persists it. The passed session is updated in place.
func TouchSession(ctx context.Context, client *redis.Client, session *models.Session, extension time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	expiresAt := time.Now().Add(extension)
	err := client.HSet(ctx, sessionKeyPrefix+session.ID, "expires_at", expiresAt.Format(time.RFC3339)).Err()
	if err != nil {
		return err
	}
	session.ExpiresAt = expiresAt
	return nil
}

// DeleteSession removes a single session.
func DeleteSession(ctx context.Context, client *redis.Client, sessionID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}

// SessionExpired reports whether the session is no longer valid at now.
// A session expiring exactly at now counts as expired.
func SessionExpired(session models.Session, now time.Time) bool {
	return !session.ExpiresAt.After(now)
}

// DeleteExpiredSessions scans all session keys and removes those whose
// expiry has passed, returning the number removed.
func DeleteExpiredSessions(ctx context.Context, client *redis.Client) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	now := time.Now()
	var cursor uint64
	removed := 0

	for {
		keys, nextCursor, err := client.Scan(ctx, cursor, sessionKeyPrefix+"*", 100).Result()
		if err != nil {
			return removed, err
		}

		for _, key := range keys {
			expiresAt, err := client.HGet(ctx, key, "expires_at").Result()
			if err != nil {
				continue // key vanished between scan and read
			}
			expiry, err := time.Parse(time.RFC3339, expiresAt)
			if err != nil || !expiry.After(now) {
				if delErr := client.Del(ctx, key).Err(); delErr == nil {
					removed++
				}
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return removed, nil
}
