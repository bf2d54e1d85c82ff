package utils

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// StartSessionCleanup runs the expired-session sweep on a fixed interval
// until ctx is cancelled. Store failures are logged and retried on the next
// tick.
func StartSessionCleanup(ctx context.Context, client *redis.Client, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("session cleanup stopped")
			return
		case <-ticker.C:
			removed, err := DeleteExpiredSessions(ctx, client)
			if err != nil {
				log.Println("session cleanup failed:", err)
				continue
			}
			log.Printf("Running scheduled session cleaning, %d expired sessions.", removed)
		}
	}
}
