package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"slices"
	"time"

	"useradmin/models"
	"useradmin/utils"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type contextKey string

const (
	sessionContextKey contextKey = "session"
	userContextKey    contextKey = "user"
)

// Protected gates a handler behind a valid session cookie. An empty
// allowedGroups list admits any authenticated user; a non-empty list requires
// the user's group to be a member. The session expiry is extended before the
// group check runs, so even a forbidden-role request refreshes session life.
func Protected(cfg *utils.Config, db *pgxpool.Pool, client *redis.Client, allowedGroups ...string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie("session_id")
			if err != nil || cookie.Value == "" {
				utils.JSONMessage(w, http.StatusUnauthorized, "Unauthorized - missing cookie")
				return
			}

			session, err := utils.GetSession(r.Context(), client, cookie.Value)
			if err != nil {
				if errors.Is(err, utils.ErrSessionNotFound) {
					utils.JSONMessage(w, http.StatusUnauthorized, "Unauthorized - session expired")
					return
				}
				log.Println("error fetching session:", err)
				utils.JSONError(w, http.StatusInternalServerError, err.Error())
				return
			}

			if utils.SessionExpired(*session, time.Now()) {
				if err := utils.DeleteSession(r.Context(), client, session.ID); err != nil {
					log.Println("error deleting expired session:", err)
				}
				utils.JSONMessage(w, http.StatusUnauthorized, "Unauthorized - session expired")
				return
			}

			if err := utils.TouchSession(r.Context(), client, session, cfg.SessionExtension); err != nil {
				log.Println("error extending session:", err)
				utils.JSONError(w, http.StatusInternalServerError, err.Error())
				return
			}

			user, err := utils.GetUserByEmail(r.Context(), db, session.Username)
			if err != nil {
				if errors.Is(err, utils.ErrUserNotFound) {
					utils.JSONMessage(w, http.StatusUnauthorized, "Unauthorized - user not found")
					return
				}
				log.Println("error fetching session user:", err)
				utils.JSONError(w, http.StatusInternalServerError, err.Error())
				return
			}

			if len(allowedGroups) > 0 && !slices.Contains(allowedGroups, user.Group) {
				utils.JSONMessage(w, http.StatusUnauthorized, "Unauthorized - insufficient role")
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			ctx = context.WithValue(ctx, userContextKey, user)
			next(w, r.WithContext(ctx))
		}
	}
}

// SessionFromContext returns the session attached by Protected, or nil.
func SessionFromContext(ctx context.Context) *models.Session {
	session, _ := ctx.Value(sessionContextKey).(*models.Session)
	return session
}

// UserFromContext returns the user attached by Protected, or nil.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}
