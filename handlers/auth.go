package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"useradmin/middleware"
	"useradmin/utils"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type passwordRequest struct {
	Password string `json:"password"`
}

// Login verifies credentials and issues a session cookie.
func Login(w http.ResponseWriter, r *http.Request, cfg *utils.Config, db *pgxpool.Pool, client *redis.Client) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	req.Email = utils.NormalizeEmail(req.Email)

	user, err := utils.GetUserByEmail(r.Context(), db, req.Email)
	if err != nil {
		if errors.Is(err, utils.ErrUserNotFound) {
			// A bad email surfaces as a 500 while a bad password is a
			// 401. Longstanding behavior; clients depend on it.
			utils.JSONError(w, http.StatusInternalServerError, "User doesn't exist")
			return
		}
		log.Println("login lookup failed:", err)
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	match, err := utils.CheckPasswordHash(req.Password, user.PasswordHash)
	if err != nil {
		log.Println("error comparing passwords:", err)
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !match {
		utils.JSONMessage(w, http.StatusUnauthorized, "Invalid Credentials")
		return
	}

	session, err := utils.CreateSession(r.Context(), client, user.Email, cfg.SessionTTL)
	if err != nil {
		log.Println("error creating session:", err)
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Production,
		MaxAge:   int(cfg.SessionTTL.Seconds()),
	})

	utils.JSON(w, http.StatusOK, user)
}

// Me returns the user owning the current session.
func Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		utils.JSONError(w, http.StatusInternalServerError, "no user in request context")
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

// ChangeOwnPassword updates the password of the session's user.
func ChangeOwnPassword(w http.ResponseWriter, r *http.Request, db *pgxpool.Pool) {
	session := middleware.SessionFromContext(r.Context())
	if session == nil {
		utils.JSONError(w, http.StatusInternalServerError, "no session in request context")
		return
	}

	var req passwordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if err := utils.ValidatePassword(req.Password); err != nil {
		utils.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := utils.GetUserByEmail(r.Context(), db, session.Username)
	if err != nil {
		if errors.Is(err, utils.ErrUserNotFound) {
			utils.JSONError(w, http.StatusNotFound, "User not found.")
			return
		}
		log.Println("password change lookup failed:", err)
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Println("error hashing password:", err)
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	updated, err := utils.UpdateUserPassword(r.Context(), db, user.ID, passwordHash)
	if err != nil {
		log.Println("error updating password:", err)
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, updated)
}

// Logout deletes the current session and clears the cookie.
func Logout(w http.ResponseWriter, r *http.Request, client *redis.Client) {
	session := middleware.SessionFromContext(r.Context())
	if session == nil {
		utils.JSONError(w, http.StatusInternalServerError, "no session in request context")
		return
	}

	if err := utils.DeleteSession(r.Context(), client, session.ID); err != nil {
		log.Println("error deleting session:", err)
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	utils.JSONMessage(w, http.StatusOK, "Logged out successfully")
}
