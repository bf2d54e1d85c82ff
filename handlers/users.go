package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"useradmin/models"
	"useradmin/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Status   *bool  `json:"status"`
	Group    string `json:"group"`
}

type updateUserRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Status *bool  `json:"status"`
	Group  string `json:"group"`
}

type userList struct {
	Users []models.User `json:"users"`
}

// ListUsers returns every user in the directory.
func ListUsers(w http.ResponseWriter, r *http.Request, db *pgxpool.Pool) {
	users, err := utils.ListUsers(r.Context(), db)
	if err != nil {
		log.Println("error listing users:", err)
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, userList{Users: users})
}

// GetUser returns a single user by ID.
func GetUser(w http.ResponseWriter, r *http.Request, db *pgxpool.Pool) {
	user, err := utils.GetUserByID(r.Context(), db, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, utils.ErrUserNotFound) {
			utils.JSONError(w, http.StatusNotFound, "User not found.")
			return
		}
		log.Println("error fetching user:", err)
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

// CreateUser adds a user to the directory. An absent or unrecognized group
// falls back to "User"; update is stricter and rejects such groups.
func CreateUser(w http.ResponseWriter, r *http.Request, db *pgxpool.Pool) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	name := strings.TrimSpace(req.Name)
	email := utils.NormalizeEmail(req.Email)

	if name == "" || email == "" || req.Password == "" {
		utils.JSONError(w, http.StatusBadRequest, "Missing or invalid 'name', 'email', or 'password'.")
		return
	}
	if req.Status == nil {
		utils.JSONError(w, http.StatusBadRequest, "'status' must be a boolean.")
		return
	}

	group := req.Group
	if !models.ValidGroup(group) {
		group = models.GroupUser
	}

	inUse, err := utils.EmailInUse(r.Context(), db, email)
	if err != nil {
		log.Println("error checking email:", err)
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if inUse {
		utils.JSONError(w, http.StatusBadRequest, "A user with the same email address exists")
		return
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Println("error hashing password:", err)
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	user, err := utils.CreateUser(r.Context(), db, name, email, passwordHash, *req.Status, group)
	if err != nil {
		log.Println("error creating user:", err)
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, user)
}

// UpdateUser replaces a user's name, email, status and group.
func UpdateUser(w http.ResponseWriter, r *http.Request, db *pgxpool.Pool) {
	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	name := strings.TrimSpace(req.Name)
	email := utils.NormalizeEmail(req.Email)

	if name == "" || email == "" {
		utils.JSONError(w, http.StatusBadRequest, "Missing or invalid 'name' or 'email'.")
		return
	}
	if req.Status == nil {
		utils.JSONError(w, http.StatusBadRequest, "'status' must be a boolean.")
		return
	}
	if err := utils.ValidateGroup(req.Group); err != nil {
		utils.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := utils.UpdateUser(r.Context(), db, r.PathValue("id"), name, email, *req.Status, req.Group)
	if err != nil {
		if errors.Is(err, utils.ErrUserNotFound) {
			utils.JSONError(w, http.StatusNotFound, "User not found.")
			return
		}
		log.Println("error updating user:", err)
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, user)
}

// SetUserPassword lets an administrator set another user's password.
func SetUserPassword(w http.ResponseWriter, r *http.Request, db *pgxpool.Pool) {
	var req passwordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if req.Password == "" {
		utils.JSONError(w, http.StatusBadRequest, "Missing or invalid 'password'.")
		return
	}

	user, err := utils.GetUserByID(r.Context(), db, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, utils.ErrUserNotFound) {
			utils.JSONError(w, http.StatusNotFound, "User not found.")
			return
		}
		log.Println("error fetching user:", err)
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

// DeleteUser removes a user from the directory.
func DeleteUser(w http.ResponseWriter, r *http.Request, db *pgxpool.Pool) {
	deleted, err := utils.DeleteUser(r.Context(), db, r.PathValue("id"))
	if err != nil {
		log.Println("error deleting user:", err)
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !deleted {
		utils.JSONError(w, http.StatusNotFound, "User not found.")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]bool{"status": true})
}
