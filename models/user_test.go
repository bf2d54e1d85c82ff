package models_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"useradmin/models"

	"github.com/google/uuid"
)

func TestUserJSONOmitsPasswordHash(t *testing.T) {
	user := models.User{
		ID:             uuid.New(),
		Name:           "Super",
		Email:          "admin@admin.com",
		PasswordHash:   "$2a$10$abcdefghijklmnopqrstuv",
		Status:         true,
		Group:          models.GroupAdministrator,
		CreatedAt:      time.Now(),
		LastModifiedAt: time.Now(),
	}

	data, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("marshaling user: %v", err)
	}

	if strings.Contains(string(data), user.PasswordHash) {
		t.Error("serialized user contains the password hash")
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshaling user: %v", err)
	}
	for _, key := range []string{"hash", "password_hash", "PasswordHash"} {
		if _, ok := fields[key]; ok {
			t.Errorf("serialized user contains field %q", key)
		}
	}
	for _, key := range []string{"id", "name", "email", "status", "group", "createdAt", "lastModifiedAt"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("serialized user is missing field %q", key)
		}
	}
}

func TestValidGroup(t *testing.T) {
	tests := []struct {
		group string
		want  bool
	}{
		{group: models.GroupAdministrator, want: true},
		{group: models.GroupManager, want: true},
		{group: models.GroupUser, want: true},
		{group: "", want: false},
		{group: "user", want: false},
		{group: "Superuser", want: false},
	}

	for _, tt := range tests {
		if got := models.ValidGroup(tt.group); got != tt.want {
			t.Errorf("ValidGroup(%q) = %v, want %v", tt.group, got, tt.want)
		}
	}
}
