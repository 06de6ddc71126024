package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"taskhive/pkg/token"
)

func TestAllow(t *testing.T) {
	user := token.Identity{UserID: 1, Role: "user"}
	admin := token.Identity{UserID: 2, Role: "admin"}

	tests := []struct {
		name     string
		identity token.Identity
		action   Action
		ownerID  int
		want     bool
	}{
		{"user creates own task", user, CreateTask, OwnerAny, true},
		{"user reads own task", user, ReadTask, 1, true},
		{"user reads foreign task", user, ReadTask, 2, false},
		{"user updates own task", user, UpdateTask, 1, true},
		{"user updates foreign task", user, UpdateTask, 2, false},
		{"user deletes own task", user, DeleteTask, 1, false},
		{"user deletes foreign task", user, DeleteTask, 2, false},
		{"user lists all users", user, ListUsers, OwnerAny, false},
		{"user lists all tasks", user, ListAllTasks, OwnerAny, false},
		{"admin deletes any task", admin, DeleteTask, 1, true},
		{"admin lists all users", admin, ListUsers, OwnerAny, true},
		{"admin lists all tasks", admin, ListAllTasks, OwnerAny, true},
		{"admin reads own task", admin, ReadTask, 2, true},
		{"admin reads foreign task", admin, ReadTask, 1, false},
		{"admin updates foreign task", admin, UpdateTask, 1, false},
		{"unknown action", admin, Action("task:steal"), OwnerAny, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allow(tt.identity, tt.action, tt.ownerID))
		})
	}
}
