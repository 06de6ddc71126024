package policy

import (
	"taskhive/internal/models"
	"taskhive/pkg/token"
)

// Action is an operation a caller can request against the system.
type Action string

const (
	CreateTask   Action = "task:create"
	ReadTask     Action = "task:read"
	UpdateTask   Action = "task:update"
	DeleteTask   Action = "task:delete"
	ListUsers    Action = "admin:list_users"
	ListAllTasks Action = "admin:list_tasks"
)

// OwnerAny marks actions where no particular task owner is involved.
const OwnerAny = 0

// Allow is a pure decision function: given a verified identity, a requested
// action and the owner of the target resource, it returns whether the call
// may proceed. It never touches the store.
//
// Rules:
//   - regular users create tasks for themselves and read/update only their
//     own; they never delete and never see other users' data
//   - admins list all users and tasks and delete any task; they do not gain
//     create/update/read rights over another user's individual tasks
func Allow(identity token.Identity, action Action, ownerID int) bool {
	switch action {
	case DeleteTask, ListUsers, ListAllTasks:
		// Admin-gated: role decides, ownership is irrelevant.
		return identity.Role == models.RoleAdmin
	case CreateTask:
		return true
	case ReadTask, UpdateTask:
		// Owner-scoped, admins included.
		return identity.UserID == ownerID
	default:
		return false
	}
}
