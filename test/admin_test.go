package test

import (
	"net/http"
	"testing"
)

func TestAdminListUsers(t *testing.T) {
	app := CreateTestApp()

	userEmail := uniqueEmail("listme")
	registerUser(t, app, "List Me", userEmail, "listpass")
	adminTok, adminEmail := createTestAdmin(t, app)

	result := doJSON(t, app, "GET", "/api/v1/admin/users", nil, adminTok)
	if status(result) != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", status(result))
	}

	users := result["data"].([]interface{})
	foundUser, foundAdmin := false, false
	for _, raw := range users {
		user := raw.(map[string]interface{})
		if _, present := user["password"]; present {
			t.Errorf("User records must not expose a password field")
		}
		switch user["email"] {
		case userEmail:
			foundUser = true
			if user["role"] != "user" {
				t.Errorf("Expected role 'user' for %s, got %v", userEmail, user["role"])
			}
		case adminEmail:
			foundAdmin = true
			if user["role"] != "admin" {
				t.Errorf("Expected role 'admin' for %s, got %v", adminEmail, user["role"])
			}
		}
	}
	if !foundUser || !foundAdmin {
		t.Errorf("Expected both seeded accounts in the listing")
	}
}

func TestAdminListTasks(t *testing.T) {
	app := CreateTestApp()

	email := uniqueEmail("taskowner")
	registerUser(t, app, "Task Owner", email, "ownerpass")
	userTok := loginUser(t, app, email, "ownerpass")
	adminTok, _ := createTestAdmin(t, app)

	taskID := createTask(t, app, userTok, "Visible to admin", "")

	result := doJSON(t, app, "GET", "/api/v1/admin/tasks", nil, adminTok)
	if status(result) != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", status(result))
	}

	tasks := result["data"].([]interface{})
	found := false
	for _, raw := range tasks {
		task := raw.(map[string]interface{})
		owner, ok := task["owner"].(map[string]interface{})
		if !ok {
			t.Fatalf("Expected owner expansion on admin task: %v", task)
		}
		if _, present := owner["password"]; present {
			t.Errorf("Owner expansion must not expose a password field")
		}
		if int(task["id"].(float64)) == taskID {
			found = true
			if owner["email"] != email {
				t.Errorf("Expected owner email %q, got %v", email, owner["email"])
			}
			if owner["name"] != "Task Owner" {
				t.Errorf("Expected owner name 'Task Owner', got %v", owner["name"])
			}
		}
	}
	if !found {
		t.Errorf("Expected the created task in the admin listing")
	}
}

func TestAdminRoutesForbiddenForUsers(t *testing.T) {
	app := CreateTestApp()

	email := uniqueEmail("plain")
	registerUser(t, app, "Plain User", email, "plainpass")
	tok := loginUser(t, app, email, "plainpass")

	for _, path := range []string{"/api/v1/admin/users", "/api/v1/admin/tasks"} {
		result := doJSON(t, app, "GET", path, nil, tok)
		if status(result) != http.StatusForbidden {
			t.Errorf("Expected status 403 for %s, got %d", path, status(result))
		}
	}

	// Without a token it is 401, not 403.
	for _, path := range []string{"/api/v1/admin/users", "/api/v1/admin/tasks"} {
		result := doJSON(t, app, "GET", path, nil, "")
		if status(result) != http.StatusUnauthorized {
			t.Errorf("Expected status 401 for unauthenticated %s, got %d", path, status(result))
		}
	}
}
