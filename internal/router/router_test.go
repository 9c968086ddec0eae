package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kanban-board-api/internal/auth"
	"kanban-board-api/internal/dto"
)

// setupTestDB creates an in-memory SQLite database for API testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err, "Failed to connect to test database")

	// Register callback to generate UUIDs for SQLite (since it doesn't support gen_random_uuid())
	db.Callback().Create().Before("gorm:create").Register("generate_uuid", func(db *gorm.DB) {
		if db.Statement.Schema != nil {
			for _, field := range db.Statement.Schema.PrimaryFields {
				if field.DataType == "uuid" {
					switch db.Statement.ReflectValue.Kind() {
					case reflect.Slice, reflect.Array:
						for i := 0; i < db.Statement.ReflectValue.Len(); i++ {
							rv := db.Statement.ReflectValue.Index(i)
							if field.ReflectValueOf(db.Statement.Context, rv).IsZero() {
								field.Set(db.Statement.Context, rv, uuid.New())
							}
						}
					default:
						fieldValue := field.ReflectValueOf(db.Statement.Context, db.Statement.ReflectValue)
						if fieldValue.IsZero() {
							field.Set(db.Statement.Context, db.Statement.ReflectValue, uuid.New())
						}
					}
				}
			}
		}
	})

	// Create tables manually for SQLite compatibility
	statements := []string{
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			full_name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL
		)`,
		`CREATE TABLE boards (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			title TEXT NOT NULL,
			owner_id TEXT NOT NULL
		)`,
		`CREATE TABLE board_members (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			board_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			UNIQUE (board_id, user_id)
		)`,
		`CREATE TABLE tasks (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			board_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			status TEXT NOT NULL DEFAULT 'todo',
			priority TEXT NOT NULL DEFAULT 'medium',
			assignee_id TEXT,
			reviewer_id TEXT,
			due_date DATE NOT NULL,
			author_id TEXT NOT NULL
		)`,
		`CREATE TABLE comments (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			task_id TEXT NOT NULL,
			author_id TEXT NOT NULL,
			content TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error, "Failed to create table")
	}

	return db
}

func setupTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return Setup(Config{
		DB:           setupTestDB(t),
		Logger:       zap.NewNop(),
		TokenManager: auth.NewTokenManager("test-secret", time.Hour, nil),
		BasePath:     "/api",
	})
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, r *gin.Engine, name, email string) dto.AuthResponse {
	w := doJSON(t, r, http.MethodPost, "/api/auth/registration", "", gin.H{
		"fullname":          name,
		"email":             email,
		"password":          "s3cret-pass",
		"repeated_password": "s3cret-pass",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp
}

func TestHealthEndpoints(t *testing.T) {
	r := setupTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/ready", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthFlow(t *testing.T) {
	r := setupTestRouter(t)

	registerUser(t, r, "Jamie Doe", "jamie@example.com")

	// Duplicate registration is rejected
	w := doJSON(t, r, http.MethodPost, "/api/auth/registration", "", gin.H{
		"fullname":          "Jamie Doe",
		"email":             "jamie@example.com",
		"password":          "s3cret-pass",
		"repeated_password": "s3cret-pass",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Email check sees the account
	w = doJSON(t, r, http.MethodGet, "/api/email-check?email=jamie@example.com", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var check dto.EmailCheckResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &check))
	assert.True(t, check.Exists)

	// Login with the right and wrong password
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "jamie@example.com",
		"password": "s3cret-pass",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "jamie@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBoardEndpoints(t *testing.T) {
	r := setupTestRouter(t)

	ownerAuth := registerUser(t, r, "Owner", "owner@example.com")
	memberAuth := registerUser(t, r, "Member", "member@example.com")
	outsiderAuth := registerUser(t, r, "Outsider", "outsider@example.com")

	// Unauthenticated requests never reach the handler
	w := doJSON(t, r, http.MethodGet, "/api/boards", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Owner creates a board sharing it with the member
	w = doJSON(t, r, http.MethodPost, "/api/boards", ownerAuth.Token, gin.H{
		"title":   "Sprint 1",
		"members": []uuid.UUID{memberAuth.UserID},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created dto.BoardWriteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Len(t, created.MembersData, 2)

	// Both owner and member see it in their listings
	for _, token := range []string{ownerAuth.Token, memberAuth.Token} {
		w = doJSON(t, r, http.MethodGet, "/api/boards", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var boards []dto.BoardSummaryResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &boards))
		require.Len(t, boards, 1)
		assert.Equal(t, 2, boards[0].MemberCount)
	}

	boardPath := fmt.Sprintf("/api/boards/%s", created.ID)

	// Outsider gets 403 on an existing board, 404 on a missing one
	w = doJSON(t, r, http.MethodGet, boardPath, outsiderAuth.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/boards/%s", uuid.New()), outsiderAuth.Token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Only the owner may delete
	w = doJSON(t, r, http.MethodDelete, boardPath, memberAuth.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doJSON(t, r, http.MethodDelete, boardPath, ownerAuth.Token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Gone for everyone afterwards
	w = doJSON(t, r, http.MethodGet, boardPath, ownerAuth.Token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaskAndCommentEndpoints(t *testing.T) {
	r := setupTestRouter(t)

	ownerAuth := registerUser(t, r, "Owner", "owner@example.com")
	memberAuth := registerUser(t, r, "Member", "member@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/boards", ownerAuth.Token, gin.H{
		"title":   "Sprint 1",
		"members": []uuid.UUID{memberAuth.UserID},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var board dto.BoardWriteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &board))

	// Member creates a task assigned to themselves
	w = doJSON(t, r, http.MethodPost, "/api/tasks", memberAuth.Token, gin.H{
		"board":       board.ID,
		"title":       "Implement login",
		"assignee_id": memberAuth.UserID,
		"due_date":    "2026-09-15",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var task dto.TaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	assert.Equal(t, "todo", task.Status)
	assert.Equal(t, "medium", task.Priority)
	assert.Equal(t, "2026-09-15", task.DueDate)

	// The assignee sees it in the assigned-to-me view
	w = doJSON(t, r, http.MethodGet, "/api/tasks/assigned-to-me", memberAuth.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var assigned []dto.TaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &assigned))
	require.Len(t, assigned, 1)
	assert.Equal(t, task.ID, assigned[0].ID)

	// The assignee updates status, the board owner may not
	taskPath := fmt.Sprintf("/api/tasks/%s", task.ID)
	w = doJSON(t, r, http.MethodPatch, taskPath, ownerAuth.Token, gin.H{"status": "done"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doJSON(t, r, http.MethodPatch, taskPath, memberAuth.Token, gin.H{"status": "in_progress"})
	require.Equal(t, http.StatusOK, w.Code)

	// Owner comments, member cannot delete the owner's comment
	commentsPath := taskPath + "/comments"
	w = doJSON(t, r, http.MethodPost, commentsPath, ownerAuth.Token, gin.H{"content": "Ship it"})
	require.Equal(t, http.StatusCreated, w.Code)
	var comment dto.CommentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comment))

	commentPath := fmt.Sprintf("%s/%s", commentsPath, comment.ID)
	w = doJSON(t, r, http.MethodDelete, commentPath, memberAuth.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doJSON(t, r, http.MethodDelete, commentPath, ownerAuth.Token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Deleting the task as its author removes it
	w = doJSON(t, r, http.MethodDelete, taskPath, memberAuth.Token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(t, r, http.MethodGet, taskPath, memberAuth.Token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
