package controller

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"todo-api/internal/models"
	"todo-api/internal/repository"
	"todo-api/pkg/logger"
)

const (
	errBodyNotJSON   = "Request body must be JSON"
	errTitleRequired = `"title" is required`
	errTodoNotFound  = "Todo not found"
)

// TodoHandler serves the todo CRUD endpoints. The repository and pool are
// injected at startup; handlers hold no other state.
type TodoHandler struct {
	repo *repository.TodoRepository
	db   *sql.DB
}

func New(repo *repository.TodoRepository, db *sql.DB) *TodoHandler {
	return &TodoHandler{repo: repo, db: db}
}

// Health returns a static liveness message.
func (h *TodoHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Flask API is running"})
}

// Ready returns 200 if the database is reachable. Used by K8s readiness probes.
func (h *TodoHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.db.PingContext(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database ping failed"})
		return
	}
	c.String(http.StatusOK, "OK")
}

// GetTodos returns every todo as a JSON array.
func (h *TodoHandler) GetTodos(c *gin.Context) {
	ctx := c.Request.Context()
	todos, err := h.repo.GetAll(ctx)
	if err != nil {
		logger.Error(ctx, "GetTodos repository failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get todos"})
		return
	}
	if todos == nil {
		todos = []models.Todo{}
	}
	c.JSON(http.StatusOK, todos)
}

// CreateTodo validates the body and inserts a new row, returning it with the
// server-assigned id.
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	ctx := c.Request.Context()
	var body struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		IsCompleted *bool   `json:"is_completed"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errBodyNotJSON})
		return
	}
	// Empty string and JSON null both count as missing, not just an absent key.
	if body.Title == nil || *body.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errTitleRequired})
		return
	}
	todo := &models.Todo{
		Title:       *body.Title,
		Description: body.Description,
	}
	if body.IsCompleted != nil {
		todo.IsCompleted = *body.IsCompleted
	}
	if err := h.repo.Create(ctx, todo); err != nil {
		logger.Error(ctx, "CreateTodo repository failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create todo"})
		return
	}
	c.JSON(http.StatusCreated, todo)
}

// UpdateTodo applies a partial update: only keys present in the body change,
// so it decodes into raw messages rather than a bound struct.
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": errTodoNotFound})
		return
	}
	var fields map[string]json.RawMessage
	if err := json.NewDecoder(c.Request.Body).Decode(&fields); err != nil || fields == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errBodyNotJSON})
		return
	}

	todo, err := h.repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": errTodoNotFound})
		return
	}
	if err != nil {
		logger.Error(ctx, "UpdateTodo repository failed", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update todo"})
		return
	}

	// Title is applied verbatim, with no non-emptiness re-check.
	if raw, ok := fields["title"]; ok {
		var title string
		if err := json.Unmarshal(raw, &title); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errBodyNotJSON})
			return
		}
		todo.Title = title
	}
	// Explicit null clears the description.
	if raw, ok := fields["description"]; ok {
		var desc *string
		if err := json.Unmarshal(raw, &desc); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errBodyNotJSON})
			return
		}
		todo.Description = desc
	}
	if raw, ok := fields["is_completed"]; ok {
		var done bool
		if err := json.Unmarshal(raw, &done); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errBodyNotJSON})
			return
		}
		todo.IsCompleted = done
	}

	if err := h.repo.Update(ctx, todo); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": errTodoNotFound})
			return
		}
		logger.Error(ctx, "UpdateTodo repository failed", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update todo"})
		return
	}
	c.JSON(http.StatusOK, todo)
}

// DeleteTodo removes a row by id. A second delete of the same id is a 404.
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": errTodoNotFound})
		return
	}
	if err := h.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": errTodoNotFound})
			return
		}
		logger.Error(ctx, "DeleteTodo repository failed", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete todo"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Todo deleted successfully"})
}
