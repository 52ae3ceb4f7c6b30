package repository

import (
	"context"
	"database/sql"

	"todo-api/internal/models"
	"todo-api/pkg/logger"
)

// TodoRepository provides row-level CRUD over the todo table. Every method
// executes a single statement in its own implicit transaction.
type TodoRepository struct {
	db *sql.DB
}

func New(db *sql.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

// GetAll returns all todos in the store's natural return order.
func (r *TodoRepository) GetAll(ctx context.Context) ([]models.Todo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, description, is_completed FROM todo`)
	if err != nil {
		logger.Error(ctx, "Repository GetAll failed", "error", err)
		return nil, err
	}
	defer rows.Close()
	var todos []models.Todo
	for rows.Next() {
		var t models.Todo
		var desc sql.NullString
		if err := rows.Scan(&t.ID, &t.Title, &desc, &t.IsCompleted); err != nil {
			logger.Error(ctx, "Repository scan todo failed", "error", err)
			return nil, err
		}
		if desc.Valid {
			t.Description = &desc.String
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

// GetByID returns the todo with the given id, or sql.ErrNoRows.
func (r *TodoRepository) GetByID(ctx context.Context, id int64) (*models.Todo, error) {
	var t models.Todo
	var desc sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, description, is_completed FROM todo WHERE id = $1`, id).
		Scan(&t.ID, &t.Title, &desc, &t.IsCompleted)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		logger.Error(ctx, "Repository GetByID failed", "error", err, "id", id)
		return nil, err
	}
	if desc.Valid {
		t.Description = &desc.String
	}
	return &t, nil
}

// Create inserts a new todo and fills in the server-assigned id.
func (r *TodoRepository) Create(ctx context.Context, todo *models.Todo) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO todo (title, description, is_completed) VALUES ($1, $2, $3) RETURNING id`,
		todo.Title, todo.Description, todo.IsCompleted).Scan(&todo.ID)
	if err != nil {
		logger.Error(ctx, "Repository Create failed", "error", err)
		return err
	}
	return nil
}

// Update writes the full row back by id. Returns sql.ErrNoRows when the row
// does not exist.
func (r *TodoRepository) Update(ctx context.Context, todo *models.Todo) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE todo SET title = $1, description = $2, is_completed = $3 WHERE id = $4`,
		todo.Title, todo.Description, todo.IsCompleted, todo.ID)
	if err != nil {
		logger.Error(ctx, "Repository Update failed", "error", err, "id", todo.ID)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a todo by id. Returns sql.ErrNoRows when the row does not exist.
func (r *TodoRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todo WHERE id = $1`, id)
	if err != nil {
		logger.Error(ctx, "Repository Delete failed", "error", err, "id", id)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
