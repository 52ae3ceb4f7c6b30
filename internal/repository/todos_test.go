package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"todo-api/internal/models"
	"todo-api/internal/repository"
)

func newMock(t *testing.T) (*repository.TodoRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return repository.New(db), mock
}

func TestCreateAssignsID(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(
		`INSERT INTO todo (title, description, is_completed) VALUES ($1, $2, $3) RETURNING id`)).
		WithArgs("Buy milk", nil, false).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	todo := &models.Todo{Title: "Buy milk"}
	if err := repo.Create(context.Background(), todo); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if todo.ID != 7 {
		t.Errorf("expected id 7, got %d", todo.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestGetAllMapsNullDescription(t *testing.T) {
	repo, mock := newMock(t)
	rows := sqlmock.NewRows([]string{"id", "title", "description", "is_completed"}).
		AddRow(1, "First", "with text", false).
		AddRow(2, "Second", nil, true)
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, title, description, is_completed FROM todo`)).
		WillReturnRows(rows)

	todos, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(todos) != 2 {
		t.Fatalf("expected 2 todos, got %d", len(todos))
	}
	if todos[0].Description == nil || *todos[0].Description != "with text" {
		t.Errorf("expected description %q, got %v", "with text", todos[0].Description)
	}
	if todos[1].Description != nil {
		t.Errorf("expected nil description, got %q", *todos[1].Description)
	}
	if !todos[1].IsCompleted {
		t.Error("expected second todo completed")
	}
}

func TestGetByIDMissing(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, title, description, is_completed FROM todo WHERE id = $1`)).
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 42)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestUpdateMissingRow(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE todo SET title = $1, description = $2, is_completed = $3 WHERE id = $4`)).
		WithArgs("x", nil, true, int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Todo{ID: 99, Title: "x", IsCompleted: true})
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM todo WHERE id = $1`)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 5); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestDeleteMissingRow(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM todo WHERE id = $1`)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 5)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}
