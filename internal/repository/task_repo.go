package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"taskboard/internal/model"
)

type TaskRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTaskRepository(db *pgxpool.Pool, logger *zap.Logger) *TaskRepository {
	return &TaskRepository{db: db, logger: logger}
}

// Insert stores a new task and fills in its generated id and creation time.
func (r *TaskRepository) Insert(ctx context.Context, t *model.Task) error {
	r.logger.Debug("Inserting task",
		zap.Int("user_id", t.UserID),
		zap.String("title", t.Title),
		zap.String("status", t.Status),
	)
	query := `
        INSERT INTO tasks (user_id, title, description, status, due_date)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query,
		t.UserID,
		t.Title,
		t.Description,
		t.Status,
		t.DueDate,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to insert task",
			zap.Error(err),
			zap.Int("user_id", t.UserID),
		)
		return err
	}
	r.logger.Info("Task inserted successfully",
		zap.Int("task_id", t.ID),
		zap.Int("user_id", t.UserID),
	)
	return nil
}

// ListByOwner returns the owner's tasks, newest first. An empty status
// returns every task; a non-empty status restricts to that value.
func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID int, status string) ([]model.Task, error) {
	query := `
        SELECT id, user_id, title, description, status, due_date, created_at
        FROM tasks
        WHERE user_id = $1
        AND ($2 = '' OR status = $2)
        ORDER BY created_at DESC, id DESC
    `
	rows, err := r.db.Query(ctx, query, ownerID, status)
	if err != nil {
		r.logger.Error("Failed to query tasks",
			zap.Error(err),
			zap.Int("user_id", ownerID),
		)
		return nil, err
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(
			&t.ID,
			&t.UserID,
			&t.Title,
			&t.Description,
			&t.Status,
			&t.DueDate,
			&t.CreatedAt,
		); err != nil {
			r.logger.Error("Failed to scan task row",
				zap.Error(err),
				zap.Int("user_id", ownerID),
			)
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// FindByID returns the task with the given id, or pgx.ErrNoRows.
func (r *TaskRepository) FindByID(ctx context.Context, id int) (*model.Task, error) {
	query := `
        SELECT id, user_id, title, description, status, due_date, created_at
        FROM tasks
        WHERE id = $1
    `
	var t model.Task
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID,
		&t.UserID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.DueDate,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Update writes all mutable fields of the task in a single statement.
func (r *TaskRepository) Update(ctx context.Context, t *model.Task) error {
	query := `
        UPDATE tasks
        SET title = $2, description = $3, status = $4, due_date = $5
        WHERE id = $1
    `
	result, err := r.db.Exec(ctx, query,
		t.ID,
		t.Title,
		t.Description,
		t.Status,
		t.DueDate,
	)
	if err != nil {
		r.logger.Error("Failed to update task",
			zap.Error(err),
			zap.Int("task_id", t.ID),
		)
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	r.logger.Info("Task updated successfully", zap.Int("task_id", t.ID))
	return nil
}

// Delete removes the task permanently, or returns pgx.ErrNoRows.
func (r *TaskRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete task",
			zap.Error(err),
			zap.Int("task_id", id),
		)
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	r.logger.Info("Task deleted successfully", zap.Int("task_id", id))
	return nil
}
