package task

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	mqcontracts "taskboard/contracts/mq"
	"taskboard/internal/apperr"
	"taskboard/internal/model"
	"taskboard/pkg/logger"
	"taskboard/pkg/metrics"
)

// Repository is the slice of the task store the service needs.
type Repository interface {
	Insert(ctx context.Context, t *model.Task) error
	ListByOwner(ctx context.Context, ownerID int, status string) ([]model.Task, error)
	FindByID(ctx context.Context, id int) (*model.Task, error)
	Update(ctx context.Context, t *model.Task) error
	Delete(ctx context.Context, id int) error
}

// EventPublisher publishes task lifecycle events. A nil publisher disables
// publishing; failures are logged and never surfaced to the caller.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

// CreateInput carries the fields of a task creation request.
type CreateInput struct {
	Title       string
	Description string
	Status      string
	DueDate     *time.Time
}

type Service struct {
	repo   Repository
	events EventPublisher
	log    *zap.Logger
}

func NewService(repo Repository, events EventPublisher, log *zap.Logger) *Service {
	return &Service{repo: repo, events: events, log: log}
}

// List returns the requester's tasks, newest first, optionally restricted
// to one status. Tasks of other users are never visible here: the query is
// keyed on the owner, so there is no post-hoc filtering to get wrong.
func (s *Service) List(ctx context.Context, requesterID int, status string) ([]model.Task, error) {
	if status != "" && !model.IsValidStatus(status) {
		return nil, apperr.Validation(fmt.Sprintf("invalid status filter %q", status))
	}

	tasks, err := s.repo.ListByOwner(ctx, requesterID, status)
	if err != nil {
		metrics.IncrementTaskOperation("list", "error")
		return nil, err
	}
	metrics.IncrementTaskOperation("list", "ok")
	return tasks, nil
}

// Create validates the input and stores a new task owned by the requester.
// Nothing is written when validation fails.
func (s *Service) Create(ctx context.Context, requesterID int, in CreateInput) (*model.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperr.Validation("title is required")
	}

	status := in.Status
	if status == "" {
		status = model.StatusTodo
	}
	if !model.IsValidStatus(status) {
		return nil, apperr.Validation(fmt.Sprintf("invalid status %q", in.Status))
	}

	t := &model.Task{
		UserID:      requesterID,
		Title:       title,
		Description: in.Description,
		Status:      status,
		DueDate:     in.DueDate,
	}
	if err := s.repo.Insert(ctx, t); err != nil {
		metrics.IncrementTaskOperation("create", "error")
		return nil, err
	}
	metrics.IncrementTaskOperation("create", "ok")

	s.publish(ctx, mqcontracts.TaskCreatedKey, mqcontracts.TaskCreatedPayload{
		TaskID:    t.ID,
		UserID:    t.UserID,
		Title:     t.Title,
		Status:    t.Status,
		DueDate:   t.DueDate,
		CreatedAt: t.CreatedAt,
	})
	return t, nil
}

// Update loads the task, enforces ownership and applies the patch. Fields
// absent from the patch keep their stored value; only the due date can be
// cleared with an explicit null. The validated patch is written in one
// statement, so a failed update leaves the row untouched.
func (s *Service) Update(ctx context.Context, requesterID, taskID int, patch model.TaskPatch) (*model.Task, error) {
	t, err := s.load(ctx, requesterID, taskID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, apperr.Validation("title cannot be empty")
		}
		t.Title = title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Status != nil {
		if !model.IsValidStatus(*patch.Status) {
			return nil, apperr.Validation(fmt.Sprintf("invalid status %q", *patch.Status))
		}
		t.Status = *patch.Status
	}
	if patch.DueDate.Set {
		t.DueDate = patch.DueDate.Pointer()
	}

	if err := s.repo.Update(ctx, t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		metrics.IncrementTaskOperation("update", "error")
		return nil, err
	}
	metrics.IncrementTaskOperation("update", "ok")

	s.publish(ctx, mqcontracts.TaskUpdatedKey, mqcontracts.TaskUpdatedPayload{
		TaskID:    t.ID,
		UserID:    t.UserID,
		Title:     t.Title,
		Status:    t.Status,
		DueDate:   t.DueDate,
		UpdatedAt: time.Now(),
	})
	return t, nil
}

// Delete removes the task after the same existence and ownership checks
// as Update. There is no soft delete.
func (s *Service) Delete(ctx context.Context, requesterID, taskID int) error {
	t, err := s.load(ctx, requesterID, taskID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, taskID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.ErrNotFound
		}
		metrics.IncrementTaskOperation("delete", "error")
		return err
	}
	metrics.IncrementTaskOperation("delete", "ok")

	s.publish(ctx, mqcontracts.TaskDeletedKey, mqcontracts.TaskDeletedPayload{
		TaskID:    t.ID,
		UserID:    t.UserID,
		DeletedAt: time.Now(),
	})
	return nil
}

// load fetches the task and enforces the ownership rule. Existence is
// checked first: a missing task is ErrNotFound, an existing task owned by
// someone else is ErrForbidden. The two are never collapsed.
func (s *Service) load(ctx context.Context, requesterID, taskID int) (*model.Task, error) {
	t, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if t.UserID != requesterID {
		return nil, apperr.ErrForbidden
	}
	return t, nil
}

func (s *Service) publish(ctx context.Context, routingKey string, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(routingKey, payload); err != nil {
		logger.WithTrace(ctx, s.log).Warn("Failed to publish task event",
			zap.String("routing_key", routingKey),
			zap.Error(err),
		)
	}
}
