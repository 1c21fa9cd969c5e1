package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"taskboard/internal/handler"
	"taskboard/internal/httpserver"
	"taskboard/internal/model"
	"taskboard/internal/service/auth"
	"taskboard/internal/service/task"
	"taskboard/internal/util"
)

const testSecret = "handler-test-secret"

// In-memory repositories mirroring the pgx contracts, shared by the
// full-router tests below.

type memUserRepo struct {
	nextID int
	users  map[string]model.User // keyed by email
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{nextID: 1, users: map[string]model.User{}}
}

func (m *memUserRepo) Create(_ context.Context, u *model.User) error {
	u.ID = m.nextID
	m.nextID++
	u.CreatedAt = time.Now()
	m.users[u.Email] = *u
	return nil
}

func (m *memUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &u, nil
}

func (m *memUserRepo) FindByID(_ context.Context, id int) (*model.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

var _ auth.UserRepository = (*memUserRepo)(nil)

type memTaskRepo struct {
	nextID int
	clock  time.Time
	tasks  map[int]model.Task
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{
		nextID: 1,
		clock:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		tasks:  map[int]model.Task{},
	}
}

func (m *memTaskRepo) Insert(_ context.Context, t *model.Task) error {
	t.ID = m.nextID
	m.nextID++
	m.clock = m.clock.Add(time.Second)
	t.CreatedAt = m.clock
	m.tasks[t.ID] = *t
	return nil
}

func (m *memTaskRepo) ListByOwner(_ context.Context, ownerID int, status string) ([]model.Task, error) {
	out := []model.Task{}
	for _, t := range m.tasks {
		if t.UserID != ownerID {
			continue
		}
		if status != "" && t.Status != status {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *memTaskRepo) FindByID(_ context.Context, id int) (*model.Task, error) {
	t, ok := m.tasks[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &t, nil
}

func (m *memTaskRepo) Update(_ context.Context, t *model.Task) error {
	if _, ok := m.tasks[t.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := m.tasks[t.ID]
	stored.Title = t.Title
	stored.Description = t.Description
	stored.Status = t.Status
	stored.DueDate = t.DueDate
	m.tasks[t.ID] = stored
	return nil
}

func (m *memTaskRepo) Delete(_ context.Context, id int) error {
	if _, ok := m.tasks[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.tasks, id)
	return nil
}

var _ task.Repository = (*memTaskRepo)(nil)

type testEnv struct {
	engine   *gin.Engine
	taskRepo *memTaskRepo
	userRepo *memUserRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zap.NewNop()
	userRepo := newMemUserRepo()
	taskRepo := newMemTaskRepo()

	authService := auth.NewService(userRepo, testSecret)
	taskService := task.NewService(taskRepo, nil, log)

	authHandler := handler.NewAuthHandler(authService, log)
	taskHandler := handler.NewTaskHandler(taskService, log)

	router := httpserver.NewRouter(authHandler, taskHandler, testSecret, nil, log, nil, nil)
	return &testEnv{engine: router.Engine, taskRepo: taskRepo, userRepo: userRepo}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

// doRaw sends a raw JSON string body, for patches where the exact
// presence or absence of keys matters.
func (e *testEnv) doRaw(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func (e *testEnv) token(t *testing.T, userID int) string {
	t.Helper()
	token, err := util.GenerateJWT(userID, testSecret)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	return token
}

func decodeTask(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}
