package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type fakeCounter struct {
	counts map[string]int64
	err    error
}

func (f *fakeCounter) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if f.counts == nil {
		f.counts = map[string]int64{}
	}
	f.counts[key]++
	return f.counts[key], nil
}

var _ CounterStore = (*fakeCounter)(nil)

func limitedEngine(store CounterStore, limit int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", RateLimit(store, limit, time.Minute, zap.NewNop()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func hit(r *gin.Engine) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimit_AllowsUnderLimitThenRejects(t *testing.T) {
	r := limitedEngine(&fakeCounter{}, 3)

	for i := 0; i < 3; i++ {
		if code := hit(r); code != http.StatusOK {
			t.Fatalf("request %d = %d, want 200", i+1, code)
		}
	}
	if code := hit(r); code != http.StatusTooManyRequests {
		t.Errorf("over-limit request = %d, want 429", code)
	}
}

func TestRateLimit_NilStorePassesThrough(t *testing.T) {
	r := limitedEngine(nil, 1)

	for i := 0; i < 5; i++ {
		if code := hit(r); code != http.StatusOK {
			t.Errorf("request %d = %d, want 200 with nil store", i+1, code)
		}
	}
}

func TestRateLimit_StoreErrorFailsOpen(t *testing.T) {
	r := limitedEngine(&fakeCounter{err: errors.New("redis down")}, 1)

	for i := 0; i < 3; i++ {
		if code := hit(r); code != http.StatusOK {
			t.Errorf("request %d = %d, want 200 when store errors", i+1, code)
		}
	}
}
