package admin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/biulino/ai-summary-plugin/internal/models"
	"github.com/biulino/ai-summary-plugin/internal/modules/processing/prepare"
	"github.com/biulino/ai-summary-plugin/internal/modules/processing/summarize"
	"github.com/biulino/ai-summary-plugin/internal/modules/settings"
	"github.com/biulino/ai-summary-plugin/internal/pkg/jwt"
	"github.com/biulino/ai-summary-plugin/internal/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeDocs struct {
	docs map[string]*models.DocumentModel
}

func (f *fakeDocs) GetByID(id string) (*models.DocumentModel, error) {
	return f.docs[id], nil
}

func (f *fakeDocs) ListPublishedIDs(offset, limit int) ([]string, error) {
	ids := make([]string, 0, len(f.docs))
	for id := range f.docs {
		ids = append(ids, id)
	}
	if offset >= len(ids) {
		return nil, nil
	}
	ids = ids[offset:]
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

type fakeSummaryStore struct {
	mu        sync.Mutex
	summaries map[string]*models.SummaryModel
}

func newFakeSummaryStore() *fakeSummaryStore {
	return &fakeSummaryStore{summaries: map[string]*models.SummaryModel{}}
}

func (f *fakeSummaryStore) Get(ctx context.Context, documentID string) (*models.SummaryModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.summaries[documentID]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeSummaryStore) Set(ctx context.Context, summary *models.SummaryModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *summary
	f.summaries[summary.DocumentID] = &cp
	return nil
}

func (f *fakeSummaryStore) Delete(ctx context.Context, documentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.summaries, documentID)
	return nil
}

func (f *fakeSummaryStore) CachedResponse(ctx context.Context, content string) string { return "" }

func (f *fakeSummaryStore) CacheResponse(ctx context.Context, content, raw string) {}

func (f *fakeSummaryStore) ClearCache(ctx context.Context) (int64, error) { return 0, nil }

func (f *fakeSummaryStore) Stats(ctx context.Context) (*summarize.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &summarize.Stats{Total: int64(len(f.summaries)), ByProvider: map[string]int64{}}, nil
}

type staticSettings struct{ cfg settings.Settings }

func (s *staticSettings) Get() (settings.Settings, error) { return s.cfg, nil }

// newTestRouter wires a real pipeline over fakes. The settings carry no API
// key, so any generation attempt fails before reaching a provider.
func newTestRouter(docs map[string]*models.DocumentModel) (*gin.Engine, *fakeSummaryStore) {
	gin.SetMode(gin.TestMode)

	store := newFakeSummaryStore()
	resolver := &fakeDocs{docs: docs}
	pipeline := summarize.NewPipeline(
		resolver, prepare.New(), store, &staticSettings{cfg: settings.Default()}, nil, zap.NewNop())

	h := NewHandler(pipeline, resolver, store, jwt.NewSigner("test-secret"), "admin-key",
		metrics.NewRecorder(), zap.NewNop())

	r := gin.New()
	rg := r.Group("/api/v1/admin")
	h.RegisterLogin(rg)
	h.RegisterRoutes(rg, func(c *gin.Context) { c.Next() })
	return r, store
}

func TestLogin(t *testing.T) {
	r, _ := newTestRouter(nil)

	t.Run("valid key", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/login",
			strings.NewReader(`{"key": "admin-key"}`))
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "token")
	})

	t.Run("wrong key", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/login",
			strings.NewReader(`{"key": "nope"}`))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGenerateOneStatusCodes(t *testing.T) {
	r, _ := newTestRouter(map[string]*models.DocumentModel{
		"d1": {Base: models.Base{ID: "d1"}, Text: "Body.", IsPublished: true},
	})

	t.Run("missing document is 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/admin/generate/absent", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("generation failure is 500", func(t *testing.T) {
		// The document exists but no API key is configured, so the
		// pipeline fails. That is a server-side problem, not a 404.
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/admin/generate/d1", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestGenerateBulkShape(t *testing.T) {
	r, _ := newTestRouter(map[string]*models.DocumentModel{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/generate",
		strings.NewReader(`{"batch_size": 5}`))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"completed":true`)
	assert.Contains(t, body, `"next_offset":0`)
}

func TestDeleteSummary(t *testing.T) {
	r, store := newTestRouter(nil)
	require.NoError(t, store.Set(context.Background(), &models.SummaryModel{
		DocumentID: "d1", SummaryText: "x", Done: true,
	}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/admin/summary/d1", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	got, err := store.Get(context.Background(), "d1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRuntimeMetrics(t *testing.T) {
	r, _ := newTestRouter(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "api_calls")
	assert.Contains(t, w.Body.String(), "cache_hit_rate")
}
