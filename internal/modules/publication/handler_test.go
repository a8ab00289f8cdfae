package publication

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/biulino/ai-summary-plugin/internal/models"
	"github.com/biulino/ai-summary-plugin/internal/modules/settings"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeDocuments struct {
	docs map[string]*models.DocumentModel
}

func (f *fakeDocuments) GetByID(id string) (*models.DocumentModel, error) {
	for _, d := range f.docs {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}

func (f *fakeDocuments) GetBySlug(slug string) (*models.DocumentModel, error) {
	return f.docs[slug], nil
}

type fakeSummaries struct {
	summaries map[string]*models.SummaryModel
}

func (f *fakeSummaries) Get(ctx context.Context, documentID string) (*models.SummaryModel, error) {
	return f.summaries[documentID], nil
}

type staticSettings struct{}

func (staticSettings) Get() (settings.Settings, error) {
	cfg := settings.Default()
	cfg.Site = settings.SiteSettings{Name: "Example", URL: "https://example.com"}
	return cfg, nil
}

func newTestRouter(docs map[string]*models.DocumentModel, summaries map[string]*models.SummaryModel) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(&fakeDocuments{docs: docs}, &fakeSummaries{summaries: summaries}, staticSettings{}, zap.NewNop())
	h.Register(r, r.Group("/api/v1"))
	return r
}

func publishedFixtures() (map[string]*models.DocumentModel, map[string]*models.SummaryModel) {
	doc := testDocument()
	doc.IsPublished = true
	return map[string]*models.DocumentModel{doc.Slug: doc},
		map[string]*models.SummaryModel{doc.ID: testSummary()}
}

func TestGetBySlug(t *testing.T) {
	docs, summaries := publishedFixtures()
	r := newTestRouter(docs, summaries)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/summary/hello-world", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "https://schema.org", body["@context"])
	assert.Equal(t, "Article", body["@type"])
	assert.Equal(t, "A summary.", body["description"])
}

func TestGetByID(t *testing.T) {
	docs, summaries := publishedFixtures()
	r := newTestRouter(docs, summaries)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/summary/id/doc-1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNotFoundCases(t *testing.T) {
	doc := testDocument()
	doc.IsPublished = true

	draft := testDocument()
	draft.Base.ID = "doc-2"
	draft.Slug = "draft"
	draft.IsPublished = false

	noSummary := testDocument()
	noSummary.Base.ID = "doc-3"
	noSummary.Slug = "no-summary"
	noSummary.IsPublished = true

	r := newTestRouter(
		map[string]*models.DocumentModel{doc.Slug: doc, draft.Slug: draft, noSummary.Slug: noSummary},
		map[string]*models.SummaryModel{doc.ID: testSummary()},
	)

	for _, path := range []string{
		"/api/v1/summary/absent",
		"/api/v1/summary/draft",
		"/api/v1/summary/no-summary",
		"/api/v1/summary/id/missing-id",
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		require.Equal(t, http.StatusNotFound, w.Code, path)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.NotEmpty(t, body["error"], path)
		assert.NotEmpty(t, body["message"], path)
	}
}

func TestGetPageHeaders(t *testing.T) {
	docs, summaries := publishedFixtures()
	r := newTestRouter(docs, summaries)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/hello-world/ai-summary", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/ld+json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))
	assert.Equal(t, "noindex, follow", w.Header().Get("X-Robots-Tag"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "https://schema.org", body["@context"])
}

func TestGetFragmentToggles(t *testing.T) {
	docs, summaries := publishedFixtures()
	r := newTestRouter(docs, summaries)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/summary/hello-world/fragment", nil))

	require.Equal(t, http.StatusOK, w.Code)
	html := w.Body.String()
	assert.Contains(t, html, "A summary.")
	assert.Contains(t, html, "point one")
	assert.Contains(t, html, "Q?")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/summary/hello-world/fragment?key_points=0&faq=false", nil))

	require.Equal(t, http.StatusOK, w.Code)
	html = w.Body.String()
	assert.Contains(t, html, "A summary.")
	assert.NotContains(t, html, "point one")
	assert.NotContains(t, html, "Q?")
}

func TestGetFragmentEscapesOnce(t *testing.T) {
	docs, summaries := publishedFixtures()
	summaries["doc-1"].SummaryText = `<script>alert("x")</script> & more`
	r := newTestRouter(docs, summaries)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/summary/hello-world/fragment", nil))

	require.Equal(t, http.StatusOK, w.Code)
	html := w.Body.String()
	// Markup in stored plain text is entity-encoded by the template,
	// exactly once.
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "&amp; more")
	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "&amp;lt;")
	assert.NotContains(t, html, "&amp;amp;")
}

func TestRobots(t *testing.T) {
	docs, summaries := publishedFixtures()
	r := newTestRouter(docs, summaries)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/robots.txt", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "User-agent: GPTBot")
	assert.Contains(t, body, "Allow: /*/ai-summary")
}
