package publication

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/biulino/ai-summary-plugin/internal/models"
	"github.com/biulino/ai-summary-plugin/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// fragmentTemplate renders the embeddable summary block. Sections are
// toggled per request. Stored strings are plain text; html/template escapes
// them exactly once here.
var fragmentTemplate = template.Must(template.New("fragment").Parse(`<div class="ai-summary">
{{- if .ShowSummary}}
  <div class="ai-summary__text">
    <h3>Summary</h3>
    <p>{{.Summary.SummaryText}}</p>
  </div>
{{- end}}
{{- if and .ShowKeyPoints .Summary.KeyPoints}}
  <div class="ai-summary__key-points">
    <h3>Key Points</h3>
    <ul>
{{- range .Summary.KeyPoints}}
      <li>{{.}}</li>
{{- end}}
    </ul>
  </div>
{{- end}}
{{- if and .ShowFAQ .Summary.FAQItems}}
  <div class="ai-summary__faq">
    <h3>FAQ</h3>
{{- range .Summary.FAQItems}}
    <details>
      <summary>{{.Question}}</summary>
      <p>{{.Answer}}</p>
    </details>
{{- end}}
  </div>
{{- end}}
</div>
`))

type fragmentData struct {
	Summary       *models.SummaryModel
	ShowSummary   bool
	ShowKeyPoints bool
	ShowFAQ       bool
}

// GetFragment renders the summary as an HTML fragment for embedding. The
// `summary`, `key_points` and `faq` query parameters toggle sections and
// default to on.
func (h *Handler) GetFragment(c *gin.Context) {
	doc, err := h.documents.GetBySlug(c.Param("slug"))
	if err != nil {
		h.logger.Error("document lookup failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if doc == nil || !doc.IsPublished {
		response.NotFound(c, "Not found", "No summary is available for this document.")
		return
	}

	summary, err := h.summaries.Get(c.Request.Context(), doc.ID)
	if err != nil {
		h.logger.Error("summary lookup failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if summary == nil || !summary.HasSummary() {
		response.NotFound(c, "Not found", "No summary is available for this document.")
		return
	}

	data := fragmentData{
		Summary:       summary,
		ShowSummary:   toggle(c, "summary"),
		ShowKeyPoints: toggle(c, "key_points"),
		ShowFAQ:       toggle(c, "faq"),
	}

	var out strings.Builder
	if err := fragmentTemplate.Execute(&out, data); err != nil {
		h.logger.Error("fragment render failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(out.String()))
}

// toggle reads a boolean query parameter that defaults to true.
func toggle(c *gin.Context, name string) bool {
	switch strings.ToLower(c.Query(name)) {
	case "0", "false", "no", "off":
		return false
	default:
		return true
	}
}
