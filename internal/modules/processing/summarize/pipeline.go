package summarize

import (
	"context"
	"time"

	"github.com/biulino/ai-summary-plugin/internal/models"
	"github.com/biulino/ai-summary-plugin/internal/modules/processing/prepare"
	"github.com/biulino/ai-summary-plugin/internal/modules/settings"
	"github.com/biulino/ai-summary-plugin/internal/pkg/batch"
	"github.com/biulino/ai-summary-plugin/internal/pkg/metrics"
	"go.uber.org/zap"
)

// bulkPace spaces consecutive provider calls in a bulk run.
const bulkPace = time.Second

// documentResolver is the slice of the document service the pipeline needs.
type documentResolver interface {
	GetByID(id string) (*models.DocumentModel, error)
}

// settingsSource yields the current runtime settings.
type settingsSource interface {
	Get() (settings.Settings, error)
}

// summaryStore is the persistence surface the pipeline writes through.
type summaryStore interface {
	Get(ctx context.Context, documentID string) (*models.SummaryModel, error)
	Set(ctx context.Context, summary *models.SummaryModel) error
	CachedResponse(ctx context.Context, content string) string
	CacheResponse(ctx context.Context, content, raw string)
}

// Pipeline drives summary generation end to end: resolve, prepare, dispatch,
// validate, persist. It never returns an error to its callers; every failure
// is logged and reported as a boolean so one bad document cannot take down a
// bulk run or a save hook.
type Pipeline struct {
	documents documentResolver
	preparer  *prepare.Preparer
	store     summaryStore
	settings  settingsSource
	metrics   *metrics.Recorder
	logger    *zap.Logger

	// newClient resolves a provider name to a client; tests swap it out.
	newClient func(provider string) (Client, error)
}

func NewPipeline(
	documents documentResolver,
	preparer *prepare.Preparer,
	store summaryStore,
	source settingsSource,
	recorder *metrics.Recorder,
	logger *zap.Logger,
) *Pipeline {
	return &Pipeline{
		documents: documents,
		preparer:  preparer,
		store:     store,
		settings:  source,
		metrics:   recorder,
		logger:    logger,
		newClient: NewClient,
	}
}

// Generate produces and persists a summary for one document. Returns true on
// success, and true without doing work when a valid summary already exists
// and force is false.
func (p *Pipeline) Generate(ctx context.Context, documentID string, force bool) bool {
	log := p.logger.With(zap.String("document_id", documentID))

	doc, err := p.documents.GetByID(documentID)
	if err != nil {
		log.Error("document lookup failed", zap.Error(err))
		return false
	}
	if doc == nil {
		log.Warn("generation aborted", zap.Error(ErrDocumentNotFound))
		return false
	}

	if !force {
		existing, err := p.store.Get(ctx, documentID)
		if err != nil {
			log.Error("summary lookup failed", zap.Error(err))
			return false
		}
		if existing != nil && existing.Done && existing.HasSummary() {
			return true
		}
	}

	start := time.Now()

	cfg, err := p.settings.Get()
	if err != nil {
		log.Error("settings unavailable", zap.Error(err))
		return p.finish(start, false)
	}

	content, err := p.preparer.Prepare(doc)
	if err != nil {
		log.Warn("content preparation failed", zap.Error(err))
		return p.finish(start, false)
	}

	raw, provider, ok := p.dispatch(ctx, log, content, cfg, force)
	if !ok {
		return p.finish(start, false)
	}

	validated, err := ValidateRaw(raw)
	if err != nil {
		log.Warn("provider response rejected", zap.String("provider", provider), zap.Error(err))
		return p.finish(start, false)
	}

	summary := &models.SummaryModel{
		DocumentID:  documentID,
		SummaryText: validated.SummaryText,
		KeyPoints:   validated.KeyPoints,
		FAQItems:    validated.FAQItems,
		Provider:    provider,
		GeneratedAt: time.Now(),
		Done:        true,
	}
	if err := p.store.Set(ctx, summary); err != nil {
		log.Error("summary persist failed", zap.Error(err))
		return p.finish(start, false)
	}

	log.Info("summary generated", zap.String("provider", provider), zap.Duration("took", time.Since(start)))
	return p.finish(start, true)
}

func (p *Pipeline) finish(start time.Time, ok bool) bool {
	p.metrics.Generation(time.Since(start), ok)
	return ok
}

// dispatch returns a raw provider response for the prepared content, serving
// it from the response cache when a call with identical content ran recently.
// A forced regeneration always reaches the provider; the cache is only
// written, never read, so the response reflects the current configuration.
func (p *Pipeline) dispatch(ctx context.Context, log *zap.Logger, content string, cfg settings.Settings, force bool) (raw, provider string, ok bool) {
	if !force {
		if cached := p.store.CachedResponse(ctx, content); cached != "" {
			return cached, cfg.AI.Provider, true
		}
	}

	client, err := p.newClient(cfg.AI.Provider)
	if err != nil {
		log.Error("provider unavailable", zap.Error(err))
		return "", "", false
	}

	prompt := BuildPrompt(cfg.AI.Language, content)
	p.metrics.APICall()
	raw, err = client.Generate(ctx, prompt, providerConfig(cfg, client.Name()))
	if err != nil {
		log.Warn("provider call failed", zap.String("provider", client.Name()), zap.Error(err))
		return "", "", false
	}

	p.store.CacheResponse(ctx, content, raw)
	return raw, client.Name(), true
}

func providerConfig(cfg settings.Settings, provider string) ProviderConfig {
	pc := ProviderConfig{
		APIKey:      cfg.AI.APIKey,
		Temperature: cfg.AI.Temperature,
		MaxTokens:   cfg.AI.MaxTokens,
		Referer:     cfg.Site.URL,
		Title:       cfg.Site.Name,
	}
	switch provider {
	case models.ProviderGemini:
		pc.Model = cfg.AI.GeminiModel
	default:
		pc.Model = cfg.AI.OpenRouterModel
	}
	return pc
}

// MaybeGenerateOnSave runs generation after a document save when
// auto-generation is enabled. Unpublished documents and documents that
// already carry a finished summary are left alone.
func (p *Pipeline) MaybeGenerateOnSave(ctx context.Context, doc *models.DocumentModel) {
	cfg, err := p.settings.Get()
	if err != nil || !cfg.AI.AutoGenerate {
		return
	}
	if !doc.IsPublished {
		return
	}

	existing, err := p.store.Get(ctx, doc.ID)
	if err == nil && existing != nil && existing.Done && existing.HasSummary() {
		return
	}
	p.Generate(ctx, doc.ID, false)
}

// BulkGenerate runs generation over a batch of document IDs, one at a time
// with pacing between provider calls. Documents that already carry a finished
// summary are counted as skipped without touching a provider.
func (p *Pipeline) BulkGenerate(ctx context.Context, ids []string, force bool) batch.Result {
	runner := batch.Runner{
		Fn: func(ctx context.Context, id string) (batch.Outcome, error) {
			if !force {
				existing, err := p.store.Get(ctx, id)
				if err == nil && existing != nil && existing.Done && existing.HasSummary() {
					return batch.Skipped, nil
				}
			}
			if p.Generate(ctx, id, force) {
				return batch.Success, nil
			}
			return batch.Failed, nil
		},
		Pace: batch.SleepPace(bulkPace),
	}
	return runner.Run(ctx, ids)
}
