package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sync"

	"github.com/biulino/ai-summary-plugin/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const optionKey = "settings"

// Service manages the persisted Settings blob with an in-process cache.
type Service struct {
	db  *gorm.DB
	mu  sync.RWMutex
	cfg *Settings
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Get returns the current settings, loading from DB if not cached.
func (s *Service) Get() (Settings, error) {
	s.mu.RLock()
	if s.cfg != nil {
		defer s.mu.RUnlock()
		return *s.cfg, nil
	}
	s.mu.RUnlock()

	return s.load()
}

func (s *Service) load() (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var opt models.OptionModel
	err := s.db.Where("name = ?", optionKey).First(&opt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		defaults := Default()
		s.cfg = &defaults
		_ = s.persist(defaults)
		return defaults, nil
	}
	if err != nil {
		return Settings{}, err
	}

	cfg := Default()
	if err := json.Unmarshal([]byte(opt.Value), &cfg); err != nil {
		return Settings{}, fmt.Errorf("corrupt settings blob: %w", err)
	}
	s.cfg = &cfg
	return cfg, nil
}

// Patch applies a partial JSON update over the current settings and persists.
// Absent fields keep their current values.
func (s *Service) Patch(partial []byte) (Settings, error) {
	current, err := s.Get()
	if err != nil {
		return Settings{}, err
	}

	updated := current
	if err := json.Unmarshal(partial, &updated); err != nil {
		return Settings{}, fmt.Errorf("invalid settings payload: %w", err)
	}
	if err := validate(updated); err != nil {
		return Settings{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(updated); err != nil {
		return Settings{}, err
	}
	s.cfg = &updated
	return updated, nil
}

// Invalidate drops the in-process cache; the next Get reloads from DB.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.cfg = nil
	s.mu.Unlock()
}

func (s *Service) persist(cfg Settings) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"value": string(raw)}),
	}).Create(&models.OptionModel{Name: optionKey, Value: string(raw)}).Error
}

// apiKeyPattern matches the character set both providers use for keys.
var apiKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func validate(cfg Settings) error {
	switch cfg.AI.Provider {
	case models.ProviderOpenRouter, models.ProviderGemini:
	default:
		return fmt.Errorf("unknown provider %q", cfg.AI.Provider)
	}
	if cfg.AI.Temperature < 0 || cfg.AI.Temperature > 1 {
		return fmt.Errorf("temperature %.2f out of range 0.0-1.0", cfg.AI.Temperature)
	}
	if cfg.AI.MaxTokens < 1 {
		return fmt.Errorf("max_tokens must be positive")
	}
	if err := validateAPIKey(cfg.AI.Provider, cfg.AI.APIKey); err != nil {
		return err
	}
	return nil
}

// validateAPIKey rejects keys that cannot possibly work before they reach a
// provider. An empty key is allowed; generation fails cleanly until one is
// configured.
func validateAPIKey(provider, key string) error {
	if key == "" {
		return nil
	}
	if !apiKeyPattern.MatchString(key) {
		return fmt.Errorf("api_key contains invalid characters")
	}
	switch provider {
	case models.ProviderGemini:
		if len(key) != 39 {
			return fmt.Errorf("api_key has wrong length for gemini")
		}
	default:
		if len(key) < 20 {
			return fmt.Errorf("api_key is too short for openrouter")
		}
	}
	return nil
}
