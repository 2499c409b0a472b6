// Package services – AIConfigService
//
// This file implements AIConfigService, which manages a tenant's assistant
// configuration: base prompt, sampling temperature, response language, and
// an optional tenant-owned API key (vault-encrypted at rest).
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"golang.org/x/text/language"

	"github.com/omnidesk/go-gateway-backend/internal/domain"
	"github.com/omnidesk/go-gateway-backend/internal/repo"
	"github.com/omnidesk/go-gateway-backend/internal/vault"
)

// Defaults applied when a field is left blank on save.
const (
	defaultBasePrompt = "Você é um assistente útil e profissional."
	defaultLanguage   = "pt-BR"
)

// AIConfigService manages tenant assistant settings.
type AIConfigService struct {
	DB    *gorm.DB
	Vault *vault.Vault
}

// NewAIConfigService constructs an AIConfigService.
func NewAIConfigService(db *gorm.DB, v *vault.Vault) *AIConfigService {
	return &AIConfigService{DB: db, Vault: v}
}

// Get returns the tenant's assistant configuration, or defaults when the
// tenant never saved one. The API key is never returned in plaintext.
func (s *AIConfigService) Get(ctx context.Context, tenantID string) (*domain.AIConfig, error) {
	cfg, err := repo.GetAIConfig(ctx, s.DB, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &domain.AIConfig{
				TenantID:    tenantID,
				BasePrompt:  defaultBasePrompt,
				Temperature: 0.3,
				Language:    defaultLanguage,
			}, nil
		}
		return nil, err
	}
	return cfg, nil
}

// Save validates and upserts the tenant's assistant configuration. apiKey is
// the plaintext key to store (encrypted); pass "" to keep whatever key is
// already stored.
func (s *AIConfigService) Save(ctx context.Context, tenantID, basePrompt string, temperature float64, lang, apiKey string) (*domain.AIConfig, error) {
	basePrompt = strings.TrimSpace(basePrompt)
	if basePrompt == "" {
		basePrompt = defaultBasePrompt
	}
	if temperature < 0 || temperature > 2 {
		return nil, ErrInvalidTemperature
	}
	lang = strings.TrimSpace(lang)
	if lang == "" {
		lang = defaultLanguage
	}
	if _, err := language.Parse(lang); err != nil {
		return nil, ErrInvalidLanguage
	}

	encKey := ""
	if apiKey != "" {
		enc, err := s.Vault.Encrypt(apiKey)
		if err != nil {
			return nil, err
		}
		encKey = enc
	} else if existing, err := repo.GetAIConfig(ctx, s.DB, tenantID); err == nil {
		encKey = existing.APIKeyEncrypted
	}

	var out *domain.AIConfig
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cfg, err := repo.UpsertAIConfig(ctx, tx, tenantID, encKey, basePrompt, temperature, lang)
		if err != nil {
			return err
		}
		out = cfg
		_, err = repo.CreateSystemLog(ctx, tx, tenantID, "info", "config", "ai_updated", "Configuração de IA atualizada")
		return err
	})
	return out, err
}
