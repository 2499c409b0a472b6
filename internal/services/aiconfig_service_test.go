package services

import (
	"context"
	"errors"
	"testing"

	"github.com/omnidesk/go-gateway-backend/internal/domain"
	"github.com/omnidesk/go-gateway-backend/internal/vault"
)

func newAIConfigService(t *testing.T) *AIConfigService {
	t.Helper()
	v, err := vault.New("aiconfig-test-key")
	if err != nil {
		t.Fatalf("vault: %v", err)
	}
	return NewAIConfigService(newServiceDB(t), v)
}

func TestAIConfigGet_DefaultsWhenUnset(t *testing.T) {
	svc := newAIConfigService(t)

	cfg, err := svc.Get(context.Background(), "tenant-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if cfg.BasePrompt != defaultBasePrompt || cfg.Language != defaultLanguage || cfg.Temperature != 0.3 {
		t.Fatalf("defaults: %+v", cfg)
	}
	if cfg.APIKeyEncrypted != "" {
		t.Fatalf("default config must not carry a key")
	}
}

func TestAIConfigSave_Validation(t *testing.T) {
	svc := newAIConfigService(t)
	ctx := context.Background()

	if _, err := svc.Save(ctx, "tenant-1", "p", 2.5, "pt-BR", ""); !errors.Is(err, ErrInvalidTemperature) {
		t.Fatalf("temperature 2.5: %v", err)
	}
	if _, err := svc.Save(ctx, "tenant-1", "p", -0.1, "pt-BR", ""); !errors.Is(err, ErrInvalidTemperature) {
		t.Fatalf("temperature -0.1: %v", err)
	}
	if _, err := svc.Save(ctx, "tenant-1", "p", 0.5, "not a tag", ""); !errors.Is(err, ErrInvalidLanguage) {
		t.Fatalf("bad language: %v", err)
	}
	// Boundary values are accepted.
	if _, err := svc.Save(ctx, "tenant-1", "p", 0, "pt-BR", ""); err != nil {
		t.Fatalf("temperature 0: %v", err)
	}
	if _, err := svc.Save(ctx, "tenant-1", "p", 2, "en-US", ""); err != nil {
		t.Fatalf("temperature 2: %v", err)
	}
}

func TestAIConfigSave_EncryptsAndPreservesKey(t *testing.T) {
	svc := newAIConfigService(t)
	ctx := context.Background()

	cfg, err := svc.Save(ctx, "tenant-1", "Seja direto.", 0.7, "pt-BR", "sk-plain")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if cfg.APIKeyEncrypted == "" || cfg.APIKeyEncrypted == "sk-plain" {
		t.Fatalf("key stored as %q, want ciphertext", cfg.APIKeyEncrypted)
	}
	firstKey := cfg.APIKeyEncrypted

	// Saving without a key keeps the stored one.
	cfg, err = svc.Save(ctx, "tenant-1", "Seja direto.", 0.9, "pt-BR", "")
	if err != nil {
		t.Fatalf("Save without key: %v", err)
	}
	if cfg.APIKeyEncrypted != firstKey {
		t.Fatalf("key was replaced on key-less save")
	}
	if cfg.Temperature != 0.9 {
		t.Fatalf("temperature = %v", cfg.Temperature)
	}

	// Empty prompt falls back to the default.
	cfg, err = svc.Save(ctx, "tenant-1", "   ", 0.9, "pt-BR", "")
	if err != nil {
		t.Fatalf("Save with blank prompt: %v", err)
	}
	if cfg.BasePrompt != defaultBasePrompt {
		t.Fatalf("prompt = %q", cfg.BasePrompt)
	}

	// One row per tenant across saves.
	var count int64
	if err := svc.DB.Model(&domain.AIConfig{}).Where("tenant_id = ?", "tenant-1").Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row, got %d", count)
	}
}
