package repo

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/omnidesk/go-gateway-backend/internal/domain"
)

func newAIConfigRepoDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("aiconfig_repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func TestGetAIConfig_NotFound(t *testing.T) {
	db := newAIConfigRepoDB(t, &domain.AIConfig{})
	if _, err := GetAIConfig(context.Background(), db, "t1"); err != gorm.ErrRecordNotFound {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestUpsertAIConfig_InsertThenUpdate(t *testing.T) {
	db := newAIConfigRepoDB(t, &domain.AIConfig{})
	ctx := context.Background()

	c, err := UpsertAIConfig(ctx, db, "t1", "enc-key", "Você é um assistente.", 0.3, "pt-BR")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if c.ID == "" || c.TenantID != "t1" || c.Temperature != 0.3 {
		t.Fatalf("unexpected config: %+v", c)
	}

	again, err := UpsertAIConfig(ctx, db, "t1", "", "Be concise.", 0.7, "en-US")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if again.ID != c.ID {
		t.Fatalf("upsert created a second row: %s vs %s", again.ID, c.ID)
	}
	if again.APIKeyEncrypted != "" || again.BasePrompt != "Be concise." || again.Language != "en-US" {
		t.Fatalf("update not applied: %+v", again)
	}

	var count int64
	if err := db.Model(&domain.AIConfig{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected single config per tenant, got %d", count)
	}
}
