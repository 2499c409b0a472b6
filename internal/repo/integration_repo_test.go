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

func newIntegrationRepoDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("integration_repo_test_%d.db", time.Now().UnixNano()))
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

func TestUpsertIntegration_InsertThenUpdate(t *testing.T) {
	db := newIntegrationRepoDB(t, &domain.Integration{})
	ctx := context.Background()

	in, err := UpsertIntegration(ctx, db, "t1", domain.ChannelTelegram, `{"bot_token":"enc1"}`)
	if err != nil {
		t.Fatalf("UpsertIntegration (insert): %v", err)
	}
	if in.ID == "" || in.Status != domain.IntegrationConnected {
		t.Fatalf("unexpected integration: %+v", in)
	}

	// Second save for the same (tenant, channel) must update in place.
	again, err := UpsertIntegration(ctx, db, "t1", domain.ChannelTelegram, `{"bot_token":"enc2"}`)
	if err != nil {
		t.Fatalf("UpsertIntegration (update): %v", err)
	}
	if again.ID != in.ID {
		t.Fatalf("upsert created a second row: %s vs %s", again.ID, in.ID)
	}
	if again.Config != `{"bot_token":"enc2"}` {
		t.Fatalf("config not replaced: %q", again.Config)
	}

	var count int64
	if err := db.Model(&domain.Integration{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected single row per (tenant, channel), got %d", count)
	}
}

func TestUpsertIntegration_DistinctChannels(t *testing.T) {
	db := newIntegrationRepoDB(t, &domain.Integration{})
	ctx := context.Background()

	if _, err := UpsertIntegration(ctx, db, "t1", domain.ChannelTelegram, "{}"); err != nil {
		t.Fatalf("telegram: %v", err)
	}
	if _, err := UpsertIntegration(ctx, db, "t1", domain.ChannelWhatsApp, "{}"); err != nil {
		t.Fatalf("whatsapp: %v", err)
	}
	list, err := ListIntegrations(ctx, db, "t1")
	if err != nil {
		t.Fatalf("ListIntegrations: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 integrations, got %d", len(list))
	}
}

func TestListConnectedIntegrations_FiltersStatusAndChannel(t *testing.T) {
	db := newIntegrationRepoDB(t, &domain.Integration{})
	ctx := context.Background()

	if _, err := UpsertIntegration(ctx, db, "t1", domain.ChannelTelegram, "{}"); err != nil {
		t.Fatalf("t1 telegram: %v", err)
	}
	if _, err := UpsertIntegration(ctx, db, "t2", domain.ChannelTelegram, "{}"); err != nil {
		t.Fatalf("t2 telegram: %v", err)
	}
	if _, err := UpsertIntegration(ctx, db, "t3", domain.ChannelWhatsApp, "{}"); err != nil {
		t.Fatalf("t3 whatsapp: %v", err)
	}
	if err := DisconnectIntegration(ctx, db, "t2", domain.ChannelTelegram); err != nil {
		t.Fatalf("disconnect t2: %v", err)
	}

	got, err := ListConnectedIntegrations(ctx, db, domain.ChannelTelegram)
	if err != nil {
		t.Fatalf("ListConnectedIntegrations: %v", err)
	}
	if len(got) != 1 || got[0].TenantID != "t1" {
		t.Fatalf("unexpected candidates: %+v", got)
	}
}

func TestDisconnectIntegration_ClearsConfig(t *testing.T) {
	db := newIntegrationRepoDB(t, &domain.Integration{})
	ctx := context.Background()

	if _, err := UpsertIntegration(ctx, db, "t1", domain.ChannelInstagram, `{"access_token":"enc"}`); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := DisconnectIntegration(ctx, db, "t1", domain.ChannelInstagram); err != nil {
		t.Fatalf("DisconnectIntegration: %v", err)
	}

	in, err := GetIntegration(ctx, db, "t1", domain.ChannelInstagram)
	if err != nil {
		t.Fatalf("GetIntegration: %v", err)
	}
	if in.Status != domain.IntegrationDisconnected || in.Config != "{}" {
		t.Fatalf("credentials not cleared: %+v", in)
	}
}

func TestDisconnectIntegration_NotFound(t *testing.T) {
	db := newIntegrationRepoDB(t, &domain.Integration{})
	if err := DisconnectIntegration(context.Background(), db, "t1", domain.ChannelTelegram); err != gorm.ErrRecordNotFound {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestGetIntegration_NotFound(t *testing.T) {
	db := newIntegrationRepoDB(t, &domain.Integration{})
	if _, err := GetIntegration(context.Background(), db, "t1", domain.ChannelTelegram); err != gorm.ErrRecordNotFound {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}
