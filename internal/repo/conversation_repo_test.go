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

func newConvRepoDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("conv_repo_test_%d.db", time.Now().UnixNano()))
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

func TestFindOrCreateConversation_CreatesThenReuses(t *testing.T) {
	db := newConvRepoDB(t, &domain.Conversation{})
	ctx := context.Background()

	first, created, err := FindOrCreateConversation(ctx, db, "t1", domain.ChannelTelegram, "u-100")
	if err != nil {
		t.Fatalf("FindOrCreateConversation: %v", err)
	}
	if !created {
		t.Fatalf("expected created=true on first call")
	}
	if first.Status != domain.ConversationBot {
		t.Fatalf("new conversation must start in bot status, got %q", first.Status)
	}

	second, created, err := FindOrCreateConversation(ctx, db, "t1", domain.ChannelTelegram, "u-100")
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if created {
		t.Fatalf("expected created=false on second call")
	}
	if second.ID != first.ID {
		t.Fatalf("same triple must map to one conversation: %s vs %s", second.ID, first.ID)
	}
}

func TestFindOrCreateConversation_RemovedRowFreesNaturalKey(t *testing.T) {
	db := newConvRepoDB(t, &domain.Conversation{})
	ctx := context.Background()

	first, _, err := FindOrCreateConversation(ctx, db, "t1", domain.ChannelTelegram, "u-100")
	if err != nil {
		t.Fatalf("FindOrCreateConversation: %v", err)
	}
	// Rows are only ever removed out of band (tenant offboarding runs raw
	// SQL); no tombstone may keep the natural key occupied afterwards.
	if err := db.Exec("DELETE FROM conversations WHERE id = ?", first.ID).Error; err != nil {
		t.Fatalf("delete: %v", err)
	}

	again, created, err := FindOrCreateConversation(ctx, db, "t1", domain.ChannelTelegram, "u-100")
	if err != nil {
		t.Fatalf("recreate: %v", err)
	}
	if !created || again.ID == first.ID {
		t.Fatalf("expected a fresh row for the freed key, got created=%v id=%q", created, again.ID)
	}
}

func TestFindOrCreateConversation_TripleIsScoped(t *testing.T) {
	db := newConvRepoDB(t, &domain.Conversation{})
	ctx := context.Background()

	a, _, err := FindOrCreateConversation(ctx, db, "t1", domain.ChannelTelegram, "u-1")
	if err != nil {
		t.Fatalf("a: %v", err)
	}
	// Same user id on a different channel and a different tenant are
	// independent threads.
	b, _, err := FindOrCreateConversation(ctx, db, "t1", domain.ChannelWhatsApp, "u-1")
	if err != nil {
		t.Fatalf("b: %v", err)
	}
	c, _, err := FindOrCreateConversation(ctx, db, "t2", domain.ChannelTelegram, "u-1")
	if err != nil {
		t.Fatalf("c: %v", err)
	}
	if a.ID == b.ID || a.ID == c.ID || b.ID == c.ID {
		t.Fatalf("expected three distinct conversations: %s %s %s", a.ID, b.ID, c.ID)
	}
}

func TestFindOrCreateConversation_UniqueIndexEnforced(t *testing.T) {
	db := newConvRepoDB(t, &domain.Conversation{})

	seed := domain.Conversation{
		ID: "c1", TenantID: "t1", Channel: domain.ChannelTelegram,
		ExternalUserID: "u-1", Status: domain.ConversationBot,
	}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	dup := domain.Conversation{
		ID: "c2", TenantID: "t1", Channel: domain.ChannelTelegram,
		ExternalUserID: "u-1", Status: domain.ConversationBot,
	}
	if err := db.Create(&dup).Error; err == nil {
		t.Fatalf("expected unique index violation for duplicate triple")
	}
}

func TestSetConversationStatus_AssumeAndRelease(t *testing.T) {
	db := newConvRepoDB(t, &domain.Conversation{})
	ctx := context.Background()

	conv, _, err := FindOrCreateConversation(ctx, db, "t1", domain.ChannelTelegram, "u-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	operator := "op-7"
	if err := SetConversationStatus(ctx, db, conv.ID, "t1", domain.ConversationHuman, &operator); err != nil {
		t.Fatalf("assume: %v", err)
	}
	got, err := GetConversation(ctx, db, conv.ID, "t1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != domain.ConversationHuman || got.AssignedUserID == nil || *got.AssignedUserID != "op-7" {
		t.Fatalf("assume did not stick: %+v", got)
	}

	if err := SetConversationStatus(ctx, db, conv.ID, "t1", domain.ConversationBot, nil); err != nil {
		t.Fatalf("release: %v", err)
	}
	got, err = GetConversation(ctx, db, conv.ID, "t1")
	if err != nil {
		t.Fatalf("get after release: %v", err)
	}
	if got.Status != domain.ConversationBot || got.AssignedUserID != nil {
		t.Fatalf("release did not stick: %+v", got)
	}
}

func TestSetConversationStatus_NotFoundAndTenantScope(t *testing.T) {
	db := newConvRepoDB(t, &domain.Conversation{})
	ctx := context.Background()

	conv, _, err := FindOrCreateConversation(ctx, db, "t1", domain.ChannelTelegram, "u-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Wrong tenant must not see it.
	if err := SetConversationStatus(ctx, db, conv.ID, "t2", domain.ConversationHuman, nil); err != gorm.ErrRecordNotFound {
		t.Fatalf("expected ErrRecordNotFound for foreign tenant, got %v", err)
	}
	if _, err := GetConversation(ctx, db, conv.ID, "t2"); err != gorm.ErrRecordNotFound {
		t.Fatalf("expected ErrRecordNotFound on cross-tenant get, got %v", err)
	}
}

func TestListConversationsPage_OrderAndPagination(t *testing.T) {
	db := newConvRepoDB(t, &domain.Conversation{})

	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 1; i <= 5; i++ {
		c := domain.Conversation{
			ID:             fmt.Sprintf("c%d", i),
			TenantID:       "t1",
			Channel:        domain.ChannelTelegram,
			ExternalUserID: fmt.Sprintf("u%d", i),
			Status:         domain.ConversationBot,
			UpdatedAt:      base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(&c).Error; err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	page, err := ListConversationsPage(context.Background(), db, "t1", 1, 2)
	if err != nil {
		t.Fatalf("ListConversationsPage: %v", err)
	}
	// Desc by updated_at: c5,c4,c3,c2,c1 -> offset 1 limit 2 = c4,c3
	if len(page) != 2 || page[0].ID != "c4" || page[1].ID != "c3" {
		t.Fatalf("unexpected page: %+v", page)
	}

	total, err := CountConversations(context.Background(), db, "t1")
	if err != nil {
		t.Fatalf("CountConversations: %v", err)
	}
	if total != 5 {
		t.Fatalf("expected 5, got %d", total)
	}
}
