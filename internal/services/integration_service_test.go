package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omnidesk/go-gateway-backend/internal/domain"
	"github.com/omnidesk/go-gateway-backend/internal/repo"
	"github.com/omnidesk/go-gateway-backend/internal/vault"
)

func newIntegrationFixture(t *testing.T) (*gorm.DB, *IntegrationService, string) {
	t.Helper()

	db := newServiceDB(t)
	ctx := context.Background()
	if err := repo.SeedPlans(ctx, db); err != nil {
		t.Fatalf("seed plans: %v", err)
	}
	plan, err := repo.GetPlanByName(ctx, db, "growth")
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	tenant, err := repo.CreateTenant(ctx, db, "Growth Co", "growth@example.com", plan.ID)
	if err != nil {
		t.Fatalf("tenant: %v", err)
	}
	v, err := vault.New("integration-test-key")
	if err != nil {
		t.Fatalf("vault: %v", err)
	}
	return db, NewIntegrationService(db, v), tenant.ID
}

func TestSaveTelegram_EncryptsAndResolves(t *testing.T) {
	db, svc, tenantID := newIntegrationFixture(t)
	ctx := context.Background()

	in, err := svc.SaveTelegram(ctx, tenantID, "123:BOT_TOKEN", "shared-secret")
	if err != nil {
		t.Fatalf("SaveTelegram: %v", err)
	}
	if in.Status != domain.IntegrationConnected {
		t.Fatalf("status = %q", in.Status)
	}

	// Stored config carries the token only as ciphertext and the shared
	// secret in the clear.
	cfg, err := svc.Config(in)
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if cfg.Token == "123:BOT_TOKEN" || cfg.Token == "" {
		t.Fatalf("bot token stored as %q, want ciphertext", cfg.Token)
	}
	if cfg.Secret != "shared-secret" {
		t.Fatalf("secret = %q", cfg.Secret)
	}

	matched, mcfg, err := svc.ResolveTelegram(ctx, "123:BOT_TOKEN")
	if err != nil {
		t.Fatalf("ResolveTelegram: %v", err)
	}
	if matched.TenantID != tenantID || mcfg.Secret != "shared-secret" {
		t.Fatalf("resolved (%q, %+v)", matched.TenantID, mcfg)
	}

	// Connecting writes an audit trail.
	var logs []domain.SystemLog
	if err := db.Where("tenant_id = ? AND action = ?", tenantID, "connected").Find(&logs).Error; err != nil {
		t.Fatalf("logs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected one connected log, got %d", len(logs))
	}
}

func TestResolveTelegram_SkipsUndecryptableCandidates(t *testing.T) {
	db, svc, _ := newIntegrationFixture(t)
	ctx := context.Background()

	// Rows whose blob can no longer be decrypted (rotated key) or whose
	// JSON is malformed must not block resolution of the good row. Each
	// sits under its own tenant: a tenant holds at most one integration
	// per channel.
	bad := []domain.Integration{
		{ID: "bad-cipher", TenantID: uuid.NewString(), Channel: domain.ChannelTelegram,
			Status: domain.IntegrationConnected, Config: `{"token":"not-a-ciphertext"}`},
		{ID: "bad-json", TenantID: uuid.NewString(), Channel: domain.ChannelTelegram,
			Status: domain.IntegrationConnected, Config: `{`},
	}
	for i := range bad {
		if err := db.Create(&bad[i]).Error; err != nil {
			t.Fatalf("seed bad row: %v", err)
		}
	}

	other, err := repo.CreateTenant(ctx, db, "Other", "other@example.com", mustPlanID(t, db))
	if err != nil {
		t.Fatalf("tenant: %v", err)
	}
	if _, err := svc.SaveTelegram(ctx, other.ID, "good-token", ""); err != nil {
		t.Fatalf("SaveTelegram: %v", err)
	}

	matched, _, err := svc.ResolveTelegram(ctx, "good-token")
	if err != nil {
		t.Fatalf("ResolveTelegram: %v", err)
	}
	if matched.TenantID != other.ID {
		t.Fatalf("matched tenant %q, want %q", matched.TenantID, other.ID)
	}

	if _, _, err := svc.ResolveTelegram(ctx, "no-such-token"); !errors.Is(err, ErrIntegrationNotFound) {
		t.Fatalf("expected ErrIntegrationNotFound, got %v", err)
	}
}

func mustPlanID(t *testing.T, db *gorm.DB) string {
	t.Helper()
	plan, err := repo.GetPlanByName(context.Background(), db, "starter")
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	return plan.ID
}

func TestStatus_DefaultsAndDisconnect(t *testing.T) {
	db, svc, tenantID := newIntegrationFixture(t)
	ctx := context.Background()

	status, err := svc.Status(ctx, tenantID)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	for ch, connected := range status {
		if connected {
			t.Fatalf("channel %s connected before any save", ch)
		}
	}

	if _, err := svc.SaveWhatsApp(ctx, tenantID, "acc-token", "phone-1", "verify-1", "biz-1"); err != nil {
		t.Fatalf("SaveWhatsApp: %v", err)
	}
	status, err = svc.Status(ctx, tenantID)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !status[domain.ChannelWhatsApp] || status[domain.ChannelTelegram] || status[domain.ChannelInstagram] {
		t.Fatalf("unexpected status: %+v", status)
	}

	if err := svc.Disconnect(ctx, tenantID, domain.ChannelWhatsApp); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}
	status, err = svc.Status(ctx, tenantID)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status[domain.ChannelWhatsApp] {
		t.Fatalf("whatsapp still connected after disconnect")
	}

	// Disconnected rows must no longer resolve inbound events.
	if _, _, err := svc.ResolveWhatsApp(ctx, "phone-1"); !errors.Is(err, ErrIntegrationNotFound) {
		t.Fatalf("expected ErrIntegrationNotFound, got %v", err)
	}
	// The credential blob is wiped.
	in, err := repo.GetIntegration(ctx, db, tenantID, domain.ChannelWhatsApp)
	if err != nil {
		t.Fatalf("GetIntegration: %v", err)
	}
	if in.Config != "{}" {
		t.Fatalf("config after disconnect = %q", in.Config)
	}
}

func TestDisconnect_Validation(t *testing.T) {
	_, svc, tenantID := newIntegrationFixture(t)
	ctx := context.Background()

	if err := svc.Disconnect(ctx, tenantID, domain.Channel("sms")); !errors.Is(err, ErrUnsupportedChannel) {
		t.Fatalf("expected ErrUnsupportedChannel, got %v", err)
	}
	if err := svc.Disconnect(ctx, tenantID, domain.ChannelTelegram); !errors.Is(err, ErrIntegrationNotFound) {
		t.Fatalf("expected ErrIntegrationNotFound, got %v", err)
	}
}

func TestDeliveryCredentials(t *testing.T) {
	_, svc, tenantID := newIntegrationFixture(t)
	ctx := context.Background()

	tg, err := svc.SaveTelegram(ctx, tenantID, "bot-token", "")
	if err != nil {
		t.Fatalf("SaveTelegram: %v", err)
	}
	cfg, err := svc.Config(tg)
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	creds, err := svc.DeliveryCredentials(domain.ChannelTelegram, cfg)
	if err != nil {
		t.Fatalf("DeliveryCredentials: %v", err)
	}
	if creds.BotToken != "bot-token" {
		t.Fatalf("bot token = %q", creds.BotToken)
	}

	wa, err := svc.SaveWhatsApp(ctx, tenantID, "acc-token", "phone-1", "v", "")
	if err != nil {
		t.Fatalf("SaveWhatsApp: %v", err)
	}
	cfg, err = svc.Config(wa)
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	creds, err = svc.DeliveryCredentials(domain.ChannelWhatsApp, cfg)
	if err != nil {
		t.Fatalf("DeliveryCredentials: %v", err)
	}
	if creds.AccessToken != "acc-token" || creds.SenderID != "phone-1" {
		t.Fatalf("unexpected creds: %+v", creds)
	}

	if _, err := svc.DeliveryCredentials(domain.Channel("sms"), cfg); !errors.Is(err, ErrUnsupportedChannel) {
		t.Fatalf("expected ErrUnsupportedChannel, got %v", err)
	}
}
