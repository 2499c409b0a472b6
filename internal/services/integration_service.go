// Package services – IntegrationService
//
// This file implements IntegrationService, which owns the lifecycle of a
// tenant's channel integrations: connecting credentials, disconnecting, and
// resolving an inbound webhook event to the tenant that owns it.
//
// Credentials are stored as a JSON blob per integration. Secret fields (the
// Telegram bot token, Meta access tokens) are encrypted with the credential
// vault before persisting; routing identifiers (phone_number_id, page_id,
// verify_token) stay plaintext so resolution can match on them without
// decrypting every row.
package services

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/omnidesk/go-gateway-backend/internal/domain"
	"github.com/omnidesk/go-gateway-backend/internal/outbound"
	"github.com/omnidesk/go-gateway-backend/internal/repo"
	"github.com/omnidesk/go-gateway-backend/internal/vault"
)

// IntegrationConfig is the decoded per-channel credential blob. Secret fields
// hold vault ciphertext at rest; Decrypt* helpers return plaintext.
type IntegrationConfig struct {
	// Telegram
	Token  string `json:"token,omitempty"`  // encrypted bot token
	Secret string `json:"secret,omitempty"` // optional shared secret for webhook verification

	// WhatsApp
	PhoneNumberID     string `json:"phone_number_id,omitempty"`
	VerifyToken       string `json:"verify_token,omitempty"`
	BusinessAccountID string `json:"business_account_id,omitempty"`

	// Meta channels (WhatsApp, Instagram)
	AccessToken string `json:"access_token,omitempty"` // encrypted

	// Instagram
	PageID string `json:"page_id,omitempty"`
}

// IntegrationService manages channel credentials for tenants.
type IntegrationService struct {
	DB    *gorm.DB
	Vault *vault.Vault
}

// NewIntegrationService constructs an IntegrationService.
func NewIntegrationService(db *gorm.DB, v *vault.Vault) *IntegrationService {
	return &IntegrationService{DB: db, Vault: v}
}

// SaveTelegram connects (or reconnects) a tenant's Telegram bot. The bot
// token is encrypted at rest; the optional shared secret stays plaintext so
// webhook verification can compare it without a vault round trip.
func (s *IntegrationService) SaveTelegram(ctx context.Context, tenantID, botToken, secretToken string) (*domain.Integration, error) {
	enc, err := s.Vault.Encrypt(botToken)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, tenantID, domain.ChannelTelegram, IntegrationConfig{
		Token:  enc,
		Secret: secretToken,
	})
}

// SaveWhatsApp connects a tenant's WhatsApp Cloud API number.
func (s *IntegrationService) SaveWhatsApp(ctx context.Context, tenantID, accessToken, phoneNumberID, verifyToken, businessAccountID string) (*domain.Integration, error) {
	enc, err := s.Vault.Encrypt(accessToken)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, tenantID, domain.ChannelWhatsApp, IntegrationConfig{
		AccessToken:       enc,
		PhoneNumberID:     phoneNumberID,
		VerifyToken:       verifyToken,
		BusinessAccountID: businessAccountID,
	})
}

// SaveInstagram connects a tenant's Instagram page.
func (s *IntegrationService) SaveInstagram(ctx context.Context, tenantID, accessToken, pageID string) (*domain.Integration, error) {
	enc, err := s.Vault.Encrypt(accessToken)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, tenantID, domain.ChannelInstagram, IntegrationConfig{
		AccessToken: enc,
		PageID:      pageID,
	})
}

// save upserts the integration row and records the audit log and operator
// notification in the same transaction.
func (s *IntegrationService) save(ctx context.Context, tenantID string, ch domain.Channel, cfg IntegrationConfig) (*domain.Integration, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}

	var out *domain.Integration
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		in, err := repo.UpsertIntegration(ctx, tx, tenantID, ch, string(raw))
		if err != nil {
			return err
		}
		if _, err := repo.CreateSystemLog(ctx, tx, tenantID, "info", "integration", "connected", string(ch)+" conectado"); err != nil {
			return err
		}
		if _, err := repo.CreateNotification(ctx, tx, tenantID, nil, "integration_connected", "Integração "+string(ch)+" conectada"); err != nil {
			return err
		}
		out = in
		return nil
	})
	return out, err
}

// Disconnect flips the tenant's integration for ch to disconnected and wipes
// its stored credentials.
func (s *IntegrationService) Disconnect(ctx context.Context, tenantID string, ch domain.Channel) error {
	if !ch.Valid() {
		return ErrUnsupportedChannel
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.DisconnectIntegration(ctx, tx, tenantID, ch); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrIntegrationNotFound
			}
			return err
		}
		if _, err := repo.CreateSystemLog(ctx, tx, tenantID, "info", "integration", "disconnected", string(ch)+" desconectado"); err != nil {
			return err
		}
		if _, err := repo.CreateNotification(ctx, tx, tenantID, nil, "integration_disconnected", "Integração "+string(ch)+" desconectada"); err != nil {
			return err
		}
		return nil
	})
}

// Status reports, per channel, whether the tenant has a connected
// integration. Channels never connected report false.
func (s *IntegrationService) Status(ctx context.Context, tenantID string) (map[domain.Channel]bool, error) {
	rows, err := repo.ListIntegrations(ctx, s.DB, tenantID)
	if err != nil {
		return nil, err
	}
	out := map[domain.Channel]bool{
		domain.ChannelTelegram:  false,
		domain.ChannelWhatsApp:  false,
		domain.ChannelInstagram: false,
	}
	for _, r := range rows {
		out[r.Channel] = r.Status == domain.IntegrationConnected
	}
	return out, nil
}

// Config decodes an integration's credential blob. Secret fields remain
// encrypted.
func (s *IntegrationService) Config(in *domain.Integration) (IntegrationConfig, error) {
	var cfg IntegrationConfig
	if err := json.Unmarshal([]byte(in.Config), &cfg); err != nil {
		return IntegrationConfig{}, err
	}
	return cfg, nil
}

// ResolveTelegram scans connected Telegram integrations, decrypting each
// stored bot token until one equals the token carried by the inbound update.
// Rows whose ciphertext fails to decrypt (rotated vault key, corrupt blob)
// are skipped rather than failing the whole resolution. Returns the matched
// integration and its decoded config, or ErrIntegrationNotFound.
func (s *IntegrationService) ResolveTelegram(ctx context.Context, token string) (*domain.Integration, IntegrationConfig, error) {
	tr := otel.Tracer("services/IntegrationService")
	ctx, span := tr.Start(ctx, "ResolveTelegram")
	defer span.End()

	candidates, err := repo.ListConnectedIntegrations(ctx, s.DB, domain.ChannelTelegram)
	if err != nil {
		return nil, IntegrationConfig{}, err
	}
	span.SetAttributes(attribute.Int("candidates", len(candidates)))

	for i := range candidates {
		cfg, err := s.Config(&candidates[i])
		if err != nil {
			continue
		}
		plain, err := s.Vault.Decrypt(cfg.Token)
		if err != nil {
			// Undecryptable candidate; keep scanning.
			continue
		}
		if plain == token {
			return &candidates[i], cfg, nil
		}
	}
	return nil, IntegrationConfig{}, ErrIntegrationNotFound
}

// ResolveWhatsApp matches an inbound event's phone_number_id to the connected
// integration that owns it.
func (s *IntegrationService) ResolveWhatsApp(ctx context.Context, phoneNumberID string) (*domain.Integration, IntegrationConfig, error) {
	return s.resolveMeta(ctx, domain.ChannelWhatsApp, func(cfg IntegrationConfig) bool {
		return cfg.PhoneNumberID == phoneNumberID
	})
}

// ResolveInstagram matches an inbound event's page id to the connected
// integration that owns it.
func (s *IntegrationService) ResolveInstagram(ctx context.Context, pageID string) (*domain.Integration, IntegrationConfig, error) {
	return s.resolveMeta(ctx, domain.ChannelInstagram, func(cfg IntegrationConfig) bool {
		return cfg.PageID == pageID
	})
}

func (s *IntegrationService) resolveMeta(ctx context.Context, ch domain.Channel, match func(IntegrationConfig) bool) (*domain.Integration, IntegrationConfig, error) {
	tr := otel.Tracer("services/IntegrationService")
	ctx, span := tr.Start(ctx, "resolveMeta",
		trace.WithAttributes(attribute.String("channel", string(ch))),
	)
	defer span.End()

	candidates, err := repo.ListConnectedIntegrations(ctx, s.DB, ch)
	if err != nil {
		return nil, IntegrationConfig{}, err
	}
	for i := range candidates {
		cfg, err := s.Config(&candidates[i])
		if err != nil {
			continue
		}
		if match(cfg) {
			return &candidates[i], cfg, nil
		}
	}
	return nil, IntegrationConfig{}, ErrIntegrationNotFound
}

// DeliveryCredentials decrypts the secrets a send call needs for the given
// channel config.
func (s *IntegrationService) DeliveryCredentials(ch domain.Channel, cfg IntegrationConfig) (outbound.Credentials, error) {
	switch ch {
	case domain.ChannelTelegram:
		token, err := s.Vault.Decrypt(cfg.Token)
		if err != nil {
			return outbound.Credentials{}, err
		}
		return outbound.Credentials{BotToken: token}, nil
	case domain.ChannelWhatsApp:
		token, err := s.Vault.Decrypt(cfg.AccessToken)
		if err != nil {
			return outbound.Credentials{}, err
		}
		return outbound.Credentials{AccessToken: token, SenderID: cfg.PhoneNumberID}, nil
	case domain.ChannelInstagram:
		token, err := s.Vault.Decrypt(cfg.AccessToken)
		if err != nil {
			return outbound.Credentials{}, err
		}
		return outbound.Credentials{AccessToken: token, SenderID: cfg.PageID}, nil
	default:
		return outbound.Credentials{}, ErrUnsupportedChannel
	}
}

// MatchVerifyToken reports whether any connected WhatsApp integration uses
// the given hub.verify_token. Used by the Meta subscription handshake.
func (s *IntegrationService) MatchVerifyToken(ctx context.Context, verifyToken string) (bool, error) {
	rows, err := repo.ListConnectedIntegrations(ctx, s.DB, domain.ChannelWhatsApp)
	if err != nil {
		return false, err
	}
	for i := range rows {
		cfg, err := s.Config(&rows[i])
		if err != nil {
			continue
		}
		if cfg.VerifyToken != "" && cfg.VerifyToken == verifyToken {
			return true, nil
		}
	}
	return false, nil
}
