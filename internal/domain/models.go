// Package domain defines the persistence models for the messaging gateway:
// tenants, plans, channel integrations, conversations, messages, and the
// append-only notification/audit records written by the inbound pipeline.
// These types are mapped with GORM and shared across the repository and
// service layers. Every row except Plan belongs to exactly one tenant, and
// every query in the repo layer is scoped by tenant id.
package domain

import "time"

// Channel identifies one of the supported messaging providers. Each channel
// has its own webhook payload shape and verification strategy.
type Channel string

// Supported channels.
const (
	ChannelTelegram  Channel = "telegram"
	ChannelWhatsApp  Channel = "whatsapp"
	ChannelInstagram Channel = "instagram"
)

// Valid reports whether c is one of the supported channels.
func (c Channel) Valid() bool {
	switch c {
	case ChannelTelegram, ChannelWhatsApp, ChannelInstagram:
		return true
	}
	return false
}

// Integration lifecycle statuses.
const (
	IntegrationConnected    = "connected"
	IntegrationDisconnected = "disconnected"
)

// Conversation statuses. A conversation starts in "bot" and moves to "human"
// when an operator assumes it; while human-owned the pipeline stores inbound
// messages but never generates AI replies.
const (
	ConversationBot   = "bot"
	ConversationHuman = "human"
)

// Message senders.
const (
	SenderCustomer = "customer"
	SenderHuman    = "human"
	SenderAI       = "ai"
)

// Plan is an immutable quota descriptor shared by tenants. The pipeline only
// ever reads plans; rows are seeded at startup and changed out-of-band.
type Plan struct {
	ID            string    `json:"id"              gorm:"type:char(36);primaryKey"`
	Name          string    `json:"name"            gorm:"type:varchar(50);not null;uniqueIndex"`
	MaxUsers      int       `json:"max_users"       gorm:"not null;default:3"`
	MaxChannels   int       `json:"max_channels"    gorm:"not null;default:1"`
	MaxAIMessages int       `json:"max_ai_messages" gorm:"not null;default:300"`
	MaxStorageMB  int       `json:"max_storage_mb"  gorm:"not null;default:100"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName returns the database table name for Plan.
func (Plan) TableName() string { return "plans" }

// Tenant is the isolation boundary: an account owning its integrations,
// conversations, quota, and audit trail. (Historically called "client".)
type Tenant struct {
	ID        string    `json:"id"      gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name"    gorm:"type:varchar(200);not null"`
	Email     string    `json:"email"   gorm:"type:varchar(200);not null;uniqueIndex"`
	PlanID    string    `json:"plan_id" gorm:"type:char(36);not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Tenant.
func (Tenant) TableName() string { return "tenants" }

// Integration holds a tenant's connected credentials for one channel. The
// unique (tenant_id, channel) index makes the save path an upsert by
// construction, so at most one row per channel can ever match an inbound
// webhook for a tenant.
//
// Config is a channel-specific JSON blob. Secrets inside it (telegram bot
// token, meta access tokens) are encrypted by the credential vault before
// the blob is stored; plaintext identifiers (phone_number_id, page_id) stay
// queryable.
type Integration struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	TenantID  string    `json:"tenant_id" gorm:"type:char(36);not null;uniqueIndex:ux_tenant_channel,priority:1"`
	Channel   Channel   `json:"channel"   gorm:"type:varchar(20);not null;uniqueIndex:ux_tenant_channel,priority:2;index"`
	Status    string    `json:"status"    gorm:"type:varchar(20);not null;default:'disconnected'"`
	Config    string    `json:"-"         gorm:"type:text;not null;default:'{}'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Integration.
func (Integration) TableName() string { return "integrations" }

// AIConfig is a tenant's assistant configuration. APIKeyEncrypted holds the
// tenant's own completion-service key, vault-encrypted; when empty the
// platform-wide default key is used instead.
type AIConfig struct {
	ID              string    `json:"id"          gorm:"type:char(36);primaryKey"`
	TenantID        string    `json:"tenant_id"   gorm:"type:char(36);not null;uniqueIndex"`
	APIKeyEncrypted string    `json:"-"           gorm:"type:text"`
	BasePrompt      string    `json:"base_prompt" gorm:"type:text;not null;default:'Você é um assistente útil e profissional.'"`
	Temperature     float64   `json:"temperature" gorm:"not null;default:0.3"`
	Language        string    `json:"language"    gorm:"type:varchar(10);not null;default:'pt-BR'"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName returns the database table name for AIConfig.
func (AIConfig) TableName() string { return "ai_configs" }

// Conversation is the thread with one external end-user on one channel. The
// (tenant_id, channel, external_user_id) triple is the natural key; the
// unique index guarantees at most one row per triple even under concurrent
// duplicate webhook deliveries. Conversations are never deleted, so the
// natural key stays claimable by exactly one row for the life of the tenant.
type Conversation struct {
	ID             string    `json:"id"               gorm:"type:char(36);primaryKey"`
	TenantID       string    `json:"tenant_id"        gorm:"type:char(36);not null;uniqueIndex:ux_tenant_channel_peer,priority:1"`
	Channel        Channel   `json:"channel"          gorm:"type:varchar(20);not null;uniqueIndex:ux_tenant_channel_peer,priority:2"`
	ExternalUserID string    `json:"external_user_id" gorm:"type:varchar(200);not null;uniqueIndex:ux_tenant_channel_peer,priority:3"`
	Status         string    `json:"status"           gorm:"type:varchar(20);not null;default:'bot'"`
	AssignedUserID *string   `json:"assigned_user_id,omitempty" gorm:"type:varchar(64)"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName returns the database table name for Conversation.
func (Conversation) TableName() string { return "conversations" }

// Message is a single utterance within a conversation. Messages are
// append-only: never updated or deleted once written, ordered by creation
// time. Sender is one of "customer", "human", or "ai".
type Message struct {
	ID             string    `json:"id"              gorm:"type:char(36);primaryKey"`
	ConversationID string    `json:"conversation_id" gorm:"type:char(36);not null;index:idx_conv_msgs,priority:1"`
	Sender         string    `json:"sender"          gorm:"type:varchar(20);not null;index;check:sender IN ('customer','human','ai')"`
	Content        string    `json:"content"         gorm:"type:text;not null"`
	CreatedAt      time.Time `json:"created_at"      gorm:"index:idx_conv_msgs,priority:2"`

	// Conversation is the parent thread. Messages are cascade-deleted if
	// their conversation is removed.
	Conversation Conversation `json:"-" gorm:"foreignKey:ConversationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Message.
func (Message) TableName() string { return "messages" }

// Notification is a tenant-scoped, append-only side-effect record emitted by
// the pipeline (new_conversation, ai_response, plan_limit, ...). The
// pipeline writes and never reads these rows.
type Notification struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	TenantID  string    `json:"tenant_id"  gorm:"type:char(36);not null;index"`
	UserID    *string   `json:"user_id,omitempty" gorm:"type:varchar(64)"`
	Type      string    `json:"type"       gorm:"type:varchar(50);not null"`
	Content   string    `json:"content"    gorm:"type:text;not null"`
	Read      bool      `json:"read"       gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for Notification.
func (Notification) TableName() string { return "notifications" }

// SystemLog is the tenant-scoped audit trail written by the pipeline and the
// integration management endpoints. Append-only, write-only from the
// pipeline's perspective.
type SystemLog struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	TenantID  string    `json:"tenant_id"  gorm:"type:char(36);not null;index"`
	Level     string    `json:"level"      gorm:"type:varchar(20);not null;default:'info'"`
	Category  string    `json:"category"   gorm:"type:varchar(50);not null;index"`
	Action    string    `json:"action"     gorm:"type:varchar(100);not null"`
	Details   string    `json:"details"    gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for SystemLog.
func (SystemLog) TableName() string { return "system_logs" }
