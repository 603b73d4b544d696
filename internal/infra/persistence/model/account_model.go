// Package model holds the GORM-specific persistence structs. Domain
// entities never carry GORM tags; mapping happens in the postgres package.
package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table.
type AccountModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email              string    `gorm:"type:varchar(255);unique;not null"`
	Name               string    `gorm:"type:varchar(100);not null"`
	Role               string    `gorm:"type:varchar(20);not null;default:'user';index"`
	Status             string    `gorm:"type:varchar(20);not null;default:'active'"`
	SubscriptionStatus string    `gorm:"type:varchar(20);not null;default:'free'"`
	PaymentStatus      string    `gorm:"type:varchar(20);not null;default:'none'"`
	Age                int
	Weight             float64 `gorm:"type:decimal(5,2)"`
	Height             float64 `gorm:"type:decimal(5,2)"`
	ActivityLevel      string  `gorm:"type:varchar(20);default:'moderate'"`
	Goal               string  `gorm:"type:varchar(20);default:'maintain'"`
	DailyGoal          int     `gorm:"default:2000"`
	CreatedAt          time.Time
	LastLogin          time.Time

	Credential *CredentialModel `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}

// CredentialModel mirrors the 'credentials' table, keeping secret
// material out of the accounts table.
type CredentialModel struct {
	AccountID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (CredentialModel) TableName() string {
	return "credentials"
}

// SystemSettingModel mirrors the 'system_settings' key-value table.
type SystemSettingModel struct {
	Key       string `gorm:"type:varchar(100);primaryKey"`
	Value     string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (SystemSettingModel) TableName() string {
	return "system_settings"
}

// SubscriptionEventModel mirrors the append-only 'subscription_history' table.
type SubscriptionEventModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Action      string    `gorm:"type:varchar(20);not null"`
	OldStatus   string    `gorm:"type:varchar(20)"`
	NewStatus   string    `gorm:"type:varchar(20)"`
	Reason      string    `gorm:"type:text"`
	PerformedBy uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (SubscriptionEventModel) TableName() string {
	return "subscription_history"
}
