package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// AuditLog records who changed what: master-data mutations, ledger
// postings, and night-audit runs.
type AuditLog struct {
	ID      snowflake.ID  `gorm:"primaryKey"`
	HotelID *snowflake.ID `gorm:"column:hotel_id;index"`

	Action     string            `gorm:"type:text;not null;index"`
	TargetType string            `gorm:"column:target_type;type:text;not null"`
	TargetID   *string           `gorm:"column:target_id;type:text"`
	Metadata   datatypes.JSONMap `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index"`
}

func (AuditLog) TableName() string { return "audit_logs" }

// AuditCursor is the keyset position for paging audit logs.
type AuditCursor struct {
	ID        snowflake.ID
	CreatedAt time.Time
}

type ListFilter struct {
	HotelID    snowflake.ID
	Action     string
	TargetType string
	TargetID   string
	StartAt    *time.Time
	EndAt      *time.Time
	Cursor     *AuditCursor
	Limit      int
}
