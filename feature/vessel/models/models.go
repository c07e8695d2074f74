package models

import (
	"time"

	"vessel-manager/core/reconcile"
)

// Vessel is the stored vessel row: the canonical record plus bookkeeping.
type Vessel struct {
	ID uint `json:"id" gorm:"primaryKey;column:id"`
	reconcile.Vessel
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// TableName overrides the table name used by Vessel to `vessels`.
func (Vessel) TableName() string {
	return "vessels"
}

// EnhancementLog records one applied patch.
type EnhancementLog struct {
	ID            uint      `json:"id" gorm:"primaryKey;column:id"`
	VesselID      uint      `json:"vessel_id" gorm:"column:vessel_id;index;not null"`
	Source        string    `json:"source" gorm:"column:source;type:varchar(64);not null"`
	FieldsUpdated []string  `json:"fields_updated" gorm:"column:fields_updated;serializer:json"`
	ActorID       string    `json:"actor_id" gorm:"column:actor_id;type:varchar(128)"`
	CreatedAt     time.Time `json:"created_at" gorm:"column:created_at;index"`
}

// TableName overrides the table name used by EnhancementLog.
func (EnhancementLog) TableName() string {
	return "vessel_enhancement_logs"
}
