package models

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// ¿Qué usuario?
	UserID   uint   `json:"user_id"`
	UserName string `gorm:"size:100" json:"user_name"` // nombre denormalizado

	// ¿Qué entidad? (ej: "ingredient", "tool", "recipe", "inventory_item", "production_record")
	EntityType string `gorm:"size:50;index" json:"entity_type"`
	EntityID   uint   `gorm:"index" json:"entity_id"`

	// Tipo de operación: create/update/delete
	Action AuditAction `gorm:"size:20" json:"action"`

	// Resumen corto opcional
	Description string `gorm:"size:255" json:"description"`

	// Estado anterior y posterior (JSON)
	BeforeData string `gorm:"type:jsonb" json:"before_data"`
	AfterData  string `gorm:"type:jsonb" json:"after_data"`
}
