package models

import "time"

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Actor    string `gorm:"size:100;not null" json:"actor"` // editor username or "anonymous"
	Entity   string `gorm:"size:50;not null" json:"entity"` // "magerit", "report"
	EntityID uint   `json:"entity_id"`                      // asset number, 0 for reports
	Action   string `gorm:"size:50;not null" json:"action"` // "create", "update", "generate"
	Details  string `gorm:"type:text" json:"details"`
}
