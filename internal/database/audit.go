package database

import (
	"context"

	"secmatrix/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	EntityMagerit = "magerit"
	EntityReport  = "report"

	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionGenerate = "generate"
)

// AuditTrail journals changes to the matrices. A trail without a database
// accepts every call and records nothing.
type AuditTrail struct {
	db *gorm.DB
}

func NewAuditTrail(db *gorm.DB) *AuditTrail {
	return &AuditTrail{db: db}
}

func (a *AuditTrail) Enabled() bool {
	return a != nil && a.db != nil
}

// Record stores one entry. Failures are logged and otherwise ignored.
func (a *AuditTrail) Record(ctx context.Context, actor, entity string, entityID uint, action, details string) {
	if !a.Enabled() {
		return
	}
	if actor == "" {
		actor = "anonymous"
	}
	record := models.AuditLog{
		Actor:    actor,
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Details:  details,
	}
	if err := a.db.WithContext(ctx).Create(&record).Error; err != nil {
		log.Warn().Err(err).Str("entity", entity).Str("action", action).Msg("audit record failed")
	}
}

// Recent returns up to limit entries, newest first.
func (a *AuditTrail) Recent(ctx context.Context, limit int) ([]models.AuditLog, error) {
	logs := []models.AuditLog{}
	if !a.Enabled() {
		return logs, nil
	}
	err := a.recentQuery(a.db.WithContext(ctx), limit).Find(&logs).Error
	return logs, err
}

func (a *AuditTrail) recentQuery(db *gorm.DB, limit int) *gorm.DB {
	return db.Model(&models.AuditLog{}).Order("created_at desc").Limit(limit)
}
