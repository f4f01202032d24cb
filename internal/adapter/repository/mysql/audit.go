package mysql

import (
	"context"

	auditDomain "creditos-backend/internal/domain/audit"

	"gorm.io/gorm"
)

type AuditRepository struct{ db *gorm.DB }

func NewAuditRepository(db *gorm.DB) *AuditRepository { return &AuditRepository{db: db} }

func (r *AuditRepository) Create(ctx context.Context, e *auditDomain.Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *AuditRepository) ListByCreditID(ctx context.Context, creditID uint64) ([]auditDomain.Entry, error) {
	var out []auditDomain.Entry
	res := r.db.WithContext(ctx).
		Where("credit_id = ?", creditID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}
