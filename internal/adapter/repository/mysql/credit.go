package mysql

import (
	"context"
	"strings"

	creditDomain "creditos-backend/internal/domain/credit"
	"creditos-backend/internal/domain/paging"

	"gorm.io/gorm"
)

type CreditRepository struct{ db *gorm.DB }

func NewCreditRepository(db *gorm.DB) *CreditRepository { return &CreditRepository{db: db} }

func (r *CreditRepository) Create(ctx context.Context, c *creditDomain.Credit) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CreditRepository) Save(ctx context.Context, c *creditDomain.Credit) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CreditRepository) GetByCreditID(ctx context.Context, tenantID, creditID string) (*creditDomain.Credit, error) {
	return r.get(scoped(r.db.WithContext(ctx), tenantID), creditID)
}

func (r *CreditRepository) GetByCreditIDForUpdate(ctx context.Context, tenantID, creditID string) (*creditDomain.Credit, error) {
	return r.get(scoped(r.db.WithContext(ctx).Clauses(forUpdate), tenantID), creditID)
}

func (r *CreditRepository) get(q *gorm.DB, creditID string) (*creditDomain.Credit, error) {
	var out creditDomain.Credit
	if err := q.Where("credit_id = ?", creditID).First(&out).Error; err != nil {
		return nil, notFound(err, creditDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *CreditRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*creditDomain.Credit, error) {
	var out creditDomain.Credit
	err := r.db.WithContext(ctx).Clauses(forUpdate).Where("id = ?", id).First(&out).Error
	if err != nil {
		return nil, notFound(err, creditDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *CreditRepository) List(ctx context.Context, f creditDomain.ListFilter, p paging.Request) ([]creditDomain.Credit, int64, error) {
	q := scoped(r.db.WithContext(ctx).Model(&creditDomain.Credit{}), f.TenantID)
	if f.Search != "" {
		like := likeLower(f.Search)
		q = q.Where("(LOWER(codigo) LIKE ? ESCAPE '!' OR LOWER(cliente) LIKE ? ESCAPE '!')", like, like)
	}
	if f.Estado != "" {
		q = q.Where("estado = ?", f.Estado)
	}
	if f.Moneda != "" {
		q = q.Where("moneda = ?", f.Moneda)
	}
	from, to := f.Bounds()
	if from != nil {
		q = q.Where("fecha_solicitud >= ?", *from)
	}
	if to != nil {
		q = q.Where("fecha_solicitud < ?", *to)
	}
	q = q.Session(&gorm.Session{})

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if p.PastEnd(count) {
		return []creditDomain.Credit{}, count, nil
	}
	var out []creditDomain.Credit
	err := q.Order("fecha_solicitud DESC, id DESC").
		Limit(p.PageSize).Offset(p.Offset()).
		Find(&out).Error
	return out, count, err
}

func (r *CreditRepository) CountByStatus(ctx context.Context, tenantID string, s creditDomain.Status) (int64, error) {
	var n int64
	err := scoped(r.db.WithContext(ctx).Model(&creditDomain.Credit{}), tenantID).
		Where("estado = ?", s).
		Count(&n).Error
	return n, err
}

func lower(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
