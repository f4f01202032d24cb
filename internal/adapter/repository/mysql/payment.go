package mysql

import (
	"context"
	"time"

	"creditos-backend/internal/domain/paging"
	paymentDomain "creditos-backend/internal/domain/payment"

	"gorm.io/gorm"
)

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

func (r *PaymentRepository) CreateBatch(ctx context.Context, ps []paymentDomain.Payment) error {
	if len(ps) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit("Credito").Create(&ps).Error
}

func (r *PaymentRepository) Save(ctx context.Context, p *paymentDomain.Payment) error {
	return r.db.WithContext(ctx).Omit("Credito").Save(p).Error
}

func (r *PaymentRepository) GetByPaymentID(ctx context.Context, tenantID, paymentID string) (*paymentDomain.Payment, error) {
	return r.get(scoped(r.db.WithContext(ctx), tenantID), paymentID)
}

func (r *PaymentRepository) GetByPaymentIDForUpdate(ctx context.Context, tenantID, paymentID string) (*paymentDomain.Payment, error) {
	return r.get(scoped(r.db.WithContext(ctx).Clauses(forUpdate), tenantID), paymentID)
}

func (r *PaymentRepository) get(q *gorm.DB, paymentID string) (*paymentDomain.Payment, error) {
	var out paymentDomain.Payment
	if err := q.Preload("Credito").Where("payment_id = ?", paymentID).First(&out).Error; err != nil {
		return nil, notFound(err, paymentDomain.ErrNotFound)
	}
	return &out, nil
}

// List mirrors payment.Filter.Matches in SQL.
func (r *PaymentRepository) List(ctx context.Context, f paymentDomain.Filter, p paging.Request, now time.Time) ([]paymentDomain.Payment, int64, error) {
	now = now.UTC()
	moraFrom := now.Add(-24 * time.Hour)

	q := scoped(r.db.WithContext(ctx).Model(&paymentDomain.Payment{}), f.TenantID)
	if f.Search != "" {
		like := likeLower(f.Search)
		q = q.Where("(credit_id IN (SELECT id FROM creditos WHERE LOWER(codigo) LIKE ? ESCAPE '!' OR LOWER(cliente) LIKE ? ESCAPE '!') OR LOWER(referencia_transaccion) LIKE ? ESCAPE '!')",
			like, like, like)
	}
	if f.Estado != "" {
		q = q.Where("estado = ?", f.Estado)
	}
	if f.CreditoID != "" {
		q = q.Where("credito_id = ?", f.CreditoID)
	}
	if f.MetodoPago != "" {
		q = q.Where("metodo_pago = ?", f.MetodoPago)
	}
	if f.SoloVencidos {
		q = q.Where("estado = ? AND fecha_vencimiento < ?", paymentDomain.StatusPendiente, now)
	}
	if f.SoloEnMora {
		q = q.Where("((estado = ? AND fecha_vencimiento <= ?) OR (estado = ? AND mora_dias > 0))",
			paymentDomain.StatusPendiente, moraFrom, paymentDomain.StatusCompletado)
	}
	q = q.Session(&gorm.Session{})

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if p.PastEnd(count) {
		return []paymentDomain.Payment{}, count, nil
	}
	var out []paymentDomain.Payment
	err := q.Preload("Credito").
		Order("fecha_vencimiento DESC, payment_id ASC").
		Limit(p.PageSize).Offset(p.Offset()).
		Find(&out).Error
	return out, count, err
}

func (r *PaymentRepository) ListAll(ctx context.Context, tenantID string) ([]paymentDomain.Payment, error) {
	var out []paymentDomain.Payment
	err := scoped(r.db.WithContext(ctx), tenantID).Find(&out).Error
	return out, err
}

func (r *PaymentRepository) ListByCredit(ctx context.Context, creditID uint64) ([]paymentDomain.Payment, error) {
	var out []paymentDomain.Payment
	err := r.db.WithContext(ctx).
		Where("credit_id = ?", creditID).
		Order("numero_cuota ASC").
		Find(&out).Error
	return out, err
}

// ListOverduePending returns pending installments at least one full day past due.
func (r *PaymentRepository) ListOverduePending(ctx context.Context, now time.Time) ([]paymentDomain.Payment, error) {
	var out []paymentDomain.Payment
	err := r.db.WithContext(ctx).
		Where("estado = ? AND fecha_vencimiento <= ?", paymentDomain.StatusPendiente, now.UTC().Add(-24*time.Hour)).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

func (r *PaymentRepository) UpdateMora(ctx context.Context, id uint64, moraDias int) error {
	return r.db.WithContext(ctx).
		Model(&paymentDomain.Payment{}).
		Where("id = ? AND estado = ?", id, paymentDomain.StatusPendiente).
		Update("mora_dias", moraDias).Error
}
