package audit

import (
	"time"
)

// Table: credito_historial. One row per applied workflow action or payment.
type Entry struct {
	// Internal numeric PK
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	EntryID string `gorm:"column:entry_id;type:char(32);not null;uniqueIndex:ux_historial_entry_id" json:"id"`
	// FK to creditos.id (numeric)
	CreditID   uint64    `gorm:"column:credit_id;not null;index:idx_historial_credit" json:"-"`
	Action     string    `gorm:"column:action;size:32;not null" json:"accion"`
	FromStatus string    `gorm:"column:from_status;size:20;not null" json:"estado_anterior"`
	ToStatus   string    `gorm:"column:to_status;size:20;not null" json:"estado_nuevo"`
	Actor      string    `gorm:"column:actor;size:64" json:"actor,omitempty"`
	Detail     string    `gorm:"column:detail;type:text" json:"detalle,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime;index:idx_historial_credit" json:"created_at"`
}

func (Entry) TableName() string { return "credito_historial" }
