package mysql

import (
	"context"
	"testing"
	"time"

	auditDomain "creditos-backend/internal/domain/audit"
	creditDomain "creditos-backend/internal/domain/credit"
	paymentDomain "creditos-backend/internal/domain/payment"
	"creditos-backend/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB creates an in-memory sqlite DB with every table.
// A single connection keeps the in-memory database alive across calls.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&creditDomain.Credit{}, &paymentDomain.Payment{}, &auditDomain.Entry{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

type creditSeed struct {
	tenant  string
	codigo  string
	cliente string
	estado  creditDomain.Status
	moneda  creditDomain.Moneda
	at      time.Time
}

func makeCredit(s creditSeed) *creditDomain.Credit {
	if s.estado == "" {
		s.estado = creditDomain.StatusSolicitado
	}
	if s.moneda == "" {
		s.moneda = creditDomain.MonedaUSD
	}
	if s.codigo == "" {
		s.codigo = id.NewCreditCode(s.at)
	}
	return &creditDomain.Credit{
		CreditID:       id.NewID32(),
		TenantID:       s.tenant,
		Codigo:         s.codigo,
		Cliente:        s.cliente,
		Producto:       "Personal",
		Moneda:         s.moneda,
		Monto:          decimal.NewFromInt(10000),
		TasaAnual:      decimal.RequireFromString("18.5"),
		PlazoMeses:     12,
		Frecuencia:     creditDomain.FrecuenciaMensual,
		Sistema:        creditDomain.SistemaFrances,
		Estado:         s.estado,
		FechaSolicitud: s.at.UTC(),
		SaldoCapital:   decimal.NewFromInt(10000),
	}
}

func mustCreateCredit(t *testing.T, repo *CreditRepository, s creditSeed) *creditDomain.Credit {
	t.Helper()
	c := makeCredit(s)
	if err := repo.Create(context.Background(), c); err != nil {
		t.Fatalf("create credit: %v", err)
	}
	return c
}

func makePayment(c *creditDomain.Credit, n int, due time.Time, amount string) paymentDomain.Payment {
	amt := decimal.RequireFromString(amount)
	return paymentDomain.Payment{
		PaymentID:        id.NewID32(),
		TenantID:         c.TenantID,
		CreditID:         c.ID,
		CreditoID:        c.CreditID,
		NumeroCuota:      n,
		MontoProgramado:  amt,
		Capital:          amt,
		Interes:          decimal.Zero,
		MontoPagado:      decimal.Zero,
		FechaVencimiento: due.UTC(),
		Estado:           paymentDomain.StatusPendiente,
	}
}
