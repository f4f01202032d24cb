package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewCreditCode returns a human readable credit code, e.g. CR-2025-3FA91C.
func NewCreditCode(at time.Time) string {
	b := make([]byte, 3)
	_, _ = rand.Read(b)
	return fmt.Sprintf("CR-%d-%s", at.Year(), strings.ToUpper(hex.EncodeToString(b)))
}

// NewTxnReference returns a payment transaction reference: TXN- plus 12 upper hex chars.
func NewTxnReference() string {
	u := uuid.New()
	return "TXN-" + strings.ToUpper(strings.ReplaceAll(u.String(), "-", "")[:12])
}
