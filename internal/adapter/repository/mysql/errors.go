package mysql

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// notFound maps gorm.ErrRecordNotFound to the domain's sentinel.
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

var forUpdate = clause.Locking{Strength: "UPDATE"}

func scoped(db *gorm.DB, tenantID string) *gorm.DB {
	if tenantID == "" {
		return db
	}
	return db.Where("tenant_id = ?", tenantID)
}

// likeEscaper quotes LIKE metacharacters so search stays a literal substring.
// '!' is the escape character: MySQL and SQLite both accept it in ESCAPE.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// likeLower is the pattern for a `LOWER(col) LIKE ? ESCAPE '!'` clause.
func likeLower(s string) string { return "%" + likeEscaper.Replace(lower(s)) + "%" }
