package repos

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"bdc/internal/domain"

	"github.com/jmoiron/sqlx"
)

// flagColumns whitelists what setFlag may touch, per table.
var flagColumns = map[string]map[string]bool{
	"repuestos":     {"is_active": true, "is_featured": true},
	"motocargueros": {"is_active": true, "is_featured": true},
	"banner_images": {"is_active": true},
}

// setFlag is the partial update behind the dashboard toggles.
func setFlag(ctx context.Context, db *sqlx.DB, table, column, id string, v bool) error {
	if !flagColumns[table][column] {
		return fmt.Errorf("setFlag: %s.%s is not a flag", table, column)
	}
	res, err := db.ExecContext(ctx,
		db.Rebind(`UPDATE `+table+` SET `+column+` = ?, updated_at = ? WHERE id = ?`),
		v, now(), id)
	return mustAffect(res, err)
}

// mustAffect turns "zero rows touched" into domain.ErrNotFound.
func mustAffect(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern is a lower-cased LIKE pattern matching q literally; queries
// using it must say ESCAPE '\'.
func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
}
