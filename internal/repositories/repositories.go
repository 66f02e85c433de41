package repositories

import (
	"database/sql"
	"fmt"
)

// requireAffected returns notFound when a write touched no rows.
func requireAffected(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
