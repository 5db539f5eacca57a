package persistence

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// nextDocumentNumber returns the next sequential document number for the
// given prefix, e.g. "PO-2026-" yields "PO-2026-00001" when no order for
// that year exists yet. Callers generate numbers inside the transaction
// that inserts the document, so the unique index on the number column
// catches the rare concurrent collision.
//
// Numbers are zero padded to five digits but keep counting past 99999, so
// the highest one is found by length first and lexicographic order second.
func nextDocumentNumber(ctx context.Context, db *gorm.DB, table, column, prefix string) (string, error) {
	var numbers []string
	err := db.WithContext(ctx).
		Table(table).
		Where(column+" LIKE ?", prefix+"%").
		Order("length(" + column + ") DESC, " + column + " DESC").
		Limit(1).
		Pluck(column, &numbers).Error
	if err != nil {
		return "", fmt.Errorf("failed to query last document number: %w", err)
	}

	next := 1
	if len(numbers) > 0 {
		var n int
		if _, err := fmt.Sscanf(strings.TrimPrefix(numbers[0], prefix), "%d", &n); err == nil {
			next = n + 1
		}
	}
	return fmt.Sprintf("%s%05d", prefix, next), nil
}
