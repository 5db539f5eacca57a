package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type numberedDoc struct {
	ID     uint   `gorm:"primaryKey"`
	Number string `gorm:"uniqueIndex"`
}

func TestNextDocumentNumber(t *testing.T) {
	db := setupTestDB(t, &numberedDoc{})
	ctx := context.Background()

	first, err := nextDocumentNumber(ctx, db, "numbered_docs", "number", "PO-2026-")
	require.NoError(t, err)
	assert.Equal(t, "PO-2026-00001", first)

	require.NoError(t, db.Create(&numberedDoc{Number: "PO-2026-00007"}).Error)

	next, err := nextDocumentNumber(ctx, db, "numbered_docs", "number", "PO-2026-")
	require.NoError(t, err)
	assert.Equal(t, "PO-2026-00008", next)
}

func TestNextDocumentNumber_SeparatePrefixes(t *testing.T) {
	db := setupTestDB(t, &numberedDoc{})
	ctx := context.Background()

	require.NoError(t, db.Create(&numberedDoc{Number: "PO-2025-00042"}).Error)

	next, err := nextDocumentNumber(ctx, db, "numbered_docs", "number", "PO-2026-")
	require.NoError(t, err)
	assert.Equal(t, "PO-2026-00001", next)
}

func TestNextDocumentNumber_PastFiveDigits(t *testing.T) {
	db := setupTestDB(t, &numberedDoc{})
	ctx := context.Background()

	// "99999" sorts after "100000" as a string; length decides first
	require.NoError(t, db.Create(&numberedDoc{Number: "SO-2026-99999"}).Error)
	require.NoError(t, db.Create(&numberedDoc{Number: "SO-2026-100000"}).Error)

	next, err := nextDocumentNumber(ctx, db, "numbered_docs", "number", "SO-2026-")
	require.NoError(t, err)
	assert.Equal(t, "SO-2026-100001", next)
}
