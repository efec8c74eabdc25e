package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates visitor storage", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`CREATE TABLE IF NOT EXISTS visitor_storage \(`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, Migrate(ctx, db))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure names the table", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		boom := errors.New("access denied for user")
		mock.ExpectExec(`CREATE TABLE IF NOT EXISTS visitor_storage`).WillReturnError(boom)

		err = Migrate(ctx, db)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "create visitor_storage")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestVisitorStorageDDL_KeysByVisitorAndKey(t *testing.T) {
	// SQLStore's upsert relies on this composite key.
	assert.Contains(t, visitorStorageDDL, "PRIMARY KEY (visitor_id, storage_key)")
}
