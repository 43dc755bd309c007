package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sobitas/backend/internal/domain/sales"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormSequenceCounter_Next(t *testing.T) {
	t.Run("formats number from upserted counter value", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()

		mock.ExpectQuery(`(?s)INSERT INTO document_sequences.*ON CONFLICT \(doc_type, year\).*RETURNING last_value`).
			WithArgs("order", 2026).
			WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(42))

		number, err := NewGormSequenceCounter(db).Next(context.Background(), sales.DocTypeOrder, 2026)

		require.NoError(t, err)
		assert.Equal(t, "2026/0042", number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("pads sequence to four digits", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()

		mock.ExpectQuery(`INSERT INTO document_sequences`).
			WithArgs("quotation", 2026).
			WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(7))

		number, err := NewGormSequenceCounter(db).Next(context.Background(), sales.DocTypeQuotation, 2026)

		require.NoError(t, err)
		assert.Equal(t, "2026/0007", number)
	})

	t.Run("does not truncate beyond four digits", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()

		mock.ExpectQuery(`INSERT INTO document_sequences`).
			WithArgs("ticket", 2026).
			WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(12345))

		number, err := NewGormSequenceCounter(db).Next(context.Background(), sales.DocTypeTicket, 2026)

		require.NoError(t, err)
		assert.Equal(t, "2026/12345", number)
	})

	t.Run("propagates database errors", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()

		mock.ExpectQuery(`INSERT INTO document_sequences`).
			WithArgs("order", 2026).
			WillReturnError(sql.ErrConnDone)

		_, err := NewGormSequenceCounter(db).Next(context.Background(), sales.DocTypeOrder, 2026)

		require.Error(t, err)
		assert.ErrorIs(t, err, sql.ErrConnDone)
	})
}
