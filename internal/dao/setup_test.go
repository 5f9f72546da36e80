package dao

import (
	"context"
	"io"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/orgflow/raci-management-api/internal/database"
)

// newTestDB returns a sqlmock-backed database wrapper
func newTestDB(t *testing.T) (*database.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	sqlxDB := sqlx.NewDb(mockDB, "mysql")
	db := database.Wrap(sqlxDB, logger)

	t.Cleanup(func() {
		_ = sqlxDB.Close()
	})

	return db, mock
}

// newTestTx begins a transaction against the mocked connection
func newTestTx(t *testing.T, db *database.DB, mock sqlmock.Sqlmock) *database.Transaction {
	t.Helper()

	mock.ExpectBegin()
	tx, err := db.BeginTx(context.Background())
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}

	return tx
}
