package service

import (
	"io"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/orgflow/raci-management-api/internal/database"
)

// newTestLogger returns a logger that discards all output
func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// newTestDB returns a sqlmock-backed database wrapper so that service tests
// can assert transaction begin/commit/rollback behavior.
func newTestDB(t *testing.T) (*database.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	sqlxDB := sqlx.NewDb(mockDB, "mysql")
	db := database.Wrap(sqlxDB, newTestLogger())

	t.Cleanup(func() {
		_ = sqlxDB.Close()
	})

	return db, mock
}
