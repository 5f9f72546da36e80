package dao

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/orgflow/raci-management-api/internal/database"
	"github.com/orgflow/raci-management-api/internal/models"
)

// UserDAO reads the user directory. The engine only consumes directory rows;
// user management lives elsewhere.
type UserDAO struct {
	db *database.DB
}

// NewUserDAO creates a new UserDAO instance
func NewUserDAO(db *database.DB) *UserDAO {
	return &UserDAO{db: db}
}

// GetByID resolves a directory user by ID and company ID
func (dao *UserDAO) GetByID(ctx context.Context, userID, companyID string) (*models.User, error) {
	query := `
		SELECT USER_ID, USER_NAME, EMAIL, USER_ROLE, DEPARTMENT_ID, COMPANY_ID
		FROM WF_USER
		WHERE USER_ID = ? AND COMPANY_ID = ?
	`

	var user models.User
	err := dao.db.GetContext(ctx, &user, query, userID, companyID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}

	return &user, nil
}
