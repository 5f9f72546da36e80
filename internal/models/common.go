package models

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// NewErrorResponse creates a new error response
func NewErrorResponse(code, message, details string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// NewSuccessResponse creates a new success response
func NewSuccessResponse(message string, data interface{}) *SuccessResponse {
	return &SuccessResponse{
		Message: message,
		Data:    data,
	}
}

// UserRole lists the directory roles the engine cares about for authorization
type UserRole string

const (
	// RoleCompanyAdmin may manage any event in the company
	RoleCompanyAdmin UserRole = "company_admin"
	// RoleHOD is a head of department; may manage events of their department
	RoleHOD UserRole = "hod"
	// RoleMember is a regular directory user with no management rights
	RoleMember UserRole = "member"
)

// User represents a directory row consumed read-only from the user directory
type User struct {
	UserID       string   `db:"USER_ID" json:"userId"`
	UserName     string   `db:"USER_NAME" json:"userName"`
	Email        string   `db:"EMAIL" json:"email"`
	UserRole     UserRole `db:"USER_ROLE" json:"userRole"`
	DepartmentID string   `db:"DEPARTMENT_ID" json:"departmentId"`
	CompanyID    string   `db:"COMPANY_ID" json:"companyId"`
}

// CallerContext carries the authenticated caller identity extracted from
// request headers by the router middleware.
type CallerContext struct {
	UserID    string
	UserRole  UserRole
	CompanyID string
}
