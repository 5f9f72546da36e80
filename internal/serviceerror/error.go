package serviceerror

import "fmt"

// ServiceErrorType classifies an error as caused by the caller or by the server.
type ServiceErrorType string

const (
	ClientErrorType ServiceErrorType = "client_error"
	ServerErrorType ServiceErrorType = "server_error"
)

// ServiceError is the typed error returned by the service layer. Handlers map
// the code to an HTTP status; the description carries request-specific detail.
type ServiceError struct {
	Code             string           `json:"code"`
	Type             ServiceErrorType `json:"type"`
	Message          string           `json:"message"`
	ErrorDescription string           `json:"error_description,omitempty"`
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.ErrorDescription != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.ErrorDescription)
	}
	return e.Message
}

var (
	InternalServerError = ServiceError{
		Type:             ServerErrorType,
		Code:             "RSE-5000",
		Message:          "internal_server_error",
		ErrorDescription: "An unexpected error occurred",
	}

	DatabaseError = ServiceError{
		Type:             ServerErrorType,
		Code:             "RSE-5001",
		Message:          "database_error",
		ErrorDescription: "A database error occurred",
	}

	InvalidInputError = ServiceError{
		Type:             ClientErrorType,
		Code:             "RCE-4000",
		Message:          "invalid_input",
		ErrorDescription: "The request is invalid",
	}

	NotFoundError = ServiceError{
		Type:             ClientErrorType,
		Code:             "RCE-4004",
		Message:          "resource_not_found",
		ErrorDescription: "Resource not found",
	}

	UnauthorizedError = ServiceError{
		Type:             ClientErrorType,
		Code:             "RCE-4003",
		Message:          "unauthorized",
		ErrorDescription: "Caller lacks the required role for the target company or department",
	}

	ConflictError = ServiceError{
		Type:             ClientErrorType,
		Code:             "RCE-4009",
		Message:          "conflict",
		ErrorDescription: "Request conflicts with current state",
	}

	NoAssignmentsError = ServiceError{
		Type:             ClientErrorType,
		Code:             "RCE-4010",
		Message:          "no_assignments",
		ErrorDescription: "The event has no RACI assignments; build the matrix first",
	}

	NoPendingDecisionError = ServiceError{
		Type:             ClientErrorType,
		Code:             "RCE-4011",
		Message:          "no_pending_decision",
		ErrorDescription: "The approver has no pending decision requests for this event",
	}
)

// New returns a copy of the base error carrying a request-specific description.
func New(base ServiceError, description string) *ServiceError {
	return &ServiceError{
		Type:             base.Type,
		Code:             base.Code,
		Message:          base.Message,
		ErrorDescription: description,
	}
}

// Newf is New with fmt.Sprintf formatting of the description.
func Newf(base ServiceError, format string, args ...interface{}) *ServiceError {
	return New(base, fmt.Sprintf(format, args...))
}

// Is reports whether err is a ServiceError with the same code as base.
func Is(err error, base ServiceError) bool {
	se, ok := err.(*ServiceError)
	return ok && se.Code == base.Code
}
