package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orgflow/raci-management-api/internal/models"
	"github.com/orgflow/raci-management-api/internal/serviceerror"
)

// SendOKResponse sends a 200 OK response
func SendOKResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// SendCreatedResponse sends a 201 Created response
func SendCreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// SendNoContentResponse sends a 204 No Content response
func SendNoContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// SendErrorResponse sends an error JSON response
func SendErrorResponse(c *gin.Context, statusCode int, errCode, message, details string) {
	c.JSON(statusCode, models.ErrorResponse{
		Code:    errCode,
		Message: message,
		Details: details,
	})
}

// SendBadRequestError sends a 400 Bad Request error
func SendBadRequestError(c *gin.Context, message, details string) {
	SendErrorResponse(c, http.StatusBadRequest, serviceerror.InvalidInputError.Code, message, details)
}

// SendInternalServerError sends a 500 Internal Server Error
func SendInternalServerError(c *gin.Context, message, details string) {
	SendErrorResponse(c, http.StatusInternalServerError, serviceerror.InternalServerError.Code, message, details)
}

// SendServiceError maps a service-layer error onto the HTTP response. Typed
// service errors carry their code and classification; anything else is an
// unexpected internal failure.
func SendServiceError(c *gin.Context, err error) {
	se, ok := err.(*serviceerror.ServiceError)
	if !ok {
		SendInternalServerError(c, "Unexpected error", err.Error())
		return
	}

	SendErrorResponse(c, httpStatusForServiceError(se), se.Code, se.Message, se.ErrorDescription)
}

func httpStatusForServiceError(se *serviceerror.ServiceError) int {
	switch se.Code {
	case serviceerror.NotFoundError.Code:
		return http.StatusNotFound
	case serviceerror.UnauthorizedError.Code:
		return http.StatusForbidden
	case serviceerror.ConflictError.Code:
		return http.StatusConflict
	case serviceerror.InvalidInputError.Code,
		serviceerror.NoAssignmentsError.Code,
		serviceerror.NoPendingDecisionError.Code:
		return http.StatusBadRequest
	}
	if se.Type == serviceerror.ClientErrorType {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// GetCallerFromContext extracts the caller identity set by the router
// middleware from the request headers.
func GetCallerFromContext(c *gin.Context) models.CallerContext {
	return models.CallerContext{
		UserID:    getStringFromContext(c, "userID"),
		UserRole:  models.UserRole(getStringFromContext(c, "userRole")),
		CompanyID: GetCompanyIDFromContext(c),
	}
}

// GetCompanyIDFromContext extracts the company ID from context
func GetCompanyIDFromContext(c *gin.Context) string {
	companyID := getStringFromContext(c, "companyID")
	if companyID == "" {
		return "DEFAULT_COMPANY"
	}
	return companyID
}

// GetUserIDFromContext extracts the user ID from context
func GetUserIDFromContext(c *gin.Context) string {
	return getStringFromContext(c, "userID")
}

func getStringFromContext(c *gin.Context, key string) string {
	value, exists := c.Get(key)
	if !exists {
		return ""
	}
	s, _ := value.(string)
	return s
}

// SetContextValue sets a value in the Gin context
func SetContextValue(c *gin.Context, key string, value interface{}) {
	c.Set(key, value)
}
