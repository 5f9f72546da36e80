package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidateEventID validates event ID format
func ValidateEventID(eventID string) error {
	if eventID == "" {
		return fmt.Errorf("event ID cannot be empty")
	}
	if len(eventID) > 255 {
		return fmt.Errorf("event ID too long (max 255 characters)")
	}
	return nil
}

// ValidateTaskID validates task ID format
func ValidateTaskID(taskID string) error {
	if taskID == "" {
		return fmt.Errorf("task ID cannot be empty")
	}
	if len(taskID) > 255 {
		return fmt.Errorf("task ID too long (max 255 characters)")
	}
	return nil
}

// ValidateUserID validates user ID format
func ValidateUserID(userID string) error {
	if userID == "" {
		return fmt.Errorf("user ID cannot be empty")
	}
	if len(userID) > 255 {
		return fmt.Errorf("user ID too long (max 255 characters)")
	}
	return nil
}

// ValidateCompanyID validates company ID
func ValidateCompanyID(companyID string) error {
	if companyID == "" {
		return fmt.Errorf("company ID cannot be empty")
	}
	if len(companyID) > 255 {
		return fmt.Errorf("company ID too long (max 255 characters)")
	}
	return nil
}

// ValidateApprovalLevel validates an approval level value
func ValidateApprovalLevel(level int) error {
	if level < 1 {
		return fmt.Errorf("approval level must be a positive integer, got %d", level)
	}
	return nil
}

// ValidateDecisionReason validates a rejection reason
func ValidateDecisionReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("decision reason cannot be empty")
	}
	if len(reason) > 1024 {
		return fmt.Errorf("decision reason too long (max 1024 characters)")
	}
	return nil
}

// ParseFinancialLimit coerces a raw financial limit value into a float.
// Values arrive as free-form strings from upstream forms; anything that does
// not parse as a float is treated as absent and becomes nil, not an error.
func ParseFinancialLimit(raw *string) *float64 {
	if raw == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil
	}
	return &value
}
