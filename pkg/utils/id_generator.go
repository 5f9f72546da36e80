package utils

import (
	"github.com/google/uuid"
)

// GenerateID generates a new UUID for engine entities
func GenerateID() string {
	return uuid.New().String()
}

// GenerateEventID generates a unique event ID
func GenerateEventID() string {
	return "EVT-" + uuid.New().String()
}

// GenerateTaskID generates a unique task ID
func GenerateTaskID() string {
	return "TASK-" + uuid.New().String()
}

// GenerateAssignmentID generates a unique RACI assignment ID
func GenerateAssignmentID() string {
	return "ASGN-" + uuid.New().String()
}

// GenerateRequestID generates a unique decision request ID
func GenerateRequestID() string {
	return "DREQ-" + uuid.New().String()
}

// IsValidUUID checks if a string is a valid UUID
func IsValidUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
