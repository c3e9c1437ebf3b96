package utils

import "github.com/google/uuid"

// GenerateUUID returns a random (version 4) UUID string.
// Format: xxxxxxxx-xxxx-4xxx-yxxx-xxxxxxxxxxxx
func GenerateUUID() string {
	return uuid.NewString()
}
