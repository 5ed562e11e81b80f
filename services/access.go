package services

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ensureOwner guards every mutating path. Reads are not scoped:
// any authenticated principal may list or fetch any document.
func ensureOwner(createdBy, principal primitive.ObjectID, action, entity string) error {
	if createdBy != principal {
		return Forbidden(fmt.Sprintf("You are not authorized to %s this %s", action, entity))
	}
	return nil
}
