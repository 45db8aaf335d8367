package store

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CampaignsCollection = "campaigns"
	UsersCollection     = "users"
)

var (
	// ErrNotFound is returned when a single-document lookup matches nothing.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidID wraps identifiers that are not 24-char hex ObjectIDs.
	ErrInvalidID = errors.New("invalid document id")
)

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w %q", ErrInvalidID, id)
	}
	return oid, nil
}
