package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultUserRole   = "donor"
	DefaultUserStatus = "active"
)

type User struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name   string             `bson:"name,omitempty" json:"name,omitempty"`
	Email  string             `bson:"email,omitempty" json:"email,omitempty"`
	Role   string             `bson:"role" json:"role"`     // admin, donor, volunteer
	Status string             `bson:"status" json:"status"` // active, banned
	Date   time.Time          `bson:"date" json:"date"`
}

type UserInput struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// NewUser fills role, status and date for any field the caller left blank.
func NewUser(in UserInput, now time.Time) User {
	u := User{
		Name:   in.Name,
		Email:  in.Email,
		Role:   in.Role,
		Status: in.Status,
		Date:   now,
	}
	if u.Role == "" {
		u.Role = DefaultUserRole
	}
	if u.Status == "" {
		u.Status = DefaultUserStatus
	}
	return u
}
