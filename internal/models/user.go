package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is user entity
type User struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username            string             `bson:"username" json:"username"`
	Email               string             `bson:"email" json:"email"`
	PasswordHash        string             `bson:"password" json:"-"`
	IsAdmin             bool               `bson:"isAdmin" json:"isAdmin"`
	IsSuperAdmin        bool               `bson:"isSuperAdmin" json:"isSuperAdmin"`
	IsSuspended         bool               `bson:"isSuspended" json:"isSuspended"`
	EmailVerified       bool               `bson:"emailVerified" json:"emailVerified"`
	VerificationToken   string             `bson:"verificationToken,omitempty" json:"-"`
	VerificationExpires *time.Time         `bson:"verificationExpires,omitempty" json:"-"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
}

// TokenPayload is payload of authorization token
type TokenPayload struct {
	UserID primitive.ObjectID
}

// RoleUpdate carries the privilege fields an admin may change on a user.
// Nil means "leave unchanged".
type RoleUpdate struct {
	IsAdmin      *bool `json:"isAdmin"`
	IsSuperAdmin *bool `json:"isSuperAdmin"`
	IsSuspended  *bool `json:"isSuspended"`
}

// TouchesSuperAdmin reports whether the update tries to grant or revoke
// the super admin flag.
func (ru RoleUpdate) TouchesSuperAdmin() bool {
	return ru.IsSuperAdmin != nil
}
