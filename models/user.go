// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User model. Password and TempPassword hold bcrypt hashes and are never
// serialized to JSON.
type User struct {
	ID              primitive.ObjectID `json:"id" bson:"_id"`
	Name            string             `json:"name" bson:"name"`
	Email           string             `json:"email" bson:"email"`
	Password        string             `json:"-" bson:"password"`
	TempPassword    string             `json:"-" bson:"tempPassword,omitempty"`
	ProfileImageURL string             `json:"profileImageUrl,omitempty" bson:"profileImageUrl,omitempty"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// UserRef is the creator expansion attached to owned documents.
type UserRef struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
}

// UserProfile is the public shape of a user returned by auth and profile endpoints.
type UserProfile struct {
	ID              primitive.ObjectID `json:"id"`
	Name            string             `json:"name"`
	Email           string             `json:"email"`
	ProfileImageURL *string            `json:"profileImageUrl"`
}

func (u User) Ref() *UserRef {
	return &UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Profile returns the public view of u, with the image URL passed through
// resolve (if non-nil) so callers can make it absolute.
func (u User) Profile(resolve func(string) string) UserProfile {
	p := UserProfile{ID: u.ID, Name: u.Name, Email: u.Email}
	if u.ProfileImageURL != "" {
		url := u.ProfileImageURL
		if resolve != nil {
			url = resolve(url)
		}
		p.ProfileImageURL = &url
	}
	return p
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" validate:"max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"max=72"`
}
