package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

type User struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FirstName      string             `json:"first_name" bson:"first_name" validate:"required,min=2,max=50"`
	LastName       string             `json:"last_name" bson:"last_name" validate:"required,min=2,max=50"`
	Email          string             `json:"email" bson:"email" validate:"required,email"`
	Password       string             `json:"-" bson:"password"`
	ProfilePicture string             `json:"profile_picture" bson:"profile_picture"`
	Status         UserStatus         `json:"status" bson:"status" default:"active"`
	LastLoginAt    *time.Time         `json:"last_login_at" bson:"last_login_at"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
