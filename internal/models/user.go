package models

import (
	"time"
)

// Defaults applied when a signup omits the optional profile fields.
const (
	DefaultProfilePicture = "https://37assets.37signals.com/svn/765-default-avatar.png"
	DefaultAbout          = "I am a developer who loves to code and build things."
)

// User represents a registered account in the system
type User struct {
	ID             string    `json:"id" db:"id"`
	FirstName      string    `json:"first_name" db:"first_name"`
	LastName       string    `json:"last_name,omitempty" db:"last_name"`
	Email          string    `json:"email" db:"email"`
	HashedPassword string    `json:"-" db:"hashed_password"` // Never expose in JSON
	Age            *int      `json:"age,omitempty" db:"age"`
	Gender         string    `json:"gender,omitempty" db:"gender"`
	ProfilePicture string    `json:"profile_picture" db:"profile_picture"`
	About          string    `json:"about" db:"about"`
	Skills         []string  `json:"skills" db:"skills"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// SignupRequest represents the account creation payload
type SignupRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
}

// LoginRequest represents authentication request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Profile represents safe user information (without credential data)
type Profile struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name,omitempty"`
	Email          string    `json:"email"`
	Age            *int      `json:"age,omitempty"`
	Gender         string    `json:"gender,omitempty"`
	ProfilePicture string    `json:"profile_picture"`
	About          string    `json:"about"`
	Skills         []string  `json:"skills"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToProfile converts User to Profile (safe for API responses)
func (u *User) ToProfile() Profile {
	return Profile{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		Age:            u.Age,
		Gender:         u.Gender,
		ProfilePicture: u.ProfilePicture,
		About:          u.About,
		Skills:         u.Skills,
		CreatedAt:      u.CreatedAt,
	}
}
