package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User represents a registered account
type User struct {
	ID          int       `json:"id" db:"id"`
	Username    string    `json:"username" db:"username"`
	Email       string    `json:"email" db:"email"`
	Password    string    `json:"-" db:"password_hash"` // Never expose in JSON
	FirstName   string    `json:"first_name" db:"first_name"`
	LastName    string    `json:"last_name" db:"last_name"`
	DateOfBirth *string   `json:"date_of_birth" db:"date_of_birth"`
	FitnessGoal string    `json:"fitness_goal" db:"fitness_goal"`
	HeightCm    *int      `json:"height" db:"height_cm"`
	WeightKg    *int      `json:"weight" db:"weight_kg"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"-" db:"updated_at"`
}

// StringList stores a JSON array of tags in a single TEXT column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		return json.Unmarshal([]byte(v), l)
	case []byte:
		return json.Unmarshal(v, l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
}

// Profile holds the fitness profile owned by exactly one user
type Profile struct {
	UserID              int        `json:"-" db:"user_id"`
	Bio                 string     `json:"bio" db:"bio"`
	Avatar              string     `json:"avatar" db:"avatar"`
	FitnessLevel        string     `json:"fitness_level" db:"fitness_level"` // beginner, intermediate, advanced
	PreferredActivities StringList `json:"preferred_activities" db:"preferred_activities"`
	Points              int        `json:"points" db:"points"`
}

// UserDetail is the authenticated user's view of their own account
type UserDetail struct {
	User
	Profile *Profile `json:"profile,omitempty"`
}

// RegisterRequest represents the request to create a new account
type RegisterRequest struct {
	Username    string  `json:"username" validate:"required,min=3,max=30"`
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=6"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	DateOfBirth *string `json:"date_of_birth"`
	FitnessGoal string  `json:"fitness_goal"`
	HeightCm    *int    `json:"height"`
	WeightKg    *int    `json:"weight"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserUpdateRequest updates the account fields a user may edit
type UserUpdateRequest struct {
	Email       *string `json:"email"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	DateOfBirth *string `json:"date_of_birth"`
	FitnessGoal *string `json:"fitness_goal"`
	HeightCm    *int    `json:"height"`
	WeightKg    *int    `json:"weight"`
}

// ProfileUpdateRequest updates the fitness profile record
type ProfileUpdateRequest struct {
	Bio                 *string     `json:"bio"`
	Avatar              *string     `json:"avatar"`
	FitnessLevel        *string     `json:"fitness_level"`
	PreferredActivities *StringList `json:"preferred_activities"`
	Points              *int        `json:"points"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies a password against the user's hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}
