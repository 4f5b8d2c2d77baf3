package model

import "time"

// User is a registered account. Username and email are unique.
type User struct {
	ID                 int64     `json:"user_id" gorm:"primaryKey;autoIncrement"`
	Username           string    `json:"username" gorm:"size:50;uniqueIndex;not null"`
	Email              string    `json:"email" gorm:"size:100;uniqueIndex;not null"`
	PasswordHash       string    `json:"-" gorm:"size:255;not null"` // never serialized
	SubscriptionPlanID *int64    `json:"subscription_plan_id" gorm:"index"`
	CreatedAt          time.Time `json:"created_at"`
}

// TableName sets the table name.
func (User) TableName() string {
	return "users"
}

// UserView is the public shape of a user.
type UserView struct {
	UserID             int64     `json:"user_id"`
	Username           string    `json:"username"`
	Email              string    `json:"email"`
	SubscriptionPlanID *int64    `json:"subscription_plan_id"`
	CreatedAt          time.Time `json:"created_at"`
}

// ToResponse converts the row into its API form.
func (u *User) ToResponse() UserView {
	return UserView{
		UserID:             u.ID,
		Username:           u.Username,
		Email:              u.Email,
		SubscriptionPlanID: u.SubscriptionPlanID,
		CreatedAt:          u.CreatedAt,
	}
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
