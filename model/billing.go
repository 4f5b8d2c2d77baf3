package model

import "time"

// SubscriptionPlan is a purchasable tier. Plans are seeded by the migrate command.
type SubscriptionPlan struct {
	ID          int64   `json:"subscription_plan_id" gorm:"primaryKey;autoIncrement"`
	Name        string  `json:"name" gorm:"size:50;not null"`
	Price       float64 `json:"price" gorm:"type:decimal(10,2);not null;default:0"`
	Description string  `json:"description" gorm:"size:255"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}

// DefaultPlans are inserted on a fresh database. The first one is assigned
// to newly registered users.
var DefaultPlans = []SubscriptionPlan{
	{ID: 1, Name: "Free", Price: 0, Description: "Ad-supported streaming"},
	{ID: 2, Name: "Premium", Price: 9.99, Description: "Ad-free streaming with unlimited skips"},
	{ID: 3, Name: "Family", Price: 14.99, Description: "Premium for up to six accounts"},
}

// Payment records a charge against a user. Only stored, there is no billing flow.
type Payment struct {
	ID          int64     `json:"payment_id" gorm:"primaryKey;autoIncrement"`
	UserID      int64     `json:"user_id" gorm:"index;not null"`
	Amount      float64   `json:"amount" gorm:"type:decimal(10,2);not null"`
	PaymentDate time.Time `json:"date"`
	Method      string    `json:"method" gorm:"size:50"`
}

func (Payment) TableName() string {
	return "payments"
}
