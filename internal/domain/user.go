package domain

import "time"

const RoleUser = "user"

// User is an identity in the phone-keyed user directory.
// PK: user_id. The phone number is unique (phone-index GSI) and determines
// at most one identity; UserID and Role are immutable after creation.
type User struct {
	UserID      string    `json:"id" dynamodbav:"user_id"`
	Phone       string    `json:"phone" dynamodbav:"phone"`
	FirstName   string    `json:"first_name" dynamodbav:"first_name"`
	LastName    string    `json:"last_name" dynamodbav:"last_name"`
	DisplayName string    `json:"display_name" dynamodbav:"display_name"`
	Role        string    `json:"role" dynamodbav:"role"`
	CreatedAt   time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updated" dynamodbav:"updated_at"`
}
