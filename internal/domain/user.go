package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User represents a storefront account
type User struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Role         string             `json:"role" bson:"role"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	Phone        string             `json:"phone" bson:"phone"`
	Address      string             `json:"address" bson:"address"`
	PasswordHash string             `json:"-" bson:"password"`
	Avatar       string             `json:"avatar,omitempty" bson:"avatar,omitempty"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
}
