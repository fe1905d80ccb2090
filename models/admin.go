package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Admin struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username  string             `bson:"username" json:"username"`
	Password  string             `bson:"password" json:"-"` // hex pbkdf2 hash
	Salt      string             `bson:"salt" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
