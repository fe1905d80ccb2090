package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category groups books by name. Books reference it by the name string
// only; deleting a category does not touch the books that carry its name.
type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// CategoryUpdate carries a partial update: nil fields are left unchanged.
type CategoryUpdate struct {
	Name        *string
	Description *string
}
