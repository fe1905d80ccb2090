package store

import (
	"context"

	"github.com/granthkosh/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// AdminsCount returns the number of documents in the admins collection.
func (db *DB) AdminsCount(ctx context.Context) (int64, error) {
	return db.Admins().CountDocuments(ctx, bson.M{})
}

func (db *DB) AdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var a models.Admin
	err := db.Admins().FindOne(ctx, bson.M{"username": username}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (db *DB) InsertAdmin(ctx context.Context, admin *models.Admin) (primitive.ObjectID, error) {
	res, err := db.Admins().InsertOne(ctx, admin)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// SetAdminPassword replaces the stored hash and salt for a username.
// Used by adminctl; the HTTP API has no password-change endpoint.
func (db *DB) SetAdminPassword(ctx context.Context, username, hash, salt string) (bool, error) {
	res, err := db.Admins().UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{"$set": bson.M{"password": hash, "salt": salt}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}
