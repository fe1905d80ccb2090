package store

import (
	"context"

	"github.com/granthkosh/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *DB) InsertCategory(ctx context.Context, cat *models.Category) (primitive.ObjectID, error) {
	res, err := db.Categories().InsertOne(ctx, cat)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) ListCategories(ctx context.Context) ([]models.Category, error) {
	cur, err := db.Categories().Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"createdAt": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var cats []models.Category
	if err := cur.All(ctx, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// UpdateCategory applies a partial update and returns the updated
// category, or (nil, nil) when the id is unknown.
func (db *DB) UpdateCategory(ctx context.Context, id primitive.ObjectID, upd *models.CategoryUpdate) (*models.Category, error) {
	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if len(set) == 0 {
		// Nothing to change; still report whether the id exists.
		var cat models.Category
		err := db.Categories().FindOne(ctx, bson.M{"_id": id}).Decode(&cat)
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &cat, nil
	}

	var cat models.Category
	err := db.Categories().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&cat)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// DeleteCategory removes the category only. Books referencing its name
// keep the now-dangling string.
func (db *DB) DeleteCategory(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := db.Categories().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
