package store

import (
	"context"
	"time"

	"github.com/granthkosh/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *DB) InsertBook(ctx context.Context, book *models.Book) (primitive.ObjectID, error) {
	res, err := db.Books().InsertOne(ctx, book)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// ListBooks returns all books, newest first, optionally restricted to an
// exact category name.
func (db *DB) ListBooks(ctx context.Context, category string) ([]models.Book, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	cur, err := db.Books().Find(ctx, filter, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var books []models.Book
	if err := cur.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (db *DB) BookByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
	var book models.Book
	err := db.Books().FindOne(ctx, bson.M{"_id": id}).Decode(&book)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// UpdateBook applies a partial update and returns the updated book, or
// (nil, nil) when the id is unknown. Fields left nil in upd are untouched.
func (db *DB) UpdateBook(ctx context.Context, id primitive.ObjectID, upd *models.BookUpdate) (*models.Book, error) {
	set := bson.M{"updatedAt": time.Now()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.OriginalLanguage != nil {
		set["originalLanguage"] = *upd.OriginalLanguage
	}
	if upd.Author != nil {
		set["author"] = *upd.Author
	}
	if upd.Year != nil {
		set["year"] = *upd.Year
	}
	if upd.Verses != nil {
		set["verses"] = *upd.Verses
	}
	if upd.Chapters != nil {
		set["chapters"] = *upd.Chapters
	}
	if upd.EnabledFields != nil {
		set["enabledFields"] = upd.EnabledFields
	}
	if upd.CoverImage != nil {
		set["coverImage"] = *upd.CoverImage
	}

	var book models.Book
	err := db.Books().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&book)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// DeleteBook removes the book document; its embedded translations go with
// it. Returns false when the id is unknown.
func (db *DB) DeleteBook(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := db.Books().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// PushTranslation appends tr to the book's translation list and returns
// the updated book, or (nil, nil) when the book is unknown.
func (db *DB) PushTranslation(ctx context.Context, bookID primitive.ObjectID, tr models.Translation) (*models.Book, error) {
	var book models.Book
	err := db.Books().FindOneAndUpdate(ctx,
		bson.M{"_id": bookID},
		bson.M{
			"$push": bson.M{"translations": tr},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&book)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// UpdateTranslation sets the non-empty fields of upd on the translation
// identified by trID inside the book. Empty fields are left as they are.
// Returns (nil, nil) when the book exists but the translation id does not
// match; callers check book existence separately for the 404 distinction.
func (db *DB) UpdateTranslation(ctx context.Context, bookID primitive.ObjectID, trID string, upd models.TranslationUpdate) (*models.Book, error) {
	set := bson.M{"updatedAt": time.Now()}
	if upd.TranslatorName != "" {
		set["translations.$.translatorName"] = upd.TranslatorName
	}
	if upd.Language != "" {
		set["translations.$.language"] = upd.Language
	}
	if upd.Content != "" {
		set["translations.$.content"] = upd.Content
	}

	var book models.Book
	err := db.Books().FindOneAndUpdate(ctx,
		bson.M{"_id": bookID, "translations.id": trID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&book)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// PullTranslation removes the translation with trID from the book's list.
// Removal is a no-op when the id is absent; only an unknown book returns
// found == false.
func (db *DB) PullTranslation(ctx context.Context, bookID primitive.ObjectID, trID string) (bool, error) {
	res, err := db.Books().UpdateOne(ctx,
		bson.M{"_id": bookID},
		bson.M{
			"$pull": bson.M{"translations": bson.M{"id": trID}},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}
