package handlers

import (
	"context"

	"github.com/granthkosh/backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The handlers talk to persistence through these interfaces; *store.DB
// implements all of them. Lookups return (nil, nil) for unknown ids,
// delete-style operations report found as a bool.

type BookStore interface {
	InsertBook(ctx context.Context, book *models.Book) (primitive.ObjectID, error)
	ListBooks(ctx context.Context, category string) ([]models.Book, error)
	BookByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error)
	UpdateBook(ctx context.Context, id primitive.ObjectID, upd *models.BookUpdate) (*models.Book, error)
	DeleteBook(ctx context.Context, id primitive.ObjectID) (bool, error)
	PushTranslation(ctx context.Context, bookID primitive.ObjectID, tr models.Translation) (*models.Book, error)
	UpdateTranslation(ctx context.Context, bookID primitive.ObjectID, trID string, upd models.TranslationUpdate) (*models.Book, error)
	PullTranslation(ctx context.Context, bookID primitive.ObjectID, trID string) (bool, error)
}

type CategoryStore interface {
	InsertCategory(ctx context.Context, cat *models.Category) (primitive.ObjectID, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	UpdateCategory(ctx context.Context, id primitive.ObjectID, upd *models.CategoryUpdate) (*models.Category, error)
	DeleteCategory(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type AdminStore interface {
	AdminsCount(ctx context.Context) (int64, error)
	AdminByUsername(ctx context.Context, username string) (*models.Admin, error)
	InsertAdmin(ctx context.Context, admin *models.Admin) (primitive.ObjectID, error)
}
