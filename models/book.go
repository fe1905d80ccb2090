package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultCategory is assigned when a book is created without one.
const DefaultCategory = "Other"

type Book struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title            string             `bson:"title" json:"title"`
	Category         string             `bson:"category" json:"category"`
	Description      string             `bson:"description,omitempty" json:"description,omitempty"`
	OriginalLanguage string             `bson:"originalLanguage,omitempty" json:"originalLanguage,omitempty"`
	Author           string             `bson:"author,omitempty" json:"author,omitempty"`
	Year             string             `bson:"year,omitempty" json:"year,omitempty"`
	Verses           int                `bson:"verses,omitempty" json:"verses,omitempty"`
	Chapters         int                `bson:"chapters,omitempty" json:"chapters,omitempty"`
	CustomFields     map[string]string  `bson:"customFields,omitempty" json:"customFields,omitempty"`
	Translations     []Translation      `bson:"translations" json:"translations"`
	CoverImage       string             `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
	EnabledFields    []string           `bson:"enabledFields,omitempty" json:"enabledFields,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Translation is embedded in its Book and has no independent lifecycle.
type Translation struct {
	ID             string    `bson:"id" json:"id"` // uuid, unique within the parent book
	TranslatorName string    `bson:"translatorName" json:"translatorName"`
	Language       string    `bson:"language" json:"language"`
	Content        string    `bson:"content,omitempty" json:"content,omitempty"`
	FileURL        string    `bson:"fileUrl,omitempty" json:"fileUrl,omitempty"`
	AddedAt        time.Time `bson:"addedAt" json:"addedAt"`
}

// BookUpdate carries a partial update: nil fields are left unchanged.
type BookUpdate struct {
	Title            *string
	Category         *string
	Description      *string
	OriginalLanguage *string
	Author           *string
	Year             *string
	Verses           *int
	Chapters         *int
	EnabledFields    []string
	CoverImage       *string
}

// TranslationUpdate carries new field values for an embedded translation.
// Empty strings mean "no change"; a translation field cannot be cleared
// through an update.
type TranslationUpdate struct {
	TranslatorName string `json:"translatorName"`
	Language       string `json:"language"`
	Content        string `json:"content"`
}

// StripContent clears the translation content on every book, for list
// payloads where the full text would bloat the response.
func StripContent(books []Book) {
	for i := range books {
		for j := range books[i].Translations {
			books[i].Translations[j].Content = ""
		}
	}
}
