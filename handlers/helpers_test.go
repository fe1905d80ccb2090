package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/granthkosh/backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore is an in-memory stand-in for *store.DB with the same
// not-found conventions: (nil, nil) lookups and found flags.
type memStore struct {
	mu         sync.Mutex
	books      []*models.Book
	categories []*models.Category
	admins     []*models.Admin

	// adminsCount overrides AdminsCount when set, to drive the
	// setup-race interleaving deterministically.
	adminsCount func() (int64, error)
}

func newMemStore() *memStore { return &memStore{} }

func copyBook(b *models.Book) *models.Book {
	c := *b
	c.Translations = append([]models.Translation(nil), b.Translations...)
	c.EnabledFields = append([]string(nil), b.EnabledFields...)
	return &c
}

func (m *memStore) InsertBook(_ context.Context, book *models.Book) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	book.ID = primitive.NewObjectID()
	m.books = append(m.books, copyBook(book))
	return book.ID, nil
}

func (m *memStore) ListBooks(_ context.Context, category string) ([]models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Book
	// newest first
	for i := len(m.books) - 1; i >= 0; i-- {
		b := m.books[i]
		if category != "" && b.Category != category {
			continue
		}
		out = append(out, *copyBook(b))
	}
	return out, nil
}

func (m *memStore) BookByID(_ context.Context, id primitive.ObjectID) (*models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.books {
		if b.ID == id {
			return copyBook(b), nil
		}
	}
	return nil, nil
}

func (m *memStore) UpdateBook(_ context.Context, id primitive.ObjectID, upd *models.BookUpdate) (*models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.books {
		if b.ID != id {
			continue
		}
		if upd.Title != nil {
			b.Title = *upd.Title
		}
		if upd.Category != nil {
			b.Category = *upd.Category
		}
		if upd.Description != nil {
			b.Description = *upd.Description
		}
		if upd.OriginalLanguage != nil {
			b.OriginalLanguage = *upd.OriginalLanguage
		}
		if upd.Author != nil {
			b.Author = *upd.Author
		}
		if upd.Year != nil {
			b.Year = *upd.Year
		}
		if upd.Verses != nil {
			b.Verses = *upd.Verses
		}
		if upd.Chapters != nil {
			b.Chapters = *upd.Chapters
		}
		if upd.EnabledFields != nil {
			b.EnabledFields = upd.EnabledFields
		}
		if upd.CoverImage != nil {
			b.CoverImage = *upd.CoverImage
		}
		b.UpdatedAt = time.Now()
		return copyBook(b), nil
	}
	return nil, nil
}

func (m *memStore) DeleteBook(_ context.Context, id primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, b := range m.books {
		if b.ID == id {
			m.books = append(m.books[:i], m.books[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) PushTranslation(_ context.Context, bookID primitive.ObjectID, tr models.Translation) (*models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.books {
		if b.ID == bookID {
			b.Translations = append(b.Translations, tr)
			b.UpdatedAt = time.Now()
			return copyBook(b), nil
		}
	}
	return nil, nil
}

func (m *memStore) UpdateTranslation(_ context.Context, bookID primitive.ObjectID, trID string, upd models.TranslationUpdate) (*models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.books {
		if b.ID != bookID {
			continue
		}
		for i := range b.Translations {
			if b.Translations[i].ID != trID {
				continue
			}
			if upd.TranslatorName != "" {
				b.Translations[i].TranslatorName = upd.TranslatorName
			}
			if upd.Language != "" {
				b.Translations[i].Language = upd.Language
			}
			if upd.Content != "" {
				b.Translations[i].Content = upd.Content
			}
			b.UpdatedAt = time.Now()
			return copyBook(b), nil
		}
		return nil, nil
	}
	return nil, nil
}

func (m *memStore) PullTranslation(_ context.Context, bookID primitive.ObjectID, trID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.books {
		if b.ID != bookID {
			continue
		}
		for i := range b.Translations {
			if b.Translations[i].ID == trID {
				b.Translations = append(b.Translations[:i], b.Translations[i+1:]...)
				break
			}
		}
		return true, nil
	}
	return false, nil
}

func (m *memStore) InsertCategory(_ context.Context, cat *models.Category) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cat.ID = primitive.NewObjectID()
	c := *cat
	m.categories = append(m.categories, &c)
	return cat.ID, nil
}

func (m *memStore) ListCategories(_ context.Context) ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Category
	for _, c := range m.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (m *memStore) UpdateCategory(_ context.Context, id primitive.ObjectID, upd *models.CategoryUpdate) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.categories {
		if c.ID != id {
			continue
		}
		if upd.Name != nil {
			c.Name = *upd.Name
		}
		if upd.Description != nil {
			c.Description = *upd.Description
		}
		out := *c
		return &out, nil
	}
	return nil, nil
}

func (m *memStore) DeleteCategory(_ context.Context, id primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.categories {
		if c.ID == id {
			m.categories = append(m.categories[:i], m.categories[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) AdminsCount(_ context.Context) (int64, error) {
	if m.adminsCount != nil {
		return m.adminsCount()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.admins)), nil
}

func (m *memStore) AdminByUsername(_ context.Context, username string) (*models.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.admins {
		if a.Username == username {
			out := *a
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memStore) InsertAdmin(_ context.Context, admin *models.Admin) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	admin.ID = primitive.NewObjectID()
	a := *admin
	m.admins = append(m.admins, &a)
	return admin.ID, nil
}

// memFiles records stored uploads and hands back local-style paths.
type memFiles struct {
	mu     sync.Mutex
	stored []string
}

func (f *memFiles) Store(_ context.Context, name string, r io.Reader, _ string) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	path := "/uploads/1700000000000-" + name
	f.stored = append(f.stored, path)
	return path, nil
}

func newTestRouter(ms *memStore, files *memFiles) http.Handler {
	auth := &AuthHandler{DB: ms}
	books := &BooksHandler{DB: ms, Files: files, MaxBytes: 4 << 20}
	translations := &TranslationsHandler{DB: ms, Files: files, MaxBytes: 4 << 20}
	categories := &CategoriesHandler{DB: ms}

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/auth/check", auth.Check)
		r.Post("/auth/setup", auth.Setup)
		r.Post("/auth/login", auth.Login)

		r.Route("/books", func(r chi.Router) {
			r.Get("/", books.List)
			r.Post("/", books.Create)
			r.Get("/{id}", books.Get)
			r.Put("/{id}", books.Update)
			r.Delete("/{id}", books.Delete)
			r.Post("/{id}/translations", translations.Add)
			r.Put("/{id}/translations/{translationId}", translations.Update)
			r.Delete("/{id}/translations/{translationId}", translations.Delete)
		})
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categories.List)
			r.Post("/", categories.Create)
			r.Put("/{id}", categories.Update)
			r.Delete("/{id}", categories.Delete)
		})
	})
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// doMultipart builds a multipart request from form fields and an optional
// file part (fileField == "" skips the file).
func doMultipart(t *testing.T, h http.Handler, method, path string, fields map[string]string, fileField, fileName string, fileContent []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, fileName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(fileContent); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}
