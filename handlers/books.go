package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/granthkosh/backend/models"
	"github.com/granthkosh/backend/service"
	"github.com/granthkosh/backend/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BooksHandler struct {
	DB       BookStore
	Files    storage.FileStore
	MaxBytes int64
}

// List returns the catalog, optionally narrowed by exact category name
// and/or a text search (q, with an optional language scope). Translation
// content is stripped from the payload.
func (h *BooksHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	query := r.URL.Query().Get("q")
	lang := r.URL.Query().Get("lang")

	books, err := h.DB.ListBooks(r.Context(), category)
	if err != nil {
		http.Error(w, `{"error":"failed to list books"}`, http.StatusInternalServerError)
		return
	}
	books = service.FilterBooks(books, query, lang)
	models.StripContent(books)
	if books == nil {
		books = []models.Book{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(books)
}

func (h *BooksHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"invalid book id"}`, http.StatusBadRequest)
		return
	}
	book, err := h.DB.BookByID(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}
	if book == nil {
		http.Error(w, `{"error":"Book not found"}`, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(book)
}

func (h *BooksHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.MaxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes)
	}
	if err := r.ParseMultipartForm(h.MaxBytes); err != nil {
		http.Error(w, `{"error":"failed to parse multipart form"}`, http.StatusBadRequest)
		return
	}

	title := r.FormValue("title")
	if title == "" {
		http.Error(w, `{"error":"Title is required"}`, http.StatusBadRequest)
		return
	}

	book := &models.Book{
		Title:            title,
		Category:         r.FormValue("category"),
		Description:      r.FormValue("description"),
		OriginalLanguage: r.FormValue("originalLanguage"),
		Author:           r.FormValue("author"),
		Year:             r.FormValue("year"),
		Translations:     []models.Translation{},
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	if book.Category == "" {
		book.Category = models.DefaultCategory
	}

	if v := r.FormValue("verses"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, `{"error":"verses must be a number"}`, http.StatusBadRequest)
			return
		}
		book.Verses = n
	}
	if v := r.FormValue("chapters"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, `{"error":"chapters must be a number"}`, http.StatusBadRequest)
			return
		}
		book.Chapters = n
	}
	if v := r.FormValue("enabledFields"); v != "" {
		var fields []string
		if err := json.Unmarshal([]byte(v), &fields); err != nil {
			http.Error(w, `{"error":"enabledFields must be a JSON array"}`, http.StatusBadRequest)
			return
		}
		book.EnabledFields = fields
	}

	path, err := storeUpload(r, "coverImage", h.Files)
	if err != nil {
		http.Error(w, `{"error":"failed to store cover image"}`, http.StatusInternalServerError)
		return
	}
	book.CoverImage = path

	id, err := h.DB.InsertBook(r.Context(), book)
	if err != nil {
		http.Error(w, `{"error":"failed to save book"}`, http.StatusInternalServerError)
		return
	}
	book.ID = id
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(book)
}

// Update applies a partial update: only form fields present in the
// request change, everything else keeps its stored value. A new cover
// image replaces the recorded path; the old file is not removed.
func (h *BooksHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"invalid book id"}`, http.StatusBadRequest)
		return
	}
	if h.MaxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes)
	}
	if err := r.ParseMultipartForm(h.MaxBytes); err != nil {
		http.Error(w, `{"error":"failed to parse multipart form"}`, http.StatusBadRequest)
		return
	}

	upd := &models.BookUpdate{
		Title:            formValue(r, "title"),
		Category:         formValue(r, "category"),
		Description:      formValue(r, "description"),
		OriginalLanguage: formValue(r, "originalLanguage"),
		Author:           formValue(r, "author"),
		Year:             formValue(r, "year"),
	}
	if upd.Title != nil && *upd.Title == "" {
		http.Error(w, `{"error":"Title is required"}`, http.StatusBadRequest)
		return
	}
	if v := formValue(r, "verses"); v != nil && *v != "" {
		n, err := strconv.Atoi(*v)
		if err != nil {
			http.Error(w, `{"error":"verses must be a number"}`, http.StatusBadRequest)
			return
		}
		upd.Verses = &n
	}
	if v := formValue(r, "chapters"); v != nil && *v != "" {
		n, err := strconv.Atoi(*v)
		if err != nil {
			http.Error(w, `{"error":"chapters must be a number"}`, http.StatusBadRequest)
			return
		}
		upd.Chapters = &n
	}
	if v := formValue(r, "enabledFields"); v != nil && *v != "" {
		var fields []string
		if err := json.Unmarshal([]byte(*v), &fields); err != nil {
			http.Error(w, `{"error":"enabledFields must be a JSON array"}`, http.StatusBadRequest)
			return
		}
		upd.EnabledFields = fields
	}

	path, err := storeUpload(r, "coverImage", h.Files)
	if err != nil {
		http.Error(w, `{"error":"failed to store cover image"}`, http.StatusInternalServerError)
		return
	}
	if path != "" {
		upd.CoverImage = &path
	}

	book, err := h.DB.UpdateBook(r.Context(), id, upd)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}
	if book == nil {
		http.Error(w, `{"error":"Book not found"}`, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(book)
}

// Delete removes the book and, with it, every embedded translation.
func (h *BooksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"invalid book id"}`, http.StatusBadRequest)
		return
	}
	found, err := h.DB.DeleteBook(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, `{"error":"Book not found"}`, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Book deleted"})
}

// storeUpload saves the named multipart file through the FileStore and
// returns its public path, or "" when the part is absent.
func storeUpload(r *http.Request, field string, files storage.FileStore) (string, error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close()
	return files.Store(r.Context(), header.Filename, file, header.Header.Get("Content-Type"))
}

// formValue returns a pointer to the form field's value when the field
// was present in the request, nil otherwise. Distinguishing absent from
// empty is what makes partial updates work.
func formValue(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	vals, ok := r.MultipartForm.Value[key]
	if !ok || len(vals) == 0 {
		return nil
	}
	return &vals[0]
}
