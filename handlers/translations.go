package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/granthkosh/backend/models"
	"github.com/granthkosh/backend/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TranslationsHandler mutates the translation list embedded in a book.
// Every operation is a single-document write on the parent.
type TranslationsHandler struct {
	DB       BookStore
	Files    storage.FileStore
	MaxBytes int64
}

// Add appends a translation to the book and returns the updated book.
// A translation may carry inline content, an uploaded file, both, or
// neither; only translator name and language are required.
func (h *TranslationsHandler) Add(w http.ResponseWriter, r *http.Request) {
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

	translatorName := r.FormValue("translatorName")
	language := r.FormValue("language")
	if translatorName == "" || language == "" {
		http.Error(w, `{"error":"Translator name and language are required"}`, http.StatusBadRequest)
		return
	}

	fileURL, err := storeUpload(r, "file", h.Files)
	if err != nil {
		http.Error(w, `{"error":"failed to store file"}`, http.StatusInternalServerError)
		return
	}

	tr := models.Translation{
		ID:             uuid.New().String(),
		TranslatorName: translatorName,
		Language:       language,
		Content:        r.FormValue("content"),
		FileURL:        fileURL,
		AddedAt:        time.Now(),
	}
	book, err := h.DB.PushTranslation(r.Context(), id, tr)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}
	if book == nil {
		http.Error(w, `{"error":"Book not found"}`, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(book)
}

// Update changes the supplied fields of a translation. Empty values in
// the body mean "no change", so a field cannot be cleared here.
func (h *TranslationsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"invalid book id"}`, http.StatusBadRequest)
		return
	}
	trID := chi.URLParam(r, "translationId")

	var upd models.TranslationUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
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

	book, err = h.DB.UpdateTranslation(r.Context(), id, trID, upd)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}
	if book == nil {
		http.Error(w, `{"error":"Translation not found"}`, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(book)
}

// Delete removes a translation from the book's list. Removing an id that
// is already gone still succeeds; only an unknown book is a 404.
func (h *TranslationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"invalid book id"}`, http.StatusBadRequest)
		return
	}
	trID := chi.URLParam(r, "translationId")

	found, err := h.DB.PullTranslation(r.Context(), id, trID)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, `{"error":"Book not found"}`, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Translation deleted"})
}
