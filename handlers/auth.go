package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/granthkosh/backend/models"
	"github.com/granthkosh/backend/utils"
)

type AuthHandler struct {
	DB AdminStore
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Check reports whether an admin credential has been set up, so the UI
// knows whether to show the setup form or the login form.
func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	count, err := h.DB.AdminsCount(r.Context())
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"adminExists": count > 0})
}

// Setup creates the sole admin credential. The exists-check and the
// insert are separate operations, so two concurrent setups can both pass
// the check; see README for why that race is left in place.
func (h *AuthHandler) Setup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		http.Error(w, `{"error":"Username and password required"}`, http.StatusBadRequest)
		return
	}

	count, err := h.DB.AdminsCount(r.Context())
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}
	if count > 0 {
		http.Error(w, `{"error":"Admin already exists"}`, http.StatusBadRequest)
		return
	}

	salt, err := utils.NewSalt()
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}
	admin := &models.Admin{
		Username:  req.Username,
		Password:  utils.HashPassword(req.Password, salt),
		Salt:      salt,
		CreatedAt: time.Now(),
	}
	if _, err := h.DB.InsertAdmin(r.Context(), admin); err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": "Admin created successfully",
	})
}

// Login verifies the credential pair and issues an opaque session token.
// Unknown username and wrong password produce the same response. The
// token is not stored server-side and nothing verifies it later; see
// README.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		http.Error(w, `{"error":"Username and password required"}`, http.StatusBadRequest)
		return
	}

	admin, err := h.DB.AdminByUsername(r.Context(), req.Username)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}
	if admin == nil || !utils.VerifyPassword(req.Password, admin.Salt, admin.Password) {
		http.Error(w, `{"error":"Invalid credentials"}`, http.StatusUnauthorized)
		return
	}

	token, err := utils.NewToken()
	if err != nil {
		http.Error(w, `{"error":"could not create token"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LoginResponse{
		Success:  true,
		Message:  "Login successful",
		Token:    token,
		Username: admin.Username,
	})
}
