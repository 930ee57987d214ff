package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/charan23k2004/Reminder-Agent/logging"
	"github.com/charan23k2004/Reminder-Agent/utils"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AuthHandler struct {
	db *pgxpool.Pool
}

func NewAuthHandler(db *pgxpool.Pool) *AuthHandler {
	return &AuthHandler{db: db}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateEmail(req.Email); err != nil {
		http.Error(w, "Invalid email address", http.StatusBadRequest)
		return
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	exists, err := utils.EmailInUse(req.Email, h.db)
	if err != nil {
		logging.Logger.Errorf("Error checking email: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if exists {
		http.Error(w, "User already exists", http.StatusBadRequest)
		return
	}

	if _, err := utils.AddUser(req.Email, req.Password, h.db); err != nil {
		logging.Logger.Errorf("Error registering user: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	logging.Logger.Infof("Registered user %s", req.Email)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login accepts the OAuth2 password form the original frontend sends
// (username/password fields) and a JSON body as a convenience.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email, password, ok := credentialsFromRequest(r)
	if !ok {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	user, err := utils.GetUserByEmail(email, h.db)
	if err != nil {
		// Same response for unknown user and bad password.
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	if !utils.CheckPasswordHash(password, string(user.PasswordHash)) {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email)
	if err != nil {
		logging.Logger.Errorf("Error generating token for %s: %v", email, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	logging.Logger.Infof("Login successful for user: %s", email)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func credentialsFromRequest(r *http.Request) (string, string, bool) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return "", "", false
		}
		return req.Email, req.Password, req.Email != "" && req.Password != ""
	}

	if err := r.ParseForm(); err != nil {
		return "", "", false
	}
	email := r.FormValue("username")
	if email == "" {
		email = r.FormValue("email")
	}
	password := r.FormValue("password")
	return email, password, email != "" && password != ""
}

// Me returns the authenticated user's account info.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	user, err := utils.GetUserByID(userID, h.db)
	if err != nil {
		http.Error(w, "User from token not found", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}
