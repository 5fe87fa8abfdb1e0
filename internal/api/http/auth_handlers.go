package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	authmw "github.com/re-hustle/rehustle-api/internal/auth/middleware"
	"github.com/re-hustle/rehustle-api/internal/user"
)

// POST /auth/register  { "email": "...", "password": "..." }
func RegisterHandler(users user.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
			FullName string `json:"full_name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errJSON(w, r, http.StatusBadRequest, "bad_json", err.Error())
			return
		}
		req.Email = strings.TrimSpace(req.Email)
		if req.Email == "" || req.Password == "" {
			errJSON(w, r, http.StatusBadRequest, "missing_fields", "email and password are required")
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			errJSON(w, r, http.StatusInternalServerError, "internal", "hash password")
			return
		}
		u, err := users.Create(r.Context(), req.Email, string(hash))
		if errors.Is(err, user.ErrEmailTaken) {
			errJSON(w, r, http.StatusConflict, "email_taken", "user with this email already exists")
			return
		}
		if err != nil {
			errJSON(w, r, http.StatusInternalServerError, "internal", "create user")
			return
		}
		if req.FullName != "" {
			_ = users.UpdateSettings(r.Context(), u.ID, user.Settings{
				FullName:     req.FullName,
				PreferredCRM: "None",
			})
		}
		writeJSON(w, r, http.StatusCreated, map[string]any{
			"id":          u.ID,
			"email":       u.Email,
			"trial_start": u.TrialStart,
			"created_at":  u.CreatedAt,
		})
	}
}

// POST /auth/login  { "email": "...", "password": "..." }
func LoginHandler(users user.Store, auth *authmw.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errJSON(w, r, http.StatusBadRequest, "bad_json", err.Error())
			return
		}
		u, err := users.GetByEmail(r.Context(), req.Email)
		if err != nil {
			errJSON(w, r, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
			errJSON(w, r, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
			return
		}
		tok, err := auth.IssueJWT(u.ID, u.Email)
		if err != nil {
			errJSON(w, r, http.StatusInternalServerError, "internal", "issue token")
			return
		}
		_ = users.TouchLogin(r.Context(), u.ID)
		writeJSON(w, r, http.StatusOK, map[string]string{"access_token": tok})
	}
}
