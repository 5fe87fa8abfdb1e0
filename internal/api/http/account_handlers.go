package http

import (
	"encoding/json"
	"net/http"

	authmw "github.com/re-hustle/rehustle-api/internal/auth/middleware"
	"github.com/re-hustle/rehustle-api/internal/user"
)

// GET /api/account/settings
func GetSettingsHandler(users user.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := users.GetByID(r.Context(), authmw.SubjectFromContext(r.Context()))
		if err != nil {
			domainError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, user.Settings{
			FullName:          u.FullName,
			PhoneNumber:       u.PhoneNumber,
			PreferredCRM:      u.PreferredCRM,
			CRMAPIKey:         u.CRMAPIKey,
			SyncAutomatically: u.SyncAutomatically,
		})
	}
}

// PUT /api/account/settings
func UpdateSettingsHandler(users user.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var set user.Settings
		if err := json.NewDecoder(r.Body).Decode(&set); err != nil {
			errJSON(w, r, http.StatusBadRequest, "bad_json", err.Error())
			return
		}
		if set.PreferredCRM == "" {
			set.PreferredCRM = "None"
		}
		if err := users.UpdateSettings(r.Context(), authmw.SubjectFromContext(r.Context()), set); err != nil {
			domainError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, map[string]string{"message": "settings updated"})
	}
}
