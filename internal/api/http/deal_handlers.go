package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	authmw "github.com/re-hustle/rehustle-api/internal/auth/middleware"
	"github.com/re-hustle/rehustle-api/internal/crm"
	"github.com/re-hustle/rehustle-api/internal/deal"
)

// POST /api/analyze: score a submission without saving it.
func AnalyzeHandler(svc *deal.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req deal.AnalyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errJSON(w, r, http.StatusBadRequest, "bad_json", err.Error())
			return
		}
		res, err := svc.Analyze(req)
		if err != nil {
			domainError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, res)
	}
}

// POST /api/deals: analyze and persist.
func CreateDealHandler(svc *deal.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req deal.AnalyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errJSON(w, r, http.StatusBadRequest, "bad_json", err.Error())
			return
		}
		userID := authmw.SubjectFromContext(r.Context())
		d, err := svc.AnalyzeAndSave(r.Context(), userID, req)
		if err != nil {
			domainError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusCreated, d)
	}
}

// GET /api/deals: most recent first.
func ListDealsHandler(svc *deal.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := authmw.SubjectFromContext(r.Context())
		deals, err := svc.List(r.Context(), userID)
		if err != nil {
			errJSON(w, r, http.StatusInternalServerError, "internal", "list deals")
			return
		}
		writeJSON(w, r, http.StatusOK, deals)
	}
}

// GET /api/deals/{dealID}
func GetDealHandler(svc *deal.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := authmw.SubjectFromContext(r.Context())
		d, err := svc.Get(r.Context(), userID, chi.URLParam(r, "dealID"))
		if err != nil {
			domainError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, d)
	}
}

// PUT /api/deals/{dealID}: address and notes only.
func UpdateDealHandler(svc *deal.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var upd deal.Update
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			errJSON(w, r, http.StatusBadRequest, "bad_json", err.Error())
			return
		}
		userID := authmw.SubjectFromContext(r.Context())
		d, err := svc.Update(r.Context(), userID, chi.URLParam(r, "dealID"), upd)
		if err != nil {
			domainError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, d)
	}
}

// DELETE /api/deals/{dealID}
func DeleteDealHandler(svc *deal.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := authmw.SubjectFromContext(r.Context())
		if err := svc.Delete(r.Context(), userID, chi.URLParam(r, "dealID")); err != nil {
			domainError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, map[string]bool{"deleted": true})
	}
}

// POST /api/deals/{dealID}/sync: push to the owner's configured CRM.
func SyncDealHandler(svc *deal.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := authmw.SubjectFromContext(r.Context())
		if err := svc.Sync(r.Context(), userID, chi.URLParam(r, "dealID")); err != nil {
			domainError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, map[string]bool{"synced": true})
	}
}

// GET /api/deals/{dealID}/sync: sync attempt history.
func SyncHistoryHandler(svc *deal.Service, log *crm.SyncLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := authmw.SubjectFromContext(r.Context())
		dealID := chi.URLParam(r, "dealID")
		// ownership check before exposing the log
		if _, err := svc.Get(r.Context(), userID, dealID); err != nil {
			domainError(w, r, err)
			return
		}
		entries, err := log.ListByDeal(r.Context(), dealID)
		if err != nil {
			errJSON(w, r, http.StatusInternalServerError, "internal", "list sync history")
			return
		}
		writeJSON(w, r, http.StatusOK, entries)
	}
}
