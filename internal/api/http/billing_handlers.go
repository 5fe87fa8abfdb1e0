package http

import (
	"encoding/json"
	"net/http"

	authmw "github.com/re-hustle/rehustle-api/internal/auth/middleware"
	"github.com/re-hustle/rehustle-api/internal/billing"
	"github.com/re-hustle/rehustle-api/internal/user"
)

// POST /api/billing/checkout-session
func CheckoutSessionHandler(s *billing.Stripe, users user.Store, publicURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := users.GetByID(r.Context(), authmw.SubjectFromContext(r.Context()))
		if err != nil {
			domainError(w, r, err)
			return
		}
		origin := publicURL
		if origin == "" {
			origin = r.Header.Get("Origin")
		}
		url, err := s.CreateCheckoutSession(r.Context(), u, origin)
		if err != nil {
			errJSON(w, r, http.StatusInternalServerError, "stripe", "failed to create checkout session")
			return
		}
		writeJSON(w, r, http.StatusOK, map[string]string{"url": url})
	}
}

// POST /api/billing/verify  { "session_id": "..." }
func VerifySubscriptionHandler(s *billing.Stripe) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			SessionID string `json:"session_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID == "" {
			errJSON(w, r, http.StatusBadRequest, "bad_json", "session_id required")
			return
		}
		ok, err := s.VerifySession(r.Context(), authmw.SubjectFromContext(r.Context()), req.SessionID)
		if err != nil {
			errJSON(w, r, http.StatusInternalServerError, "stripe", err.Error())
			return
		}
		writeJSON(w, r, http.StatusOK, map[string]bool{"subscribed": ok})
	}
}

// GET /api/billing/access: current entitlement state for the dashboard.
func AccessStatusHandler(ent *billing.Entitlement) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		acc, err := ent.Check(r.Context(), authmw.SubjectFromContext(r.Context()))
		if err != nil {
			domainError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, acc)
	}
}
